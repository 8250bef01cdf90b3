package model

import "time"

type UserRole string // 사용자 권한 타입

const (
	RoleUser  UserRole = "user"  // 일반 사용자 권한
	RoleAdmin UserRole = "admin" // 관리자 권한
)

type User struct {
	ID        string    `json:"id"`                 // 사용자 ID
	Email     string    `json:"email"`              // 이메일
	Username  string    `json:"username"`           // 사용자 이름
	Password  string    `json:"password,omitempty"` // 비밀번호 (요청 전용, 응답에서는 비움)
	Role      UserRole  `json:"role"`               // 권한
	CreatedAt time.Time `json:"createdAt"`          // 생성 시각
	UpdatedAt time.Time `json:"updatedAt"`          // 수정 시각
}

// SignUpInput 회원가입 요청 데이터
type SignUpInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials 로그인 요청 데이터
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate 회원정보 수정 데이터 (PATCH, 설정된 필드만 전송)
type ProfileUpdate struct {
	Username  string    `json:"username,omitempty"`
	Password  string    `json:"password,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
