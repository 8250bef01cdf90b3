package model

import "time"

type QuestionStatus string // 문의글 상태

const (
	QuestionStatusPending  QuestionStatus = "pending"  // 답변 대기
	QuestionStatusAnswered QuestionStatus = "answered" // 답변 완료
)

// QuestionFile 문의글 첨부 파일
type QuestionFile struct {
	Key          string    `json:"key"`          // 저장소 객체 키 (uuid + 확장자)
	OriginalName string    `json:"originalName"` // 업로드 당시 파일명
	CreatedAt    time.Time `json:"createdAt"`    // 업로드 시각
}

// Question QnA 게시글. 작성자 본인이 전체 수명주기(CRUD)를 관리한다.
type Question struct {
	ID        string         `json:"id"`              // 게시글 ID
	Title     string         `json:"title"`           // 제목
	Content   string         `json:"content"`         // 내용
	Author    string         `json:"author"`          // 작성자
	Status    QuestionStatus `json:"status"`          // 상태
	CreatedAt time.Time      `json:"createdAt"`       // 작성 시각
	UpdatedAt time.Time      `json:"updatedAt"`       // 수정 시각
	Files     []QuestionFile `json:"files,omitempty"` // 첨부 파일 목록
}
