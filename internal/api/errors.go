package api

import "errors"

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 뷰 계층에서 이 코드를 기반으로 추가 동작(재로그인 유도 등)을 결정한다.
const (
	CodeNetwork      = "NETWORK_ERROR"      // 응답을 받지 못함
	CodeServer       = "SERVER_ERROR"       // 4xx/5xx 응답
	CodeUnauthorized = "AUTH_UNAUTHORIZED"  // 401, 세션 초기화됨
	CodeBadRequest   = "REQUEST_INVALID"    // 요청 구성 실패
	CodeDecode       = "RESPONSE_MALFORMED" // 응답 본문 해석 실패
)

var (
	// ErrNetwork is returned when no response reached the client
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned on a 401 response, after the
	// registered session reset hook has run
	ErrUnauthorized = errors.New("unauthorized")
)

// 전송 계층 실패를 단일 형태로 정규화한 에러.
// Message는 그대로 사용자에게 보여줄 수 있는 한글 문구다.
type Error struct {
	Code    string // 에러 코드 (위 상수 참조)
	Message string // 사용자 친화적 메시지
	Status  int    // HTTP 상태 코드 (응답이 없으면 0)
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

const (
	msgNetworkFailure = "서버와의 통신에 실패했습니다."
	msgServerFailure  = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	msgLoginRequired  = "로그인이 필요합니다."
)

// IsNetworkError reports whether err represents a connectivity failure
// (no response received), as opposed to a server-returned error.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}
