package errors

//go:generate stringer -type=ErrorType

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류할 수 없는 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그, 작업 단계에서 발생한 panic 등)
	Internal

	// System 디스크 I/O, 파일 잠금 등 시스템 수준의 오류
	System

	// InvalidInput 잘못된 입력값 (빈 검색어, 잘못된 설정값 등)
	InvalidInput

	// Conflict 리소스 충돌 (가져오기 대상 파일이 이미 존재하는 경우 등)
	Conflict

	// NotFound 리소스를 찾을 수 없음 (검색 세션, 원본 파일 등)
	NotFound

	// ExecutionFailed 작업 실행 실패
	ExecutionFailed

	// ParsingFailed 원격 목록(JSON/HTML) 또는 설정 파일의 파싱 실패
	ParsingFailed

	// Timeout 작업 시간 초과 (원격 검색 요청 타임아웃 등)
	Timeout

	// Unavailable 원격 저장소 또는 서비스의 일시적 사용 불가
	Unavailable

	// Canceled 호출자의 요청에 의해 작업이 취소됨
	Canceled
)
