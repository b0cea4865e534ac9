// Package request v1 API의 요청 본문 모델을 정의합니다.
package request

// SearchRequest 검색 시작 요청
type SearchRequest struct {
	// Term 파일 이름에 포함되어야 하는 검색어
	Term string `json:"term" validate:"required,max=100" korean:"검색어"`
}

// ImportRequest 파일 가져오기 요청
type ImportRequest struct {
	// Path 검색 결과의 경로. 로컬 파일 경로 또는 http(s) URL입니다.
	Path string `json:"path" validate:"required,max=2048" korean:"경로"`

	// Name 저장할 파일 이름. 비어 있으면 Path의 파일 이름을 사용합니다.
	Name string `json:"name" validate:"omitempty,max=255,excludesall=/\\" korean:"파일 이름"`
}
