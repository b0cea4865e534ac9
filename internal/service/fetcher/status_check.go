package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

// bodySnippetLimit 에러 메시지에 포함할 응답 본문의 최대 길이입니다.
const bodySnippetLimit = 256

// HTTPStatusError 2xx가 아닌 응답을 받았을 때 반환되는 에러의 원인입니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	BodySnippet string
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += fmt.Sprintf(" URL: %s", e.URL)
	}
	if e.BodySnippet != "" {
		msg += fmt.Sprintf(", Body: %s", e.BodySnippet)
	}
	return msg
}

// StatusCodeFetcher 2xx가 아닌 응답을 Unavailable 타입의 에러로 변환하는 데코레이터입니다.
type StatusCodeFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 새로운 StatusCodeFetcher를 생성합니다.
func NewStatusCodeFetcher(delegate Fetcher) *StatusCodeFetcher {
	return &StatusCodeFetcher{delegate: delegate}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "원격 저장소에 요청을 전송할 수 없습니다")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit))
	drainAndCloseBody(resp.Body)

	statusErr := &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         redactURL(req.URL),
		BodySnippet: strings.TrimSpace(string(snippet)),
	}

	return nil, apperrors.Wrap(statusErr, apperrors.Unavailable, "원격 저장소가 오류 상태 코드를 반환하였습니다")
}
