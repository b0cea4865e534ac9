package fetcher

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	applog "github.com/darkkaiser/scriptfinder/pkg/log"
)

// LoggingFetcher 요청 결과와 소요 시간을 로그로 남기는 데코레이터입니다.
type LoggingFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*LoggingFetcher)(nil)

// NewLoggingFetcher 새로운 LoggingFetcher를 생성합니다.
func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"method":   req.Method,
		"url":      redactURL(req.URL),
		"duration": time.Since(start).String(),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}

	if err != nil {
		fields["error"] = err.Error()
		applog.WithComponentAndFields(component, fields).Warn("HTTP 요청 실패: 요청 처리 중 에러 발생")

		return resp, err
	}

	applog.WithComponentAndFields(component, fields).Debug("HTTP 요청 성공")

	return resp, nil
}

// sensitiveQueryKeys 로그에 값을 남기지 않을 쿼리 파라미터 이름입니다. (소문자 비교)
var sensitiveQueryKeys = []string{"token", "access_token", "api_key", "apikey", "key", "secret", "password"}

// redactURL 로그 출력용으로 URL의 사용자 정보와 민감한 쿼리 파라미터 값을 가립니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	ru := *u
	if u.User != nil {
		ru.User = url.User("xxxxx")
	}

	if u.RawQuery != "" {
		query := ru.Query()
		for key := range query {
			for _, sensitive := range sensitiveQueryKeys {
				if strings.EqualFold(key, sensitive) {
					query.Set(key, "xxxxx")
				}
			}
		}
		ru.RawQuery = query.Encode()
	}

	return ru.String()
}

func redactURLString(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	return redactURL(u)
}
