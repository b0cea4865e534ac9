// Package fetcher 원격 스크립트 저장소에 HTTP 요청을 보내고, 그 응답에서 스크립트 파일 경로 목록을 추출합니다.
//
// 요청은 Fetcher 인터페이스를 구현하는 데코레이터들을 연결한 체인을 거쳐 전송됩니다.
//
//	HTTPFetcher -> LoggingFetcher -> StatusCodeFetcher -> MaxBytesFetcher
package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config New로 Fetcher 체인을 구성할 때 사용하는 설정입니다.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	Username  string
	Token     string

	// AuthHosts Username/Token을 보낼 호스트 목록입니다. 설정된 원격 저장소의 호스트만 지정합니다. (SourceHosts 참고)
	AuthHosts []string

	// MaxBytes 응답 본문의 최대 크기입니다. 0이면 기본값(10MB), NoLimit이면 제한하지 않습니다.
	MaxBytes int64

	// Transport 테스트 등에서 전송 계층을 교체할 때 사용합니다. nil이면 http.DefaultTransport를 사용합니다.
	Transport http.RoundTripper
}

// New 설정에 따라 데코레이터 체인을 구성한 Fetcher를 반환합니다.
func New(cfg Config) Fetcher {
	opts := []Option{WithTimeout(cfg.Timeout), WithUserAgent(cfg.UserAgent)}
	if cfg.Username != "" || cfg.Token != "" {
		opts = append(opts, WithBasicAuth(cfg.Username, cfg.Token, cfg.AuthHosts...))
	}
	if cfg.Transport != nil {
		opts = append(opts, WithTransport(cfg.Transport))
	}

	var f Fetcher = NewHTTPFetcher(opts...)
	f = NewLoggingFetcher(f)
	f = NewStatusCodeFetcher(f)
	f = NewMaxBytesFetcher(f, cfg.MaxBytes)

	return f
}

// SourceHosts 원격 저장소 URL들의 호스트("host" 또는 "host:port")를 중복 없이 반환합니다. 해석할 수 없는 URL은 건너뜁니다.
func SourceHosts(sources []Source) []string {
	seen := make(map[string]struct{}, len(sources))

	var hosts []string
	for _, s := range sources {
		u, err := url.Parse(s.URL)
		if err != nil || u.Host == "" {
			continue
		}

		host := strings.ToLower(u.Host)
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		hosts = append(hosts, host)
	}

	return hosts
}

// Get GET 요청을 생성하여 전송합니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "HTTP 요청을 생성할 수 없습니다 (url=%s)", url)
	}

	return f.Do(req)
}

// Download url의 본문을 w에 기록하고, 기록한 바이트 수를 반환합니다.
func Download(ctx context.Context, f Fetcher, url string, w io.Writer) (int64, error) {
	resp, err := Get(ctx, f, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return n, apperrors.Wrap(ctxErr, apperrors.Canceled, "다운로드가 취소되었습니다")
		}
		return n, apperrors.Wrapf(err, apperrors.Unavailable, "응답 본문을 읽는 중 오류가 발생하였습니다 (url=%s)", redactURLString(url))
	}

	return n, nil
}

// drainAndCloseBody 커넥션 재사용을 위해 남은 본문을 일정량 읽어 버린 뒤 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}

	_, _ = io.CopyN(io.Discard, body, 64*1024)
	_ = body.Close()
}
