package fetcher

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "scriptfinder"
)

// Option HTTPFetcher 생성 시 적용할 선택 사항입니다.
type Option func(*HTTPFetcher)

// WithTimeout 요청 전체(연결, 응답 본문 수신 포함)의 제한 시간을 지정합니다. 0 이하이면 기본값을 유지합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		if timeout > 0 {
			h.client.Timeout = timeout
		}
	}
}

// WithUserAgent 요청에 User-Agent 헤더가 없을 때 사용할 값을 지정합니다.
func WithUserAgent(ua string) Option {
	return func(h *HTTPFetcher) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithBasicAuth hosts로 보내는 요청에만 Basic 인증 정보를 추가합니다. 원격 저장소의 접근 토큰을 비밀번호로 사용합니다.
//
// hosts는 "host" 또는 "host:port" 형식이며 대소문자를 구분하지 않습니다. 비어 있으면 어떤 요청에도 인증 정보를 보내지 않습니다.
func WithBasicAuth(username, token string, hosts ...string) Option {
	return func(h *HTTPFetcher) {
		h.username = username
		h.token = token

		h.authHosts = make(map[string]struct{}, len(hosts))
		for _, host := range hosts {
			if host = strings.ToLower(strings.TrimSpace(host)); host != "" {
				h.authHosts[host] = struct{}{}
			}
		}
	}
}

// WithTransport 전송 계층을 교체합니다.
func WithTransport(transport http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		h.client.Transport = transport
	}
}

// HTTPFetcher net/http 클라이언트로 요청을 전송하는 기본 Fetcher입니다.
type HTTPFetcher struct {
	client *http.Client

	userAgent string
	username  string
	token     string

	// authHosts 인증 정보를 보내도 되는 호스트의 집합입니다.
	authHosts map[string]struct{}
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 새로운 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Do 요청을 전송합니다. 호출자의 요청 객체는 변경하지 않습니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	needsUA := req.Header.Get("User-Agent") == ""
	needsAuth := h.token != "" && req.Header.Get("Authorization") == "" && h.allowsAuth(req)

	if needsUA || needsAuth {
		req = req.Clone(req.Context())
		if needsUA {
			req.Header.Set("User-Agent", h.userAgent)
		}
		if needsAuth {
			req.SetBasicAuth(h.username, h.token)
		}
	}

	return h.client.Do(req)
}

// allowsAuth 요청 대상이 인증 정보를 보내도 되는 호스트인지 여부를 반환합니다.
func (h *HTTPFetcher) allowsAuth(req *http.Request) bool {
	if req.URL == nil {
		return false
	}

	_, ok := h.authHosts[strings.ToLower(req.URL.Host)]
	return ok
}
