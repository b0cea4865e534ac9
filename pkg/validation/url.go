package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateHTTPURL URL이 http 또는 https 스킴과 호스트를 가진 절대 URL인지 검증합니다.
func ValidateHTTPURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("URL이 비어 있습니다")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("잘못된 URL 형식입니다 (url=%q): %w", rawURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL은 http 또는 https 스킴을 사용해야 합니다 (url=%q)", rawURL)
	}

	if u.Host == "" {
		return fmt.Errorf("URL에 호스트가 없습니다 (url=%q)", rawURL)
	}

	return nil
}

// IsHTTPURL 값이 http(s) URL 형태인지 여부를 반환합니다. 검색 결과가 원격 파일인지 판단할 때 사용합니다.
func IsHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
