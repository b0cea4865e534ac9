package middleware

import (
	"strings"

	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/echo/v4"
)

// ValidateContentType 요청 본문의 Content-Type을 검증하는 미들웨어를 반환합니다.
//
// 본문이 없는 요청은 검증을 건너뜁니다. MIME 타입 파라미터(예: charset=utf-8)는 무시합니다.
//
// 반환값:
//   - Content-Type이 일치하지 않으면 415 Unsupported Media Type
func ValidateContentType(expectedContentType string) echo.MiddlewareFunc {
	expected := strings.ToLower(expectedContentType)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))

			if mediaType != expected {
				applog.WithComponentAndFields(constants.ComponentMiddlewareContentType, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     req.Method,
					"path":       req.URL.Path,
					"expected":   expectedContentType,
					"actual":     contentType,
					"remote_ip":  c.RealIP(),
				}).Warn(constants.LogMsgUnsupportedContentType)

				return ErrUnsupportedMediaType
			}

			return next(c)
		}
	}
}
