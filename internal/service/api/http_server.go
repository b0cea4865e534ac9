package api

import (
	"time"

	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	"github.com/darkkaiser/scriptfinder/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/scriptfinder/internal/service/api/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간. 0이면 DefaultRequestTimeout을 사용합니다.
	RequestTimeout time.Duration

	// RateLimitPerSecond, RateLimitBurst IP별 요청 제한. 0이면 기본값을 사용합니다.
	RateLimitPerSecond int
	RateLimitBurst     int
}

// NewHTTPServer 미들웨어 체인이 설정된 Echo 인스턴스를 생성합니다. 라우트는 포함되지 않습니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//  1. PanicRecovery: 다른 미들웨어의 panic도 복구하기 위해 가장 먼저 적용
//  2. RequestID: 로그에 request_id를 남기기 위해 로깅보다 먼저 적용
//  3. Server 헤더 제거
//  4. HTTPLogger: 429, 413 응답도 기록되도록 제한 미들웨어보다 먼저 적용
//  5. RateLimiting: IP별 요청 제한
//  6. BodyLimit: 요청 본문 크기 제한
//  7. ContextTimeout: 요청 Context에 처리 시간 제한 설정
//  8. Secure: 보안 헤더 추가
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.NewLogger()
	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	rps := cfg.RateLimitPerSecond
	if rps <= 0 {
		rps = constants.DefaultRateLimitPerSecond
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(rps, burst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.ContextTimeout(timeout))
	e.Use(middleware.Secure())

	return e
}
