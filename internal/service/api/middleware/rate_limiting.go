package middleware

import (
	"sync"

	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// maxIPRateLimiters 메모리에 유지하는 최대 IP 수입니다. 초과하면 임의의 항목 하나를 제거합니다.
	maxIPRateLimiters = 10000

	// retryAfterSeconds 요청이 제한되었을 때 Retry-After 헤더로 제안하는 대기 시간(초)입니다.
	retryAfterSeconds = "1"
)

// ipRateLimiter IP 주소별 Token Bucket Limiter를 관리합니다.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(requestsPerSecond int, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter IP 주소에 대한 Limiter를 반환합니다. 없으면 새로 생성합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if limiter, exists := i.limiters[ip]; exists {
		return limiter
	}

	if len(i.limiters) >= maxIPRateLimiters {
		// Go Map의 무작위 순회 특성을 이용하여 임의의 항목 하나를 제거합니다.
		for k := range i.limiters {
			delete(i.limiters, k)
			break
		}
	}

	limiter := rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimiting IP 기반 Rate Limiting 미들웨어를 반환합니다.
//
// 제한을 초과하면 Retry-After 헤더와 함께 429 Too Many Requests를 응답합니다.
//
// Panics:
//   - requestsPerSecond 또는 burst가 0 이하인 경우
func RateLimiting(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(constants.PanicMsgRateLimitRequestsPerSecondInvalid)
	}
	if burst <= 0 {
		panic(constants.PanicMsgRateLimitBurstInvalid)
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set("Retry-After", retryAfterSeconds)

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
