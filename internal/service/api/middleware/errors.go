package middleware

import (
	"net/http"

	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	"github.com/darkkaiser/scriptfinder/internal/service/api/httputil"
)

var (
	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환할 429 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrUnsupportedMediaType 요청의 Content-Type을 서버가 지원하지 않을 때 반환할 415 에러입니다.
	ErrUnsupportedMediaType = httputil.NewHTTPError(http.StatusUnsupportedMediaType, constants.ErrMsgUnsupportedMediaType)
)
