package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	"github.com/darkkaiser/scriptfinder/internal/service/api/model/response"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 HTTP 에러를 가로채서 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// 핸들러가 AppError를 그대로 반환한 경우에는 ErrorType에 따라 상태 코드를 결정합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := resolve(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이중 응답 방지
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

var defaultMessages = map[int]string{
	http.StatusBadRequest:            constants.ErrMsgBadRequest,
	http.StatusNotFound:              constants.ErrMsgNotFound,
	http.StatusConflict:              constants.ErrMsgConflict,
	http.StatusRequestEntityTooLarge: constants.ErrMsgRequestEntityTooLarge,
	http.StatusUnsupportedMediaType:  constants.ErrMsgUnsupportedMediaType,
	http.StatusTooManyRequests:       constants.ErrMsgTooManyRequests,
	http.StatusInternalServerError:   constants.ErrMsgInternalServer,
	http.StatusServiceUnavailable:    constants.ErrMsgServiceUnavailable,
	http.StatusGatewayTimeout:        constants.ErrMsgTimeout,
}

// resolve 에러에서 응답 상태 코드와 클라이언트에게 보여줄 메시지를 결정합니다.
func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		switch m := he.Message.(type) {
		case string:
			message = m
		case response.ErrorResponse:
			message = m.Message
		}

		// 미들웨어가 만든 기본 상태 메시지는 클라이언트용 메시지로 바꿉니다.
		if m, ok := defaultMessages[he.Code]; ok && message == http.StatusText(he.Code) {
			message = m
		}

		return he.Code, message
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, constants.ErrMsgInternalServer
	}

	code := StatusCode(apperrors.UnderlyingType(err))
	if code >= http.StatusInternalServerError && code != http.StatusServiceUnavailable && code != http.StatusGatewayTimeout {
		// 내부 오류의 상세 내용은 로그에만 남깁니다.
		return code, constants.ErrMsgInternalServer
	}

	return code, appErr.Message()
}

// StatusCode ErrorType에 대응하는 HTTP 상태 코드를 반환합니다.
func StatusCode(t apperrors.ErrorType) int {
	switch t {
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.Timeout:
		return http.StatusGatewayTimeout
	case apperrors.Unavailable, apperrors.Canceled:
		return http.StatusServiceUnavailable
	case apperrors.ParsingFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
