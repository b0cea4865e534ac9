package handler

import (
	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	"github.com/darkkaiser/scriptfinder/internal/service/api/httputil"
)

// NewErrInvalidBody 요청 본문의 형식이 올바르지 않아 파싱에 실패했을 때 발생하는 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrValidationFailed 요청 데이터의 유효성 검증에 실패했을 때 발생하는 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}
