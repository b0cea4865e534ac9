package runner

import (
	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

var (
	// ErrServiceNotRunning 실행기가 시작되지 않았거나 이미 종료된 상태에서 요청이 들어왔을 때 반환됩니다.
	ErrServiceNotRunning = apperrors.New(apperrors.Unavailable, "작업 실행기가 현재 실행 중이지 않아 요청을 수행할 수 없습니다")

	// ErrNilRequest Do에 nil 함수가 전달되었을 때 반환됩니다.
	ErrNilRequest = apperrors.New(apperrors.InvalidInput, "실행할 요청 함수가 nil입니다")
)

func newErrRequestPanic(r any) error {
	return apperrors.Newf(apperrors.Internal, "작업 실행기 요청 처리 중 예기치 않은 내부 오류가 발생하였습니다 (상세: %v)", r)
}
