package coroutine

import (
	"fmt"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

var (
	// ErrNilRoutine Start에 nil Routine이 전달되었을 때 반환됩니다.
	ErrNilRoutine = apperrors.New(apperrors.InvalidInput, "실행할 Routine이 nil입니다")

	// ErrUnsupportedYield 작업 본문이 대기 조건으로 해석할 수 없는 값을 yield했을 때 보고됩니다.
	// 해당 작업은 종료되지 않고 다음 Tick에 다시 진행됩니다.
	ErrUnsupportedYield = apperrors.New(apperrors.Internal, "지원하지 않는 yield 값입니다")

	// ErrStepFailed 작업 본문의 한 단계가 panic으로 중단되었거나 error를 yield했을 때 보고됩니다.
	// 해당 작업은 종료 처리되며, Task.Err()로 원인을 확인할 수 있습니다.
	ErrStepFailed = apperrors.New(apperrors.ExecutionFailed, "작업 단계 실행 중 오류가 발생하였습니다")

	// ErrOperationPending 아직 완료되지 않은 Operation의 결과를 조회했을 때 반환됩니다.
	ErrOperationPending = apperrors.New(apperrors.Unavailable, "비동기 작업이 아직 완료되지 않았습니다")
)

func newErrUnsupportedYield(t *Task, v any) error {
	return apperrors.Wrapf(ErrUnsupportedYield, apperrors.Internal, "작업('%s')이 지원하지 않는 값(%T)을 반환하였습니다", t.key, v)
}

func newErrStepPanic(t *Task, r any) error {
	return apperrors.Wrapf(ErrStepFailed, apperrors.Internal, "작업('%s') 실행 중 panic이 발생하였습니다: %v", t.key, r)
}

func newErrStepYieldedError(t *Task, err error) error {
	return apperrors.Wrapf(fmt.Errorf("%w: %w", ErrStepFailed, err), apperrors.ExecutionFailed, "작업('%s')이 오류를 반환하였습니다", t.key)
}

func newErrWaitPanic(t *Task, w Wait, r any) error {
	return apperrors.Wrapf(ErrStepFailed, apperrors.Internal, "작업('%s')의 대기 조건(%s) 평가 중 panic이 발생하였습니다: %v", t.key, w, r)
}
