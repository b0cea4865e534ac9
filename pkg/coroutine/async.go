package coroutine

import (
	"context"
	"sync/atomic"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

// Operation 블로킹 함수를 별도의 고루틴에서 실행하고, 그 완료 여부를 AsyncOp로 노출합니다.
//
// 작업 본문은 Operation을 yield(또는 Await)하여 완료될 때까지 대기한 뒤, Result로 결과를 가져옵니다.
// 작업이 중지되더라도 Operation은 자동으로 취소되지 않으므로, 필요한 경우 호출자가 Cancel을 호출해야 합니다.
type Operation[T any] struct {
	done   atomic.Bool
	doneC  chan struct{}
	cancel context.CancelFunc

	// result, err는 done이 true로 바뀌기 전에 한 번만 기록됩니다.
	result T
	err    error
}

// Go fn을 새로운 고루틴에서 실행하는 Operation을 생성합니다.
//
// fn에 전달되는 Context는 ctx의 하위 Context이며, Cancel 호출 시 취소됩니다.
// fn에서 발생한 panic은 Internal 타입의 에러로 변환되어 Result로 반환됩니다.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Operation[T] {
	ctx, cancel := context.WithCancel(ctx)

	op := &Operation[T]{
		doneC:  make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		defer close(op.doneC)
		defer func() {
			if r := recover(); r != nil {
				op.err = apperrors.Newf(apperrors.Internal, "비동기 작업 실행 중 panic이 발생하였습니다: %v", r)
			}
			op.done.Store(true)
		}()

		op.result, op.err = fn(ctx)
	}()

	return op
}

// IsDone 작업이 완료되었는지 여부를 반환합니다.
func (op *Operation[T]) IsDone() bool {
	return op.done.Load()
}

// Done 작업이 완료되면 닫히는 채널을 반환합니다.
func (op *Operation[T]) Done() <-chan struct{} {
	return op.doneC
}

// Result 작업의 결과를 반환합니다. 작업이 아직 완료되지 않았으면 ErrOperationPending을 반환합니다.
func (op *Operation[T]) Result() (T, error) {
	if !op.done.Load() {
		var zero T
		return zero, ErrOperationPending
	}

	return op.result, op.err
}

// Cancel fn에 전달된 Context를 취소합니다. 작업의 완료 여부는 fn이 Context 취소에 반응하는지에 달려 있습니다.
func (op *Operation[T]) Cancel() {
	op.cancel()
}
