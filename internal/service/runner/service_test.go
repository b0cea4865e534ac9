package runner

import (
	"context"
	"iter"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/pkg/coroutine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startService(t *testing.T, interval time.Duration) (*Service, context.CancelFunc, *sync.WaitGroup) {
	t.Helper()

	s := NewService(interval)
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	return s, cancel, wg
}

func countingRoutine(steps int, wait coroutine.Wait) coroutine.Routine {
	return coroutine.FromSeq("counting", func(yield func(any) bool) {
		for range steps {
			if !yield(wait) {
				return
			}
		}
	})
}

func TestNewService_InvalidInterval(t *testing.T) {
	assert.Panics(t, func() { NewService(0) })
}

func TestService_Do_NotRunning(t *testing.T) {
	s := NewService(time.Millisecond)

	err := s.Do(context.Background(), func(*coroutine.Scheduler) {})
	assert.ErrorIs(t, err, ErrServiceNotRunning)
	assert.ErrorIs(t, s.Do(context.Background(), nil), ErrNilRequest)
}

func TestService_Start_Duplicate(t *testing.T) {
	s, _, wg := startService(t, time.Millisecond)

	wg.Add(1)
	assert.NoError(t, s.Start(context.Background(), wg), "중복 호출은 에러 없이 무시되어야 합니다")
}

func TestService_TasksProgressOnTicks(t *testing.T) {
	s, _, _ := startService(t, time.Millisecond)

	var task *coroutine.Task
	require.NoError(t, s.Do(context.Background(), func(sc *coroutine.Scheduler) {
		var err error
		task, err = sc.Start(countingRoutine(3, coroutine.Delay(2*time.Millisecond)), "owner")
		assert.NoError(t, err)
	}))

	assert.Eventually(t, func() bool {
		finished := false
		_ = s.Do(context.Background(), func(*coroutine.Scheduler) { finished = task.Finished() })
		return finished
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, s.Do(context.Background(), func(sc *coroutine.Scheduler) {
		assert.NoError(t, task.Err())
		assert.Zero(t, sc.Len())
		assert.Positive(t, sc.TickCount())
	}))
}

func TestService_Do_PanicRecovered(t *testing.T) {
	s, _, _ := startService(t, time.Millisecond)

	err := s.Do(context.Background(), func(*coroutine.Scheduler) { panic("boom") })
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Internal))
	assert.Contains(t, err.Error(), "boom")

	called := false
	require.NoError(t, s.Do(context.Background(), func(*coroutine.Scheduler) { called = true }), "panic 이후에도 이벤트 루프는 계속 동작해야 합니다")
	assert.True(t, called)
}

func TestService_Do_ContextCanceled(t *testing.T) {
	s, _, _ := startService(t, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 전송과 취소가 동시에 준비된 경우 어느 쪽이 선택될지 알 수 없으므로, 에러인 경우만 확인합니다.
	if err := s.Do(ctx, func(*coroutine.Scheduler) {}); err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestService_StopCancelsAllTasks(t *testing.T) {
	s, cancel, wg := startService(t, time.Millisecond)

	var task *coroutine.Task
	require.NoError(t, s.Do(context.Background(), func(sc *coroutine.Scheduler) {
		var seq iter.Seq[any] = func(yield func(any) bool) {
			for yield(coroutine.Delay(time.Hour)) {
			}
		}
		task, _ = sc.Start(coroutine.FromSeq("forever", seq), "owner")
	}))

	cancel()
	wg.Wait()

	assert.True(t, task.Canceled())
	assert.ErrorIs(t, s.Do(context.Background(), func(*coroutine.Scheduler) {}), ErrServiceNotRunning)

	wg.Add(1)
	assert.ErrorIs(t, s.Start(context.Background(), wg), ErrServiceNotRunning, "종료된 실행기는 다시 시작할 수 없습니다")
}

func TestService_Health(t *testing.T) {
	s := NewService(time.Millisecond)
	assert.ErrorIs(t, s.Health(), ErrServiceNotRunning)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	assert.NoError(t, s.Health())

	cancel()
	wg.Wait()
	assert.ErrorIs(t, s.Health(), ErrServiceNotRunning)
}
