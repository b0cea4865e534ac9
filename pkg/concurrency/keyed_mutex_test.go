package concurrency

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func refCount(km *KeyedMutex, key string) int {
	km.mu.Lock()
	defer km.mu.Unlock()

	if e, ok := km.locks[key]; ok {
		return e.refCount
	}
	return 0
}

func TestKeyedMutex_LockUnlock(t *testing.T) {
	km := NewKeyedMutex()

	require.NoError(t, km.Lock(context.Background(), "a"))
	assert.Equal(t, 1, km.Len())
	assert.Equal(t, 1, refCount(km, "a"))

	km.Unlock("a")
	assert.Zero(t, km.Len(), "잠금을 해제하면 키가 정리되어야 합니다")
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	require.NoError(t, km.Lock(context.Background(), "a"))
	assert.True(t, km.TryLock("b"), "다른 키는 동시에 잠글 수 있어야 합니다")
	assert.False(t, km.TryLock("a"), "같은 키는 다시 잠글 수 없어야 합니다")
	assert.Equal(t, 1, refCount(km, "a"), "실패한 TryLock은 참조 수를 남기지 않아야 합니다")

	km.Unlock("a")
	km.Unlock("b")
	assert.Zero(t, km.Len())
}

func TestKeyedMutex_LockCanceled(t *testing.T) {
	km := NewKeyedMutex()
	require.NoError(t, km.Lock(context.Background(), "a"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := km.Lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, refCount(km, "a"), "취소된 대기자는 참조 수에서 빠져야 합니다")

	km.Unlock("a")
	assert.Zero(t, km.Len())
}

func TestKeyedMutex_WaiterAcquiresAfterUnlock(t *testing.T) {
	km := NewKeyedMutex()
	require.NoError(t, km.Lock(context.Background(), "a"))

	acquired := make(chan struct{})
	go func() {
		if err := km.Lock(context.Background(), "a"); err == nil {
			close(acquired)
		}
	}()

	require.Eventually(t, func() bool { return refCount(km, "a") == 2 }, time.Second, time.Millisecond)

	select {
	case <-acquired:
		t.Fatal("잠금이 해제되기 전에 획득되면 안 됩니다")
	default:
	}

	km.Unlock("a")

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("잠금이 해제되면 대기자가 잠금을 획득해야 합니다")
	}

	km.Unlock("a")
	assert.Zero(t, km.Len())
}

func TestKeyedMutex_UnlockPanics(t *testing.T) {
	km := NewKeyedMutex()

	assert.Panics(t, func() { km.Unlock("none") }, "등록되지 않은 키")

	require.NoError(t, km.Lock(context.Background(), "a"))
	km.Unlock("a")
	assert.Panics(t, func() { km.Unlock("a") }, "이미 해제된 키")
}

func TestKeyedMutex_MutualExclusion(t *testing.T) {
	km := NewKeyedMutex()

	var (
		wg      sync.WaitGroup
		inside  atomic.Int32
		maxSeen atomic.Int32
		counter int
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := km.Lock(context.Background(), "shared"); err != nil {
				return
			}
			defer km.Unlock("shared")

			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			counter++
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, int32(1), maxSeen.Load(), "같은 키의 임계 구역에는 하나의 고루틴만 있어야 합니다")
	assert.Zero(t, km.Len())
}
