// Package concurrency 고루틴 간 동기화에 사용하는 보조 타입을 제공합니다.
package concurrency

import (
	"context"
	"sync"
)

// KeyedMutex 키별로 독립적인 배타 잠금을 제공합니다. 서로 다른 키에 대한 작업은 동시에 진행될 수 있습니다.
//
// 잠금을 기다리는 고루틴이 없는 키는 즉시 메모리에서 정리됩니다.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	// sem 용량이 1인 채널입니다. 값이 들어 있으면 잠긴 상태입니다.
	sem chan struct{}

	// refCount 잠금을 소유하거나 기다리는 고루틴의 수입니다.
	refCount int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*entry),
	}
}

// Len 잠겨 있거나 잠금을 기다리는 고루틴이 있는 키의 수를 반환합니다.
func (km *KeyedMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}

// Lock key에 대한 잠금을 얻을 때까지 기다립니다.
//
// ctx가 먼저 취소되면 잠금을 얻지 않고 ctx.Err()를 반환합니다. 이때는 Unlock을 호출하면 안 됩니다.
func (km *KeyedMutex) Lock(ctx context.Context, key string) error {
	e := km.ref(key)

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		km.unref(key, e)
		return ctx.Err()
	}
}

// TryLock 기다리지 않고 key에 대한 잠금을 시도합니다. 잠금을 얻었으면 true를 반환합니다.
func (km *KeyedMutex) TryLock(key string) bool {
	e := km.ref(key)

	select {
	case e.sem <- struct{}{}:
		return true
	default:
		km.unref(key, e)
		return false
	}
}

// Unlock key에 대한 잠금을 해제합니다. 잠기지 않은 키이면 panic이 발생합니다.
func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("잠기지 않은 키의 잠금 해제 시도: " + key)
	}

	select {
	case <-e.sem:
	default:
		panic("잠기지 않은 키의 잠금 해제 시도: " + key)
	}

	e.refCount--
	if e.refCount == 0 {
		delete(km.locks, key)
	}
}

func (km *KeyedMutex) ref(key string) *entry {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		km.locks[key] = e
	}
	e.refCount++

	return e
}

func (km *KeyedMutex) unref(key string, e *entry) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e.refCount--
	if e.refCount == 0 {
		delete(km.locks, key)
	}
}
