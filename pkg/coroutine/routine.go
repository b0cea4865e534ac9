package coroutine

import (
	"iter"
	"reflect"
	"runtime"
	"strings"
)

// Routine 한 단계씩 재개할 수 있는 작업 본문입니다.
type Routine interface {
	// Name 작업의 메서드 이름입니다. Key의 일부로 사용되므로 작업이 살아있는 동안 변하지 않아야 합니다.
	Name() string

	// Next 작업을 한 단계 진행시키고, 다음 재개 조건(yield 값)을 반환합니다.
	// 두 번째 반환값이 false이면 작업 본문이 모두 끝났음(exhausted)을 의미합니다.
	Next() (any, bool)

	// Stop 작업이 스케줄러를 떠날 때 한 번 호출되어 내부 리소스를 해제합니다.
	// 여러 번 호출해도 안전해야 합니다.
	Stop()
}

// seqRoutine iter.Seq 형태의 제너레이터 함수를 iter.Pull로 구동하는 Routine입니다.
type seqRoutine struct {
	name string
	next func() (any, bool)
	stop func()
}

// FromSeq 제너레이터 함수로부터 Routine을 생성합니다.
//
// 작업 본문은 yield에 대기 조건을 전달하여 스케줄러에 제어권을 돌려줍니다.
// yield가 false를 반환하면 작업이 외부에서 중지된 것이므로, 본문은 즉시 반환해야 합니다.
//
// name이 비어 있으면 seq 함수의 선언된 이름을 사용합니다.
// seq가 nil이면 nil을 반환하며, 이를 Start에 전달하면 ErrNilRoutine이 반환됩니다.
func FromSeq(name string, seq iter.Seq[any]) Routine {
	if seq == nil {
		return nil
	}
	if name == "" {
		name = funcName(seq)
	}

	next, stop := iter.Pull(seq)

	return &seqRoutine{name: name, next: next, stop: stop}
}

func (r *seqRoutine) Name() string      { return r.name }
func (r *seqRoutine) Next() (any, bool) { return r.next() }
func (r *seqRoutine) Stop()             { r.stop() }

// funcRoutine 호출될 때마다 한 단계씩 진행하는 상태 머신 함수를 감싸는 Routine입니다.
type funcRoutine struct {
	name string
	step func() (any, bool)
	done bool
}

// FromFunc 직접 작성한 상태 머신 함수로부터 Routine을 생성합니다.
//
// step은 호출될 때마다 한 단계를 진행하고, 더 이상 진행할 단계가 없으면 false를 반환해야 합니다.
func FromFunc(name string, step func() (any, bool)) Routine {
	if step == nil {
		return nil
	}
	if name == "" {
		name = funcName(step)
	}

	return &funcRoutine{name: name, step: step}
}

func (r *funcRoutine) Name() string { return r.name }

func (r *funcRoutine) Next() (any, bool) {
	if r.done {
		return nil, false
	}

	v, ok := r.step()
	if !ok {
		r.done = true
	}

	return v, ok
}

func (r *funcRoutine) Stop() { r.done = true }

// funcName 함수 값의 선언된 이름을 패키지 경로를 제외한 형태로 반환합니다.
// 예: "github.com/darkkaiser/scriptfinder/internal/service/search.(*Service).walkLocal-fm" -> "search.(*Service).walkLocal"
func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "<unknown>"
	}

	name := f.Name()
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}

	return strings.TrimSuffix(name, "-fm")
}
