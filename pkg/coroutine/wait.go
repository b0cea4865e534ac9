package coroutine

import (
	"time"
)

// KeepWaiter 외부 플래그가 대기 해제를 알릴 때까지 작업을 멈춰두는 사용자 정의 대기 조건입니다.
// 작업 본문이 이 인터페이스를 구현한 값을 yield하면, KeepWaiting()이 false를 반환하는 첫 Tick에 재개됩니다.
type KeepWaiter interface {
	KeepWaiting() bool
}

// AsyncOp 스케줄러 외부에서 진행되는 비동기 작업입니다. (HTTP 요청, 파일 다운로드 등)
// 작업 본문이 이 인터페이스를 구현한 값을 yield하면, IsDone()이 true를 반환하는 첫 Tick에 재개됩니다.
type AsyncOp interface {
	IsDone() bool
}

type waitKind uint8

const (
	waitImmediate waitKind = iota
	waitDelay
	waitFlag
	waitJoin
	waitAsync
)

func (k waitKind) String() string {
	switch k {
	case waitImmediate:
		return "Immediate"
	case waitDelay:
		return "Delay"
	case waitFlag:
		return "KeepWaiting"
	case waitJoin:
		return "Join"
	case waitAsync:
		return "Await"
	default:
		return "Unknown"
	}
}

// Wait 작업이 다음 단계로 재개되기 위한 대기 조건(Suspension Predicate)입니다.
//
// Wait는 닫힌 변형 타입이며 아래의 생성 함수로만 만들 수 있습니다. 제로 값은 Immediate와 같습니다.
type Wait struct {
	kind waitKind

	remaining   time.Duration
	keepWaiting func() bool
	task        *Task
	op          AsyncOp
}

// Immediate 다음 Tick에 바로 재개되는 대기 조건입니다.
func Immediate() Wait {
	return Wait{kind: waitImmediate}
}

// Delay 누적 경과 시간이 d를 초과하는 첫 Tick에 재개되는 대기 조건입니다.
//
// 매 Tick마다 남은 시간에서 경과 시간을 차감하며, 남은 시간이 0보다 "작아질 때" 재개됩니다.
// 예: Delay(1s)에 Tick(0.5s)가 두 번 호출되면 남은 시간이 정확히 0이므로 아직 재개되지 않습니다.
func Delay(d time.Duration) Wait {
	return Wait{kind: waitDelay, remaining: d}
}

// While cond가 true를 반환하는 동안 대기하는 조건입니다. cond가 nil이면 Immediate와 같습니다.
func While(cond func() bool) Wait {
	if cond == nil {
		return Immediate()
	}
	return Wait{kind: waitFlag, keepWaiting: cond}
}

// Until cond가 true를 반환할 때까지 대기하는 조건입니다. cond가 nil이면 Immediate와 같습니다.
func Until(cond func() bool) Wait {
	if cond == nil {
		return Immediate()
	}
	return Wait{kind: waitFlag, keepWaiting: func() bool { return !cond() }}
}

// Join 하위 작업 t가 종료(완료 또는 취소)된 Tick의 "다음" Tick에 재개되는 대기 조건입니다.
// t가 nil이면 Immediate와 같습니다.
func Join(t *Task) Wait {
	if t == nil {
		return Immediate()
	}
	return Wait{kind: waitJoin, task: t}
}

// Await 외부 비동기 작업 op가 완료되면 재개되는 대기 조건입니다. op가 nil이면 Immediate와 같습니다.
func Await(op AsyncOp) Wait {
	if op == nil {
		return Immediate()
	}
	return Wait{kind: waitAsync, op: op}
}

// String 로그 출력용 문자열 표현을 반환합니다.
func (w Wait) String() string {
	if w.kind == waitDelay {
		return "Delay(" + w.remaining.String() + ")"
	}
	return w.kind.String()
}

// ready Tick마다 정확히 한 번 평가되어 작업의 재개 여부를 반환합니다.
// Delay 조건은 평가될 때마다 남은 시간이 차감되므로, 같은 Tick에서 두 번 평가해서는 안 됩니다.
func (w *Wait) ready(dt time.Duration, tick uint64) bool {
	switch w.kind {
	case waitDelay:
		w.remaining -= dt
		return w.remaining < 0

	case waitFlag:
		return !w.keepWaiting()

	case waitJoin:
		return w.task.doneBefore(tick)

	case waitAsync:
		return w.op.IsDone()

	default:
		return true
	}
}

// classify 작업 본문이 yield한 값을 대기 조건으로 변환합니다.
//
// 지원하지 않는 값은 Immediate 조건과 함께 false를 반환합니다.
// error 값은 작업 실패로 처리되어야 하므로 이 함수에 전달되기 전에 걸러져야 합니다.
func classify(v any) (Wait, bool) {
	switch y := v.(type) {
	case nil:
		return Immediate(), true
	case Wait:
		return y, true
	case *Wait:
		if y == nil {
			return Immediate(), true
		}
		return *y, true
	case *Task:
		return Join(y), true
	case KeepWaiter:
		return While(y.KeepWaiting), true
	case AsyncOp:
		return Await(y), true
	default:
		return Immediate(), false
	}
}
