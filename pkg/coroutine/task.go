package coroutine

// State 작업의 생명주기 상태입니다.
type State uint8

const (
	// StateRunning 스케줄러에 등록되어 진행 중인 상태
	StateRunning State = iota

	// StateFinished 작업 본문이 끝까지 실행되었거나, 실행 중 실패하여 종료된 상태
	StateFinished

	// StateCanceled StopTask, StopAllForOwner, Cancel에 의해 중지된 상태
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateFinished:
		return "Finished"
	case StateCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Task 스케줄러에 등록된 작업 하나의 레코드이자 호출자에게 반환되는 핸들입니다.
//
// 모든 필드는 스케줄러만 변경하며, 호출자는 읽기 전용 메서드를 통해서만 상태를 확인합니다.
type Task struct {
	key     Key
	routine Routine
	wait    Wait
	state   State
	err     error

	// doneTick 작업이 종료된 시점의 Tick 번호입니다. Join 대기 조건이 "다음 Tick"을 판단할 때 사용합니다.
	doneTick uint64

	// stepping 작업 본문이 실행 중인 동안 true입니다.
	// 작업 본문 안에서 자기 자신이 중지된 경우 Routine.Stop 호출을 단계가 끝날 때까지 미룹니다.
	stepping bool
	released bool
}

func newTask(key Key, r Routine) *Task {
	return &Task{key: key, routine: r, state: StateRunning}
}

// Key 작업의 식별 키를 반환합니다.
func (t *Task) Key() Key { return t.key }

// Name 작업의 메서드 이름을 반환합니다.
func (t *Task) Name() string { return t.key.Method }

// State 작업의 현재 상태를 반환합니다.
func (t *Task) State() State { return t.state }

// Finished 작업 본문이 끝까지 실행되었거나 실패하여 종료되었는지 여부를 반환합니다.
func (t *Task) Finished() bool { return t.state == StateFinished }

// Canceled 작업이 외부 요청에 의해 중지되었는지 여부를 반환합니다.
func (t *Task) Canceled() bool { return t.state == StateCanceled }

// Done 작업이 더 이상 진행되지 않는 상태(완료 또는 취소)인지 여부를 반환합니다.
func (t *Task) Done() bool { return t.state != StateRunning }

// Err 작업 본문이 실패하여 종료된 경우 그 원인을 반환합니다.
func (t *Task) Err() error { return t.err }

// doneBefore 작업이 tick보다 앞선 Tick(또는 Tick 사이)에 종료되었는지 여부를 반환합니다.
func (t *Task) doneBefore(tick uint64) bool {
	return t.state != StateRunning && t.doneTick < tick
}

// release 작업이 스케줄러를 떠날 때 Routine의 리소스를 해제합니다.
func (t *Task) release() {
	if t.stepping || t.released {
		return
	}

	t.released = true
	t.routine.Stop()
}
