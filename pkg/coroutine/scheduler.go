package coroutine

import (
	"time"

	applog "github.com/darkkaiser/scriptfinder/pkg/log"
)

const component = "coroutine"

// ErrorHandler 작업 실행 중 발생한 진단 에러를 전달받는 콜백입니다.
//
// ErrUnsupportedYield 계열의 에러는 작업이 계속 진행되는 경우이고,
// ErrStepFailed 계열의 에러는 작업이 종료된 경우입니다.
type ErrorHandler func(t *Task, err error)

// Option Scheduler 생성 시 적용할 선택 사항입니다.
type Option func(*Scheduler)

// WithErrorHandler 작업 실행 중 발생한 진단 에러를 전달받을 콜백을 지정합니다.
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *Scheduler) {
		s.errorHandler = h
	}
}

// WithName 로그에 함께 기록될 스케줄러의 이름을 지정합니다.
func WithName(name string) Option {
	return func(s *Scheduler) {
		s.name = name
	}
}

// Scheduler 외부에서 호출되는 Tick에 의해 작업들을 한 단계씩 진행시키는 협력형 스케줄러입니다.
//
// Scheduler는 스레드 안전하지 않습니다. 모든 메서드는 같은 논리적 스레드에서 호출해야 합니다.
type Scheduler struct {
	name string

	registry *registry

	// tickCount 지금까지 시작된 Tick의 수입니다. Join 대기 조건의 "다음 Tick" 판단에 사용합니다.
	tickCount uint64

	errorHandler ErrorHandler
}

// New 새로운 Scheduler를 생성합니다.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		name:     "default",
		registry: newRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start 작업을 등록하고, 첫 번째 단계를 호출 즉시 동기적으로 실행합니다.
//
// 첫 번째 단계에서 작업 본문이 끝나면 반환된 Task는 이미 Finished 상태입니다.
// 같은 Owner와 같은 Routine 이름으로 여러 번 호출하면 같은 Key의 버킷에 작업이 누적됩니다.
//
// 매개변수:
//   - r: 실행할 작업 본문
//   - owner: 작업을 시작한 주체. StopAllForOwner로 일괄 중지할 때 사용됩니다. (OwnerOf 참고)
//
// 반환값:
//   - r이 nil이면 ErrNilRoutine을 반환하며 아무것도 등록하지 않습니다.
func (s *Scheduler) Start(r Routine, owner any) (*Task, error) {
	if r == nil {
		return nil, ErrNilRoutine
	}

	t := newTask(Key{Owner: OwnerOf(owner), Method: r.Name()}, r)
	s.registry.register(t)

	applog.WithComponentAndFields(component, applog.Fields{
		"scheduler": s.name,
		"task":      t.key.String(),
	}).Trace("작업이 등록되었습니다")

	s.advance(t)

	return t, nil
}

// StopTask Key에 해당하는 모든 작업을 중지합니다. 등록되지 않은 Key이면 아무것도 하지 않습니다.
func (s *Scheduler) StopTask(key Key) {
	s.cancel(s.registry.stopOne(key))
}

// StopAllForOwner Owner가 시작한 모든 작업을 중지합니다. 등록되지 않은 Owner이면 아무것도 하지 않습니다.
func (s *Scheduler) StopAllForOwner(owner any) {
	s.cancel(s.registry.stopAll(OwnerOf(owner)))
}

// StopAll 등록된 모든 작업을 중지합니다. 호스트가 종료될 때 호출합니다.
func (s *Scheduler) StopAll() {
	s.cancel(s.registry.clear())
}

// Cancel 작업 하나만 중지합니다. 같은 Key의 다른 작업에는 영향을 주지 않습니다.
// 이미 종료된 작업이면 아무것도 하지 않습니다.
func (s *Scheduler) Cancel(t *Task) {
	if t == nil || t.state != StateRunning {
		return
	}

	s.registry.unregister(t)
	s.cancel([]*Task{t})
}

// Tick 모든 작업의 대기 조건을 평가하고, 재개 가능한 작업을 한 단계씩 진행시킵니다.
//
// 매개변수:
//   - dt: 이전 Tick 이후 경과한 시간. Delay 대기 조건의 남은 시간에서 차감됩니다.
//
// 순회는 Tick 시작 시점의 스냅샷을 기준으로 하며, 각 버킷의 작업은 등록의 역순으로 진행됩니다.
// Tick 도중 새로 시작된 작업은 다음 Tick부터 평가되며, 하나의 작업은 Tick마다 최대 한 단계만 진행됩니다.
func (s *Scheduler) Tick(dt time.Duration) {
	s.tickCount++

	for _, b := range s.registry.snapshot() {
		for i := len(b.tasks) - 1; i >= 0; i-- {
			t := b.tasks[i]

			// 이번 Tick에서 앞서 진행된 작업에 의해 중지되었을 수 있습니다.
			if t.state != StateRunning {
				continue
			}

			if !s.ready(t, dt) {
				continue
			}

			s.advance(t)
		}

		s.registry.prune(b.key)
	}
}

// Len 등록된 작업의 수를 반환합니다.
func (s *Scheduler) Len() int {
	return s.registry.len()
}

// Tasks Owner가 시작하여 아직 진행 중인 작업들을 반환합니다.
func (s *Scheduler) Tasks(owner any) []*Task {
	return s.registry.tasksOf(OwnerOf(owner))
}

// TickCount 지금까지 실행된 Tick의 수를 반환합니다.
func (s *Scheduler) TickCount() uint64 {
	return s.tickCount
}

// ready 작업의 대기 조건을 평가합니다. 평가 중 발생한 panic은 작업 실패로 처리합니다.
func (s *Scheduler) ready(t *Task, dt time.Duration) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			s.fail(t, newErrWaitPanic(t, t.wait, r))
		}
	}()

	return t.wait.ready(dt, s.tickCount)
}

// advance 작업을 한 단계 진행시키고 그 결과에 따라 작업의 상태를 갱신합니다.
func (s *Scheduler) advance(t *Task) {
	v, ok, err := s.step(t)

	// 작업 본문 안에서 자기 자신(또는 Owner 전체)이 중지된 경우입니다.
	if t.state != StateRunning {
		t.release()
		return
	}

	if err != nil {
		s.fail(t, err)
		return
	}

	if !ok {
		s.finish(t, nil)
		return
	}

	if yieldedErr, isErr := v.(error); isErr {
		s.fail(t, newErrStepYieldedError(t, yieldedErr))
		return
	}

	w, supported := classify(v)
	t.wait = w

	if !supported {
		s.report(t, newErrUnsupportedYield(t, v), false)
	}
}

// step 작업 본문의 한 단계를 실행합니다. 작업 본문에서 발생한 panic은 에러로 변환합니다.
func (s *Scheduler) step(t *Task) (v any, ok bool, err error) {
	t.stepping = true

	defer func() {
		t.stepping = false

		if r := recover(); r != nil {
			v, ok, err = nil, false, newErrStepPanic(t, r)
		}
	}()

	v, ok = t.routine.Next()

	return v, ok, nil
}

// finish 작업을 모든 인덱스에서 제거한 뒤 종료 상태로 전환합니다.
func (s *Scheduler) finish(t *Task, err error) {
	s.registry.unregister(t)

	t.state = StateFinished
	t.err = err
	t.wait = Wait{}
	t.doneTick = s.tickCount
	t.release()

	applog.WithComponentAndFields(component, applog.Fields{
		"scheduler": s.name,
		"task":      t.key.String(),
	}).Trace("작업이 종료되었습니다")
}

// fail 작업을 실패로 종료하고 진단 에러를 보고합니다.
func (s *Scheduler) fail(t *Task, err error) {
	s.finish(t, err)
	s.report(t, err, true)
}

func (s *Scheduler) cancel(tasks []*Task) {
	for _, t := range tasks {
		if t.state != StateRunning {
			continue
		}

		t.state = StateCanceled
		t.wait = Wait{}
		t.doneTick = s.tickCount
		t.release()

		applog.WithComponentAndFields(component, applog.Fields{
			"scheduler": s.name,
			"task":      t.key.String(),
		}).Debug("작업이 중지되었습니다")
	}
}

func (s *Scheduler) report(t *Task, err error, terminated bool) {
	fields := applog.Fields{
		"scheduler":  s.name,
		"task":       t.key.String(),
		"terminated": terminated,
		"error":      err,
	}
	applog.WithComponentAndFields(component, fields).Error("작업 실행 중 오류가 발생하였습니다")

	if s.errorHandler != nil {
		s.errorHandler(t, err)
	}
}
