// Package runner 협력형 작업 스케줄러를 소유하고, 일정한 주기로 Tick을 호출하는 호스트 루프를 제공합니다.
//
// 스케줄러는 스레드 안전하지 않으므로 모든 접근은 실행기의 이벤트 루프 고루틴에서만 이루어집니다.
// 다른 고루틴(API 핸들러, Cron 등)은 Do를 통해 이벤트 루프에서 실행될 함수를 전달합니다.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/scriptfinder/pkg/coroutine"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
)

const component = "runner"

type request struct {
	fn    func(*coroutine.Scheduler)
	err   error
	doneC chan struct{}
}

// Service 협력형 스케줄러를 구동하는 실행기입니다.
type Service struct {
	interval  time.Duration
	scheduler *coroutine.Scheduler

	// requestC 버퍼가 없으므로 전송이 성공하면 이벤트 루프가 요청을 받아 처리 중인 것이 보장됩니다.
	requestC chan *request

	// stoppedC 이벤트 루프가 종료되면 닫힙니다.
	stoppedC chan struct{}

	running   bool
	runningMu sync.Mutex

	// now 테스트에서 경과 시간을 제어하기 위해 사용합니다.
	now func() time.Time
}

// NewService 새로운 실행기를 생성합니다.
//
// 매개변수:
//   - interval: Tick 호출 주기. 0 이하이면 panic이 발생합니다.
//   - opts: 내부 스케줄러 생성 시 적용할 선택 사항
func NewService(interval time.Duration, opts ...coroutine.Option) *Service {
	if interval <= 0 {
		panic("Tick 주기는 0보다 커야 합니다")
	}

	return &Service{
		interval:  interval,
		scheduler: coroutine.New(append([]coroutine.Option{coroutine.WithName(component)}, opts...)...),
		requestC:  make(chan *request),
		stoppedC:  make(chan struct{}),
		now:       time.Now,
	}
}

// Start 이벤트 루프를 별도의 고루틴에서 시작합니다. 이미 실행 중이면 경고 로그만 남깁니다.
//
// 매개변수:
//   - serviceStopCtx: 취소되면 등록된 모든 작업을 중지하고 이벤트 루프를 종료합니다.
//   - serviceStopWG: 이벤트 루프 고루틴이 완전히 종료될 때 Done이 호출됩니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: 작업 실행기 초기화 프로세스를 시작합니다")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("작업 실행기가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	select {
	case <-s.stoppedC:
		defer serviceStopWG.Done()
		return ErrServiceNotRunning
	default:
	}

	s.running = true

	go s.runEventLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponentAndFields(component, applog.Fields{
		"tick_interval": s.interval.String(),
	}).Info("서비스 시작 완료: 작업 실행기가 정상적으로 초기화되었습니다")

	return nil
}

// runEventLoop 실행기의 메인 이벤트 루프입니다.
//
//   - ticker.C: 이전 Tick 이후 경과한 시간으로 스케줄러의 Tick을 호출합니다.
//   - requestC: Do로 전달된 함수를 스케줄러와 함께 호출합니다.
//   - serviceStopCtx.Done(): 모든 작업을 중지하고 루프를 종료합니다.
func (s *Service) runEventLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()
	defer close(s.stoppedC)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.now()

loop:
	for {
		// 한 회차에서 발생한 panic이 루프 전체를 종료시키지 않도록 익명 함수 안에서 복구합니다.
		shouldStop := func() bool {
			defer func() {
				if r := recover(); r != nil {
					applog.WithComponentAndFields(component, applog.Fields{
						"panic":      r,
						"task_count": s.scheduler.Len(),
					}).Error("작업 실행기 이벤트 루프 오류 복구: 예기치 않은 panic 상태에서 회복되어 처리를 재개합니다")
				}
			}()

			select {
			case <-ticker.C:
				now := s.now()
				s.scheduler.Tick(now.Sub(last))
				last = now

			case req := <-s.requestC:
				s.handleRequest(req)

			case <-serviceStopCtx.Done():
				s.handleStop()
				return true
			}

			return false
		}()

		if shouldStop {
			break loop
		}
	}
}

func (s *Service) handleRequest(req *request) {
	defer close(req.doneC)
	defer func() {
		if r := recover(); r != nil {
			req.err = newErrRequestPanic(r)

			applog.WithComponentAndFields(component, applog.Fields{
				"panic": r,
			}).Error("작업 실행기 요청 처리 중 panic이 발생하였습니다")
		}
	}()

	req.fn(s.scheduler)
}

func (s *Service) handleStop() {
	applog.WithComponent(component).Info("작업 실행기 중지 진입: 등록된 모든 작업을 중지합니다")

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	// 전송 대기 중인 요청은 버리지 않고 먼저 처리합니다. 그 요청이 시작한 작업도 아래에서 함께 중지됩니다.
	s.drainRequests()

	count := s.scheduler.Len()
	s.scheduler.StopAll()

	applog.WithComponentAndFields(component, applog.Fields{
		"stopped_task_count": count,
		"tick_count":         s.scheduler.TickCount(),
	}).Info("작업 실행기 중지 완료")
}

func (s *Service) drainRequests() {
	for {
		select {
		case req := <-s.requestC:
			s.handleRequest(req)
		default:
			return
		}
	}
}

// Do fn을 이벤트 루프 고루틴에서 실행하고 완료될 때까지 기다립니다.
//
// fn에서 발생한 panic은 에러로 변환되어 반환됩니다.
//
// 반환값:
//   - 실행기가 실행 중이 아니면 ErrServiceNotRunning
//   - ctx가 먼저 취소되면 ctx.Err(). 이 경우에도 fn은 이후에 실행될 수 있습니다.
func (s *Service) Do(ctx context.Context, fn func(*coroutine.Scheduler)) error {
	if fn == nil {
		return ErrNilRequest
	}

	s.runningMu.Lock()
	running := s.running
	s.runningMu.Unlock()

	if !running {
		return ErrServiceNotRunning
	}

	req := &request{fn: fn, doneC: make(chan struct{})}

	select {
	case s.requestC <- req:
	case <-s.stoppedC:
		return ErrServiceNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.doneC:
		return req.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Interval Tick 호출 주기를 반환합니다.
func (s *Service) Interval() time.Duration {
	return s.interval
}

// Health 실행기의 상태를 확인합니다. 이벤트 루프가 실행 중이 아니면 ErrServiceNotRunning을 반환합니다.
func (s *Service) Health() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return ErrServiceNotRunning
	}

	return nil
}
