// Package scheduler 설정 파일에 저장된 검색(schedules)을 Cron 스케줄에 맞춰 주기적으로 시작합니다.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/darkkaiser/scriptfinder/internal/config"
	"github.com/darkkaiser/scriptfinder/internal/service/search"
	"github.com/darkkaiser/scriptfinder/pkg/cronx"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// searchStartTimeout 검색 시작 요청 시 최대 대기 시간 (블로킹 방지)
const searchStartTimeout = 5 * time.Second

// Searcher 검색 세션을 시작하는 인터페이스입니다. search.Service가 구현합니다.
type Searcher interface {
	Search(ctx context.Context, term string) (*search.Session, error)
}

// Scheduler 저장된 검색들을 Cron 스케줄에 맞춰 자동으로 시작하는 서비스입니다.
type Scheduler struct {
	schedules []config.ScheduleConfig

	cron *cron.Cron

	searcher Searcher

	// registered 등록에 성공한 스케줄의 ID 목록입니다.
	registered []string

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다. searcher가 nil이면 panic이 발생합니다.
func NewService(schedules []config.ScheduleConfig, searcher Searcher) *Scheduler {
	if searcher == nil {
		panic("Searcher는 필수입니다")
	}

	return &Scheduler{
		schedules: schedules,
		searcher:  searcher,
	}
}

// Start 스케줄러를 시작하고 설정 파일에 정의된 저장된 검색들을 Cron 엔진에 등록합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
//
// 반환값:
//   - error: searcher가 nil인 경우
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.searcher == nil {
		serviceStopWG.Done()
		return ErrSearcherNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	// StandardParser: 초 단위 스케줄링 (6개 필드: 초 분 시 일 월 요일)
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	s.registerSchedules()

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_schedules": len(s.cron.Entries()),
		"total_schedules":      len(s.schedules),
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 중지합니다. 실행 중인 검색 시작 요청이 끝날 때까지 기다립니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// Registered 등록에 성공한 스케줄의 ID 목록을 반환합니다.
func (s *Scheduler) Registered() []string {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	return append([]string(nil), s.registered...)
}

// registerSchedules 잘못된 Cron 표현식을 가진 스케줄은 로그를 남기고 건너뜁니다.
func (s *Scheduler) registerSchedules() {
	s.registered = s.registered[:0]

	for _, sc := range s.schedules {
		scheduleID := sc.ID
		term := sc.Term

		_, err := s.cron.AddFunc(sc.TimeSpec, func() {
			s.runSearch(scheduleID, term)
		})
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"schedule_id": scheduleID,
				"error":       newErrInvalidCronSpec(scheduleID, sc.TimeSpec, err),
			}).Error("스케줄 등록 실패: 해당 스케줄을 건너뜁니다")
			continue
		}

		s.registered = append(s.registered, scheduleID)
	}
}

// runSearch 검색 세션을 시작합니다. 세션의 생명주기는 서비스 종료 신호와 분리하며,
// 작업 실행기가 응답하지 않는 경우를 대비하여 요청에만 제한 시간을 둡니다.
func (s *Scheduler) runSearch(scheduleID, term string) {
	ctx, cancel := context.WithTimeout(context.Background(), searchStartTimeout)
	defer cancel()

	fields := applog.Fields{
		"schedule_id": scheduleID,
		"term":        term,
	}

	sess, err := s.searcher.Search(ctx, term)
	if err != nil {
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("저장된 검색을 시작하지 못했습니다")
		return
	}

	fields["session_id"] = sess.ID()
	applog.WithComponentAndFields(component, fields).Info("저장된 검색을 시작하였습니다")
}
