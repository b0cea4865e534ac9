// Package search 로컬 디렉터리와 원격 저장소에서 스크립트 파일을 이름으로 검색합니다.
//
// 하나의 검색 요청은 Session으로 표현되며, 실제 검색은 작업 실행기의 협력형 스케줄러 위에서
// 여러 개의 작업(로컬 탐색, 원격 저장소별 조회, 요청 제한 시간 감시)으로 나뉘어 조금씩 진행됩니다.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/scriptfinder/internal/pkg/idgen"
	"github.com/darkkaiser/scriptfinder/internal/service/fetcher"
	"github.com/darkkaiser/scriptfinder/pkg/coroutine"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/darkkaiser/scriptfinder/pkg/strutil"
	"golang.org/x/time/rate"
)

const component = "search"

// maxSessions 메모리에 보관하는 세션의 최대 수입니다. 초과하면 종료된 세션부터 오래된 순으로 제거됩니다.
const maxSessions = 128

// Runner 스케줄러에 접근할 수 있는 유일한 통로입니다. runner.Service가 구현합니다.
type Runner interface {
	Do(ctx context.Context, fn func(*coroutine.Scheduler)) error
}

// Config 검색 서비스 설정입니다.
type Config struct {
	LocalPaths  []string
	Extension   string
	MaxResults  int
	DirsPerStep int

	// Exclude 이름에 포함되면 결과에서 제외할 키워드 목록입니다. (예: "Editor", "Test")
	Exclude []string

	Sources []fetcher.Source

	// Timeout 원격 저장소 요청 하나의 제한 시간입니다. 스케줄러의 Tick 경과 시간으로 측정합니다.
	Timeout time.Duration

	// RatePerSecond 원격 저장소 요청의 초당 최대 횟수입니다. 0이면 제한하지 않습니다.
	RatePerSecond float64
	Burst         int
}

// Service 검색 세션을 생성하고 관리합니다.
type Service struct {
	config  Config
	runner  Runner
	fetcher fetcher.Fetcher
	limiter *rate.Limiter

	idGenerator idgen.Generator

	// ctx 원격 요청(Operation)의 부모 Context입니다. 서비스가 종료되면 취소됩니다.
	ctx    context.Context
	cancel context.CancelFunc

	sessions   map[string]*Session
	order      []string
	sessionsMu sync.Mutex

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 검색 서비스를 생성합니다. runner 또는 f가 nil이면 panic이 발생합니다.
func NewService(config Config, runner Runner, f fetcher.Fetcher) *Service {
	if runner == nil {
		panic("Runner는 필수입니다")
	}
	if f == nil {
		panic("Fetcher는 필수입니다")
	}

	if config.Extension == "" {
		config.Extension = ".cs"
	}
	if config.MaxResults <= 0 {
		config.MaxResults = 500
	}
	if config.DirsPerStep <= 0 {
		config.DirsPerStep = 8
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	var limiter *rate.Limiter
	if config.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RatePerSecond), max(config.Burst, 1))
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		config:   config,
		runner:   runner,
		fetcher:  f,
		limiter:  limiter,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// Start 서비스 종료 신호를 감시하는 고루틴을 시작합니다.
// serviceStopCtx가 취소되면 진행 중인 원격 요청을 취소하고, 실행 중인 세션을 모두 취소 상태로 전환합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("검색 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}
	s.running = true

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.cancel()

		canceled := 0
		s.sessionsMu.Lock()
		for _, sess := range s.sessions {
			if sess.finish(StatusCanceled) {
				canceled++
			}
		}
		s.sessionsMu.Unlock()

		applog.WithComponentAndFields(component, applog.Fields{
			"canceled_session_count": canceled,
		}).Info("검색 서비스 중지 완료")
	}()

	applog.WithComponentAndFields(component, applog.Fields{
		"local_path_count": len(s.config.LocalPaths),
		"source_count":     len(s.config.Sources),
	}).Info("서비스 시작 완료: 검색 서비스가 정상적으로 초기화되었습니다")

	return nil
}

// Search 새로운 검색 세션을 시작합니다. 세션은 즉시 반환되며, 검색은 작업 실행기에서 계속 진행됩니다.
//
// 반환값:
//   - 검색어가 비어 있으면 ErrEmptyTerm
//   - 작업 실행기에 요청을 전달하지 못하면 해당 에러
func (s *Service) Search(ctx context.Context, term string) (*Session, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	sess := newSession(s.idGenerator.New(), term, s.config.MaxResults, strutil.NewNameMatcher(term, s.config.Extension, s.config.Exclude))

	if err := s.runner.Do(ctx, func(sc *coroutine.Scheduler) {
		s.start(sc, sess)
	}); err != nil {
		// 실행기가 요청을 받은 뒤 ctx가 취소되었으면 세션의 작업이 이미 시작되었을 수 있습니다.
		s.abort(sess, err)
		return nil, err
	}

	s.store(sess)

	applog.WithComponentAndFields(component, applog.Fields{
		"session_id": sess.id,
		"term":       term,
	}).Info("검색 세션이 시작되었습니다")

	return sess, nil
}

// Get 세션을 조회합니다. 존재하지 않으면 ErrSessionNotFound를 반환합니다.
func (s *Service) Get(id string) (*Session, error) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}

// Cancel 세션이 시작한 모든 작업을 중지하고 세션을 취소 상태로 전환합니다.
// 이미 종료된 세션이면 아무것도 하지 않습니다.
func (s *Service) Cancel(ctx context.Context, id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.runner.Do(ctx, func(sc *coroutine.Scheduler) {
		sc.StopAllForOwner(sess)
	}); err != nil {
		return err
	}

	if sess.finish(StatusCanceled) {
		applog.WithComponentAndFields(component, applog.Fields{
			"session_id": id,
		}).Info("검색 세션이 취소되었습니다")
	}

	return nil
}

// abort 시작 요청이 실패한 세션의 작업을 중지합니다. 세션은 저장되지 않습니다.
func (s *Service) abort(sess *Session, cause error) {
	if err := s.runner.Do(context.Background(), func(sc *coroutine.Scheduler) {
		sc.StopAllForOwner(sess)
	}); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"session_id": sess.id,
			"error":      err,
		}).Warn("시작에 실패한 검색 세션의 작업을 중지할 수 없습니다")
	}

	sess.finish(StatusCanceled)

	applog.WithComponentAndFields(component, applog.Fields{
		"session_id": sess.id,
		"term":       sess.term,
		"error":      cause,
	}).Warn("검색 세션을 시작하지 못했습니다")
}

func (s *Service) store(sess *Session) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	s.sessions[sess.id] = sess
	s.order = append(s.order, sess.id)

	for i := 0; len(s.sessions) > maxSessions && i < len(s.order); {
		if old := s.sessions[s.order[i]]; old.Status() != StatusRunning {
			delete(s.sessions, old.id)
			s.order = append(s.order[:i], s.order[i+1:]...)
			continue
		}
		i++
	}
}
