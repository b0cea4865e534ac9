// Package api 검색과 가져오기 기능을 HTTP(JSON) API로 제공합니다.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/darkkaiser/scriptfinder/internal/config"
	"github.com/darkkaiser/scriptfinder/internal/pkg/version"
	"github.com/darkkaiser/scriptfinder/internal/service/api/constants"
	"github.com/darkkaiser/scriptfinder/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/scriptfinder/internal/service/api/v1"
	v1handler "github.com/darkkaiser/scriptfinder/internal/service/api/v1/handler"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/echo/v4"
)

// Service API 서버의 생명주기를 관리하는 서비스입니다.
//
// Start로 시작하며, 서버는 별도의 고루틴에서 실행됩니다.
// serviceStopCtx가 취소되면 DefaultShutdownTimeout 안에서 Graceful Shutdown을 수행합니다.
type Service struct {
	appConfig *config.AppConfig

	taskRunner system.HealthChecker
	searcher   v1handler.Searcher
	importer   v1handler.Importer

	buildInfo version.Info

	// addr 서버가 실제로 바인딩한 주소입니다. 서버가 리스닝을 시작하기 전에는 빈 문자열입니다.
	addr    string
	addrMu  sync.RWMutex
	started chan struct{}

	running   bool
	stopped   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. appConfig, searcher, importer가 nil이면 panic이 발생합니다.
func NewService(appConfig *config.AppConfig, taskRunner system.HealthChecker, searcher v1handler.Searcher, importer v1handler.Importer, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if searcher == nil {
		panic(constants.PanicMsgSearcherRequired)
	}
	if importer == nil {
		panic(constants.PanicMsgImporterRequired)
	}

	return &Service{
		appConfig: appConfig,

		taskRunner: taskRunner,
		searcher:   searcher,
		importer:   importer,

		buildInfo: buildInfo,

		started: make(chan struct{}),
	}
}

// Start API 서비스를 시작합니다. 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
//
// 반환값:
//   - 이미 종료된 서비스를 다시 시작하면 ErrServiceStopped
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}
	if s.stopped {
		serviceStopWG.Done()
		return ErrServiceStopped
	}

	s.running = true

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	go func() {
		defer serviceStopWG.Done()

		s.waitForShutdown(serviceStopCtx, e, httpServerDone)
	}()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// Addr 서버가 바인딩한 주소를 반환합니다. 서버가 아직 리스닝을 시작하지 않았으면 빈 문자열입니다.
func (s *Service) Addr() string {
	s.addrMu.RLock()
	defer s.addrMu.RUnlock()

	return s.addr
}

// Started 서버가 리스닝을 시작하면 닫히는 채널을 반환합니다.
func (s *Service) Started() <-chan struct{} {
	return s.started
}

// setupServer Echo 서버를 생성하고 핸들러와 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	e := NewHTTPServer(HTTPServerConfig{
		Debug: s.appConfig.Debug,
	})

	RegisterRoutes(e, system.NewHandler(s.taskRunner, s.buildInfo))
	v1.RegisterRoutes(e, v1handler.New(s.searcher, s.importer))

	return e
}

// startHTTPServer HTTP 서버를 시작합니다. 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	e.Server.Addr = s.listenAddr()
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"addr": e.Server.Addr,
	}).Debug(constants.LogMsgServiceHTTPServerStarting)

	l, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", e.Server.Addr)
	if err != nil {
		s.handleServerError(err)
		return
	}
	e.Listener = l

	s.addrMu.Lock()
	s.addr = l.Addr().String()
	s.addrMu.Unlock()
	close(s.started)

	s.handleServerError(e.Server.Serve(l))
}

// listenAddr 바인딩할 "host:port"를 반환합니다. 호스트가 설정되지 않았으면 루프백 주소를 사용합니다.
func (s *Service) listenAddr() string {
	host := s.appConfig.API.ListenHost
	if host == "" {
		host = constants.DefaultListenHost
	}

	return net.JoinHostPort(host, strconv.Itoa(s.appConfig.API.ListenPort))
}

// handleServerError HTTP 서버가 반환한 에러를 처리합니다. Graceful Shutdown에 의한 종료는 에러가 아닙니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"addr":  s.listenAddr(),
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
// 서버가 먼저 종료된 경우(포트 바인딩 실패 등)에는 상태만 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)

	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.stopped = true
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
