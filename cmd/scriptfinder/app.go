package main

import (
	"context"
	"sync"

	"github.com/darkkaiser/scriptfinder/internal/config"
	"github.com/darkkaiser/scriptfinder/internal/service"
	"github.com/darkkaiser/scriptfinder/internal/service/fetcher"
	"github.com/darkkaiser/scriptfinder/internal/service/importer"
	"github.com/darkkaiser/scriptfinder/internal/service/runner"
	"github.com/darkkaiser/scriptfinder/internal/service/search"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
)

// app 설정으로부터 생성된 서비스들의 묶음입니다.
type app struct {
	config *config.AppConfig

	runner   *runner.Service
	search   *search.Service
	importer *importer.Service

	serviceStopCtx    context.Context
	serviceStopCancel context.CancelFunc
	serviceStopWG     *sync.WaitGroup
}

func newApp(appConfig *config.AppConfig) *app {
	searchConfig := newSearchConfig(appConfig)

	// 인증 정보와 원격 가져오기는 설정된 저장소의 호스트로만 제한합니다.
	sourceHosts := fetcher.SourceHosts(searchConfig.Sources)

	f := fetcher.New(fetcher.Config{
		Timeout:   appConfig.Remote.Timeout,
		UserAgent: appConfig.Remote.UserAgent,
		Username:  appConfig.Remote.Username,
		Token:     appConfig.Remote.Token,
		AuthHosts: sourceHosts,
	})

	taskRunner := runner.NewService(appConfig.Runner.TickInterval)

	return &app{
		config:   appConfig,
		runner:   taskRunner,
		search:   search.NewService(searchConfig, taskRunner, f),
		importer: importer.NewService(newImportConfig(appConfig, sourceHosts), taskRunner, f),
	}
}

func newImportConfig(appConfig *config.AppConfig, sourceHosts []string) importer.Config {
	return importer.Config{
		ProjectDir:  appConfig.Import.ProjectDir,
		Folder:      appConfig.Import.Folder,
		SourceDirs:  appConfig.Search.LocalPaths,
		SourceHosts: sourceHosts,
	}
}

func newSearchConfig(appConfig *config.AppConfig) search.Config {
	sources := make([]fetcher.Source, 0, len(appConfig.Remote.Sources))
	for _, s := range appConfig.Remote.Sources {
		sources = append(sources, fetcher.Source{
			ID:       s.ID,
			URL:      s.URL,
			Format:   fetcher.Format(s.Format),
			JSONPath: s.JSONPath,
		})
	}

	return search.Config{
		LocalPaths:    appConfig.Search.LocalPaths,
		Extension:     appConfig.Search.Extension,
		MaxResults:    appConfig.Search.MaxResults,
		DirsPerStep:   appConfig.Search.DirsPerStep,
		Exclude:       appConfig.Search.Exclude,
		Sources:       sources,
		Timeout:       appConfig.Remote.Timeout,
		RatePerSecond: appConfig.Remote.RatePerSecond,
		Burst:         appConfig.Remote.Burst,
	}
}

// start 서비스들을 순서대로 시작합니다. 하나라도 실패하면 이미 시작된 서비스들을 종료한 뒤 에러를 반환합니다.
func (a *app) start(ctx context.Context, services ...service.Service) error {
	a.serviceStopCtx, a.serviceStopCancel = context.WithCancel(ctx)
	a.serviceStopWG = &sync.WaitGroup{}

	for _, s := range services {
		a.serviceStopWG.Add(1)
		if err := s.Start(a.serviceStopCtx, a.serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			a.stop()

			return err
		}
	}

	return nil
}

// stop 모든 서비스에 종료 신호를 보내고 완전히 종료될 때까지 대기합니다.
func (a *app) stop() {
	if a.serviceStopCancel == nil {
		return
	}

	a.serviceStopCancel()
	a.serviceStopWG.Wait()
}
