package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/darkkaiser/scriptfinder/internal/config"
	"github.com/darkkaiser/scriptfinder/internal/pkg/version"
	"github.com/darkkaiser/scriptfinder/internal/service"
	"github.com/darkkaiser/scriptfinder/internal/service/api"
	"github.com/darkkaiser/scriptfinder/internal/service/scheduler"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/spf13/cobra"
)

const banner = `
  ____            _       _   _____ _           _
 / ___|  ___ _ __(_)_ __ | |_|  ___(_)_ __   __| | ___ _ __
 \___ \ / __| '__| | '_ \| __| |_  | | '_ \ / _' |/ _ \ '__|
  ___) | (__| |  | | |_) | |_|  _| | | | | | (_| |  __/ |
 |____/ \___|_|  |_| .__/ \__|_|   |_|_| |_|\__,_|\___|_|
                   |_|                                  %s
--------------------------------------------------------------------------------
`

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "API 서버와 저장된 검색 스케줄러를 실행합니다",
		Long:  "종료 신호(SIGINT, SIGTERM)를 받을 때까지 작업 실행기, 검색 서비스, 저장된 검색 스케줄러, API 서버(api.enabled)를 실행합니다.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cmd, opts.appConfig)
		},
	}
}

// runServe 모든 서비스를 시작하고 ctx가 취소될 때까지 대기합니다.
func runServe(ctx context.Context, cmd *cobra.Command, appConfig *config.AppConfig) error {
	buildInfo := version.Get()

	fmt.Fprintf(cmd.OutOrStdout(), banner, buildInfo.Version)

	applog.WithComponentAndFields(component, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	a := newApp(appConfig)

	services := []service.Service{
		a.runner,
		a.search,
		scheduler.NewService(appConfig.Schedules, a.search),
	}
	if appConfig.API.Enabled {
		services = append(services, api.NewService(appConfig, a.runner, a.search, a.importer, buildInfo))
	}

	if err := a.start(ctx, services...); err != nil {
		return err
	}

	applog.WithComponent(component).Info("서버 가동 완료")

	<-ctx.Done()

	applog.WithComponent(component).Info("종료 신호를 수신하였습니다")
	a.stop()
	applog.WithComponent(component).Info("서버가 정상적으로 종료되었습니다")

	return nil
}
