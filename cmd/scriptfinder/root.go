package main

import (
	"fmt"
	"io"

	"github.com/darkkaiser/scriptfinder/internal/config"
	"github.com/darkkaiser/scriptfinder/internal/pkg/version"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const component = "main"

// rootOptions 모든 하위 명령이 공유하는 전역 플래그와 초기화 결과입니다.
type rootOptions struct {
	configFile string
	debug      bool
	noColor    bool

	appConfig *config.AppConfig
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Unity 프로젝트용 C# 스크립트를 검색하고 가져옵니다",
		Long: `scriptfinder는 로컬 디렉터리와 원격 스크립트 저장소에서 C# 스크립트를 검색하고,
검색된 파일을 Unity 프로젝트의 Assets 폴더로 가져옵니다.

예:
  # 검색 (로컬 + 원격)
  scriptfinder search Player

  # 파일 가져오기
  scriptfinder import ./shared/Player.cs --name Hero.cs

  # API 서버와 저장된 검색 스케줄러 실행
  scriptfinder serve --config scriptfinder.json
`,
		Version:      version.Get().String(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.close()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", fmt.Sprintf("설정 파일 경로 (기본값: ./%s, 없으면 기본 설정 사용)", config.DefaultFilename))
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "디버그 모드로 실행 (설정 파일의 debug 값을 덮어씀)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "터미널 출력에 색상을 사용하지 않음")

	root.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newImportCmd(opts),
	)

	return root
}

// init 설정을 로드하고 로그 시스템을 초기화합니다.
//
// serve는 운영 로그 설정을, 일회성 명령(search, import)은 개발 로그 설정을 사용합니다.
// 일회성 명령은 결과를 표준 출력에 기록하므로 디버그 모드가 아니면 콘솔 로그를 끕니다.
func (o *rootOptions) init(cmd *cobra.Command) error {
	if o.noColor {
		color.NoColor = true
	}

	var (
		appConfig *config.AppConfig
		err       error
	)
	if o.configFile != "" {
		appConfig, err = config.LoadWithFile(o.configFile)
	} else {
		appConfig, err = config.Load()
	}
	if err != nil {
		return err
	}
	if o.debug {
		appConfig.Debug = true
	}

	var logOpts applog.Options
	if cmd.Name() == "serve" && !appConfig.Debug {
		logOpts = applog.NewProductionOptions(config.AppName)
	} else {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
		logOpts.EnableConsoleLog = appConfig.Debug && cmd.Name() == "serve"
	}
	logOpts.Dir = appConfig.Log.Dir
	logOpts.Format = applog.OutputFormat(appConfig.Log.Format)
	if !appConfig.Debug {
		level, err := applog.ParseLevel(appConfig.Log.Level)
		if err != nil {
			return err
		}
		logOpts.Level = level
	}

	closer, err := applog.Setup(logOpts)
	if err != nil {
		return fmt.Errorf("로그 시스템 초기화 실패: %w", err)
	}
	if appConfig.Debug {
		applog.SetDebugMode(true)
	}

	for _, w := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(w)
	}

	o.appConfig = appConfig
	o.logCloser = closer

	return nil
}

// close 로그 파일을 닫습니다. 로그 시스템은 프로세스당 한 번만 초기화되므로 여러 번 호출되어도 안전해야 합니다.
func (o *rootOptions) close() {
	if o.logCloser != nil {
		_ = o.logCloser.Close()
		o.logCloser = nil
	}
}
