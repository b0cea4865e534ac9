package log

// NewProductionOptions 서비스(serve) 모드로 실행될 때 사용하는 로그 설정을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:   appName,
		Level:  InfoLevel,
		Format: FormatText,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser/scriptfinder",
	}
}

// NewDevelopmentOptions 디버그 모드 또는 일회성 CLI 명령(search, import)에서 사용하는 로그 설정을 반환합니다.
//
// 로그 파일을 하나로 통합하고, 터미널에서 바로 확인할 수 있도록 콘솔 출력을 활성화합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:   appName,
		Level:  TraceLevel,
		Format: FormatText,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser/scriptfinder",
	}
}
