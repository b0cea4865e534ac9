package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	// Setup()이 프로세스 생명주기 동안 단 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	// 최초 초기화 결과를 보관하여, Setup 재호출 시 동일한 결과를 반환합니다.
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로깅 시스템을 초기화하고 설정된 옵션에 따라 파일 출력을 구성합니다.
//
// 주의:
//   - 애플리케이션 시작 시점(main 함수 도입부)에 호출하는 것을 권장합니다.
//   - 반환된 Closer는 반드시 defer를 통해 리소스가 해제되도록 보장해야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setupInternal(opts)
	})

	return globalCloser, globalSetupErr
}

func setupInternal(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	// 실제 출력은 levelRouter가 담당하므로 Logrus의 기본 출력과 포맷팅은 비활성화합니다.
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	newRotatingWriter := func(suffix string) *lumberjack.Logger {
		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = defaultMaxSizeMB
		}
		maxBackups := opts.MaxBackups
		if maxBackups == 0 {
			maxBackups = defaultMaxBackups
		}

		name := opts.Name
		if suffix != "" {
			name += "." + suffix
		}

		return &lumberjack.Logger{
			Filename:   filepath.Join(dir, name+"."+fileExt),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
	}

	r := &levelRouter{formatter: newFormatter(opts)}
	c := &closer{router: r}

	mainWriter := newRotatingWriter("")
	r.mainWriter = mainWriter
	c.closers = append(c.closers, mainWriter)

	if opts.EnableCriticalLog {
		w := newRotatingWriter("critical")
		r.criticalWriter = w
		c.closers = append(c.closers, w)
	}
	if opts.EnableVerboseLog {
		w := newRotatingWriter("verbose")
		r.verboseWriter = w
		c.closers = append(c.closers, w)
	}
	if opts.EnableConsoleLog {
		r.consoleWriter = os.Stdout
	}

	logrus.AddHook(r)

	// Fatal 로그 발생 시(os.Exit 호출 직전) 남은 로그를 디스크에 기록하고 리소스를 해제합니다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}
