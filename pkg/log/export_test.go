package log

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// resetForTest 테스트 간 독립성을 보장하기 위해 패키지 전역 상태를 강제 초기화합니다.
func resetForTest() {
	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil

	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetReportCaller(false)
	logrus.SetFormatter(&logrus.TextFormatter{})
}
