package log

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Level logrus.Level의 별칭입니다.
type Level = logrus.Level

const (
	PanicLevel Level = logrus.PanicLevel
	FatalLevel Level = logrus.FatalLevel

	// ErrorLevel 프로세스를 종료하지는 않지만 관리자의 확인이 필요한 상태입니다. (Critical 로그 파일로 격리됨)
	ErrorLevel Level = logrus.ErrorLevel

	WarnLevel Level = logrus.WarnLevel
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel 이하의 로그는 메인 로그 파일에 기록되지 않고 Verbose 로그 파일로만 분리됩니다.
	DebugLevel Level = logrus.DebugLevel

	TraceLevel Level = logrus.TraceLevel
)

// AllLevels logrus.AllLevels의 별칭입니다.
var AllLevels = logrus.AllLevels

type (
	Fields        = logrus.Fields
	Entry         = logrus.Entry
	Hook          = logrus.Hook
	Logger        = logrus.Logger
	Formatter     = logrus.Formatter
	JSONFormatter = logrus.JSONFormatter
	TextFormatter = logrus.TextFormatter
)

// ParseLevel 설정 파일에 기록된 로그 레벨 문자열을 Level로 변환합니다.
// 빈 문자열은 InfoLevel로 간주합니다.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return InfoLevel, nil
	}

	return logrus.ParseLevel(s)
}
