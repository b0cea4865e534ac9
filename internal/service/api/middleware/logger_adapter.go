package middleware

import (
	"io"

	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/labstack/gommon/log"
)

// echoLevels Echo(gommon) 로그 레벨과 애플리케이션 로그 레벨의 대응표입니다.
// Panic, Fatal, Trace 레벨은 Echo에 대응하는 레벨이 없으므로 OFF로 취급합니다.
var echoLevels = map[log.Lvl]applog.Level{
	log.DEBUG: applog.DebugLevel,
	log.INFO:  applog.InfoLevel,
	log.WARN:  applog.WarnLevel,
	log.ERROR: applog.ErrorLevel,
}

// Logger Echo의 log.Logger 인터페이스를 애플리케이션 로거로 연결하는 어댑터입니다.
//
// Echo 내부에서 기록하는 모든 로그는 component 필드와 함께 애플리케이션 로그 파일로 라우팅됩니다.
type Logger struct {
	*applog.Logger
}

// NewLogger 전역 애플리케이션 로거를 감싸는 Echo Logger를 생성합니다.
func NewLogger() Logger {
	return Logger{Logger: applog.StandardLogger()}
}

func (l Logger) entry() *applog.Entry {
	return l.Logger.WithField("component", "api.echo")
}

func (l Logger) Output() io.Writer     { return l.Logger.Out }
func (l Logger) SetOutput(w io.Writer) { l.Logger.SetOutput(w) }

// Prefix, Header 기능은 사용하지 않습니다.
func (l Logger) Prefix() string   { return "" }
func (l Logger) SetPrefix(string) {}
func (l Logger) SetHeader(string) {}

// Level 애플리케이션 로거의 레벨을 Echo의 레벨로 변환합니다.
func (l Logger) Level() log.Lvl {
	current := l.Logger.GetLevel()
	for lvl, level := range echoLevels {
		if level == current {
			return lvl
		}
	}

	return log.OFF
}

// SetLevel Echo의 레벨을 애플리케이션 로거의 레벨로 변환하여 설정합니다. OFF는 무시합니다.
func (l Logger) SetLevel(lvl log.Lvl) {
	if level, ok := echoLevels[lvl]; ok {
		l.Logger.SetLevel(level)
	}
}

func (l Logger) Print(i ...any)                 { l.entry().Print(i...) }
func (l Logger) Printf(format string, a ...any) { l.entry().Printf(format, a...) }
func (l Logger) Printj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Print() }

func (l Logger) Debug(i ...any)                 { l.entry().Debug(i...) }
func (l Logger) Debugf(format string, a ...any) { l.entry().Debugf(format, a...) }
func (l Logger) Debugj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Debug() }

func (l Logger) Info(i ...any)                 { l.entry().Info(i...) }
func (l Logger) Infof(format string, a ...any) { l.entry().Infof(format, a...) }
func (l Logger) Infoj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Info() }

func (l Logger) Warn(i ...any)                 { l.entry().Warn(i...) }
func (l Logger) Warnf(format string, a ...any) { l.entry().Warnf(format, a...) }
func (l Logger) Warnj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Warn() }

func (l Logger) Error(i ...any)                 { l.entry().Error(i...) }
func (l Logger) Errorf(format string, a ...any) { l.entry().Errorf(format, a...) }
func (l Logger) Errorj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Error() }

func (l Logger) Fatal(i ...any)                 { l.entry().Fatal(i...) }
func (l Logger) Fatalf(format string, a ...any) { l.entry().Fatalf(format, a...) }
func (l Logger) Fatalj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Fatal() }

func (l Logger) Panic(i ...any)                 { l.entry().Panic(i...) }
func (l Logger) Panicf(format string, a ...any) { l.entry().Panicf(format, a...) }
func (l Logger) Panicj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Panic() }
