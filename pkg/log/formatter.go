package log

import (
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// silentFormatter 아무런 동작도 하지 않는 포맷터입니다.
// Logrus는 io.Discard로 출력을 버리더라도 포맷팅 연산을 수행하므로, 이를 막기 위해 전역 포맷터로 사용합니다.
// 실제 포맷팅은 levelRouter에서 한 번만 수행됩니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}

// newFormatter Options에 지정된 출력 형식에 맞는 포맷터를 생성합니다.
func newFormatter(opts Options) Formatter {
	prettyfier := callerPrettyfier(opts.CallerPathPrefix)

	if opts.Format == FormatJSON {
		return &logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: prettyfier,
		}
	}

	return &logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
		CallerPrettyfier: prettyfier,
	}
}

// callerPrettyfier 호출 위치를 "함수명(line:N)" 형태로 출력하며, prefix와 일치하는 경로는 "..."으로 축약합니다.
func callerPrettyfier(prefix string) func(*runtime.Frame) (string, string) {
	return func(frame *runtime.Frame) (function string, file string) {
		function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
		if prefix != "" {
			if cut, found := strings.CutPrefix(function, prefix); found {
				function = "..." + cut
			}
		}
		return
	}
}
