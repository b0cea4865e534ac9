// Package log logrus 기반의 전역 로깅 시스템을 제공합니다.
//
// 모든 패키지는 자신의 component 이름과 함께 WithComponent 또는 WithComponentAndFields를 통해 로그를 기록합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// StandardLogger 전역 logrus Logger를 반환합니다.
// cron, echo 등 외부 라이브러리에 Writer 또는 Logger를 연결할 때 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode Debug 모드에 따라 로그 레벨을 설정합니다.
//   - Debug 모드: Trace 레벨 (모든 로그 출력)
//   - 운영 모드: Info 레벨
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// MaskSensitiveData 토큰, 비밀번호 등 민감한 정보를 로그에 남길 수 있도록 마스킹합니다.
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component

	return logrus.WithFields(newFields)
}
