package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// levelRouter 로그 레벨에 따라 하나의 로그 이벤트를 여러 출력 채널로 분배하는 Hook입니다.
//
// 라우팅 정책:
//   - Console: 레벨과 관계없이 모든 로그
//   - Critical: ERROR 이상
//   - Verbose: DEBUG 이하 (이 레벨의 로그는 Main으로 넘어가지 않습니다)
//   - Main: INFO 이상
//
// Tick마다 발생하는 스케줄러의 상세 로그(Debug/Trace)가 운영 로그를 오염시키지 않도록 Verbose 채널을 분리합니다.
type levelRouter struct {
	mainWriter     io.Writer
	criticalWriter io.Writer
	verboseWriter  io.Writer
	consoleWriter  io.Writer

	formatter Formatter

	mu     sync.RWMutex
	closed bool
}

func (r *levelRouter) Levels() []Level {
	return AllLevels
}

// Fire 로그 이벤트를 한 번만 포맷팅한 뒤 라우팅 정책에 따라 각 Writer에 기록합니다.
//
// 어느 한 채널의 쓰기 실패가 다른 채널의 기록을 막지 않으며, 최초로 발생한 에러만 반환합니다.
func (r *levelRouter) Fire(entry *Entry) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil
	}

	msg, err := r.formatter.Format(entry)
	if err != nil {
		return err
	}

	var firstErr error
	write := func(w io.Writer, channel string) {
		if w == nil {
			return
		}
		if _, err := w.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] %s 로그 쓰기 실패: %v\n", channel, err)
		}
	}

	if r.consoleWriter != nil {
		// 콘솔 출력 실패는 로깅 시스템 전체의 가용성에 영향을 주지 않도록 무시합니다.
		_, _ = r.consoleWriter.Write(msg)
	}

	if entry.Level <= ErrorLevel {
		write(r.criticalWriter, "Critical")
	}

	if entry.Level >= DebugLevel {
		write(r.verboseWriter, "Verbose")
		return firstErr
	}

	write(r.mainWriter, "Main")

	return firstErr
}

// Close 이후의 모든 로그 기록 요청을 거부합니다.
// 진행 중인 Fire 호출이 모두 끝날 때까지 대기합니다.
func (r *levelRouter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	return nil
}
