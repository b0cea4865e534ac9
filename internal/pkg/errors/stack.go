package errors

import (
	"path/filepath"
	"runtime"
)

// defaultCallerSkip runtime.Callers, captureStack, New/Wrap 계열 함수의 3단계를 건너뛰어
// 에러를 생성한 사용자 코드의 위치가 0번째 프레임이 되도록 합니다.
const defaultCallerSkip = 3

// maxStackFrames 에러마다 수집하는 최대 스택 깊이입니다.
const maxStackFrames = 5

// StackFrame 단일 함수 호출 스택의 위치 정보입니다.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

func captureStack(skip int) []StackFrame {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	callersFrames := runtime.CallersFrames(pc[:n])

	frames := make([]StackFrame, 0, n)
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	return frames
}
