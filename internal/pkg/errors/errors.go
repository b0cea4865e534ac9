// Package errors 애플리케이션 전용 에러 처리 시스템을 제공합니다.
//
// 표준 errors 패키지를 확장하여 ErrorType 기반의 에러 분류와 에러 체이닝, 짧은 스택 트레이스를 지원합니다.
//
// # 기본 사용법
//
//	err := errors.New(errors.InvalidInput, "검색어가 입력되지 않았습니다")
//
//	if err != nil {
//	    return errors.Wrap(err, errors.Unavailable, "원격 저장소 목록을 가져오지 못했습니다")
//	}
//
//	if errors.Is(err, errors.Conflict) {
//	    // 이미 가져온 파일이 존재하는 경우
//	}
//
// # ErrorType 선택 원칙
//
// 원인 에러가 AppError이면 컨텍스트만 추가하고 동일한 타입을 유지하는 것이 일반적입니다.
// 외부 라이브러리 에러를 감쌀 때는 에러가 발생한 계층을 기준으로 타입을 선택합니다.
//   - 사용자 입력 계층: InvalidInput
//   - 작업(Task) 실행 계층: ExecutionFailed, Conflict, Canceled
//   - 인프라 계층: System, Timeout, Unavailable
//
// HTTP API는 UnderlyingType을 통해 응답 상태 코드를 결정합니다.
package errors

import (
	"errors"
	"fmt"
)

// AppError 애플리케이션에서 발생하는 모든 에러를 표준화하여 표현하는 구조체입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// Type 에러의 타입을 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 에러 메시지를 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 에러 생성 시점의 스택 트레이스를 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Newf 포맷 문자열을 사용하여 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap 기존 에러를 감싸서 새로운 에러를 생성합니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrapf 포맷 문자열을 사용하여 기존 에러를 감쌉니다. err이 nil이면 nil을 반환합니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인에 특정 ErrorType의 AppError가 포함되어 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As 에러 체인에서 특정 타입의 에러를 찾아 대상 변수에 할당합니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽에 있는 원인 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}

	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UnderlyingType 에러 체인에서 가장 안쪽에 있는 AppError의 ErrorType을 반환합니다.
//
// 반환값:
//   - 체인에 AppError가 하나라도 존재하는 경우: 가장 안쪽 AppError의 ErrorType
//   - 체인에 AppError가 없거나 err이 nil인 경우: Unknown
//
// 사용 예시:
//
//	err := Wrap(New(Conflict, "파일이 이미 존재합니다"), ExecutionFailed, "가져오기 실패")
//	UnderlyingType(err) // Conflict
func UnderlyingType(err error) ErrorType {
	lastAppErrorType := Unknown

	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			lastAppErrorType = appErr.errType
		}
		err = errors.Unwrap(err)
	}

	return lastAppErrorType
}
