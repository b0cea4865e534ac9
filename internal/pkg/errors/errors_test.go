package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{Unknown, "Unknown"},
		{Internal, "Internal"},
		{System, "System"},
		{InvalidInput, "InvalidInput"},
		{Conflict, "Conflict"},
		{NotFound, "NotFound"},
		{ExecutionFailed, "ExecutionFailed"},
		{ParsingFailed, "ParsingFailed"},
		{Timeout, "Timeout"},
		{Unavailable, "Unavailable"},
		{Canceled, "Canceled"},
		{ErrorType(-1), "ErrorType(-1)"},
		{ErrorType(999), "ErrorType(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errType.String())
		})
	}
}

func TestNew(t *testing.T) {
	err := New(InvalidInput, "검색어가 비어 있습니다")

	var appErr *AppError
	require.True(t, As(err, &appErr))
	assert.Equal(t, InvalidInput, appErr.Type())
	assert.Equal(t, "검색어가 비어 있습니다", appErr.Message())
	assert.Equal(t, "[InvalidInput] 검색어가 비어 있습니다", err.Error())
	assert.Nil(t, appErr.Unwrap())

	require.NotEmpty(t, appErr.Stack())
	assert.Contains(t, appErr.Stack()[0].Function, "TestNew", "첫 번째 프레임은 에러를 생성한 위치여야 합니다")
	assert.LessOrEqual(t, len(appErr.Stack()), maxStackFrames)
}

func TestNewf(t *testing.T) {
	err := Newf(NotFound, "세션(%s)을 찾을 수 없습니다", "abc")
	assert.Equal(t, "[NotFound] 세션(abc)을 찾을 수 없습니다", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("외부 에러 래핑", func(t *testing.T) {
		err := Wrap(errStd, System, "파일 읽기 실패")

		assert.Equal(t, "[System] 파일 읽기 실패: standard error", err.Error())
		assert.True(t, errors.Is(err, errStd))
		assert.Same(t, errStd, RootCause(err))
	})

	t.Run("nil 래핑", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, System, "무시"))
		assert.Nil(t, Wrapf(nil, System, "무시 %d", 1))
	})

	t.Run("Wrapf", func(t *testing.T) {
		err := Wrapf(errStd, Timeout, "%s 요청 시간 초과", "github")
		assert.Equal(t, "[Timeout] github 요청 시간 초과: standard error", err.Error())
	})
}

func TestIs(t *testing.T) {
	inner := New(Conflict, "이미 존재합니다")
	outer := Wrap(fmt.Errorf("context: %w", inner), ExecutionFailed, "가져오기 실패")

	assert.True(t, Is(outer, ExecutionFailed))
	assert.True(t, Is(outer, Conflict), "표준 래핑을 거쳐도 체인을 따라가야 합니다")
	assert.False(t, Is(outer, NotFound))
	assert.False(t, Is(nil, Unknown))
	assert.False(t, Is(errStd, Unknown))
}

func TestUnderlyingType(t *testing.T) {
	assert.Equal(t, Unknown, UnderlyingType(nil))
	assert.Equal(t, Unknown, UnderlyingType(errStd))
	assert.Equal(t, Conflict, UnderlyingType(Wrap(New(Conflict, "a"), ExecutionFailed, "b")))
	assert.Equal(t, Timeout, UnderlyingType(Wrap(errStd, Timeout, "a")))
}

func TestRootCause(t *testing.T) {
	assert.Nil(t, RootCause(nil))

	root := New(NotFound, "root")
	assert.Same(t, root, RootCause(Wrap(Wrap(root, Internal, "a"), Internal, "b")))
}

func TestAppError_Format(t *testing.T) {
	err := Wrap(Wrap(errStd, System, "inner"), ExecutionFailed, "outer")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "[ExecutionFailed] outer")
	assert.Contains(t, detailed, "Caused by:")
	assert.Contains(t, detailed, "[System] inner")
	assert.Contains(t, detailed, "standard error")
	assert.Equal(t, 1, strings.Count(detailed, "Stack trace:"), "스택은 외부 에러와의 경계에서 한 번만 출력되어야 합니다")
}
