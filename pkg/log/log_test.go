package log

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcdefgh", "abcd***"},
		{"ghp_1234567890abcdef", "ghp_***cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskSensitiveData(tt.input))
		})
	}
}

func TestWithComponentAndFields(t *testing.T) {
	resetForTest()
	defer resetForTest()

	hook := test.NewGlobal()

	fields := Fields{"task": "search"}
	WithComponentAndFields("coroutine", fields).Info("message")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "coroutine", entry.Data["component"])
	assert.Equal(t, "search", entry.Data["task"])
	assert.NotContains(t, fields, "component", "전달받은 Fields를 변경하면 안 됩니다")
}

func TestSetDebugMode(t *testing.T) {
	resetForTest()
	defer resetForTest()

	SetDebugMode(true)
	assert.Equal(t, TraceLevel, StandardLogger().GetLevel())

	SetDebugMode(false)
	assert.Equal(t, InfoLevel, StandardLogger().GetLevel())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, InfoLevel, lvl)

	lvl, err = ParseLevel(" debug ")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
