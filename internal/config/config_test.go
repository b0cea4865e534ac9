package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestNormalizeEnvKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"SCRIPTFINDER_DEBUG", "debug"},
		{"SCRIPTFINDER_SEARCH__MAX_RESULTS", "search.max_results"},
		{"SCRIPTFINDER_RUNNER__TICK_INTERVAL", "runner.tick_interval"},
		{"SCRIPTFINDER_Mixed_Case__Key", "mixed_case.key"},
		{"DEBUG", "debug"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeEnvKey(tt.input), "Input: %s", tt.input)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := newDefaultConfig()

	assert.False(t, cfg.Debug)
	assert.Equal(t, DefaultTickInterval, cfg.Runner.TickInterval)
	assert.Equal(t, DefaultExtension, cfg.Search.Extension)
	assert.Equal(t, DefaultMaxResults, cfg.Search.MaxResults)
	assert.Equal(t, DefaultDirsPerStep, cfg.Search.DirsPerStep)
	assert.Equal(t, DefaultTimeout, cfg.Remote.Timeout)
	assert.Equal(t, DefaultImportFolder, cfg.Import.Folder)
	assert.Equal(t, DefaultListenHost, cfg.API.ListenHost)
	assert.Equal(t, DefaultListenPort, cfg.API.ListenPort)
	assert.Empty(t, cfg.Schedules)

	// 기본 설정 자체도 유효해야 합니다.
	assert.NoError(t, cfg.validate(newValidator()))
}

func TestLoadWithFile(t *testing.T) {
	t.Run("Success_파일값이_기본값을_덮어씀", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"debug": true,
			"runner": { "tick_interval": "20ms" },
			"search": { "local_paths": ["/tmp/a", "/tmp/b"], "max_results": 10 },
			"remote": {
				"sources": [ { "id": "hub", "url": "https://example.com/api", "format": "json", "json_path": "items.#.path" } ],
				"timeout": "3s"
			},
			"schedules": [ { "id": "nightly", "term": "Player", "time_spec": "0 0 3 * * *" } ]
		}`)

		cfg, err := LoadWithFile(path)
		require.NoError(t, err)

		assert.True(t, cfg.Debug)
		assert.Equal(t, 20*time.Millisecond, cfg.Runner.TickInterval)
		assert.Equal(t, []string{"/tmp/a", "/tmp/b"}, cfg.Search.LocalPaths)
		assert.Equal(t, 10, cfg.Search.MaxResults)
		assert.Equal(t, DefaultExtension, cfg.Search.Extension, "파일에 없는 값은 기본값을 유지해야 합니다")
		assert.Equal(t, DefaultDirsPerStep, cfg.Search.DirsPerStep)
		require.Len(t, cfg.Remote.Sources, 1)
		assert.Equal(t, "hub", cfg.Remote.Sources[0].ID)
		assert.Equal(t, 3*time.Second, cfg.Remote.Timeout)
		require.Len(t, cfg.Schedules, 1)
		assert.Equal(t, "Player", cfg.Schedules[0].Term)
	})

	t.Run("Success_환경변수가_파일값을_덮어씀", func(t *testing.T) {
		path := writeConfigFile(t, `{ "search": { "max_results": 10 } }`)

		t.Setenv("SCRIPTFINDER_SEARCH__MAX_RESULTS", "42")
		t.Setenv("SCRIPTFINDER_SEARCH__LOCAL_PATHS", "/x,/y")
		t.Setenv("SCRIPTFINDER_RUNNER__TICK_INTERVAL", "32ms")

		cfg, err := LoadWithFile(path)
		require.NoError(t, err)

		assert.Equal(t, 42, cfg.Search.MaxResults)
		assert.Equal(t, []string{"/x", "/y"}, cfg.Search.LocalPaths)
		assert.Equal(t, 32*time.Millisecond, cfg.Runner.TickInterval)
	})

	t.Run("Failure_파일없음", func(t *testing.T) {
		_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("Failure_잘못된JSON", func(t *testing.T) {
		path := writeConfigFile(t, `{ "debug": `)

		_, err := LoadWithFile(path)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("Failure_알수없는키", func(t *testing.T) {
		path := writeConfigFile(t, `{ "search": { "max_result": 10 } }`)

		_, err := LoadWithFile(path)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("Failure_유효성검증", func(t *testing.T) {
		path := writeConfigFile(t, `{ "search": { "extension": "cs" } }`)

		_, err := LoadWithFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extension")
	})
}

func TestLoad_DefaultFileOptional(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxResults, cfg.Search.MaxResults)
}
