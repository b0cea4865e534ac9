package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		modify        func(c *AppConfig)
		errorContains string
	}{
		{
			name:   "Success_기본설정",
			modify: func(c *AppConfig) {},
		},
		{
			name: "Success_원격소스와_스케줄",
			modify: func(c *AppConfig) {
				c.Remote.Sources = []SourceConfig{{ID: "hub", URL: "https://example.com", Format: "html"}}
				c.Schedules = []ScheduleConfig{{ID: "s1", Term: "Camera", TimeSpec: "@hourly"}}
			},
		},
		{
			name:          "Failure_잘못된_로그레벨",
			modify:        func(c *AppConfig) { c.Log.Level = "verbose" },
			errorContains: "level",
		},
		{
			name:          "Failure_Tick주기_0",
			modify:        func(c *AppConfig) { c.Runner.TickInterval = 0 },
			errorContains: "tick_interval",
		},
		{
			name:          "Failure_Tick주기_과대",
			modify:        func(c *AppConfig) { c.Runner.TickInterval = 2 * time.Second },
			errorContains: "tick_interval",
		},
		{
			name:          "Failure_빈_로컬경로",
			modify:        func(c *AppConfig) { c.Search.LocalPaths = []string{""} },
			errorContains: "local_paths",
		},
		{
			name:          "Failure_DirsPerStep_0",
			modify:        func(c *AppConfig) { c.Search.DirsPerStep = 0 },
			errorContains: "dirs_per_step",
		},
		{
			name: "Failure_중복_소스ID",
			modify: func(c *AppConfig) {
				c.Remote.Sources = []SourceConfig{
					{ID: "hub", URL: "https://a.example.com"},
					{ID: "hub", URL: "https://b.example.com"},
				}
			},
			errorContains: "중복",
		},
		{
			name:          "Failure_잘못된_소스URL",
			modify:        func(c *AppConfig) { c.Remote.Sources = []SourceConfig{{ID: "hub", URL: "ftp://example.com"}} },
			errorContains: "URL 형식",
		},
		{
			name: "Failure_잘못된_소스형식",
			modify: func(c *AppConfig) {
				c.Remote.Sources = []SourceConfig{{ID: "hub", URL: "https://example.com", Format: "xml"}}
			},
			errorContains: "format",
		},
		{
			name:          "Failure_Timeout_과소",
			modify:        func(c *AppConfig) { c.Remote.Timeout = time.Millisecond },
			errorContains: "timeout",
		},
		{
			name:          "Failure_Rate_Burst없음",
			modify:        func(c *AppConfig) { c.Remote.RatePerSecond = 5; c.Remote.Burst = 0 },
			errorContains: "burst",
		},
		{
			name:          "Failure_Username만_설정",
			modify:        func(c *AppConfig) { c.Remote.Username = "user" },
			errorContains: "token",
		},
		{
			name:          "Failure_프로젝트밖_가져오기폴더",
			modify:        func(c *AppConfig) { c.Import.Folder = "../Outside" },
			errorContains: "상대 경로",
		},
		{
			name: "Failure_중복_스케줄ID",
			modify: func(c *AppConfig) {
				c.Schedules = []ScheduleConfig{
					{ID: "s1", Term: "A", TimeSpec: "@daily"},
					{ID: "s1", Term: "B", TimeSpec: "@daily"},
				}
			},
			errorContains: "중복된 Schedule ID",
		},
		{
			name:          "Failure_공백_검색어",
			modify:        func(c *AppConfig) { c.Schedules = []ScheduleConfig{{ID: "s1", Term: "  ", TimeSpec: "@daily"}} },
			errorContains: "term",
		},
		{
			name:          "Failure_5필드_Cron",
			modify:        func(c *AppConfig) { c.Schedules = []ScheduleConfig{{ID: "s1", Term: "A", TimeSpec: "*/5 * * * *"}} },
			errorContains: "time_spec",
		},
		{
			name:          "Failure_바인딩주소",
			modify:        func(c *AppConfig) { c.API.ListenHost = "not a host!" },
			errorContains: "listen_host",
		},
		{
			name:          "Failure_포트범위",
			modify:        func(c *AppConfig) { c.API.ListenPort = 70000 },
			errorContains: "listen_port",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newDefaultConfig()
			tt.modify(&cfg)

			err := cfg.validate(newValidator())
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestAppConfig_VerifyRecommendations(t *testing.T) {
	t.Parallel()

	cfg := newDefaultConfig()
	cfg.Search.LocalPaths = []string{t.TempDir()}
	assert.Empty(t, cfg.VerifyRecommendations())

	cfg.Search.LocalPaths = []string{filepath.Join(t.TempDir(), "missing")}
	warnings := cfg.VerifyRecommendations()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "search.local_paths")

	cfg.API.Enabled = true
	cfg.API.ListenPort = 80
	cfg.Search.LocalPaths = nil
	cfg.Runner.TickInterval = time.Millisecond

	warnings = cfg.VerifyRecommendations()
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "port: 80")

	cfg.API.ListenHost = "0.0.0.0"
	warnings = cfg.VerifyRecommendations()
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[1], "listen_host")
}

func TestAPIConfig_IsLoopback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host     string
		expected bool
	}{
		{"", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"LocalHost", true},
		{"0.0.0.0", false},
		{"::", false},
		{"192.168.0.10", false},
		{"scripts.example.com", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, APIConfig{ListenHost: tt.host}.isLoopback())
		})
	}
}
