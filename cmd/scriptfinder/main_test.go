package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/darkkaiser/scriptfinder/internal/config"
	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/internal/service/fetcher"
	"github.com/darkkaiser/scriptfinder/internal/service/search"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logDir 로그 시스템은 프로세스당 한 번만 초기화되므로 모든 테스트가 같은 로그 디렉터리를 사용합니다.
var logDir string

func TestMain(m *testing.M) {
	color.NoColor = true

	dir, err := os.MkdirTemp("", "scriptfinder-log-*")
	if err != nil {
		panic(err)
	}
	logDir = dir

	code := m.Run()

	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type fixture struct {
	configFile string
	scriptsDir string
	projectDir string
}

// newFixture 검색 대상 디렉터리와 가져오기 대상 프로젝트, 이를 가리키는 설정 파일을 생성합니다.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	scripts := t.TempDir()
	for _, f := range []string{"Player.cs", "Enemy.cs", "AI/PlayerBrain.cs", "Docs/player.txt"} {
		p := filepath.Join(scripts, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("// "+f), 0644))
	}
	project := t.TempDir()

	cfg := map[string]any{
		"log":    map[string]any{"dir": logDir},
		"runner": map[string]any{"tick_interval": "1ms"},
		"search": map[string]any{"local_paths": []string{scripts}},
		"import": map[string]any{"project_dir": project, "folder": "Scripts"},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	configFile := filepath.Join(t.TempDir(), config.DefaultFilename)
	require.NoError(t, os.WriteFile(configFile, data, 0644))

	return &fixture{configFile: configFile, scriptsDir: scripts, projectDir: project}
}

func execute(args ...string) (string, error) {
	root := newRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestAppMetadata(t *testing.T) {
	assert.Equal(t, "scriptfinder", config.AppName)
	assert.Equal(t, "scriptfinder.json", config.DefaultFilename)
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "search", "import"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, cmd.Name())
		})
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
}

func TestSearchCmd(t *testing.T) {
	fx := newFixture(t)

	out, err := execute("--config", fx.configFile, "search", "player")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Player.cs")
	assert.Contains(t, out, "PlayerBrain.cs")
	assert.NotContains(t, out, "Enemy.cs")
	assert.NotContains(t, out, "player.txt", "확장자가 다른 파일은 검색되지 않아야 합니다")
	assert.Contains(t, out, "2개의 스크립트를 찾았습니다")
}

func TestSearchCmd_JSON(t *testing.T) {
	fx := newFixture(t)

	out, err := execute("--config", fx.configFile, "search", "enemy", "--json")
	require.NoError(t, err, out)

	var snap search.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap), out)

	assert.Equal(t, search.StatusCompleted, snap.Status)
	assert.Equal(t, "enemy", snap.Term)
	require.Len(t, snap.Results, 1)
	assert.Equal(t, filepath.Join(fx.scriptsDir, "Enemy.cs"), snap.Results[0].Path)
}

func TestSearchCmd_NoResult(t *testing.T) {
	fx := newFixture(t)

	out, err := execute("--config", fx.configFile, "search", "Boss")
	require.NoError(t, err, out)
	assert.Contains(t, out, "'Boss'에 대한 검색 결과가 없습니다")
}

func TestImportCmd(t *testing.T) {
	fx := newFixture(t)
	src := filepath.Join(fx.scriptsDir, "Player.cs")
	target := filepath.Join(fx.projectDir, "Assets", "Scripts", "Hero.cs")

	out, err := execute("--config", fx.configFile, "import", src, "--name", "Hero.cs")
	require.NoError(t, err, out)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "// Player.cs", string(data))

	// 같은 이름으로 다시 가져오면 실패해야 합니다.
	_, err = execute("--config", fx.configFile, "import", src, "--name", "Hero.cs")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))
}

func TestCommandErrors(t *testing.T) {
	fx := newFixture(t)

	outside := filepath.Join(t.TempDir(), "Secret.cs")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0600))

	tests := []struct {
		name    string
		args    []string
		errType apperrors.ErrorType
	}{
		{"존재하지 않는 설정 파일", []string{"--config", filepath.Join(t.TempDir(), "none.json"), "search", "a"}, apperrors.NotFound},
		{"공백 검색어", []string{"--config", fx.configFile, "search", "   "}, apperrors.InvalidInput},
		{"존재하지 않는 원본 파일", []string{"--config", fx.configFile, "import", filepath.Join(fx.scriptsDir, "None.cs")}, apperrors.NotFound},
		{"경로가 포함된 이름", []string{"--config", fx.configFile, "import", filepath.Join(fx.scriptsDir, "Enemy.cs"), "--name", "../Enemy.cs"}, apperrors.InvalidInput},
		{"검색 경로 밖의 파일", []string{"--config", fx.configFile, "import", outside}, apperrors.InvalidInput},
		{"설정되지 않은 저장소의 URL", []string{"--config", fx.configFile, "import", "https://scripts.example.com/Enemy.cs"}, apperrors.InvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(tt.args...)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.errType), "에러 타입이 일치해야 합니다: %v", err)
		})
	}

	t.Run("인자 누락", func(t *testing.T) {
		_, err := execute("--config", fx.configFile, "search")
		assert.Error(t, err)
	})
}

func TestNewSearchConfig(t *testing.T) {
	appConfig := &config.AppConfig{
		Search: config.SearchConfig{LocalPaths: []string{"/a"}, Extension: ".cs", MaxResults: 10, DirsPerStep: 2, Exclude: []string{"Editor"}},
		Remote: config.RemoteConfig{
			Sources:       []config.SourceConfig{{ID: "gist", URL: "https://example.com/list", Format: "html"}},
			RatePerSecond: 3,
			Burst:         2,
		},
	}

	sc := newSearchConfig(appConfig)

	assert.Equal(t, []string{"/a"}, sc.LocalPaths)
	assert.Equal(t, 10, sc.MaxResults)
	assert.Equal(t, 2, sc.DirsPerStep)
	assert.Equal(t, []string{"Editor"}, sc.Exclude)
	assert.Equal(t, 3.0, sc.RatePerSecond)
	require.Len(t, sc.Sources, 1)
	assert.Equal(t, fetcher.Source{ID: "gist", URL: "https://example.com/list", Format: fetcher.FormatHTML}, sc.Sources[0])
}

func TestRunServe(t *testing.T) {
	fx := newFixture(t)

	appConfig, err := config.LoadWithFile(fx.configFile)
	require.NoError(t, err)
	appConfig.Schedules = []config.ScheduleConfig{{ID: "nightly", Term: "Player", TimeSpec: "0 0 3 * * *"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runServe(ctx, cmd, appConfig))
	assert.Contains(t, out.String(), "-----")
}

func TestNewImportConfig(t *testing.T) {
	appConfig := &config.AppConfig{
		Search: config.SearchConfig{LocalPaths: []string{"/a", "/b"}},
		Remote: config.RemoteConfig{
			Sources: []config.SourceConfig{
				{ID: "gist", URL: "https://example.com/list"},
				{ID: "mirror", URL: "http://127.0.0.1:8080/index.json"},
			},
		},
		Import: config.ImportConfig{ProjectDir: "proj", Folder: "Scripts"},
	}

	ic := newImportConfig(appConfig, fetcher.SourceHosts(newSearchConfig(appConfig).Sources))

	assert.Equal(t, "proj", ic.ProjectDir)
	assert.Equal(t, "Scripts", ic.Folder)
	assert.Equal(t, []string{"/a", "/b"}, ic.SourceDirs)
	assert.Equal(t, []string{"example.com", "127.0.0.1:8080"}, ic.SourceHosts)
}
