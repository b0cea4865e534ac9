package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/pkg/cronx"
	"github.com/darkkaiser/scriptfinder/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug     bool             `json:"debug"`
	Log       LogConfig        `json:"log"`
	Runner    RunnerConfig     `json:"runner"`
	Search    SearchConfig     `json:"search"`
	Remote    RemoteConfig     `json:"remote"`
	Import    ImportConfig     `json:"import"`
	Schedules []ScheduleConfig `json:"schedules" validate:"unique=ID"`
	API       APIConfig        `json:"api"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.Log, "로그(log)"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Runner, "실행기(runner)"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Search, "검색(search)"); err != nil {
		return err
	}
	if err := c.Remote.validate(v); err != nil {
		return err
	}
	if err := checkStruct(v, c.Import, "가져오기(import)"); err != nil {
		return err
	}
	if err := c.validateSchedules(v); err != nil {
		return err
	}
	if err := checkStruct(v, c.API, "API(api)"); err != nil {
		return err
	}

	return nil
}

func (c *AppConfig) validateSchedules(v *validator.Validate) error {
	if err := checkUniqueField(v, c.Schedules, "ID", "Schedule"); err != nil {
		return err
	}

	for _, s := range c.Schedules {
		if err := checkStruct(v, s, fmt.Sprintf("Schedule['%s']", s.ID)); err != nil {
			return err
		}

		if strings.TrimSpace(s.Term) == "" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("Schedule['%s']의 검색어(term)가 비어 있습니다", s.ID))
		}

		if err := cronx.Validate(s.TimeSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("Schedule['%s']의 실행 주기(time_spec) 설정이 유효하지 않습니다", s.ID))
		}
	}

	return nil
}

// VerifyRecommendations 강제적인 에러는 아니지만 운영 시 주의가 필요한 설정에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.Enabled && c.API.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
	}

	if c.API.Enabled && !c.API.isLoopback() {
		warnings = append(warnings, fmt.Sprintf("API 서버가 루프백이 아닌 주소(listen_host: %q)에 바인딩됩니다. 인증 없이 다른 호스트에서 검색과 가져오기를 요청할 수 있습니다", c.API.ListenHost))
	}

	if len(c.Search.LocalPaths) == 0 && len(c.Remote.Sources) == 0 {
		warnings = append(warnings, "검색 대상(search.local_paths, remote.sources)이 하나도 설정되지 않았습니다. 검색 결과가 항상 비어 있게 됩니다")
	}

	// 존재하지 않는 로컬 경로는 검색 시 건너뛰므로 에러가 아닌 경고로 알립니다.
	for _, p := range c.Search.LocalPaths {
		if err := validation.ValidateDir(p); err != nil {
			warnings = append(warnings, fmt.Sprintf("로컬 검색 경로(search.local_paths)를 사용할 수 없습니다: %v", err))
		}
	}

	// 프레임 단위 갱신보다 짧은 주기는 CPU만 소모합니다.
	if c.Runner.TickInterval < 5*time.Millisecond {
		warnings = append(warnings, fmt.Sprintf("실행기 Tick 주기(runner.tick_interval)가 너무 짧습니다(%s)", c.Runner.TickInterval))
	}

	return warnings
}

// LogConfig 로그 파일의 위치와 출력 형식을 정의하는 설정 구조체
type LogConfig struct {
	Dir    string `json:"dir" validate:"required"`
	Level  string `json:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	Format string `json:"format" validate:"omitempty,oneof=text json"`
}

// RunnerConfig 작업 스케줄러를 구동하는 Tick 루프의 설정 구조체
type RunnerConfig struct {
	TickInterval time.Duration `json:"tick_interval" validate:"min=1ms,max=1s"`
}

// SearchConfig 로컬 디렉터리 검색 설정 구조체
type SearchConfig struct {
	LocalPaths  []string `json:"local_paths" validate:"dive,required"`
	Extension   string   `json:"extension" validate:"required,startswith=."`
	MaxResults  int      `json:"max_results" validate:"min=1"`
	DirsPerStep int      `json:"dirs_per_step" validate:"min=1,max=1024"`

	// Exclude 이름에 포함되면 검색 결과에서 제외할 키워드 목록입니다. (예: Editor, Test)
	Exclude []string `json:"exclude"`
}

// RemoteConfig 원격 스크립트 저장소 검색 설정 구조체
type RemoteConfig struct {
	Sources       []SourceConfig `json:"sources" validate:"unique=ID"`
	Timeout       time.Duration  `json:"timeout" validate:"min=100ms"`
	RatePerSecond float64        `json:"rate_per_second" validate:"gte=0"`
	Burst         int            `json:"burst" validate:"gte=0"`
	Username      string         `json:"username"`
	Token         string         `json:"token" validate:"required_with=Username"`
	UserAgent     string         `json:"user_agent"`
}

func (c *RemoteConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, *c, "원격 검색(remote)"); err != nil {
		return err
	}

	if c.RatePerSecond > 0 && c.Burst < 1 {
		return apperrors.New(apperrors.InvalidInput, "요청 속도 제한(rate_per_second)을 사용하는 경우 burst는 1 이상이어야 합니다")
	}

	for _, s := range c.Sources {
		if err := checkStruct(v, s, fmt.Sprintf("Source['%s']", s.ID)); err != nil {
			return err
		}
	}

	return nil
}

// SourceConfig 원격 스크립트 목록을 제공하는 저장소 하나를 정의하는 구조체
type SourceConfig struct {
	ID  string `json:"id" validate:"required"`
	URL string `json:"url" validate:"required,http_url"`

	// Format 목록 응답의 형식입니다. (json, html) 비어 있으면 json으로 간주합니다.
	Format string `json:"format" validate:"omitempty,oneof=json html"`

	// JSONPath 응답이 json일 때 파일 경로 목록을 가리키는 gjson 경로입니다.
	JSONPath string `json:"json_path"`
}

// ImportConfig 검색 결과를 프로젝트로 가져오는 설정 구조체
type ImportConfig struct {
	ProjectDir string `json:"project_dir" validate:"required"`
	Folder     string `json:"folder" validate:"required,relative_path"`
}

// ScheduleConfig 주기적으로 실행할 저장된 검색을 정의하는 구조체
type ScheduleConfig struct {
	ID       string `json:"id" validate:"required"`
	Term     string `json:"term" validate:"required"`
	TimeSpec string `json:"time_spec" validate:"required"`
}

// APIConfig REST API 서버 설정 구조체
type APIConfig struct {
	Enabled bool `json:"enabled"`

	// ListenHost 바인딩할 주소입니다. 인증이 없으므로 기본값은 루프백 주소이며, 외부에 공개하려면 "0.0.0.0"을 지정합니다.
	ListenHost string `json:"listen_host" validate:"omitempty,ip|hostname"`
	ListenPort int    `json:"listen_port" validate:"min=1,max=65535"`
}

// isLoopback 바인딩 주소가 로컬에서만 접근할 수 있는 주소인지 여부를 반환합니다.
func (c APIConfig) isLoopback() bool {
	if c.ListenHost == "" || strings.EqualFold(c.ListenHost, "localhost") {
		return true
	}

	ip := net.ParseIP(c.ListenHost)
	return ip != nil && ip.IsLoopback()
}
