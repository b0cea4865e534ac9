package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "scriptfinder"

	// DefaultFilename 실행 인자로 설정 파일 경로가 주어지지 않았을 때 탐색하는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정 값을 덮어쓰는 환경 변수의 접두사입니다.
	// 예: SCRIPTFINDER_SEARCH__MAX_RESULTS=100 -> search.max_results
	EnvPrefix = "SCRIPTFINDER_"
)

const (
	DefaultTickInterval = 16 * time.Millisecond
	DefaultExtension    = ".cs"
	DefaultMaxResults   = 500
	DefaultDirsPerStep  = 8
	DefaultTimeout      = 5 * time.Second
	DefaultProjectDir   = "."
	DefaultImportFolder = "Scripts"
	DefaultListenHost   = "127.0.0.1"
	DefaultListenPort   = 2443
)

// newDefaultConfig 설정 파일과 환경 변수가 모두 비어 있을 때 사용되는 기본 설정을 생성합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Log: LogConfig{
			Dir:    "logs",
			Level:  "info",
			Format: "text",
		},
		Runner: RunnerConfig{
			TickInterval: DefaultTickInterval,
		},
		Search: SearchConfig{
			Extension:   DefaultExtension,
			MaxResults:  DefaultMaxResults,
			DirsPerStep: DefaultDirsPerStep,
		},
		Remote: RemoteConfig{
			Timeout:       DefaultTimeout,
			RatePerSecond: 2,
			Burst:         1,
			UserAgent:     AppName,
		},
		Import: ImportConfig{
			ProjectDir: DefaultProjectDir,
			Folder:     DefaultImportFolder,
		},
		API: APIConfig{
			ListenHost: DefaultListenHost,
			ListenPort: DefaultListenPort,
		},
	}
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
//
// 기본 설정 파일이 존재하지 않으면 기본값과 환경 변수만으로 설정을 구성합니다.
func Load() (*AppConfig, error) {
	return load(DefaultFilename, true)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다. 파일이 없으면 에러를 반환합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(filename, false)
}

func load(filename string, optional bool) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist) && optional:
			// 기본 설정 파일은 없어도 됩니다.
		case errors.Is(err, fs.ErrNotExist):
			return nil, apperrors.Wrap(err, apperrors.NotFound, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		default:
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
		}
	}

	// 3. 환경 변수 로드 (최우선 순위)
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true, // 구조체에 없는 키가 있으면 오타로 간주합니다.
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	unmarshalConf.DecoderConfig.Result = &appConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 koanf 키 경로로 변환합니다.
// 이중 언더스코어(__)는 계층 구분자(.)로 변환됩니다.
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
