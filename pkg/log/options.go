package log

import (
	"fmt"
	"os"
)

// OutputFormat 로그 파일에 기록되는 텍스트의 형식입니다.
type OutputFormat string

const (
	// FormatText 사람이 읽기 쉬운 key=value 형식입니다. (기본값)
	FormatText OutputFormat = "text"

	// FormatJSON 로그 수집기에서 파싱하기 쉬운 한 줄 JSON 형식입니다.
	FormatJSON OutputFormat = "json"
)

// Options 로거 설정을 위한 구조체입니다.
type Options struct {
	Name   string       // 로그 파일명 생성에 사용될 애플리케이션 식별자
	Dir    string       // 로그 파일이 저장될 디렉토리 경로 (빈 값: "logs")
	Level  Level        // 로그 레벨
	Format OutputFormat // 로그 출력 형식 (빈 값: FormatText)

	MaxAge     int // 오래된 로그 삭제 기준일 (일 단위, 0: 삭제 안 함)
	MaxSizeMB  int // 로그 파일 최대 크기 (MB, 0: 기본값 100MB 사용)
	MaxBackups int // 최대 백업 파일 수 (0: 기본값 20개 사용)

	EnableCriticalLog bool // ERROR 이상의 로그를 별도 파일로 분리 저장할지 여부
	EnableVerboseLog  bool // DEBUG 이하의 로그를 별도 파일로 분리 저장할지 여부
	EnableConsoleLog  bool // 표준 출력(Stdout)에도 로그를 출력할지 여부

	// 로그를 호출한 소스 코드의 위치(함수명:라인번호)를 함께 기록할지 여부
	ReportCaller bool

	// 호출 위치의 함수 경로가 이 값으로 시작하면 "..."으로 축약합니다.
	// 예: "github.com/darkkaiser/scriptfinder"
	CallerPathPrefix string
}

// Validate Options 구조체의 필드 값이 유효한지 검증합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	switch opts.Format {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("지원하지 않는 로그 출력 형식입니다: %q", opts.Format)
	}

	if opts.MaxAge < 0 {
		return fmt.Errorf("MaxAge는 0 이상이어야 합니다: %d", opts.MaxAge)
	}
	if opts.MaxSizeMB < 0 {
		return fmt.Errorf("MaxSizeMB는 0 이상이어야 합니다: %d", opts.MaxSizeMB)
	}
	if opts.MaxBackups < 0 {
		return fmt.Errorf("MaxBackups는 0 이상이어야 합니다: %d", opts.MaxBackups)
	}

	return nil
}
