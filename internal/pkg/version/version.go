// Package version 빌드 시점에 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
// 버전 정보는 링커 플래그로 주입합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/scriptfinder/internal/pkg/version.appVersion=v1.2.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const unknown = "unknown"

// 링커 플래그(-ldflags -X)로 주입되는 값입니다. 직접 참조하지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = ""
	buildDate     = ""
)

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 선언합니다.
var readBuildInfo = debug.ReadBuildInfo

var (
	once sync.Once
	info Info
)

// Info 애플리케이션의 빌드 정보입니다. /version API와 시작 로그에 사용됩니다.
type Info struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	BuildDate  string `json:"build_date"`
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	DirtyBuild bool   `json:"dirty_build"`
}

// Get 애플리케이션의 빌드 정보를 반환합니다. 최초 호출 시 한 번만 계산됩니다.
func Get() Info {
	once.Do(func() {
		info = resolve(Info{
			Version:    strings.TrimSpace(appVersion),
			Commit:     strings.TrimSpace(gitCommitHash),
			BuildDate:  strings.TrimSpace(buildDate),
			DirtyBuild: strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
		})
	})

	return info
}

// resolve 주입되지 않은 값을 실행 파일의 VCS 메타데이터와 런타임 정보로 채웁니다.
func resolve(bi Info) Info {
	bi.GoVersion = runtime.Version()
	bi.OS = runtime.GOOS
	bi.Arch = runtime.GOARCH

	// go run 등 ldflags 없이 실행된 경우에도 최소한의 정보를 확보합니다.
	if bin, ok := readBuildInfo(); ok {
		for _, s := range bin.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				if s.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}
		if bi.Version == "" && bin.Main.Version != "" && bin.Main.Version != "(devel)" {
			bi.Version = bin.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}

	return bi
}

// ToMap 구조적 로깅용 필드 맵을 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":     i.Version,
		"commit":      i.Commit,
		"build_date":  i.BuildDate,
		"go_version":  i.GoVersion,
		"os":          i.OS,
		"arch":        i.Arch,
		"dirty_build": i.DirtyBuild,
	}
}

// String 사람이 읽기 쉬운 한 줄 요약을 반환합니다. 예: "v1.2.0 (commit: f25b8bf, go1.24.11 linux/amd64)"
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = unknown
	}
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		details = append(details, fmt.Sprintf("commit: %s", i.Commit[:min(7, len(i.Commit))]))
	}
	if i.BuildDate != "" {
		details = append(details, fmt.Sprintf("date: %s", i.BuildDate))
	}
	if i.GoVersion != "" {
		details = append(details, fmt.Sprintf("%s %s/%s", i.GoVersion, i.OS, i.Arch))
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
