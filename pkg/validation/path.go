package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateDir 지정된 경로가 읽을 수 있는 디렉터리인지 검증합니다.
func ValidateDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("디렉터리 경로가 비어 있습니다")
	}

	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("디렉터리가 존재하지 않습니다 (path=%q)", path)
		}
		return fmt.Errorf("디렉터리 정보를 확인하는 중 오류가 발생했습니다 (path=%q): %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("해당 경로는 디렉터리가 아닙니다 (path=%q)", path)
	}

	// 권한 비트만으로는 ACL 등을 판단할 수 없으므로 실제로 열어봅니다.
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("디렉터리를 읽을 수 있는 권한이 없습니다 (path=%q): %w", path, err)
	}
	_ = f.Close()

	return nil
}

// ValidateRelativePath 경로가 기준 디렉터리를 벗어나지 않는 상대 경로인지 검증합니다.
//
// 절대 경로, 상위 디렉터리 참조("..")가 포함된 경로는 허용하지 않습니다.
// 예: "Scripts", "Scripts/Imported"는 유효하고 "../Scripts", "/tmp"는 유효하지 않습니다.
func ValidateRelativePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("경로가 비어 있습니다")
	}

	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		return fmt.Errorf("절대 경로는 사용할 수 없습니다 (path=%q)", path)
	}

	if !filepath.IsLocal(path) {
		return fmt.Errorf("기준 디렉터리를 벗어나는 경로는 사용할 수 없습니다 (path=%q)", path)
	}

	return nil
}

// ValidateFileName 값이 디렉터리 구분자를 포함하지 않는 단일 파일 이름인지 검증합니다.
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("파일 이름이 비어 있습니다")
	}

	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("파일 이름에 경로를 포함할 수 없습니다 (name=%q)", name)
	}

	return nil
}
