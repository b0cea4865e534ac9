package importer

import (
	"net/url"
	"path/filepath"
	"strings"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

// checkSource src가 가져오기가 허용된 위치인지 확인합니다.
//
// 로컬 파일은 SourceDirs 중 하나의 하위에 있어야 하고(심볼릭 링크는 실제 경로로 판단합니다),
// 원격 파일은 호스트가 SourceHosts 중 하나여야 합니다.
func (s *Service) checkSource(src string, remote bool) error {
	if remote {
		u, err := url.Parse(src)
		if err == nil {
			if _, ok := s.sourceHosts[strings.ToLower(u.Host)]; ok {
				return nil
			}
		}

		return apperrors.Wrap(ErrSourceNotAllowed, apperrors.InvalidInput, "설정된 원격 저장소(remote.sources)의 URL만 가져올 수 있습니다")
	}

	p := realPath(src)
	for _, dir := range s.sourceDirs {
		if isWithin(dir, p) {
			return nil
		}
	}

	return apperrors.Wrapf(ErrSourceNotAllowed, apperrors.InvalidInput, "검색 경로(search.local_paths) 하위의 파일만 가져올 수 있습니다 (path=%s)", src)
}

// realPath 절대 경로로 바꾸고 심볼릭 링크를 해석합니다.
// 파일이 없으면 부모 디렉터리까지만 해석합니다.
func realPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		return filepath.Join(dir, filepath.Base(abs))
	}

	return abs
}

// isWithin p가 dir의 하위 경로인지 여부를 반환합니다. dir 자신은 포함하지 않습니다.
func isWithin(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == "." {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
