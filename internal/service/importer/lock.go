package importer

import (
	"context"
	"path/filepath"
	"time"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/gofrs/flock"
)

const (
	lockFilename   = ".scriptfinder.lock"
	lockRetryDelay = 50 * time.Millisecond
)

// withFolderLock 가져오기 폴더의 잠금 파일에 배타적 잠금을 얻은 상태에서 fn을 실행합니다.
// 같은 프로젝트에 여러 프로세스가 동시에 파일을 가져오는 경우를 대비합니다.
func withFolderLock(ctx context.Context, dir string, fn func() error) error {
	lock := flock.New(filepath.Join(dir, lockFilename))

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apperrors.Wrap(ctxErr, apperrors.Canceled, "가져오기 폴더의 잠금을 기다리는 중 취소되었습니다")
		}
		return apperrors.Wrapf(err, apperrors.System, "가져오기 폴더를 잠글 수 없습니다 (dir=%s)", dir)
	}
	if !locked {
		return apperrors.Newf(apperrors.Unavailable, "가져오기 폴더가 다른 프로세스에 의해 잠겨 있습니다 (dir=%s)", dir)
	}
	defer lock.Unlock()

	return fn()
}
