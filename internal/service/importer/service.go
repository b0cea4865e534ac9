// Package importer 검색된 스크립트 파일을 프로젝트의 가져오기 폴더(Assets/<folder>)로 복사합니다.
//
// 원격 파일은 다운로드하고, 로컬 파일은 복사합니다. 실제 입출력은 별도의 고루틴(Operation)에서 수행되고,
// 가져오기 작업 자체는 작업 실행기의 스케줄러에서 그 완료를 기다리는 작업으로 실행됩니다.
// 호출자는 이 작업이 끝나면서 넘겨준 결과를 받습니다.
//
// 가져올 수 있는 위치는 검색 대상과 같습니다. 로컬 파일은 검색 경로의 하위에 있어야 하고,
// 원격 파일은 설정된 저장소의 호스트에 있어야 합니다.
package importer

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/internal/service/fetcher"
	"github.com/darkkaiser/scriptfinder/pkg/concurrency"
	"github.com/darkkaiser/scriptfinder/pkg/coroutine"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
	"github.com/darkkaiser/scriptfinder/pkg/validation"
)

const component = "importer"

// assetsDir 가져오기 폴더가 만들어지는 프로젝트 내 최상위 디렉터리입니다.
const assetsDir = "Assets"

// Runner 스케줄러에 접근할 수 있는 유일한 통로입니다. runner.Service가 구현합니다.
type Runner interface {
	Do(ctx context.Context, fn func(*coroutine.Scheduler)) error
}

// Config 가져오기 설정입니다.
type Config struct {
	ProjectDir string
	Folder     string

	// SourceDirs 로컬 파일을 가져올 수 있는 디렉터리 목록입니다. (search.local_paths)
	SourceDirs []string

	// SourceHosts 원격 파일을 내려받을 수 있는 호스트 목록입니다. (remote.sources의 호스트, fetcher.SourceHosts 참고)
	SourceHosts []string
}

// Result 가져오기가 끝난 파일의 정보입니다.
type Result struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Bytes  int64  `json:"bytes"`
}

// Service 파일 가져오기를 수행합니다.
type Service struct {
	config  Config
	runner  Runner
	fetcher fetcher.Fetcher

	// owner 모든 가져오기 작업의 Owner입니다.
	owner coroutine.OwnerKey

	sourceDirs  []string
	sourceHosts map[string]struct{}

	// targets 같은 프로세스 안에서 같은 대상 파일에 대한 가져오기를 직렬화합니다. 프로세스 간에는 폴더 잠금 파일을 사용합니다.
	targets *concurrency.KeyedMutex
}

// NewService 새로운 가져오기 서비스를 생성합니다. runner 또는 f가 nil이면 panic이 발생합니다.
func NewService(config Config, runner Runner, f fetcher.Fetcher) *Service {
	if runner == nil {
		panic("Runner는 필수입니다")
	}
	if f == nil {
		panic("Fetcher는 필수입니다")
	}

	s := &Service{
		config:      config,
		runner:      runner,
		fetcher:     f,
		owner:       coroutine.NewOwner(),
		sourceHosts: make(map[string]struct{}, len(config.SourceHosts)),
		targets:     concurrency.NewKeyedMutex(),
	}
	for _, dir := range config.SourceDirs {
		s.sourceDirs = append(s.sourceDirs, realPath(dir))
	}
	for _, host := range config.SourceHosts {
		s.sourceHosts[strings.ToLower(host)] = struct{}{}
	}

	return s
}

// TargetDir 파일이 복사될 디렉터리를 반환합니다.
func (s *Service) TargetDir() string {
	return filepath.Join(s.config.ProjectDir, assetsDir, filepath.FromSlash(s.config.Folder))
}

// Import src(로컬 경로 또는 http(s) URL)의 파일을 가져오기 폴더에 name으로 복사하고, 완료될 때까지 기다립니다.
//
// name이 비어 있으면 src의 파일 이름을 사용합니다.
//
// 반환값:
//   - 같은 이름의 파일이 이미 있으면 ErrAlreadyExists (Conflict)
//   - 검색 경로 밖의 파일이거나 설정되지 않은 호스트의 URL이면 ErrSourceNotAllowed (InvalidInput)
//   - 작업 실행기가 종료되어 작업이 중지되면 Canceled 타입의 에러
//   - ctx가 취소되면 Canceled 타입의 에러. 진행 중인 입출력도 함께 취소됩니다.
func (s *Service) Import(ctx context.Context, src, name string) (Result, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Result{}, ErrEmptySource
	}

	remote := validation.IsHTTPURL(src)
	if err := s.checkSource(src, remote); err != nil {
		return Result{}, err
	}

	if name == "" {
		if remote {
			name = path.Base(strings.SplitN(src, "?", 2)[0])
		} else {
			name = filepath.Base(src)
		}
	}
	if err := validation.ValidateFileName(name); err != nil {
		return Result{}, apperrors.Wrap(err, apperrors.InvalidInput, "가져올 파일의 이름이 올바르지 않습니다")
	}

	target := filepath.Join(s.TargetDir(), name)

	if err := ctx.Err(); err != nil {
		return Result{}, apperrors.Wrap(err, apperrors.Canceled, "파일 가져오기가 취소되었습니다")
	}

	op := coroutine.Go(ctx, func(ctx context.Context) (Result, error) {
		return s.copy(ctx, src, target, remote)
	})

	// result, importErr는 importFile 작업이 done을 닫기 전에 기록됩니다.
	var (
		result    Result
		importErr error
		done      = make(chan struct{})
	)

	var task *coroutine.Task
	if err := s.runner.Do(ctx, func(sc *coroutine.Scheduler) {
		var startErr error
		task, startErr = sc.Start(coroutine.FromSeq("importFile", func(yield func(any) bool) {
			defer close(done)

			if !yield(coroutine.Await(op)) {
				op.Cancel()
				importErr = apperrors.New(apperrors.Canceled, "파일 가져오기 작업이 중지되었습니다")
				return
			}

			result, importErr = op.Result()

			fields := applog.Fields{"source": src, "target": target}
			if importErr != nil {
				fields["error"] = importErr
				applog.WithComponentAndFields(component, fields).Warn("파일 가져오기에 실패하였습니다")
				return
			}

			fields["bytes"] = result.Bytes
			applog.WithComponentAndFields(component, fields).Info("파일을 가져왔습니다")
		}), s.owner)
		if startErr != nil {
			importErr = startErr
			close(done)
		}
	}); err != nil {
		// 이미 시작된 작업은 op가 끝나면 스스로 종료됩니다.
		op.Cancel()
		return Result{}, err
	}

	select {
	case <-done:
		return result, importErr
	case <-ctx.Done():
		op.Cancel()
		if err := s.runner.Do(context.Background(), func(sc *coroutine.Scheduler) { sc.Cancel(task) }); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"source": src,
				"error":  err,
			}).Warn("취소된 가져오기 작업을 중지할 수 없습니다")
		}
		return Result{}, apperrors.Wrap(ctx.Err(), apperrors.Canceled, "파일 가져오기가 취소되었습니다")
	}
}

// copy 가져오기 폴더를 잠근 상태에서 파일을 임시 파일에 쓴 뒤 대상 이름으로 옮깁니다.
func (s *Service) copy(ctx context.Context, src, target string, remote bool) (Result, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Result{}, apperrors.Wrapf(err, apperrors.System, "가져오기 폴더를 만들 수 없습니다 (dir=%s)", dir)
	}

	if err := s.targets.Lock(ctx, target); err != nil {
		return Result{}, apperrors.Wrap(err, apperrors.Canceled, "같은 파일의 가져오기가 끝나기를 기다리는 중 취소되었습니다")
	}
	defer s.targets.Unlock(target)

	result := Result{Source: src, Target: target}

	err := withFolderLock(ctx, dir, func() error {
		if _, err := os.Stat(target); err == nil {
			return apperrors.Wrapf(ErrAlreadyExists, apperrors.Conflict, "이미 존재하는 파일입니다 (target=%s)", target)
		}

		tmp, err := os.CreateTemp(dir, ".import-*")
		if err != nil {
			return apperrors.Wrap(err, apperrors.System, "임시 파일을 만들 수 없습니다")
		}
		defer os.Remove(tmp.Name())

		n, err := s.write(ctx, tmp, src, remote)
		if closeErr := tmp.Close(); err == nil && closeErr != nil {
			err = apperrors.Wrap(closeErr, apperrors.System, "임시 파일을 닫을 수 없습니다")
		}
		if err != nil {
			return err
		}

		if err := os.Rename(tmp.Name(), target); err != nil {
			return apperrors.Wrapf(err, apperrors.System, "파일을 가져오기 폴더로 옮길 수 없습니다 (target=%s)", target)
		}

		result.Bytes = n
		return nil
	})

	return result, err
}

func (s *Service) write(ctx context.Context, w io.Writer, src string, remote bool) (int64, error) {
	if remote {
		return fetcher.Download(ctx, s.fetcher, src, w)
	}

	f, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, apperrors.Wrapf(err, apperrors.NotFound, "가져올 파일이 존재하지 않습니다 (path=%s)", src)
		}
		return 0, apperrors.Wrapf(err, apperrors.System, "가져올 파일을 열 수 없습니다 (path=%s)", src)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return n, apperrors.Wrapf(err, apperrors.System, "파일을 복사하는 중 오류가 발생하였습니다 (path=%s)", src)
	}

	return n, nil
}
