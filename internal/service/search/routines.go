package search

import (
	"context"
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/darkkaiser/scriptfinder/internal/service/fetcher"
	"github.com/darkkaiser/scriptfinder/pkg/coroutine"
	applog "github.com/darkkaiser/scriptfinder/pkg/log"
)

const localSource = "local"

// start 세션의 루트 작업을 등록합니다. 작업 실행기의 이벤트 루프에서 호출됩니다.
func (s *Service) start(sc *coroutine.Scheduler, sess *Session) {
	if _, err := sc.Start(coroutine.FromSeq("search", s.searchRoutine(sc, sess)), sess); err != nil {
		sess.addError(localSource, err)
		sess.finish(StatusCompleted)
	}
}

// searchRoutine 로컬 검색과 원격 저장소별 검색 작업을 시작하고, 모두 끝날 때까지 기다린 뒤 세션을 완료합니다.
func (s *Service) searchRoutine(sc *coroutine.Scheduler, sess *Session) iter.Seq[any] {
	return func(yield func(any) bool) {
		var children []*coroutine.Task

		if len(s.config.LocalPaths) > 0 {
			if t, err := sc.Start(coroutine.FromSeq("searchLocal", s.localRoutine(sess)), sess); err == nil {
				children = append(children, t)
			}
		}
		for _, src := range s.config.Sources {
			if t, err := sc.Start(coroutine.FromSeq("searchRemote:"+src.ID, s.remoteRoutine(sc, sess, src)), sess); err == nil {
				children = append(children, t)
			}
		}

		for _, child := range children {
			if !yield(coroutine.Join(child)) {
				return
			}

			// panic 등으로 실패한 작업은 세션의 오류로 기록합니다.
			if err := child.Err(); err != nil {
				sess.addError(child.Name(), err)
			}
		}

		if sess.finish(StatusCompleted) {
			snap := sess.Snapshot()
			applog.WithComponentAndFields(component, applog.Fields{
				"session_id":   sess.id,
				"result_count": len(snap.Results),
				"error_count":  len(snap.Errors),
				"truncated":    snap.Truncated,
			}).Info("검색 세션이 완료되었습니다")
		}
	}
}

// localRoutine 설정된 로컬 디렉터리들을 깊이 우선으로 탐색합니다.
// 한 단계에서 최대 DirsPerStep개의 디렉터리만 읽고 다음 Tick으로 넘어갑니다.
// 존재하지 않는 디렉터리는 건너뜁니다.
func (s *Service) localRoutine(sess *Session) iter.Seq[any] {
	return func(yield func(any) bool) {
		var stack []string
		for i := len(s.config.LocalPaths) - 1; i >= 0; i-- {
			root := s.config.LocalPaths[i]
			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				applog.WithComponentAndFields(component, applog.Fields{
					"session_id": sess.id,
					"path":       root,
				}).Debug("존재하지 않는 로컬 검색 경로를 건너뜁니다")
				continue
			}
			stack = append(stack, root)
		}

		for len(stack) > 0 {
			for n := 0; n < s.config.DirsPerStep && len(stack) > 0; n++ {
				dir := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				entries, err := os.ReadDir(dir)
				if err != nil {
					sess.addError(localSource, err)
					continue
				}

				// 이름순으로 방문하도록 하위 디렉터리는 역순으로 쌓습니다.
				for i := len(entries) - 1; i >= 0; i-- {
					if entries[i].IsDir() {
						stack = append(stack, filepath.Join(dir, entries[i].Name()))
					}
				}

				for _, e := range entries {
					if e.IsDir() || !sess.matcher.Match(e.Name()) {
						continue
					}
					if !sess.add(Result{Name: e.Name(), Path: filepath.Join(dir, e.Name()), Source: localSource}) {
						return
					}
				}
			}

			if len(stack) == 0 {
				return
			}
			if !yield(coroutine.Immediate()) {
				return
			}
		}
	}
}

// remoteRoutine 원격 저장소 하나에 목록을 요청하고 결과를 세션에 추가합니다.
//
// 요청은 별도의 고루틴(Operation)에서 실행되고, 이 작업은 그 완료를 기다립니다.
// 동시에 제한 시간 감시 작업을 시작하여 응답이 늦으면 요청을 취소합니다.
func (s *Service) remoteRoutine(sc *coroutine.Scheduler, sess *Session, src fetcher.Source) iter.Seq[any] {
	return func(yield func(any) bool) {
		if s.limiter != nil {
			r := s.limiter.Reserve()
			if !r.OK() {
				sess.addError(src.ID, ErrRateLimited)
				return
			}
			if d := r.Delay(); d > 0 {
				if !yield(coroutine.Delay(d)) {
					r.Cancel()
					return
				}
			}
		}

		op := coroutine.Go(s.ctx, func(ctx context.Context) ([]string, error) {
			return fetcher.FetchListing(ctx, s.fetcher, src, sess.term, s.config.Extension)
		})

		timedOut := false
		watcher, _ := sc.Start(coroutine.FromSeq("watchTimeout:"+src.ID, func(yield func(any) bool) {
			if !yield(coroutine.Delay(s.config.Timeout)) || op.IsDone() {
				return
			}

			timedOut = true
			op.Cancel()

			sess.addError(src.ID, ErrRemoteTimeout)
			applog.WithComponentAndFields(component, applog.Fields{
				"session_id": sess.id,
				"source":     src.ID,
				"timeout":    s.config.Timeout.String(),
			}).Warn("원격 저장소 요청 시간이 초과되었습니다. 사용자 이름, 토큰, 저장소 주소를 확인하세요")
		}), sess)

		if !yield(coroutine.Await(op)) {
			op.Cancel()
			return
		}

		if watcher != nil {
			sc.StopTask(watcher.Key())
		}
		if timedOut {
			return
		}

		paths, err := op.Result()
		if err != nil {
			sess.addError(src.ID, err)
			return
		}

		for _, p := range paths {
			name := path.Base(p)
			if !sess.matcher.Match(name) {
				continue
			}
			if !sess.add(Result{Name: name, Path: src.ResolvePath(p), Source: src.ID}) {
				return
			}
		}
	}
}
