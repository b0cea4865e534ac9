package search

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/internal/service/fetcher"
	"github.com/darkkaiser/scriptfinder/pkg/coroutine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncRunner 스케줄러를 직접 소유하고 테스트 고루틴에서 Tick을 호출하는 Runner입니다.
type syncRunner struct {
	mu sync.Mutex
	sc *coroutine.Scheduler
}

func newSyncRunner() *syncRunner {
	return &syncRunner{sc: coroutine.New()}
}

func (r *syncRunner) Do(_ context.Context, fn func(*coroutine.Scheduler)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(r.sc)
	return nil
}

// drive 세션이 끝날 때까지 dt 간격으로 Tick을 호출합니다.
func (r *syncRunner) drive(t *testing.T, sess *Session, dt time.Duration) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for sess.Status() == StatusRunning {
		require.True(t, time.Now().Before(deadline), "세션이 제한 시간 안에 완료되지 않았습니다")

		_ = r.Do(context.Background(), func(sc *coroutine.Scheduler) { sc.Tick(dt) })
		time.Sleep(time.Millisecond)
	}
}

func (r *syncRunner) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sc.Len()
}

type funcFetcher func(req *http.Request) (*http.Response, error)

func (f funcFetcher) Do(req *http.Request) (*http.Response, error) { return f(req) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func unusedFetcher(t *testing.T) fetcher.Fetcher {
	return funcFetcher(func(*http.Request) (*http.Response, error) {
		t.Error("원격 요청이 발생하면 안 됩니다")
		return nil, io.EOF
	})
}

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()

	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("// "+f), 0644))
	}
}

func names(results []Result) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestService_Search_Exclude(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Player.cs",
		"Editor/PlayerEditor.cs",
		"Tests/PlayerTests.cs",
	)

	r := newSyncRunner()
	s := NewService(Config{
		LocalPaths: []string{root},
		Exclude:    []string{"editor", "Test"},
	}, r, unusedFetcher(t))

	sess, err := s.Search(context.Background(), "Player")
	require.NoError(t, err)

	r.drive(t, sess, 16*time.Millisecond)

	assert.Equal(t, []string{"Player.cs"}, names(sess.Snapshot().Results), "제외 키워드가 포함된 파일은 결과에서 빠져야 합니다")
}

func TestNewService_NilDependencies(t *testing.T) {
	assert.Panics(t, func() { NewService(Config{}, nil, unusedFetcher(t)) })
	assert.Panics(t, func() { NewService(Config{}, newSyncRunner(), nil) })
}

func TestService_Search_EmptyTerm(t *testing.T) {
	s := NewService(Config{}, newSyncRunner(), unusedFetcher(t))

	_, err := s.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTerm)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestService_Search_NoTargets(t *testing.T) {
	s := NewService(Config{}, newSyncRunner(), unusedFetcher(t))

	sess, err := s.Search(context.Background(), "Player")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, sess.Status(), "검색 대상이 없으면 즉시 완료되어야 합니다")
	assert.Empty(t, sess.Snapshot().Results)
}

func TestService_Search_Local(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Player.cs",
		"Enemy.cs",
		"a/MyPlayerController.CS",
		"a/b/player.txt",
		"c/PlayerData.cs",
	)

	r := newSyncRunner()
	s := NewService(Config{
		LocalPaths:  []string{filepath.Join(root, "missing"), root},
		DirsPerStep: 1,
	}, r, unusedFetcher(t))

	sess, err := s.Search(context.Background(), " player ")
	require.NoError(t, err)
	assert.Equal(t, "player", sess.Term())
	assert.Equal(t, StatusRunning, sess.Status(), "한 단계에 디렉터리 하나만 읽으므로 아직 진행 중이어야 합니다")

	r.drive(t, sess, 16*time.Millisecond)

	snap := sess.Snapshot()
	assert.Equal(t, StatusCompleted, snap.Status)
	assert.Equal(t, []string{"Player.cs", "MyPlayerController.CS", "PlayerData.cs"}, names(snap.Results))
	assert.Equal(t, filepath.Join(root, "a", "MyPlayerController.CS"), snap.Results[1].Path)
	assert.Equal(t, "local", snap.Results[0].Source)
	assert.Empty(t, snap.Errors, "존재하지 않는 경로는 오류 없이 건너뛰어야 합니다")
	assert.NotNil(t, snap.FinishedAt)
	assert.Zero(t, r.len(), "완료된 세션의 작업은 모두 제거되어야 합니다")

	got, err := s.Get(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestService_Search_MaxResults(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "A1.cs", "A2.cs", "A3.cs")

	r := newSyncRunner()
	s := NewService(Config{LocalPaths: []string{root}, MaxResults: 2}, r, unusedFetcher(t))

	sess, err := s.Search(context.Background(), "a")
	require.NoError(t, err)
	r.drive(t, sess, 16*time.Millisecond)

	snap := sess.Snapshot()
	assert.Len(t, snap.Results, 2)
	assert.True(t, snap.Truncated)
}

func TestService_Search_Remote(t *testing.T) {
	f := funcFetcher(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Player", req.URL.Query().Get("q"))
		return jsonResponse(http.StatusOK, `{"items":[{"path":"Assets/Player.cs"},{"path":"Assets/Enemy.cs"},{"path":"Docs/Player.md"}]}`), nil
	})

	r := newSyncRunner()
	s := NewService(Config{
		Sources: []fetcher.Source{{ID: "hub", URL: "https://example.com/repo", Format: fetcher.FormatJSON}},
	}, r, f)

	sess, err := s.Search(context.Background(), "Player")
	require.NoError(t, err)
	r.drive(t, sess, 16*time.Millisecond)

	snap := sess.Snapshot()
	require.Len(t, snap.Results, 1)
	assert.Equal(t, Result{Name: "Player.cs", Path: "https://example.com/repo/Assets/Player.cs", Source: "hub"}, snap.Results[0])
	assert.Empty(t, snap.Errors)
	assert.Zero(t, r.len(), "제한 시간 감시 작업도 함께 정리되어야 합니다")
}

func TestService_Search_RemoteError(t *testing.T) {
	f := funcFetcher(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `not json`), nil
	})

	root := t.TempDir()
	writeFiles(t, root, "Player.cs")

	r := newSyncRunner()
	s := NewService(Config{
		LocalPaths: []string{root},
		Sources:    []fetcher.Source{{ID: "hub", URL: "https://example.com/repo"}},
	}, r, f)

	sess, err := s.Search(context.Background(), "Player")
	require.NoError(t, err)
	r.drive(t, sess, 16*time.Millisecond)

	snap := sess.Snapshot()
	assert.Equal(t, StatusCompleted, snap.Status, "원격 검색이 실패해도 세션은 완료되어야 합니다")
	assert.Equal(t, []string{"Player.cs"}, names(snap.Results))
	require.Len(t, snap.Errors, 1)
	assert.Equal(t, "hub", snap.Errors[0].Source)
}

func TestService_Search_RemoteTimeout(t *testing.T) {
	f := funcFetcher(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	r := newSyncRunner()
	s := NewService(Config{
		Sources: []fetcher.Source{{ID: "slow", URL: "https://example.com/slow"}},
		Timeout: 50 * time.Millisecond,
	}, r, f)

	sess, err := s.Search(context.Background(), "Player")
	require.NoError(t, err)
	r.drive(t, sess, 30*time.Millisecond)

	snap := sess.Snapshot()
	assert.Equal(t, StatusCompleted, snap.Status)
	require.Len(t, snap.Errors, 1, "시간 초과 오류만 한 번 기록되어야 합니다")
	assert.Equal(t, "slow", snap.Errors[0].Source)
	assert.Contains(t, snap.Errors[0].Message, "시간이 초과")
}

func TestService_Search_RateLimited(t *testing.T) {
	var mu sync.Mutex
	var requested []string
	f := funcFetcher(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		requested = append(requested, req.URL.Host)
		mu.Unlock()
		return jsonResponse(http.StatusOK, `{"items":[{"path":"Player.cs"}]}`), nil
	})

	r := newSyncRunner()
	s := NewService(Config{
		Sources: []fetcher.Source{
			{ID: "a", URL: "https://a.example.com"},
			{ID: "b", URL: "https://b.example.com"},
		},
		RatePerSecond: 1,
		Burst:         1,
		Timeout:       time.Minute,
	}, r, f)

	sess, err := s.Search(context.Background(), "Player")
	require.NoError(t, err)

	mu.Lock()
	assert.LessOrEqual(t, len(requested), 1, "두 번째 요청은 속도 제한으로 지연되어야 합니다")
	mu.Unlock()

	r.drive(t, sess, 400*time.Millisecond)

	snap := sess.Snapshot()
	assert.Len(t, snap.Results, 2)
	assert.Empty(t, snap.Errors)
}

func TestService_Cancel(t *testing.T) {
	released := make(chan struct{})
	f := funcFetcher(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		close(released)
		return nil, req.Context().Err()
	})

	r := newSyncRunner()
	s := NewService(Config{
		Sources: []fetcher.Source{{ID: "slow", URL: "https://example.com/slow"}},
		Timeout: time.Hour,
	}, r, f)

	sess, err := s.Search(context.Background(), "Player")
	require.NoError(t, err)
	assert.Positive(t, r.len())

	require.NoError(t, s.Cancel(context.Background(), sess.ID()))

	assert.Equal(t, StatusCanceled, sess.Status())
	assert.Zero(t, r.len(), "세션의 모든 작업이 중지되어야 합니다")
	select {
	case <-sess.Done():
	default:
		t.Fatal("취소된 세션의 Done 채널은 닫혀 있어야 합니다")
	}
	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("진행 중이던 원격 요청이 취소되어야 합니다")
	}

	assert.NoError(t, s.Cancel(context.Background(), sess.ID()), "이미 취소된 세션의 재취소는 무시되어야 합니다")
	assert.ErrorIs(t, s.Cancel(context.Background(), "unknown"), ErrSessionNotFound)
}

func TestService_Start_CancelsRunningSessions(t *testing.T) {
	f := funcFetcher(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	r := newSyncRunner()
	s := NewService(Config{
		Sources: []fetcher.Source{{ID: "slow", URL: "https://example.com/slow"}},
		Timeout: time.Hour,
	}, r, f)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	sess, err := s.Search(context.Background(), "Player")
	require.NoError(t, err)

	cancel()
	wg.Wait()

	assert.Equal(t, StatusCanceled, sess.Status())

	// 원격 요청이 취소되어 Operation이 완료되면 남은 작업도 Tick에서 정리됩니다.
	_ = r.Do(context.Background(), func(sc *coroutine.Scheduler) { sc.StopAll() })
	assert.Zero(t, r.len())
}

func TestService_SessionEviction(t *testing.T) {
	s := NewService(Config{}, newSyncRunner(), unusedFetcher(t))

	first, err := s.Search(context.Background(), "first")
	require.NoError(t, err)

	for range maxSessions {
		_, err := s.Search(context.Background(), "next")
		require.NoError(t, err)
	}

	_, err = s.Get(first.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound, "가장 오래된 종료 세션이 제거되어야 합니다")
}

// lateCancelRunner 첫 번째 요청을 실행한 뒤 ctx 취소 에러를 반환합니다.
// 실행기가 요청을 받은 직후 호출자의 ctx가 취소된 경우와 같습니다.
type lateCancelRunner struct {
	*syncRunner
	calls int
}

func (r *lateCancelRunner) Do(ctx context.Context, fn func(*coroutine.Scheduler)) error {
	r.calls++
	if err := r.syncRunner.Do(ctx, fn); err != nil {
		return err
	}
	if r.calls == 1 {
		return context.Canceled
	}
	return nil
}

func TestService_Search_CanceledAfterAccepted(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Player.cs", "Enemies/Goblin.cs")

	r := &lateCancelRunner{syncRunner: newSyncRunner()}
	s := NewService(Config{LocalPaths: []string{root}}, r, unusedFetcher(t))

	sess, err := s.Search(context.Background(), "Player")
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sess)

	assert.Zero(t, r.len(), "이미 시작된 세션의 작업이 남아 있으면 안 됩니다")
	assert.Equal(t, 2, r.calls)

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	assert.Empty(t, s.sessions)
}
