package search

import (
	"sync"
	"time"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/pkg/strutil"
)

// Status 검색 세션의 진행 상태입니다.
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// MarshalText JSON 응답에서 상태를 문자열로 표현합니다.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 문자열로 표현된 상태를 해석합니다. 알 수 없는 값이면 에러를 반환합니다.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "running":
		*s = StatusRunning
	case "completed":
		*s = StatusCompleted
	case "canceled":
		*s = StatusCanceled
	default:
		return apperrors.Newf(apperrors.ParsingFailed, "알 수 없는 검색 상태입니다: %s", text)
	}
	return nil
}

// Result 검색된 스크립트 파일 하나입니다.
type Result struct {
	// Name 파일 이름 (예: PlayerController.cs)
	Name string `json:"name"`

	// Path 로컬 파일의 절대 경로 또는 원격 파일의 다운로드 URL
	Path string `json:"path"`

	// Source 결과를 찾은 검색 대상. 로컬 검색이면 "local", 원격 검색이면 저장소 ID입니다.
	Source string `json:"source"`
}

// SourceError 검색 대상 하나에서 발생한 오류입니다. 오류가 있어도 세션은 다른 대상의 결과로 완료됩니다.
type SourceError struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Snapshot 특정 시점의 세션 상태를 복사한 값입니다.
type Snapshot struct {
	ID         string        `json:"id"`
	Term       string        `json:"term"`
	Status     Status        `json:"status"`
	Results    []Result      `json:"results"`
	Errors     []SourceError `json:"errors,omitempty"`
	Truncated  bool          `json:"truncated,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}

// Session 하나의 검색 요청과 그 진행 상태입니다.
//
// 세션은 자신이 시작한 모든 작업의 Owner입니다. 세션을 취소하면 해당 세션의 작업들만 일괄 중지됩니다.
// 상태 변경은 작업 실행기의 이벤트 루프에서 일어나고, 조회는 다른 고루틴에서 일어나므로 뮤텍스로 보호합니다.
type Session struct {
	id         string
	term       string
	maxResults int
	matcher    *strutil.NameMatcher

	mu         sync.RWMutex
	status     Status
	results    []Result
	seen       map[string]struct{}
	errs       []SourceError
	truncated  bool
	startedAt  time.Time
	finishedAt time.Time

	doneC chan struct{}
}

func newSession(id, term string, maxResults int, matcher *strutil.NameMatcher) *Session {
	return &Session{
		id:         id,
		term:       term,
		maxResults: maxResults,
		matcher:    matcher,
		status:     StatusRunning,
		seen:       make(map[string]struct{}),
		startedAt:  time.Now(),
		doneC:      make(chan struct{}),
	}
}

// ID 세션의 고유 식별자를 반환합니다.
func (s *Session) ID() string { return s.id }

// OwnerID 작업 스케줄러에서 세션을 Owner로 식별하기 위한 값입니다.
func (s *Session) OwnerID() string { return s.id }

// Term 검색어를 반환합니다.
func (s *Session) Term() string { return s.term }

// Done 세션이 완료되거나 취소되면 닫히는 채널을 반환합니다.
func (s *Session) Done() <-chan struct{} { return s.doneC }

// Status 현재 상태를 반환합니다.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// Snapshot 현재 상태의 복사본을 반환합니다.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		ID:        s.id,
		Term:      s.term,
		Status:    s.status,
		Results:   append([]Result{}, s.results...),
		Errors:    append([]SourceError(nil), s.errs...),
		Truncated: s.truncated,
		StartedAt: s.startedAt,
	}
	if !s.finishedAt.IsZero() {
		finishedAt := s.finishedAt
		snap.FinishedAt = &finishedAt
	}

	return snap
}

// add 결과를 추가합니다. 같은 경로는 한 번만 추가됩니다.
// 최대 결과 수에 도달하여 더 이상 추가할 수 없으면 false를 반환합니다.
func (s *Session) add(r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return false
	}
	if len(s.results) >= s.maxResults {
		s.truncated = true
		return false
	}

	if _, dup := s.seen[r.Path]; !dup {
		s.seen[r.Path] = struct{}{}
		s.results = append(s.results, r)
	}

	return true
}

func (s *Session) addError(source string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errs = append(s.errs, SourceError{Source: source, Message: err.Error()})
}

// finish 세션을 종료 상태로 전환합니다. 이미 종료된 세션이면 false를 반환합니다.
func (s *Session) finish(status Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return false
	}

	s.status = status
	s.finishedAt = time.Now()
	close(s.doneC)

	return true
}
