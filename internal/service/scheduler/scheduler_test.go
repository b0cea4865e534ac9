package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/scriptfinder/internal/config"
	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/internal/service/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) Search(ctx context.Context, term string) (*search.Session, error) {
	args := m.Called(ctx, term)
	sess, _ := args.Get(0).(*search.Session)
	return sess, args.Error(1)
}

func TestNewService(t *testing.T) {
	assert.PanicsWithValue(t, "Searcher는 필수입니다", func() { NewService(nil, nil) })
	assert.NotPanics(t, func() { NewService(nil, &mockSearcher{}) })
}

func TestScheduler_Start_NilSearcher(t *testing.T) {
	s := &Scheduler{}
	wg := &sync.WaitGroup{}
	wg.Add(1)

	assert.ErrorIs(t, s.Start(context.Background(), wg), ErrSearcherNotInitialized)
	wg.Wait()
}

func TestScheduler_RegisterSchedules(t *testing.T) {
	schedules := []config.ScheduleConfig{
		{ID: "daily", Term: "Player", TimeSpec: "0 0 9 * * *"},
		{ID: "broken", Term: "Enemy", TimeSpec: "* * *"},
		{ID: "hourly", Term: "UI", TimeSpec: "0 0 * * * *"},
	}
	s := NewService(schedules, &mockSearcher{})

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	assert.Equal(t, []string{"daily", "hourly"}, s.Registered(), "잘못된 Cron 표현식은 건너뛰어야 합니다")

	// 중복 호출
	wg.Add(1)
	assert.NoError(t, s.Start(ctx, wg))

	cancel()
	wg.Wait()

	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	assert.False(t, s.running)
	assert.Nil(t, s.cron)
}

func TestScheduler_RunsSearchOnSchedule(t *testing.T) {
	m := &mockSearcher{}
	called := make(chan string, 4)
	m.On("Search", mock.Anything, "Player").
		Run(func(args mock.Arguments) {
			select {
			case called <- args.String(1):
			default:
			}
		}).
		Return(&search.Session{}, nil)

	s := NewService([]config.ScheduleConfig{{ID: "every-second", Term: "Player", TimeSpec: "* * * * * *"}}, m)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	defer func() {
		cancel()
		wg.Wait()
	}()

	select {
	case term := <-called:
		assert.Equal(t, "Player", term)
	case <-time.After(3 * time.Second):
		t.Fatal("저장된 검색이 실행되지 않았습니다")
	}
}

func TestScheduler_RunSearch_Error(t *testing.T) {
	m := &mockSearcher{}
	m.On("Search", mock.Anything, "Player").Return(nil, apperrors.New(apperrors.Unavailable, "실행기가 중지됨")).Once()

	s := NewService(nil, m)
	assert.NotPanics(t, func() { s.runSearch("id", "Player") })

	m.AssertExpectations(t)
}

func TestScheduler_RunSearch_HasDeadline(t *testing.T) {
	m := &mockSearcher{}
	m.On("Search", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), "Player").Return(&search.Session{}, nil).Once()

	NewService(nil, m).runSearch("id", "Player")

	m.AssertExpectations(t)
}
