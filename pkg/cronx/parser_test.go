package cronx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 저장된 검색(schedules[].time_spec)에 쓰이는 표현식을 해석할 수 있는지 확인합니다.
func TestStandardParser_ScheduleTimeSpecs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		timeSpec string
		wantErr  bool
	}{
		{name: "평일 오전 9시", timeSpec: "0 0 9 * * MON-FRI"},
		{name: "매일 새벽 3시", timeSpec: "0 0 3 * * *"},
		{name: "15분마다", timeSpec: "0 */15 * * * *"},
		{name: "주말 정오", timeSpec: "0 0 12 * * SAT,SUN"},
		{name: "매월 1일", timeSpec: "0 30 6 1 * *"},
		{name: "30분 간격", timeSpec: "@every 30m"},
		{name: "매일 자정", timeSpec: "@midnight"},
		{name: "매주", timeSpec: "@weekly"},

		{name: "분 단위 5필드 표현식", timeSpec: "*/5 * * * *", wantErr: true},
		{name: "필드 초과", timeSpec: "0 0 9 * * MON 2026", wantErr: true},
		{name: "시 범위 초과", timeSpec: "0 0 24 * * *", wantErr: true},
		{name: "없는 요일 이름", timeSpec: "0 0 9 * * FUN", wantErr: true},
		{name: "잘못된 간격", timeSpec: "@every soon", wantErr: true},
		{name: "없는 Descriptor", timeSpec: "@sometimes", wantErr: true},
		{name: "빈 문자열", timeSpec: "", wantErr: true},
	}

	parser := StandardParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			schedule, err := parser.Parse(tt.timeSpec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, schedule)
		})
	}
}

// 해석된 스케줄이 저장된 검색을 기대한 시각에 실행하는지 확인합니다.
func TestStandardParser_NextActivation(t *testing.T) {
	t.Parallel()

	kst := time.FixedZone("KST", 9*60*60)
	// 2026-10-16 (금) 10:20:15 KST
	from := time.Date(2026, 10, 16, 10, 20, 15, 0, kst)

	tests := []struct {
		name     string
		timeSpec string
		want     time.Time
	}{
		{"평일 오전 9시는 주말을 건너뜀", "0 0 9 * * MON-FRI", time.Date(2026, 10, 19, 9, 0, 0, 0, kst)},
		{"주말 정오", "0 0 12 * * SAT,SUN", time.Date(2026, 10, 17, 12, 0, 0, 0, kst)},
		{"15분마다", "0 */15 * * * *", time.Date(2026, 10, 16, 10, 30, 0, 0, kst)},
		{"매일 새벽 3시", "0 0 3 * * *", time.Date(2026, 10, 17, 3, 0, 0, 0, kst)},
		{"다음 달 1일", "0 30 6 1 * *", time.Date(2026, 11, 1, 6, 30, 0, 0, kst)},
		{"30분 간격", "@every 30m", from.Add(30 * time.Minute)},
	}

	parser := StandardParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			schedule, err := parser.Parse(tt.timeSpec)
			require.NoError(t, err)

			next := schedule.Next(from)
			assert.True(t, tt.want.Equal(next), "want=%s got=%s", tt.want, next)

			// 연속 실행 시각은 항상 증가해야 합니다.
			assert.True(t, schedule.Next(next).After(next))
		})
	}
}
