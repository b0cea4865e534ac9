package coroutine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type doneOp bool

func (d doneOp) IsDone() bool { return bool(d) }

func TestClassify(t *testing.T) {
	task := &Task{}
	w := Delay(time.Second)

	tests := []struct {
		name      string
		value     any
		wantKind  waitKind
		supported bool
	}{
		{name: "nil", value: nil, wantKind: waitImmediate, supported: true},
		{name: "Wait", value: w, wantKind: waitDelay, supported: true},
		{name: "*Wait", value: &w, wantKind: waitDelay, supported: true},
		{name: "*Task", value: task, wantKind: waitJoin, supported: true},
		{name: "KeepWaiter", value: &flag{}, wantKind: waitFlag, supported: true},
		{name: "AsyncOp", value: doneOp(true), wantKind: waitAsync, supported: true},
		{name: "int", value: 1, wantKind: waitImmediate, supported: false},
		{name: "time.Duration", value: time.Second, wantKind: waitImmediate, supported: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, supported := classify(tt.value)

			assert.Equal(t, tt.supported, supported)
			assert.Equal(t, tt.wantKind, got.kind)
		})
	}
}

func TestWait_NilPayloads(t *testing.T) {
	assert.Equal(t, waitImmediate, While(nil).kind)
	assert.Equal(t, waitImmediate, Until(nil).kind)
	assert.Equal(t, waitImmediate, Join(nil).kind)
	assert.Equal(t, waitImmediate, Await(nil).kind)
	assert.Equal(t, waitImmediate, Wait{}.kind)
}

func TestWait_Ready(t *testing.T) {
	t.Run("Delay는 남은 시간이 음수가 될 때 재개", func(t *testing.T) {
		w := Delay(30 * time.Millisecond)

		assert.False(t, w.ready(10*time.Millisecond, 1))
		assert.False(t, w.ready(20*time.Millisecond, 2))
		assert.True(t, w.ready(time.Nanosecond, 3))
	})

	t.Run("Join은 종료된 Tick 이후에만 재개", func(t *testing.T) {
		task := &Task{state: StateFinished, doneTick: 5}
		w := Join(task)

		assert.False(t, w.ready(frame, 5))
		assert.True(t, w.ready(frame, 6))
	})

	t.Run("Await", func(t *testing.T) {
		pending := Await(doneOp(false))
		done := Await(doneOp(true))

		assert.False(t, pending.ready(frame, 1))
		assert.True(t, done.ready(frame, 1))
	})
}

func TestWait_String(t *testing.T) {
	assert.Equal(t, "Delay(1s)", Delay(time.Second).String())
	assert.Equal(t, "Immediate", Immediate().String())
	assert.Equal(t, "Join", Join(&Task{}).String())
}
