package sim

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueue_TimestampOrdering(t *testing.T) {
	// GIVEN events pushed out of timestamp order
	q := make(EventQueue, 0)
	for i, ts := range []float64{5, 1, 3} {
		heap.Push(&q, eventEntry{event: &ResumeEvent{time: ts}, seqID: int64(i)})
	}

	// THEN they pop in timestamp order
	var got []float64
	for q.Len() > 0 {
		got = append(got, heap.Pop(&q).(eventEntry).event.Timestamp())
	}
	assert.Equal(t, []float64{1, 3, 5}, got)
}

func TestEventQueue_Peek_EmptyIsNil(t *testing.T) {
	q := make(EventQueue, 0)
	assert.Nil(t, q.Peek())
}

func TestSimulator_SameTimestamp_RunsInSchedulingOrder(t *testing.T) {
	// GIVEN several processes waking at the same instant, scheduled in a known order
	s := NewSimulator(100)
	var order []int
	for i := 0; i < 10; i++ {
		s.Timeout(2, "wait", func() { order = append(order, i) })
	}

	// WHEN the simulation runs
	s.Run()

	// THEN they resume FIFO
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
	assert.Equal(t, 2.0, s.Clock)
	assert.Equal(t, 10, s.EventCount)
}

func TestSimulator_DeferRunsAfterEventsAlreadyDue(t *testing.T) {
	// GIVEN an event due now and a process that defers itself from an earlier one
	s := NewSimulator(10)
	var order []string
	s.Timeout(1, "a", func() {
		s.Defer("deferred", func() { order = append(order, "deferred") })
	})
	s.Timeout(1, "b", func() { order = append(order, "b") })

	s.Run()

	// THEN the deferred continuation runs after b, at the same clock
	assert.Equal(t, []string{"b", "deferred"}, order)
	assert.Equal(t, 1.0, s.Clock)
}

func TestSimulator_StopsAtHorizon(t *testing.T) {
	// GIVEN events before, at and after the horizon
	s := NewSimulator(5)
	var ran []float64
	for _, d := range []float64{4.9, 5, 7} {
		s.Timeout(d, "wait", func() { ran = append(ran, s.Clock) })
	}

	s.Run()

	// THEN only the event strictly before the horizon executes
	assert.Equal(t, []float64{4.9}, ran)
	assert.Equal(t, 2, s.Pending())
	// AND the clock rests at the horizon
	assert.Equal(t, 5.0, s.Clock)
}

func TestSimulator_DrainedQueue_ClockAtLastEvent(t *testing.T) {
	s := NewSimulator(100)
	s.Timeout(3.5, "wait", func() {})
	s.Run()
	assert.Equal(t, 3.5, s.Clock)
	assert.Equal(t, 0, s.Pending())
}

func TestSimulator_ZeroHorizon_ExecutesNothing(t *testing.T) {
	s := NewSimulator(0)
	executed := false
	s.Defer("now", func() { executed = true })
	assert.False(t, s.Step())
	s.Run()
	assert.False(t, executed)
}

func TestSimulator_NegativeDelay_Panics(t *testing.T) {
	s := NewSimulator(10)
	assert.Panics(t, func() { s.Timeout(-0.1, "bad", func() {}) })
}

func TestSimulator_ScheduleInPast_Panics(t *testing.T) {
	// GIVEN a simulator whose clock has advanced
	s := NewSimulator(10)
	s.Timeout(2, "wait", func() {})
	s.Run()

	// THEN scheduling before the clock is an invariant violation
	assert.Panics(t, func() { s.Schedule(&ResumeEvent{time: 1, resume: func() {}}) })
}

func TestSimulator_NestedTimeouts_AdvanceClock(t *testing.T) {
	// GIVEN a process that waits three times in a row
	s := NewSimulator(100)
	var stamps []float64
	s.Timeout(1, "first", func() {
		stamps = append(stamps, s.Clock)
		s.Timeout(2, "second", func() {
			stamps = append(stamps, s.Clock)
			s.Timeout(0.5, "third", func() {
				stamps = append(stamps, s.Clock)
			})
		})
	})

	s.Run()

	assert.Equal(t, []float64{1, 3, 3.5}, stamps)
}
