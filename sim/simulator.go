// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time and the event loop.
// It knows nothing about stations or products: processes suspend by scheduling
// an Event and resume when the loop executes it.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventQueue has all pending events, like generator ticks and process wake-ups
	EventQueue EventQueue
	// EventCount is the number of events executed so far
	EventCount int
	nextSeq    int64
}

// NewSimulator creates a simulator that stops before executing any event
// at or beyond horizon.
func NewSimulator(horizon float64) *Simulator {
	return &Simulator{
		Clock:      0,
		Horizon:    horizon,
		EventQueue: make(EventQueue, 0),
	}
}

// Schedule pushes an event into the simulator's EventQueue. Events with equal
// timestamps execute in the order they were scheduled.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("event %T scheduled in the past: %f < %f", ev, ev.Timestamp(), sim.Clock))
	}
	sim.nextSeq++
	heap.Push(&sim.EventQueue, eventEntry{event: ev, seqID: sim.nextSeq})
}

// Timeout suspends the calling process for delay time units; resume runs when
// the delay has elapsed. A negative delay is an invariant violation.
func (sim *Simulator) Timeout(delay float64, label string, resume func()) {
	if delay < 0 {
		panic(fmt.Sprintf("negative delay %f for %s", delay, label))
	}
	sim.Schedule(&ResumeEvent{time: sim.Clock + delay, label: label, resume: resume})
}

// Defer runs resume at the current clock, after every event already scheduled
// for this instant.
func (sim *Simulator) Defer(label string, resume func()) {
	sim.Timeout(0, label, resume)
}

// Pending returns the number of events waiting in the queue.
func (sim *Simulator) Pending() int {
	return len(sim.EventQueue)
}

// Step executes the next event if it lies before the horizon and reports
// whether one was executed.
func (sim *Simulator) Step() bool {
	next := sim.EventQueue.Peek()
	if next == nil || next.Timestamp() >= sim.Horizon {
		return false
	}
	// get the next event to be simulated
	ev := heap.Pop(&sim.EventQueue).(eventEntry).event
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("clock went backwards: %f < %f", ev.Timestamp(), sim.Clock))
	}
	// advance the clock
	sim.Clock = ev.Timestamp()
	logrus.Tracef("[t %10.3f] Executing %T", sim.Clock, ev)
	ev.Execute(sim)
	sim.EventCount++
	return true
}

// Run executes events in (timestamp, scheduling order) until the next event
// lies at or beyond the horizon or the queue is empty. If the horizon cut the
// run short, the clock is left at the horizon.
func (sim *Simulator) Run() {
	for sim.Step() {
	}
	if len(sim.EventQueue) > 0 {
		sim.Clock = sim.Horizon
	}
	logrus.Debugf("[t %10.3f] Simulation ended after %d events, %d pending", sim.Clock, sim.EventCount, len(sim.EventQueue))
}
