package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in logical time units) and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ResumeEvent wakes a suspended process: a timed wait that elapsed or a
// resource slot that was granted. The process continues from resume.
type ResumeEvent struct {
	time   float64 // Simulation time at which the process wakes
	label  string  // What the process was waiting on, for logs
	resume func()
}

// Timestamp returns the scheduled wake time.
func (e *ResumeEvent) Timestamp() float64 {
	return e.time
}

// Execute continues the suspended process.
func (e *ResumeEvent) Execute(sim *Simulator) {
	logrus.Tracef("<< Resume %s at %.3f", e.label, e.time)
	e.resume()
}

// ArrivalEvent is one tick of the product generator: a new product enters
// the line and the next tick is scheduled while production is active.
type ArrivalEvent struct {
	time    float64
	tick    int64 // Generator tick index, starting at 0
	factory *Factory
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute runs one generator tick.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Arrival tick %d at %.3f", e.tick, e.time)
	e.factory.generate(e.tick)
}
