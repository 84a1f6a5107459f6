package sim

import "fmt"

// ResourcePool is a counting semaphore over a fixed number of identical
// devices. Requests are granted strictly in arrival order; there is no
// priority and no preemption.
type ResourcePool struct {
	Name     string
	Capacity int

	// BusyTime is the total time slots were held, summed over all grants.
	BusyTime float64
	// Grants is the number of requests that obtained a slot.
	Grants int
	// PeakInUse is the highest number of slots held at the same instant.
	PeakInUse int

	sim     *Simulator
	inUse   int
	waiters []func(release func())
}

// NewResourcePool creates a pool of capacity slots driven by sim.
func NewResourcePool(sim *Simulator, name string, capacity int) *ResourcePool {
	if capacity < 1 {
		panic(fmt.Sprintf("resource pool %s: capacity must be >= 1, got %d", name, capacity))
	}
	return &ResourcePool{
		Name:     name,
		Capacity: capacity,
		sim:      sim,
	}
}

// InUse returns the number of slots currently held.
func (p *ResourcePool) InUse() int { return p.inUse }

// Queued returns the number of requests waiting for a slot.
func (p *ResourcePool) Queued() int { return len(p.waiters) }

// Acquire queues a request for one slot. granted runs through the event queue
// once the slot is held and receives the func that gives it back. Calling
// release more than once is a no-op.
func (p *ResourcePool) Acquire(granted func(release func())) {
	if p.inUse < p.Capacity {
		p.grant(granted)
		return
	}
	p.waiters = append(p.waiters, granted)
}

// Hold is the scoped form of Acquire: once a slot is granted it draws the
// hold duration, waits for it, runs done and releases the slot.
func (p *ResourcePool) Hold(label string, hold func() float64, done func()) {
	p.Acquire(func(release func()) {
		p.sim.Timeout(hold(), label, func() {
			defer release()
			done()
		})
	})
}

func (p *ResourcePool) grant(granted func(release func())) {
	p.inUse++
	p.Grants++
	p.PeakInUse = max(p.PeakInUse, p.inUse)

	var grantedAt float64
	released := false
	release := func() {
		if released {
			return
		}
		released = true
		p.BusyTime += p.sim.Clock - grantedAt
		p.inUse--
		if len(p.waiters) > 0 {
			next := p.waiters[0]
			p.waiters = p.waiters[1:]
			p.grant(next)
		}
	}
	p.sim.Defer(p.Name, func() {
		grantedAt = p.sim.Clock
		granted(release)
	})
}
