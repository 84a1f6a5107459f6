// Package sim provides the discrete-event simulation engine for a production line.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - simulator.go: the event loop, logical clock and horizon
//   - event.go: events that drive the simulation (generator ticks, process wake-ups)
//   - station.go: the per-visit station state machine (material, repair, work, defect)
//   - factory.go: the product generator, accident check and production-active flag
//
// # Processes
//
// There is exactly one goroutine. A process (a product's RoutingProcess, a
// station visit, a resupply) is a continuation: it runs until it needs to wait,
// schedules a ResumeEvent for the wait, and returns. Waits are either timed
// (Simulator.Timeout) or on a resource slot (ResourcePool.Acquire). Events at
// the same timestamp run in the order they were scheduled, so a run is fully
// determined by its Config and its RandomSource seed.
//
// # Line topology
//
// Products enter every Config.ArrivalInterval, visit stations 0, 1, 2, then
// exactly one of stations 3 or 4 (chosen per product at creation), then 5.
// A defective result at any station rejects the product on the spot.
//
// # Sub-packages
//
//   - sim/batch: one simulation per calendar day, exported as JSON and Prometheus metrics
//   - sim/trace: optional per-product records (branch choice, exit), see WithTrace
package sim
