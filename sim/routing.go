package sim

import "github.com/sirupsen/logrus"

// RoutingProcess moves one product through the line. Its route is fixed at
// creation from the product's branch; pos is the next route position.
type RoutingProcess struct {
	Product *Product
	route   []int
	pos     int
	factory *Factory
}

func newRoutingProcess(f *Factory, p *Product) *RoutingProcess {
	return &RoutingProcess{
		Product: p,
		route:   p.Branch.Route(len(f.Stations)),
		factory: f,
	}
}

// Route returns the zero-based station indices this process visits.
func (rp *RoutingProcess) Route() []int {
	return rp.route
}

// Start sends the product to its first station.
func (rp *RoutingProcess) Start() {
	rp.factory.inFlight++
	rp.advance()
}

func (rp *RoutingProcess) advance() {
	f := rp.factory
	if rp.pos >= len(rp.route) {
		rp.Product.complete(f.sim.Clock, ProductProduced)
		f.finish(rp.Product)
		return
	}
	idx := rp.route[rp.pos]
	rp.Product.Visited = append(rp.Product.Visited, idx)
	f.Stations[idx].ProcessProduct(rp.Product, rp.stationDone)
}

// stationDone interprets a station's outcome. Halting wins over the defect
// result: a product that finishes a station after an accident is neither
// rejected nor produced.
func (rp *RoutingProcess) stationDone(ok bool) {
	f := rp.factory
	if !f.Active {
		rp.Product.Status = ProductHalted
		f.finish(rp.Product)
		return
	}
	if !ok {
		rp.Product.complete(f.sim.Clock, ProductRejected)
		f.RejectedProducts++
		logrus.Debugf("[t %10.3f] product %d rejected at station %d", f.sim.Clock, rp.Product.ID, rp.route[rp.pos]+1)
		f.finish(rp.Product)
		return
	}
	rp.pos++
	rp.advance()
}
