package sim

import "fmt"

// ProductStatus tracks where a product is in its lifecycle.
type ProductStatus string

const (
	ProductInProgress ProductStatus = "in_progress"
	ProductProduced   ProductStatus = "produced"
	ProductRejected   ProductStatus = "rejected"
	// ProductHalted marks a product whose routing stopped because production was halted.
	ProductHalted ProductStatus = "halted"
)

// Branch selects which of the two parallel stations a product visits.
type Branch int

const (
	BranchStation3 Branch = iota
	BranchStation4
)

// branchPosition is the route position of the parallel pair; branchStations
// are the zero-based indices of the two alternatives.
const branchPosition = 3

var branchStations = [2]int{3, 4}

// drawBranch makes the single per-product branch choice.
func drawBranch(rng RandomSource) Branch {
	if rng.Float64() < 0.5 {
		return BranchStation3
	}
	return BranchStation4
}

// Station returns the zero-based station index visited on this branch.
func (b Branch) Station() int { return branchStations[b] }

// Skipped returns the zero-based station index not visited on this branch.
func (b Branch) Skipped() int { return branchStations[1-b] }

func (b Branch) String() string {
	return fmt.Sprintf("branch(station %d)", b.Station())
}

// Route returns the station indices a product on this branch visits on a line
// of n stations. With the parallel pair present the route is 0,1,2,<3|4>,5,...
// and exactly one of the pair is visited; shorter lines are sequential.
func (b Branch) Route(n int) []int {
	if n <= branchStations[1] {
		route := make([]int, n)
		for i := range route {
			route[i] = i
		}
		return route
	}
	route := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		switch i {
		case branchPosition:
			route = append(route, b.Station())
		case branchPosition + 1:
			// the pair occupies a single route position
		default:
			route = append(route, i)
		}
	}
	return route
}

// Product is a unit of work flowing through the line.
type Product struct {
	ID          int
	CreatedAt   float64
	CompletedAt float64
	// Completed is set once CompletedAt holds the exit time (produced or rejected).
	Completed bool
	Status    ProductStatus
	Branch    Branch
	// Visited lists the zero-based station indices the product entered, in order.
	Visited []int
}

// NewProduct creates a product stamped with its creation time.
func NewProduct(id int, createdAt float64, branch Branch) *Product {
	return &Product{
		ID:        id,
		CreatedAt: createdAt,
		Status:    ProductInProgress,
		Branch:    branch,
	}
}

// complete stamps the exit time. It is written exactly once.
func (p *Product) complete(now float64, status ProductStatus) {
	if p.Completed {
		panic(fmt.Sprintf("product %d completed twice", p.ID))
	}
	p.Completed = true
	p.CompletedAt = now
	p.Status = status
}

// ProcessingTime returns CompletedAt - CreatedAt, or 0 if the product has not exited.
func (p *Product) ProcessingTime() float64 {
	if !p.Completed {
		return 0
	}
	return p.CompletedAt - p.CreatedAt
}

func (p *Product) String() string {
	return fmt.Sprintf("Product{ID: %d, Status: %s, %s}", p.ID, p.Status, p.Branch)
}
