// Package trace provides per-product trace recording for production-line analysis.
// It has no dependencies on sim/ and stores pure data types.
package trace

// BranchRecord captures the parallel-branch choice made when a product is created.
type BranchRecord struct {
	ProductID int
	Clock     float64
	Station   int // 1-based ID of the chosen station of the parallel pair
}

// ExitRecord captures how and where a product left the line.
type ExitRecord struct {
	ProductID   int
	CreatedAt   float64
	Clock       float64
	Status      string // produced, rejected or halted
	LastStation int    // 1-based ID of the last station visited (0 if none)
}
