// Aggregates end-of-run statistics: throughput, rejections, occupancy,
// downtime, resupplies and processing latency.

package sim

import (
	"fmt"
	"io"
	"sort"
)

// bottleneckFactor is how far above the mean work time a station's occupancy
// must be for it to count towards the bottleneck delay.
const bottleneckFactor = 1.2

// Result is the record of one production run. Per-station maps are keyed by
// station ID (1-based).
type Result struct {
	TotalProducts          int     `json:"total_products"`
	FinalProduction        int     `json:"final_production"`
	RejectedProducts       int     `json:"rejected_products"`
	Accidents              int     `json:"accidents"`
	Halted                 bool    `json:"halted"`
	EndTime                float64 `json:"end_time"`
	TotalFixTime           float64 `json:"total_fix_time"`
	AverageBottleneckDelay float64 `json:"average_bottleneck_delay"`
	SupplierOccupancy      float64 `json:"supplier_occupancy"`
	AverageProcessingTime  float64 `json:"average_processing_time"`
	FaultyProductRate      float64 `json:"faulty_product_rate"`

	StationOccupancy  map[int]float64 `json:"station_occupancy"`
	StationDowntime   map[int]float64 `json:"station_downtime"`
	StationProcessed  map[int]int     `json:"station_processed"`
	StationDefects    map[int]int     `json:"station_defects"`
	StationResupplies map[int]int     `json:"station_resupplies"`
	AverageFixTime    map[int]float64 `json:"average_fix_time"`
}

// Results aggregates the factory's current state into a Result.
func (f *Factory) Results() *Result {
	r := &Result{
		TotalProducts:     len(f.Products),
		RejectedProducts:  f.RejectedProducts,
		FinalProduction:   len(f.Products) - f.RejectedProducts,
		Accidents:         f.Accidents,
		Halted:            !f.Active,
		EndTime:           f.sim.Clock,
		StationOccupancy:  make(map[int]float64, len(f.Stations)),
		StationDowntime:   make(map[int]float64, len(f.Stations)),
		StationProcessed:  make(map[int]int, len(f.Stations)),
		StationDefects:    make(map[int]int, len(f.Stations)),
		StationResupplies: make(map[int]int, len(f.Stations)),
		AverageFixTime:    make(map[int]float64, len(f.Stations)),
	}

	bottleneck := 0.0
	for _, s := range f.Stations {
		r.TotalFixTime += s.TotalFixTime
		if s.Occupancy > s.WorkTimeMean*bottleneckFactor {
			bottleneck += s.Occupancy - s.WorkTimeMean
		}
		r.StationOccupancy[s.ID] = s.Occupancy
		r.StationDowntime[s.ID] = s.Downtime
		r.StationProcessed[s.ID] = s.ProcessedCount
		r.StationDefects[s.ID] = s.DefectCount
		r.StationResupplies[s.ID] = s.ResupplyCount
		r.AverageFixTime[s.ID] = s.TotalFixTime / float64(nonZero(s.DefectCount))
	}
	r.AverageBottleneckDelay = bottleneck / float64(nonZero(len(f.Stations)))

	for _, p := range f.pools {
		r.SupplierOccupancy += p.BusyTime
	}

	completed := 0
	sum := 0.0
	for _, p := range f.Products {
		if p.Completed {
			completed++
			sum += p.ProcessingTime()
		}
	}
	if completed > 0 {
		r.AverageProcessingTime = sum / float64(completed)
	}
	r.FaultyProductRate = float64(r.RejectedProducts) / float64(nonZero(r.TotalProducts))
	return r
}

// nonZero substitutes 1 for a zero denominator.
func nonZero(n int) int {
	if n == 0 {
		return 1
	}
	return n
}

// StationIDs returns the station IDs present in the result, ascending.
func (r *Result) StationIDs() []int {
	ids := make([]int, 0, len(r.StationOccupancy))
	for id := range r.StationOccupancy {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Print writes a human-readable summary of the run.
func (r *Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Production Results ===")
	fmt.Fprintf(w, "Products generated     : %d\n", r.TotalProducts)
	fmt.Fprintf(w, "Final production       : %d\n", r.FinalProduction)
	fmt.Fprintf(w, "Rejected products      : %d\n", r.RejectedProducts)
	fmt.Fprintf(w, "Faulty product rate    : %.4f\n", r.FaultyProductRate)
	fmt.Fprintf(w, "Accidents              : %d\n", r.Accidents)
	fmt.Fprintf(w, "End time               : %.2f\n", r.EndTime)
	fmt.Fprintf(w, "Total fix time         : %.2f\n", r.TotalFixTime)
	fmt.Fprintf(w, "Avg bottleneck delay   : %.2f\n", r.AverageBottleneckDelay)
	fmt.Fprintf(w, "Supplier occupancy     : %.2f\n", r.SupplierOccupancy)
	fmt.Fprintf(w, "Avg processing time    : %.2f\n", r.AverageProcessingTime)
	fmt.Fprintln(w, "Station  occupancy  downtime  processed  defects  resupplies  avg-fix")
	for _, id := range r.StationIDs() {
		fmt.Fprintf(w, "%7d  %9.2f  %8.2f  %9d  %7d  %10d  %7.2f\n", id,
			r.StationOccupancy[id], r.StationDowntime[id], r.StationProcessed[id],
			r.StationDefects[id], r.StationResupplies[id], r.AverageFixTime[id])
	}
}
