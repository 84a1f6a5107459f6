package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handBuiltFactory returns a factory that never ran, for setting station
// statistics directly.
func handBuiltFactory(t *testing.T) *Factory {
	t.Helper()
	return newTestFactory(t, testConfig(0), 1)
}

func TestResults_BottleneckDelay_DividesByStationCount(t *testing.T) {
	// GIVEN two stations above 1.2 x work time mean (4.8) and four below
	f := handBuiltFactory(t)
	f.Stations[0].Occupancy = 10
	f.Stations[3].Occupancy = 6.8
	f.Stations[1].Occupancy = 4.8 // at the threshold, excluded
	f.Stations[2].Occupancy = 1

	res := f.Results()

	// THEN ((10-4) + (6.8-4)) / 6
	assert.InDelta(t, (6.0+2.8)/6.0, res.AverageBottleneckDelay, 1e-9)
}

func TestResults_AverageFixTime_GuardsZeroDefects(t *testing.T) {
	f := handBuiltFactory(t)
	f.Stations[0].TotalFixTime = 9
	f.Stations[0].DefectCount = 3
	f.Stations[1].TotalFixTime = 5

	res := f.Results()

	assert.InDelta(t, 3.0, res.AverageFixTime[1], 1e-9)
	// zero defects uses divisor 1
	assert.InDelta(t, 5.0, res.AverageFixTime[2], 1e-9)
	assert.Zero(t, res.AverageFixTime[3])
	assert.InDelta(t, 14.0, res.TotalFixTime, 1e-9)
}

func TestResults_ProductCounters(t *testing.T) {
	// GIVEN four products: produced, rejected, halted and still in progress
	f := handBuiltFactory(t)
	produced := NewProduct(0, 0, BranchStation3)
	produced.complete(20, ProductProduced)
	rejected := NewProduct(1, 1, BranchStation4)
	rejected.complete(7, ProductRejected)
	halted := NewProduct(2, 2, BranchStation3)
	halted.Status = ProductHalted
	f.Products = []*Product{produced, rejected, halted, NewProduct(3, 3, BranchStation4)}
	f.RejectedProducts = 1

	res := f.Results()

	assert.Equal(t, 4, res.TotalProducts)
	assert.Equal(t, 3, res.FinalProduction)
	assert.Equal(t, 0.25, res.FaultyProductRate)
	// THEN the processing time averages over completed products only: (20 + 6) / 2
	assert.InDelta(t, 13.0, res.AverageProcessingTime, 1e-9)
}

func TestResults_SupplierOccupancy_SumsPools(t *testing.T) {
	f := handBuiltFactory(t)
	pools := f.SupplyPools()
	require.Len(t, pools, 6)
	pools[0].BusyTime = 2.5
	pools[4].BusyTime = 1.5

	assert.InDelta(t, 4.0, f.Results().SupplierOccupancy, 1e-9)
}

func TestResults_PerStationMaps_KeyedByStationID(t *testing.T) {
	f := handBuiltFactory(t)
	for _, s := range f.Stations {
		s.ProcessedCount = s.ID * 10
		s.ResupplyCount = s.ID
		s.Downtime = float64(s.ID)
	}

	res := f.Results()

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, res.StationIDs())
	assert.Equal(t, 60, res.StationProcessed[6])
	assert.Equal(t, 3, res.StationResupplies[3])
	assert.Equal(t, 2.0, res.StationDowntime[2])
}

func TestResult_Print(t *testing.T) {
	f := handBuiltFactory(t)
	f.Stations[0].ProcessedCount = 12
	var buf bytes.Buffer

	f.Results().Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "=== Production Results ===")
	assert.Contains(t, out, "Faulty product rate    : 0.0000")
	assert.Contains(t, out, "Station  occupancy")
	assert.Equal(t, 12+6, bytes.Count(buf.Bytes(), []byte("\n")))
}
