package batch

import (
	"gonum.org/v1/gonum/stat"
)

// Stat is the mean and sample standard deviation of one statistic across days.
type Stat struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Summary describes a batch as a whole.
type Summary struct {
	Days                  int  `json:"days"`
	HaltedDays            int  `json:"halted_days"`
	FinalProduction       Stat `json:"final_production"`
	RejectedProducts      Stat `json:"rejected_products"`
	FaultyProductRate     Stat `json:"faulty_product_rate"`
	SupplierOccupancy     Stat `json:"supplier_occupancy"`
	AverageProcessingTime Stat `json:"average_processing_time"`
	// ProductionTrend is the least-squares slope of final production per day.
	ProductionTrend float64 `json:"production_trend"`
}

// Summarize aggregates the daily records. Fewer than two days give a zero
// standard deviation and trend.
func Summarize(days []DailyResult) Summary {
	s := Summary{Days: len(days)}
	if len(days) == 0 {
		return s
	}
	n := len(days)
	x := make([]float64, n)
	final := make([]float64, n)
	rejected := make([]float64, n)
	faulty := make([]float64, n)
	supplier := make([]float64, n)
	processing := make([]float64, n)
	for i, d := range days {
		r := d.Results
		if r.Halted {
			s.HaltedDays++
		}
		x[i] = float64(i)
		final[i] = float64(r.FinalProduction)
		rejected[i] = float64(r.RejectedProducts)
		faulty[i] = r.FaultyProductRate
		supplier[i] = r.SupplierOccupancy
		processing[i] = r.AverageProcessingTime
	}
	s.FinalProduction = describe(final)
	s.RejectedProducts = describe(rejected)
	s.FaultyProductRate = describe(faulty)
	s.SupplierOccupancy = describe(supplier)
	s.AverageProcessingTime = describe(processing)
	if n > 1 {
		_, s.ProductionTrend = stat.LinearRegression(x, final, nil, false)
	}
	return s
}

func describe(xs []float64) Stat {
	if len(xs) < 2 {
		return Stat{Mean: stat.Mean(xs, nil)}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Stat{Mean: mean, StdDev: std}
}
