package batch

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "factorysim"

var (
	finalProductionDesc = prometheus.NewDesc(namespace+"_final_production",
		"Products that passed every station.", []string{"date"}, nil)
	rejectedProductsDesc = prometheus.NewDesc(namespace+"_rejected_products",
		"Products rejected as defective.", []string{"date"}, nil)
	faultyRateDesc = prometheus.NewDesc(namespace+"_faulty_product_rate",
		"Rejected products over products generated.", []string{"date"}, nil)
	supplierOccupancyDesc = prometheus.NewDesc(namespace+"_supplier_occupancy",
		"Total time resupply devices were held.", []string{"date"}, nil)
	accidentsDesc = prometheus.NewDesc(namespace+"_accidents",
		"Accidents that halted production.", []string{"date"}, nil)
	processingTimeDesc = prometheus.NewDesc(namespace+"_average_processing_time",
		"Mean time from creation to exit over products that exited.", []string{"date"}, nil)

	stationOccupancyDesc = prometheus.NewDesc(namespace+"_station_occupancy",
		"Cumulative processing time per station.", []string{"date", "station"}, nil)
	stationDowntimeDesc = prometheus.NewDesc(namespace+"_station_downtime",
		"Cumulative repair time per station.", []string{"date", "station"}, nil)
	stationProcessedDesc = prometheus.NewDesc(namespace+"_station_processed",
		"Products processed per station.", []string{"date", "station"}, nil)
	stationDefectsDesc = prometheus.NewDesc(namespace+"_station_defects",
		"Defective products per station.", []string{"date", "station"}, nil)
	stationResuppliesDesc = prometheus.NewDesc(namespace+"_station_resupplies",
		"Material resupplies per station.", []string{"date", "station"}, nil)
)

// ResultCollector exposes a batch of daily results as Prometheus gauges,
// one series per day (and per station for station metrics).
type ResultCollector struct {
	days []DailyResult
}

// NewResultCollector creates a collector over days.
func NewResultCollector(days []DailyResult) *ResultCollector {
	return &ResultCollector{days: days}
}

// Describe implements prometheus.Collector.
func (c *ResultCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		finalProductionDesc, rejectedProductsDesc, faultyRateDesc, supplierOccupancyDesc,
		accidentsDesc, processingTimeDesc, stationOccupancyDesc, stationDowntimeDesc,
		stationProcessedDesc, stationDefectsDesc, stationResuppliesDesc,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *ResultCollector) Collect(ch chan<- prometheus.Metric) {
	for _, day := range c.days {
		r := day.Results
		gauge := func(desc *prometheus.Desc, v float64, labels ...string) {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v, append([]string{day.Date}, labels...)...)
		}
		gauge(finalProductionDesc, float64(r.FinalProduction))
		gauge(rejectedProductsDesc, float64(r.RejectedProducts))
		gauge(faultyRateDesc, r.FaultyProductRate)
		gauge(supplierOccupancyDesc, r.SupplierOccupancy)
		gauge(accidentsDesc, float64(r.Accidents))
		gauge(processingTimeDesc, r.AverageProcessingTime)
		for _, id := range r.StationIDs() {
			station := strconv.Itoa(id)
			gauge(stationOccupancyDesc, r.StationOccupancy[id], station)
			gauge(stationDowntimeDesc, r.StationDowntime[id], station)
			gauge(stationProcessedDesc, float64(r.StationProcessed[id]), station)
			gauge(stationDefectsDesc, float64(r.StationDefects[id]), station)
			gauge(stationResuppliesDesc, float64(r.StationResupplies[id]), station)
		}
	}
}

// WriteMetricsTextfile writes days in the Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func WriteMetricsTextfile(path string, days []DailyResult) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewResultCollector(days)); err != nil {
		return fmt.Errorf("registering result collector: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
