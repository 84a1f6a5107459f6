package batch

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factory-sim/factory-sim/sim"
)

func shortConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Horizon = 60
	return cfg
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "2025-03-15", opts.Start.Format(DateLayout))
	assert.Equal(t, 40, opts.Days)
}

func TestRun_DatesAreConsecutiveAcrossMonths(t *testing.T) {
	// GIVEN a batch starting two days before the end of March
	opts := Options{Start: time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC), Days: 4, Seed: 1}

	days, err := Run(shortConfig(), opts)

	// THEN the dates roll over into April in order
	require.NoError(t, err)
	var dates []string
	for _, d := range days {
		dates = append(dates, d.Date)
		require.NotNil(t, d.Results)
	}
	assert.Equal(t, []string{"2025-03-30", "2025-03-31", "2025-04-01", "2025-04-02"}, dates)
}

func TestRun_SameSeed_SameBatch(t *testing.T) {
	opts := DefaultOptions()
	opts.Days = 3

	a, err := Run(shortConfig(), opts)
	require.NoError(t, err)
	b, err := Run(shortConfig(), opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRun_DaysUseDistinctStreams(t *testing.T) {
	opts := DefaultOptions()
	opts.Days = 2

	days, err := Run(shortConfig(), opts)

	require.NoError(t, err)
	assert.NotEqual(t, days[0].Results.StationOccupancy, days[1].Results.StationOccupancy)
}

func TestRun_ZeroDays_Empty(t *testing.T) {
	opts := DefaultOptions()
	opts.Days = 0
	days, err := Run(shortConfig(), opts)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestRun_NegativeDays_ReturnsError(t *testing.T) {
	opts := DefaultOptions()
	opts.Days = -1
	_, err := Run(shortConfig(), opts)
	assert.Error(t, err)
}

func TestRun_InvalidConfig_NamesTheDay(t *testing.T) {
	cfg := shortConfig()
	cfg.DefectRate = 2

	_, err := Run(cfg, DefaultOptions())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "day 2025-03-15")
}

func TestWriteJSON_ListOfDatedRecords(t *testing.T) {
	opts := DefaultOptions()
	opts.Days = 2
	days, err := Run(shortConfig(), opts)
	require.NoError(t, err)
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(&buf, days))

	// THEN the document is a list of {date, results} objects with 3-space indent
	assert.True(t, strings.HasPrefix(buf.String(), "[\n   {\n      \"date\": \"2025-03-15\""))
	var decoded []struct {
		Date    string                 `json:"date"`
		Results map[string]interface{} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2025-03-16", decoded[1].Date)
	assert.Contains(t, decoded[0].Results, "final_production")
	assert.Contains(t, decoded[0].Results, "station_occupancy")
}
