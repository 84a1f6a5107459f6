package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factory-sim/factory-sim/sim"
)

func TestParseLineConfig_OverlaysDefaults(t *testing.T) {
	// GIVEN a file that only changes the horizon and the defect rate
	data := []byte("horizon: 250\ndefect_rate: 0.1\n")

	cfg, err := parseLineConfig(data)

	// THEN the named fields change and everything else keeps its default
	require.NoError(t, err)
	want := sim.DefaultConfig()
	want.Horizon = 250
	want.DefectRate = 0.1
	assert.Equal(t, want, cfg)
}

func TestParseLineConfig_ReplacesFailureRates(t *testing.T) {
	data := []byte("station_count: 2\nfailure_rates: [0.1, 0.2]\n")

	cfg, err := parseLineConfig(data)

	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, cfg.FailureRates)
}

func TestParseLineConfig_UnknownField_ReturnsError(t *testing.T) {
	// GIVEN a typo in a field name
	_, err := parseLineConfig([]byte("defect_rat: 0.1\n"))

	// THEN strict parsing rejects it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defect_rat")
}

func TestParseLineConfig_InvalidValues_ReturnsError(t *testing.T) {
	// GIVEN fewer failure rates than stations
	_, err := parseLineConfig([]byte("failure_rates: [0.1]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failure rates")
}

func TestParseLineConfig_EmptyDocument_Defaults(t *testing.T) {
	cfg, err := parseLineConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestLoadLineConfig_ReferenceFileMatchesDefaults(t *testing.T) {
	path := "../line.yaml"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skip("line.yaml not found, skipping")
	}

	cfg, err := LoadLineConfig(path)

	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestLoadLineConfig_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadLineConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
