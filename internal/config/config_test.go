package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynamic-energy-costs/internal/model"
	"dynamic-energy-costs/internal/series"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
range:
  start_date: "2024-01-01"
  end_date: "2024-01-31"
data_source:
  type: export_json
  export_json_path: export.json
taxes:
  energy_tax: 0.1088
  storage_costs: 0.02
  storage_costs_production: -0.02
  vat_percent: 21
`

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", minimalConfig)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.96, c.Battery.RoundTripEfficiency)
	assert.Equal(t, 1.0, c.Battery.MaxSOC)
	assert.Equal(t, "self_sufficiency", c.Strategy.Name)
	assert.Equal(t, 0.10, c.Strategy.PriceThresholdLow)
	assert.Equal(t, 0.25, c.Strategy.PriceThresholdHigh)
	assert.Equal(t, string(series.GapZeroFill), c.Gap.Policy)
	assert.Equal(t, series.DefaultMaxGapHours, c.Gap.MaxGapHours)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRangeBounds(t *testing.T) {
	r := RangeConfig{StartDate: "2024-01-01", EndDate: "2024-01-02"}
	start, end, err := r.Bounds()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC), end)
}

func TestRangeBounds_InvalidDate(t *testing.T) {
	r := RangeConfig{StartDate: "01-01-2024", EndDate: "2024-01-02"}
	_, _, err := r.Bounds()
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestRangeBounds_Inverted(t *testing.T) {
	r := RangeConfig{StartDate: "2024-02-01", EndDate: "2024-01-01"}
	_, _, err := r.Bounds()
	var rangeErr *model.RangeError
	require.ErrorAs(t, err, &rangeErr)
}

func TestLoad_RejectsInvalidBattery(t *testing.T) {
	cfg := minimalConfig + `
battery:
  enabled: true
  capacity_kwh: -5
  max_charge_rate_kwh: 2
  max_discharge_rate_kwh: 2
  min_soc: 0.1
  max_soc: 0.9
`
	path := writeFile(t, t.TempDir(), "config.yaml", cfg)

	_, err := Load(path)
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "capacity_kwh", cfgErr.Field)
}

func TestLoad_RejectsUnknownGapPolicy(t *testing.T) {
	cfg := minimalConfig + `
gap:
  policy: interpolate
`
	path := writeFile(t, t.TempDir(), "config.yaml", cfg)

	_, err := Load(path)
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoad_BatteryFileOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "battery.yaml", `
battery:
  name: Garage pack
  capacity_kwh: 10
  max_charge_rate_kwh: 2
  max_discharge_rate_kwh: 2
  round_trip_efficiency: 0.96
  min_soc: 0.1
  max_soc: 0.9
`)
	cfg := minimalConfig + `
battery_file: battery.yaml
battery:
  enabled: true
  capacity_kwh: 15
`
	path := writeFile(t, dir, "config.yaml", cfg)

	c, err := Load(path)
	require.NoError(t, err)
	// Inline values override the file, everything else flows through.
	assert.True(t, c.Battery.Enabled)
	assert.Equal(t, 15.0, c.Battery.CapacityKWh)
	assert.Equal(t, "Garage pack", c.Battery.Name)
	assert.Equal(t, 0.9, c.Battery.MaxSOC)
}

func TestMergeBattery(t *testing.T) {
	base := BatteryConfig{
		Name:                "Base",
		CapacityKWh:         10,
		MaxChargeRateKWh:    2,
		MaxDischargeRateKWh: 2,
		RoundTripEfficiency: 0.96,
		MinSOC:              0.1,
		MaxSOC:              0.9,
	}
	merged := MergeBattery(base, BatteryConfig{Enabled: true, MaxChargeRateKWh: 5})

	assert.True(t, merged.Enabled)
	assert.Equal(t, 5.0, merged.MaxChargeRateKWh)
	assert.Equal(t, 10.0, merged.CapacityKWh)
	assert.Equal(t, "Base", merged.Name)
}

func TestBatteryConfig_InitialSOC(t *testing.T) {
	assert.Equal(t, -1.0, BatteryConfig{}.InitialSOC())
	assert.Equal(t, 4.2, BatteryConfig{InitialSOCKWh: 4.2}.InitialSOC())
}
