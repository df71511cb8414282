package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dynamic-energy-costs/internal/model"
	"dynamic-energy-costs/internal/series"
	"dynamic-energy-costs/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Range      RangeConfig      `yaml:"range"`
	DataSource DataSourceConfig `yaml:"data_source"`
	Taxes      TaxesConfig      `yaml:"taxes"`

	// Optional: load battery parameters from a separate YAML file.
	// If both BatteryFile and Battery are provided, Battery overrides BatteryFile.
	BatteryFile string         `yaml:"battery_file"`
	Battery     BatteryConfig  `yaml:"battery"`
	Strategy    StrategyConfig `yaml:"strategy"`
	Gap         GapConfig      `yaml:"gap"`
}

type RangeConfig struct {
	StartDate string `yaml:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string `yaml:"end_date"`   // YYYY-MM-DD, inclusive
}

// Bounds returns the inclusive hour bounds of the configured date range:
// start at 00:00 and end at 23:00 local time.
func (r RangeConfig) Bounds() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, &model.ConfigError{Field: "range.start_date", Message: err.Error()}
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, &model.ConfigError{Field: "range.end_date", Message: err.Error()}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, &model.RangeError{Start: start, End: end}
	}
	return start, end.Add(23 * time.Hour), nil
}

type DataSourceConfig struct {
	Type string `yaml:"type"` // "export_json" or "victoriametrics"

	ExportJSONPath     string `yaml:"export_json_path"`
	VictoriaMetricsURL string `yaml:"victoriametrics_url"`

	ConsumptionSensors []string `yaml:"consumption_sensors"`
	ProductionSensors  []string `yaml:"production_sensors"`

	PriceAPIURL   string `yaml:"price_api_url"`
	PriceAPIKey   string `yaml:"price_api_key"`
	PriceCacheDir string `yaml:"price_cache_dir"`
}

type TaxesConfig struct {
	EnergyTax                     float64 `yaml:"energy_tax"`
	StorageCosts                  float64 `yaml:"storage_costs"`
	StorageCostsProduction        float64 `yaml:"storage_costs_production"`
	VATPercent                    float64 `yaml:"vat_percent"`
	FixedSupplyCosts              float64 `yaml:"fixed_supply_costs"`
	TransportCosts                float64 `yaml:"transport_costs"`
	EnergyTaxCompensation         float64 `yaml:"energy_tax_compensation"`
	StopProductionOnNegativePrice bool    `yaml:"stop_production_on_negative_price"`
}

func (t TaxesConfig) ToModel() model.TaxConfig {
	return model.TaxConfig{
		EnergyTax:                     t.EnergyTax,
		StorageCostsConsumption:       t.StorageCosts,
		StorageCostsProduction:        t.StorageCostsProduction,
		VATPercent:                    t.VATPercent,
		FixedSupplyCostsPerMonth:      t.FixedSupplyCosts,
		TransportCostsPerMonth:        t.TransportCosts,
		EnergyTaxCompensationPerMonth: t.EnergyTaxCompensation,
		StopProductionOnNegativePrice: t.StopProductionOnNegativePrice,
	}
}

type BatteryConfig struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`

	CapacityKWh         float64 `yaml:"capacity_kwh"`
	MaxChargeRateKWh    float64 `yaml:"max_charge_rate_kwh"`
	MaxDischargeRateKWh float64 `yaml:"max_discharge_rate_kwh"`
	RoundTripEfficiency float64 `yaml:"round_trip_efficiency"`
	MinSOC              float64 `yaml:"min_soc"`
	MaxSOC              float64 `yaml:"max_soc"`
	InitialSOCKWh       float64 `yaml:"initial_soc_kwh"` // 0 = start at min_soc
}

func (b BatteryConfig) ToParams() model.BatteryParams {
	return model.BatteryParams{
		CapacityKWh:         b.CapacityKWh,
		MaxChargeRateKWh:    b.MaxChargeRateKWh,
		MaxDischargeRateKWh: b.MaxDischargeRateKWh,
		RoundTripEfficiency: b.RoundTripEfficiency,
		MinSOC:              b.MinSOC,
		MaxSOC:              b.MaxSOC,
	}
}

// InitialSOC maps the config value to the model convention: zero means
// "start at the minimum bound".
func (b BatteryConfig) InitialSOC() float64 {
	if b.InitialSOCKWh == 0 {
		return -1
	}
	return b.InitialSOCKWh
}

type StrategyConfig struct {
	Name               string  `yaml:"name"`
	PriceThresholdLow  float64 `yaml:"price_threshold_low"`  // €/kWh
	PriceThresholdHigh float64 `yaml:"price_threshold_high"` // €/kWh
}

func (s StrategyConfig) Params() strategy.Params {
	return strategy.Params{
		PriceThresholdLow:  s.PriceThresholdLow,
		PriceThresholdHigh: s.PriceThresholdHigh,
	}
}

type GapConfig struct {
	Policy      string `yaml:"policy"` // "zero_fill" (default) or "fail"
	MaxGapHours int    `yaml:"max_gap_hours"`
}

func (g GapConfig) Options() series.Options {
	return series.Options{
		Policy:      series.GapPolicy(g.Policy),
		MaxGapHours: g.MaxGapHours,
	}
}

// Load reads, merges, defaults and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If battery_file is set, load it and merge in any explicit overrides.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer paths relative to the config file directory; fall back
			// to the path as given.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := loadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Battery.RoundTripEfficiency == 0 {
		c.Battery.RoundTripEfficiency = 0.96
	}
	if c.Battery.MaxSOC == 0 {
		c.Battery.MaxSOC = 1.0
	}
	if c.Strategy.Name == "" {
		c.Strategy.Name = "self_sufficiency"
	}
	if c.Strategy.PriceThresholdLow == 0 && c.Strategy.PriceThresholdHigh == 0 {
		c.Strategy.PriceThresholdLow = 0.10
		c.Strategy.PriceThresholdHigh = 0.25
	}
	if c.Gap.Policy == "" {
		c.Gap.Policy = string(series.GapZeroFill)
	}
	if c.Gap.MaxGapHours == 0 {
		c.Gap.MaxGapHours = series.DefaultMaxGapHours
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return &model.ConfigError{Message: "config is nil"}
	}
	if _, _, err := c.Range.Bounds(); err != nil {
		return err
	}
	if err := c.Taxes.ToModel().Validate(); err != nil {
		return err
	}
	switch c.Gap.Policy {
	case string(series.GapZeroFill), string(series.GapFail):
	default:
		return &model.ConfigError{Field: "gap.policy", Message: fmt.Sprintf("unsupported policy %q", c.Gap.Policy)}
	}
	if c.Battery.Enabled {
		// Validate battery params by constructing a model.Battery.
		if _, err := model.NewBattery(c.Battery.ToParams(), c.Battery.InitialSOC()); err != nil {
			return err
		}
		if _, err := strategy.New(c.Strategy.Name, c.Strategy.Params()); err != nil {
			return err
		}
	}
	return nil
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base. Used when a
// battery file provides the baseline and the config or an API request
// overrides individual values.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.Enabled {
		out.Enabled = true
	}
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.MaxChargeRateKWh != 0 {
		out.MaxChargeRateKWh = override.MaxChargeRateKWh
	}
	if override.MaxDischargeRateKWh != 0 {
		out.MaxDischargeRateKWh = override.MaxDischargeRateKWh
	}
	if override.RoundTripEfficiency != 0 {
		out.RoundTripEfficiency = override.RoundTripEfficiency
	}
	if override.MinSOC != 0 {
		out.MinSOC = override.MinSOC
	}
	if override.MaxSOC != 0 {
		out.MaxSOC = override.MaxSOC
	}
	if override.InitialSOCKWh != 0 {
		out.InitialSOCKWh = override.InitialSOCKWh
	}
	return out
}
