package models

// HourInput is one aligned hour of input data supplied inline.
type HourInput struct {
	Hour           string  `json:"hour" binding:"required"` // "2006-01-02T15"
	ConsumptionKWh float64 `json:"consumption_kwh"`
	ProductionKWh  float64 `json:"production_kwh"`
	RawPrice       float64 `json:"raw_price"`
}

// TaxesInput mirrors the tax section of the YAML config.
type TaxesInput struct {
	EnergyTax                     float64 `json:"energy_tax"`
	StorageCosts                  float64 `json:"storage_costs"`
	StorageCostsProduction        float64 `json:"storage_costs_production"`
	VATPercent                    float64 `json:"vat_percent"`
	FixedSupplyCosts              float64 `json:"fixed_supply_costs"`
	TransportCosts                float64 `json:"transport_costs"`
	EnergyTaxCompensation         float64 `json:"energy_tax_compensation"`
	StopProductionOnNegativePrice bool    `json:"stop_production_on_negative_price"`
}

// BatteryInput defines battery parameters for a simulated run.
type BatteryInput struct {
	CapacityKWh         float64 `json:"capacity_kwh"`
	MaxChargeRateKWh    float64 `json:"max_charge_rate_kwh"`
	MaxDischargeRateKWh float64 `json:"max_discharge_rate_kwh"`
	RoundTripEfficiency float64 `json:"round_trip_efficiency"`
	MinSOC              float64 `json:"min_soc"`
	MaxSOC              float64 `json:"max_soc"`
	InitialSOCKWh       float64 `json:"initial_soc_kwh,omitempty"` // 0 = start at min_soc
}

// StrategyInput selects and parameterizes a charge strategy.
type StrategyInput struct {
	Name               string  `json:"name" binding:"required"`
	PriceThresholdLow  float64 `json:"price_threshold_low,omitempty"`
	PriceThresholdHigh float64 `json:"price_threshold_high,omitempty"`
}

// SimulateOptions contains optional simulation parameters.
type SimulateOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// SimulateRequest is the body of POST /api/v1/simulate. Battery and strategy
// are optional but must be provided together; without them the response
// carries plain (battery-free) cost figures.
type SimulateRequest struct {
	Hours    []HourInput     `json:"hours" binding:"required"`
	Taxes    TaxesInput      `json:"taxes"`
	Battery  *BatteryInput   `json:"battery,omitempty"`
	Strategy *StrategyInput  `json:"strategy,omitempty"`
	Options  SimulateOptions `json:"options,omitempty"`
}

// CompareVariant is one strategy variation to run in a comparison.
type CompareVariant struct {
	Name     string        `json:"name" binding:"required"`
	Strategy StrategyInput `json:"strategy" binding:"required"`
}

// CompareRequest is the body of POST /api/v1/simulate/compare. An empty
// variant list compares every supported strategy with its defaults.
type CompareRequest struct {
	Hours    []HourInput      `json:"hours" binding:"required"`
	Taxes    TaxesInput       `json:"taxes"`
	Battery  BatteryInput     `json:"battery" binding:"required"`
	Variants []CompareVariant `json:"variants,omitempty"`
}
