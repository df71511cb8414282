package models

import (
	"dynamic-energy-costs/internal/analysis"
	"dynamic-energy-costs/internal/sim"
)

// ErrorDetail provides structured error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// TotalsOut carries the whole-range money and energy figures.
type TotalsOut struct {
	Costs                 float64 `json:"costs"`
	Income                float64 `json:"income"`
	BatteryAdjustedCosts  float64 `json:"battery_adjusted_costs"`
	BatteryAdjustedIncome float64 `json:"battery_adjusted_income"`
	NetCosts              float64 `json:"net_costs"`
	NetAdjustedCosts      float64 `json:"net_adjusted_costs"`
	ConsumptionKWh        float64 `json:"consumption_kwh"`
	ProductionKWh         float64 `json:"production_kwh"`
	ChargedKWh            float64 `json:"charged_kwh"`
	DischargedKWh         float64 `json:"discharged_kwh"`
}

// MonthOut is one month of the breakdown.
type MonthOut struct {
	Month                 string  `json:"month"`
	Costs                 float64 `json:"costs"`
	Income                float64 `json:"income"`
	ConsumptionKWh        float64 `json:"consumption_kwh"`
	ProductionKWh         float64 `json:"production_kwh"`
	BatteryAdjustedCosts  float64 `json:"battery_adjusted_costs"`
	BatteryAdjustedIncome float64 `json:"battery_adjusted_income"`
	FixedSupplyCosts      float64 `json:"fixed_supply_costs"`
	TransportCosts        float64 `json:"transport_costs"`
	EnergyTaxCompensation float64 `json:"energy_tax_compensation"`
	NetCosts              float64 `json:"net_costs"`
	NetAdjustedCosts      float64 `json:"net_adjusted_costs"`
}

// HourOut is one ledger row.
type HourOut struct {
	Hour              string  `json:"hour"`
	ConsumptionKWh    float64 `json:"consumption_kwh"`
	ProductionKWh     float64 `json:"production_kwh"`
	RawPrice          float64 `json:"raw_price"`
	BuyPrice          float64 `json:"buy_price"`
	SellPrice         float64 `json:"sell_price"`
	ProductionStopped bool    `json:"production_stopped,omitempty"`
	Action            string  `json:"action"`
	RequestedKWh      float64 `json:"requested_kwh"`
	GridDeltaKWh      float64 `json:"grid_delta_kwh"`
	SOCStartKWh       float64 `json:"soc_start_kwh"`
	SOCEndKWh         float64 `json:"soc_end_kwh"`
	RawCost           float64 `json:"raw_cost"`
	RawIncome         float64 `json:"raw_income"`
	NetGridKWh        float64 `json:"net_grid_kwh"`
	AdjustedCost      float64 `json:"adjusted_cost"`
	AdjustedIncome    float64 `json:"adjusted_income"`
}

// SimulateResponse is the body returned by POST /api/v1/simulate.
type SimulateResponse struct {
	Totals      TotalsOut  `json:"totals"`
	Months      []MonthOut `json:"months"`
	FinalSOCKWh float64    `json:"final_soc_kwh,omitempty"`
	Ledger      []HourOut  `json:"ledger,omitempty"`
	HourCount   int        `json:"hour_count"`
}

// ScenarioOut is one variant of a comparison.
type ScenarioOut struct {
	Name              string     `json:"name"`
	Strategy          string     `json:"strategy,omitempty"`
	Totals            TotalsOut  `json:"totals"`
	Months            []MonthOut `json:"months,omitempty"`
	FinalSOCKWh       float64    `json:"final_soc_kwh,omitempty"`
	SavingsVsBaseline float64    `json:"savings_vs_baseline"`
}

// CompareResponse is the body returned by POST /api/v1/simulate/compare.
type CompareResponse struct {
	Baseline  ScenarioOut   `json:"baseline"`
	Scenarios []ScenarioOut `json:"scenarios"`
}

// StrategyInfo describes one supported strategy for discovery.
type StrategyInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params,omitempty"`
}

func TotalsFromSummary(t sim.TotalSummary) TotalsOut {
	return TotalsOut{
		Costs:                 t.Costs,
		Income:                t.Income,
		BatteryAdjustedCosts:  t.BatteryAdjustedCosts,
		BatteryAdjustedIncome: t.BatteryAdjustedIncome,
		NetCosts:              t.NetCosts(),
		NetAdjustedCosts:      t.NetBatteryAdjustedCosts(),
		ConsumptionKWh:        t.ConsumptionKWh,
		ProductionKWh:         t.ProductionKWh,
		ChargedKWh:            t.ChargedKWh,
		DischargedKWh:         t.DischargedKWh,
	}
}

func MonthsFromSummaries(months []sim.MonthlySummary) []MonthOut {
	out := make([]MonthOut, 0, len(months))
	for _, m := range months {
		out = append(out, MonthOut{
			Month:                 m.Month,
			Costs:                 m.Costs,
			Income:                m.Income,
			ConsumptionKWh:        m.ConsumptionKWh,
			ProductionKWh:         m.ProductionKWh,
			BatteryAdjustedCosts:  m.BatteryAdjustedCosts,
			BatteryAdjustedIncome: m.BatteryAdjustedIncome,
			FixedSupplyCosts:      m.FixedSupplyCosts,
			TransportCosts:        m.TransportCosts,
			EnergyTaxCompensation: m.EnergyTaxCompensation,
			NetCosts:              m.NetCosts(),
			NetAdjustedCosts:      m.NetBatteryAdjustedCosts(),
		})
	}
	return out
}

func LedgerFromHours(hours []sim.HourResult) []HourOut {
	out := make([]HourOut, 0, len(hours))
	for _, h := range hours {
		out = append(out, HourOut{
			Hour:              h.Hour.Format("2006-01-02T15"),
			ConsumptionKWh:    h.ConsumptionKWh,
			ProductionKWh:     h.ProductionKWh,
			RawPrice:          h.RawPrice,
			BuyPrice:          h.BuyPrice,
			SellPrice:         h.SellPrice,
			ProductionStopped: h.ProductionStopped,
			Action:            string(h.Action),
			RequestedKWh:      h.RequestedKWh,
			GridDeltaKWh:      h.GridDeltaKWh,
			SOCStartKWh:       h.SOCStartKWh,
			SOCEndKWh:         h.SOCEndKWh,
			RawCost:           h.RawCost,
			RawIncome:         h.RawIncome,
			NetGridKWh:        h.NetGridKWh,
			AdjustedCost:      h.AdjustedCost,
			AdjustedIncome:    h.AdjustedIncome,
		})
	}
	return out
}

func ScenarioFromAnalysis(s analysis.Scenario, includeMonths bool) ScenarioOut {
	out := ScenarioOut{
		Name:              s.Name,
		Strategy:          s.Strategy,
		Totals:            TotalsFromSummary(s.Total),
		FinalSOCKWh:       s.FinalSOCKWh,
		SavingsVsBaseline: s.SavingsVsBaseline,
	}
	if includeMonths {
		out.Months = MonthsFromSummaries(s.Months)
	}
	return out
}
