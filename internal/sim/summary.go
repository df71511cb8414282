package sim

import (
	"math"

	"dynamic-energy-costs/internal/model"
)

// MonthlySummary aggregates the hour results of one calendar month. The fixed
// supply costs, transport costs and energy tax compensation are charged in
// full for every calendar month touched by the range; partial first/last
// months are not pro-rated, matching monthly billing.
type MonthlySummary struct {
	Month string // "2006-01"

	Costs          float64
	Income         float64
	ConsumptionKWh float64
	ProductionKWh  float64

	BatteryAdjustedCosts  float64
	BatteryAdjustedIncome float64
	ChargedKWh            float64
	DischargedKWh         float64

	FixedSupplyCosts      float64
	TransportCosts        float64
	EnergyTaxCompensation float64
}

// NetCosts is the month's costs minus income, without battery adjustment.
func (m MonthlySummary) NetCosts() float64 {
	return m.Costs - m.Income
}

func (m MonthlySummary) NetBatteryAdjustedCosts() float64 {
	return m.BatteryAdjustedCosts - m.BatteryAdjustedIncome
}

// TotalSummary aggregates the whole range, fixed monthly charges included.
type TotalSummary struct {
	Costs          float64
	Income         float64
	ConsumptionKWh float64
	ProductionKWh  float64

	BatteryAdjustedCosts  float64
	BatteryAdjustedIncome float64
	ChargedKWh            float64
	DischargedKWh         float64
}

func (t TotalSummary) NetCosts() float64 {
	return t.Costs - t.Income
}

func (t TotalSummary) NetBatteryAdjustedCosts() float64 {
	return t.BatteryAdjustedCosts - t.BatteryAdjustedIncome
}

// Summarize rolls hour results into per-month and whole-range summaries.
// Summaries are pure aggregations, recomputed from scratch each run. Months
// come out in chronological order since the hour results are chronological.
func Summarize(hours []HourResult, taxes model.TaxConfig) ([]MonthlySummary, TotalSummary) {
	months := make([]MonthlySummary, 0, 12)
	index := map[string]int{}
	var total TotalSummary

	for _, h := range hours {
		key := h.Hour.Format("2006-01")
		i, ok := index[key]
		if !ok {
			i = len(months)
			index[key] = i
			months = append(months, MonthlySummary{
				Month:                 key,
				FixedSupplyCosts:      taxes.FixedSupplyCostsPerMonth,
				TransportCosts:        taxes.TransportCostsPerMonth,
				EnergyTaxCompensation: taxes.EnergyTaxCompensationPerMonth,
			})
		}
		m := &months[i]

		m.Costs += h.RawCost
		m.Income += h.RawIncome
		m.ConsumptionKWh += h.ConsumptionKWh
		m.ProductionKWh += h.ProductionKWh
		m.BatteryAdjustedCosts += h.AdjustedCost
		m.BatteryAdjustedIncome += h.AdjustedIncome
		m.ChargedKWh += math.Max(h.GridDeltaKWh, 0)
		m.DischargedKWh += math.Max(-h.GridDeltaKWh, 0)

		total.Costs += h.RawCost
		total.Income += h.RawIncome
		total.ConsumptionKWh += h.ConsumptionKWh
		total.ProductionKWh += h.ProductionKWh
		total.BatteryAdjustedCosts += h.AdjustedCost
		total.BatteryAdjustedIncome += h.AdjustedIncome
		total.ChargedKWh += math.Max(h.GridDeltaKWh, 0)
		total.DischargedKWh += math.Max(-h.GridDeltaKWh, 0)
	}

	// Fixed charges land once per month, on both the raw and adjusted side.
	for i := range months {
		fixed := months[i].FixedSupplyCosts + months[i].TransportCosts + months[i].EnergyTaxCompensation
		months[i].Costs += fixed
		months[i].BatteryAdjustedCosts += fixed
		total.Costs += fixed
		total.BatteryAdjustedCosts += fixed
	}

	return months, total
}
