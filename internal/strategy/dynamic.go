package strategy

// DynamicCostOptimization charges at the battery's maximum rate when the
// effective buy price is below the low threshold and discharges at the
// maximum rate above the high threshold. Comparisons are strict: a price
// exactly on either threshold is idle. Consumption and production do not
// enter the sign decision, only the resulting grid settlement.
type DynamicCostOptimization struct {
	Low  float64 // €/kWh
	High float64 // €/kWh
}

func (s *DynamicCostOptimization) Name() string { return "dynamic_cost_optimization" }

func (s *DynamicCostOptimization) Decide(ctx Context) float64 {
	switch {
	case ctx.Prices.BuyPrice < s.Low:
		return ctx.Battery.Params.MaxChargeRateKWh
	case ctx.Prices.BuyPrice > s.High:
		return -ctx.Battery.Params.MaxDischargeRateKWh
	default:
		return 0
	}
}
