package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"dynamic-energy-costs/internal/analysis"
	"dynamic-energy-costs/internal/model"
	"dynamic-energy-costs/internal/sim"
	"dynamic-energy-costs/internal/strategy"
)

// Demo:
// - Generate a synthetic two-day hourly series (solar curve, evening demand,
//   duck-curve prices)
// - Run the engine once per strategy plus a no-battery baseline
// - Print the per-hour ledger and the savings table
func main() {
	days := flag.Int("days", 2, "Number of synthetic days to simulate")
	flag.Parse()

	observations := syntheticDays(*days)

	taxes := model.TaxConfig{
		EnergyTax:                     0.1088,
		StorageCostsConsumption:       0.02,
		StorageCostsProduction:        -0.02,
		VATPercent:                    21,
		FixedSupplyCostsPerMonth:      5.0,
		TransportCostsPerMonth:        25.0,
		EnergyTaxCompensationPerMonth: -13.0,
	}
	params := model.BatteryParams{
		CapacityKWh:         10,
		MaxChargeRateKWh:    2.5,
		MaxDischargeRateKWh: 2.5,
		RoundTripEfficiency: 0.96,
		MinSOC:              0.10,
		MaxSOC:              0.90,
	}

	batt, err := model.NewBattery(params, -1)
	if err != nil {
		panic(err)
	}
	strat, err := strategy.New("self_sufficiency", strategy.Params{})
	if err != nil {
		panic(err)
	}
	res, err := sim.New().Run(observations, taxes, batt, strat)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-14s %-8s %-8s %-8s %-13s %-8s %-8s\n",
		"hour", "cons", "prod", "buy", "action", "grid", "soc")
	for _, h := range res.Hours {
		fmt.Printf("%-14s %-8.2f %-8.2f %-8.3f %-13s %+-8.2f %-8.2f\n",
			h.Hour.Format("01-02T15"),
			h.ConsumptionKWh, h.ProductionKWh, h.BuyPrice,
			h.Action, h.GridDeltaKWh, h.SOCEndKWh)
	}

	specs := []analysis.ScenarioSpec{
		{Name: "self_sufficiency", Strategy: "self_sufficiency"},
		{Name: "dynamic_cost_optimization", Strategy: "dynamic_cost_optimization",
			Params: strategy.Params{PriceThresholdLow: 0.18, PriceThresholdHigh: 0.30}},
	}
	cmp, err := analysis.Compare(observations, taxes, params, -1, specs)
	if err != nil {
		panic(err)
	}

	fmt.Println()
	fmt.Printf("%-28s %-12s %-10s\n", "scenario", "net cost", "savings")
	fmt.Printf("%-28s €%-11.2f €%-9.2f\n", "baseline",
		cmp.Baseline.Total.NetBatteryAdjustedCosts(), 0.0)
	for _, s := range cmp.Scenarios {
		fmt.Printf("%-28s €%-11.2f €%-9.2f\n", s.Name,
			s.Total.NetBatteryAdjustedCosts(), s.SavingsVsBaseline)
	}
}

func syntheticDays(days int) []model.HourlyObservation {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.HourlyObservation, 0, days*24)
	for d := 0; d < days; d++ {
		for h := 0; h < 24; h++ {
			hour := start.Add(time.Duration(d*24+h) * time.Hour)

			// Solar bell around noon, demand peaks morning and evening,
			// price dips midday and spikes in the evening.
			solar := math.Max(0, 4*math.Sin(math.Pi*(float64(h)-6)/12))
			demand := 0.4
			if h >= 7 && h <= 9 {
				demand = 1.2
			}
			if h >= 17 && h <= 21 {
				demand = 1.8
			}
			price := 0.12 + 0.10*math.Cos(math.Pi*(float64(h)-14)/12)

			out = append(out, model.HourlyObservation{
				Hour:           hour,
				ConsumptionKWh: demand,
				ProductionKWh:  solar,
				RawPrice:       price,
			})
		}
	}
	return out
}
