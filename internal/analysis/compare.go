package analysis

import (
	"fmt"

	"dynamic-energy-costs/internal/model"
	"dynamic-energy-costs/internal/sim"
	"dynamic-energy-costs/internal/strategy"
)

// ScenarioSpec names one strategy variant to simulate.
type ScenarioSpec struct {
	Name     string
	Strategy string
	Params   strategy.Params
}

// Scenario is the outcome of one simulated variant over the same input series.
type Scenario struct {
	Name        string
	Strategy    string
	Total       sim.TotalSummary
	Months      []sim.MonthlySummary
	FinalSOCKWh float64

	// SavingsVsBaseline is baseline net adjusted cost minus this scenario's
	// net adjusted cost; positive means the battery saved money.
	SavingsVsBaseline float64
}

// Comparison holds the no-battery baseline plus one scenario per spec.
type Comparison struct {
	Baseline  Scenario
	Scenarios []Scenario
}

// Compare runs the engine once without a battery and once per scenario spec.
// Every scenario gets a freshly constructed battery so state never leaks
// between runs; scenarios are otherwise independent.
func Compare(observations []model.HourlyObservation, taxes model.TaxConfig, params model.BatteryParams, initialSOCKWh float64, specs []ScenarioSpec) (*Comparison, error) {
	engine := sim.New()

	base, err := engine.Run(observations, taxes, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("baseline run: %w", err)
	}
	cmp := &Comparison{
		Baseline: Scenario{
			Name:   "baseline",
			Total:  base.Total,
			Months: base.Months,
		},
	}
	baseNet := base.Total.NetBatteryAdjustedCosts()

	for _, spec := range specs {
		batt, err := model.NewBattery(params, initialSOCKWh)
		if err != nil {
			return nil, err
		}
		strat, err := strategy.New(spec.Strategy, spec.Params)
		if err != nil {
			return nil, err
		}
		res, err := engine.Run(observations, taxes, batt, strat)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", spec.Name, err)
		}
		cmp.Scenarios = append(cmp.Scenarios, Scenario{
			Name:              spec.Name,
			Strategy:          spec.Strategy,
			Total:             res.Total,
			Months:            res.Months,
			FinalSOCKWh:       res.FinalSOCKWh,
			SavingsVsBaseline: baseNet - res.Total.NetBatteryAdjustedCosts(),
		})
	}

	return cmp, nil
}
