package sim

import (
	"fmt"
	"math"

	"dynamic-energy-costs/internal/model"
	"dynamic-energy-costs/internal/strategy"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes the hour loop over an aligned observation series. Hours must be
// in chronological order: battery state carries over between iterations, so
// the loop is strictly sequential. Pass a nil battery and strategy together to
// compute costs without battery adjustment (the adjusted figures then settle
// the plain net grid flow).
func (e *Engine) Run(observations []model.HourlyObservation, taxes model.TaxConfig, batt *model.Battery, strat strategy.Strategy) (*Result, error) {
	if len(observations) == 0 {
		return nil, fmt.Errorf("no observations")
	}
	if (batt == nil) != (strat == nil) {
		return nil, fmt.Errorf("battery and strategy must be provided together")
	}

	hours := make([]HourResult, 0, len(observations))

	for idx, obs := range observations {
		if idx > 0 && !obs.Hour.After(observations[idx-1].Hour) {
			return nil, fmt.Errorf("observation %d: hours not strictly increasing", idx)
		}

		prices := taxes.Prices(obs.RawPrice)

		row := HourResult{
			Hour:           obs.Hour,
			ConsumptionKWh: obs.ConsumptionKWh,
			ProductionKWh:  obs.ProductionKWh,
			RawPrice:       obs.RawPrice,
			BuyPrice:       prices.BuyPrice,
			SellPrice:      prices.SellPrice,
			Action:         model.ActionIdle,
		}

		// Curtail the inverter for the hour: no income, and nothing for the
		// battery to charge from.
		production := obs.ProductionKWh
		if !prices.ProductionAllowed {
			production = 0
			row.ProductionStopped = true
		}

		row.RawCost = obs.ConsumptionKWh * prices.BuyPrice
		if prices.ProductionAllowed {
			row.RawIncome = obs.ProductionKWh * prices.SellPrice
		}

		var tr model.HourTransition
		if batt != nil {
			requested := strat.Decide(strategy.Context{
				Observation: model.HourlyObservation{
					Hour:           obs.Hour,
					ConsumptionKWh: obs.ConsumptionKWh,
					ProductionKWh:  production,
					RawPrice:       obs.RawPrice,
				},
				Prices:  prices,
				Battery: batt,
			})
			tr = batt.Apply(requested)

			row.RequestedKWh = requested
			row.GridDeltaKWh = tr.GridDeltaKWh
			row.SOCStartKWh = tr.SOCStartKWh
			row.SOCEndKWh = tr.SOCEndKWh
			row.Action = model.ActionFromDelta(tr.GridDeltaKWh)
		}

		net := obs.ConsumptionKWh - production + tr.GridDeltaKWh
		row.NetGridKWh = net
		row.AdjustedCost = math.Max(net, 0) * prices.BuyPrice
		row.AdjustedIncome = math.Max(-net, 0) * prices.SellPrice

		hours = append(hours, row)
	}

	months, total := Summarize(hours, taxes)
	res := &Result{
		Hours:  hours,
		Months: months,
		Total:  total,
	}
	if batt != nil {
		res.FinalSOCKWh = batt.State.SOCKWh
	}
	return res, nil
}
