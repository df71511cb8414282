package strategy

import (
	"fmt"

	"dynamic-energy-costs/internal/model"
)

// Context is everything a strategy may consult for one hour's decision.
// Observation carries the production value after any negative-price
// curtailment, so a strategy never charges from suppressed production.
type Context struct {
	Observation model.HourlyObservation
	Prices      model.EffectivePrices
	Battery     *model.Battery
}

// Strategy decides a signed energy request for one hour: positive kWh charges
// the battery, negative discharges it. Magnitude is unconstrained by hardware
// limits; clamping is the battery's job.
type Strategy interface {
	Name() string
	Decide(ctx Context) float64
}

// Params carries the strategy-specific configuration values.
type Params struct {
	PriceThresholdLow  float64 // €/kWh
	PriceThresholdHigh float64 // €/kWh
}

// New constructs the strategy selected by the run configuration. Strategy
// selection is fixed for the whole run.
func New(name string, params Params) (Strategy, error) {
	switch name {
	case "self_sufficiency":
		return &SelfSufficiency{}, nil
	case "dynamic_cost_optimization":
		if params.PriceThresholdLow >= params.PriceThresholdHigh {
			return nil, &model.ConfigError{
				Field:   "strategy",
				Message: "price_threshold_low must be < price_threshold_high",
			}
		}
		return &DynamicCostOptimization{
			Low:  params.PriceThresholdLow,
			High: params.PriceThresholdHigh,
		}, nil
	default:
		return nil, &model.ConfigError{
			Field:   "strategy",
			Message: fmt.Sprintf("unsupported strategy %q", name),
		}
	}
}

// Names lists the supported strategy names.
func Names() []string {
	return []string{"self_sufficiency", "dynamic_cost_optimization"}
}
