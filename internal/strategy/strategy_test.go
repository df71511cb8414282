package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynamic-energy-costs/internal/model"
)

func testBattery(t *testing.T) *model.Battery {
	t.Helper()
	b, err := model.NewBattery(model.BatteryParams{
		CapacityKWh:         10,
		MaxChargeRateKWh:    3,
		MaxDischargeRateKWh: 2,
		RoundTripEfficiency: 0.96,
		MinSOC:              0.1,
		MaxSOC:              0.9,
	}, -1)
	require.NoError(t, err)
	return b
}

func TestSelfSufficiency_FollowsSurplus(t *testing.T) {
	s := &SelfSufficiency{}

	ctx := Context{
		Observation: model.HourlyObservation{ConsumptionKWh: 1, ProductionKWh: 4},
		Battery:     testBattery(t),
	}
	assert.Equal(t, 3.0, s.Decide(ctx))

	ctx.Observation = model.HourlyObservation{ConsumptionKWh: 2.5, ProductionKWh: 0.5}
	assert.Equal(t, -2.0, s.Decide(ctx))

	ctx.Observation = model.HourlyObservation{ConsumptionKWh: 1, ProductionKWh: 1}
	assert.Zero(t, s.Decide(ctx))
}

func TestDynamicCostOptimization_ThresholdSweep(t *testing.T) {
	s := &DynamicCostOptimization{Low: 0.10, High: 0.25}
	b := testBattery(t)

	cases := []struct {
		name string
		buy  float64
		want float64
	}{
		{"below low", 0.09, 3},
		{"exactly low", 0.10, 0},
		{"between", 0.18, 0},
		{"exactly high", 0.25, 0},
		{"above high", 0.26, -2},
		{"negative", -0.05, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := Context{
				Prices:  model.EffectivePrices{BuyPrice: tc.buy},
				Battery: b,
			}
			assert.Equal(t, tc.want, s.Decide(ctx))
		})
	}
}

func TestNew_KnownStrategies(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name, Params{PriceThresholdLow: 0.10, PriceThresholdHigh: 0.25})
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
}

func TestNew_UnknownStrategy(t *testing.T) {
	_, err := New("arbitrage_pro", Params{})
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_RejectsInvertedThresholds(t *testing.T) {
	_, err := New("dynamic_cost_optimization", Params{PriceThresholdLow: 0.25, PriceThresholdHigh: 0.10})
	require.Error(t, err)

	_, err = New("dynamic_cost_optimization", Params{PriceThresholdLow: 0.10, PriceThresholdHigh: 0.10})
	require.Error(t, err)
}
