package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynamic-energy-costs/internal/model"
	"dynamic-energy-costs/internal/strategy"
)

func hourAt(day, h int) time.Time {
	return time.Date(2024, 6, day, h, 0, 0, 0, time.Local)
}

func testTaxes() model.TaxConfig {
	return model.TaxConfig{
		EnergyTax:               0.1088,
		StorageCostsConsumption: 0.02,
		StorageCostsProduction:  -0.02,
		VATPercent:              21,
	}
}

func testBattery(t *testing.T) *model.Battery {
	t.Helper()
	b, err := model.NewBattery(model.BatteryParams{
		CapacityKWh:         10,
		MaxChargeRateKWh:    2,
		MaxDischargeRateKWh: 2,
		RoundTripEfficiency: 0.96,
		MinSOC:              0.1,
		MaxSOC:              0.9,
	}, -1)
	require.NoError(t, err)
	return b
}

func TestRun_RejectsEmptyInput(t *testing.T) {
	_, err := New().Run(nil, testTaxes(), nil, nil)
	require.Error(t, err)
}

func TestRun_RejectsBatteryWithoutStrategy(t *testing.T) {
	obs := []model.HourlyObservation{{Hour: hourAt(1, 0), RawPrice: 0.1}}

	_, err := New().Run(obs, testTaxes(), testBattery(t), nil)
	require.Error(t, err)

	_, err = New().Run(obs, testTaxes(), nil, &strategy.SelfSufficiency{})
	require.Error(t, err)
}

func TestRun_RejectsUnorderedHours(t *testing.T) {
	obs := []model.HourlyObservation{
		{Hour: hourAt(1, 5), RawPrice: 0.1},
		{Hour: hourAt(1, 5), RawPrice: 0.1},
	}
	_, err := New().Run(obs, testTaxes(), nil, nil)
	require.Error(t, err)
}

func TestRun_BaselineSettlesNetFlow(t *testing.T) {
	taxes := testTaxes()
	obs := []model.HourlyObservation{
		{Hour: hourAt(1, 10), ConsumptionKWh: 2, ProductionKWh: 0.5, RawPrice: 0.10},
		{Hour: hourAt(1, 11), ConsumptionKWh: 0.5, ProductionKWh: 3, RawPrice: 0.08},
	}

	res, err := New().Run(obs, taxes, nil, nil)
	require.NoError(t, err)
	require.Len(t, res.Hours, 2)

	h0 := res.Hours[0]
	p0 := taxes.Prices(0.10)
	assert.InDelta(t, 1.5, h0.NetGridKWh, 1e-9)
	assert.InDelta(t, 1.5*p0.BuyPrice, h0.AdjustedCost, 1e-9)
	assert.Zero(t, h0.AdjustedIncome)
	assert.Equal(t, model.ActionIdle, h0.Action)

	h1 := res.Hours[1]
	p1 := taxes.Prices(0.08)
	assert.InDelta(t, -2.5, h1.NetGridKWh, 1e-9)
	assert.Zero(t, h1.AdjustedCost)
	assert.InDelta(t, 2.5*p1.SellPrice, h1.AdjustedIncome, 1e-9)

	assert.Zero(t, res.FinalSOCKWh)
}

func TestRun_SurplusHourChargesBattery(t *testing.T) {
	taxes := testTaxes()
	obs := []model.HourlyObservation{
		{Hour: hourAt(1, 12), ConsumptionKWh: 1, ProductionKWh: 5, RawPrice: 0.10},
	}

	res, err := New().Run(obs, taxes, testBattery(t), &strategy.SelfSufficiency{})
	require.NoError(t, err)

	h := res.Hours[0]
	// Surplus of 4 kWh requested, charge rate caps the grid draw at 2.
	assert.InDelta(t, 4.0, h.RequestedKWh, 1e-9)
	assert.InDelta(t, 2.0, h.GridDeltaKWh, 1e-9)
	assert.Equal(t, model.ActionCharging, h.Action)
	assert.InDelta(t, 1.0, h.SOCStartKWh, 1e-9)
	assert.InDelta(t, 1.0+2*math.Sqrt(0.96), h.SOCEndKWh, 1e-9)

	// Net flow: 1 consumed - 5 produced + 2 into the battery = -2 exported.
	p := taxes.Prices(0.10)
	assert.InDelta(t, -2.0, h.NetGridKWh, 1e-9)
	assert.Zero(t, h.AdjustedCost)
	assert.InDelta(t, 2*p.SellPrice, h.AdjustedIncome, 1e-9)

	// Raw figures ignore the battery entirely.
	assert.InDelta(t, 1*p.BuyPrice, h.RawCost, 1e-9)
	assert.InDelta(t, 5*p.SellPrice, h.RawIncome, 1e-9)

	assert.InDelta(t, h.SOCEndKWh, res.FinalSOCKWh, 1e-9)
}

func TestRun_ProductionStopZeroesIncomeAndCharge(t *testing.T) {
	taxes := testTaxes()
	taxes.StopProductionOnNegativePrice = true
	obs := []model.HourlyObservation{
		{Hour: hourAt(1, 13), ConsumptionKWh: 1, ProductionKWh: 5, RawPrice: -0.30},
	}

	res, err := New().Run(obs, taxes, testBattery(t), &strategy.SelfSufficiency{})
	require.NoError(t, err)

	h := res.Hours[0]
	require.True(t, h.ProductionStopped)
	assert.Zero(t, h.RawIncome)
	// With production curtailed the strategy sees a 1 kWh deficit; the battery
	// starts at its floor so nothing can discharge.
	assert.InDelta(t, -1.0, h.RequestedKWh, 1e-9)
	assert.Zero(t, h.GridDeltaKWh)
	assert.InDelta(t, 1.0, h.NetGridKWh, 1e-9)
	assert.Zero(t, h.AdjustedIncome)
}

func TestRun_IdenticalReruns(t *testing.T) {
	taxes := testTaxes()
	obs := make([]model.HourlyObservation, 0, 48)
	for i := 0; i < 48; i++ {
		obs = append(obs, model.HourlyObservation{
			Hour:           hourAt(1, 0).Add(time.Duration(i) * time.Hour),
			ConsumptionKWh: 0.4 + 0.3*float64(i%5),
			ProductionKWh:  math.Max(0, 3*math.Sin(float64(i%24-6)/12*math.Pi)),
			RawPrice:       0.05 + 0.01*float64(i%24),
		})
	}

	run := func() *Result {
		res, err := New().Run(obs, taxes, testBattery(t), &strategy.SelfSufficiency{})
		require.NoError(t, err)
		return res
	}

	first := run()
	second := run()
	assert.Equal(t, first.Hours, second.Hours)
	assert.Equal(t, first.Months, second.Months)
	assert.Equal(t, first.Total, second.Total)
}

func TestRun_SOCStaysBounded(t *testing.T) {
	taxes := testTaxes()
	obs := make([]model.HourlyObservation, 0, 72)
	for i := 0; i < 72; i++ {
		obs = append(obs, model.HourlyObservation{
			Hour:           hourAt(1, 0).Add(time.Duration(i) * time.Hour),
			ConsumptionKWh: float64(i % 7),
			ProductionKWh:  float64((i * 3) % 11),
			RawPrice:       0.30 - 0.02*float64(i%24),
		})
	}

	res, err := New().Run(obs, taxes, testBattery(t), &strategy.SelfSufficiency{})
	require.NoError(t, err)

	for _, h := range res.Hours {
		assert.GreaterOrEqual(t, h.SOCEndKWh, 1.0-1e-9)
		assert.LessOrEqual(t, h.SOCEndKWh, 9.0+1e-9)
	}
}

func TestSummarize_FixedChargesOncePerMonth(t *testing.T) {
	taxes := testTaxes()
	taxes.FixedSupplyCostsPerMonth = 5
	taxes.TransportCostsPerMonth = 25
	taxes.EnergyTaxCompensationPerMonth = -13

	// Three hours straddling a month boundary.
	obs := []model.HourlyObservation{
		{Hour: time.Date(2024, 1, 31, 22, 0, 0, 0, time.Local), ConsumptionKWh: 1, RawPrice: 0.10},
		{Hour: time.Date(2024, 1, 31, 23, 0, 0, 0, time.Local), ConsumptionKWh: 1, RawPrice: 0.10},
		{Hour: time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local), ConsumptionKWh: 1, RawPrice: 0.10},
	}

	res, err := New().Run(obs, taxes, nil, nil)
	require.NoError(t, err)
	require.Len(t, res.Months, 2)

	buy := taxes.Prices(0.10).BuyPrice
	fixed := 5.0 + 25 - 13

	jan := res.Months[0]
	assert.Equal(t, "2024-01", jan.Month)
	assert.InDelta(t, 2*buy+fixed, jan.Costs, 1e-9)
	assert.InDelta(t, 2*buy+fixed, jan.BatteryAdjustedCosts, 1e-9)

	feb := res.Months[1]
	assert.Equal(t, "2024-02", feb.Month)
	assert.InDelta(t, 1*buy+fixed, feb.Costs, 1e-9)

	assert.InDelta(t, 3*buy+2*fixed, res.Total.Costs, 1e-9)
	assert.InDelta(t, res.Total.Costs, res.Total.BatteryAdjustedCosts, 1e-9)
}

func TestSummarize_NetHelpers(t *testing.T) {
	m := MonthlySummary{Costs: 10, Income: 4, BatteryAdjustedCosts: 8, BatteryAdjustedIncome: 5}
	assert.InDelta(t, 6, m.NetCosts(), 1e-9)
	assert.InDelta(t, 3, m.NetBatteryAdjustedCosts(), 1e-9)

	total := TotalSummary{Costs: 100, Income: 40}
	assert.InDelta(t, 60, total.NetCosts(), 1e-9)
}
