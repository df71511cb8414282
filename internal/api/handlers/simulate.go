package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"dynamic-energy-costs/internal/analysis"
	"dynamic-energy-costs/internal/api/models"
	"dynamic-energy-costs/internal/model"
	"dynamic-energy-costs/internal/sim"
	"dynamic-energy-costs/internal/strategy"

	"github.com/gin-gonic/gin"
)

// SimulateHandler runs cost simulations over inline hourly series.
type SimulateHandler struct{}

func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// Run handles POST /api/v1/simulate.
func (h *SimulateHandler) Run(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	if (req.Battery == nil) != (req.Strategy == nil) {
		badRequest(c, "INVALID_REQUEST", errors.New("battery and strategy must be provided together"))
		return
	}

	observations, err := toObservations(req.Hours)
	if err != nil {
		badRequest(c, "INVALID_HOURS", err)
		return
	}
	taxes := toTaxConfig(req.Taxes)
	if err := taxes.Validate(); err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return
	}

	var batt *model.Battery
	var strat strategy.Strategy
	if req.Battery != nil {
		batt, err = toBattery(*req.Battery)
		if err != nil {
			badRequest(c, "INVALID_BATTERY", err)
			return
		}
		strat, err = toStrategy(*req.Strategy)
		if err != nil {
			badRequest(c, "INVALID_STRATEGY", err)
			return
		}
	}

	res, err := sim.New().Run(observations, taxes, batt, strat)
	if err != nil {
		badRequest(c, "SIMULATION_ERROR", err)
		return
	}

	resp := models.SimulateResponse{
		Totals:      models.TotalsFromSummary(res.Total),
		Months:      models.MonthsFromSummaries(res.Months),
		FinalSOCKWh: res.FinalSOCKWh,
		HourCount:   len(res.Hours),
	}
	if req.Options.IncludeLedger {
		resp.Ledger = models.LedgerFromHours(res.Hours)
	}
	c.JSON(http.StatusOK, resp)
}

// Compare handles POST /api/v1/simulate/compare.
func (h *SimulateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	observations, err := toObservations(req.Hours)
	if err != nil {
		badRequest(c, "INVALID_HOURS", err)
		return
	}
	taxes := toTaxConfig(req.Taxes)
	if err := taxes.Validate(); err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return
	}

	// Validate the battery up front so every scenario fails the same way.
	if _, err := toBattery(req.Battery); err != nil {
		badRequest(c, "INVALID_BATTERY", err)
		return
	}

	specs := make([]analysis.ScenarioSpec, 0, len(req.Variants))
	for _, v := range req.Variants {
		specs = append(specs, analysis.ScenarioSpec{
			Name:     v.Name,
			Strategy: v.Strategy.Name,
			Params: strategy.Params{
				PriceThresholdLow:  v.Strategy.PriceThresholdLow,
				PriceThresholdHigh: v.Strategy.PriceThresholdHigh,
			},
		})
	}
	if len(specs) == 0 {
		for _, name := range strategy.Names() {
			specs = append(specs, analysis.ScenarioSpec{
				Name:     name,
				Strategy: name,
				Params:   strategy.Params{PriceThresholdLow: 0.10, PriceThresholdHigh: 0.25},
			})
		}
	}

	cmp, err := analysis.Compare(observations, taxes, toBatteryParams(req.Battery), initialSOC(req.Battery), specs)
	if err != nil {
		badRequest(c, "COMPARISON_ERROR", err)
		return
	}

	resp := models.CompareResponse{
		Baseline: models.ScenarioFromAnalysis(cmp.Baseline, false),
	}
	for _, s := range cmp.Scenarios {
		resp.Scenarios = append(resp.Scenarios, models.ScenarioFromAnalysis(s, false))
	}
	c.JSON(http.StatusOK, resp)
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func toObservations(hours []models.HourInput) ([]model.HourlyObservation, error) {
	if len(hours) == 0 {
		return nil, errors.New("hours must not be empty")
	}
	out := make([]model.HourlyObservation, 0, len(hours))
	for i, h := range hours {
		ts, err := time.Parse("2006-01-02T15", h.Hour)
		if err != nil {
			return nil, fmt.Errorf("hour %d: %w", i, err)
		}
		if h.ConsumptionKWh < 0 || h.ProductionKWh < 0 {
			return nil, fmt.Errorf("hour %d: consumption and production must be >= 0", i)
		}
		out = append(out, model.HourlyObservation{
			Hour:           ts,
			ConsumptionKWh: h.ConsumptionKWh,
			ProductionKWh:  h.ProductionKWh,
			RawPrice:       h.RawPrice,
		})
	}
	return out, nil
}

func toTaxConfig(t models.TaxesInput) model.TaxConfig {
	return model.TaxConfig{
		EnergyTax:                     t.EnergyTax,
		StorageCostsConsumption:       t.StorageCosts,
		StorageCostsProduction:        t.StorageCostsProduction,
		VATPercent:                    t.VATPercent,
		FixedSupplyCostsPerMonth:      t.FixedSupplyCosts,
		TransportCostsPerMonth:        t.TransportCosts,
		EnergyTaxCompensationPerMonth: t.EnergyTaxCompensation,
		StopProductionOnNegativePrice: t.StopProductionOnNegativePrice,
	}
}

func toBatteryParams(b models.BatteryInput) model.BatteryParams {
	return model.BatteryParams{
		CapacityKWh:         b.CapacityKWh,
		MaxChargeRateKWh:    b.MaxChargeRateKWh,
		MaxDischargeRateKWh: b.MaxDischargeRateKWh,
		RoundTripEfficiency: b.RoundTripEfficiency,
		MinSOC:              b.MinSOC,
		MaxSOC:              b.MaxSOC,
	}
}

func initialSOC(b models.BatteryInput) float64 {
	if b.InitialSOCKWh == 0 {
		return -1
	}
	return b.InitialSOCKWh
}

func toBattery(b models.BatteryInput) (*model.Battery, error) {
	return model.NewBattery(toBatteryParams(b), initialSOC(b))
}

func toStrategy(s models.StrategyInput) (strategy.Strategy, error) {
	return strategy.New(s.Name, strategy.Params{
		PriceThresholdLow:  s.PriceThresholdLow,
		PriceThresholdHigh: s.PriceThresholdHigh,
	})
}
