package sim

import (
	"time"

	"dynamic-energy-costs/internal/model"
)

// HourResult is one row of per-hour output, immutable once appended.
// Raw figures use the unadjusted consumption/production; the adjusted figures
// settle the net grid flow after battery action.
type HourResult struct {
	Hour time.Time

	ConsumptionKWh float64
	ProductionKWh  float64
	RawPrice       float64
	BuyPrice       float64
	SellPrice      float64

	// ProductionStopped marks hours where production (and production-fed
	// charging) was suppressed by the negative-price rule.
	ProductionStopped bool

	Action       model.Action
	RequestedKWh float64
	GridDeltaKWh float64 // battery grid-facing flow, + drawn / - fed back
	SOCStartKWh  float64
	SOCEndKWh    float64

	RawCost        float64
	RawIncome      float64
	NetGridKWh     float64 // consumption - production + battery flow
	AdjustedCost   float64
	AdjustedIncome float64
}

// Result is the full output of one engine run.
type Result struct {
	Hours       []HourResult
	Months      []MonthlySummary
	Total       TotalSummary
	FinalSOCKWh float64
}
