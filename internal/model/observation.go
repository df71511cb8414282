package model

import "time"

// HourlyObservation is one aligned hour of input data: consumption, production
// and the raw market price for that hour. Timestamps are hour-resolution,
// timezone-naive local time. Observations are created by series alignment and
// never mutated afterwards.
type HourlyObservation struct {
	Hour           time.Time
	ConsumptionKWh float64
	ProductionKWh  float64
	RawPrice       float64 // €/kWh, may be negative
}

// Action is a human-friendly operating mode for an hour.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

func ActionFromDelta(gridDeltaKWh float64) Action {
	switch {
	case gridDeltaKWh > 0:
		return ActionCharging
	case gridDeltaKWh < 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}
