package model

import "math"

// BatteryParams defines the physical parameters of the battery.
// Units:
// - CapacityKWh: kWh
// - MaxChargeRateKWh / MaxDischargeRateKWh: kWh per hour, grid side
// - RoundTripEfficiency: (0, 1]
// - MinSOC / MaxSOC: fraction of capacity
type BatteryParams struct {
	CapacityKWh         float64
	MaxChargeRateKWh    float64
	MaxDischargeRateKWh float64
	RoundTripEfficiency float64
	MinSOC              float64
	MaxSOC              float64
}

// BatteryState captures mutable state.
type BatteryState struct {
	// SOCKWh is the energy currently stored, in kWh.
	SOCKWh float64
}

// Battery bundles params + state for one simulation run. Each run owns its
// battery exclusively; concurrent runs must construct their own.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

// NewBattery validates the parameters and initializes the store.
// A negative initialSOCKWh starts the battery at the minimum bound.
func NewBattery(params BatteryParams, initialSOCKWh float64) (*Battery, error) {
	if initialSOCKWh < 0 {
		initialSOCKWh = params.MinSOC * params.CapacityKWh
	}
	b := &Battery{
		Params: params,
		State:  BatteryState{SOCKWh: initialSOCKWh},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battery) Validate() error {
	p := b.Params
	if p.CapacityKWh <= 0 {
		return &ConfigError{Field: "capacity_kwh", Message: "must be > 0"}
	}
	if p.MaxChargeRateKWh <= 0 {
		return &ConfigError{Field: "max_charge_rate_kwh", Message: "must be > 0"}
	}
	if p.MaxDischargeRateKWh <= 0 {
		return &ConfigError{Field: "max_discharge_rate_kwh", Message: "must be > 0"}
	}
	if p.RoundTripEfficiency <= 0 || p.RoundTripEfficiency > 1 {
		return &ConfigError{Field: "round_trip_efficiency", Message: "must be in (0, 1]"}
	}
	if p.MinSOC < 0 || p.MinSOC >= 1 {
		return &ConfigError{Field: "min_soc", Message: "must be in [0, 1)"}
	}
	if p.MaxSOC <= p.MinSOC || p.MaxSOC > 1 {
		return &ConfigError{Field: "max_soc", Message: "must be in (min_soc, 1]"}
	}
	if b.State.SOCKWh < p.MinSOC*p.CapacityKWh || b.State.SOCKWh > p.MaxSOC*p.CapacityKWh {
		return &ConfigError{Field: "initial_soc_kwh", Message: "must be within [min_soc, max_soc] x capacity"}
	}
	return nil
}

// legEfficiency is the per-leg conversion efficiency. The round-trip loss is
// split evenly over both legs: charging gridIn kWh stores gridIn*sqrt(eff),
// and delivering gridOut kWh withdraws gridOut/sqrt(eff) from the store. Over
// a full cycle the grid sees exactly the round-trip efficiency, and the loss
// is never applied twice to the same energy.
func (b *Battery) legEfficiency() float64 {
	return math.Sqrt(b.Params.RoundTripEfficiency)
}

// HourTransition captures what the battery actually did in one hour.
type HourTransition struct {
	RequestedKWh   float64 // strategy request, + charge / - discharge
	GridDeltaKWh   float64 // realized grid-facing energy, + drawn / - fed back
	StoredDeltaKWh float64 // change applied to the store (post-loss on charge)
	SOCStartKWh    float64
	SOCEndKWh      float64
}

// Apply advances the state by one hour. The requested energy is clamped to the
// rate limit for its direction, then further so the store stays within
// [MinSOC, MaxSOC] x capacity. The returned GridDeltaKWh is the realized,
// energy-conserving grid-side flow. Replaying the same requests from the same
// initial state reproduces identical transitions.
func (b *Battery) Apply(requestedKWh float64) HourTransition {
	tr := HourTransition{
		RequestedKWh: requestedKWh,
		SOCStartKWh:  b.State.SOCKWh,
	}
	eff := b.legEfficiency()

	if requestedKWh > 0 {
		gridIn := math.Min(requestedKWh, b.Params.MaxChargeRateKWh)
		headroomKWh := b.Params.MaxSOC*b.Params.CapacityKWh - b.State.SOCKWh
		if headroomKWh < 0 {
			headroomKWh = 0
		}
		// Grid energy that fills the headroom at the charge-leg efficiency.
		gridIn = math.Min(gridIn, headroomKWh/eff)
		stored := gridIn * eff
		b.State.SOCKWh += stored
		tr.GridDeltaKWh = gridIn
		tr.StoredDeltaKWh = stored
	} else if requestedKWh < 0 {
		gridOut := math.Min(-requestedKWh, b.Params.MaxDischargeRateKWh)
		availableKWh := b.State.SOCKWh - b.Params.MinSOC*b.Params.CapacityKWh
		if availableKWh < 0 {
			availableKWh = 0
		}
		gridOut = math.Min(gridOut, availableKWh*eff)
		withdrawn := gridOut / eff
		b.State.SOCKWh -= withdrawn
		tr.GridDeltaKWh = -gridOut
		tr.StoredDeltaKWh = -withdrawn
	}

	// Clamp numeric drift.
	if lo := b.Params.MinSOC * b.Params.CapacityKWh; b.State.SOCKWh < lo {
		b.State.SOCKWh = lo
	}
	if hi := b.Params.MaxSOC * b.Params.CapacityKWh; b.State.SOCKWh > hi {
		b.State.SOCKWh = hi
	}

	tr.SOCEndKWh = b.State.SOCKWh
	return tr
}
