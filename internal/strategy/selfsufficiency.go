package strategy

// SelfSufficiency maximizes on-site use of produced energy: the hourly
// production surplus charges the battery, a deficit discharges it. Price is
// not consulted.
type SelfSufficiency struct{}

func (s *SelfSufficiency) Name() string { return "self_sufficiency" }

func (s *SelfSufficiency) Decide(ctx Context) float64 {
	return ctx.Observation.ProductionKWh - ctx.Observation.ConsumptionKWh
}
