package model

import (
	"fmt"
	"time"
)

// ConfigError reports invalid battery, tax or strategy parameters.
// It is fatal and surfaces before the simulation starts.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RangeError reports invalid date bounds (start after end).
type RangeError struct {
	Start time.Time
	End   time.Time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s is after end %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// DataGapError reports a hole in an input series that the configured gap
// policy could not resolve. From/To bound the offending hours inclusively.
type DataGapError struct {
	Series string
	From   time.Time
	To     time.Time
	Hours  int
}

func (e *DataGapError) Error() string {
	return fmt.Sprintf("data gap in %s series: %d missing hour(s) from %s to %s",
		e.Series, e.Hours, e.From.Format("2006-01-02T15"), e.To.Format("2006-01-02T15"))
}
