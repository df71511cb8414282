package series

import (
	"time"

	"dynamic-energy-costs/internal/model"
)

// HourKeyFormat is the hour-resolution timestamp format used to key the three
// input series ("2024-12-31T17"). All data source loaders produce maps keyed
// in this format.
const HourKeyFormat = "2006-01-02T15"

func HourKey(t time.Time) string {
	return t.Format(HourKeyFormat)
}

// GapPolicy controls how holes in the input series are handled.
type GapPolicy string

const (
	// GapZeroFill imputes missing consumption/production hours as zero and
	// carries the last known price forward over missing price hours.
	GapZeroFill GapPolicy = "zero_fill"
	// GapFail aborts on any missing hour in any series.
	GapFail GapPolicy = "fail"
)

// DefaultMaxGapHours is the longest run of consecutive missing price hours
// that carry-forward will bridge under GapZeroFill.
const DefaultMaxGapHours = 6

type Options struct {
	Policy      GapPolicy
	MaxGapHours int // <= 0 uses DefaultMaxGapHours
}

// Align merges the three hourly inputs into one observation per hour of
// [start, end] inclusive: strictly increasing timestamps, no duplicates, no
// gaps in the output. Both bounds are truncated to the hour. Gaps in the
// inputs are resolved per Options; a gap that no policy resolves fails the
// run with a DataGapError naming the offending hours.
func Align(start, end time.Time, consumption, production, price map[string]float64, opts Options) ([]model.HourlyObservation, error) {
	start = start.Truncate(time.Hour)
	end = end.Truncate(time.Hour)
	if start.After(end) {
		return nil, &model.RangeError{Start: start, End: end}
	}
	if opts.Policy == "" {
		opts.Policy = GapZeroFill
	}
	maxGap := opts.MaxGapHours
	if maxGap <= 0 {
		maxGap = DefaultMaxGapHours
	}

	n := int(end.Sub(start)/time.Hour) + 1
	out := make([]model.HourlyObservation, 0, n)

	var (
		lastPrice float64
		havePrice bool
		gapRun    int
		gapStart  time.Time
	)

	for hour := start; !hour.After(end); hour = hour.Add(time.Hour) {
		key := HourKey(hour)

		cons, consOK := consumption[key]
		prod, prodOK := production[key]
		raw, priceOK := price[key]

		if opts.Policy == GapFail {
			switch {
			case !consOK:
				return nil, &model.DataGapError{Series: "consumption", From: hour, To: hour, Hours: 1}
			case !prodOK:
				return nil, &model.DataGapError{Series: "production", From: hour, To: hour, Hours: 1}
			case !priceOK:
				return nil, &model.DataGapError{Series: "price", From: hour, To: hour, Hours: 1}
			}
		}

		if priceOK {
			lastPrice = raw
			havePrice = true
			gapRun = 0
		} else {
			// Carry the last known price forward, within limits. A leading
			// gap has nothing to carry and always fails.
			if !havePrice {
				return nil, &model.DataGapError{Series: "price", From: hour, To: hour, Hours: 1}
			}
			if gapRun == 0 {
				gapStart = hour
			}
			gapRun++
			if gapRun > maxGap {
				return nil, &model.DataGapError{Series: "price", From: gapStart, To: hour, Hours: gapRun}
			}
			raw = lastPrice
		}

		if !consOK {
			cons = 0
		}
		if !prodOK {
			prod = 0
		}

		out = append(out, model.HourlyObservation{
			Hour:           hour,
			ConsumptionKWh: cons,
			ProductionKWh:  prod,
			RawPrice:       raw,
		})
	}

	return out, nil
}
