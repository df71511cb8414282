package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"dynamic-energy-costs/internal/series"
)

// ExportRecord is one row of a Home Assistant statistics export
// (export.json). Increments are hourly kWh deltas of a cumulative counter.
type ExportRecord struct {
	StatisticID string  `json:"statistic_id"`
	Timestamp   string  `json:"d"` // "2024-12-31 17:00:00"
	Increment   float64 `json:"increment"`
}

// LoadExportJSON reads an export file and aggregates hourly increments for
// the given sensors within [start, end] inclusive. Multiple sensors sum into
// the same hour. Records with unparsable timestamps are skipped.
func LoadExportJSON(path string, sensorIDs []string, start, end time.Time) (map[string]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []ExportRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	wanted := make(map[string]bool, len(sensorIDs))
	for _, id := range sensorIDs {
		wanted[id] = true
	}

	start = start.Truncate(time.Hour)
	end = end.Truncate(time.Hour)

	totals := map[string]float64{}
	for _, rec := range records {
		if !wanted[rec.StatisticID] {
			continue
		}
		ts, err := time.Parse("2006-01-02 15:04:05", rec.Timestamp)
		if err != nil {
			continue
		}
		ts = ts.Truncate(time.Hour)
		if ts.Before(start) || ts.After(end) {
			continue
		}
		totals[series.HourKey(ts)] += rec.Increment
	}

	return totals, nil
}
