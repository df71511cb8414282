package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CachedYearPath is the on-disk location of one year of raw price entries.
func CachedYearPath(dir string, year int) string {
	return filepath.Join(dir, fmt.Sprintf("dynamic_energy_prices_%d.json", year))
}

// LoadCachedYear reads a previously saved year of price entries.
func LoadCachedYear(dir string, year int) ([]DynamicPriceEntry, error) {
	raw, err := os.ReadFile(CachedYearPath(dir, year))
	if err != nil {
		return nil, err
	}
	var entries []DynamicPriceEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse cached prices for %d: %w", year, err)
	}
	return entries, nil
}

// SaveCachedYear writes a year of raw price entries to the cache directory.
func SaveCachedYear(dir string, year int, entries []DynamicPriceEntry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(CachedYearPath(dir, year), raw, 0o644)
}

// CachedYearUsable reports whether the on-disk cache for a year can serve a
// run without refetching: past years never change, the current year is
// refreshed once per day, future years are never cached.
func CachedYearUsable(dir string, year int, now time.Time) bool {
	info, err := os.Stat(CachedYearPath(dir, year))
	if err != nil {
		return false
	}
	if year < now.Year() {
		return true
	}
	if year > now.Year() {
		return false
	}
	y1, m1, d1 := info.ModTime().Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
