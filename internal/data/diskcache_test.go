package data

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedYear_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	entries := []DynamicPriceEntry{
		{Datum: "2023-06-01T00:00:00", PriceExclTaxes: "0,11"},
		{Datum: "2023-06-01T01:00:00", PriceExclTaxes: "0,10"},
	}

	require.NoError(t, SaveCachedYear(dir, 2023, entries))
	got, err := LoadCachedYear(dir, 2023)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestLoadCachedYear_Missing(t *testing.T) {
	_, err := LoadCachedYear(t.TempDir(), 1999)
	require.Error(t, err)
}

func TestCachedYearUsable(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	// No file at all.
	assert.False(t, CachedYearUsable(dir, 2023, now))

	require.NoError(t, SaveCachedYear(dir, 2023, nil))
	require.NoError(t, SaveCachedYear(dir, 2024, nil))
	require.NoError(t, SaveCachedYear(dir, 2025, nil))

	// Past years are served forever.
	assert.True(t, CachedYearUsable(dir, 2023, now))
	// Future years never are.
	assert.False(t, CachedYearUsable(dir, 2025, now))

	// The current year is only fresh when written today.
	fresh := time.Now()
	require.NoError(t, SaveCachedYear(dir, fresh.Year(), nil))
	assert.True(t, CachedYearUsable(dir, fresh.Year(), fresh))
	stale := time.Date(2024, 6, 16, 0, 30, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(CachedYearPath(dir, 2024), stale.AddDate(0, 0, -1), stale.AddDate(0, 0, -1)))
	assert.False(t, CachedYearUsable(dir, 2024, stale))
}
