package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPriceCache_DisabledByDefault(t *testing.T) {
	t.Setenv("ENABLE_PRICEFEED_CACHE", "")
	assert.Nil(t, GetPriceCache())
}

func TestGetPriceCache_NeverInProduction(t *testing.T) {
	t.Setenv("ENABLE_PRICEFEED_CACHE", "true")
	t.Setenv("API_ENV", "production")
	assert.Nil(t, GetPriceCache())
}

func TestPriceCache_SetGetClear(t *testing.T) {
	c := &PriceCache{store: make(map[int]*cacheEntry), ttl: time.Minute}

	_, found := c.Get(2024)
	assert.False(t, found)

	entries := []DynamicPriceEntry{{Datum: "2024-01-01T00:00:00", PriceExclTaxes: "0,10"}}
	c.Set(2024, entries)

	got, found := c.Get(2024)
	require.True(t, found)
	assert.Equal(t, entries, got)

	c.Clear()
	_, found = c.Get(2024)
	assert.False(t, found)
}

func TestPriceCache_Expiry(t *testing.T) {
	c := &PriceCache{store: make(map[int]*cacheEntry), ttl: -time.Second}
	c.Set(2024, []DynamicPriceEntry{{Datum: "x", PriceExclTaxes: "0,1"}})

	_, found := c.Get(2024)
	assert.False(t, found)
}

func TestPriceCache_NilSafe(t *testing.T) {
	var c *PriceCache
	c.Set(2024, nil)
	c.Clear()
	_, found := c.Get(2024)
	assert.False(t, found)
}
