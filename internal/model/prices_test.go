package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTaxes() TaxConfig {
	return TaxConfig{
		EnergyTax:               0.1088,
		StorageCostsConsumption: 0.02,
		StorageCostsProduction:  -0.02,
		VATPercent:              21,
	}
}

func TestPrices_BuyCarriesTaxStorageAndVAT(t *testing.T) {
	taxes := testTaxes()
	p := taxes.Prices(0.10)
	// (0.10 + 0.1088 + 0.02) * 1.21
	assert.InDelta(t, 0.2288*1.21, p.BuyPrice, 1e-9)
}

func TestPrices_SellCarriesOnlyProductionStorage(t *testing.T) {
	taxes := testTaxes()

	p := taxes.Prices(0.10)
	assert.InDelta(t, 0.08, p.SellPrice, 1e-9)

	// Negative raw prices flow through unclamped.
	p = taxes.Prices(-0.05)
	assert.InDelta(t, -0.07, p.SellPrice, 1e-9)
}

func TestPrices_NegativePriceStop(t *testing.T) {
	taxes := testTaxes()
	taxes.StopProductionOnNegativePrice = true

	// Raw price low enough to push the buy price below zero.
	p := taxes.Prices(-0.20)
	assert.Less(t, p.BuyPrice, 0.0)
	assert.False(t, p.ProductionAllowed)

	// Negative raw price but positive buy price: production stays on.
	p = taxes.Prices(-0.05)
	assert.Greater(t, p.BuyPrice, 0.0)
	assert.True(t, p.ProductionAllowed)
}

func TestPrices_StopDisabledAllowsProduction(t *testing.T) {
	taxes := testTaxes()
	p := taxes.Prices(-0.50)
	assert.Less(t, p.BuyPrice, 0.0)
	assert.True(t, p.ProductionAllowed)
}

func TestTaxConfig_Validate(t *testing.T) {
	taxes := testTaxes()
	assert.NoError(t, taxes.Validate())

	taxes.VATPercent = -1
	assert.Error(t, taxes.Validate())
}

func TestActionFromDelta(t *testing.T) {
	assert.Equal(t, ActionCharging, ActionFromDelta(1.5))
	assert.Equal(t, ActionDischarging, ActionFromDelta(-0.2))
	assert.Equal(t, ActionIdle, ActionFromDelta(0))
}
