package model

// TaxConfig holds the tax and tariff parameters applied on top of the raw
// market price. All monetary values are in euro. Loaded once and constant
// for a whole run.
type TaxConfig struct {
	EnergyTax                     float64 // €/kWh, consumption side
	StorageCostsConsumption       float64 // €/kWh supplier margin on consumption
	StorageCostsProduction        float64 // €/kWh margin on production, typically negative
	VATPercent                    float64
	FixedSupplyCostsPerMonth      float64
	TransportCostsPerMonth        float64
	EnergyTaxCompensationPerMonth float64
	StopProductionOnNegativePrice bool
}

func (t TaxConfig) Validate() error {
	if t.VATPercent < 0 {
		return &ConfigError{Field: "vat_percent", Message: "must be >= 0"}
	}
	return nil
}

// EffectivePrices is the per-hour output of the price model.
type EffectivePrices struct {
	BuyPrice          float64 // €/kWh paid for energy drawn from the grid
	SellPrice         float64 // €/kWh received for energy fed back
	ProductionAllowed bool
}

// Prices converts a raw market price into effective buy and sell prices.
// The buy side carries energy tax, the consumption storage cost and VAT; the
// sell side carries only the production storage cost, applied exactly as
// configured with no clamping. Production is disallowed for the hour when the
// negative-price stop is enabled and the effective buy price is below zero.
func (t TaxConfig) Prices(rawPrice float64) EffectivePrices {
	buy := (rawPrice + t.EnergyTax + t.StorageCostsConsumption) * (1 + t.VATPercent/100)
	sell := rawPrice + t.StorageCostsProduction
	return EffectivePrices{
		BuyPrice:          buy,
		SellPrice:         sell,
		ProductionAllowed: !(t.StopProductionOnNegativePrice && buy < 0),
	}
}
