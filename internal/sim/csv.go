package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteLedgerCSV writes one row per processed hour. This is the primary
// artifact for "what happened" in a run.
func WriteLedgerCSV(path string, hours []HourResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"hour",
		"consumption_kwh",
		"production_kwh",
		"raw_price",
		"buy_price",
		"sell_price",
		"production_stopped",
		"action",
		"requested_kwh",
		"grid_delta_kwh",
		"soc_start_kwh",
		"soc_end_kwh",
		"raw_cost",
		"raw_income",
		"net_grid_kwh",
		"adjusted_cost",
		"adjusted_income",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, h := range hours {
		row := []string{
			h.Hour.Format("2006-01-02T15"),
			fmtFloat(h.ConsumptionKWh),
			fmtFloat(h.ProductionKWh),
			fmtFloat(h.RawPrice),
			fmtFloat(h.BuyPrice),
			fmtFloat(h.SellPrice),
			strconv.FormatBool(h.ProductionStopped),
			string(h.Action),
			fmtFloat(h.RequestedKWh),
			fmtFloat(h.GridDeltaKWh),
			fmtFloat(h.SOCStartKWh),
			fmtFloat(h.SOCEndKWh),
			fmtFloat(h.RawCost),
			fmtFloat(h.RawIncome),
			fmtFloat(h.NetGridKWh),
			fmtFloat(h.AdjustedCost),
			fmtFloat(h.AdjustedIncome),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteSummaryCSV writes the range totals followed by the monthly breakdown.
func WriteSummaryCSV(path string, months []MonthlySummary, total TotalSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	totals := [][]string{
		{"Metric", "Value"},
		{"Total Costs (EUR)", fmtMoney(total.Costs)},
		{"Total Income (EUR)", fmtMoney(total.Income)},
		{"Battery-Adjusted Costs (EUR)", fmtMoney(total.BatteryAdjustedCosts)},
		{"Battery-Adjusted Income (EUR)", fmtMoney(total.BatteryAdjustedIncome)},
		{"Total Consumption (kWh)", fmtMoney(total.ConsumptionKWh)},
		{"Total Production (kWh)", fmtMoney(total.ProductionKWh)},
		{"Total Charged (kWh)", fmtMoney(total.ChargedKWh)},
		{"Total Discharged (kWh)", fmtMoney(total.DischargedKWh)},
		{},
	}
	for _, row := range totals {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	header := []string{
		"Month",
		"Costs (EUR)",
		"Income (EUR)",
		"Consumption (kWh)",
		"Production (kWh)",
		"Battery-Adjusted Costs (EUR)",
		"Battery-Adjusted Income (EUR)",
		"Fixed Supply Costs (EUR)",
		"Transport Costs (EUR)",
		"Energy Tax Compensation (EUR)",
		"Net Monthly Costs (EUR)",
		"Net Battery-Adjusted Costs (EUR)",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, m := range months {
		row := []string{
			m.Month,
			fmtMoney(m.Costs),
			fmtMoney(m.Income),
			fmtMoney(m.ConsumptionKWh),
			fmtMoney(m.ProductionKWh),
			fmtMoney(m.BatteryAdjustedCosts),
			fmtMoney(m.BatteryAdjustedIncome),
			fmtMoney(m.FixedSupplyCosts),
			fmtMoney(m.TransportCosts),
			fmtMoney(m.EnergyTaxCompensation),
			fmtMoney(m.NetCosts()),
			fmtMoney(m.NetBatteryAdjustedCosts()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fmtMoney(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
