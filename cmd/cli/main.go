package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dynamic-energy-costs/internal/analysis"
	"dynamic-energy-costs/internal/config"
	"dynamic-energy-costs/internal/data"
	"dynamic-energy-costs/internal/logging"
	"dynamic-energy-costs/internal/model"
	"dynamic-energy-costs/internal/series"
	"dynamic-energy-costs/internal/sim"
	"dynamic-energy-costs/internal/strategy"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config config.yaml --out results [--ledger]")
	fmt.Println("  cli compare --config config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes a monthly summary CSV (and optionally the hour ledger)")
	fmt.Println("  - compare runs a no-battery baseline plus every strategy and prints savings")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "results", "Output directory")
	ledger := fs.Bool("ledger", false, "Also write the per-hour ledger CSV")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	logger := mustLogger()
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(logger, "invalid config", err)
	}

	observations, err := loadInputs(cfg, logger)
	if err != nil {
		fatal(logger, "loading inputs", err)
	}

	var batt *model.Battery
	var strat strategy.Strategy
	if cfg.Battery.Enabled {
		batt, err = model.NewBattery(cfg.Battery.ToParams(), cfg.Battery.InitialSOC())
		if err != nil {
			fatal(logger, "invalid battery", err)
		}
		strat, err = strategy.New(cfg.Strategy.Name, cfg.Strategy.Params())
		if err != nil {
			fatal(logger, "invalid strategy", err)
		}
	}

	res, err := sim.New().Run(observations, cfg.Taxes.ToModel(), batt, strat)
	if err != nil {
		fatal(logger, "simulation failed", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatal(logger, "creating output directory", err)
	}
	stamp := time.Now().Format("20060102_150405")
	summaryPath := filepath.Join(*outDir, fmt.Sprintf("results_%s.csv", stamp))
	if err := sim.WriteSummaryCSV(summaryPath, res.Months, res.Total); err != nil {
		fatal(logger, "writing summary", err)
	}
	fmt.Printf("Wrote summary for %d hours to %s\n", len(res.Hours), summaryPath)

	if *ledger {
		ledgerPath := filepath.Join(*outDir, fmt.Sprintf("ledger_%s.csv", stamp))
		if err := sim.WriteLedgerCSV(ledgerPath, res.Hours); err != nil {
			fatal(logger, "writing ledger", err)
		}
		fmt.Printf("Wrote %d ledger rows to %s\n", len(res.Hours), ledgerPath)
	}

	fmt.Printf("Total costs: €%.2f  income: €%.2f  net: €%.2f\n",
		res.Total.Costs, res.Total.Income, res.Total.NetCosts())
	if batt != nil {
		fmt.Printf("Battery-adjusted costs: €%.2f  income: €%.2f  net: €%.2f  final SOC: %.2f kWh\n",
			res.Total.BatteryAdjustedCosts, res.Total.BatteryAdjustedIncome,
			res.Total.NetBatteryAdjustedCosts(), res.FinalSOCKWh)
	}
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	logger := mustLogger()
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal(logger, "invalid config", err)
	}
	if cfg.Battery.CapacityKWh <= 0 {
		fatal(logger, "invalid config", fmt.Errorf("compare requires battery parameters"))
	}

	observations, err := loadInputs(cfg, logger)
	if err != nil {
		fatal(logger, "loading inputs", err)
	}

	params := cfg.Strategy.Params()
	specs := []analysis.ScenarioSpec{
		{Name: "self_sufficiency", Strategy: "self_sufficiency"},
		{Name: "dynamic_cost_optimization", Strategy: "dynamic_cost_optimization", Params: params},
	}

	cmp, err := analysis.Compare(observations, cfg.Taxes.ToModel(), cfg.Battery.ToParams(), cfg.Battery.InitialSOC(), specs)
	if err != nil {
		fatal(logger, "comparison failed", err)
	}

	fmt.Printf("%-28s %-12s %-12s %-12s %-10s\n", "scenario", "net cost", "costs", "income", "savings")
	printScenario(cmp.Baseline)
	for _, s := range cmp.Scenarios {
		printScenario(s)
	}
}

func printScenario(s analysis.Scenario) {
	fmt.Printf("%-28s €%-11.2f €%-11.2f €%-11.2f €%-9.2f\n",
		s.Name,
		s.Total.NetBatteryAdjustedCosts(),
		s.Total.BatteryAdjustedCosts,
		s.Total.BatteryAdjustedIncome,
		s.SavingsVsBaseline,
	)
}

// loadInputs assembles the three hourly series from the configured sources
// and aligns them over the configured range.
func loadInputs(cfg *config.Config, logger *zap.Logger) ([]model.HourlyObservation, error) {
	start, end, err := cfg.Range.Bounds()
	if err != nil {
		return nil, err
	}

	var consumption, production map[string]float64
	switch cfg.DataSource.Type {
	case "export_json":
		consumption, err = data.LoadExportJSON(cfg.DataSource.ExportJSONPath, cfg.DataSource.ConsumptionSensors, start, end)
		if err != nil {
			return nil, fmt.Errorf("consumption from export: %w", err)
		}
		production, err = data.LoadExportJSON(cfg.DataSource.ExportJSONPath, cfg.DataSource.ProductionSensors, start, end)
		if err != nil {
			return nil, fmt.Errorf("production from export: %w", err)
		}
	case "victoriametrics":
		client := data.NewMeteringClient(cfg.DataSource.VictoriaMetricsURL, logger)
		consumption, err = client.FetchHourly(cfg.DataSource.ConsumptionSensors, start, end)
		if err != nil {
			return nil, fmt.Errorf("consumption from metering: %w", err)
		}
		production, err = client.FetchHourly(cfg.DataSource.ProductionSensors, start, end)
		if err != nil {
			return nil, fmt.Errorf("production from metering: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported data source type %q", cfg.DataSource.Type)
	}

	prices, err := loadPrices(cfg, start, end, logger)
	if err != nil {
		return nil, err
	}

	return series.Align(start, end, consumption, production, prices, cfg.Gap.Options())
}

func loadPrices(cfg *config.Config, start, end time.Time, logger *zap.Logger) (map[string]float64, error) {
	client := data.NewPriceFeedClient(cfg.DataSource.PriceAPIKey, cfg.DataSource.PriceAPIURL, logger)
	cacheDir := cfg.DataSource.PriceCacheDir
	now := time.Now()

	out := map[string]float64{}
	for year := start.Year(); year <= end.Year(); year++ {
		var entries []data.DynamicPriceEntry
		if cacheDir != "" && data.CachedYearUsable(cacheDir, year, now) {
			cached, err := data.LoadCachedYear(cacheDir, year)
			if err != nil {
				logger.Warn("unreadable price cache, refetching", zap.Int("year", year), zap.Error(err))
			} else {
				entries = cached
			}
		}
		if entries == nil {
			fetched, err := client.FetchYearRaw(year)
			if err != nil {
				return nil, fmt.Errorf("prices for %d: %w", year, err)
			}
			entries = fetched
			if cacheDir != "" {
				if err := data.SaveCachedYear(cacheDir, year, entries); err != nil {
					logger.Warn("failed to cache prices", zap.Int("year", year), zap.Error(err))
				}
			}
		}
		if err := data.MergePriceEntries(out, entries); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func mustLogger() *zap.Logger {
	logger, err := logging.NewLogger("cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func fatal(logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
