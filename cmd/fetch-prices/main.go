package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"dynamic-energy-costs/internal/config"
	"dynamic-energy-costs/internal/data"
	"dynamic-energy-costs/internal/logging"

	"go.uber.org/zap"
)

// fetch-prices warms the on-disk yearly price cache for the configured date
// range. Past years are fetched once and kept forever; the current year is
// refreshed at most once per day.
func main() {
	cfgPath := flag.String("config", "config.yaml", "Path to YAML config")
	force := flag.Bool("force", false, "Refetch even when the cache is usable")
	flag.Parse()

	logger, err := logging.NewLogger("fetch-prices")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	if cfg.DataSource.PriceCacheDir == "" {
		logger.Fatal("config has no data_source.price_cache_dir")
	}

	start, end, err := cfg.Range.Bounds()
	if err != nil {
		logger.Fatal("invalid range", zap.Error(err))
	}

	client := data.NewPriceFeedClient(cfg.DataSource.PriceAPIKey, cfg.DataSource.PriceAPIURL, logger)
	now := time.Now()

	for year := start.Year(); year <= end.Year(); year++ {
		if !*force && data.CachedYearUsable(cfg.DataSource.PriceCacheDir, year, now) {
			logger.Info("cache up to date", zap.Int("year", year))
			continue
		}
		entries, err := client.FetchYearRaw(year)
		if err != nil {
			logger.Fatal("fetch failed", zap.Int("year", year), zap.Error(err))
		}
		if err := data.SaveCachedYear(cfg.DataSource.PriceCacheDir, year, entries); err != nil {
			logger.Fatal("cache write failed", zap.Int("year", year), zap.Error(err))
		}
		logger.Info("cached prices",
			zap.Int("year", year),
			zap.Int("entries", len(entries)),
			zap.String("path", data.CachedYearPath(cfg.DataSource.PriceCacheDir, year)))
	}
}
