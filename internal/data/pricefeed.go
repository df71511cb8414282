package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dynamic-energy-costs/internal/series"

	"go.uber.org/zap"
)

// DynamicPriceEntry is one hourly row from the dynamic price feed. Timestamps
// come in as "2024-12-31T17:00:00" or "2024-12-31 17:00:00"; prices are
// comma-decimal strings excluding taxes.
type DynamicPriceEntry struct {
	Datum          string `json:"datum"`
	PriceExclTaxes string `json:"prijs_excl_belastingen"`
}

// PriceFeedError represents an error from the dynamic price API.
type PriceFeedError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *PriceFeedError) Error() string {
	return e.Message
}

// PriceFeedClient fetches hourly dynamic energy prices, one calendar year per
// request.
type PriceFeedClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client

	logger *zap.Logger
}

func NewPriceFeedClient(apiKey, baseURL string, logger *zap.Logger) *PriceFeedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceFeedClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchYearRaw fetches the raw price entries for one calendar year.
// Responses may be served from the in-memory cache when enabled.
func (c *PriceFeedClient) FetchYearRaw(year int) ([]DynamicPriceEntry, error) {
	if err := c.validateAPIKey(); err != nil {
		return nil, err
	}

	if cache := GetPriceCache(); cache != nil {
		if entries, found := cache.Get(year); found {
			c.logger.Debug("price cache hit", zap.Int("year", year), zap.Int("entries", len(entries)))
			return entries, nil
		}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("period", "jaar")
	q.Set("year", strconv.Itoa(year))
	q.Set("type", "json")
	q.Set("key", c.APIKey)
	u.RawQuery = q.Encode()

	c.logger.Info("fetching dynamic prices", zap.Int("year", year), zap.String("host", u.Host))

	start := time.Now()
	resp, err := c.Client.Get(u.String())
	if err != nil {
		c.logger.Error("price feed request failed", zap.Int("year", year), zap.Error(err))
		return nil, fmt.Errorf("price feed request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("price feed response",
		zap.Int("year", year),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &PriceFeedError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &PriceFeedError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &PriceFeedError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("price feed returned status %d", resp.StatusCode),
		}
	}

	var entries []DynamicPriceEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode price feed response: %w", err)
	}

	if cache := GetPriceCache(); cache != nil {
		cache.Set(year, entries)
	}

	return entries, nil
}

// FetchRange fetches every year overlapping [start, end] and merges the
// normalized prices into one hour-keyed map (€/kWh).
func (c *PriceFeedClient) FetchRange(start, end time.Time) (map[string]float64, error) {
	out := map[string]float64{}
	for year := start.Year(); year <= end.Year(); year++ {
		entries, err := c.FetchYearRaw(year)
		if err != nil {
			return nil, err
		}
		if err := MergePriceEntries(out, entries); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MergePriceEntries normalizes raw feed entries into dst, keyed by hour.
// Malformed entries are skipped; the feed occasionally carries them.
func MergePriceEntries(dst map[string]float64, entries []DynamicPriceEntry) error {
	for _, e := range entries {
		ts, err := parseFeedTimestamp(e.Datum)
		if err != nil {
			continue
		}
		price, err := parseCommaDecimal(e.PriceExclTaxes)
		if err != nil {
			continue
		}
		dst[series.HourKey(ts)] = price
	}
	return nil
}

func parseFeedTimestamp(s string) (time.Time, error) {
	if strings.Contains(s, "T") {
		return time.Parse("2006-01-02T15:04:05", s)
	}
	return time.Parse("2006-01-02 15:04:05", s)
}

// parseCommaDecimal parses the feed's "0,1234" price notation.
func parseCommaDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

func (c *PriceFeedClient) validateAPIKey() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &PriceFeedError{
			Code:    "MISSING_API_KEY",
			Message: "API key is required",
		}
	}
	return nil
}
