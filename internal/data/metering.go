package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dynamic-energy-costs/internal/series"

	"go.uber.org/zap"
)

// MeteringClient fetches historical hourly sensor increments from a
// VictoriaMetrics instance. Sensors are cumulative energy counters; the
// per-hour increment is computed server-side with the delta function.
type MeteringClient struct {
	BaseURL string // query_range endpoint, e.g. http://host:8428/api/v1/query_range
	Client  *http.Client

	logger *zap.Logger
}

func NewMeteringClient(baseURL string, logger *zap.Logger) *MeteringClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeteringClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type queryRangeResponse struct {
	Data struct {
		Result []struct {
			// Pairs of [unix_seconds, "value"]; the sample value comes back
			// as a string.
			Values [][2]json.RawMessage `json:"values"`
		} `json:"result"`
	} `json:"data"`
}

// FetchHourly queries delta(<sensor>_value[1h]) for every sensor over
// [start, end] at one-hour steps and sums the series into a single
// hour-keyed kWh map. Hours with no samples are simply absent; gap handling
// is the alignment layer's job.
func (c *MeteringClient) FetchHourly(sensorIDs []string, start, end time.Time) (map[string]float64, error) {
	totals := map[string]float64{}

	for _, sensorID := range sensorIDs {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid metering URL: %w", err)
		}
		q := u.Query()
		q.Set("query", fmt.Sprintf("delta(%s_value[1h])", sensorID))
		q.Set("start", strconv.FormatInt(start.Unix(), 10))
		q.Set("end", strconv.FormatInt(end.Unix(), 10))
		q.Set("step", "3600s")
		u.RawQuery = q.Encode()

		c.logger.Debug("querying metering backend",
			zap.String("sensor", sensorID),
			zap.Time("start", start),
			zap.Time("end", end))

		resp, err := c.Client.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("metering query for %s: %w", sensorID, err)
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				err = fmt.Errorf("metering query for %s: status %d", sensorID, resp.StatusCode)
				return
			}
			var parsed queryRangeResponse
			if decErr := json.NewDecoder(resp.Body).Decode(&parsed); decErr != nil {
				err = fmt.Errorf("decode metering response for %s: %w", sensorID, decErr)
				return
			}
			for _, result := range parsed.Data.Result {
				for _, pair := range result.Values {
					var sec float64
					if json.Unmarshal(pair[0], &sec) != nil {
						continue
					}
					var valStr string
					if json.Unmarshal(pair[1], &valStr) != nil {
						continue
					}
					val, convErr := strconv.ParseFloat(valStr, 64)
					if convErr != nil {
						continue
					}
					hour := time.Unix(int64(sec), 0).Local()
					totals[series.HourKey(hour)] += val
				}
			}
		}()
		if err != nil {
			return nil, err
		}
	}

	return totals, nil
}
