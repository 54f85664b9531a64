package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/pkg/redis"
)

// yahooChart is the response structure of the v8 chart API. OHLCV fields
// arrive as interface{} because the API emits null for holiday bars.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyBars fetches the daily price series for a symbol. The series
// is ascending chronological with strictly unique timestamps, ready for
// indicator computation.
func (c *Client) FetchDailyBars(ctx context.Context, symbol string) ([]contracts.PricePoint, error) {
	var cached []contracts.PricePoint
	if hit, _ := c.cache.Get(ctx, redis.SeriesKey(symbol), &cached); hit {
		return cached, nil
	}

	fullURL := fmt.Sprintf("%s/%s?interval=1d&range=%s",
		c.cfg.ChartBaseURL, url.PathEscape(symbol), c.cfg.Range)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	series, err := parseChartResponse(body)
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	if err := c.cache.Set(ctx, redis.SeriesKey(symbol), series, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache price series")
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(series),
	}).Debug("Fetched daily bars")
	return series, nil
}

// parseChartResponse parses the chart JSON into a clean price series.
// Null bars (market holidays) are skipped, and duplicate or out-of-order
// timestamps are dropped after sorting.
func parseChartResponse(body []byte) ([]contracts.PricePoint, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := make([]contracts.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		closePx := toFloat(quote.Close[i])
		if closePx == 0 {
			continue
		}

		series = append(series, contracts.PricePoint{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   toFloat(at(quote.Open, i)),
			High:   toFloat(at(quote.High, i)),
			Low:    toFloat(at(quote.Low, i)),
			Close:  closePx,
			Volume: toFloat(at(quote.Volume, i)),
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })

	deduped := series[:0]
	for i, p := range series {
		if i > 0 && !p.Time.After(deduped[len(deduped)-1].Time) {
			continue
		}
		deduped = append(deduped, p)
	}

	return deduped, nil
}

func at(values []interface{}, i int) interface{} {
	if i < len(values) {
		return values[i]
	}
	return nil
}

// toFloat converts the loosely typed JSON values to float64.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
