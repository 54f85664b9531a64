package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/pkg/redis"
)

// rawValue is Yahoo's wrapped number format: {"raw": 12.4, "fmt": "12.40"}.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// quoteSummary is the response structure of the v10 quoteSummary API.
type quoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE                 rawValue `json:"trailingPE"`
				ForwardPE                  rawValue `json:"forwardPE"`
				DividendRate               rawValue `json:"dividendRate"`
				DividendYield              rawValue `json:"dividendYield"`
				TrailingAnnualDividendRate rawValue `json:"trailingAnnualDividendRate"`
				PreviousClose              rawValue `json:"previousClose"`
			} `json:"summaryDetail"`
			FinancialData struct {
				RecommendationKey string   `json:"recommendationKey"`
				TargetMeanPrice   rawValue `json:"targetMeanPrice"`
				CurrentPrice      rawValue `json:"currentPrice"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchFundamentals fetches the raw fundamentals payload for a symbol.
// Errors are returned as-is; degrading to the neutral fallback record is
// the normalizer's job, not the provider's.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (*contracts.RawFundamentals, error) {
	var cached contracts.RawFundamentals
	if hit, _ := c.cache.Get(ctx, redis.FundamentalsKey(symbol), &cached); hit {
		return &cached, nil
	}

	fullURL := fmt.Sprintf("%s/%s?modules=summaryDetail%%2CfinancialData",
		c.cfg.QuoteBaseURL, url.PathEscape(symbol))

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

	raw, err := parseQuoteSummary(body)
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	if err := c.cache.Set(ctx, redis.FundamentalsKey(symbol), raw, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache fundamentals")
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":         symbol,
		"recommendation": raw.RecommendationKey,
	}).Debug("Fetched fundamentals")
	return raw, nil
}

// parseQuoteSummary maps the quoteSummary JSON onto the raw contract.
func parseQuoteSummary(body []byte) (*contracts.RawFundamentals, error) {
	var summary quoteSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("decode quote summary: %w", err)
	}

	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote summary: no data returned")
	}

	result := summary.QuoteSummary.Result[0]

	raw := &contracts.RawFundamentals{
		TrailingPE:                 result.SummaryDetail.TrailingPE.Raw,
		ForwardPE:                  result.SummaryDetail.ForwardPE.Raw,
		DividendRate:               result.SummaryDetail.DividendRate.Raw,
		DividendYield:              result.SummaryDetail.DividendYield.Raw,
		TrailingAnnualDividendRate: result.SummaryDetail.TrailingAnnualDividendRate.Raw,
		RecommendationKey:          result.FinancialData.RecommendationKey,
		TargetMeanPrice:            result.FinancialData.TargetMeanPrice.Raw,
	}

	if result.FinancialData.CurrentPrice.Raw != nil {
		raw.LastClose = *result.FinancialData.CurrentPrice.Raw
	} else if result.SummaryDetail.PreviousClose.Raw != nil {
		raw.LastClose = *result.SummaryDetail.PreviousClose.Raw
	}

	return raw, nil
}
