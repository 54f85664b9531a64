package contracts

// DataSource marks whether a fundamentals record came from a live provider
// response or from the neutral fallback.
type DataSource string

const (
	SourceLive     DataSource = "live"
	SourceFallback DataSource = "fallback"
)

// FundamentalsRecord is the normalized fundamentals contract consumed by
// the scoring engine.
type FundamentalsRecord struct {
	PriceToEarnings float64    `json:"price_to_earnings"` // 0 = unknown, skip the valuation rule
	DividendYield   float64    `json:"dividend_yield"`    // fraction, always in [0, 1]
	DividendAmount  float64    `json:"dividend_amount"`   // annual per-share amount, 0 = unknown
	AnalystRating   string     `json:"analyst_rating"`    // provider recommendation key
	ConsensusScore  float64    `json:"consensus_score"`   // 0-5
	TargetPrice     float64    `json:"target_price"`      // 0 = unknown
	Source          DataSource `json:"data_source"`
}

// RawFundamentals is the loosely-typed provider payload before
// normalization. Every field may be absent.
type RawFundamentals struct {
	TrailingPE                 *float64 `json:"trailing_pe,omitempty"`
	ForwardPE                  *float64 `json:"forward_pe,omitempty"`
	DividendRate               *float64 `json:"dividend_rate,omitempty"`
	TrailingAnnualDividendRate *float64 `json:"trailing_annual_dividend_rate,omitempty"`
	DividendYield              *float64 `json:"dividend_yield,omitempty"`
	RecommendationKey          string   `json:"recommendation_key,omitempty"`
	TargetMeanPrice            *float64 `json:"target_mean_price,omitempty"`
	LastClose                  float64  `json:"last_close,omitempty"`
}
