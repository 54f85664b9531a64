package scoring

// Config is the full, versioned configuration of the scoring engine.
// Every threshold, weight and point denominator the engine uses lives
// here; the engine itself carries no literals. Historical scoring
// variants are expressed as named presets of this struct (see presets.go)
// so behavior cannot drift silently when a variant changes.
type Config struct {
	Meta        Meta             `yaml:"meta" json:"meta"`
	Indicators  IndicatorWindows `yaml:"indicators" json:"indicators"`
	Technical   TechnicalRules   `yaml:"technical" json:"technical"`
	Fundamental FundamentalRules `yaml:"fundamental" json:"fundamental"`
	Weights     Weights          `yaml:"weights" json:"weights"`
	Bands       Bands            `yaml:"bands" json:"bands"`
	News        NewsRules        `yaml:"news" json:"news"`
}

// Meta identifies the preset.
type Meta struct {
	PresetID string `yaml:"preset_id" json:"preset_id"`
	Version  string `yaml:"version" json:"version"`
}

// IndicatorWindows holds the indicator periods.
type IndicatorWindows struct {
	RSIPeriod       int     `yaml:"rsi_period" json:"rsi_period"`
	BollingerWindow int     `yaml:"bollinger_window" json:"bollinger_window"`
	BollingerMult   float64 `yaml:"bollinger_mult" json:"bollinger_mult"`
	SMAShort        int     `yaml:"sma_short" json:"sma_short"`
	SMAMedium       int     `yaml:"sma_medium" json:"sma_medium"`
	SMALong         int     `yaml:"sma_long" json:"sma_long"`
	MACDFast        int     `yaml:"macd_fast" json:"macd_fast"`
	MACDSlow        int     `yaml:"macd_slow" json:"macd_slow"`
	MACDSignal      int     `yaml:"macd_signal" json:"macd_signal"`
}

// TechnicalRules holds the technical sub-score thresholds and the
// versioned point denominator. MaxPoints must match the indicator set
// enabled for the preset: adding or removing an indicator without
// updating it recalibrates the whole score.
type TechnicalRules struct {
	RSIOversold   float64 `yaml:"rsi_oversold" json:"rsi_oversold"`
	RSIOverbought float64 `yaml:"rsi_overbought" json:"rsi_overbought"`

	UseBollinger   bool `yaml:"use_bollinger" json:"use_bollinger"`
	UseSMAMedium   bool `yaml:"use_sma_medium" json:"use_sma_medium"`
	UseGoldenCross bool `yaml:"use_golden_cross" json:"use_golden_cross"`
	UseMACD        bool `yaml:"use_macd" json:"use_macd"`

	MaxPoints float64 `yaml:"max_points" json:"max_points"`
}

// FundamentalRules holds the fundamental sub-score thresholds.
type FundamentalRules struct {
	PECheap         float64 `yaml:"pe_cheap" json:"pe_cheap"`
	PEExpensive     float64 `yaml:"pe_expensive" json:"pe_expensive"`
	YieldAttractive float64 `yaml:"yield_attractive" json:"yield_attractive"` // fraction, e.g. 0.03 = 3%
	MaxPoints       float64 `yaml:"max_points" json:"max_points"`
}

// Weights blends the four sub-scores into the final score. Must sum to 1.
type Weights struct {
	Technical   float64 `yaml:"technical" json:"technical"`
	Fundamental float64 `yaml:"fundamental" json:"fundamental"`
	Consensus   float64 `yaml:"consensus" json:"consensus"`
	Sentiment   float64 `yaml:"sentiment" json:"sentiment"`
}

// Sum returns the sum of all weights.
func (w Weights) Sum() float64 {
	return w.Technical + w.Fundamental + w.Consensus + w.Sentiment
}

// Bands holds the recommendation cutoffs applied to the final score.
// Bands are read top-down: >= StrongBuy, >= Buy, > Hold, > Sell, else
// strong sell. The boundary conventions are pinned by tests.
type Bands struct {
	StrongBuy float64 `yaml:"strong_buy" json:"strong_buy"`
	Buy       float64 `yaml:"buy" json:"buy"`
	Hold      float64 `yaml:"hold" json:"hold"`
	Sell      float64 `yaml:"sell" json:"sell"`
}

// NewsRules holds the sentiment scorer configuration.
type NewsRules struct {
	FreshnessHours   int      `yaml:"freshness_hours" json:"freshness_hours"`
	MaxItems         int      `yaml:"max_items" json:"max_items"`
	PositiveKeywords []string `yaml:"positive_keywords" json:"positive_keywords"`
	NegativeKeywords []string `yaml:"negative_keywords" json:"negative_keywords"`
}
