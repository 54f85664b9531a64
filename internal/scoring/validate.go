package scoring

import (
	"fmt"
	"math"
)

// ValidationError reports a structurally invalid configuration.
// Raised at engine construction, never per evaluation call.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const weightEpsilon = 1e-9

// Validate checks all required constraints on a scoring configuration.
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.PresetID == "" {
		return ValidationError{"meta.preset_id", "required"}
	}

	// === Indicators ===
	if cfg.Indicators.RSIPeriod <= 0 {
		return ValidationError{"indicators.rsi_period", "must be > 0"}
	}
	if cfg.Indicators.BollingerWindow <= 1 {
		return ValidationError{"indicators.bollinger_window", "must be > 1"}
	}
	if cfg.Indicators.BollingerMult <= 0 {
		return ValidationError{"indicators.bollinger_mult", "must be > 0"}
	}
	if cfg.Indicators.SMAShort <= 0 || cfg.Indicators.SMAMedium <= 0 || cfg.Indicators.SMALong <= 0 {
		return ValidationError{"indicators.sma", "windows must be > 0"}
	}
	if cfg.Indicators.SMAShort >= cfg.Indicators.SMAMedium || cfg.Indicators.SMAMedium >= cfg.Indicators.SMALong {
		return ValidationError{"indicators.sma", "windows must satisfy short < medium < long"}
	}
	if cfg.Indicators.MACDFast <= 0 || cfg.Indicators.MACDSignal <= 0 {
		return ValidationError{"indicators.macd", "periods must be > 0"}
	}
	if cfg.Indicators.MACDFast >= cfg.Indicators.MACDSlow {
		return ValidationError{"indicators.macd", "fast period must be < slow period"}
	}

	// === Technical rules ===
	if cfg.Technical.RSIOversold <= 0 || cfg.Technical.RSIOverbought >= 100 {
		return ValidationError{"technical.rsi", "thresholds must be within (0, 100)"}
	}
	if cfg.Technical.RSIOversold >= cfg.Technical.RSIOverbought {
		return ValidationError{"technical.rsi", "oversold must be < overbought"}
	}
	if cfg.Technical.MaxPoints <= 0 {
		return ValidationError{"technical.max_points", "must be > 0"}
	}

	// === Fundamental rules ===
	if cfg.Fundamental.PECheap <= 0 {
		return ValidationError{"fundamental.pe_cheap", "must be > 0"}
	}
	if cfg.Fundamental.PECheap >= cfg.Fundamental.PEExpensive {
		return ValidationError{"fundamental.pe", "cheap threshold must be < expensive threshold"}
	}
	if cfg.Fundamental.YieldAttractive <= 0 || cfg.Fundamental.YieldAttractive >= 1 {
		return ValidationError{"fundamental.yield_attractive", "must be a fraction in (0, 1)"}
	}
	if cfg.Fundamental.MaxPoints <= 0 {
		return ValidationError{"fundamental.max_points", "must be > 0"}
	}

	// === Weights ===
	for _, w := range []struct {
		field string
		value float64
	}{
		{"weights.technical", cfg.Weights.Technical},
		{"weights.fundamental", cfg.Weights.Fundamental},
		{"weights.consensus", cfg.Weights.Consensus},
		{"weights.sentiment", cfg.Weights.Sentiment},
	} {
		if w.value < 0 || w.value > 1 {
			return ValidationError{w.field, "must be in range [0, 1]"}
		}
	}
	if math.Abs(cfg.Weights.Sum()-1.0) > weightEpsilon {
		return ValidationError{"weights", fmt.Sprintf("must sum to 1.0, got %.6f", cfg.Weights.Sum())}
	}

	// === Bands ===
	b := cfg.Bands
	if !(b.StrongBuy > b.Buy && b.Buy > b.Hold && b.Hold > b.Sell) {
		return ValidationError{"bands", "cutoffs must satisfy strong_buy > buy > hold > sell"}
	}
	if b.StrongBuy > 5 || b.Sell < 0 {
		return ValidationError{"bands", "cutoffs must be within [0, 5]"}
	}

	// === News ===
	if cfg.News.FreshnessHours <= 0 {
		return ValidationError{"news.freshness_hours", "must be > 0"}
	}
	if cfg.News.MaxItems <= 0 {
		return ValidationError{"news.max_items", "must be > 0"}
	}
	if len(cfg.News.PositiveKeywords) == 0 || len(cfg.News.NegativeKeywords) == 0 {
		return ValidationError{"news.keywords", "both polarity lists are required"}
	}

	return nil
}
