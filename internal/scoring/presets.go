package scoring

import "fmt"

// Preset ids. Each historical scoring variant is a named, pinned
// configuration; tests assert their outputs so a preset cannot drift.
const (
	PresetClassicV1  = "classic-v1"
	PresetExtendedV6 = "extended-v6"
)

// DefaultPresetID is the preset used when none is configured.
const DefaultPresetID = PresetExtendedV6

var defaultPositiveKeywords = []string{
	"beats", "surge", "upgrade", "record", "growth", "profit",
	"partnership", "breakthrough", "rally", "dividend increase",
	"buyback", "strong",
}

var defaultNegativeKeywords = []string{
	"misses", "lawsuit", "downgrade", "loss", "investigation",
	"recall", "layoff", "warning", "plunge", "fraud", "decline", "weak",
}

// Preset returns a copy of the named built-in configuration.
func Preset(id string) (Config, error) {
	switch id {
	case PresetClassicV1:
		return classicV1(), nil
	case PresetExtendedV6:
		return extendedV6(), nil
	default:
		return Config{}, fmt.Errorf("unknown scoring preset %q", id)
	}
}

// PresetIDs lists the built-in presets.
func PresetIDs() []string {
	return []string{PresetClassicV1, PresetExtendedV6}
}

// extendedV6 is the current full indicator set: RSI, Bollinger, long and
// medium SMA, golden cross, MACD. Max achievable points 5.5.
func extendedV6() Config {
	return Config{
		Meta: Meta{PresetID: PresetExtendedV6, Version: "6"},
		Indicators: IndicatorWindows{
			RSIPeriod:       14,
			BollingerWindow: 20,
			BollingerMult:   2.0,
			SMAShort:        20,
			SMAMedium:       50,
			SMALong:         200,
			MACDFast:        12,
			MACDSlow:        26,
			MACDSignal:      9,
		},
		Technical: TechnicalRules{
			RSIOversold:    35,
			RSIOverbought:  70,
			UseBollinger:   true,
			UseSMAMedium:   true,
			UseGoldenCross: true,
			UseMACD:        true,
			MaxPoints:      5.5,
		},
		Fundamental: FundamentalRules{
			PECheap:         15,
			PEExpensive:     32.5,
			YieldAttractive: 0.03,
			MaxPoints:       2,
		},
		Weights: Weights{
			Technical:   0.40,
			Fundamental: 0.20,
			Consensus:   0.20,
			Sentiment:   0.20,
		},
		Bands: Bands{
			StrongBuy: 3.8,
			Buy:       3.0,
			Hold:      2.2,
			Sell:      1.5,
		},
		News: NewsRules{
			FreshnessHours:   48,
			MaxItems:         6,
			PositiveKeywords: defaultPositiveKeywords,
			NegativeKeywords: defaultNegativeKeywords,
		},
	}
}

// classicV1 is the original three-indicator variant: RSI, long SMA and
// MACD only, with the tighter RSI 30 oversold bound and a 3-point
// denominator to match the reduced set.
func classicV1() Config {
	cfg := extendedV6()
	cfg.Meta = Meta{PresetID: PresetClassicV1, Version: "1"}
	cfg.Technical.RSIOversold = 30
	cfg.Technical.UseBollinger = false
	cfg.Technical.UseSMAMedium = false
	cfg.Technical.UseGoldenCross = false
	cfg.Technical.MaxPoints = 3.0
	cfg.News.FreshnessHours = 24
	cfg.News.MaxItems = 5
	return cfg
}
