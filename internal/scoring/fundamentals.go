package scoring

import (
	"strings"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/pkg/logger"
)

// FundamentalsNormalizer maps raw provider payloads into complete
// FundamentalsRecords. It never fails: missing or unparseable data
// degrades to documented neutral values so a provider outage can only
// ever produce a cautious verdict, not an error.
type FundamentalsNormalizer struct {
	logger *logger.Logger
}

// NewFundamentalsNormalizer creates a new fundamentals normalizer.
func NewFundamentalsNormalizer(log *logger.Logger) *FundamentalsNormalizer {
	return &FundamentalsNormalizer{logger: log}
}

// neutralConsensus is the midpoint awarded when the analyst
// recommendation is missing or unknown. Never an extreme.
const neutralConsensus = 2.5

// consensusScores maps the provider's closed recommendation vocabulary
// onto the 0-5 consensus scale.
var consensusScores = map[string]float64{
	"strong_buy":   5,
	"buy":          4,
	"outperform":   4,
	"hold":         2.5,
	"underperform": 1,
	"sell":         0,
}

// Normalize builds a complete record from a raw payload. A nil payload
// yields the fallback record.
func (n *FundamentalsNormalizer) Normalize(raw *contracts.RawFundamentals) contracts.FundamentalsRecord {
	if raw == nil {
		return n.Fallback()
	}

	rec := contracts.FundamentalsRecord{
		Source: contracts.SourceLive,
	}

	// P/E: trailing preferred, forward as fallback, 0 means unknown.
	if raw.TrailingPE != nil && *raw.TrailingPE > 0 {
		rec.PriceToEarnings = *raw.TrailingPE
	} else if raw.ForwardPE != nil && *raw.ForwardPE > 0 {
		rec.PriceToEarnings = *raw.ForwardPE
	}

	// Dividend amount: primary rate field, then the trailing annual rate.
	if raw.DividendRate != nil && *raw.DividendRate > 0 {
		rec.DividendAmount = *raw.DividendRate
	} else if raw.TrailingAnnualDividendRate != nil && *raw.TrailingAnnualDividendRate > 0 {
		rec.DividendAmount = *raw.TrailingAnnualDividendRate
	}

	// Yield: derive from amount and last close when both are known,
	// otherwise trust the provider's yield field.
	switch {
	case rec.DividendAmount > 0 && raw.LastClose > 0:
		rec.DividendYield = rec.DividendAmount / raw.LastClose
	case raw.DividendYield != nil && *raw.DividendYield > 0:
		rec.DividendYield = *raw.DividendYield
	}

	// Unconditional scale fix: a yield above 1 is a misreported
	// percentage (6.08 means 6.08%), never a real 600% payout.
	if rec.DividendYield > 1 {
		rec.DividendYield /= 100
	}

	rec.AnalystRating = strings.ToLower(strings.TrimSpace(raw.RecommendationKey))
	rec.ConsensusScore = ConsensusScore(rec.AnalystRating)

	if raw.TargetMeanPrice != nil && *raw.TargetMeanPrice > 0 {
		rec.TargetPrice = *raw.TargetMeanPrice
	}

	return rec
}

// Fallback returns the documented neutral record used when fundamentals
// cannot be fetched or parsed. The fallback marker is surfaced to the
// caller through the Source field, not through an error.
func (n *FundamentalsNormalizer) Fallback() contracts.FundamentalsRecord {
	return contracts.FundamentalsRecord{
		PriceToEarnings: 0,
		DividendYield:   0,
		ConsensusScore:  neutralConsensus,
		Source:          contracts.SourceFallback,
	}
}

// ConsensusScore maps a recommendation key to its fixed consensus score.
// Unknown keys get the neutral midpoint.
func ConsensusScore(key string) float64 {
	if score, ok := consensusScores[strings.ToLower(strings.TrimSpace(key))]; ok {
		return score
	}
	return neutralConsensus
}
