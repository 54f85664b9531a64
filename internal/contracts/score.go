package contracts

import "time"

// Category tags a justification by the signal group that produced it.
type Category string

const (
	CategoryTechnical   Category = "Technical"
	CategoryFundamental Category = "Fundamental"
	CategoryConsensus   Category = "Consensus"
	CategorySentiment   Category = "Sentiment"
)

// Recommendation is the verdict band derived from the final score.
type Recommendation string

const (
	RecommendationStrongBuy  Recommendation = "STRONG_BUY"
	RecommendationBuy        Recommendation = "BUY"
	RecommendationHold       Recommendation = "HOLD"
	RecommendationSell       Recommendation = "SELL"
	RecommendationStrongSell Recommendation = "STRONG_SELL"
)

// Label returns a human-readable form for display surfaces.
func (r Recommendation) Label() string {
	switch r {
	case RecommendationStrongBuy:
		return "Strong Buy"
	case RecommendationBuy:
		return "Accumulate / Buy"
	case RecommendationHold:
		return "Neutral / Hold"
	case RecommendationSell:
		return "Reduce / Sell"
	case RecommendationStrongSell:
		return "Strong Sell"
	default:
		return string(r)
	}
}

// Justification is one human-readable reason behind a score, emitted in
// fixed evaluation order so consumers may display only the first N.
type Justification struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// SubScores holds the four component scores, each on the 0-5 scale.
type SubScores struct {
	Technical   float64 `json:"technical"`
	Fundamental float64 `json:"fundamental"`
	Consensus   float64 `json:"consensus"`
	Sentiment   float64 `json:"sentiment"`
}

// ScoreResult is the engine's sole output contract. It is created fresh
// per evaluation and never mutated afterwards.
type ScoreResult struct {
	Symbol         string          `json:"symbol"`
	FinalScore     float64         `json:"final_score"` // 0-5, rounded to 2 decimals
	SubScores      SubScores       `json:"sub_scores"`
	Recommendation Recommendation  `json:"recommendation"`
	Justifications []Justification `json:"justifications"`
	News           []NewsItem      `json:"news,omitempty"`
	EvaluatedAt    time.Time       `json:"evaluated_at"`
}

// JustificationsFor returns the justifications for a single category,
// preserving emission order.
func (r *ScoreResult) JustificationsFor(cat Category) []Justification {
	var out []Justification
	for _, j := range r.Justifications {
		if j.Category == cat {
			out = append(out, j)
		}
	}
	return out
}
