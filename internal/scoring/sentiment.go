package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/pkg/logger"
)

// SentimentScorer classifies headlines by keyword polarity and folds
// them into a single 0-5 sentiment score.
type SentimentScorer struct {
	cfg    NewsRules
	logger *logger.Logger
}

// NewSentimentScorer creates a new sentiment scorer.
func NewSentimentScorer(cfg NewsRules, log *logger.Logger) *SentimentScorer {
	return &SentimentScorer{
		cfg:    cfg,
		logger: log,
	}
}

// Score filters the items to the freshness window, caps them at the
// configured maximum, classifies each headline and returns the
// classified list together with the aggregate 0-5 score.
//
// Items older than the freshness cutoff are discarded entirely, not
// de-prioritized. An empty list scores the neutral 2.5.
func (s *SentimentScorer) Score(items []contracts.NewsItem, now time.Time) ([]contracts.NewsItem, float64) {
	cutoff := now.Add(-time.Duration(s.cfg.FreshnessHours) * time.Hour)

	sorted := make([]contracts.NewsItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	fresh := make([]contracts.NewsItem, 0, len(sorted))
	for _, item := range sorted {
		if item.PublishedAt.Before(cutoff) {
			continue
		}
		if len(fresh) == s.cfg.MaxItems {
			break
		}
		item.Polarity = s.Classify(item.Headline)
		fresh = append(fresh, item)
	}

	raw := 0
	for _, item := range fresh {
		switch item.Polarity {
		case contracts.PolarityPositive:
			raw++
		case contracts.PolarityNegative:
			raw--
		}
	}

	score := aggregateScore(raw)

	s.logger.WithFields(map[string]interface{}{
		"items": len(fresh),
		"raw":   raw,
		"score": score,
	}).Debug("Scored news sentiment")

	return fresh, score
}

// Classify assigns a polarity by case-insensitive substring match
// against the configured keyword lists. A headline matching both lists
// is positive: the positive list takes precedence by policy, so the
// outcome never depends on list iteration order.
func (s *SentimentScorer) Classify(headline string) contracts.Polarity {
	lower := strings.ToLower(headline)

	if containsAny(lower, s.cfg.PositiveKeywords) {
		return contracts.PolarityPositive
	}
	if containsAny(lower, s.cfg.NegativeKeywords) {
		return contracts.PolarityNegative
	}
	return contracts.PolarityNeutral
}

// aggregateScore maps the signed headline sum onto the 0-5 scale:
// positive sums land in [4, 5], any negative sum is 1, zero is neutral.
func aggregateScore(raw int) float64 {
	switch {
	case raw > 0:
		bonus := raw
		if bonus > 2 {
			bonus = 2
		}
		return 4 + float64(bonus)*0.5
	case raw < 0:
		return 1
	default:
		return 2.5
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
