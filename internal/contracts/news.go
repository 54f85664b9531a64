package contracts

import "time"

// Polarity is the keyword classification of a single headline.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
)

// NewsItem is one classified headline. Providers deliver items with
// PolarityNeutral; classification is the sentiment scorer's job.
type NewsItem struct {
	Headline    string    `json:"headline"`
	PublishedAt time.Time `json:"published_at"`
	Link        string    `json:"link"`
	Polarity    Polarity  `json:"polarity"`
}
