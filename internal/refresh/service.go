package refresh

import (
	"context"
	"time"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/internal/scoring"
	"github.com/avernet/stockpulse/pkg/logger"
)

// ChartProvider supplies daily price series.
type ChartProvider interface {
	FetchDailyBars(ctx context.Context, symbol string) ([]contracts.PricePoint, error)
}

// FundamentalsProvider supplies raw fundamentals payloads.
type FundamentalsProvider interface {
	FetchFundamentals(ctx context.Context, symbol string) (*contracts.RawFundamentals, error)
}

// HeadlineProvider supplies recent headlines.
type HeadlineProvider interface {
	FetchHeadlines(ctx context.Context, symbol string) ([]contracts.NewsItem, error)
}

// Service wires the data providers to the scoring engine. Provider
// failures degrade to the engine's documented neutral paths instead of
// failing the evaluation: a quote outage must never take scoring down
// with it.
type Service struct {
	engine       *scoring.Engine
	charts       ChartProvider
	fundamentals FundamentalsProvider
	headlines    HeadlineProvider
	logger       *logger.Logger
}

// NewService creates a new evaluation service.
func NewService(engine *scoring.Engine, charts ChartProvider, fundamentals FundamentalsProvider, headlines HeadlineProvider, log *logger.Logger) *Service {
	return &Service{
		engine:       engine,
		charts:       charts,
		fundamentals: fundamentals,
		headlines:    headlines,
		logger:       log,
	}
}

// Evaluate fetches all inputs for a symbol and runs the scoring engine.
func (s *Service) Evaluate(ctx context.Context, symbol string) (*contracts.ScoreResult, error) {
	series, err := s.charts.FetchDailyBars(ctx, symbol)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("Price fetch failed, scoring without history")
		series = nil
	}

	raw, err := s.fundamentals.FetchFundamentals(ctx, symbol)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("Fundamentals fetch failed, using fallback")
		raw = nil
	}

	news, err := s.headlines.FetchHeadlines(ctx, symbol)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("Headline fetch failed, scoring without news")
		news = nil
	}

	return s.engine.Evaluate(scoring.Input{
		Symbol: symbol,
		Series: series,
		Raw:    raw,
		News:   news,
		Now:    time.Now(),
	})
}

// History returns the price series with the derived indicator frame.
func (s *Service) History(ctx context.Context, symbol string) ([]contracts.PricePoint, *contracts.IndicatorFrame, error) {
	series, err := s.charts.FetchDailyBars(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}
	return series, s.engine.Frame(series), nil
}

// Config returns the active scoring configuration.
func (s *Service) Config() scoring.Config {
	return s.engine.Config()
}
