package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/pkg/logger"
)

// ErrMalformedSeries reports a structurally invalid price series:
// non-chronological or duplicate timestamps, or NaN/Inf closes. A series
// that is merely too short is not malformed and degrades to the neutral
// default instead.
var ErrMalformedSeries = errors.New("malformed price series")

// neutralScore is the flat default returned when nothing is computable.
const neutralScore = 2.5

// Engine is the weighted scoring orchestrator. It is pure and
// synchronous: no I/O, no shared mutable state, and identical inputs
// produce identical outputs, so concurrent calls need no coordination.
type Engine struct {
	cfg        Config
	calc       *IndicatorCalculator
	normalizer *FundamentalsNormalizer
	sentiment  *SentimentScorer
	logger     *logger.Logger
}

// NewEngine creates a scoring engine. Configuration is validated here,
// at construction, so a bad preset fails fast instead of per call.
func NewEngine(cfg Config, log *logger.Logger) (*Engine, error) {
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}

	return &Engine{
		cfg:        cfg,
		calc:       NewIndicatorCalculator(cfg.Indicators, log),
		normalizer: NewFundamentalsNormalizer(log),
		sentiment:  NewSentimentScorer(cfg.News, log),
		logger:     log,
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Frame computes the indicator frame for a series without scoring it.
// Display surfaces use it to chart indicators alongside prices.
func (e *Engine) Frame(series []contracts.PricePoint) *contracts.IndicatorFrame {
	return e.calc.Frame(series)
}

// Input carries all data for one evaluation. Retrieval is the caller's
// concern; the engine only ever sees already-fetched values.
type Input struct {
	Symbol string
	Series []contracts.PricePoint

	// Raw is the loosely-typed provider payload; Record, when set,
	// bypasses normalization with a pre-normalized record.
	Raw    *contracts.RawFundamentals
	Record *contracts.FundamentalsRecord

	News []contracts.NewsItem

	// Now anchors the news freshness window. Zero means time.Now().
	Now time.Time
}

// Evaluate runs the full scoring pipeline and returns an immutable
// result. The only error condition is a malformed series; every data
// gap degrades to a neutral contribution with an explanatory
// justification.
func (e *Engine) Evaluate(input Input) (*contracts.ScoreResult, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	if err := validateSeries(input.Series); err != nil {
		return nil, err
	}

	frame := e.calc.Frame(input.Series)
	techScore, techJusts, computable := e.scoreTechnical(input.Series, frame)

	// Nothing computable at all: flat neutral verdict, one justification.
	if computable == 0 {
		result := &contracts.ScoreResult{
			Symbol:     input.Symbol,
			FinalScore: neutralScore,
			SubScores: contracts.SubScores{
				Technical:   neutralScore,
				Fundamental: neutralScore,
				Consensus:   neutralScore,
				Sentiment:   neutralScore,
			},
			Recommendation: e.bandFor(neutralScore),
			Justifications: []contracts.Justification{{
				Category: contracts.CategoryTechnical,
				Text:     "Insufficient price history to compute any indicator; neutral default applied",
			}},
			EvaluatedAt: now,
		}
		e.logResult(result)
		return result, nil
	}

	record := e.resolveRecord(input)
	fundScore, fundJusts := e.scoreFundamental(record)

	news, sentScore := e.sentiment.Score(input.News, now)

	justs := make([]contracts.Justification, 0, len(techJusts)+len(fundJusts)+2)
	justs = append(justs, techJusts...)
	justs = append(justs, fundJusts...)
	justs = append(justs, e.consensusJustification(record))
	justs = append(justs, e.sentimentJustification(news))

	subs := contracts.SubScores{
		Technical:   round2(techScore),
		Fundamental: round2(fundScore),
		Consensus:   record.ConsensusScore,
		Sentiment:   sentScore,
	}

	final := round2(e.cfg.Weights.Technical*subs.Technical +
		e.cfg.Weights.Fundamental*subs.Fundamental +
		e.cfg.Weights.Consensus*subs.Consensus +
		e.cfg.Weights.Sentiment*subs.Sentiment)

	result := &contracts.ScoreResult{
		Symbol:         input.Symbol,
		FinalScore:     final,
		SubScores:      subs,
		Recommendation: e.bandFor(final),
		Justifications: justs,
		News:           news,
		EvaluatedAt:    now,
	}
	e.logResult(result)
	return result, nil
}

// resolveRecord bridges the two inbound fundamentals contracts.
func (e *Engine) resolveRecord(input Input) contracts.FundamentalsRecord {
	if input.Record != nil {
		return *input.Record
	}
	return e.normalizer.Normalize(input.Raw)
}

// scoreTechnical accumulates signed point contributions from every
// enabled indicator against the latest row and normalizes them onto the
// 0-5 scale using the preset's point denominator.
//
// Rules run in fixed order (RSI, Bollinger, long SMA, medium SMA,
// golden cross, MACD) so justification order is stable. An enabled
// indicator without enough history awards its neutral point value and
// says so; computable counts how many indicators actually evaluated.
func (e *Engine) scoreTechnical(series []contracts.PricePoint, frame *contracts.IndicatorFrame) (float64, []contracts.Justification, int) {
	var justs []contracts.Justification

	row, ok := frame.Latest()
	if !ok {
		return 0, nil, 0
	}

	var prev contracts.IndicatorRow
	if frame.Len() > 1 {
		prev = frame.Row(frame.Len() - 2)
	}

	closePx := series[len(series)-1].Close
	points := 0.0
	computable := 0

	tech := func(text string, args ...interface{}) {
		justs = append(justs, contracts.Justification{
			Category: contracts.CategoryTechnical,
			Text:     fmt.Sprintf(text, args...),
		})
	}

	// 1. RSI
	if row.RSI.Valid {
		computable++
		switch {
		case row.RSI.Value < e.cfg.Technical.RSIOversold:
			points += 1
			tech("RSI %.1f in oversold territory (buy opportunity)", row.RSI.Value)
		case row.RSI.Value > e.cfg.Technical.RSIOverbought:
			points -= 1
			tech("RSI %.1f in overbought territory (pullback risk)", row.RSI.Value)
		default:
			points += 0.5
			tech("RSI %.1f in neutral range", row.RSI.Value)
		}
	} else {
		points += 0.5
		tech("Insufficient history for RSI(%d); neutral treatment", e.cfg.Indicators.RSIPeriod)
	}

	// 2. Bollinger Bands
	if e.cfg.Technical.UseBollinger {
		if row.BollLower.Valid && row.BollUpper.Valid {
			computable++
			switch {
			case closePx < row.BollLower.Value:
				points += 1.5
				tech("Close below lower Bollinger band (oversold extreme)")
			case closePx > row.BollUpper.Value:
				points -= 1
				tech("Close above upper Bollinger band (overbought extreme)")
			default:
				points += 0.5
				tech("Close within Bollinger bands")
			}
		} else {
			points += 0.5
			tech("Insufficient history for Bollinger(%d); neutral treatment", e.cfg.Indicators.BollingerWindow)
		}
	}

	// 3. Long SMA trend
	if row.SMA200.Valid {
		computable++
		if closePx > row.SMA200.Value {
			points += 1
			tech("Long-term uptrend (close above SMA%d)", e.cfg.Indicators.SMALong)
		} else {
			tech("Long-term downtrend (close below SMA%d)", e.cfg.Indicators.SMALong)
		}
	} else {
		points += 0.5
		tech("Insufficient history for SMA%d; neutral treatment", e.cfg.Indicators.SMALong)
	}

	// 4. Medium SMA trend
	if e.cfg.Technical.UseSMAMedium {
		if row.SMA50.Valid {
			computable++
			if closePx > row.SMA50.Value {
				points += 0.5
				tech("Close above SMA%d (medium-term strength)", e.cfg.Indicators.SMAMedium)
			} else {
				tech("Close below SMA%d (medium-term weakness)", e.cfg.Indicators.SMAMedium)
			}
		} else {
			points += 0.25
			tech("Insufficient history for SMA%d; neutral treatment", e.cfg.Indicators.SMAMedium)
		}
	}

	// 5. Golden cross. The +1 bonus fires only on the transition period;
	// an already-bullish alignment gets the smaller steady-state award.
	if e.cfg.Technical.UseGoldenCross {
		if row.SMA50.Valid && row.SMA200.Valid && prev.SMA50.Valid && prev.SMA200.Valid {
			computable++
			crossed := prev.SMA50.Value <= prev.SMA200.Value && row.SMA50.Value > row.SMA200.Value
			switch {
			case crossed:
				points += 1
				tech("Golden cross: SMA%d crossed above SMA%d", e.cfg.Indicators.SMAMedium, e.cfg.Indicators.SMALong)
			case row.SMA50.Value > row.SMA200.Value:
				points += 0.25
				tech("Bullish alignment (SMA%d above SMA%d)", e.cfg.Indicators.SMAMedium, e.cfg.Indicators.SMALong)
			default:
				tech("Bearish alignment (SMA%d below SMA%d)", e.cfg.Indicators.SMAMedium, e.cfg.Indicators.SMALong)
			}
		} else {
			points += 0.25
			tech("Insufficient history for moving-average crossover; neutral treatment")
		}
	}

	// 6. MACD vs signal line
	if e.cfg.Technical.UseMACD {
		if row.MACD.Valid && row.MACDSignal.Valid {
			computable++
			if row.MACD.Value > row.MACDSignal.Value {
				points += 1
				tech("MACD above signal line (bullish momentum)")
			} else {
				points -= 1
				tech("MACD below signal line (bearish momentum)")
			}
		} else {
			tech("Insufficient history for MACD; neutral treatment")
		}
	}

	if points < 0 {
		points = 0
	}

	score := points / e.cfg.Technical.MaxPoints * 5
	// A transition-day cross bonus can push past the nominal maximum.
	if score > 5 {
		score = 5
	}

	return score, justs, computable
}

// scoreFundamental applies the valuation and dividend rules. An unknown
// P/E skips the valuation rule with a justification, never a penalty.
func (e *Engine) scoreFundamental(record contracts.FundamentalsRecord) (float64, []contracts.Justification) {
	var justs []contracts.Justification
	points := 0.0

	fund := func(text string, args ...interface{}) {
		justs = append(justs, contracts.Justification{
			Category: contracts.CategoryFundamental,
			Text:     fmt.Sprintf(text, args...),
		})
	}

	if record.PriceToEarnings > 0 {
		switch {
		case record.PriceToEarnings < e.cfg.Fundamental.PECheap:
			points += 1
			fund("Undervalued: P/E %.1f below %.1f", record.PriceToEarnings, e.cfg.Fundamental.PECheap)
		case record.PriceToEarnings > e.cfg.Fundamental.PEExpensive:
			points -= 1
			fund("Expensive: P/E %.1f above %.1f", record.PriceToEarnings, e.cfg.Fundamental.PEExpensive)
		default:
			fund("P/E %.1f within normal range", record.PriceToEarnings)
		}
	} else {
		fund("P/E unknown; valuation rule skipped")
	}

	if record.DividendYield > e.cfg.Fundamental.YieldAttractive {
		points += 1
		fund("Attractive dividend yield %.2f%%", record.DividendYield*100)
	} else {
		fund("Dividend yield %.2f%% below %.2f%% threshold", record.DividendYield*100, e.cfg.Fundamental.YieldAttractive*100)
	}

	if points < 0 {
		points = 0
	}

	score := points / e.cfg.Fundamental.MaxPoints * 5
	if score > 5 {
		score = 5
	}

	return score, justs
}

func (e *Engine) consensusJustification(record contracts.FundamentalsRecord) contracts.Justification {
	if record.Source == contracts.SourceFallback {
		return contracts.Justification{
			Category: contracts.CategoryConsensus,
			Text:     fmt.Sprintf("Fundamentals unavailable; neutral analyst consensus %.1f/5 assumed", record.ConsensusScore),
		}
	}

	rating := record.AnalystRating
	if rating == "" {
		rating = "none"
	}
	return contracts.Justification{
		Category: contracts.CategoryConsensus,
		Text:     fmt.Sprintf("Analyst consensus %q scores %.1f/5", rating, record.ConsensusScore),
	}
}

func (e *Engine) sentimentJustification(news []contracts.NewsItem) contracts.Justification {
	if len(news) == 0 {
		return contracts.Justification{
			Category: contracts.CategorySentiment,
			Text:     fmt.Sprintf("No headlines within the last %dh; neutral sentiment", e.cfg.News.FreshnessHours),
		}
	}

	var pos, neg int
	for _, item := range news {
		switch item.Polarity {
		case contracts.PolarityPositive:
			pos++
		case contracts.PolarityNegative:
			neg++
		}
	}

	return contracts.Justification{
		Category: contracts.CategorySentiment,
		Text:     fmt.Sprintf("%d positive / %d negative headlines within the last %dh", pos, neg, e.cfg.News.FreshnessHours),
	}
}

// bandFor maps the final score onto a recommendation. Boundary
// conventions: 3.8 and 3.0 belong to the band above, 2.2 and 1.5 to the
// band below.
func (e *Engine) bandFor(score float64) contracts.Recommendation {
	b := e.cfg.Bands
	switch {
	case score >= b.StrongBuy:
		return contracts.RecommendationStrongBuy
	case score >= b.Buy:
		return contracts.RecommendationBuy
	case score > b.Hold:
		return contracts.RecommendationHold
	case score > b.Sell:
		return contracts.RecommendationSell
	default:
		return contracts.RecommendationStrongSell
	}
}

// validateSeries rejects structurally broken input. Supplying a
// well-formed series is the caller's responsibility.
func validateSeries(series []contracts.PricePoint) error {
	for i, p := range series {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			return fmt.Errorf("%w: close at index %d is not finite", ErrMalformedSeries, i)
		}
		if i > 0 && !series[i].Time.After(series[i-1].Time) {
			return fmt.Errorf("%w: timestamps not strictly ascending at index %d", ErrMalformedSeries, i)
		}
	}
	return nil
}

func (e *Engine) logResult(result *contracts.ScoreResult) {
	e.logger.WithFields(map[string]interface{}{
		"symbol":         result.Symbol,
		"final_score":    result.FinalScore,
		"recommendation": result.Recommendation,
		"technical":      result.SubScores.Technical,
		"fundamental":    result.SubScores.Fundamental,
		"consensus":      result.SubScores.Consensus,
		"sentiment":      result.SubScores.Sentiment,
	}).Debug("Evaluated score")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
