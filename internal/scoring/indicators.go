package scoring

import (
	"math"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/pkg/logger"
)

// IndicatorCalculator derives the full indicator frame from a daily price
// series. All technical indicator math lives here.
//
// Every indicator is computed from trailing data only: the value at index
// i never looks past i. An indicator whose minimum window exceeds the
// series length stays unavailable for the whole series instead of being
// computed on a partial window.
type IndicatorCalculator struct {
	cfg    IndicatorWindows
	logger *logger.Logger
}

// NewIndicatorCalculator creates a new indicator calculator.
func NewIndicatorCalculator(cfg IndicatorWindows, log *logger.Logger) *IndicatorCalculator {
	return &IndicatorCalculator{
		cfg:    cfg,
		logger: log,
	}
}

// Frame computes all indicators for the series. The returned frame is
// parallel-indexed to the input.
func (c *IndicatorCalculator) Frame(series []contracts.PricePoint) *contracts.IndicatorFrame {
	closes := extractCloses(series)

	sma20 := smaSeries(closes, c.cfg.SMAShort)
	upper, lower := c.bollingerSeries(closes, sma20)
	macd, signal := c.macdSeries(closes)

	frame := &contracts.IndicatorFrame{
		RSI:        c.rsiSeries(closes),
		SMA20:      sma20,
		SMA50:      smaSeries(closes, c.cfg.SMAMedium),
		SMA200:     smaSeries(closes, c.cfg.SMALong),
		BollUpper:  upper,
		BollLower:  lower,
		MACD:       macd,
		MACDSignal: signal,
	}

	c.logger.WithFields(map[string]interface{}{
		"points": len(series),
	}).Debug("Computed indicator frame")

	return frame
}

// rsiSeries computes RSI over a simple trailing window of signed deltas.
// Defined only once at least `period` deltas exist. A window with zero
// average loss saturates at 100; a fully flat window is neutral 50.
func (c *IndicatorCalculator) rsiSeries(closes []float64) []contracts.Metric {
	period := c.cfg.RSIPeriod
	out := make([]contracts.Metric, len(closes))

	for i := period; i < len(closes); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}

		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		var rsi float64
		switch {
		case avgLoss == 0 && avgGain == 0:
			rsi = 50.0
		case avgLoss == 0:
			rsi = 100.0
		default:
			rs := avgGain / avgLoss
			rsi = 100.0 - 100.0/(1.0+rs)
		}

		out[i] = contracts.MetricOf(rsi)
	}

	return out
}

// bollingerSeries computes the volatility envelope around the short SMA
// using the population standard deviation of the same window.
func (c *IndicatorCalculator) bollingerSeries(closes []float64, sma []contracts.Metric) (upper, lower []contracts.Metric) {
	window := c.cfg.BollingerWindow
	mult := c.cfg.BollingerMult
	upper = make([]contracts.Metric, len(closes))
	lower = make([]contracts.Metric, len(closes))

	for i := window - 1; i < len(closes); i++ {
		mid := sma[i]
		if !mid.Valid {
			continue
		}

		var sumSq float64
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - mid.Value
			sumSq += d * d
		}
		sigma := math.Sqrt(sumSq / float64(window))

		upper[i] = contracts.MetricOf(mid.Value + mult*sigma)
		lower[i] = contracts.MetricOf(mid.Value - mult*sigma)
	}

	return upper, lower
}

// macdSeries computes the MACD line and its signal line. Both EMAs are
// seeded with the first input value, so each value depends only on prior
// inputs. The MACD line is defined from index slow-1; the signal line
// needs a further signalPeriod-1 MACD values.
func (c *IndicatorCalculator) macdSeries(closes []float64) (macd, signal []contracts.Metric) {
	fast, slow, signalPeriod := c.cfg.MACDFast, c.cfg.MACDSlow, c.cfg.MACDSignal
	macd = make([]contracts.Metric, len(closes))
	signal = make([]contracts.Metric, len(closes))

	if len(closes) < slow {
		return macd, signal
	}

	emaFast := emaSeries(closes, fast)
	emaSlow := emaSeries(closes, slow)

	line := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		v := emaFast[i] - emaSlow[i]
		macd[i] = contracts.MetricOf(v)
		line = append(line, v)
	}

	signalLine := emaSeries(line, signalPeriod)
	for k := signalPeriod - 1; k < len(line); k++ {
		signal[slow-1+k] = contracts.MetricOf(signalLine[k])
	}

	return macd, signal
}

// smaSeries computes the trailing simple moving average, defined from the
// first index with `period` points of history.
func smaSeries(values []float64, period int) []contracts.Metric {
	out := make([]contracts.Metric, len(values))
	if len(values) < period {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = contracts.MetricOf(sum / float64(period))
		}
	}

	return out
}

// emaSeries computes the exponential moving average with the standard
// smoothing recurrence, seeded by the first value.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(period) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

func extractCloses(series []contracts.PricePoint) []float64 {
	closes := make([]float64, len(series))
	for i, p := range series {
		closes[i] = p.Close
	}
	return closes
}
