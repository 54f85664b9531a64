package contracts

import "time"

// PricePoint represents a single daily bar.
// Series are ascending chronological with unique timestamps.
type PricePoint struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Metric is an explicit tri-state indicator value. An indicator without
// enough trailing history is not-yet-available, never a silent zero.
type Metric struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// MetricOf returns an available metric.
func MetricOf(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// IndicatorRow holds every indicator at a single series index.
type IndicatorRow struct {
	RSI        Metric `json:"rsi"`
	SMA20      Metric `json:"sma_20"`
	SMA50      Metric `json:"sma_50"`
	SMA200     Metric `json:"sma_200"`
	BollUpper  Metric `json:"bollinger_upper"`
	BollLower  Metric `json:"bollinger_lower"`
	MACD       Metric `json:"macd"`
	MACDSignal Metric `json:"macd_signal"`
}

// IndicatorFrame holds derived indicators parallel-indexed to the price
// series they were computed from. The value at index i depends only on
// points at indices <= i.
type IndicatorFrame struct {
	RSI        []Metric `json:"rsi"`
	SMA20      []Metric `json:"sma_20"`
	SMA50      []Metric `json:"sma_50"`
	SMA200     []Metric `json:"sma_200"`
	BollUpper  []Metric `json:"bollinger_upper"`
	BollLower  []Metric `json:"bollinger_lower"`
	MACD       []Metric `json:"macd"`
	MACDSignal []Metric `json:"macd_signal"`
}

// Len returns the frame length (equal to the source series length).
func (f *IndicatorFrame) Len() int {
	return len(f.RSI)
}

// Row returns all indicators at index i.
func (f *IndicatorFrame) Row(i int) IndicatorRow {
	return IndicatorRow{
		RSI:        f.RSI[i],
		SMA20:      f.SMA20[i],
		SMA50:      f.SMA50[i],
		SMA200:     f.SMA200[i],
		BollUpper:  f.BollUpper[i],
		BollLower:  f.BollLower[i],
		MACD:       f.MACD[i],
		MACDSignal: f.MACDSignal[i],
	}
}

// Latest returns the last row, or false for an empty frame.
func (f *IndicatorFrame) Latest() (IndicatorRow, bool) {
	if f.Len() == 0 {
		return IndicatorRow{}, false
	}
	return f.Row(f.Len() - 1), true
}
