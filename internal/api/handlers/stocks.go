package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/internal/scoring"
	"github.com/avernet/stockpulse/pkg/logger"
)

// Evaluator is the scoring surface the handlers depend on.
type Evaluator interface {
	Evaluate(ctx context.Context, symbol string) (*contracts.ScoreResult, error)
	History(ctx context.Context, symbol string) ([]contracts.PricePoint, *contracts.IndicatorFrame, error)
	Config() scoring.Config
}

// StockHandler handles the stock scoring API endpoints.
type StockHandler struct {
	service   Evaluator
	watchlist []string
	logger    *logger.Logger
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(service Evaluator, watchlist []string, log *logger.Logger) *StockHandler {
	return &StockHandler{
		service:   service,
		watchlist: watchlist,
		logger:    log,
	}
}

// ListStocks returns the configured watchlist.
// GET /api/stocks
func (h *StockHandler) ListStocks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.watchlist,
	})
}

// GetScore evaluates a symbol and returns the full score result.
// GET /api/stocks/{symbol}/score
func (h *StockHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	result, err := h.service.Evaluate(ctx, symbol)
	if err != nil {
		if errors.Is(err, scoring.ErrMalformedSeries) {
			respondError(w, http.StatusBadGateway, "price series from provider is malformed")
			return
		}
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to evaluate score")
		respondError(w, http.StatusInternalServerError, "Failed to evaluate score")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// HistoryRow is one daily bar with its derived indicators.
type HistoryRow struct {
	Date       string                 `json:"date"`
	Open       float64                `json:"open"`
	High       float64                `json:"high"`
	Low        float64                `json:"low"`
	Close      float64                `json:"close"`
	Volume     float64                `json:"volume"`
	Indicators contracts.IndicatorRow `json:"indicators"`
}

// GetHistory returns the price series with indicators.
// GET /api/stocks/{symbol}/history?days=365
func (h *StockHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	days := 365
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	series, frame, err := h.service.History(ctx, symbol)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"symbol": symbol,
			"days":   days,
		}).Error("Failed to get history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	start := 0
	if len(series) > days {
		start = len(series) - days
	}

	result := make([]HistoryRow, 0, len(series)-start)
	for i := start; i < len(series); i++ {
		p := series[i]
		result = append(result, HistoryRow{
			Date:       p.Time.Format("2006-01-02"),
			Open:       p.Open,
			High:       p.High,
			Low:        p.Low,
			Close:      p.Close,
			Volume:     p.Volume,
			Indicators: frame.Row(i),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}

// GetScoringConfig returns the active scoring configuration and its hash.
// GET /api/scoring/config
func (h *StockHandler) GetScoringConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.service.Config()

	hash, err := scoring.Hash(&cfg)
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash scoring config")
		respondError(w, http.StatusInternalServerError, "Failed to serialize scoring config")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"config": cfg,
			"hash":   hash,
		},
	})
}
