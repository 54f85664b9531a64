package handlers

import (
	"net/http"

	"github.com/avernet/stockpulse/internal/refresh"
	"github.com/avernet/stockpulse/pkg/logger"
)

// JobsHandler exposes the refresh scheduler over HTTP.
type JobsHandler struct {
	scheduler *refresh.Scheduler
	logger    *logger.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(scheduler *refresh.Scheduler, log *logger.Logger) *JobsHandler {
	return &JobsHandler{
		scheduler: scheduler,
		logger:    log,
	}
}

// GetStats returns execution statistics for all scheduled jobs.
// GET /api/refresh/stats
func (h *JobsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.scheduler.GetJobStats(),
	})
}

// TriggerRefresh runs the watchlist refresh immediately.
// POST /api/refresh/run
func (h *JobsHandler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.RunJob("watchlist_refresh"); err != nil {
		h.logger.WithError(err).Error("Failed to trigger refresh")
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"success": true,
		"message": "refresh started",
	})
}
