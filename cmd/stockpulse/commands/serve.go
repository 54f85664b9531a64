package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avernet/stockpulse/internal/api"
	"github.com/avernet/stockpulse/internal/api/handlers"
	"github.com/avernet/stockpulse/internal/refresh"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Starts the REST and WebSocket API server with the periodic
watchlist refresh.

Endpoints:
  GET  /health                      - Health check
  GET  /api/stocks                  - Watchlist
  GET  /api/stocks/{symbol}/score   - Evaluate one symbol
  GET  /api/stocks/{symbol}/history - Price series with indicators
  GET  /api/scoring/config          - Active scoring configuration
  GET  /api/refresh/stats           - Refresh job statistics
  POST /api/refresh/run             - Trigger an immediate refresh
  GET  /api/stream                  - Live score updates (WebSocket)

Example:
  go run ./cmd/stockpulse serve
  go run ./cmd/stockpulse serve --port 8090`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.close()

	if servePort != "" {
		app.cfg.Port = servePort
	}

	hub := api.NewHub(app.log)
	go hub.Run()

	scheduler := refresh.NewScheduler(app.log)
	job := refresh.NewWatchlistJob(app.service, hub, app.cfg.Watchlist, app.cfg.RefreshSchedule, app.log)
	if err := scheduler.AddJob(job); err != nil {
		return fmt.Errorf("schedule watchlist refresh: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	stockHandler := handlers.NewStockHandler(app.service, app.cfg.Watchlist, app.log)
	jobsHandler := handlers.NewJobsHandler(scheduler, app.log)

	router := api.NewRouter(stockHandler, jobsHandler, hub, app.log)
	server := api.New(app.cfg, app.log, router)

	go func() {
		if err := server.Start(); err != nil {
			app.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	app.log.WithFields(map[string]interface{}{
		"watchlist": app.cfg.Watchlist,
		"schedule":  app.cfg.RefreshSchedule,
		"preset":    app.service.Config().Meta.PresetID,
	}).Info("API server started")
	fmt.Printf("Server running on http://localhost:%s (Ctrl+C to stop)\n", app.cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.log.Info("Server stopped")
	return nil
}
