package commands

import (
	"fmt"

	"github.com/avernet/stockpulse/internal/providers/news"
	"github.com/avernet/stockpulse/internal/providers/yahoo"
	"github.com/avernet/stockpulse/internal/refresh"
	"github.com/avernet/stockpulse/internal/scoring"
	"github.com/avernet/stockpulse/pkg/config"
	"github.com/avernet/stockpulse/pkg/httputil"
	"github.com/avernet/stockpulse/pkg/logger"
	"github.com/avernet/stockpulse/pkg/redis"
)

// appContext bundles the shared dependencies built by every command.
type appContext struct {
	cfg     *config.Config
	log     *logger.Logger
	redis   *redis.Client
	service *refresh.Service
}

func (a *appContext) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

// buildApp wires config, logging, cache, providers and the scoring
// engine. The construction order mirrors the dependency order.
func buildApp() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	scoringCfg, err := resolveScoringConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve scoring config: %w", err)
	}

	engine, err := scoring.NewEngine(scoringCfg, log)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "stockpulse")

	// Public finance endpoints throttle aggressive clients.
	httpClient := httputil.New(log).WithRateLimit(2, 4)

	yahooClient := yahoo.NewClient(cfg.Yahoo, httpClient, cache, cfg.Redis.TTL, log)
	newsClient := news.NewClient(cfg.News, httpClient, cache, cfg.Redis.TTL, log)

	service := refresh.NewService(engine, yahooClient, yahooClient, newsClient, log)

	return &appContext{
		cfg:     cfg,
		log:     log,
		redis:   redisClient,
		service: service,
	}, nil
}

// resolveScoringConfig picks the preset file when configured, otherwise
// the named built-in preset.
func resolveScoringConfig(cfg *config.Config) (scoring.Config, error) {
	if cfg.PresetFile != "" {
		loaded, _, err := scoring.LoadFile(cfg.PresetFile)
		if err != nil {
			return scoring.Config{}, fmt.Errorf("load preset file %s: %w", cfg.PresetFile, err)
		}
		return *loaded, nil
	}

	return scoring.Preset(cfg.PresetID)
}
