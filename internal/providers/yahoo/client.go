package yahoo

import (
	"time"

	"github.com/avernet/stockpulse/pkg/config"
	"github.com/avernet/stockpulse/pkg/httputil"
	"github.com/avernet/stockpulse/pkg/logger"
	"github.com/avernet/stockpulse/pkg/redis"
)

// Client handles communication with the Yahoo Finance public API.
// All Yahoo requests go through this client, read-through cached when
// Redis is enabled.
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	cfg        config.YahooConfig
	cacheTTL   time.Duration
}

// NewClient creates a new Yahoo Finance client.
func NewClient(cfg config.YahooConfig, httpClient *httputil.Client, cache *redis.Cache, cacheTTL time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		logger:     log,
		cfg:        cfg,
		cacheTTL:   cacheTTL,
	}
}
