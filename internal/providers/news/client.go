package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/pkg/config"
	"github.com/avernet/stockpulse/pkg/httputil"
	"github.com/avernet/stockpulse/pkg/logger"
	"github.com/avernet/stockpulse/pkg/redis"
)

// Client fetches headlines from the Yahoo Finance RSS feed.
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	cfg        config.NewsConfig
	cacheTTL   time.Duration
}

// NewClient creates a new headline feed client.
func NewClient(cfg config.NewsConfig, httpClient *httputil.Client, cache *redis.Cache, cacheTTL time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		logger:     log,
		cfg:        cfg,
		cacheTTL:   cacheTTL,
	}
}

// FetchHeadlines fetches the latest headlines for a symbol, most recent
// first. Polarity classification is left to the sentiment scorer.
func (c *Client) FetchHeadlines(ctx context.Context, symbol string) ([]contracts.NewsItem, error) {
	var cached []contracts.NewsItem
	if hit, _ := c.cache.Get(ctx, redis.HeadlinesKey(symbol), &cached); hit {
		return cached, nil
	}

	fullURL := fmt.Sprintf("%s?s=%s&region=%s&lang=%s",
		c.cfg.FeedBaseURL, url.QueryEscape(symbol), url.QueryEscape(c.cfg.Region), url.QueryEscape(c.cfg.Lang))

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	items, err := parseFeed(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed failed: %w", err)
	}

	if err := c.cache.Set(ctx, redis.HeadlinesKey(symbol), items, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Failed to cache headlines")
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(items),
	}).Debug("Fetched headlines")
	return items, nil
}

// pubDate layouts observed in the wild across feed variants.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// parseFeed extracts headlines from the RSS body. The HTML parser treats
// <link> as a void element and drops its text, so article URLs are read
// from <guid> instead, which Yahoo fills with the same URL.
func parseFeed(body string) ([]contracts.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var items []contracts.NewsItem
	doc.Find("item").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("title").First().Text())
		if title == "" {
			return
		}

		published, ok := parsePubDate(strings.TrimSpace(s.Find("pubdate").First().Text()))
		if !ok {
			return
		}

		items = append(items, contracts.NewsItem{
			Headline:    title,
			PublishedAt: published,
			Link:        strings.TrimSpace(s.Find("guid").First().Text()),
			Polarity:    contracts.PolarityNeutral,
		})
	})

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	return items, nil
}

func parsePubDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
