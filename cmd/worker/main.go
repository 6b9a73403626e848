package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"seopilot/internal/catalog"
	"seopilot/internal/config"
	"seopilot/internal/database"
	"seopilot/internal/httpclient"
	"seopilot/internal/keywords"
	"seopilot/internal/logger"
	"seopilot/internal/runner"
	"seopilot/internal/services/shopify"
	"seopilot/internal/sitemap"
	"seopilot/internal/trends"
	"seopilot/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	lex, err := config.LoadLexicon(cfg.LexiconPath)
	if err != nil {
		logger.Fatal("Failed to load lexicon: %v", err)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Wire the pipeline
	hc := httpclient.New(logger)
	client := shopify.NewClient(cfg.ShopifyStore, cfg.ShopifyAPIVersion, cfg.ShopifyAdminToken, hc, logger)
	source := shopify.NewCatalogSource(client)

	var store catalog.KeyValueStore
	if cfg.RedisURL != "" {
		store, err = catalog.NewRedisStore(cfg.RedisURL, "seopilot:")
		if err != nil {
			logger.Warn("Redis unavailable, using file cursor store: %v", err)
			store = catalog.NewFileStore(cfg.StateDir)
		}
	} else {
		store = catalog.NewFileStore(cfg.StateDir)
	}

	paginator := catalog.NewPaginator(source, store, logger)
	cache := keywords.NewCache(keywords.NewBuilder(paginator, lex, logger), nil)

	var trendsSrc runner.TrendSource
	if cfg.EnableTrends && cfg.GSCSiteURL != "" {
		trendsSrc = trends.NewFetcher(hc, logger, trends.Options{
			SiteURL:        cfg.GSCSiteURL,
			AccessToken:    cfg.GSCAccessToken,
			LookbackDays:   cfg.TrendLookbackDays,
			DelayDays:      cfg.TrendDelayDays,
			MinImpressions: cfg.TrendMinImpressions,
			TopN:           cfg.TrendTopN,
			Blacklist:      cfg.TrendBlacklist,
		}, nil)
	}

	run := runner.New(cfg, lex, logger, paginator, cache, trendsSrc, client, db)

	pinger := sitemap.NewPinger(hc, logger)
	ping := func(ctx context.Context) []sitemap.PingResult {
		sitemapURL := cfg.PrimarySitemap
		if sitemapURL == "" && cfg.PublicBase != "" {
			sitemapURL = cfg.PublicBase + "/sitemap-products.xml"
		}
		return pinger.Ping(ctx, sitemap.PingOptions{
			SitemapURL:     sitemapURL,
			Bing:           cfg.EnableBingPing,
			Google:         cfg.EnableGooglePing,
			IndexNowKey:    cfg.IndexNowKey,
			IndexNowKeyURL: cfg.IndexNowKeyURL,
			Host:           cfg.CanonicalDomain,
		})
	}

	// Initialize worker
	w := worker.New(cfg, logger, run, ping)

	// Start worker
	logger.Info("Starting worker...")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	w.Stop()
	db.Close()
}
