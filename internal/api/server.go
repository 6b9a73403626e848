package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seopilot/internal/api/handlers"
	"seopilot/internal/api/middleware"
	"seopilot/internal/catalog"
	"seopilot/internal/config"
	"seopilot/internal/database"
	"seopilot/internal/httpclient"
	"seopilot/internal/keywords"
	"seopilot/internal/logger"
	"seopilot/internal/report"
	"seopilot/internal/runner"
	"seopilot/internal/services/shopify"
	"seopilot/internal/sitemap"
	"seopilot/internal/trends"
	"seopilot/internal/worker"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, lex *config.Lexicon, log *logger.Logger, db *database.Database) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Shared clients
	hc := httpclient.New(log)
	client := shopify.NewClient(cfg.ShopifyStore, cfg.ShopifyAPIVersion, cfg.ShopifyAdminToken, hc, log)
	source := shopify.NewCatalogSource(client)
	paginator := catalog.NewPaginator(source, newCursorStore(cfg, log), log)
	cache := keywords.NewCache(keywords.NewBuilder(paginator, lex, log), nil)
	builder := sitemap.NewBuilder(cfg.ShopifyStore, cfg.CanonicalDomain)
	pinger := sitemap.NewPinger(hc, log)
	mailer := report.NewMailer(hc, log, cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailTo, cfg.EnableEmail)

	var trendsSrc runner.TrendSource
	if cfg.EnableTrends && cfg.GSCSiteURL != "" {
		trendsSrc = trends.NewFetcher(hc, log, trends.Options{
			SiteURL:        cfg.GSCSiteURL,
			AccessToken:    cfg.GSCAccessToken,
			LookbackDays:   cfg.TrendLookbackDays,
			DelayDays:      cfg.TrendDelayDays,
			MinImpressions: cfg.TrendMinImpressions,
			TopN:           cfg.TrendTopN,
			Blacklist:      cfg.TrendBlacklist,
		}, nil)
	}

	var publisher *worker.Publisher
	if cfg.KafkaBrokers != "" {
		publisher = worker.NewPublisher(cfg.KafkaBrokers, log)
	}

	run := runner.New(cfg, lex, log, paginator, cache, trendsSrc, client, db)

	// Initialize handlers
	seoHandler := handlers.NewSeoHandler(cfg, log, run, cache, trendsSrc, publisher, db)
	sitemapHandler := handlers.NewSitemapHandler(cfg, log, paginator, builder, pinger)
	registerHandler := handlers.NewRegisterHandler(cfg, log, client, cache)
	reportHandler := handlers.NewReportHandler(cfg, log, db, mailer)

	// Public routes
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "seopilot",
			"status":  "ok",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"env":         cfg.Env,
			"store":       cfg.ShopifyStore,
			"dry_run":     cfg.DryRun,
			"use_graphql": cfg.UseGraphQL,
			"batch_size":  cfg.BatchSize,
			"time":        time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/sitemap-products.xml", sitemapHandler.Products)
	router.GET("/robots.txt", sitemapHandler.Robots)
	if cfg.IndexNowKey != "" {
		// IndexNow expects the key served from the site root.
		router.GET("/"+cfg.IndexNowKey+".txt", func(c *gin.Context) {
			c.String(http.StatusOK, cfg.IndexNowKey)
		})
	}

	// Routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.AuthToken))
	{
		seo := v1.Group("/seo")
		{
			seo.GET("/run", seoHandler.Run)
			seo.POST("/run", seoHandler.Run)
			seo.GET("/keywords", seoHandler.Keywords)
			seo.GET("/trends", seoHandler.Trends)
			seo.GET("/runs", seoHandler.Runs)
			seo.POST("/ping", sitemapHandler.Ping)
		}

		products := v1.Group("/products")
		{
			products.POST("/register", registerHandler.Register)
		}

		reports := v1.Group("/report")
		{
			reports.GET("/daily", reportHandler.Daily)
			reports.POST("/daily", reportHandler.Daily)
		}
	}

	return &Server{
		config: cfg,
		logger: log,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// GetRouter exposes the router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// newCursorStore prefers Redis for the rotation cursor and falls back to a
// local file when no Redis is configured.
func newCursorStore(cfg *config.Config, log *logger.Logger) catalog.KeyValueStore {
	if cfg.RedisURL != "" {
		store, err := catalog.NewRedisStore(cfg.RedisURL, "seopilot:")
		if err == nil {
			return store
		}
		log.Warn("Redis unavailable, using file cursor store: %v", err)
	}
	return catalog.NewFileStore(cfg.StateDir)
}
