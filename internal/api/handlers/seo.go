package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"seopilot/internal/config"
	"seopilot/internal/database"
	"seopilot/internal/keywords"
	"seopilot/internal/logger"
	"seopilot/internal/runner"
	"seopilot/internal/worker"
)

// SeoHandler exposes the optimization pipeline over HTTP: trigger runs,
// inspect the keyword map, and review history.
type SeoHandler struct {
	config    *config.Config
	logger    *logger.Logger
	runner    *runner.Runner
	cache     *keywords.Cache
	trendsSrc runner.TrendSource
	publisher *worker.Publisher
	db        *database.Database
}

func NewSeoHandler(cfg *config.Config, log *logger.Logger, r *runner.Runner,
	cache *keywords.Cache, trendsSrc runner.TrendSource, publisher *worker.Publisher, db *database.Database) *SeoHandler {
	return &SeoHandler{
		config:    cfg,
		logger:    log,
		runner:    r,
		cache:     cache,
		trendsSrc: trendsSrc,
		publisher: publisher,
		db:        db,
	}
}

// Run triggers one SEO pass. Cron services hit this with GET; query params
// override the configured defaults for this run only.
// GET|POST /api/v1/seo/run
func (h *SeoHandler) Run(c *gin.Context) {
	opts := h.runner.DefaultOptions()
	if v := c.Query("batch"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.BatchSize = n
		}
	}
	if boolParam(c, "dry_run") {
		opts.DryRun = true
	}
	if boolParam(c, "force") {
		opts.ForceOverwrite = true
	}
	if boolParam(c, "rebuild") {
		opts.RebuildKeywords = true
	}
	if v := c.Query("rotate"); v != "" {
		opts.Rotate = v == "1" || v == "true"
	}

	if boolParam(c, "async") && h.publisher != nil {
		event := worker.Event{
			Type:      worker.EventRun,
			BatchSize: opts.BatchSize,
			DryRun:    opts.DryRun,
			Force:     opts.ForceOverwrite,
			Rebuild:   opts.RebuildKeywords,
			Timestamp: time.Now(),
		}
		if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue run"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
		return
	}

	summary, err := h.runner.Run(c.Request.Context(), opts)
	if err != nil {
		if err == runner.ErrLocked {
			c.JSON(http.StatusConflict, gin.H{"error": "A run is already in progress"})
			return
		}
		h.logger.Error("Run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Keywords returns the current keyword map, rebuilding on demand.
// GET /api/v1/seo/keywords
func (h *SeoHandler) Keywords(c *gin.Context) {
	params := keywords.BuildParams{
		Limit:          h.config.KeywordTopLimit,
		MinLen:         h.config.KeywordMinLen,
		IncludeBigrams: h.config.IncludeBigrams,
		Scope:          "all",
	}
	ttl := time.Duration(h.config.CacheTTLMinutes) * time.Minute

	kwMap, err := h.cache.GetOrBuild(c.Request.Context(), h.config.KeywordScanLimit, params, ttl, boolParam(c, "rebuild"))
	if err != nil {
		h.logger.Error("Keyword map build failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to build keyword map"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scanned":  kwMap.Scanned,
		"cached":   kwMap.Cached,
		"unigrams": kwMap.Unigrams,
		"bigrams":  kwMap.Bigrams,
	})
}

// Trends returns the filtered Search Console query rows.
// GET /api/v1/seo/trends
func (h *SeoHandler) Trends(c *gin.Context) {
	if h.trendsSrc == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false, "rows": []struct{}{}})
		return
	}
	rows := h.trendsSrc.Fetch(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"enabled": true, "rows": rows})
}

// Runs lists recent run history rows.
// GET /api/v1/seo/runs
func (h *SeoHandler) Runs(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := h.db.RecentRuns(limit)
	if err != nil {
		h.logger.Error("Failed to load run history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load run history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func boolParam(c *gin.Context, name string) bool {
	v := c.Query(name)
	return v == "1" || v == "true" || v == "yes"
}
