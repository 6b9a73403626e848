package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seopilot/internal/catalog"
	"seopilot/internal/config"
	"seopilot/internal/logger"
	"seopilot/internal/sitemap"
)

// SitemapHandler serves the product sitemap and robots.txt and triggers
// search-engine pings.
type SitemapHandler struct {
	config    *config.Config
	logger    *logger.Logger
	paginator *catalog.Paginator
	builder   *sitemap.Builder
	pinger    *sitemap.Pinger
}

func NewSitemapHandler(cfg *config.Config, log *logger.Logger, paginator *catalog.Paginator,
	builder *sitemap.Builder, pinger *sitemap.Pinger) *SitemapHandler {
	return &SitemapHandler{
		config:    cfg,
		logger:    log,
		paginator: paginator,
		builder:   builder,
		pinger:    pinger,
	}
}

// Products renders the supplemental product sitemap.
// GET /sitemap-products.xml
func (h *SitemapHandler) Products(c *gin.Context) {
	products, err := h.paginator.ListAll(c.Request.Context(), 0)
	if err != nil {
		h.logger.Error("Sitemap catalog fetch failed: %v", err)
		c.String(http.StatusBadGateway, "catalog unavailable")
		return
	}

	body, err := h.builder.Render(products)
	if err != nil {
		h.logger.Error("Sitemap render failed: %v", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots serves robots.txt pointing crawlers at the sitemaps.
// GET /robots.txt
func (h *SitemapHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, sitemap.RobotsTxt(h.config.PrimarySitemap, h.config.PublicBase))
}

// Ping notifies the enabled search-engine sinks about the sitemap.
// POST /api/v1/seo/ping
func (h *SitemapHandler) Ping(c *gin.Context) {
	results := h.pinger.Ping(c.Request.Context(), h.PingOptions())
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// PingOptions derives the sink configuration. The worker reuses it for
// queued ping jobs.
func (h *SitemapHandler) PingOptions() sitemap.PingOptions {
	sitemapURL := h.config.PrimarySitemap
	if sitemapURL == "" && h.config.PublicBase != "" {
		sitemapURL = h.config.PublicBase + "/sitemap-products.xml"
	}
	return sitemap.PingOptions{
		SitemapURL:     sitemapURL,
		Bing:           h.config.EnableBingPing,
		Google:         h.config.EnableGooglePing,
		IndexNowKey:    h.config.IndexNowKey,
		IndexNowKeyURL: h.config.IndexNowKeyURL,
		Host:           h.config.CanonicalDomain,
	}
}
