package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"seopilot/internal/config"
	"seopilot/internal/database"
	"seopilot/internal/logger"
	"seopilot/internal/report"
)

// ReportHandler emails run summaries on demand (usually from a daily cron).
type ReportHandler struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	mailer *report.Mailer
}

func NewReportHandler(cfg *config.Config, log *logger.Logger, db *database.Database, mailer *report.Mailer) *ReportHandler {
	return &ReportHandler{
		config: cfg,
		logger: log,
		db:     db,
		mailer: mailer,
	}
}

// Daily sends the daily report covering recent runs.
// GET|POST /api/v1/report/daily
func (h *ReportHandler) Daily(c *gin.Context) {
	limit := 10
	if v := c.Query("runs"); v != "" {
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

	if err := h.mailer.SendDailyReport(c.Request.Context(), h.config.ShopifyStore, runs); err != nil {
		h.logger.Error("Daily report failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent", "runs": len(runs)})
}
