package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"seopilot/internal/config"
	"seopilot/internal/keywords"
	"seopilot/internal/logger"
	"seopilot/internal/services/shopify"
	"seopilot/internal/textutil"
)

// RegisterHandler creates new products in the store with a clean handle so
// they enter the optimization rotation immediately.
type RegisterHandler struct {
	config *config.Config
	logger *logger.Logger
	client *shopify.Client
	cache  *keywords.Cache
}

func NewRegisterHandler(cfg *config.Config, log *logger.Logger, client *shopify.Client, cache *keywords.Cache) *RegisterHandler {
	return &RegisterHandler{
		config: cfg,
		logger: log,
		client: client,
		cache:  cache,
	}
}

type registerRequest struct {
	Title       string   `json:"title" binding:"required"`
	BodyHTML    string   `json:"body_html"`
	Vendor      string   `json:"vendor"`
	ProductType string   `json:"product_type"`
	Tags        string   `json:"tags"`
	Price       string   `json:"price"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
}

// Register creates a product via the Admin API.
// POST /api/v1/products/register
func (h *RegisterHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	payload := map[string]interface{}{
		"title":        req.Title,
		"body_html":    req.BodyHTML,
		"vendor":       req.Vendor,
		"product_type": req.ProductType,
		"tags":         req.Tags,
		"status":       status,
		"handle":       textutil.Slugify(req.Title),
	}
	if req.Price != "" {
		payload["variants"] = []map[string]interface{}{{"price": req.Price}}
	}
	if len(req.Images) > 0 {
		images := make([]map[string]interface{}, 0, len(req.Images))
		for _, src := range req.Images {
			images = append(images, map[string]interface{}{"src": src})
		}
		payload["images"] = images
	}

	created, err := h.client.CreateProduct(c.Request.Context(), payload)
	if err != nil {
		h.logger.Error("Product create failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create product"})
		return
	}

	// New catalog content invalidates the keyword map.
	h.cache.Invalidate()

	c.JSON(http.StatusCreated, gin.H{
		"id":     created.ID,
		"handle": created.Handle,
		"title":  created.Title,
	})
}
