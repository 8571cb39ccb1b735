package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products *usecase.ProductService
}

// NewHandler creates a new HTTP handler
func NewHandler(products *usecase.ProductService) *Handler {
	return &Handler{products: products}
}

// Root returns the liveness message
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Product Comparison API is running!",
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopscout-backend",
		"version": "1.0.0",
	})
}

// ScrapeProduct handles POST /scrape-product. A transport failure is a 400;
// a failure inside extraction still yields a 200 whose data payload is the
// {"error": ...} shape.
func (h *Handler) ScrapeProduct(c *gin.Context) {
	var req domain.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Error scraping product: %s", err),
		})
		return
	}

	record, err := h.products.ScrapeProduct(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrExtractionFailed) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    gin.H{"error": err.Error()},
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Error scraping product: %s", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// AskQuestion handles POST /ask-question
func (h *Handler) AskQuestion(c *gin.Context) {
	var req domain.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Error processing question: %s", err),
		})
		return
	}

	answer, err := h.products.AskQuestion(c.Request.Context(), req.ProductData, req.Question)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Error processing question: %s", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"answer":  answer,
	})
}

// CompareProducts handles POST /compare-products
func (h *Handler) CompareProducts(c *gin.Context) {
	var req domain.ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Error comparing products: %s", err),
		})
		return
	}

	result, err := h.products.CompareProducts(c.Request.Context(), req.ProductData)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Error comparing products: %s", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"comparison":       result.Comparison,
		"similar_products": result.SimilarProducts,
	})
}
