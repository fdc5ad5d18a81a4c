package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dietcheck/backend/internal/domain"
	"github.com/dietcheck/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products *usecase.ProductService
	search   *usecase.SearchService
	profiles *usecase.ProfileService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *usecase.ProductService,
	search *usecase.SearchService,
	profiles *usecase.ProfileService,
) *Handler {
	return &Handler{products: products, search: search, profiles: profiles}
}

// searchRequest is the strict schema for search calls. Absent filters decode
// to the zero FilterSpec (no bounds set).
type searchRequest struct {
	ProductName string            `json:"product_name" binding:"required"`
	Filters     domain.FilterSpec `json:"filters"`
}

// safeSearchRequest is the schema for safe-only search calls.
type safeSearchRequest struct {
	ProductName string `json:"product_name" binding:"required"`
}

// productItem is one search hit in a response.
type productItem struct {
	Barcode         string                   `json:"barcode"`
	Name            string                   `json:"name"`
	Brand           string                   `json:"brand"`
	Safety          domain.SafetyLevel       `json:"safety"`
	Verdict         domain.Verdict           `json:"verdict"`
	Nutrition       usecase.NutritionSummary `json:"nutrition"`
}

func toProductItems(products []usecase.ClassifiedProduct) []productItem {
	items := make([]productItem, 0, len(products))
	for _, p := range products {
		items = append(items, productItem{
			Barcode:   p.Record.Code,
			Name:      p.Record.DisplayName(),
			Brand:     p.Record.DisplayBrand(),
			Safety:    p.Verdict.Level(),
			Verdict:   p.Verdict,
			Nutrition: usecase.Summarize(&p.Record),
		})
	}
	return items
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dietcheck-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles name search with optional nutrient filters
func (h *Handler) SearchProducts(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_name is required"})
		return
	}

	result, err := h.search.Search(c.Request.Context(), req.ProductName, &req.Filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":     req.ProductName,
		"products":  toProductItems(result.Products),
		"inspected": result.Inspected,
		"filtered":  result.Filtered,
	})
}

// SearchSafeProducts handles strict safe-only search. Requires an active
// dietary profile.
func (h *Handler) SearchSafeProducts(c *gin.Context) {
	var req safeSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_name is required"})
		return
	}

	result, err := h.search.SearchSafeOnly(c.Request.Context(), req.ProductName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":     req.ProductName,
		"products":  toProductItems(result.Products),
		"inspected": result.Inspected,
	})
}

// GetProduct handles barcode lookups. The strict query flag escalates
// advisory findings to disqualifying ones.
func (h *Handler) GetProduct(c *gin.Context) {
	barcode := c.Param("barcode")
	strict := c.Query("strict") == "true"

	result, err := h.products.GetProduct(c.Request.Context(), barcode, strict)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barcode":   result.Record.Code,
		"name":      result.Record.DisplayName(),
		"brand":     result.Record.DisplayBrand(),
		"nutrition": result.Nutrition,
		"safety":    result.Verdict.Level(),
		"verdict":   result.Verdict,
		"source":    result.Source,
	})
}

// GetProfile returns the active dietary profile, or null when none is set
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profile": h.profiles.Active()})
}

// SetProfile replaces the active dietary profile
func (h *Handler) SetProfile(c *gin.Context) {
	var profile domain.DietaryProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile document"})
		return
	}

	if err := h.profiles.Set(&profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile '" + profile.ProfileName + "' has been set and saved",
		"profile": profile,
	})
}

// ClearProfile drops the active profile and its saved document
func (h *Handler) ClearProfile(c *gin.Context) {
	if err := h.profiles.Clear(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile cleared"})
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoProfile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
