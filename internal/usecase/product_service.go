package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dietcheck/backend/internal/domain"
)

// ProductService handles barcode lookups with caching and classification.
type ProductService struct {
	cache    domain.CacheRepository
	catalog  domain.CatalogClient
	profiles *ProfileService
	cacheTTL time.Duration
}

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL time.Duration
}

// NewProductService creates a new product service with dependencies.
func NewProductService(
	cache domain.CacheRepository,
	catalog domain.CatalogClient,
	profiles *ProfileService,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	return &ProductService{
		cache:    cache,
		catalog:  catalog,
		profiles: profiles,
		cacheTTL: cacheTTL,
	}
}

// NutritionSummary carries the six headline per-100g values. Pointers so
// absent nutrients serialize as absent rather than zero.
type NutritionSummary struct {
	Calories *float64 `json:"calories,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Salt     *float64 `json:"salt,omitempty"`
	Fiber    *float64 `json:"fiber,omitempty"`
}

// ProductNutrition is the barcode lookup result: the record, its resolved
// headline nutrition, and the verdict against the active profile.
type ProductNutrition struct {
	Record    domain.ProductRecord `json:"record"`
	Nutrition NutritionSummary     `json:"nutrition"`
	Verdict   domain.Verdict       `json:"verdict"`
	Source    string               `json:"source"`
}

// GetProduct looks up a product by barcode.
// Flow: check cache -> fetch from catalog -> cache -> classify -> return.
func (s *ProductService) GetProduct(ctx context.Context, barcode string, strict bool) (*ProductNutrition, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := "product:" + barcode
	source := "Catalog"

	record, err := s.getFromCache(ctx, cacheKey)
	if err == nil && record != nil {
		source = "Cache"
	} else {
		record, err = s.catalog.GetProduct(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cacheKey, record, s.cacheTTL); err != nil {
			log.Printf("[PRODUCT] Failed to cache %s: %v", barcode, err)
		}
	}

	result := &ProductNutrition{
		Record:    *record,
		Nutrition: Summarize(record),
		Verdict:   ClassifyProduct(record, s.profiles.Active(), strict),
		Source:    source,
	}
	return result, nil
}

// getFromCache retrieves a cached product record.
func (s *ProductService) getFromCache(ctx context.Context, key string) (*domain.ProductRecord, error) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var record domain.ProductRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding cached record: %w", err)
	}
	return &record, nil
}

// Summarize resolves the headline nutrients, leaving absent or
// non-numeric values nil.
func Summarize(record *domain.ProductRecord) NutritionSummary {
	resolve := func(primary, fallback string) *float64 {
		if v, ok := record.Nutrient(primary, fallback); ok {
			return &v
		}
		return nil
	}
	return NutritionSummary{
		Calories: resolve(domain.KeyCalories, "energy-kcal"),
		Fat:      resolve(domain.KeyFat, "fat"),
		Sugar:    resolve(domain.KeySugar, "sugars"),
		Protein:  resolve(domain.KeyProtein, "proteins"),
		Salt:     resolve(domain.KeySalt, "salt"),
		Fiber:    resolve(domain.KeyFiber, "fiber"),
	}
}
