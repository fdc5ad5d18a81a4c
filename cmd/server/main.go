package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dietcheck/backend/config"
	httpDelivery "github.com/dietcheck/backend/internal/delivery/http"
	"github.com/dietcheck/backend/internal/infrastructure/cache"
	"github.com/dietcheck/backend/internal/infrastructure/openfoodfacts"
	"github.com/dietcheck/backend/internal/infrastructure/profilestore"
	"github.com/dietcheck/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting DietCheck Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s (limit: %d req/min)", cfg.Catalog.BaseURL, cfg.RateLimit.CatalogPerMinute)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	catalogClient := openfoodfacts.NewClient(
		cfg.Catalog.BaseURL,
		cfg.Catalog.UserAgent,
		cfg.RateLimit.CatalogPerMinute,
	)

	profileStore := profilestore.NewFileStore(cfg.Profile.Path)
	log.Printf("Profile path: %s", cfg.Profile.Path)

	// Initialize usecase layer
	profileService := usecase.NewProfileService(profileStore)
	searchService := usecase.NewSearchService(catalogClient, profileService)
	productService := usecase.NewProductService(
		memoryCache,
		catalogClient,
		profileService,
		usecase.ProductServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productService, searchService, profileService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
