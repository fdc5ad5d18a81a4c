package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient defines the interface for the remote product catalog
type CatalogClient interface {
	SearchProducts(ctx context.Context, query string) ([]ProductRecord, error)
	SearchProductsByLabel(ctx context.Context, query, label string) ([]ProductRecord, error)
	GetProduct(ctx context.Context, barcode string) (*ProductRecord, error)
}

// ProfileRepository defines the interface for dietary profile persistence
type ProfileRepository interface {
	Load() (*DietaryProfile, error)
	Save(profile *DietaryProfile) error
	Delete() error
}
