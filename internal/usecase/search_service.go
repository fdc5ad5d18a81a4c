package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dietcheck/backend/internal/domain"
)

// Safe-only search settings: labeled search must produce at least this many
// hits before the general fallback is skipped, and the fallback inspects at
// most this many candidates.
const (
	safeSearchMinLabeled    = 5
	safeSearchMaxCandidates = 20
)

// SearchService orchestrates catalog searches and candidate evaluation.
type SearchService struct {
	catalog  domain.CatalogClient
	profiles *ProfileService
}

// NewSearchService creates a search service with its dependencies.
func NewSearchService(catalog domain.CatalogClient, profiles *ProfileService) *SearchService {
	return &SearchService{catalog: catalog, profiles: profiles}
}

// SearchResult is the outcome of one search call.
type SearchResult struct {
	Products  []ClassifiedProduct `json:"products"`
	Inspected int                 `json:"inspected"`
	Filtered  bool                `json:"filtered"`
}

// Search runs a name search against the catalog, prunes the candidates with
// the filter spec, and classifies the survivors against the active profile
// in lenient mode. An empty catalog result is not an error; it yields an
// empty result set.
func (s *SearchService) Search(ctx context.Context, productName string, spec *domain.FilterSpec) (*SearchResult, error) {
	if productName == "" {
		return nil, domain.ErrInvalidRequest
	}
	if spec == nil {
		spec = &domain.FilterSpec{}
	}

	candidates, err := s.catalog.SearchProducts(ctx, CleanSearchQuery(productName))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return &SearchResult{Products: []ClassifiedProduct{}, Filtered: spec.HasAny()}, nil
		}
		return nil, fmt.Errorf("searching catalog: %w", err)
	}

	products, inspected := EvaluateSearchCandidates(candidates, spec, s.profiles.Active())
	return &SearchResult{
		Products:  products,
		Inspected: inspected,
		Filtered:  spec.HasAny(),
	}, nil
}

// SearchSafeOnly returns only products that classify as fully safe for the
// active profile under strict mode: is_safe and zero warnings. When the
// profile prefers vegan or vegetarian, a label-filtered catalog search runs
// first; a general search tops up if fewer than safeSearchMinLabeled hits
// survive.
func (s *SearchService) SearchSafeOnly(ctx context.Context, productName string) (*SearchResult, error) {
	if productName == "" {
		return nil, domain.ErrInvalidRequest
	}
	profile := s.profiles.Active()
	if profile == nil {
		return nil, domain.ErrNoProfile
	}

	query := CleanSearchQuery(productName)
	safe := make([]ClassifiedProduct, 0, maxAdmitted)
	inspected := 0

	label := ""
	if profile.Prefers("vegan") {
		label = "vegan"
	} else if profile.Prefers("vegetarian") {
		label = "vegetarian"
	}

	if label != "" {
		labeled, err := s.catalog.SearchProductsByLabel(ctx, query, label)
		if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
			return nil, fmt.Errorf("label search: %w", err)
		}
		for i := range labeled {
			if i >= maxAdmitted {
				break
			}
			inspected++
			verdict := ClassifyProduct(&labeled[i], profile, true)
			if verdict.IsSafe && len(verdict.Warnings) == 0 {
				safe = append(safe, ClassifiedProduct{Record: labeled[i], Verdict: verdict})
				if len(safe) >= maxAdmitted {
					break
				}
			}
		}
	}

	if len(safe) < safeSearchMinLabeled {
		candidates, err := s.catalog.SearchProducts(ctx, query)
		if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
			return nil, fmt.Errorf("searching catalog: %w", err)
		}
		for i := range candidates {
			if inspected >= safeSearchMaxCandidates || len(safe) >= maxAdmitted {
				break
			}
			inspected++
			verdict := ClassifyProduct(&candidates[i], profile, true)
			if verdict.IsSafe && len(verdict.Warnings) == 0 {
				safe = append(safe, ClassifiedProduct{Record: candidates[i], Verdict: verdict})
			}
		}
	}

	return &SearchResult{Products: safe, Inspected: inspected}, nil
}
