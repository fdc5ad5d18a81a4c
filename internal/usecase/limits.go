package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dietcheck/backend/internal/domain"
)

// BoundKind distinguishes maximum from minimum thresholds.
type BoundKind string

const (
	BoundMax BoundKind = "max"
	BoundMin BoundKind = "min"
)

// Violation describes one nutrient bound that the record exceeds or
// undershoots.
type Violation struct {
	Nutrient string
	Value    float64
	Bound    float64
	Kind     BoundKind
}

// Reason renders the violation the way search rejections report it.
func (v Violation) Reason() string {
	switch v.Kind {
	case BoundMin:
		return fmt.Sprintf("%s: %vg/100g (minimum: %vg)", v.Nutrient, v.Value, v.Bound)
	default:
		return fmt.Sprintf("%s: %vg/100g (limit: %vg)", v.Nutrient, v.Value, v.Bound)
	}
}

// checkMax returns a violation when the resolved value exceeds the bound.
// An unset bound or an absent value never violates.
func checkMax(record *domain.ProductRecord, primary, fallback, name string, bound *float64) *Violation {
	if bound == nil {
		return nil
	}
	value, ok := record.Nutrient(primary, fallback)
	if !ok || value <= *bound {
		return nil
	}
	return &Violation{Nutrient: name, Value: value, Bound: *bound, Kind: BoundMax}
}

// checkMin returns a violation when the resolved value falls below the bound.
func checkMin(record *domain.ProductRecord, primary, fallback, name string, bound *float64) *Violation {
	if bound == nil {
		return nil
	}
	value, ok := record.Nutrient(primary, fallback)
	if !ok || value >= *bound {
		return nil
	}
	return &Violation{Nutrient: name, Value: value, Bound: *bound, Kind: BoundMin}
}

// FirstBoundViolation evaluates the filter spec's numeric bounds in the fixed
// order calories, fat, fiber, sugar, salt, protein min, protein max, calorie
// min, fiber min, returning the first failure. Missing values never reject.
func FirstBoundViolation(record *domain.ProductRecord, spec *domain.FilterSpec) *Violation {
	checks := []func() *Violation{
		func() *Violation {
			return checkMax(record, domain.KeyCalories, "energy-kcal", "Calories", spec.MaxCalories)
		},
		func() *Violation { return checkMax(record, domain.KeyFat, "fat", "Fat", spec.FatLimit()) },
		func() *Violation { return checkMax(record, domain.KeyFiber, "fiber", "Fiber", spec.FiberLimit()) },
		func() *Violation { return checkMax(record, domain.KeySugar, "sugars", "Sugar", spec.SugarLimit()) },
		func() *Violation { return checkMax(record, domain.KeySalt, "salt", "Salt", spec.SaltLimit()) },
		func() *Violation { return checkMin(record, domain.KeyProtein, "proteins", "Protein", spec.MinProtein) },
		func() *Violation { return checkMax(record, domain.KeyProtein, "proteins", "Protein", spec.MaxProtein) },
		func() *Violation {
			return checkMin(record, domain.KeyCalories, "energy-kcal", "Calories", spec.MinCalories)
		},
		func() *Violation { return checkMin(record, domain.KeyFiber, "fiber", "Fiber", spec.MinFiber) },
	}
	for _, check := range checks {
		if v := check(); v != nil {
			return v
		}
	}
	return nil
}

// CheckProfileLimits evaluates the profile's nutrient_limits map. Each entry
// is a maximum for an arbitrary nutrient key; absent or non-numeric record
// values never violate.
func CheckProfileLimits(record *domain.ProductRecord, limits map[string]float64) []Violation {
	// Stable order keeps repeat classifications byte-identical.
	keys := make([]string, 0, len(limits))
	for nutrient := range limits {
		keys = append(keys, nutrient)
	}
	sort.Strings(keys)

	var violations []Violation
	for _, nutrient := range keys {
		limit := limits[nutrient]
		value, ok := record.NutrientByKey(nutrient)
		if !ok || value <= limit {
			continue
		}
		violations = append(violations, Violation{
			Nutrient: strings.TrimSuffix(nutrient, "_100g"),
			Value:    value,
			Bound:    limit,
			Kind:     BoundMax,
		})
	}
	return violations
}
