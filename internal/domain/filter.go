package domain

// Shorthand bounds implied by the low_* filter flags (grams per 100g).
const (
	LowFatLimit   = 3.0
	LowFiberLimit = 3.0
	LowSugarLimit = 5.0
	LowSaltLimit  = 0.3
)

// FilterSpec holds the per-search nutrient filters. Explicit bounds are
// pointers so "unset" is distinguishable from zero; an explicit max always
// overrides the matching low_* shorthand.
type FilterSpec struct {
	LowFat   bool `json:"low_fat,omitempty"`
	LowFiber bool `json:"low_fiber,omitempty"`
	LowSugar bool `json:"low_sugar,omitempty"`
	LowSalt  bool `json:"low_salt,omitempty"`
	NoNuts   bool `json:"no_nuts,omitempty"`

	MaxCalories *float64 `json:"max_calories,omitempty"`
	MinCalories *float64 `json:"min_calories,omitempty"`
	MaxFat      *float64 `json:"max_fat,omitempty"`
	MaxFiber    *float64 `json:"max_fiber,omitempty"`
	MinFiber    *float64 `json:"min_fiber,omitempty"`
	MaxSugar    *float64 `json:"max_sugar,omitempty"`
	MaxSalt     *float64 `json:"max_salt,omitempty"`
	MinProtein  *float64 `json:"min_protein,omitempty"`
	MaxProtein  *float64 `json:"max_protein,omitempty"`
}

// resolveMax returns the explicit bound if set, else the shorthand default.
func resolveMax(explicit *float64, shorthand bool, fallback float64) *float64 {
	if explicit != nil {
		return explicit
	}
	if shorthand {
		v := fallback
		return &v
	}
	return nil
}

// FatLimit returns the effective fat maximum, or nil when unbounded.
func (s *FilterSpec) FatLimit() *float64 {
	return resolveMax(s.MaxFat, s.LowFat, LowFatLimit)
}

// FiberLimit returns the effective fiber maximum, or nil when unbounded.
func (s *FilterSpec) FiberLimit() *float64 {
	return resolveMax(s.MaxFiber, s.LowFiber, LowFiberLimit)
}

// SugarLimit returns the effective sugar maximum, or nil when unbounded.
func (s *FilterSpec) SugarLimit() *float64 {
	return resolveMax(s.MaxSugar, s.LowSugar, LowSugarLimit)
}

// SaltLimit returns the effective salt maximum, or nil when unbounded.
func (s *FilterSpec) SaltLimit() *float64 {
	return resolveMax(s.MaxSalt, s.LowSalt, LowSaltLimit)
}

// HasAny reports whether any filter is active.
func (s *FilterSpec) HasAny() bool {
	if s == nil {
		return false
	}
	return s.NoNuts ||
		s.FatLimit() != nil || s.FiberLimit() != nil ||
		s.SugarLimit() != nil || s.SaltLimit() != nil ||
		s.MaxCalories != nil || s.MinCalories != nil ||
		s.MinFiber != nil || s.MinProtein != nil || s.MaxProtein != nil
}
