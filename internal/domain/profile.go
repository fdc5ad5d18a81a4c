package domain

import "strings"

// DietaryProfile holds the user's standing dietary restrictions and
// preferences. Set wholesale, read by every classification call, cleared
// to "no profile" by an explicit clear. The JSON shape matches the saved
// profile document.
type DietaryProfile struct {
	ProfileName        string             `json:"profile_name"`
	Allergies          []string           `json:"allergies,omitempty"`
	Intolerances       []string           `json:"intolerances,omitempty"`
	MedicalConditions  []string           `json:"medical_conditions,omitempty"`
	DietaryPreferences map[string]bool    `json:"dietary_preferences,omitempty"`
	AvoidAdditives     []string           `json:"avoid_additives,omitempty"`
	NutrientLimits     map[string]float64 `json:"nutrient_limits,omitempty"`
}

// Prefers reports whether a named dietary preference is enabled.
func (p *DietaryProfile) Prefers(name string) bool {
	if p == nil || p.DietaryPreferences == nil {
		return false
	}
	return p.DietaryPreferences[name]
}

// ActivePreferences returns the names of enabled preferences.
func (p *DietaryProfile) ActivePreferences() []string {
	if p == nil {
		return nil
	}
	var active []string
	for name, on := range p.DietaryPreferences {
		if on {
			active = append(active, name)
		}
	}
	return active
}

// NormalizeTerm lower-cases and trims a profile term for case-insensitive
// matching against record text and tags.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
