package usecase

import (
	"fmt"
	"strings"

	"github.com/dietcheck/backend/internal/domain"
)

// Recommendation thresholds (grams per 100g of resolved nutrient value).
const (
	recommendSugarAbove = 5.0
	recommendSaltAbove  = 1.5
)

// ClassifyProduct analyzes one record against the profile and returns a
// Verdict. With no active profile every product is trivially safe. The
// checks run in fixed order: allergies, intolerances, profile nutrient
// limits, vegan, vegetarian, avoided additives. Allergy, nutrient-limit and
// diet failures always disqualify; intolerance and additive matches only
// disqualify in strict mode. is_safe starts true and is only ever
// downgraded.
func ClassifyProduct(record *domain.ProductRecord, profile *domain.DietaryProfile, strict bool) domain.Verdict {
	if profile == nil {
		return domain.SafeVerdict()
	}

	verdict := domain.SafeVerdict()

	for _, allergy := range profile.Allergies {
		if ContainsAllergen(record, allergy) {
			verdict.Warnings = append(verdict.Warnings,
				fmt.Sprintf("ALLERGY WARNING: Contains %s", allergy))
			verdict.IsSafe = false
		}
	}

	ingredients := record.IngredientsLower()
	for _, intolerance := range profile.Intolerances {
		term := domain.NormalizeTerm(intolerance)
		if term != "" && strings.Contains(ingredients, term) {
			verdict.Warnings = append(verdict.Warnings,
				fmt.Sprintf("INTOLERANCE WARNING: May contain %s", intolerance))
			if strict {
				verdict.IsSafe = false
			}
		}
	}

	for _, v := range CheckProfileLimits(record, profile.NutrientLimits) {
		verdict.Warnings = append(verdict.Warnings,
			fmt.Sprintf("HIGH %s: %vg (limit: %vg)", strings.ToUpper(v.Nutrient), v.Value, v.Bound))
		verdict.IsSafe = false
	}

	for _, diet := range []string{"vegan", "vegetarian"} {
		if !profile.Prefers(diet) {
			continue
		}
		compliant, warnings := CheckDietStatus(record, diet, strict)
		verdict.Warnings = append(verdict.Warnings, warnings...)
		if !compliant {
			verdict.IsSafe = false
		}
	}

	for _, additive := range profile.AvoidAdditives {
		term := domain.NormalizeTerm(additive)
		if term == "" {
			continue
		}
		for _, tag := range record.AdditivesTags {
			if strings.Contains(strings.ToLower(tag), term) {
				verdict.Warnings = append(verdict.Warnings,
					fmt.Sprintf("CONTAINS AVOIDED ADDITIVE: %s", additive))
				if strict {
					verdict.IsSafe = false
				}
				break
			}
		}
	}

	// Recommendations are advisory and never affect the verdict.
	if profile.Prefers("low_sugar") {
		if sugar, ok := record.Nutrient(domain.KeySugar, "sugars"); ok && sugar > recommendSugarAbove {
			verdict.Recommendations = append(verdict.Recommendations,
				"Consider a low-sugar alternative")
		}
	}
	if profile.Prefers("low_salt") {
		if salt, ok := record.Nutrient(domain.KeySalt, "salt"); ok && salt > recommendSaltAbove {
			verdict.Recommendations = append(verdict.Recommendations,
				"Consider a low-salt alternative")
		}
	}

	return verdict
}
