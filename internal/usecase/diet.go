package usecase

import (
	"fmt"
	"strings"

	"github.com/dietcheck/backend/internal/domain"
)

// Ingredient terms that rule out each diet. First match wins.
var (
	nonVeganIndicators = []string{
		"milk", "egg", "meat", "fish", "honey", "gelatin", "whey", "casein",
		"dairy", "cheese", "butter", "cream", "lactose", "chicken", "beef",
		"pork", "bacon", "lard",
	}
	nonVegetarianIndicators = []string{
		"meat", "fish", "chicken", "beef", "pork", "bacon", "lard",
		"gelatin", "anchovies", "tuna", "salmon", "cod",
	}
)

// minIngredientsLen is the shortest ingredients text considered informative
// enough to infer diet compliance from the absence of indicators.
const minIngredientsLen = 20

// dietIndicators returns the negative-indicator list for a diet type.
func dietIndicators(dietType string) []string {
	if dietType == "vegan" {
		return nonVeganIndicators
	}
	return nonVegetarianIndicators
}

// CheckDietStatus determines whether the record complies with the given diet
// ("vegan" or "vegetarian"). Precedence: explicit unknown-status disclosure,
// then explicit label, then first negative ingredient indicator, then the
// insufficient-information fallback (strict mode fails it, lenient passes).
// Warnings explaining a failure or unknown status are returned alongside.
func CheckDietStatus(record *domain.ProductRecord, dietType string, strict bool) (bool, []string) {
	ingredients := record.IngredientsLower()
	upper := strings.ToUpper(dietType)
	var warnings []string

	if strings.Contains(ingredients, dietType+" status unknown") {
		warnings = append(warnings, fmt.Sprintf(
			"%s STATUS UNKNOWN: Product explicitly states unknown %s status", upper, dietType))
		return false, warnings
	}

	for _, label := range record.LabelsTags {
		if strings.Contains(strings.ToLower(label), dietType) {
			return true, nil
		}
	}

	for _, indicator := range dietIndicators(dietType) {
		if strings.Contains(ingredients, indicator) {
			warnings = append(warnings, fmt.Sprintf("NOT %s: Contains %s", upper, indicator))
			return false, warnings
		}
	}

	if len(strings.TrimSpace(ingredients)) < minIngredientsLen {
		warning := fmt.Sprintf("%s STATUS UNKNOWN: Insufficient ingredient information", upper)
		if strict {
			warning += " - FILTERED OUT"
		}
		warnings = append(warnings, warning)
		return !strict, warnings
	}

	return true, nil
}
