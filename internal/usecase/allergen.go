package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dietcheck/backend/internal/domain"
)

// nutKeywords is the nut-family term list scanned across record fields.
var nutKeywords = []string{
	"nuts", "nut", "almond", "walnut", "peanut", "cashew",
	"pistachio", "hazelnut", "pecan", "macadamia", "brazil nut",
	"pine nut", "chestnut", "beechnut", "hickory nut",
	"may contain nuts", "may contain nut", "tree nuts",
}

// nutWarningPhrases count as a contamination signal even without a
// percentage figure.
var nutWarningPhrases = []string{
	"may contain nuts", "may contain nut", "contains nuts", "contains nut",
}

// nutPercentRegex extracts the percentage figure following a nut term, as in
// "hazelnuts 12%" or "almond: 2.5 %".
var nutPercentRegex = regexp.MustCompile(
	`(?:nuts|nut|walnut|almond|peanut|cashew|pistachio|hazelnut|pecan|macadamia)[^%]*?(\d+(?:\.\d+)?)\s*%`,
)

// nutAliases are the allergen names that trigger the specialized nut scan.
var nutAliases = map[string]bool{
	"nuts": true, "nut": true, "tree nuts": true,
}

// ContainsAllergen reports whether the record contains the named allergen.
// Generic allergens match by substring against allergen tags or ingredients
// text; the nut family gets a multi-field, percentage-aware scan.
func ContainsAllergen(record *domain.ProductRecord, allergen string) bool {
	name := domain.NormalizeTerm(allergen)
	if name == "" {
		return false
	}
	if nutAliases[name] {
		return containsNuts(record)
	}

	for _, tag := range record.AllergensTags {
		if strings.Contains(strings.ToLower(tag), name) {
			return true
		}
	}
	return strings.Contains(record.IngredientsLower(), name)
}

// containsNuts evaluates the disjunction of the four nut signals: allergen
// tags, ingredients text, auxiliary text/tag fields, and the nutrient
// breakdown scan.
func containsNuts(record *domain.ProductRecord) bool {
	for _, tag := range record.AllergensTags {
		if strings.Contains(strings.ToLower(tag), "nut") {
			return true
		}
	}

	if containsAnyNutKeyword(record.IngredientsLower()) {
		return true
	}

	for _, text := range record.TextFields() {
		if containsAnyNutKeyword(text) {
			return true
		}
	}
	for _, tags := range record.TagFields() {
		for _, tag := range tags {
			if containsAnyNutKeyword(strings.ToLower(tag)) {
				return true
			}
		}
	}

	return nutMentionInNutriments(record.Nutriments)
}

// nutMentionInNutriments walks the nutrient breakdown entries looking for a
// nut term. A bare keyword hit is noisy there (trace ingredient listings),
// so it only counts with a positive percentage figure or an explicit warning
// phrase; a parsed percentage of exactly 0 suppresses the match.
func nutMentionInNutriments(nutriments map[string]interface{}) bool {
	for key, value := range nutriments {
		entry := strings.ToLower(fmt.Sprintf("%s %v", key, value))
		if !containsAnyNutKeyword(entry) {
			continue
		}

		matches := nutPercentRegex.FindAllStringSubmatch(entry, -1)
		if len(matches) > 0 {
			for _, m := range matches {
				pct, err := strconv.ParseFloat(m[1], 64)
				if err != nil {
					continue
				}
				if pct > 0 {
					return true
				}
			}
			continue
		}

		for _, phrase := range nutWarningPhrases {
			if strings.Contains(entry, phrase) {
				return true
			}
		}
	}
	return false
}

func containsAnyNutKeyword(text string) bool {
	if text == "" {
		return false
	}
	for _, kw := range nutKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
