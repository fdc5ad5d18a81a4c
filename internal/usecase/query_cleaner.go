package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
	specialCharsRegex   = regexp.MustCompile(`[#%+@!^*()=\[\]{}<>|\\~` + "`" + `]`)
	sizePatternRegex    = regexp.MustCompile(
		`(?i)\b\d+\.?\d*\s*(?:fl\s*oz|oz|ml|liters?|l|gallons?|gal|lbs?|pounds?|kg|grams?|g|ct|count|pk|pack|ea|each)\b`,
	)
)

// CleanSearchQuery strips packaging noise from a free-text product name so
// the catalog search gets a focused food query. Shopping-style titles carry
// size and pack info ("Dark Chocolate Bar, 3.5 oz") that hurts recall.
func CleanSearchQuery(name string) string {
	// Text before the first comma is the food; the rest is packaging.
	if idx := strings.Index(name, ","); idx > 0 {
		name = name[:idx]
	}

	name = strings.ReplaceAll(name, "&", " and ")
	name = specialCharsRegex.ReplaceAllString(name, " ")
	name = sizePatternRegex.ReplaceAllString(name, " ")
	name = multipleSpacesRegex.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}
