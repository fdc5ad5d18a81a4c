package domain

import (
	"strconv"
	"strings"
)

// ProductRecord represents one product as returned by the Open Food Facts
// catalog. Any field may be absent or empty; accessors below fall back to
// zero values instead of failing.
type ProductRecord struct {
	Code        string `json:"code"`
	ProductName string `json:"product_name"`
	GenericName string `json:"generic_name"`
	Brands      string `json:"brands"`

	// Nutriment keys come in synonymous pairs ("fat_100g" and "fat") and
	// values arrive as numbers or numeric strings depending on the record.
	Nutriments map[string]interface{} `json:"nutriments"`

	IngredientsText string `json:"ingredients_text"`
	Traces          string `json:"traces"`
	Categories      string `json:"categories"`
	Labels          string `json:"labels"`

	AllergensTags           []string `json:"allergens_tags"`
	LabelsTags              []string `json:"labels_tags"`
	CategoriesTags          []string `json:"categories_tags"`
	AdditivesTags           []string `json:"additives_tags"`
	IngredientsAnalysisTags []string `json:"ingredients_analysis_tags"`
}

// Standard nutrient key pairs (per-100g form first, bare form as fallback).
const (
	KeyCalories = "energy-kcal_100g"
	KeyFat      = "fat_100g"
	KeyFiber    = "fiber_100g"
	KeySugar    = "sugars_100g"
	KeySalt     = "salt_100g"
	KeyProtein  = "proteins_100g"
)

// Nutrient resolves a nutrient value, trying primary then fallback key.
// The second return is false when the value is absent or not numeric;
// callers treat that as "rule not applicable", never as an error.
func (r *ProductRecord) Nutrient(primary, fallback string) (float64, bool) {
	if r.Nutriments == nil {
		return 0, false
	}
	if v, ok := r.Nutriments[primary]; ok {
		if f, ok := coerceFloat(v); ok {
			return f, true
		}
	}
	if v, ok := r.Nutriments[fallback]; ok {
		return coerceFloat(v)
	}
	return 0, false
}

// NutrientByKey resolves a profile-supplied nutrient key, also trying the
// suffix-stripped form ("sugars_100g" falls back to "sugars").
func (r *ProductRecord) NutrientByKey(key string) (float64, bool) {
	return r.Nutrient(key, strings.TrimSuffix(key, "_100g"))
}

// DisplayName returns the product name or a placeholder.
func (r *ProductRecord) DisplayName() string {
	if r.ProductName == "" {
		return "Unknown Product"
	}
	return r.ProductName
}

// DisplayBrand returns the brand or a placeholder.
func (r *ProductRecord) DisplayBrand() string {
	if r.Brands == "" {
		return "Unknown Brand"
	}
	return r.Brands
}

// IngredientsLower returns the lower-cased ingredients text.
func (r *ProductRecord) IngredientsLower() string {
	return strings.ToLower(r.IngredientsText)
}

// TextFields returns the free-text fields scanned during allergen
// detection, lower-cased: name, generic name, categories, labels, traces.
func (r *ProductRecord) TextFields() []string {
	return []string{
		strings.ToLower(r.ProductName),
		strings.ToLower(r.GenericName),
		strings.ToLower(r.Categories),
		strings.ToLower(r.Labels),
		strings.ToLower(r.Traces),
	}
}

// TagFields returns the tag sequences scanned during allergen detection.
func (r *ProductRecord) TagFields() [][]string {
	return [][]string{
		r.IngredientsAnalysisTags,
		r.CategoriesTags,
		r.LabelsTags,
	}
}

// coerceFloat converts a raw nutriment value to float64. Open Food Facts
// serves numbers, numeric strings, and occasional garbage.
func coerceFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
