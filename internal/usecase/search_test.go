package usecase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dietcheck/backend/internal/domain"
)

func TestAdmit(t *testing.T) {
	t.Run("empty spec admits everything", func(t *testing.T) {
		r := &domain.ProductRecord{IngredientsText: "peanuts"}
		pass, reason := Admit(r, &domain.FilterSpec{})
		if !pass || reason != "" {
			t.Errorf("Admit() = (%v, %q), want (true, \"\")", pass, reason)
		}
	})

	t.Run("nut check runs before nutrient bounds", func(t *testing.T) {
		max := 1.0
		r := &domain.ProductRecord{
			IngredientsText: "roasted peanuts",
			Nutriments:      map[string]interface{}{"fat_100g": 50.0},
		}
		pass, reason := Admit(r, &domain.FilterSpec{NoNuts: true, MaxFat: &max})
		if pass {
			t.Fatal("Admit() = true for peanut record with no_nuts")
		}
		if reason != "Contains nuts" {
			t.Errorf("reason = %q, want Contains nuts", reason)
		}
	})

	t.Run("first failing bound supplies the reason", func(t *testing.T) {
		cal, fat := 100.0, 3.0
		r := &domain.ProductRecord{Nutriments: map[string]interface{}{
			"energy-kcal_100g": 500.0,
			"fat_100g":         40.0,
		}}
		pass, reason := Admit(r, &domain.FilterSpec{MaxCalories: &cal, MaxFat: &fat})
		if pass {
			t.Fatal("Admit() = true over both bounds")
		}
		if !strings.HasPrefix(reason, "Calories:") {
			t.Errorf("reason = %q, want calories reported first", reason)
		}
	})

	t.Run("missing values never reject", func(t *testing.T) {
		max := 1.0
		r := &domain.ProductRecord{}
		pass, _ := Admit(r, &domain.FilterSpec{MaxFat: &max, NoNuts: true})
		if !pass {
			t.Error("Admit() = false for record with no data")
		}
	})
}

func makeCandidates(n int) []domain.ProductRecord {
	candidates := make([]domain.ProductRecord, n)
	for i := range candidates {
		candidates[i] = domain.ProductRecord{
			Code:        fmt.Sprintf("%04d", i),
			ProductName: fmt.Sprintf("Product %d", i),
		}
	}
	return candidates
}

func TestEvaluateSearchCandidates(t *testing.T) {
	t.Run("no filters admits the first ten", func(t *testing.T) {
		results, inspected := EvaluateSearchCandidates(makeCandidates(60), &domain.FilterSpec{}, nil)
		if len(results) != 10 {
			t.Fatalf("admitted %d, want 10", len(results))
		}
		if inspected != 10 {
			t.Errorf("inspected %d, want 10 (stops at tenth admission)", inspected)
		}
		for i, res := range results {
			want := fmt.Sprintf("%04d", i)
			if res.Record.Code != want {
				t.Errorf("result %d code = %s, want %s (input order preserved)", i, res.Record.Code, want)
			}
		}
	})

	t.Run("rejecting filter caps inspection at fifty", func(t *testing.T) {
		max := 1.0
		candidates := makeCandidates(60)
		for i := range candidates {
			candidates[i].Nutriments = map[string]interface{}{"fat_100g": 50.0}
		}
		results, inspected := EvaluateSearchCandidates(candidates, &domain.FilterSpec{MaxFat: &max}, nil)
		if len(results) != 0 {
			t.Errorf("admitted %d, want 0", len(results))
		}
		if inspected != 50 {
			t.Errorf("inspected %d, want 50", inspected)
		}
	})

	t.Run("mixed candidates keep input order of survivors", func(t *testing.T) {
		max := 10.0
		candidates := makeCandidates(6)
		for i := range candidates {
			fat := 5.0
			if i%2 == 1 {
				fat = 20.0
			}
			candidates[i].Nutriments = map[string]interface{}{"fat_100g": fat}
		}
		results, inspected := EvaluateSearchCandidates(candidates, &domain.FilterSpec{MaxFat: &max}, nil)
		if len(results) != 3 || inspected != 6 {
			t.Fatalf("got %d results after %d inspected, want 3 after 6", len(results), inspected)
		}
		for i, res := range results {
			want := fmt.Sprintf("%04d", i*2)
			if res.Record.Code != want {
				t.Errorf("result %d code = %s, want %s", i, res.Record.Code, want)
			}
		}
	})

	t.Run("verdicts come from the supplied profile", func(t *testing.T) {
		profile := &domain.DietaryProfile{Allergies: []string{"soy"}}
		candidates := []domain.ProductRecord{{IngredientsText: "soy lecithin, water and more text"}}
		results, _ := EvaluateSearchCandidates(candidates, &domain.FilterSpec{}, profile)
		if len(results) != 1 {
			t.Fatal("candidate not admitted")
		}
		if results[0].Verdict.IsSafe {
			t.Error("verdict.IsSafe = true for soy allergy and soy ingredient")
		}
	})
}
