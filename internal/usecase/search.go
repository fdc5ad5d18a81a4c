package usecase

import (
	"github.com/dietcheck/backend/internal/domain"
)

// Search evaluation cutoffs: stop once this many candidates are admitted,
// or this many have been inspected, whichever comes first.
const (
	maxAdmitted  = 10
	maxInspected = 50
)

// ClassifiedProduct pairs a catalog record with its verdict.
type ClassifiedProduct struct {
	Record  domain.ProductRecord `json:"record"`
	Verdict domain.Verdict       `json:"verdict"`
}

// Admit applies the filter spec to a single candidate. The nut check runs
// before the numeric bounds; the first failing check supplies the rejection
// reason and short-circuits the rest. Records with missing values are never
// rejected for those values.
func Admit(record *domain.ProductRecord, spec *domain.FilterSpec) (bool, string) {
	if !spec.HasAny() {
		return true, ""
	}
	if spec.NoNuts && containsNuts(record) {
		return false, "Contains nuts"
	}
	if v := FirstBoundViolation(record, spec); v != nil {
		return false, v.Reason()
	}
	return true, ""
}

// EvaluateSearchCandidates filters and classifies candidates in input order,
// stopping after maxAdmitted admissions or maxInspected inspections. The
// returned count is how many candidates were inspected.
func EvaluateSearchCandidates(
	candidates []domain.ProductRecord,
	spec *domain.FilterSpec,
	profile *domain.DietaryProfile,
) ([]ClassifiedProduct, int) {
	results := make([]ClassifiedProduct, 0, maxAdmitted)
	inspected := 0

	for i := range candidates {
		if inspected >= maxInspected {
			break
		}
		inspected++

		record := &candidates[i]
		if pass, _ := Admit(record, spec); !pass {
			continue
		}

		results = append(results, ClassifiedProduct{
			Record:  candidates[i],
			Verdict: ClassifyProduct(record, profile, false),
		})
		if len(results) >= maxAdmitted {
			break
		}
	}

	return results, inspected
}
