package domain

// SafetyLevel is the three-way classification outcome.
type SafetyLevel string

const (
	LevelSafe    SafetyLevel = "safe"
	LevelCaution SafetyLevel = "caution"
	LevelNotSafe SafetyLevel = "not_safe"
)

// Verdict is the classification output for one record against one profile.
// Recomputed on every call, never persisted.
type Verdict struct {
	IsSafe          bool     `json:"is_safe"`
	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

// Level derives the three-way safety level: unsafe beats caution,
// caution means safe but with warnings.
func (v Verdict) Level() SafetyLevel {
	switch {
	case !v.IsSafe:
		return LevelNotSafe
	case len(v.Warnings) > 0:
		return LevelCaution
	default:
		return LevelSafe
	}
}

// SafeVerdict is the trivially safe result used when no profile is active.
func SafeVerdict() Verdict {
	return Verdict{IsSafe: true, Warnings: []string{}, Recommendations: []string{}}
}
