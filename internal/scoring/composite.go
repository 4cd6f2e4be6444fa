// Package scoring holds the pure score calculators: the per-repository
// composite formula, the profile-level hiring readiness formula, and the
// role-fit model. Every function here is deterministic over its inputs.
package scoring

import "github.com/gitsight/gitsight/internal/analyzer"

// Composite weights. They sum to 1.00; changing them changes the meaning
// of every stored historical score, so they are constants rather than
// configuration.
const (
	weightCodeStructure = 0.25
	weightTestingCI     = 0.20
	weightReadme        = 0.15
	weightProjectValue  = 0.15
	weightDeployability = 0.10
	weightComplexity    = 0.08
	weightSecurity      = 0.07
)

// Rating labels, highest band first. Band lower bounds are inclusive.
const (
	RatingExceptional = "Exceptional"
	RatingStrong      = "Strong"
	RatingSolid       = "Solid"
	RatingNeedsWork   = "Needs Work"
	RatingWeak        = "Weak"
)

// Composite collapses a score breakdown into a single 0-100 score. The
// weighted sum is truncated, not rounded.
func Composite(b analyzer.ScoreBreakdown) int {
	score := float64(b.CodeStructure)*weightCodeStructure +
		float64(b.TestingCI)*weightTestingCI +
		float64(b.Readme)*weightReadme +
		float64(b.ProjectValue)*weightProjectValue +
		float64(b.Deployability)*weightDeployability +
		float64(b.Complexity)*weightComplexity +
		float64(b.Security)*weightSecurity
	return int(score)
}

// Rating maps a composite score onto its band label.
func Rating(score int) string {
	switch {
	case score >= 85:
		return RatingExceptional
	case score >= 70:
		return RatingStrong
	case score >= 55:
		return RatingSolid
	case score >= 40:
		return RatingNeedsWork
	default:
		return RatingWeak
	}
}

// Finalize computes and stores the composite score and rating on an
// otherwise complete analysis.
func Finalize(a *analyzer.RepositoryAnalysis) {
	a.CompositeScore = Composite(a.ScoreBreakdown)
	a.Rating = Rating(a.CompositeScore)
}
