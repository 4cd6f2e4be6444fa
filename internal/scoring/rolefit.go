package scoring

import (
	"strings"

	"github.com/gitsight/gitsight/internal/analyzer"
)

// Fit labels. The boundaries are strict-greater, unlike the inclusive
// tier bands: exactly 80 is still Moderate, exactly 50 still Low.
const (
	FitHigh     = "High Fit"
	FitModerate = "Moderate Fit"
	FitLow      = "Low Fit"
)

var mlKeywords = []string{
	"model", "train", "dataset", "jupyter", "pandas", "numpy",
	"sklearn", "tensorflow", "pytorch",
}

var backendKeywords = []string{
	"api", "server", "database", "sql", "rest", "graphql", "docker", "auth",
}

var sreKeywords = []string{
	"kubernetes", "docker", "terraform", "ansible", "cloud", "aws",
	"gcp", "azure", "monitor", "prometheus",
}

var backendLanguages = map[string]bool{
	"Python":     true,
	"Go":         true,
	"Java":       true,
	"JavaScript": true,
	"TypeScript": true,
	"Rust":       true,
}

// RoleFit is one role's affinity score and label.
type RoleFit struct {
	Score    int    `json:"score"`
	FitLabel string `json:"fit_label"`
}

// RoleScores holds the three role archetypes scored independently.
type RoleScores struct {
	MLEngineer      RoleFit `json:"ml_engineer"`
	BackendEngineer RoleFit `json:"backend_engineer"`
	SRE             RoleFit `json:"sre"`
}

// ComputeRoleFit scores the three role archetypes from language, keyword
// and sub-score signals accumulated across every repository. Accumulation
// may pass 100; the final scores are truncated then clamped.
func ComputeRoleFit(repos []analyzer.RepositoryAnalysis) RoleScores {
	if len(repos) == 0 {
		zero := RoleFit{Score: 0, FitLabel: FitLow}
		return RoleScores{MLEngineer: zero, BackendEngineer: zero, SRE: zero}
	}

	mlScore := 0
	var beScore, sreScore float64

	for _, r := range repos {
		if r.Language == "Jupyter Notebook" || r.Language == "Python" {
			mlScore += 10
		}
		if descriptionHasAny(r.Description, mlKeywords) {
			mlScore += 15
		}

		if backendLanguages[r.Language] {
			beScore += 10
		}
		if descriptionHasAny(r.Description, backendKeywords) {
			beScore += 15
		}
		beScore += float64(r.ScoreBreakdown.CodeStructure) / 10

		if descriptionHasAny(r.Description, sreKeywords) {
			sreScore += 20
		}
		sreScore += float64(r.ScoreBreakdown.Deployability) / 2
	}

	return RoleScores{
		MLEngineer:      newRoleFit(clampScore(mlScore)),
		BackendEngineer: newRoleFit(clampScore(int(beScore))),
		SRE:             newRoleFit(clampScore(int(sreScore))),
	}
}

func newRoleFit(score int) RoleFit {
	return RoleFit{Score: score, FitLabel: FitLabelFor(score)}
}

// FitLabelFor maps a role score onto a fit label.
func FitLabelFor(score int) string {
	switch {
	case score > 80:
		return FitHigh
	case score > 50:
		return FitModerate
	default:
		return FitLow
	}
}

func descriptionHasAny(description string, keywords []string) bool {
	if description == "" {
		return false
	}
	lower := strings.ToLower(description)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
