package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gitsight/gitsight/internal/analyzer"
)

// noteCap bounds how many aggregated strengths/weaknesses the summary
// lists.
const noteCap = 5

// lowReadinessThreshold switches the next-actions section from the single
// maintain-quality line to the fixed improvement list.
const lowReadinessThreshold = 50

// Markdown renders the human-readable executive summary.
func Markdown(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# GitHub Profile Analysis — @%s\n\n", r.Username)
	fmt.Fprintf(&b, "**Hiring Readiness Score: %d/100 — %s**\n\n",
		r.HiringReadiness.Score, r.HiringReadiness.Tier)

	b.WriteString("### Quick Overview\n")
	b.WriteString(overview(r))
	b.WriteString("\n")
	if r.HiringReadiness.TierLabel != "" {
		b.WriteString(r.HiringReadiness.TierLabel)
		b.WriteString("\n")
	}

	b.WriteString("\n### Repository Highlights\n")
	for _, repo := range topRepositories(r.Repositories, 3) {
		desc := repo.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(&b, "- **[%s](%s)**: %d/100 (%s) - %s\n",
			repo.RepoName, repo.RepoURL, repo.CompositeScore, repo.Rating, desc)
	}

	b.WriteString("\n### Role Fit\n")
	fmt.Fprintf(&b, "- **ML Engineer**: %d/100 — %s\n",
		r.RoleScores.MLEngineer.Score, r.RoleScores.MLEngineer.FitLabel)
	fmt.Fprintf(&b, "- **Backend Engineer**: %d/100 — %s\n",
		r.RoleScores.BackendEngineer.Score, r.RoleScores.BackendEngineer.FitLabel)
	fmt.Fprintf(&b, "- **SRE**: %d/100 — %s\n",
		r.RoleScores.SRE.Score, r.RoleScores.SRE.FitLabel)

	b.WriteString("\n### What's Working\n")
	writeNotes(&b, collectNotes(r.Repositories, func(a analyzer.RepositoryAnalysis) []string { return a.Strengths }),
		"- No major strengths detected automatically.\n")

	b.WriteString("\n### What Needs Improvement\n")
	writeNotes(&b, collectNotes(r.Repositories, func(a analyzer.RepositoryAnalysis) []string { return a.Weaknesses }),
		"- No major weaknesses detected automatically.\n")

	b.WriteString("\n### Top Actions to Increase Hiring Readiness\n")
	if r.HiringReadiness.Score < lowReadinessThreshold {
		b.WriteString("1. Add unit tests (pytest/jest) to your top projects.\n")
		b.WriteString("2. Improve README documentation with installation instructions.\n")
		b.WriteString("3. Set up a CI pipeline (GitHub Actions) for your main repo.\n")
	} else {
		b.WriteString("1. Continue maintaining high code quality.\n")
	}

	return b.String()
}

// overview returns the LLM summary when present, otherwise a one-line
// fallback sentence.
func overview(r *Report) string {
	if r.LLMSummary != "" {
		return r.LLMSummary
	}
	return fmt.Sprintf("User @%s has %d public repositories. Primary language: %s.",
		r.Username, len(r.Repositories), r.PrimaryLanguage)
}

// topRepositories returns up to n repositories sorted by composite score
// descending. The sort is stable so equal scores keep fetch order.
func topRepositories(repos []analyzer.RepositoryAnalysis, n int) []analyzer.RepositoryAnalysis {
	sorted := append([]analyzer.RepositoryAnalysis(nil), repos...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompositeScore > sorted[j].CompositeScore
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// collectNotes aggregates per-repository notes, deduplicated in
// first-seen order and capped at noteCap.
func collectNotes(repos []analyzer.RepositoryAnalysis, pick func(analyzer.RepositoryAnalysis) []string) []string {
	seen := make(map[string]bool)
	var notes []string
	for _, r := range repos {
		for _, note := range pick(r) {
			if seen[note] {
				continue
			}
			seen[note] = true
			notes = append(notes, note)
			if len(notes) == noteCap {
				return notes
			}
		}
	}
	return notes
}

func writeNotes(b *strings.Builder, notes []string, empty string) {
	if len(notes) == 0 {
		b.WriteString(empty)
		return
	}
	for _, n := range notes {
		fmt.Fprintf(b, "- %s\n", n)
	}
}
