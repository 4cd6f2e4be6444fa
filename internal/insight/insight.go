// Package insight defines the optional text-insight provider boundary:
// natural-language judgments (README critique, profile summary) that
// augment the heuristic scores but are never required for numeric
// correctness. Every operation returns an explicit error so callers make
// the heuristic-fallback decision themselves.
package insight

import "context"

// ReadmeInsight is the provider's judgment of a README.
type ReadmeInsight struct {
	Score      int      `json:"score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// ProfileSummaryInput is the numeric context handed to the provider when
// asking for an executive summary. Plain values only, so the package has
// no dependency on the scoring pipeline.
type ProfileSummaryInput struct {
	Username        string
	Score           int
	Tier            string
	PrimaryLanguage string
	TotalRepos      int
	TopRepoNames    []string
	RoleFitLines    []string
}

// Provider supplies text insights. Implementations must be safe for
// concurrent use; the pipeline may call AnalyzeReadme from several
// workers at once.
type Provider interface {
	AnalyzeReadme(ctx context.Context, readme string) (*ReadmeInsight, error)
	SummarizeProfile(ctx context.Context, in ProfileSummaryInput) (string, error)
}
