// Package analyzer scores individual repositories with static heuristics
// and assembles the per-profile analysis used by the scoring calculators.
package analyzer

import "time"

// RepositoryMetadata is what the profile source knows about a repository
// before any content is fetched. It is immutable once listed.
type RepositoryMetadata struct {
	// Name is the repository name without the owner prefix.
	Name string `json:"name"`

	// URL is the human-facing repository page.
	URL string `json:"url"`

	// CloneURL is the HTTPS clone endpoint.
	CloneURL string `json:"clone_url"`

	// Language is the primary language reported by the host, empty when
	// the host could not detect one.
	Language string `json:"language,omitempty"`

	// Stars and Forks are the community counters at fetch time.
	Stars int `json:"stars"`
	Forks int `json:"forks"`

	// Description is the free-text repository description, may be empty.
	Description string `json:"description,omitempty"`

	// Fork reports whether the repository is a fork. Forks are excluded
	// from analysis.
	Fork bool `json:"fork"`
}

// ScoreBreakdown holds the seven independent sub-scores for one
// repository. Every field is an integer in [0,100]. Fields keep their
// zero value when the corresponding input could not be analyzed, except
// complexity which defaults to 50 for non-Python repositories.
type ScoreBreakdown struct {
	CodeStructure int `json:"code_structure"`
	TestingCI     int `json:"testing_ci"`
	Readme        int `json:"readme"`
	ProjectValue  int `json:"project_value"`
	Deployability int `json:"deployability"`
	Complexity    int `json:"complexity"`
	Security      int `json:"security"`
}

// RepositoryAnalysis is the fully-scored result for one repository. It is
// built once per repository and never mutated after the aggregate
// calculators start reading it.
type RepositoryAnalysis struct {
	RepoName    string `json:"repo_name"`
	RepoURL     string `json:"repo_url"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Description string `json:"description,omitempty"`

	CompositeScore int            `json:"composite_score"`
	Rating         string         `json:"rating"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`

	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
	CriticalFlags          []string `json:"critical_flags"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
}

// ProfileData aggregates every repository analysis for one profile.
// Repositories keeps fetch order; forks are excluded upstream.
type ProfileData struct {
	Username           string               `json:"username"`
	ProfileURL         string               `json:"profile_url"`
	AnalyzedAt         time.Time            `json:"analyzed_at"`
	TotalReposAnalyzed int                  `json:"total_repos_analyzed"`
	PrimaryLanguage    string               `json:"primary_language"`
	LanguagesDetected  []string             `json:"languages_detected"`
	Repositories       []RepositoryAnalysis `json:"repositories"`

	// LLMSummary is the optional free-text profile summary. Empty when no
	// insight provider is configured or the provider failed.
	LLMSummary string `json:"llm_summary,omitempty"`
}

// Languages returns the distinct non-empty languages across the analyzed
// repositories, in first-encountered order.
func (p *ProfileData) Languages() []string {
	seen := make(map[string]bool)
	var langs []string
	for _, r := range p.Repositories {
		if r.Language == "" || seen[r.Language] {
			continue
		}
		seen[r.Language] = true
		langs = append(langs, r.Language)
	}
	return langs
}

// PrimaryLanguageOf returns the most frequent non-empty language among the
// repositories. Ties break toward the language encountered first in
// repository order; a later language only wins with a strictly greater
// count. Returns "Unknown" when no repository declares a language.
func PrimaryLanguageOf(repos []RepositoryAnalysis) string {
	counts := make(map[string]int)
	var order []string
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		if counts[r.Language] == 0 {
			order = append(order, r.Language)
		}
		counts[r.Language]++
	}
	if len(order) == 0 {
		return "Unknown"
	}

	best := order[0]
	for _, lang := range order[1:] {
		if counts[lang] > counts[best] {
			best = lang
		}
	}
	return best
}
