package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitsight/gitsight/internal/insight"
)

// readmeSectionKeywords each add 10 points when present in the lowercased
// README body.
var readmeSectionKeywords = []string{"install", "usage", "contributing", "license"}

// scoreReadme rates README quality. The heuristic score is 30 for
// existing at all, +20 for more than 500 characters, +10 per section
// keyword and +10 for a level-2 markdown heading. When a provider is
// configured and answers, the returned score is the average of the
// heuristic and provider scores and the provider's notes replace the
// heuristic ones; on provider failure the heuristic result stands.
//
// The second return value is nil on the pure-heuristic path: callers use
// that to decide whether to attach the generic detailed/shallow README
// notes.
func scoreReadme(ctx context.Context, path string, provider insight.Provider) (int, *scoreNotes) {
	readmePath := findReadme(path)
	if readmePath == "" {
		return 0, nil
	}

	score := 30
	raw, err := os.ReadFile(readmePath)
	if err != nil {
		return score, nil
	}
	content := strings.ToLower(string(raw))

	if len([]rune(content)) > 500 {
		score += 20
	}
	for _, kw := range readmeSectionKeywords {
		if strings.Contains(content, kw) {
			score += 10
		}
	}
	if strings.Contains(content, "##") {
		score += 10
	}

	if provider != nil {
		verdict, err := provider.AnalyzeReadme(ctx, content)
		if err == nil && verdict != nil {
			averaged := (score + verdict.Score) / 2
			if averaged > 100 {
				averaged = 100
			}
			return averaged, &scoreNotes{
				strengths:  verdict.Strengths,
				weaknesses: verdict.Weaknesses,
			}
		}
		// Provider failure downgrades silently to the heuristic score.
	}

	if score > 100 {
		score = 100
	}
	return score, nil
}

// findReadme returns the first root entry whose lowercased name starts
// with "readme", or "" when none exists. Directory entries come back
// lexically sorted, so the choice is deterministic.
func findReadme(path string) string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(strings.ToLower(e.Name()), "readme") {
			return filepath.Join(path, e.Name())
		}
	}
	return ""
}
