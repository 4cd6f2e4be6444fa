// Package report serializes a finished analysis into the JSON report and
// the Markdown executive summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitsight/gitsight/internal/analyzer"
	"github.com/gitsight/gitsight/internal/scoring"
)

// Report is the full structured output: the profile data plus both
// top-level verdicts. Serializing and parsing it back reproduces every
// numeric field exactly.
type Report struct {
	analyzer.ProfileData
	HiringReadiness scoring.HiringReadiness `json:"hiring_readiness"`
	RoleScores      scoring.RoleScores      `json:"role_scores"`
}

// JSONFileName returns the report filename for a username.
func JSONFileName(username string) string {
	return username + "_report.json"
}

// MarkdownFileName returns the summary filename for a username.
func MarkdownFileName(username string) string {
	return username + "_summary.md"
}

// WriteJSON saves the full structured report, indented for reading.
func WriteJSON(dir string, r *Report) (string, error) {
	path := filepath.Join(dir, JSONFileName(r.Username))
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// ReadJSON parses a report previously written by WriteJSON.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

// WriteMarkdown saves the executive summary and returns its path.
func WriteMarkdown(dir string, r *Report) (string, error) {
	path := filepath.Join(dir, MarkdownFileName(r.Username))
	if err := os.WriteFile(path, []byte(Markdown(r)), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}
