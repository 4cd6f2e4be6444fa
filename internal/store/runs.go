package store

import (
	"fmt"
	"time"

	"github.com/gitsight/gitsight/internal/analyzer"
	"github.com/gitsight/gitsight/internal/scoring"
)

// Run is one stored analysis of a profile.
type Run struct {
	ID              int64     `json:"id"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
	Username        string    `json:"username"`
	ReadinessScore  int       `json:"readiness_score"`
	Tier            string    `json:"tier"`
	RepoCount       int       `json:"repo_count"`
	PrimaryLanguage string    `json:"primary_language,omitempty"`
	Version         string    `json:"version"`
}

// RepoScore is one repository's scores within a run.
type RepoScore struct {
	RunID          int64                   `json:"run_id"`
	Repo           string                  `json:"repo"`
	CompositeScore int                     `json:"composite_score"`
	Rating         string                  `json:"rating"`
	Breakdown      analyzer.ScoreBreakdown `json:"breakdown"`
	Flagged        bool                    `json:"flagged"`
}

// SaveRun records a completed analysis and its per-repository scores.
func (db *DB) SaveRun(p *analyzer.ProfileData, readiness scoring.HiringReadiness, version string) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs (analyzed_at, username, readiness_score, tier, repo_count, primary_language, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.AnalyzedAt.UTC().Format(time.RFC3339), p.Username, readiness.Score,
		readiness.Tier, len(p.Repositories), p.PrimaryLanguage, version,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, r := range p.Repositories {
		b := r.ScoreBreakdown
		if _, err := tx.Exec(
			`INSERT INTO repo_scores
			 (run_id, repo, composite_score, rating, code_structure, testing_ci,
			  readme, project_value, deployability, complexity, security, flagged)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, r.RepoName, r.CompositeScore, r.Rating, b.CodeStructure,
			b.TestingCI, b.Readme, b.ProjectValue, b.Deployability,
			b.Complexity, b.Security, len(r.CriticalFlags) > 0,
		); err != nil {
			return 0, fmt.Errorf("insert repo score %q: %w", r.RepoName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns up to limit runs for a username, most recent first.
func (db *DB) ListRuns(username string, limit int) ([]Run, error) {
	rows, err := db.conn.Query(
		`SELECT id, analyzed_at, username, readiness_score, tier, repo_count, primary_language, version
		 FROM runs WHERE username = ? ORDER BY id DESC LIMIT ?`,
		username, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var analyzedAt string
		if err := rows.Scan(&r.ID, &analyzedAt, &r.Username, &r.ReadinessScore,
			&r.Tier, &r.RepoCount, &r.PrimaryLanguage, &r.Version); err != nil {
			return nil, err
		}
		r.AnalyzedAt, _ = time.Parse(time.RFC3339, analyzedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RepoScores returns the per-repository scores of a run, best first.
func (db *DB) RepoScores(runID int64) ([]RepoScore, error) {
	rows, err := db.conn.Query(
		`SELECT run_id, repo, composite_score, rating, code_structure, testing_ci,
		        readme, project_value, deployability, complexity, security, flagged
		 FROM repo_scores WHERE run_id = ? ORDER BY composite_score DESC, id ASC`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []RepoScore
	for rows.Next() {
		var s RepoScore
		b := &s.Breakdown
		if err := rows.Scan(&s.RunID, &s.Repo, &s.CompositeScore, &s.Rating,
			&b.CodeStructure, &b.TestingCI, &b.Readme, &b.ProjectValue,
			&b.Deployability, &b.Complexity, &b.Security, &s.Flagged); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
