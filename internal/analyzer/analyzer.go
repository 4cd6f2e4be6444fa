package analyzer

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gitsight/gitsight/internal/insight"
)

// cloneFailedFlag is recorded when the working tree could not be fetched.
const cloneFailedFlag = "Clone failed - manual inspection required"

// pythonLanguage is the only language with a complexity analyzer wired in.
const pythonLanguage = "Python"

// Fetcher produces a local working tree for a repository. Implementations
// must remove any stale content at dir before fetching and leave nothing
// behind on failure.
type Fetcher interface {
	Fetch(ctx context.Context, cloneURL, dir string) error
}

// RepoAnalyzer scores one repository at a time. It is safe for concurrent
// use: every Analyze call works in its own temporary directory.
type RepoAnalyzer struct {
	fetcher  Fetcher
	provider insight.Provider
	log      *zap.Logger
}

// NewRepoAnalyzer builds an analyzer. provider may be nil, in which case
// README scoring is purely heuristic.
func NewRepoAnalyzer(fetcher Fetcher, provider insight.Provider, log *zap.Logger) *RepoAnalyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &RepoAnalyzer{fetcher: fetcher, provider: provider, log: log}
}

// Analyze fetches the repository into a temporary directory and computes
// the full score breakdown and notes. The composite score and rating are
// left for the caller to fill in; everything else is final on return.
//
// Fetch failure is not an error: the filesystem-dependent sub-scores keep
// their initial zero values and a critical flag records the failure.
func (a *RepoAnalyzer) Analyze(ctx context.Context, meta RepositoryMetadata) RepositoryAnalysis {
	analysis := RepositoryAnalysis{
		RepoName:               meta.Name,
		RepoURL:                meta.URL,
		Language:               meta.Language,
		Stars:                  meta.Stars,
		Forks:                  meta.Forks,
		Description:            meta.Description,
		Rating:                 "Unknown",
		Strengths:              []string{},
		Weaknesses:             []string{},
		CriticalFlags:          []string{},
		ImprovementSuggestions: []string{},
	}

	value, valueNotes := scoreProjectValue(meta.Stars, meta.Forks)
	analysis.ScoreBreakdown.ProjectValue = value
	analysis.appendNotes(valueNotes)

	tmp, err := os.MkdirTemp("", "gitsight-*")
	if err != nil {
		a.log.Warn("temp dir creation failed", zap.String("repo", meta.Name), zap.Error(err))
		analysis.CriticalFlags = append(analysis.CriticalFlags, cloneFailedFlag)
		return analysis
	}
	defer os.RemoveAll(tmp)

	repoPath := filepath.Join(tmp, meta.Name)
	if err := a.fetcher.Fetch(ctx, meta.CloneURL, repoPath); err != nil {
		a.log.Warn("clone failed, skipping deep analysis",
			zap.String("repo", meta.Name), zap.Error(err))
		analysis.CriticalFlags = append(analysis.CriticalFlags, cloneFailedFlag)
		return analysis
	}

	a.scoreWorkingTree(ctx, repoPath, meta, &analysis)
	return analysis
}

// scoreWorkingTree fills in every filesystem-dependent sub-score.
func (a *RepoAnalyzer) scoreWorkingTree(ctx context.Context, repoPath string, meta RepositoryMetadata, analysis *RepositoryAnalysis) {
	structScore, structNotes := scoreStructure(repoPath)
	analysis.ScoreBreakdown.CodeStructure = structScore
	analysis.appendNotes(structNotes)

	readmeScore, readmeNotes := scoreReadme(ctx, repoPath, a.provider)
	analysis.ScoreBreakdown.Readme = readmeScore
	if readmeNotes != nil {
		analysis.appendNotes(*readmeNotes)
	} else if readmeScore > 70 {
		analysis.Strengths = append(analysis.Strengths, "Detailed README")
	} else if readmeScore <= 40 {
		analysis.Weaknesses = append(analysis.Weaknesses, "README lacks depth")
	}

	testScore := scoreTesting(repoPath)
	analysis.ScoreBreakdown.TestingCI = testScore
	if testScore > 0 {
		analysis.Strengths = append(analysis.Strengths, "Testing infrastructure detected")
	} else {
		analysis.Weaknesses = append(analysis.Weaknesses, "No tests found")
	}

	if meta.Language == pythonLanguage {
		analysis.ScoreBreakdown.Complexity = scoreComplexity(repoPath)
	} else {
		analysis.ScoreBreakdown.Complexity = neutralComplexity
	}

	security, deploy := scoreSecurityDeploy(repoPath)
	analysis.ScoreBreakdown.Security = security
	analysis.ScoreBreakdown.Deployability = deploy
}

func (r *RepositoryAnalysis) appendNotes(n scoreNotes) {
	r.Strengths = append(r.Strengths, n.strengths...)
	r.Weaknesses = append(r.Weaknesses, n.weaknesses...)
}
