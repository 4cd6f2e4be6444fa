package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitsight/gitsight/internal/analyzer"
	"github.com/gitsight/gitsight/internal/github"
	"github.com/gitsight/gitsight/internal/insight"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchProfile(ctx context.Context, username string) (*github.Profile, []analyzer.RepositoryMetadata, error) {
	args := m.Called(ctx, username)
	var profile *github.Profile
	if p := args.Get(0); p != nil {
		profile = p.(*github.Profile)
	}
	var metas []analyzer.RepositoryMetadata
	if ms := args.Get(1); ms != nil {
		metas = ms.([]analyzer.RepositoryMetadata)
	}
	return profile, metas, args.Error(2)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) AnalyzeReadme(ctx context.Context, readme string) (*insight.ReadmeInsight, error) {
	args := m.Called(ctx, readme)
	var verdict *insight.ReadmeInsight
	if v := args.Get(0); v != nil {
		verdict = v.(*insight.ReadmeInsight)
	}
	return verdict, args.Error(1)
}

func (m *mockProvider) SummarizeProfile(ctx context.Context, in insight.ProfileSummaryInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

// stubFetcher writes a README so every scored repository has at least one
// file on disk.
type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, _ string, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Stub\n\n## Usage\n"), 0o644)
}

func testProfile() *github.Profile {
	return &github.Profile{Username: "octocat", URL: "https://github.com/octocat"}
}

func testMetas() []analyzer.RepositoryMetadata {
	return []analyzer.RepositoryMetadata{
		{Name: "alpha", Language: "Python", Stars: 10},
		{Name: "forked", Fork: true},
		{Name: "beta", Language: "Go", Stars: 2},
	}
}

func TestRunPipeline(t *testing.T) {
	source := new(mockSource)
	source.On("FetchProfile", mock.Anything, "octocat").
		Return(testProfile(), testMetas(), nil)

	ra := analyzer.NewRepoAnalyzer(stubFetcher{}, nil, zap.NewNop())

	rep, err := runPipeline(context.Background(), source, ra, nil, "octocat", 2, zap.NewNop())
	require.NoError(t, err)
	source.AssertExpectations(t)

	assert.Equal(t, "octocat", rep.Username)
	assert.Equal(t, "https://github.com/octocat", rep.ProfileURL)

	// Forks are dropped, encounter order is kept.
	require.Len(t, rep.Repositories, 2)
	assert.Equal(t, "alpha", rep.Repositories[0].RepoName)
	assert.Equal(t, "beta", rep.Repositories[1].RepoName)
	assert.Equal(t, 2, rep.TotalReposAnalyzed)

	// Every repository comes back finalized.
	for _, r := range rep.Repositories {
		assert.NotZero(t, r.CompositeScore, r.RepoName)
		assert.NotEqual(t, "Unknown", r.Rating, r.RepoName)
	}

	assert.Equal(t, []string{"Python", "Go"}, rep.LanguagesDetected)
	assert.Equal(t, "Python", rep.PrimaryLanguage)
	assert.NotEmpty(t, rep.HiringReadiness.Tier)
	assert.NotEmpty(t, rep.RoleScores.SRE.FitLabel)
	assert.Empty(t, rep.LLMSummary)
}

func TestRunPipeline_ProfileNotFound(t *testing.T) {
	source := new(mockSource)
	source.On("FetchProfile", mock.Anything, "ghost").
		Return(nil, nil, github.ErrProfileNotFound)

	ra := analyzer.NewRepoAnalyzer(stubFetcher{}, nil, zap.NewNop())

	_, err := runPipeline(context.Background(), source, ra, nil, "ghost", 1, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, github.ErrProfileNotFound)
}

func TestRunPipeline_EmptyProfile(t *testing.T) {
	source := new(mockSource)
	source.On("FetchProfile", mock.Anything, "octocat").
		Return(testProfile(), nil, nil)

	ra := analyzer.NewRepoAnalyzer(stubFetcher{}, nil, zap.NewNop())

	rep, err := runPipeline(context.Background(), source, ra, nil, "octocat", 1, zap.NewNop())
	require.NoError(t, err)

	assert.Empty(t, rep.Repositories)
	assert.Equal(t, 0, rep.HiringReadiness.Score)
	assert.Equal(t, "Not Ready", rep.HiringReadiness.Tier)
	assert.Equal(t, "Unknown", rep.PrimaryLanguage)
	assert.Equal(t, []string{}, rep.LanguagesDetected)
}

func TestRunPipeline_SummaryFromProvider(t *testing.T) {
	source := new(mockSource)
	source.On("FetchProfile", mock.Anything, "octocat").
		Return(testProfile(), testMetas(), nil)

	provider := new(mockProvider)
	provider.On("AnalyzeReadme", mock.Anything, mock.Anything).
		Return(nil, errors.New("model busy"))
	provider.On("SummarizeProfile", mock.Anything, mock.MatchedBy(func(in insight.ProfileSummaryInput) bool {
		return in.Username == "octocat" && in.TotalRepos == 2 && len(in.RoleFitLines) == 3
	})).Return("A capable generalist.", nil)

	ra := analyzer.NewRepoAnalyzer(stubFetcher{}, provider, zap.NewNop())

	rep, err := runPipeline(context.Background(), source, ra, provider, "octocat", 1, zap.NewNop())
	require.NoError(t, err)
	provider.AssertExpectations(t)

	assert.Equal(t, "A capable generalist.", rep.LLMSummary)
}

func TestRunPipeline_SummaryFailureIsNotFatal(t *testing.T) {
	source := new(mockSource)
	source.On("FetchProfile", mock.Anything, "octocat").
		Return(testProfile(), testMetas(), nil)

	provider := new(mockProvider)
	provider.On("AnalyzeReadme", mock.Anything, mock.Anything).
		Return(nil, errors.New("model busy"))
	provider.On("SummarizeProfile", mock.Anything, mock.Anything).
		Return("", errors.New("model busy"))

	ra := analyzer.NewRepoAnalyzer(stubFetcher{}, provider, zap.NewNop())

	rep, err := runPipeline(context.Background(), source, ra, provider, "octocat", 1, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, rep.LLMSummary)
}

func TestParseProfileArg(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"octocat", "octocat"},
		{"@octocat", "octocat"},
		{"https://github.com/octocat", "octocat"},
		{"https://github.com/octocat/", "octocat"},
		{"github.com/octocat", "octocat"},
		{"  octocat  ", "octocat"},
		{"https://github.com/", "github.com"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseProfileArg(c.in), "input %q", c.in)
	}
}
