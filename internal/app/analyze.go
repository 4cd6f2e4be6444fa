package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gitsight/gitsight/internal/analyzer"
	"github.com/gitsight/gitsight/internal/config"
	"github.com/gitsight/gitsight/internal/gitclone"
	"github.com/gitsight/gitsight/internal/github"
	"github.com/gitsight/gitsight/internal/insight"
	"github.com/gitsight/gitsight/internal/logger"
	"github.com/gitsight/gitsight/internal/output"
	"github.com/gitsight/gitsight/internal/report"
	"github.com/gitsight/gitsight/internal/scoring"
	"github.com/gitsight/gitsight/internal/store"
)

var (
	analyzeFlagToken       string
	analyzeFlagModel       string
	analyzeFlagHost        string
	analyzeFlagOut         string
	analyzeFlagConcurrency int
	analyzeFlagNoSave      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <profile>",
	Short: "Score a GitHub profile and write reports",
	Long: `Analyze fetches the user's non-fork repositories, shallow-clones each
one, scores it with static heuristics, and aggregates the results into a
hiring-readiness score and role-fit breakdowns.

The profile argument is a bare username or a full profile URL. Two files
are written to the output directory: <username>_report.json with the full
structured data and <username>_summary.md with the executive summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFlagToken, "token", "", "GitHub personal access token (default: config or GITHUB_TOKEN)")
	analyzeCmd.Flags().StringVar(&analyzeFlagModel, "model", "", "Ollama model name; enables AI-assisted analysis")
	analyzeCmd.Flags().StringVar(&analyzeFlagHost, "host", "", "Ollama base URL (default: config)")
	analyzeCmd.Flags().StringVar(&analyzeFlagOut, "out", "", "Output directory for reports (default: config)")
	analyzeCmd.Flags().IntVar(&analyzeFlagConcurrency, "concurrency", 0, "Repositories analyzed in parallel (default: config)")
	analyzeCmd.Flags().BoolVar(&analyzeFlagNoSave, "no-save", false, "Skip recording the run in the history database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyAnalyzeFlags(cfg)

	username := ParseProfileArg(args[0])
	if username == "" {
		return fmt.Errorf("cannot derive a username from %q", args[0])
	}

	log, err := logger.New(flagJSON, flagVerbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	ctx := cmd.Context()

	source, err := github.NewClient(cfg.GitHubToken, log)
	if err != nil {
		return fmt.Errorf("creating github client: %w", err)
	}

	var provider insight.Provider
	if cfg.Ollama.Model != "" {
		ollama := insight.NewOllamaClient(cfg.Ollama.Host, cfg.Ollama.Model)
		if !ollama.Available(ctx) {
			log.Warn("ollama host unreachable, falling back to heuristic-only scoring",
				zap.String("host", cfg.Ollama.Host))
		}
		provider = ollama
	}

	fetcher := gitclone.New(cfg.CloneTimeout(), log)
	repoAnalyzer := analyzer.NewRepoAnalyzer(fetcher, provider, log)

	rep, err := runPipeline(ctx, source, repoAnalyzer, provider, username, cfg.Concurrency, log)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	jsonPath, err := report.WriteJSON(cfg.OutputDir, rep)
	if err != nil {
		return err
	}
	mdPath, err := report.WriteMarkdown(cfg.OutputDir, rep)
	if err != nil {
		return err
	}

	if !analyzeFlagNoSave {
		saveRun(rep, log)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	renderAnalysis(rep)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Report saved to:"), jsonPath)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Summary saved to:"), mdPath)
	fmt.Println()
	fmt.Println(report.Markdown(rep))
	return nil
}

// applyAnalyzeFlags overlays command-line flags onto the loaded config.
func applyAnalyzeFlags(cfg *config.Config) {
	if analyzeFlagToken != "" {
		cfg.GitHubToken = analyzeFlagToken
	}
	if analyzeFlagModel != "" {
		cfg.Ollama.Model = analyzeFlagModel
	}
	if analyzeFlagHost != "" {
		cfg.Ollama.Host = analyzeFlagHost
	}
	if analyzeFlagOut != "" {
		cfg.OutputDir = analyzeFlagOut
	}
	if analyzeFlagConcurrency > 0 {
		cfg.Concurrency = analyzeFlagConcurrency
	}
}

// runPipeline fetches the profile, scores every non-fork repository, and
// assembles the full report. Per-repository failures never abort the run;
// only a profile-level fetch failure returns an error.
func runPipeline(ctx context.Context, source github.Source, repoAnalyzer *analyzer.RepoAnalyzer,
	provider insight.Provider, username string, concurrency int, log *zap.Logger) (*report.Report, error) {

	profile, metas, err := source.FetchProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	var targets []analyzer.RepositoryMetadata
	for _, m := range metas {
		if m.Fork {
			continue
		}
		targets = append(targets, m)
	}
	log.Info("analyzing repositories",
		zap.Int("total", len(metas)), zap.Int("non_fork", len(targets)))

	if concurrency < 1 {
		concurrency = 1
	}

	// Index-addressed results keep encounter order however the workers
	// finish. Every worker returns nil: repository failures are recorded
	// inside the analysis itself.
	results := make([]analyzer.RepositoryAnalysis, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, meta := range targets {
		i, meta := i, meta
		g.Go(func() error {
			log.Info("analyzing repo", zap.String("repo", meta.Name))
			a := repoAnalyzer.Analyze(gctx, meta)
			scoring.Finalize(&a)
			results[i] = a
			return nil
		})
	}
	_ = g.Wait()

	pd := analyzer.ProfileData{
		Username:           profile.Username,
		ProfileURL:         profile.URL,
		AnalyzedAt:         time.Now(),
		TotalReposAnalyzed: len(results),
		Repositories:       results,
	}
	pd.LanguagesDetected = pd.Languages()
	if pd.LanguagesDetected == nil {
		pd.LanguagesDetected = []string{}
	}
	pd.PrimaryLanguage = analyzer.PrimaryLanguageOf(results)

	readiness := scoring.ComputeHiringReadiness(&pd)
	roles := scoring.ComputeRoleFit(pd.Repositories)

	if provider != nil {
		summary, err := provider.SummarizeProfile(ctx, summaryInput(&pd, readiness, roles))
		if err != nil {
			log.Warn("profile summary generation failed", zap.Error(err))
		} else {
			pd.LLMSummary = summary
		}
	}

	return &report.Report{ProfileData: pd, HiringReadiness: readiness, RoleScores: roles}, nil
}

// summaryInput flattens the computed scores into the provider's input.
func summaryInput(pd *analyzer.ProfileData, readiness scoring.HiringReadiness, roles scoring.RoleScores) insight.ProfileSummaryInput {
	var topNames []string
	for i, r := range pd.Repositories {
		if i == 3 {
			break
		}
		topNames = append(topNames, r.RepoName)
	}
	return insight.ProfileSummaryInput{
		Username:        pd.Username,
		Score:           readiness.Score,
		Tier:            readiness.Tier,
		PrimaryLanguage: pd.PrimaryLanguage,
		TotalRepos:      pd.TotalReposAnalyzed,
		TopRepoNames:    topNames,
		RoleFitLines: []string{
			fmt.Sprintf("ML Engineer %d/100 (%s)", roles.MLEngineer.Score, roles.MLEngineer.FitLabel),
			fmt.Sprintf("Backend Engineer %d/100 (%s)", roles.BackendEngineer.Score, roles.BackendEngineer.FitLabel),
			fmt.Sprintf("SRE %d/100 (%s)", roles.SRE.Score, roles.SRE.FitLabel),
		},
	}
}

// saveRun records the run in the history database. Failures are logged
// and otherwise ignored; history is a convenience, not part of the report.
func saveRun(rep *report.Report, log *zap.Logger) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		log.Warn("opening history database failed", zap.Error(err))
		return
	}
	defer db.Close()

	if _, err := db.SaveRun(&rep.ProfileData, rep.HiringReadiness, appVersion); err != nil {
		log.Warn("recording run failed", zap.Error(err))
	}
}

func renderAnalysis(rep *report.Report) {
	fmt.Println(output.Section("Profile Analysis: @" + rep.Username))
	fmt.Println()

	if len(rep.Repositories) == 0 {
		fmt.Println(output.StyleMuted.Render(" No public non-fork repositories found."))
	} else {
		tbl := output.NewTable("Score", "Repository", "Rating", "Language", "Stars")
		for _, r := range rep.Repositories {
			lang := r.Language
			if lang == "" {
				lang = output.StyleMuted.Render("unknown")
			}
			tbl.AddRow(
				output.ScoreStyle(r.CompositeScore).Render(fmt.Sprintf("%5d", r.CompositeScore)),
				r.RepoName,
				r.Rating,
				lang,
				fmt.Sprintf("%d", r.Stars),
			)
		}
		tbl.Print()
	}

	fmt.Println(output.Section("Hiring Readiness"))
	fmt.Println()
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Readiness:"),
		output.ScoreBar(rep.HiringReadiness.Score, 20))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Tier:"),
		output.StyleBold.Render(rep.HiringReadiness.Tier))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Primary language:"), rep.PrimaryLanguage)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("ML Engineer:"),
		fitLine(rep.RoleScores.MLEngineer))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Backend Engineer:"),
		fitLine(rep.RoleScores.BackendEngineer))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("SRE:"),
		fitLine(rep.RoleScores.SRE))
	fmt.Println()
}

func fitLine(fit scoring.RoleFit) string {
	return fmt.Sprintf("%s %s",
		output.ScoreStyle(fit.Score).Render(fmt.Sprintf("%3d/100", fit.Score)),
		output.StyleMuted.Render(fit.FitLabel))
}

// ParseProfileArg derives a username from a bare name or a profile URL:
// trailing slashes are stripped, the last path segment is taken, and any
// "@" prefix is removed.
func ParseProfileArg(arg string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(arg), "/")
	parts := strings.Split(trimmed, "/")
	return strings.ReplaceAll(parts[len(parts)-1], "@", "")
}
