package scoring

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/gitsight/gitsight/internal/analyzer"
)

// Hiring readiness weights over the six portfolio signals.
const (
	weightAvgRepoScore       = 0.35
	weightBest3ReposAvg      = 0.25
	weightPortfolioDiversity = 0.15
	weightTestingPresence    = 0.10
	weightDeployPresence     = 0.10
	weightSecurityBaseline   = 0.05
)

// Readiness tiers, highest band first. Band lower bounds are inclusive.
const (
	TierHireReady   = "Hire-Ready"
	TierCompetitive = "Competitive"
	TierDeveloping  = "Developing"
	TierEarlyStage  = "Early Stage"
	TierNotReady    = "Not Ready"
)

// tierLabels is the fixed one-sentence description per tier.
var tierLabels = map[string]string{
	TierHireReady:   "Strong candidate; portfolio speaks for itself",
	TierCompetitive: "Solid candidate; minor gaps to address",
	TierDeveloping:  "Promising; needs focused improvement in 2-3 areas",
	TierEarlyStage:  "Real potential; portfolio needs significant work",
	TierNotReady:    "Foundational gaps; focus on fundamentals first",
}

// HiringReadiness is the profile-level verdict.
type HiringReadiness struct {
	Score     int    `json:"score"`
	Tier      string `json:"tier"`
	TierLabel string `json:"tier_label"`
}

// ComputeHiringReadiness aggregates a profile's repository scores into the
// final 0-100 readiness score and tier. An empty repository list scores 0
// in the lowest tier with no further computation.
func ComputeHiringReadiness(p *analyzer.ProfileData) HiringReadiness {
	repos := p.Repositories
	if len(repos) == 0 {
		return HiringReadiness{Score: 0, Tier: TierNotReady, TierLabel: tierLabels[TierNotReady]}
	}

	scores := make([]float64, len(repos))
	for i, r := range repos {
		scores[i] = float64(r.CompositeScore)
	}

	avgRepoScore, _ := stats.Mean(scores)

	best := append([]float64(nil), scores...)
	sort.Sort(sort.Reverse(sort.Float64Slice(best)))
	if len(best) > 3 {
		best = best[:3]
	}
	best3Avg, _ := stats.Mean(best)

	diversity := float64(len(p.Languages()) * 20)
	if diversity > 100 {
		diversity = 100
	}

	withTesting, withDeploy, flagged := 0, 0, 0
	for _, r := range repos {
		if r.ScoreBreakdown.TestingCI > 0 {
			withTesting++
		}
		if r.ScoreBreakdown.Deployability > 0 {
			withDeploy++
		}
		if len(r.CriticalFlags) > 0 {
			flagged++
		}
	}
	total := float64(len(repos))
	testingPresence := float64(withTesting) / total * 100
	deployPresence := float64(withDeploy) / total * 100

	// One deduction per flagged repository, regardless of how many flags
	// that repository carries.
	securityBaseline := 100 - 20*flagged
	if securityBaseline < 0 {
		securityBaseline = 0
	}

	score := int(avgRepoScore*weightAvgRepoScore +
		best3Avg*weightBest3ReposAvg +
		diversity*weightPortfolioDiversity +
		testingPresence*weightTestingPresence +
		deployPresence*weightDeployPresence +
		float64(securityBaseline)*weightSecurityBaseline)

	tier := readinessTier(score)
	return HiringReadiness{Score: score, Tier: tier, TierLabel: tierLabels[tier]}
}

func readinessTier(score int) string {
	switch {
	case score >= 85:
		return TierHireReady
	case score >= 70:
		return TierCompetitive
	case score >= 55:
		return TierDeveloping
	case score >= 40:
		return TierEarlyStage
	default:
		return TierNotReady
	}
}
