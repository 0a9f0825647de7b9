// Package scoring computes the opportunity score for a topic from a
// competitive snapshot and research findings. Scoring is a pure function of
// its inputs: no I/O, no clock reads beyond the injected reference time.
package scoring

import (
	"math"
	"time"

	"github.com/jonathan/content-scout/internal/types"
)

// NeutralMidpoint is the sub-score used when an input carries no information
// (an empty snapshot or absent findings). An empty result set is treated as
// unknown, not as zero competition or zero demand.
const NeutralMidpoint = 50.0

// Recommendation tier thresholds on the aggregate score.
const (
	StrongThreshold   = 70.0
	ModerateThreshold = 40.0
)

// Demand bands: average view count of competitors maps monotonically to a
// 0-100 score.
const (
	demandViewsTop  = 5_000_000
	demandViewsHigh = 1_000_000
	demandViewsMid  = 500_000
	demandViewsLow  = 100_000
)

// Competition bands: the top competitor's view count maps inversely — a
// bigger incumbent means a harder break-in.
const (
	competitionViewsExtreme = 10_000_000
	competitionViewsHigh    = 5_000_000
	competitionViewsMid     = 1_000_000
	competitionViewsLow     = 500_000
)

// Freshness penalty: when at least half the snapshot is recent high
// performers, the competition score drops one band.
const (
	freshWindow          = 180 * 24 * time.Hour
	freshPerformerViews  = 1_000_000
	freshnessPenalty     = 20.0
	trendGapSummaryBonus = 20.0
)

// Score combines the snapshot and findings into an OpportunityScore using
// the given weights. Weights are assumed to be validated at load time.
// The returned score is immutable and deterministic for identical inputs.
func Score(snapshot *types.Snapshot, findings *types.ResearchFindings, weights Weights) types.OpportunityScore {
	return ScoreAt(snapshot, findings, weights, time.Now())
}

// ScoreAt is Score with an explicit reference time for the freshness
// penalty, keeping the function testable without clock stubs.
func ScoreAt(snapshot *types.Snapshot, findings *types.ResearchFindings, weights Weights, now time.Time) types.OpportunityScore {
	demand := demandScore(snapshot)
	competition := competitionScore(snapshot, now)
	engagement := engagementScore(snapshot)
	trend := trendScore(findings)

	aggregate := clip(demand*weights.Demand +
		competition*weights.Competition +
		engagement*weights.Engagement +
		trend*weights.Trend)

	score := types.OpportunityScore{
		Demand:      demand,
		Competition: competition,
		Engagement:  engagement,
		Trend:       trend,
		Aggregate:   aggregate,
		Tier:        TierFor(aggregate),
	}
	if !snapshot.Empty() {
		score.Metrics = types.ScoreMetrics{
			AverageViews:      snapshot.AverageViews(),
			TopViews:          snapshot.TopViews(),
			AverageEngagement: snapshot.AverageEngagement(),
			VideosAnalyzed:    len(snapshot.Items),
		}
	}
	if findings != nil {
		score.Metrics.TrendStatements = len(findings.Trends)
	}
	return score
}

// TierFor maps an aggregate score to its recommendation tier.
func TierFor(aggregate float64) types.Tier {
	switch {
	case aggregate >= StrongThreshold:
		return types.TierStrong
	case aggregate >= ModerateThreshold:
		return types.TierModerate
	default:
		return types.TierWeak
	}
}

// demandScore maps average competitor views to a banded 0-100 score.
// An empty snapshot carries no demand information and scores neutral.
func demandScore(snapshot *types.Snapshot) float64 {
	if snapshot.Empty() {
		return NeutralMidpoint
	}
	avg := snapshot.AverageViews()
	switch {
	case avg > demandViewsTop:
		return 100
	case avg > demandViewsHigh:
		return 80
	case avg > demandViewsMid:
		return 60
	case avg > demandViewsLow:
		return 40
	default:
		return 20
	}
}

// competitionScore maps the strongest incumbent's views inversely to a
// 0-100 score, with a penalty when the field is dominated by fresh high
// performers.
func competitionScore(snapshot *types.Snapshot, now time.Time) float64 {
	if snapshot.Empty() {
		return NeutralMidpoint
	}

	top := snapshot.TopViews()
	var base float64
	switch {
	case top > competitionViewsExtreme:
		base = 20
	case top > competitionViewsHigh:
		base = 40
	case top > competitionViewsMid:
		base = 60
	case top > competitionViewsLow:
		base = 80
	default:
		base = 100
	}

	fresh := 0
	for _, v := range snapshot.Items {
		if v.Views >= freshPerformerViews && now.Sub(v.PublishedAt) <= freshWindow {
			fresh++
		}
	}
	if fresh*2 >= len(snapshot.Items) {
		base -= freshnessPenalty
	}

	return clip(base)
}

// engagementScore maps the average (likes+comments)/views percentage to a
// banded 0-100 score.
func engagementScore(snapshot *types.Snapshot) float64 {
	if snapshot.Empty() {
		return NeutralMidpoint
	}
	avg := snapshot.AverageEngagement()
	switch {
	case avg > 3:
		return 100
	case avg > 2:
		return 80
	case avg > 1.5:
		return 60
	case avg > 1:
		return 40
	default:
		return 20
	}
}

// trendScore maps the count of trend statements, plus a bonus for a
// non-empty gap summary, to a 0-100 score. Absent findings score neutral.
func trendScore(findings *types.ResearchFindings) float64 {
	if findings.Empty() {
		return NeutralMidpoint
	}
	var base float64
	switch {
	case len(findings.Trends) >= 5:
		base = 80
	case len(findings.Trends) >= 3:
		base = 60
	case len(findings.Trends) >= 1:
		base = 40
	default:
		base = 30
	}
	if findings.GapSummary != "" {
		base += trendGapSummaryBonus
	}
	return clip(base)
}

// clip bounds a score to [0, 100].
func clip(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
