package types

// Tier is the recommendation tier derived from the aggregate opportunity score.
type Tier string

// Recommendation tiers, from most to least favorable.
const (
	TierStrong   Tier = "STRONG"
	TierModerate Tier = "MODERATE"
	TierWeak     Tier = "WEAK"
)

// ScoreMetrics summarizes the raw inputs that produced a score, for reporting.
type ScoreMetrics struct {
	AverageViews      float64 `json:"average_views"`
	TopViews          int64   `json:"top_views"`
	AverageEngagement float64 `json:"average_engagement"`
	VideosAnalyzed    int     `json:"videos_analyzed"`
	TrendStatements   int     `json:"trend_statements"`
}

// OpportunityScore is the four-dimension 0-100 opportunity assessment for a
// topic. Immutable once computed.
type OpportunityScore struct {
	Demand      float64      `json:"demand"`
	Competition float64      `json:"competition"`
	Engagement  float64      `json:"engagement"`
	Trend       float64      `json:"trend"`
	Aggregate   float64      `json:"aggregate"`
	Tier        Tier         `json:"tier"`
	Metrics     ScoreMetrics `json:"metrics"`
}
