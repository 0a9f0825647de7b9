// Package types defines the shared data model for the content pipeline:
// competitive snapshots, research findings, opportunity scores, script
// variants, SEO packages, and the assembled content package.
package types

import "time"

// MaxSnapshotItems is the maximum number of competing videos kept in a snapshot.
const MaxSnapshotItems = 10

// VideoStat holds engagement statistics for a single competing video.
type VideoStat struct {
	Title       string    `json:"title"`
	Channel     string    `json:"channel"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
}

// EngagementRate returns (likes+comments)/views as a percentage.
// Returns 0 for videos with no views.
func (v VideoStat) EngagementRate() float64 {
	if v.Views <= 0 {
		return 0
	}
	return float64(v.Likes+v.Comments) / float64(v.Views) * 100
}

// Snapshot is an ordered view of the top competing videos for a topic.
// It is owned by the scorer for the duration of one scoring call and is
// never mutated after assembly.
type Snapshot struct {
	Items    []VideoStat `json:"items"`
	Degraded bool        `json:"degraded"`
}

// DegradedSnapshot returns the placeholder snapshot used when the metrics
// fetcher fails. It carries no items and is marked degraded so downstream
// consumers can distinguish "no data" from "zero competition".
func DegradedSnapshot() *Snapshot {
	return &Snapshot{Degraded: true}
}

// Empty reports whether the snapshot carries no competitive data.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Items) == 0
}

// AverageViews returns the mean view count across all items, or 0 if empty.
func (s *Snapshot) AverageViews() float64 {
	if s.Empty() {
		return 0
	}
	var total int64
	for _, v := range s.Items {
		total += v.Views
	}
	return float64(total) / float64(len(s.Items))
}

// TopViews returns the highest view count in the snapshot, or 0 if empty.
func (s *Snapshot) TopViews() int64 {
	var top int64
	if s == nil {
		return 0
	}
	for _, v := range s.Items {
		if v.Views > top {
			top = v.Views
		}
	}
	return top
}

// AverageEngagement returns the mean engagement rate percentage across all
// items, or 0 if empty.
func (s *Snapshot) AverageEngagement() float64 {
	if s.Empty() {
		return 0
	}
	total := 0.0
	for _, v := range s.Items {
		total += v.EngagementRate()
	}
	return total / float64(len(s.Items))
}
