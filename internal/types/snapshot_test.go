package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoStat_EngagementRate(t *testing.T) {
	v := VideoStat{Views: 1_000_000, Likes: 20_000, Comments: 5_000}

	assert.InDelta(t, 2.5, v.EngagementRate(), 0.001)
}

func TestVideoStat_EngagementRateZeroViews(t *testing.T) {
	assert.Zero(t, VideoStat{Likes: 100}.EngagementRate())
	assert.Zero(t, VideoStat{Views: -1, Likes: 100}.EngagementRate())
}

func TestSnapshot_EmptyCoversNilAndNoItems(t *testing.T) {
	var nilSnapshot *Snapshot
	assert.True(t, nilSnapshot.Empty())
	assert.True(t, (&Snapshot{}).Empty())
	assert.False(t, (&Snapshot{Items: []VideoStat{{Views: 1}}}).Empty())
}

func TestSnapshot_DegradedSnapshotIsEmptyAndMarked(t *testing.T) {
	s := DegradedSnapshot()

	assert.True(t, s.Degraded)
	assert.True(t, s.Empty())
}

func TestSnapshot_AverageAndTopViews(t *testing.T) {
	s := &Snapshot{Items: []VideoStat{
		{Views: 1_000_000},
		{Views: 3_000_000},
	}}

	assert.InDelta(t, 2_000_000, s.AverageViews(), 0.001)
	assert.Equal(t, int64(3_000_000), s.TopViews())
}

func TestSnapshot_AggregatesOnEmptyAreZero(t *testing.T) {
	s := &Snapshot{}

	assert.Zero(t, s.AverageViews())
	assert.Zero(t, s.TopViews())
	assert.Zero(t, s.AverageEngagement())
}

func TestSnapshot_AverageEngagement(t *testing.T) {
	s := &Snapshot{Items: []VideoStat{
		{Views: 1_000_000, Likes: 10_000},                  // 1.0%
		{Views: 1_000_000, Likes: 25_000, Comments: 5_000}, // 3.0%
	}}

	assert.InDelta(t, 2.0, s.AverageEngagement(), 0.001)
}
