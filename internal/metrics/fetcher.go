// Package metrics fetches engagement statistics for competing videos from
// the YouTube Data API and assembles them into a competitive snapshot.
package metrics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/jonathan/content-scout/internal/types"
)

// Fetcher queries the YouTube Data API for top videos on a topic.
type Fetcher struct {
	svc *youtube.Service
}

// NewFetcher creates a Fetcher using an API key.
func NewFetcher(ctx context.Context, apiKey string) (*Fetcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Fetcher{svc: svc}, nil
}

// Fetch searches for the most-viewed videos on a topic and returns a
// snapshot with their statistics, ordered by view count.
func (f *Fetcher) Fetch(ctx context.Context, topic string) (*types.Snapshot, error) {
	searchResp, err := f.svc.Search.List([]string{"snippet"}).
		Q(topic).
		Type("video").
		MaxResults(types.MaxSnapshotItems).
		Order("viewCount").
		RelevanceLanguage("en").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("video search failed: %w", err)
	}

	var videoIDs []string
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		return &types.Snapshot{}, nil
	}

	statsResp, err := f.svc.Videos.List([]string{"statistics", "snippet"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("video statistics lookup failed: %w", err)
	}

	return BuildSnapshot(statsResp.Items), nil
}

// BuildSnapshot converts raw API video items into an ordered snapshot,
// sorted by views descending and capped at MaxSnapshotItems.
func BuildSnapshot(items []*youtube.Video) *types.Snapshot {
	snapshot := &types.Snapshot{}
	for _, item := range items {
		if item == nil || item.Snippet == nil || item.Statistics == nil {
			continue
		}
		stat := types.VideoStat{
			Title:    item.Snippet.Title,
			Channel:  item.Snippet.ChannelTitle,
			Views:    int64(item.Statistics.ViewCount),
			Likes:    int64(item.Statistics.LikeCount),
			Comments: int64(item.Statistics.CommentCount),
			URL:      "https://youtube.com/watch?v=" + item.Id,
		}
		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			stat.PublishedAt = published
		}
		snapshot.Items = append(snapshot.Items, stat)
	}

	sort.SliceStable(snapshot.Items, func(i, j int) bool {
		return snapshot.Items[i].Views > snapshot.Items[j].Views
	})
	if len(snapshot.Items) > types.MaxSnapshotItems {
		snapshot.Items = snapshot.Items[:types.MaxSnapshotItems]
	}
	return snapshot
}
