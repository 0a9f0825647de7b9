package metrics

import (
	"fmt"
	"strings"

	"github.com/jonathan/content-scout/internal/types"
)

// topAnalyzed is how many top videos the analysis text covers.
const topAnalyzed = 5

// SnapshotSummary renders a competitive snapshot as plain text for prompts
// and the exported report. A degraded or empty snapshot yields an explicit
// note rather than an empty string.
func SnapshotSummary(topic string, snapshot *types.Snapshot) string {
	if snapshot.Empty() {
		if snapshot != nil && snapshot.Degraded {
			return fmt.Sprintf("Competitive data for %q is unavailable (metrics fetch failed).", topic)
		}
		return fmt.Sprintf("No competing videos found for %q.", topic)
	}

	top := snapshot.Items
	if len(top) > topAnalyzed {
		top = top[:topAnalyzed]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "TOP %d VIDEOS FOR: %q\n\n", len(top), topic)

	var totalViews int64
	for i, v := range top {
		totalViews += v.Views
		fmt.Fprintf(&sb, "#%d | %s\n", i+1, v.Title)
		fmt.Fprintf(&sb, "    Channel: %s\n", v.Channel)
		fmt.Fprintf(&sb, "    Views: %d | Likes: %d | Comments: %d (engagement %.2f%%)\n",
			v.Views, v.Likes, v.Comments, v.EngagementRate())
		if v.URL != "" {
			fmt.Fprintf(&sb, "    URL: %s\n", v.URL)
		}
	}

	fmt.Fprintf(&sb, "\nTotal views across top %d: %d\n", len(top), totalViews)
	fmt.Fprintf(&sb, "Average views: %d\n", totalViews/int64(len(top)))
	fmt.Fprintf(&sb, "Most successful: %s\n", top[0].Title)

	return sb.String()
}
