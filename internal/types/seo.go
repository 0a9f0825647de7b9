package types

// SEO metadata bounds. Titles are a fixed count, tags a bounded set.
const (
	TitleCandidateCount = 3
	MaxTags             = 20
)

// SeoPackage holds generated SEO metadata for a video.
type SeoPackage struct {
	Titles        []string `json:"titles"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	ThumbnailText string   `json:"thumbnail_text"`
}

// Clamp enforces the title count and tag bounds in place.
func (s *SeoPackage) Clamp() {
	if len(s.Titles) > TitleCandidateCount {
		s.Titles = s.Titles[:TitleCandidateCount]
	}
	if len(s.Tags) > MaxTags {
		s.Tags = s.Tags[:MaxTags]
	}
}
