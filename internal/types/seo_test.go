package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeoPackage_ClampTruncatesExcessTitlesAndTags(t *testing.T) {
	pkg := &SeoPackage{
		Titles: []string{"a", "b", "c", "d", "e"},
		Tags:   make([]string, MaxTags+7),
	}

	pkg.Clamp()

	assert.Len(t, pkg.Titles, TitleCandidateCount)
	assert.Equal(t, []string{"a", "b", "c"}, pkg.Titles)
	assert.Len(t, pkg.Tags, MaxTags)
}

func TestSeoPackage_ClampLeavesBoundedValuesAlone(t *testing.T) {
	pkg := &SeoPackage{
		Titles: []string{"a", "b"},
		Tags:   []string{"tag"},
	}

	pkg.Clamp()

	assert.Len(t, pkg.Titles, 2)
	assert.Len(t, pkg.Tags, 1)
}
