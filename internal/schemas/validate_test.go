package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMetadata = `{
	"topic": "home espresso",
	"created_at": "2026-08-30T10:00:00Z",
	"status": "COMPLETE",
	"settings": {
		"tone": "all",
		"variations": true,
		"length": "10-12 minutes",
		"include_seo": true
	},
	"score": {
		"demand": 80,
		"competition": 40,
		"engagement": 60,
		"trend": 50,
		"aggregate": 59,
		"tier": "MODERATE"
	},
	"failures": []
}`

func TestValidateMetadata_ValidDocument(t *testing.T) {
	assert.NoError(t, ValidateMetadata(validMetadata))
}

func TestValidateMetadata_MissingTopic(t *testing.T) {
	doc := `{
		"created_at": "2026-08-30T10:00:00Z",
		"status": "COMPLETE",
		"settings": {"tone": "all", "length": "10-12 minutes"}
	}`

	err := ValidateMetadata(doc)

	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateMetadata_BadStatus(t *testing.T) {
	doc := `{
		"topic": "home espresso",
		"created_at": "2026-08-30T10:00:00Z",
		"status": "IN_PROGRESS",
		"settings": {"tone": "all", "length": "10-12 minutes"}
	}`

	assert.Error(t, ValidateMetadata(doc))
}

func TestValidateMetadata_ScoreOutOfRange(t *testing.T) {
	doc := `{
		"topic": "home espresso",
		"created_at": "2026-08-30T10:00:00Z",
		"status": "PARTIAL",
		"settings": {"tone": "all", "length": "10-12 minutes"},
		"score": {"demand": 150, "tier": "STRONG"}
	}`

	assert.Error(t, ValidateMetadata(doc))
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": "nonsense"}`, `{}`)

	require.Error(t, err)
	var sle *SchemaLoadError
	assert.ErrorAs(t, err, &sle)
}
