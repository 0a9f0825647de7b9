package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/content-scout/internal/types"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepSnapshot,
		StepFindings,
		StepScore,
		StepPackage,
		StepComparison,
		StepSeo,
	}

	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
	}
}

func TestScriptStep_PerTone(t *testing.T) {
	assert.Equal(t, "script_educational", scriptStep(types.ToneEducational))
	assert.Equal(t, "script_entertaining", scriptStep(types.ToneEntertaining))
	assert.Equal(t, "script_professional", scriptStep(types.ToneProfessional))
}

func TestRunType(t *testing.T) {
	run := Run{
		Topic:  "home espresso",
		Tone:   "all",
		Status: "running",
	}

	assert.Equal(t, "home espresso", run.Topic)
	assert.Equal(t, "all", run.Tone)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}
