package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/content-scout/internal/types"
)

// Artifact step names. One artifact row per step per run.
const (
	StepSnapshot   = "snapshot"
	StepFindings   = "findings"
	StepScore      = "score"
	StepPackage    = "package"
	StepComparison = "comparison"
	StepSeo        = "seo"
)

// scriptStep returns the artifact step name for a tone's script.
func scriptStep(tone types.Tone) string {
	return "script_" + string(tone)
}

// SaveScript stores one script variant as a text artifact.
func (db *DB) SaveScript(ctx context.Context, runID uuid.UUID, variant *types.ScriptVariant) error {
	return db.SaveTextArtifact(ctx, runID, scriptStep(variant.Tone), "script", variant.Body)
}

// GetScript loads a tone's script for a run. Returns empty with no error
// when the script was never stored.
func (db *DB) GetScript(ctx context.Context, runID uuid.UUID, tone types.Tone) (string, error) {
	return db.GetTextArtifact(ctx, runID, scriptStep(tone))
}

// GetSnapshotByRunID loads the metrics snapshot artifact for a run.
func (db *DB) GetSnapshotByRunID(ctx context.Context, runID uuid.UUID) (*types.Snapshot, error) {
	content, err := db.GetArtifact(ctx, runID, StepSnapshot)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var snapshot types.Snapshot
	if err := json.Unmarshal(content, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// GetFindingsByRunID loads the research findings artifact for a run.
func (db *DB) GetFindingsByRunID(ctx context.Context, runID uuid.UUID) (*types.ResearchFindings, error) {
	content, err := db.GetArtifact(ctx, runID, StepFindings)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var findings types.ResearchFindings
	if err := json.Unmarshal(content, &findings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal findings: %w", err)
	}
	return &findings, nil
}

// GetScoreByRunID loads the opportunity score artifact for a run.
func (db *DB) GetScoreByRunID(ctx context.Context, runID uuid.UUID) (*types.OpportunityScore, error) {
	content, err := db.GetArtifact(ctx, runID, StepScore)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var score types.OpportunityScore
	if err := json.Unmarshal(content, &score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score: %w", err)
	}
	return &score, nil
}

// GetPackageByRunID loads the assembled content package artifact for a run.
func (db *DB) GetPackageByRunID(ctx context.Context, runID uuid.UUID) (*types.ContentPackage, error) {
	content, err := db.GetArtifact(ctx, runID, StepPackage)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var pkg types.ContentPackage
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal content package: %w", err)
	}
	return &pkg, nil
}
