package types

import "time"

// Status is the terminal state of one pipeline run.
type Status string

// Terminal states. Each maps to a distinct process exit code so callers can
// react to degraded runs without parsing output.
const (
	StatusComplete Status = "COMPLETE"
	StatusPartial  Status = "PARTIAL"
	StatusFailed   Status = "FAILED"
)

// Exit codes for each terminal state.
const (
	ExitComplete = 0
	ExitFailed   = 1
	ExitPartial  = 2
)

// ExitCode returns the process exit code for this status.
func (s Status) ExitCode() int {
	switch s {
	case StatusComplete:
		return ExitComplete
	case StatusPartial:
		return ExitPartial
	default:
		return ExitFailed
	}
}

// StepFailure records one collaborator failure during a run. Tone is set only
// for per-variant script generation failures.
type StepFailure struct {
	Step   string `json:"step"`
	Tone   Tone   `json:"tone,omitempty"`
	Reason string `json:"reason"`
}

// ContentPackage is the aggregate result of one pipeline run. Created once
// per run and immutable after assembly; export to storage is handled by a
// collaborator, never by the orchestrator itself.
type ContentPackage struct {
	Topic         string            `json:"topic"`
	CreatedAt     time.Time         `json:"created_at"`
	Settings      Options           `json:"settings"`
	Score         *OpportunityScore `json:"score,omitempty"`
	Snapshot      *Snapshot         `json:"snapshot,omitempty"`
	Findings      *ResearchFindings `json:"findings,omitempty"`
	Variants      []ScriptVariant   `json:"variants,omitempty"`
	Comparison    string            `json:"comparison,omitempty"`
	Seo           *SeoPackage       `json:"seo,omitempty"`
	SeoSkipReason string            `json:"seo_skip_reason,omitempty"`
	Failures      []StepFailure     `json:"failures,omitempty"`
	Status        Status            `json:"status"`
}

// Variant returns the script variant for a tone, or nil if it was not
// generated.
func (p *ContentPackage) Variant(tone Tone) *ScriptVariant {
	for i := range p.Variants {
		if p.Variants[i].Tone == tone {
			return &p.Variants[i]
		}
	}
	return nil
}
