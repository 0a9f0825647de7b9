package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/content-scout/internal/types"
)

// FailureKind classifies why a collaborator call failed.
type FailureKind string

// Failure kinds. Timeout failures come from per-step deadlines; unavailable
// covers every other collaborator error.
const (
	KindUnavailable FailureKind = "unavailable"
	KindTimeout     FailureKind = "timeout"
)

// CollaboratorError wraps a failure from one collaborator call.
type CollaboratorError struct {
	Step  string
	Kind  FailureKind
	Cause error
}

func (e *CollaboratorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("step %s %s: %v", e.Step, e.Kind, e.Cause)
	}
	return fmt.Sprintf("step %s %s", e.Step, e.Kind)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Cause
}

// InvalidInputError reports a request rejected before any collaborator call.
type InvalidInputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// AssemblyError is returned when a run cannot produce a usable package:
// every data source failed and no script was generated.
type AssemblyError struct {
	Topic    string
	Failures []types.StepFailure
}

func (e *AssemblyError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pipeline failed for %q: no usable output\n", e.Topic)
	for _, f := range e.Failures {
		if f.Tone != "" {
			fmt.Fprintf(&sb, "  - %s (%s): %s\n", f.Step, f.Tone, f.Reason)
		} else {
			fmt.Fprintf(&sb, "  - %s: %s\n", f.Step, f.Reason)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
