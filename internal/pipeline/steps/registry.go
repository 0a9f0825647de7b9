// Package steps provides step definitions and dependency validation for the
// content generation pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names. The orchestrator records failures against these names.
const (
	FetchMetrics    = "fetch_metrics"
	CollectResearch = "collect_research"
	ScoreTopic      = "score_topic"
	GenerateScript  = "generate_script"
	CompareScripts  = "compare_scripts"
	GenerateSeo     = "generate_seo"
	Assemble        = "assemble"
	Export          = "export"
)

// Step categories.
const (
	CategoryMetrics    = "metrics"
	CategoryResearch   = "research"
	CategoryScoring    = "scoring"
	CategoryGeneration = "generation"
	CategoryOutput     = "output"
)

// StepDefinition defines metadata for a pipeline step. Optional dependencies
// improve a step's output when present but never block it.
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	Optional     []string
}

// StepRegistry holds all step definitions.
var StepRegistry = map[string]StepDefinition{
	FetchMetrics: {
		Name:         FetchMetrics,
		Category:     CategoryMetrics,
		Dependencies: []string{},
		Optional:     []string{},
	},
	CollectResearch: {
		Name:         CollectResearch,
		Category:     CategoryResearch,
		Dependencies: []string{},
		Optional:     []string{},
	},
	ScoreTopic: {
		Name:         ScoreTopic,
		Category:     CategoryScoring,
		Dependencies: []string{},
		Optional:     []string{FetchMetrics, CollectResearch},
	},
	GenerateScript: {
		Name:         GenerateScript,
		Category:     CategoryGeneration,
		Dependencies: []string{ScoreTopic},
		Optional:     []string{CollectResearch},
	},
	CompareScripts: {
		Name:         CompareScripts,
		Category:     CategoryGeneration,
		Dependencies: []string{GenerateScript},
		Optional:     []string{},
	},
	GenerateSeo: {
		Name:         GenerateSeo,
		Category:     CategoryGeneration,
		Dependencies: []string{GenerateScript},
		Optional:     []string{CollectResearch},
	},
	Assemble: {
		Name:         Assemble,
		Category:     CategoryOutput,
		Dependencies: []string{ScoreTopic},
		Optional:     []string{GenerateScript, CompareScripts, GenerateSeo},
	},
	Export: {
		Name:         Export,
		Category:     CategoryOutput,
		Dependencies: []string{Assemble},
		Optional:     []string{},
	},
}

// DependencyError represents a dependency validation error.
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// ValidateDependencies checks whether a step's required dependencies are in
// the completed set.
func ValidateDependencies(stepName string, completed map[string]bool) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// AvailableSteps returns the not-yet-completed steps whose dependencies are
// met, sorted by name.
func AvailableSteps(completed map[string]bool) []string {
	var available []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(stepName, completed); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// BlockedSteps returns the not-yet-completed steps whose dependencies are
// not met, sorted by name.
func BlockedSteps(completed map[string]bool) []string {
	var blocked []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(stepName, completed); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	sort.Strings(blocked)
	return blocked
}

// AllSteps returns every registered step name, sorted.
func AllSteps() []string {
	names := make([]string, 0, len(StepRegistry))
	for name := range StepRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
