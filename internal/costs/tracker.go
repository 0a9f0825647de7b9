// Package costs tracks estimated API spend per pipeline operation and
// persists session history to a JSON log.
package costs

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"
	"time"
)

// DefaultLogFile is the default cost history location.
const DefaultLogFile = "costs.json"

// modelPricing is dollars per 1K tokens, split input/output.
type modelPricing struct {
	Input  float64
	Output float64
}

// pricing covers the Gemini models used by the pipeline. Unknown models
// cost zero.
var pricing = map[string]modelPricing{
	"gemini-2.0-flash-lite": {Input: 0.000075, Output: 0.0003},
	"gemini-2.0-flash":      {Input: 0.0001, Output: 0.0004},
	"gemini-2.5-pro":        {Input: 0.00125, Output: 0.01},
}

// operationEstimates are rough per-operation cost estimates from typical
// token usage.
var operationEstimates = map[string]float64{
	"research":         0.15,
	"script":           0.20,
	"seo":              0.10,
	"gap_analysis":     0.15,
	"comparison":       0.10,
	"complete_package": 0.70,
}

// defaultEstimate applies to operations with no recorded estimate.
const defaultEstimate = 0.10

// Operation is one logged API call.
type Operation struct {
	Type         string    `json:"type"`
	Model        string    `json:"model"`
	TokensInput  int       `json:"tokens_input"`
	TokensOutput int       `json:"tokens_output"`
	Cost         float64   `json:"cost"`
	Timestamp    time.Time `json:"timestamp"`
}

// Session is a single tracked run.
type Session struct {
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time,omitempty"`
	Operations []Operation `json:"operations"`
	TotalCost  float64     `json:"total_cost"`
}

// history is the persisted log file shape.
type history struct {
	Sessions []Session `json:"sessions"`
}

// Tracker accumulates per-operation costs for a session. Safe for
// concurrent use.
type Tracker struct {
	mu      sync.Mutex
	logFile string
	session Session
	past    history
}

// NewTracker creates a Tracker, loading prior history from logFile if it
// exists. An empty logFile uses DefaultLogFile.
func NewTracker(logFile string) *Tracker {
	if logFile == "" {
		logFile = DefaultLogFile
	}
	t := &Tracker{
		logFile: logFile,
		session: Session{StartTime: time.Now()},
	}
	if data, err := os.ReadFile(logFile); err == nil {
		_ = json.Unmarshal(data, &t.past)
	}
	return t
}

// LogOperation records one API call and returns its computed cost.
// Token counts are estimates; unknown models are logged at zero cost.
func (t *Tracker) LogOperation(opType, model string, tokensIn, tokensOut int) float64 {
	var cost float64
	if p, ok := pricing[model]; ok {
		cost = float64(tokensIn)/1000*p.Input + float64(tokensOut)/1000*p.Output
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.session.Operations = append(t.session.Operations, Operation{
		Type:         opType,
		Model:        model,
		TokensInput:  tokensIn,
		TokensOutput: tokensOut,
		Cost:         round4(cost),
		Timestamp:    time.Now(),
	})
	t.session.TotalCost += cost
	return cost
}

// EstimateCost returns the rough expected cost for an operation type.
func EstimateCost(opType string) float64 {
	if est, ok := operationEstimates[opType]; ok {
		return est
	}
	return defaultEstimate
}

// SessionCost returns the current session total, rounded to cents.
func (t *Tracker) SessionCost() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return round2(t.session.TotalCost)
}

// SessionSummary renders a short cost summary for the current session.
func (t *Tracker) SessionSummary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := len(t.session.Operations)
	total := round2(t.session.TotalCost)
	avg := 0.0
	if count > 0 {
		avg = total / float64(count)
	}
	return fmt.Sprintf("Session cost summary:\n- Operations: %d\n- Total cost: $%.2f\n- Average per operation: $%.3f\n", count, total, avg)
}

// TotalProjectCost returns the cost across all recorded sessions plus the
// current one.
func (t *Tracker) TotalProjectCost() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := t.session.TotalCost
	for _, s := range t.past.Sessions {
		total += s.TotalCost
	}
	return round2(total)
}

// SaveSession appends the current session to the log file.
func (t *Tracker) SaveSession() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.session.EndTime = time.Now()
	saved := t.past
	saved.Sessions = append(saved.Sessions, t.session)

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cost history: %w", err)
	}
	if err := os.WriteFile(t.logFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cost history: %w", err)
	}
	t.past = saved
	return nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
