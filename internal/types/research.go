package types

// ResearchFindings holds the unstructured web research output for a topic.
// Produced once per pipeline run and read-only afterward.
type ResearchFindings struct {
	Trends     []string `json:"trends"`
	Subtopics  []string `json:"subtopics"`
	Questions  []string `json:"questions"`
	GapSummary string   `json:"gap_summary"`
	Degraded   bool     `json:"degraded"`
}

// DegradedFindings returns the placeholder findings used when the research
// collector fails: empty sets, marked degraded.
func DegradedFindings() *ResearchFindings {
	return &ResearchFindings{Degraded: true}
}

// Empty reports whether the findings carry no research signal at all.
func (f *ResearchFindings) Empty() bool {
	return f == nil || (len(f.Trends) == 0 && len(f.Subtopics) == 0 && len(f.Questions) == 0 && f.GapSummary == "")
}
