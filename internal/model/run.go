package model

// PhaseStatus represents the outcome of a pipeline phase.
type PhaseStatus string

const (
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// PhaseResult holds the outcome of a pipeline phase.
type PhaseResult struct {
	Name     string         `json:"name"`
	Status   PhaseStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
