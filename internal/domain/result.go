package domain

import "time"

// CaseResult represents the result of replaying a single transcript case
type CaseResult struct {
	Section  string        // Title of the section the case belongs to
	Case     TestCase      // The case that was executed
	Success  bool          // Whether every command matched its expected output
	Error    error         // Failure reason when Success is false
	Duration time.Duration // Time taken to execute
}

// RunMeta contains metadata about a suite run
type RunMeta struct {
	Documents       int     `json:"documents"`
	Sections        int     `json:"sections"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete persisted structure for a suite run
type RunOutput struct {
	Meta    RunMeta   `json:"meta"`
	Details []Failure `json:"details"`
}
