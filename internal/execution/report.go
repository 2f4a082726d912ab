package execution

import (
	"errors"
	"time"

	"github.com/noogen-projects/md-cli-test/internal/domain"
)

// Report collects the outcome of a suite run
type Report struct {
	Documents int
	Sections  int
	Results   []domain.CaseResult
	Duration  time.Duration
	Stopped   bool // Set when fail-fast skipped the remaining cases
}

// Passed returns the number of passed cases
func (r *Report) Passed() int {
	passed := 0
	for _, result := range r.Results {
		if result.Success {
			passed++
		}
	}
	return passed
}

// Failed returns the number of failed cases
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Success reports whether every executed case passed
func (r *Report) Success() bool {
	return r.Failed() == 0
}

// Errors returns the errors of the failed cases in execution order
func (r *Report) Errors() []error {
	var errs []error
	for _, result := range r.Results {
		if !result.Success {
			errs = append(errs, result.Error)
		}
	}
	return errs
}

// Output converts the report into its persisted form
func (r *Report) Output() *domain.RunOutput {
	failures := make([]domain.Failure, 0, r.Failed())
	for _, result := range r.Results {
		if !result.Success {
			failures = append(failures, NewFailure(result))
		}
	}

	return &domain.RunOutput{
		Meta: domain.RunMeta{
			Documents:       r.Documents,
			Sections:        r.Sections,
			TotalCases:      len(r.Results),
			PassedCases:     r.Passed(),
			FailedCases:     r.Failed(),
			Duration:        r.Duration.String(),
			DurationSeconds: r.Duration.Seconds(),
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}
}

// NewFailure describes a failed case result
func NewFailure(result domain.CaseResult) domain.Failure {
	failure := domain.Failure{
		Section:    result.Section,
		Commands:   result.Case.Commands,
		SourcePath: result.Case.Expected.SourcePath,
		SourceLine: result.Case.Expected.SourceLine,
	}
	if result.Error != nil {
		failure.Message = result.Error.Error()
	}

	var mismatch *MismatchError
	var commandFailure *CommandFailure
	var malformed *MalformedError
	switch {
	case errors.As(result.Error, &mismatch):
		failure.Command = mismatch.Command
		failure.Expected = mismatch.Expected
		failure.Actual = mismatch.Actual
		failure.Diff = mismatch.Diff
	case errors.As(result.Error, &commandFailure):
		failure.Command = commandFailure.Command
	case errors.As(result.Error, &malformed):
		failure.Command = malformed.Command
	}
	return failure
}
