package execution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/discovery"
	"github.com/noogen-projects/md-cli-test/internal/domain"
	"github.com/noogen-projects/md-cli-test/internal/transcript"
)

// Progress receives the running totals while a suite executes
type Progress interface {
	Update(successCount, failCount int)
	Finish()
}

// CaseRunner runs one case and returns the working root it ended in
type CaseRunner interface {
	Run(ctx context.Context, tc domain.TestCase) (string, error)
}

// Suite loads documents and runs their sections one after another
type Suite struct {
	config      *config.Config
	runner      CaseRunner
	scanner     *discovery.Scanner
	filter      *discovery.Filter
	logger      *slog.Logger
	newProgress func(total int) Progress
}

// NewSuite creates a new Suite
func NewSuite(cfg *config.Config, runner CaseRunner, logger *slog.Logger) *Suite {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suite{
		config:  cfg,
		runner:  runner,
		scanner: discovery.NewScanner(cfg.PathsToIgnore),
		filter:  discovery.NewFilter(),
		logger:  logger,
	}
}

// SetProgress sets the factory for the progress reporter of each run
func (s *Suite) SetProgress(factory func(total int) Progress) {
	s.newProgress = factory
}

// Load discovers the configured documents and parses their sections,
// applying the document and section filters.
func (s *Suite) Load() ([]domain.Document, error) {
	envs, err := s.config.GetEnvs()
	if err != nil {
		return nil, err
	}

	paths, err := s.scanner.Collect(s.config.GetDocuments())
	if err != nil {
		return nil, err
	}
	paths = s.filter.FilterByName(paths, s.config.Flags.NameFilter)

	options := transcript.Options{
		BinaryAlias: s.config.BinaryAlias,
		BinaryName:  s.config.BinaryName,
		Envs:        envs,
	}

	documents := make([]domain.Document, 0, len(paths))
	for _, path := range paths {
		sections, err := transcript.ParseFile(path, options)
		if err != nil {
			return nil, err
		}
		sections = s.filter.FilterSections(sections, s.config.Flags.Section)
		s.logger.Debug("loaded document", "path", path, "sections", len(sections))
		documents = append(documents, domain.Document{Path: path, Sections: sections})
	}
	return documents, nil
}

// Run loads and runs all documents
func (s *Suite) Run(ctx context.Context) (*Report, error) {
	documents, err := s.Load()
	if err != nil {
		return nil, err
	}
	return s.RunDocuments(ctx, documents)
}

// RunDocuments runs every section of the given documents in order. Case
// failures are collected in the report. The returned error is only set for
// failures that make continuing pointless, such as a missing program.
func (s *Suite) RunDocuments(ctx context.Context, documents []domain.Document) (*Report, error) {
	report := &Report{Documents: len(documents)}
	startTime := time.Now()
	defer func() {
		report.Duration = time.Since(startTime)
	}()

	total := 0
	for _, document := range documents {
		total += document.CaseCount()
	}

	var progress Progress
	if s.newProgress != nil && total > 0 {
		progress = s.newProgress(total)
		defer progress.Finish()
	}

	for _, document := range documents {
		for _, section := range document.Sections {
			report.Sections++
			stop, err := s.runSection(ctx, section, report, progress)
			if err != nil {
				return report, err
			}
			if stop {
				report.Stopped = true
				return report, nil
			}
		}
	}
	return report, nil
}

// runSection runs the cases of one section in a fresh temporary directory.
// The working root left by one case is where the next one starts.
func (s *Suite) runSection(ctx context.Context, section domain.Section, report *Report, progress Progress) (bool, error) {
	dir, err := os.MkdirTemp("", config.DefaultTempDirPattern)
	if err != nil {
		return false, fmt.Errorf("%w: failed to create temp dir: %v", ErrEnvironment, err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			s.logger.Warn("failed to remove temp dir", "dir", dir, "error", err)
		}
	}()

	s.logger.Debug("running section", "title", section.Title, "cases", len(section.Cases), "dir", dir)

	root := dir
	for _, tc := range section.Cases {
		tc.WorkingRoot = root
		start := time.Now()
		next, err := s.runner.Run(ctx, tc)
		root = next

		result := domain.CaseResult{
			Section:  section.Title,
			Case:     tc,
			Success:  err == nil,
			Error:    err,
			Duration: time.Since(start),
		}
		report.Results = append(report.Results, result)
		if progress != nil {
			progress.Update(report.Passed(), report.Failed())
		}

		if err == nil {
			continue
		}
		if errors.Is(err, ErrEnvironment) || ctx.Err() != nil {
			return false, err
		}
		s.logger.Debug("case failed", "location", tc.Expected.Location(), "error", err)
		if s.config.Flags.FailFast {
			return true, nil
		}
	}
	return false, nil
}

// KeepFailedSections narrows documents to the sections that had a failure
// in a previous run. Sections are matched by document path and title.
func KeepFailedSections(documents []domain.Document, failures []domain.Failure) []domain.Document {
	failed := make(map[string]map[string]bool)
	for _, failure := range failures {
		if failure.Resolved {
			continue
		}
		if failed[failure.SourcePath] == nil {
			failed[failure.SourcePath] = make(map[string]bool)
		}
		failed[failure.SourcePath][failure.Section] = true
	}

	var kept []domain.Document
	for _, document := range documents {
		var sections []domain.Section
		for _, section := range document.Sections {
			if failed[document.Path][section.Title] {
				sections = append(sections, section)
			}
		}
		if len(sections) > 0 {
			kept = append(kept, domain.Document{Path: document.Path, Sections: sections})
		}
	}
	return kept
}
