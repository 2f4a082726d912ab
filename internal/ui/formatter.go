package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
	clear  bool
}

// NewFormatter creates a new Formatter writing to the color-aware stdout
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{
		config: cfg,
		out:    color.Output,
		clear:  !color.NoColor,
	}
}

// SetOutput redirects the formatter and disables screen clearing
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
	f.clear = false
}

// PrintMetaStats displays the statistics and the failure tree of a run
func (f *Formatter) PrintMetaStats(output *domain.RunOutput) {
	if f.clear {
		// Clear terminal screen
		fmt.Fprint(f.out, "\033[2J\033[H")
	}

	meta := output.Meta

	// Print header
	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                   Transcript Test Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	// Print table
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Documents", white, meta.Documents)
	f.separator()
	f.row("Sections", white, meta.Sections)
	f.separator()
	f.row("Total Cases", white, meta.TotalCases)
	f.separator()
	f.row("Passed Cases", green, meta.PassedCases)
	f.separator()
	f.row("Failed Cases", red, meta.FailedCases)
	f.separator()
	f.row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	f.separator()
	f.row("Timestamp", white, meta.Timestamp)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Fprintln(f.out)
	if meta.FailedCases == 0 {
		green.Fprintln(f.out, "✓ All cases passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d of %d case(s) failed\n", meta.FailedCases, meta.TotalCases)
	fmt.Fprintln(f.out)
	f.printFailuresTree(output.Details)
}

func (f *Formatter) row(label string, c *color.Color, value any) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27v │\n", value)
}

func (f *Formatter) separator() {
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

// printFailuresTree prints the failed cases grouped by document and section
func (f *Formatter) printFailuresTree(failures []domain.Failure) {
	documents := make(map[string]map[string][]domain.Failure)
	for _, failure := range failures {
		path := f.relPath(failure.SourcePath)
		if documents[path] == nil {
			documents[path] = make(map[string][]domain.Failure)
		}
		documents[path][failure.Section] = append(documents[path][failure.Section], failure)
	}

	paths := sortedKeys(documents)
	for _, path := range paths {
		yellow.Fprintln(f.out, path)

		sections := sortedKeys(documents[path])
		for i, section := range sections {
			isLastSection := i == len(sections)-1
			connector, childPrefix := "  |_", "  |  "
			if isLastSection {
				childPrefix = "     "
			}
			cyan.Fprintf(f.out, "%s%s\n", connector, sectionTitle(section))

			for _, failure := range documents[path][section] {
				red.Fprintf(f.out, "%s  |_line %d: %s\n", childPrefix, failure.SourceLine, failedCommand(failure))
			}
		}
	}
}

// PrintDocumentList prints documents with their sections, optionally with
// the cases of every section. Documents in failed are marked with [F].
func (f *Formatter) PrintDocumentList(documents []domain.Document, showCases bool, failed map[string]struct{}) {
	green.Fprintf(f.out, "Found %d document(s):\n\n", len(documents))

	for i, document := range documents {
		failMarker := ""
		if _, ok := failed[NormalizedPathKey(f.config.ProjectPath, document.Path)]; ok {
			failMarker = " " + red.Sprint("[F]")
		}

		// Print document as root node
		isLastDocument := i == len(documents)-1
		prefix := "│   "
		if isLastDocument {
			cyan.Fprintf(f.out, "└── %s%s\n", f.relPath(document.Path), failMarker)
			prefix = "    "
		} else {
			cyan.Fprintf(f.out, "├── %s%s\n", f.relPath(document.Path), failMarker)
		}

		if len(document.Sections) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", prefix, red.Sprint("(no transcripts found)"))
		}

		for j, section := range document.Sections {
			isLastSection := j == len(document.Sections)-1
			connector, casePrefix := "├── ", "│   "
			if isLastSection {
				connector, casePrefix = "└── ", "    "
			}
			fmt.Fprintf(f.out, "%s%s%s (%d case(s))\n", prefix, connector, yellow.Sprint(sectionTitle(section.Title)), len(section.Cases))

			if !showCases {
				continue
			}
			for k, tc := range section.Cases {
				caseConnector := "├── "
				if k == len(section.Cases)-1 {
					caseConnector = "└── "
				}
				fmt.Fprintf(f.out, "%s%s%sline %d: %s\n", prefix, casePrefix, caseConnector, tc.Expected.SourceLine, strings.Join(tc.Commands, "; "))
			}
		}

		// Add spacing between documents (except for the last one)
		if !isLastDocument {
			fmt.Fprintln(f.out)
		}
	}
}

func (f *Formatter) relPath(path string) string {
	if rel, err := filepath.Rel(f.config.ProjectPath, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// NormalizedPathKey returns a document key for matching results of earlier runs
func NormalizedPathKey(projectPath, path string) string {
	p := path
	if projectPath != "" {
		if rel, err := filepath.Rel(projectPath, path); err == nil && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// FailedDocuments returns the keys of documents with unresolved failures
func FailedDocuments(projectPath string, output *domain.RunOutput) map[string]struct{} {
	failed := make(map[string]struct{})
	if output == nil {
		return failed
	}
	for _, failure := range output.Details {
		if !failure.Resolved {
			failed[NormalizedPathKey(projectPath, failure.SourcePath)] = struct{}{}
		}
	}
	return failed
}

func sectionTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}

func failedCommand(failure domain.Failure) string {
	if failure.Command != "" {
		return failure.Command
	}
	return strings.Join(failure.Commands, "; ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
