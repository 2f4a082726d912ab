// Package transcript finds shell transcripts in markdown documents and turns
// them into test cases grouped by section.
package transcript

import (
	"bytes"
	"fmt"
	"os"

	"github.com/noogen-projects/md-cli-test/internal/domain"
)

// Languages are the fence tags that mark a block as a transcript.
var Languages = []string{"sh", "shell"}

// SectionLevel is the heading level that starts a new section.
const SectionLevel = 1

// Options are defaults applied to every parsed case.
type Options struct {
	BinaryAlias string
	BinaryName  string
	Envs        []domain.EnvVar
}

func (o Options) apply(tc *domain.TestCase) {
	if o.BinaryAlias != "" {
		tc.BinaryAlias = o.BinaryAlias
		tc.BinaryName = o.BinaryName
	}
	if len(o.Envs) > 0 {
		tc.Envs = append(tc.Envs, o.Envs...)
	}
}

// Parser groups transcript blocks into sections while consuming events.
type Parser struct {
	source  []byte
	path    string
	options Options

	sections  []domain.Section
	cases     []domain.TestCase
	title     string
	inHeading bool

	inBlock   bool
	blockLine int
	blockText bytes.Buffer
}

// NewParser creates a Parser for the document source read from path.
func NewParser(source []byte, path string, options Options) *Parser {
	return &Parser{source: source, path: path, options: options}
}

// Feed consumes a single event.
func (p *Parser) Feed(event Event) {
	switch event.Kind {
	case CodeStart:
		if !isTranscript(event.Lang) {
			return
		}
		p.inBlock = true
		p.blockLine = bytes.Count(p.source[:min(event.Offset, len(p.source))], []byte("\n")) + 1
		p.blockText.Reset()

	case CodeEnd:
		if !p.inBlock {
			return
		}
		tc := ParseCase(p.blockText.String(), p.path, p.blockLine)
		p.options.apply(&tc)
		p.cases = append(p.cases, tc)
		p.inBlock = false

	case HeadingStart:
		if event.Level != SectionLevel {
			return
		}
		p.flush()
		p.inHeading = true

	case HeadingEnd:
		if event.Level == SectionLevel {
			p.inHeading = false
		}

	case Text:
		switch {
		case p.inBlock:
			p.blockText.WriteString(event.Text)
		case p.inHeading:
			p.title = event.Text
		}
	}
}

// flush closes the pending section if it has collected any case.
func (p *Parser) flush() {
	if len(p.cases) == 0 {
		return
	}
	p.sections = append(p.sections, domain.Section{Title: p.title, Cases: p.cases})
	p.title = ""
	p.cases = nil
}

// Sections ends the stream and returns the sections in document order.
func (p *Parser) Sections() []domain.Section {
	p.flush()
	return p.sections
}

func isTranscript(lang string) bool {
	for _, accepted := range Languages {
		if lang == accepted {
			return true
		}
	}
	return false
}

// Parse extracts the sections of a markdown document.
func Parse(source []byte, path string, options Options) []domain.Section {
	parser := NewParser(source, path, options)
	for _, event := range Events(source) {
		parser.Feed(event)
	}
	return parser.Sections()
}

// ParseFile reads and parses the markdown document at path.
func ParseFile(path string, options Options) ([]domain.Section, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading document %s: %w", path, err)
	}
	return Parse(source, path, options), nil
}
