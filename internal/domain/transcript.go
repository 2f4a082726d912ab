package domain

// Section groups the transcript blocks found under one top-level heading.
// All cases of a section share one working directory.
type Section struct {
	Title string
	Cases []TestCase
}

// TestCase is one fenced transcript block: the commands to replay and the
// output they are expected to print.
type TestCase struct {
	Commands    []string       // Logical command lines, continuation already merged
	BinaryAlias string         // Name used in the transcript for the program under test
	BinaryName  string         // Concrete program for the alias, empty for the build default
	WorkingRoot string         // Directory commands run in, set by the suite
	Expected    ExpectedOutput // Expected output text and its source location
	Envs        []EnvVar       // Environment overrides for external programs
}

// ExpectedOutput is the text following the first command of a block.
type ExpectedOutput struct {
	Text       string
	SourcePath string
	SourceLine int
}

// Location formats the source position of the block for diagnostics.
func (e ExpectedOutput) Location() string {
	return sourceLocation(e.SourcePath, e.SourceLine)
}

// EnvVar is a single environment override.
type EnvVar struct {
	Key   string
	Value string
}

// String renders the variable in KEY=VALUE form as expected by os/exec.
func (e EnvVar) String() string {
	return e.Key + "=" + e.Value
}

// Document is a parsed markdown file.
type Document struct {
	Path     string
	Sections []Section
}

// CaseCount returns the number of cases over all sections.
func (d Document) CaseCount() int {
	count := 0
	for _, section := range d.Sections {
		count += len(section.Cases)
	}
	return count
}
