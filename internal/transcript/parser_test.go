package transcript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noogen-projects/md-cli-test/internal/domain"
)

const document = "Intro text.\n" +
	"\n" +
	"```sh\n" +
	"$ echo before\n" +
	"```\n" +
	"\n" +
	"# First\n" +
	"\n" +
	"```sh\n" +
	"$ mkdir \"d\"\n" +
	"$ ls .\n" +
	"d\n" +
	"```\n" +
	"\n" +
	"```rust\n" +
	"fn main() {}\n" +
	"```\n" +
	"\n" +
	"# Empty heading\n" +
	"\n" +
	"## Not a section\n" +
	"\n" +
	"# Second `part`\n" +
	"\n" +
	"```shell\n" +
	"$ cat a.txt\n" +
	"hello\n" +
	"```\n" +
	"\n" +
	"```sh\n" +
	"```\n"

func TestParse(t *testing.T) {
	sections := Parse([]byte(document), "README.md", Options{})

	expected := []domain.Section{
		{
			Title: "",
			Cases: []domain.TestCase{{
				Commands: []string{"echo before"},
				Expected: domain.ExpectedOutput{SourcePath: "README.md", SourceLine: 3},
			}},
		},
		{
			Title: "First",
			Cases: []domain.TestCase{{
				Commands: []string{`mkdir "d"`, "ls ."},
				Expected: domain.ExpectedOutput{Text: "d\n", SourcePath: "README.md", SourceLine: 9},
			}},
		},
		{
			Title: "Second part",
			Cases: []domain.TestCase{
				{
					Commands: []string{"cat a.txt"},
					Expected: domain.ExpectedOutput{Text: "hello\n", SourcePath: "README.md", SourceLine: 25},
				},
				{
					Expected: domain.ExpectedOutput{SourcePath: "README.md", SourceLine: 30},
				},
			},
		},
	}

	if diff := cmp.Diff(expected, sections); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Options(t *testing.T) {
	envs := []domain.EnvVar{{Key: "NO_COLOR", Value: "1"}, {Key: "HOME", Value: "/tmp"}}
	sections := Parse([]byte("```sh\n$ todo list\n```\n"), "", Options{
		BinaryAlias: "todo",
		BinaryName:  "todo-cli",
		Envs:        envs,
	})

	require.Len(t, sections, 1)
	require.Len(t, sections[0].Cases, 1)
	tc := sections[0].Cases[0]
	assert.Equal(t, "todo", tc.BinaryAlias)
	assert.Equal(t, "todo-cli", tc.BinaryName)
	assert.Equal(t, envs, tc.Envs)
}

func TestParser_Feed(t *testing.T) {
	source := []byte("line one\nline two\n")

	t.Run("heading without cases does not flush", func(t *testing.T) {
		p := NewParser(source, "doc.md", Options{})
		p.Feed(Event{Kind: HeadingStart, Level: 1})
		p.Feed(Event{Kind: Text, Text: "Ignored"})
		p.Feed(Event{Kind: HeadingEnd, Level: 1})
		p.Feed(Event{Kind: HeadingStart, Level: 1})
		p.Feed(Event{Kind: Text, Text: "Kept"})
		p.Feed(Event{Kind: HeadingEnd, Level: 1})
		p.Feed(Event{Kind: CodeStart, Lang: "sh", Offset: 9})
		p.Feed(Event{Kind: Text, Text: "$ ls .\n"})
		p.Feed(Event{Kind: CodeEnd})

		sections := p.Sections()
		require.Len(t, sections, 1)
		assert.Equal(t, "Kept", sections[0].Title)
		assert.Equal(t, 2, sections[0].Cases[0].Expected.SourceLine)
	})

	t.Run("other languages are ignored", func(t *testing.T) {
		p := NewParser(source, "doc.md", Options{})
		p.Feed(Event{Kind: CodeStart, Lang: "bash"})
		p.Feed(Event{Kind: Text, Text: "$ ls .\n"})
		p.Feed(Event{Kind: CodeEnd})

		assert.Empty(t, p.Sections())
	})

	t.Run("empty block is a case", func(t *testing.T) {
		p := NewParser(source, "doc.md", Options{})
		p.Feed(Event{Kind: CodeStart, Lang: "shell"})
		p.Feed(Event{Kind: CodeEnd})

		sections := p.Sections()
		require.Len(t, sections, 1)
		require.Len(t, sections[0].Cases, 1)
		assert.Empty(t, sections[0].Cases[0].Commands)
		assert.Equal(t, 1, sections[0].Cases[0].Expected.SourceLine)
	})
}

func TestParse_FenceTag(t *testing.T) {
	tests := []struct {
		name  string
		fence string
		cases int
	}{
		{name: "sh", fence: "```sh", cases: 1},
		{name: "shell", fence: "```shell", cases: 1},
		{name: "trailing spaces", fence: "```sh  ", cases: 1},
		{name: "extra words", fence: "```sh title", cases: 0},
		{name: "attributes", fence: "```shell {.numberLines}", cases: 0},
		{name: "no tag", fence: "```", cases: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := Parse([]byte("# T\n\n"+tt.fence+"\n$ ls .\n```\n"), "doc.md", Options{})
			cases := 0
			for _, section := range sections {
				cases += len(section.Cases)
			}
			assert.Equal(t, tt.cases, cases)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(document), 0644))

	sections, err := ParseFile(path, Options{})
	require.NoError(t, err)
	assert.Len(t, sections, 3)
	assert.Equal(t, path, sections[1].Cases[0].Expected.SourcePath)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.md"), Options{})
	assert.Error(t, err)
}

func TestEvents(t *testing.T) {
	events := Events([]byte("# Title\n\n```sh title\n$ ls .\n```\n"))

	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{HeadingStart, Text, HeadingEnd, CodeStart, Text, CodeEnd}, kinds)
	assert.Equal(t, "Title", events[1].Text)
	assert.Equal(t, "sh title", events[3].Lang)
	assert.Equal(t, 9, events[3].Offset)
	assert.Equal(t, "$ ls .\n", events[4].Text)
}
