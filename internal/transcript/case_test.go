package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCase(t *testing.T) {
	t.Run("single command", func(t *testing.T) {
		tc := ParseCase("\n$ todo new \"test A\"\n    Creating `test A` project\n", "", 0)

		require.Len(t, tc.Commands, 1)
		assert.Equal(t, `todo new "test A"`, tc.Commands[0])
		assert.Equal(t, "    Creating `test A` project\n", tc.Expected.Text)
	})

	t.Run("comment and no trailing newline", func(t *testing.T) {
		tc := ParseCase("\n# Some comment\n$ todo new \"test A\"\n    Creating `test A` project", "", 0)

		require.Len(t, tc.Commands, 1)
		assert.Equal(t, `todo new "test A"`, tc.Commands[0])
		assert.Equal(t, "    Creating `test A` project", tc.Expected.Text)
	})

	t.Run("several commands", func(t *testing.T) {
		tc := ParseCase(`
# Some comment

$ mkdir "test A"
$ todo new "test A"
    Creating `+"`test A`"+` project
Error: destination `+"`~/test A`"+` already exists
`, "", 0)

		assert.Equal(t, []string{`mkdir "test A"`, `todo new "test A"`}, tc.Commands)
		assert.Equal(t, "    Creating `test A` project\nError: destination `~/test A` already exists\n", tc.Expected.Text)
	})

	t.Run("source location", func(t *testing.T) {
		tc := ParseCase("$ ls .\n", "README.md", 12)

		assert.Equal(t, "README.md", tc.Expected.SourcePath)
		assert.Equal(t, 12, tc.Expected.SourceLine)
		assert.Equal(t, "README.md:12", tc.Expected.Location())
	})
}

func TestParseCase_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		commands []string
		expected string
	}{
		{name: "trailing newline", source: "$ ls .\nd\n", commands: []string{"ls ."}, expected: "d\n"},
		{name: "no trailing newline", source: "$ ls .\nd", commands: []string{"ls ."}, expected: "d"},
		{name: "no space after marker", source: "$ls .\n", commands: []string{"ls ."}, expected: ""},
		{name: "empty block", source: "", commands: nil, expected: ""},
		{name: "no commands", source: "just text\nmore\n", commands: nil, expected: ""},
		{name: "blank output lines kept", source: "$ run\n\nafter blank\n", commands: []string{"run"}, expected: "\nafter blank\n"},
		{name: "crlf lines", source: "$ ls .\r\nd\r\n", commands: []string{"ls ."}, expected: "d\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := ParseCase(tt.source, "", 0)
			assert.Equal(t, tt.commands, tc.Commands)
			assert.Equal(t, tt.expected, tc.Expected.Text)
		})
	}
}

func TestParseCase_Multiline(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		commands []string
		expected string
	}{
		{
			name:     "raw string",
			source:   "$ todo add #\"line one\nline two\"#\nadded\n",
			commands: []string{"todo add #\"line one\nline two\"#"},
			expected: "added\n",
		},
		{
			name:     "raw string closed on the same line",
			source:   "$ todo add #\"one line\"#\nadded\n",
			commands: []string{`todo add #"one line"#`},
			expected: "added\n",
		},
		{
			name:     "open double quote",
			source:   "$ todo add \"first\nsecond\"\nok\n",
			commands: []string{"todo add \"first\nsecond\""},
			expected: "ok\n",
		},
		{
			name:     "line continuation",
			source:   "$ todo add \\\n  --flag \\\n  value\ndone\n",
			commands: []string{"todo add \n  --flag \n  value"},
			expected: "done\n",
		},
		{
			name:     "command marker inside open command",
			source:   "$ echo \"a\n$ b\"\n",
			commands: []string{"echo \"a\n$ b\""},
			expected: "",
		},
		{
			name:     "unterminated command is flushed",
			source:   "$ echo \"open\nstill open\n",
			commands: []string{"echo \"open\nstill open"},
			expected: "",
		},
		{
			name:     "commands around multiline",
			source:   "$ mkdir a\n$ todo add \\\n  x\n$ ls .\na\n",
			commands: []string{"mkdir a", "todo add \n  x", "ls ."},
			expected: "a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := ParseCase(tt.source, "", 0)
			assert.Equal(t, tt.commands, tc.Commands)
			assert.Equal(t, tt.expected, tc.Expected.Text)
		})
	}
}

func TestParseCase_OutputBetweenCommands(t *testing.T) {
	tc := ParseCase("$ mkdir \"test A\"\n$ todo new \"test A\"\nline1\nline2\n", "", 0)

	assert.Len(t, tc.Commands, 2)
	assert.Equal(t, "line1\nline2\n", tc.Expected.Text)
}
