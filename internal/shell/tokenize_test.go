package shell

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitCommandParts(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "plain words",
			line:     "ls .",
			expected: []string{"ls", "."},
		},
		{
			name:     "quoted argument keeps spaces",
			line:     `mkdir "test A"`,
			expected: []string{"mkdir", "test A"},
		},
		{
			name:     "quoted argument between words",
			line:     `mkdir "a b" c`,
			expected: []string{"mkdir", "a b", "c"},
		},
		{
			name:     "raw string spans lines",
			line:     "echo #\"first line\n  second \"line\"\"# > notes.txt",
			expected: []string{"echo", "first line\n  second \"line", ">", "notes.txt"},
		},
		{
			name:     "raw string with r prefix",
			line:     `todo add r#"buy milk"#`,
			expected: []string{"todo", "add", "buy milk"},
		},
		{
			name:     "r prefixed quote",
			line:     `todo add r"buy milk"`,
			expected: []string{"todo", "add", "buy milk"},
		},
		{
			name:     "extra whitespace",
			line:     "  cat   a.txt\t>  b.txt ",
			expected: []string{"cat", "a.txt", ">", "b.txt"},
		},
		{
			name:     "empty line",
			line:     "   ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, SplitCommandParts(tt.line)); diff != "" {
				t.Errorf("SplitCommandParts(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}
