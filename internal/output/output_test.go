package output

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeparateLogs(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{name: "empty", source: "", expected: ""},
		{name: "no logs", source: "a\nb\n", expected: "a\nb\n"},
		{name: "no trailing newline", source: "a\nb", expected: "a\nb"},
		{name: "log lines removed", source: "[log] start\na\n  [log] indented\nb\n", expected: "a\nb\n"},
		{name: "only logs", source: "[log] one\n[log] two\n", expected: ""},
		{name: "marker inside line is kept", source: "see [log] here\n", expected: "see [log] here\n"},
		{name: "carriage returns dropped", source: "a\r\nb\r\n", expected: "a\nb\n"},
		{name: "blank lines kept", source: "a\n\nb\n", expected: "a\n\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeparateLogs(tt.source, nil))
		})
	}
}

func TestSeparateLogs_SideChannel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result := SeparateLogs("[log] connecting\nready\n", logger)

	assert.Equal(t, "ready\n", result)
	assert.Contains(t, buf.String(), "[log] connecting")
	assert.NotContains(t, buf.String(), "ready")
}

func TestNormalizePaths(t *testing.T) {
	assert.Equal(t, "/var/folders/x/T/abc\n", NormalizePaths("/private/var/folders/x/T/abc\n"))
	assert.Equal(t, "/tmp/abc", NormalizePaths("/tmp/abc"))
}

func TestExpandPlaceholders(t *testing.T) {
	expected := ExpandPlaceholders("created ${current_dir_path}/a in ${current_dir_path}\n", "/tmp/s1")
	assert.Equal(t, "created /tmp/s1/a in /tmp/s1\n", expected)
}
