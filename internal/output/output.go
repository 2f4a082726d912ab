// Package output prepares captured program output for comparison with the
// expected text of a transcript.
package output

import (
	"context"
	"log/slog"
	"strings"
)

// LogMarker starts a diagnostic line that programs may print while under
// test. Such lines never take part in the comparison.
const LogMarker = "[log]"

// SeparateLogs removes every line whose trimmed form starts with LogMarker
// and sends it to logger at debug level instead. The order of the remaining
// lines and the presence of a final newline are preserved.
func SeparateLogs(source string, logger *slog.Logger) string {
	kept := make([]string, 0, strings.Count(source, "\n")+1)
	for _, line := range Lines(source) {
		if strings.HasPrefix(strings.TrimSpace(line), LogMarker) {
			if logger != nil {
				logger.LogAttrs(context.Background(), slog.LevelDebug, line, slog.String("channel", "program"))
			}
			continue
		}
		kept = append(kept, line)
	}

	if strings.HasSuffix(source, "\n") {
		kept = append(kept, "")
	}
	return strings.Join(kept, "\n")
}

// Lines splits text into lines. A final newline does not start an empty
// line and a carriage return before a newline is dropped.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// privateVar is how macOS reports temporary directories that are created
// under /var.
const privateVar = "/private/var/"

// NormalizePaths rewrites platform specific aliases of temporary paths so
// that output matches transcripts written against the canonical path.
func NormalizePaths(text string) string {
	return strings.ReplaceAll(text, privateVar, "/var/")
}

// CurrentDirPlaceholder may be used in expected output to refer to the
// working directory the command ran in.
const CurrentDirPlaceholder = "${current_dir_path}"

// ExpandPlaceholders substitutes the working directory into expected text.
func ExpandPlaceholders(expected, workingRoot string) string {
	return strings.ReplaceAll(expected, CurrentDirPlaceholder, workingRoot)
}
