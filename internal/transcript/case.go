package transcript

import (
	"strings"
	"unicode"

	"github.com/noogen-projects/md-cli-test/internal/domain"
	"github.com/noogen-projects/md-cli-test/internal/output"
)

const (
	commandMarker      = "$"
	rawStringOpener    = `#"`
	rawStringCloser    = `"#`
	quote              = `"`
	continuationMarker = `\`
)

type openKind int

const (
	// toEndMarker stays open until a line contains marker.
	toEndMarker openKind = iota + 1
	// lineContinuation stays open while lines end with a backslash.
	lineContinuation
)

// multiline accumulates a command that spans several physical lines.
type multiline struct {
	kind   openKind
	marker string
	text   strings.Builder
}

func newMultiline(kind openKind, marker, first string) *multiline {
	m := &multiline{kind: kind, marker: marker}
	m.text.WriteString(first)
	return m
}

// feed appends line and reports whether the command is now complete.
func (m *multiline) feed(line string) bool {
	m.text.WriteByte('\n')

	done := true
	switch m.kind {
	case toEndMarker:
		done = strings.Contains(line, m.marker)
	case lineContinuation:
		if strings.HasSuffix(line, continuationMarker) {
			line = strings.TrimSuffix(line, continuationMarker)
			done = false
		}
	}

	m.text.WriteString(line)
	return done
}

// startCommand inspects the body of a `$` line and returns the finished
// command, or the open multiline state when it continues on later lines.
func startCommand(body string) (string, *multiline) {
	openIdx := strings.LastIndex(body, rawStringOpener)
	closeIdx := strings.LastIndex(body, rawStringCloser)
	if openIdx >= 0 && openIdx+1 >= closeIdx {
		return "", newMultiline(toEndMarker, rawStringCloser, body)
	}

	if strings.Count(body, quote)%2 == 1 {
		return "", newMultiline(toEndMarker, quote, body)
	}

	if strings.HasSuffix(body, continuationMarker) {
		return "", newMultiline(lineContinuation, "", strings.TrimSuffix(body, continuationMarker))
	}

	return body, nil
}

// ParseCase splits the text of one transcript block into commands and
// expected output. Lines before the first command are commentary. A command
// left open when the block ends is kept as it is.
func ParseCase(source, sourcePath string, sourceLine int) domain.TestCase {
	var (
		commands []string
		expected strings.Builder
		open     *multiline
	)

	for _, line := range output.Lines(source) {
		if open != nil {
			if open.feed(line) {
				commands = append(commands, open.text.String())
				open = nil
			}
			continue
		}

		if strings.HasPrefix(line, commandMarker) {
			body := strings.TrimLeftFunc(strings.TrimLeft(line, commandMarker), unicode.IsSpace)
			command, next := startCommand(body)
			if next != nil {
				open = next
				continue
			}
			commands = append(commands, command)
		} else if len(commands) > 0 {
			expected.WriteString(line)
			expected.WriteByte('\n')
		}
	}

	if open != nil {
		commands = append(commands, open.text.String())
	}

	text := expected.String()
	if !strings.HasSuffix(source, "\n") {
		text = strings.TrimSuffix(text, "\n")
	}

	return domain.TestCase{
		Commands: commands,
		Expected: domain.ExpectedOutput{
			Text:       text,
			SourcePath: sourcePath,
			SourceLine: sourceLine,
		},
	}
}
