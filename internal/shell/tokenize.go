package shell

import (
	"regexp"
	"strings"
)

// A token is a raw string span (possibly spanning lines), a double quoted
// span, or a run of non-space characters, tried in that order.
var partPattern = regexp.MustCompile(`(?s)r?#".*"#|r?"[^"]+"|\S+`)

// SplitCommandParts splits a logical command line into its arguments.
// Quote delimiters are removed from quoted arguments, their content is kept
// verbatim including whitespace and newlines.
func SplitCommandParts(line string) []string {
	found := partPattern.FindAllString(line, -1)
	parts := make([]string, 0, len(found))
	for _, part := range found {
		parts = append(parts, unquote(part))
	}
	return parts
}

func unquote(part string) string {
	for {
		trimmed := strings.TrimPrefix(part, `r#"`)
		if trimmed == part {
			break
		}
		part = trimmed
	}
	if strings.HasPrefix(part, `r"`) {
		part = part[1:]
	}
	part = strings.Trim(part, "#")
	return strings.Trim(part, `"`)
}
