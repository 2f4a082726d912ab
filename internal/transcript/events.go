package transcript

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// EventKind identifies a markdown event.
type EventKind int

const (
	HeadingStart EventKind = iota
	HeadingEnd
	CodeStart
	CodeEnd
	Text
)

func (k EventKind) String() string {
	switch k {
	case HeadingStart:
		return "HeadingStart"
	case HeadingEnd:
		return "HeadingEnd"
	case CodeStart:
		return "CodeStart"
	case CodeEnd:
		return "CodeEnd"
	case Text:
		return "Text"
	}
	return "Unknown"
}

// Event is one step of the flat markdown stream the section parser consumes.
type Event struct {
	Kind   EventKind
	Level  int    // heading level for heading events
	Lang   string // language tag for CodeStart
	Offset int    // byte offset of the line the element starts on
	Text   string // payload for Text
}

// Events flattens the headings and fenced code blocks of a markdown document
// into a stream in document order. Everything else is skipped.
func Events(source []byte) []Event {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var events []Event
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			offset := 0
			if lines := node.Lines(); lines.Len() > 0 {
				offset = lineStart(source, lines.At(0).Start)
			}
			events = append(events,
				Event{Kind: HeadingStart, Level: node.Level, Offset: offset},
				Event{Kind: Text, Text: plainText(node, source)},
				Event{Kind: HeadingEnd, Level: node.Level},
			)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			start := Event{Kind: CodeStart}
			if node.Info != nil {
				// the whole info string is the tag, "sh title" is not "sh"
				start.Lang = strings.TrimSpace(string(node.Info.Segment.Value(source)))
				start.Offset = lineStart(source, node.Info.Segment.Start)
			} else if lines := node.Lines(); lines.Len() > 0 {
				start.Offset = lineStart(source, lineStart(source, lines.At(0).Start)-1)
			}
			events = append(events, start)

			var content bytes.Buffer
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				content.Write(segment.Value(source))
			}
			if content.Len() > 0 {
				events = append(events, Event{Kind: Text, Text: content.String()})
			}

			events = append(events, Event{Kind: CodeEnd})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return events
}

// lineStart returns the offset of the first byte of the line holding offset.
func lineStart(source []byte, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.LastIndexByte(source[:offset], '\n') + 1
}

// plainText concatenates the text content of an inline tree.
func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
