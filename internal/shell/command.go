// Package shell implements the small set of file system built-ins that
// transcripts may use: cd, ls, mkdir, rm, echo and cat. Every path argument
// is confined to the working root of the running section.
package shell

import (
	"strings"

	"github.com/noogen-projects/md-cli-test/internal/sandbox"
)

// Command is a recognized built-in, ready to run.
type Command interface {
	Run() (Response, error)
	Name() string
}

// ChangeDir switches the working root.
type ChangeDir struct{ Path string }

// List prints the entries of a directory.
type List struct{ Path string }

// MakeDirs creates directories along with missing parents.
type MakeDirs struct{ Paths []string }

// Remove deletes files and directory trees.
type Remove struct{ Paths []string }

// Echo prints Text or writes it to Dest.
type Echo struct {
	Text string
	Dest string // empty: print
}

// Concat prints the content of Source or copies it to Dest.
type Concat struct {
	Source string
	Dest   string // empty: print
}

func (ChangeDir) Name() string { return "cd" }
func (List) Name() string      { return "ls" }
func (MakeDirs) Name() string  { return "mkdir" }
func (Remove) Name() string    { return "rm" }
func (Echo) Name() string      { return "echo" }
func (Concat) Name() string    { return "cat" }

// Parse tokenizes line and matches it against the built-in command shapes.
// When nothing matches it returns a nil Command together with the tokens, so
// the caller can hand the line to an external program instead.
func Parse(root, line string) (Command, []string) {
	parts := SplitCommandParts(line)
	if len(parts) == 0 {
		return nil, parts
	}

	confine := func(path string) string {
		return sandbox.Confine(root, path)
	}
	confineAll := func(paths []string) []string {
		confined := make([]string, 0, len(paths))
		for _, path := range paths {
			confined = append(confined, confine(path))
		}
		return confined
	}

	name, args := parts[0], parts[1:]
	switch {
	case name == "cd" && len(args) == 1:
		return ChangeDir{Path: confine(args[0])}, parts
	case name == "ls" && len(args) == 1:
		return List{Path: confine(args[0])}, parts
	case name == "mkdir" && len(args) > 0:
		return MakeDirs{Paths: confineAll(args)}, parts
	case name == "rm" && len(args) > 0:
		return Remove{Paths: confineAll(args)}, parts
	case name == "echo" && len(args) >= 2 && args[len(args)-2] == ">":
		text := strings.Join(args[:len(args)-2], " ")
		return Echo{Text: text, Dest: confine(args[len(args)-1])}, parts
	case name == "echo":
		return Echo{Text: strings.Join(args, " ")}, parts
	case name == "cat" && len(args) == 3 && args[1] == ">":
		return Concat{Source: confine(args[0]), Dest: confine(args[2])}, parts
	case name == "cat" && len(args) == 1:
		return Concat{Source: confine(args[0])}, parts
	}
	return nil, parts
}
