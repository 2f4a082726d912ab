package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// ResponseKind tells the runner what a successful built-in produced.
type ResponseKind int

const (
	// Success means the command ran and printed nothing.
	Success ResponseKind = iota
	// ChangeDirTo carries the new working root in Path.
	ChangeDirTo
	// Output carries printed text in Output.
	Output
)

// Response is the result of a successful built-in.
type Response struct {
	Kind   ResponseKind
	Path   string
	Output string
}

// CommandError reports a failed built-in together with the offending path.
type CommandError struct {
	Op   string
	Path string
	Err  error
}

func (e *CommandError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s `%s`", e.Op, e.Path)
	}
	return fmt.Sprintf("%s `%s`: %v", e.Op, e.Path, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Run switches to Path if it is an existing directory.
func (c ChangeDir) Run() (Response, error) {
	info, err := os.Stat(c.Path)
	if err != nil || !info.IsDir() {
		return Response{}, &CommandError{Op: "path is not a dir", Path: c.Path}
	}
	return Response{Kind: ChangeDirTo, Path: c.Path}, nil
}

// Run lists the directory entries sorted and separated by a single space.
func (c List) Run() (Response, error) {
	entries, err := os.ReadDir(c.Path)
	if err != nil {
		return Response{}, &CommandError{Op: "failed to read directory", Path: c.Path, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		entryPath := filepath.Join(c.Path, entry.Name())
		name, err := filepath.Rel(c.Path, entryPath)
		if err != nil {
			return Response{}, &CommandError{Op: "could not strip prefix from", Path: entryPath, Err: err}
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return Response{Kind: Output, Output: strings.Join(names, " ") + "\n"}, nil
}

// Run creates every path with its missing parents.
func (c MakeDirs) Run() (Response, error) {
	for _, path := range c.Paths {
		if err := os.MkdirAll(path, 0755); err != nil {
			return Response{}, &CommandError{Op: "failed to create directory", Path: path, Err: err}
		}
	}
	return Response{Kind: Success}, nil
}

// Run removes directories recursively and files one by one.
func (c Remove) Run() (Response, error) {
	for _, path := range c.Paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := os.RemoveAll(path); err != nil {
				return Response{}, &CommandError{Op: "failed to remove directory", Path: path, Err: err}
			}
			continue
		}
		if err := os.Remove(path); err != nil {
			return Response{}, &CommandError{Op: "failed to remove file", Path: path, Err: err}
		}
	}
	return Response{Kind: Success}, nil
}

// Run writes Text to Dest verbatim, or prints it when there is no Dest.
func (c Echo) Run() (Response, error) {
	if c.Dest == "" {
		return Response{Kind: Output, Output: c.Text}, nil
	}
	if err := os.WriteFile(c.Dest, []byte(c.Text), 0644); err != nil {
		return Response{}, &CommandError{Op: "failed to write file", Path: c.Dest, Err: err}
	}
	return Response{Kind: Success}, nil
}

// Run reads Source as text and continues like echo.
func (c Concat) Run() (Response, error) {
	content, err := os.ReadFile(c.Source)
	if err != nil {
		return Response{}, &CommandError{Op: "failed to read file", Path: c.Source, Err: err}
	}
	if !utf8.Valid(content) {
		return Response{}, &CommandError{Op: "file is not valid UTF-8 text", Path: c.Source}
	}
	return Echo{Text: string(content), Dest: c.Dest}.Run()
}
