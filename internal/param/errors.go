package param

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that no parameter definition exists for a lookup.
var ErrNotFound = errors.New("parameter definition not found")

// SourceError reports that the dependent options file could not be read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to read dependent options file %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// LineError describes one dependent options line without a key:label pair.
type LineError struct {
	Line int // 1-based
	Text string
}

// FormatError lists every malformed line found in one resolution.
type FormatError struct {
	Source string
	Lines  []LineError
}

func (e *FormatError) Error() string {
	parts := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		parts[i] = fmt.Sprintf("line %d %q", l.Line, l.Text)
	}
	return fmt.Sprintf("malformed dependent options in %s (expected key:label): %s",
		e.Source, strings.Join(parts, ", "))
}
