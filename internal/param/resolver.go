package param

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	commentPrefix = "#"
	separator     = ":"
	inlineSource  = "inline options"
)

// Resolver computes the dependent options visible for a primary value.
type Resolver struct {
	// BaseDir anchors relative options file paths. Empty means the
	// process working directory.
	BaseDir string
}

// NewResolver creates a resolver anchored at baseDir
func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir}
}

// ResolveSecondaryOptions returns the labels of every line that starts with
// primary and is not a comment, in source order. A configured options file
// always wins over inline text; failing to read it is an error. Any matching
// line without a label fails the whole call with a *FormatError naming each
// such line.
func (r *Resolver) ResolveSecondaryOptions(def *Definition, primary string) ([]string, error) {
	if def == nil {
		return nil, ErrNotFound
	}

	content, source, err := r.load(def)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0)
	var bad []LineError
	for i, line := range splitLines(content) {
		if line == "" || !strings.HasPrefix(line, primary) {
			continue
		}
		if strings.HasPrefix(line, commentPrefix) {
			continue
		}

		key, label, ok := parseLine(line)
		if !ok {
			bad = append(bad, LineError{Line: i + 1, Text: line})
			continue
		}
		if def.ExactMatch && key != primary {
			continue
		}
		labels = append(labels, label)
	}

	if len(bad) > 0 {
		return nil, &FormatError{Source: source, Lines: bad}
	}
	return labels, nil
}

func (r *Resolver) load(def *Definition) (string, string, error) {
	if def.SecondaryOptionsFile == "" {
		return def.SecondaryOptions, inlineSource, nil
	}

	path := def.SecondaryOptionsFile
	if r.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.BaseDir, path)
	}
	content, err := readFile(path)
	if err != nil {
		return "", path, &SourceError{Path: path, Err: err}
	}
	return content, path, nil
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	return string(data), nil
}

// parseLine splits key:label. Fields after the label are ignored and
// trailing empty fields do not count, so "a:" has no label but "a::b"
// has an empty one.
func parseLine(line string) (string, string, bool) {
	fields := strings.Split(line, separator)
	end := len(fields)
	for end > 0 && fields[end-1] == "" {
		end--
	}
	if end < 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}
