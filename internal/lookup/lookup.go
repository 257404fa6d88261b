// Package lookup finds the dynamic parameter definition a UI request refers
// to. The job is identified by the last segment of the request path, which
// is URL-encoded UTF-8.
package lookup

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/sourceplane/dynparam/internal/param"
	"github.com/sourceplane/dynparam/internal/registry"
)

// EncodingError reports a job identity that is not valid URL-encoded UTF-8.
type EncodingError struct {
	Identity string
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot decode job name from %q as UTF-8: %v", e.Identity, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

var errInvalidUTF8 = errors.New("invalid UTF-8 sequence")

// Adapter resolves (identity, parameter name) pairs against a job registry.
type Adapter struct {
	Jobs   registry.JobRegistry
	Logger *slog.Logger
}

// NewAdapter creates an adapter over jobs
func NewAdapter(jobs registry.JobRegistry, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{Jobs: jobs, Logger: logger}
}

// JobNameFromIdentity decodes the job name carried by identity.
func JobNameFromIdentity(identity string) (string, error) {
	raw := identity[strings.LastIndex(identity, "/")+1:]
	name, err := url.QueryUnescape(raw)
	if err != nil {
		return "", &EncodingError{Identity: identity, Err: err}
	}
	if !utf8.ValidString(name) {
		return "", &EncodingError{Identity: identity, Err: errInvalidUTF8}
	}
	return name, nil
}

// Find returns the dynamic parameter named paramName (case-insensitive) of
// the job identity refers to. It fails with *EncodingError or an error
// wrapping param.ErrNotFound.
func (a *Adapter) Find(identity, paramName string) (*param.Definition, error) {
	jobName, err := JobNameFromIdentity(identity)
	if err != nil {
		a.Logger.Warn("Could not find parameter definition: job name is not decodable",
			"parameter", paramName, "identity", identity, "error", err)
		return nil, err
	}

	if job, ok := a.Jobs.JobByFullName(jobName); ok {
		for _, p := range job.Parameters {
			if p.Kind == param.Kind && p.Dynamic != nil && strings.EqualFold(p.Name, paramName) {
				return p.Dynamic, nil
			}
		}
	}

	a.Logger.Warn("Could not find parameter definition", "parameter", paramName, "job", jobName)
	return nil, fmt.Errorf("parameter %s of job %s: %w", paramName, jobName, param.ErrNotFound)
}
