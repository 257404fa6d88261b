package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/sourceplane/dynparam/internal/descriptor"
	"github.com/sourceplane/dynparam/internal/loader"
	"github.com/sourceplane/dynparam/internal/lookup"
	"github.com/sourceplane/dynparam/internal/param"
	"github.com/sourceplane/dynparam/internal/registry"
	"github.com/sourceplane/dynparam/internal/schema"
)

var logger = slog.Default()

func setupLogger(w io.Writer) {
	logger = newLogger(logLevel, logFormat, w)
	slog.SetDefault(logger)
}

// newLogger creates a logger; unknown levels fall back to info.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// environment is everything the commands need, loaded from --config-dir
type environment struct {
	files      []*loader.JobFile
	store      *registry.Store
	descriptor *descriptor.Descriptor
}

func loadEnvironment() (*environment, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}

	logger.Debug("Loading jobs", "configDir", configDir)
	files, err := loader.LoadJobsFromDir(configDir, validator)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs from %s: %w", configDir, err)
	}

	store, err := loader.BuildStore(files, registry.DefaultTypes())
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded jobs", "count", len(files))

	d := descriptor.New(lookup.NewAdapter(store, logger), param.NewResolver(optionsDir), logger)
	return &environment{files: files, store: store, descriptor: d}, nil
}

// identityFor builds the request identity the descriptor expects for a job
func identityFor(jobName string) string {
	return "/job/" + url.QueryEscape(jobName)
}

func (e *environment) jobs() []*registry.Job {
	jobs := make([]*registry.Job, 0, len(e.files))
	for _, name := range e.store.Names() {
		job, _ := e.store.JobByFullName(name)
		jobs = append(jobs, job)
	}
	return jobs
}
