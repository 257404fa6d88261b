package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sourceplane/dynparam/internal/model"
	"github.com/sourceplane/dynparam/internal/registry"
	"github.com/sourceplane/dynparam/internal/schema"
	"gopkg.in/yaml.v3"
)

// JobFileName is the file holding a job document inside its directory
const JobFileName = "job.yaml"

// JobFile is a loaded job document and where it came from
type JobFile struct {
	Path     string
	FullName string
	Document *model.JobDocument
}

// LoadJob loads, validates and parses a single job document
func LoadJob(path string, validator *schema.Validator) (*model.JobDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	if validator != nil {
		if err := validator.ValidateJob(data); err != nil {
			return nil, fmt.Errorf("job file %s failed schema validation: %w", path, err)
		}
	}

	var doc model.JobDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse job YAML: %w", err)
	}

	return &doc, nil
}

// LoadJobsFromDir loads every job document under a config directory path.
// Supports glob patterns for recursive search:
//   - Exact path: Non-recursive, looks for job.yaml in immediate subdirectories
//   - Path with * or **: every directory matched is walked recursively
//
// A job is named by metadata.name, or by its directory relative to the
// search path when the document leaves the name empty.
func LoadJobsFromDir(configDir string, validator *schema.Validator) ([]*JobFile, error) {
	isRecursive := strings.Contains(configDir, "*")

	var searchPaths []string
	if isRecursive {
		matches, err := filepath.Glob(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate glob pattern %s: %w", configDir, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("glob pattern %s matched no directories", configDir)
		}
		searchPaths = matches
	} else {
		info, err := os.Stat(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to access config directory %s: %w", configDir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("config path is not a directory: %s", configDir)
		}
		searchPaths = []string{configDir}
	}

	// job.yaml path -> search path it was found under
	jobFiles := make(map[string]string)

	for _, basePath := range searchPaths {
		if isRecursive {
			err := filepath.Walk(basePath, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && info.Name() == JobFileName {
					jobFiles[path] = basePath
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to walk directory %s: %w", basePath, err)
			}
			continue
		}

		entries, err := os.ReadDir(basePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", basePath, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			jobPath := filepath.Join(basePath, entry.Name(), JobFileName)
			if _, err := os.Stat(jobPath); err == nil {
				jobFiles[jobPath] = basePath
			}
		}
	}

	if len(jobFiles) == 0 {
		return nil, fmt.Errorf("no %s files found in config path: %s", JobFileName, configDir)
	}

	paths := make([]string, 0, len(jobFiles))
	for path := range jobFiles {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	files := make([]*JobFile, 0, len(paths))
	for _, path := range paths {
		doc, err := LoadJob(path, validator)
		if err != nil {
			return nil, err
		}
		files = append(files, &JobFile{
			Path:     path,
			FullName: jobName(doc, jobFiles[path], path),
			Document: doc,
		})
	}

	return files, nil
}

func jobName(doc *model.JobDocument, basePath, path string) string {
	if doc.Metadata.Name != "" {
		return doc.Metadata.Name
	}
	rel, err := filepath.Rel(basePath, filepath.Dir(path))
	if err != nil || rel == "." {
		return filepath.Base(filepath.Dir(path))
	}
	return filepath.ToSlash(rel)
}

// BuildStore instantiates every parameter of every job and registers the
// jobs in a new store.
func BuildStore(files []*JobFile, types *registry.Types) (*registry.Store, error) {
	store := registry.NewStore()
	seen := make(map[string]string)

	for _, f := range files {
		if prev, dup := seen[f.FullName]; dup {
			return nil, fmt.Errorf("duplicate job name %s in %s and %s", f.FullName, prev, f.Path)
		}
		seen[f.FullName] = f.Path

		job, err := BuildJob(f.FullName, f.Document, types)
		if err != nil {
			return nil, fmt.Errorf("job %s (%s): %w", f.FullName, f.Path, err)
		}
		store.Add(job)
	}

	return store, nil
}

// BuildJob instantiates the parameters of a single job document
func BuildJob(fullName string, doc *model.JobDocument, types *registry.Types) (*registry.Job, error) {
	job := &registry.Job{
		FullName:    fullName,
		Description: doc.Metadata.Description,
		Parameters:  make([]registry.Parameter, 0, len(doc.Spec.Parameters)),
		Steps:       doc.Spec.Steps,
	}

	names := make(map[string]bool)
	for _, spec := range doc.Spec.Parameters {
		key := strings.ToLower(spec.Name)
		if names[key] {
			return nil, fmt.Errorf("duplicate parameter name %s", spec.Name)
		}
		names[key] = true

		p, err := types.Build(spec)
		if err != nil {
			return nil, err
		}
		job.Parameters = append(job.Parameters, p)
	}

	return job, nil
}
