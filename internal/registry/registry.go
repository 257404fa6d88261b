// Package registry holds the jobs known to the host and the parameter
// types it can instantiate.
package registry

import (
	"sort"
	"sync"

	"github.com/sourceplane/dynparam/internal/model"
)

// JobRegistry finds configured jobs by full name.
type JobRegistry interface {
	JobByFullName(name string) (*Job, bool)
}

// Job is a configured unit of work with its parameters.
type Job struct {
	FullName    string
	Description string
	Parameters  []Parameter
	Steps       []model.Step
}

// Store is an in-memory JobRegistry. Reloading a job replaces it whole.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{jobs: make(map[string]*Job)}
}

// Add registers job under its full name, replacing any previous job
func (s *Store) Add(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.FullName] = job
}

// Remove deletes a job and with it every parameter it owns
func (s *Store) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, name)
}

// JobByFullName implements JobRegistry
func (s *Store) JobByFullName(name string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[name]
	return job, ok
}

// Names returns all job names, sorted
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
