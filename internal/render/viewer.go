package render

import (
	"fmt"
	"strings"

	"github.com/sourceplane/dynparam/internal/param"
	"github.com/sourceplane/dynparam/internal/registry"
)

// JobViewer provides a human-readable view of jobs and their parameters
type JobViewer struct {
	jobs []*registry.Job
}

// NewJobViewer creates a new job viewer
func NewJobViewer(jobs []*registry.Job) *JobViewer {
	return &JobViewer{jobs: jobs}
}

// ViewTree returns a tree view of every job and parameter
func (jv *JobViewer) ViewTree() string {
	if len(jv.jobs) == 0 {
		return "No jobs configured"
	}

	var sb strings.Builder
	for i, job := range jv.jobs {
		jobPrefix, childIndent := "├─ ", "│  "
		if i == len(jv.jobs)-1 {
			jobPrefix, childIndent = "└─ ", "   "
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", jobPrefix, job.FullName))

		for j, p := range job.Parameters {
			prefix := "├─ "
			if j == len(job.Parameters)-1 {
				prefix = "└─ "
			}
			sb.WriteString(childIndent + prefix + describe(p) + "\n")
		}
	}
	return sb.String()
}

func describe(p registry.Parameter) string {
	switch p.Kind {
	case param.Kind:
		d := p.Dynamic
		source := "inline"
		if d.SecondaryOptionsFile != "" {
			source = "file " + d.SecondaryOptionsFile
		}
		match := "prefix"
		if d.ExactMatch {
			match = "exact"
		}
		return fmt.Sprintf("%s → %s [%s, %d options, %s, %s match]",
			d.Name, d.SecondaryName, p.Kind, len(d.PrimaryOptionList()), source, match)
	case registry.StringKind:
		return fmt.Sprintf("%s [%s, default %q]", p.Name, p.Kind, p.String.Default)
	default:
		return fmt.Sprintf("%s [%s]", p.Name, p.Kind)
	}
}
