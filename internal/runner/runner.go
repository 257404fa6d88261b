package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/sourceplane/dynparam/internal/model"
	"github.com/sourceplane/dynparam/internal/param"
)

// Runner executes a job's steps with the submitted parameter values
// exported as environment variables.
type Runner struct {
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
	DryRun  bool
}

func NewRunner(workDir string, stdout, stderr io.Writer, dryRun bool) *Runner {
	return &Runner{
		WorkDir: workDir,
		Stdout:  stdout,
		Stderr:  stderr,
		DryRun:  dryRun,
	}
}

// Run executes steps in order. A failing step stops the build unless its
// onFailure is "continue".
func (r *Runner) Run(ctx context.Context, jobName string, steps []model.Step, values ...param.SelectedValue) error {
	env := buildEnv(values)

	fmt.Fprintf(r.Stdout, "→ Job %s\n", jobName)
	for _, kv := range env {
		fmt.Fprintf(r.Stdout, "  %s\n", kv)
	}

	for _, step := range steps {
		fmt.Fprintf(r.Stdout, "  - Step %s\n", step.Name)
		if r.DryRun {
			fmt.Fprintf(r.Stdout, "    %s\n", step.Run)
			continue
		}

		cmd := exec.CommandContext(ctx, "sh", "-c", step.Run)
		cmd.Dir = r.WorkDir
		cmd.Env = append(os.Environ(), env...)
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr

		if err := cmd.Run(); err != nil {
			if step.OnFailure == "continue" {
				fmt.Fprintf(r.Stderr, "    step %s failed, continuing: %v\n", step.Name, err)
				continue
			}
			return fmt.Errorf("job %s step %s failed: %w", jobName, step.Name, err)
		}
	}

	return nil
}

func buildEnv(values []param.SelectedValue) []string {
	merged := make(map[string]string)
	for _, v := range values {
		for k, val := range v.Env() {
			merged[k] = val
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+merged[k])
	}
	return env
}
