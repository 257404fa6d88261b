package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sourceplane/dynparam/internal/model"
	"github.com/sourceplane/dynparam/internal/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var region = param.SelectedValue{Name: "REGION", Value: "eu", SecondaryName: "POOL", SecondaryValue: "eu-web"}

func TestRunDryRun(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(t.TempDir(), &out, io.Discard, true)

	err := r.Run(context.Background(), "deploy", []model.Step{{Name: "deploy", Run: "exit 1"}}, region)
	require.NoError(t, err)
	assert.Equal(t, "→ Job deploy\n  POOL=eu-web\n  REGION=eu\n  - Step deploy\n    exit 1\n", out.String())
}

func TestRunExportsValues(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(dir, io.Discard, io.Discard, false)

	err := r.Run(context.Background(), "deploy", []model.Step{
		{Name: "write", Run: `printf '%s/%s' "$REGION" "$POOL" > out.txt`},
	}, region)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "eu/eu-web", string(data))
}

func TestRunStepFailure(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(dir, io.Discard, io.Discard, false)

	err := r.Run(context.Background(), "deploy", []model.Step{
		{Name: "flaky", Run: "exit 3", OnFailure: "continue"},
		{Name: "after", Run: "touch after"},
		{Name: "broken", Run: "exit 2"},
		{Name: "never", Run: "touch never"},
	})
	assert.ErrorContains(t, err, "job deploy step broken failed")
	assert.FileExists(t, filepath.Join(dir, "after"))
	assert.NoFileExists(t, filepath.Join(dir, "never"))
}
