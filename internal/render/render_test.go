package render

import (
	"bytes"
	"testing"

	"github.com/sourceplane/dynparam/internal/param"
	"github.com/sourceplane/dynparam/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	tests := []struct {
		name   string
		v      interface{}
		format string
		want   string
	}{
		{"text lines", []string{"a", "b"}, FormatText, "a\nb\n"},
		{"text empty", []string{}, FormatText, ""},
		{"json", []string{"a"}, FormatJSON, "[\n  \"a\"\n]\n"},
		{"yaml", []string{"a"}, FormatYAML, "- a\n"},
		{"text falls back to json", map[string]int{"n": 1}, FormatText, "{\n  \"n\": 1\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.v, tt.format))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	assert.ErrorContains(t, Write(&bytes.Buffer{}, nil, "xml"), "unsupported output format")
}

func TestViewTree(t *testing.T) {
	assert.Equal(t, "No jobs configured", NewJobViewer(nil).ViewTree())

	region := param.New("REGION", "", "us\neu", "", "", "POOL", "pools.txt")
	jobs := []*registry.Job{
		{FullName: "deploy", Parameters: []registry.Parameter{
			{Kind: param.Kind, Name: "REGION", Dynamic: region},
			{Kind: registry.StringKind, Name: "TAG", String: &registry.StringParameter{Name: "TAG", Default: "latest"}},
		}},
		{FullName: "empty"},
	}

	want := "├─ deploy\n" +
		"│  ├─ REGION → POOL [dynamic, 2 options, file pools.txt, prefix match]\n" +
		"│  └─ TAG [string, default \"latest\"]\n" +
		"└─ empty\n"
	assert.Equal(t, want, NewJobViewer(jobs).ViewTree())
}
