package param

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fruit = "A:apple\nA:avocado\nB:banana\n#A:hidden"

func inline(options string) *Definition {
	return New("LETTER", "", "A\nB", "", options, "FRUIT", "")
}

func writeOptions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveSecondaryOptions(t *testing.T) {
	tests := []struct {
		name    string
		options string
		primary string
		want    []string
	}{
		{"filters by primary", fruit, "A", []string{"apple", "avocado"}},
		{"other primary", fruit, "B", []string{"banana"}},
		{"empty primary shows all", fruit, "", []string{"apple", "avocado", "banana"}},
		{"no match", fruit, "C", []string{}},
		{"comment excluded even when matching", "#A:hidden\nA:shown", "#A", []string{}},
		{"case sensitive", "a:lower\nA:upper", "A", []string{"upper"}},
		{"prefix not token match", "AB:abacus\nA:apple", "A", []string{"abacus", "apple"}},
		{"extra fields ignored", "A:apple:green:sour", "A", []string{"apple"}},
		{"empty label between colons", "A::x", "A", []string{""}},
		{"duplicates kept", "A:x\nA:x", "A", []string{"x", "x"}},
		{"windows newlines", "A:apple\r\nA:avocado\r\n", "A", []string{"apple", "avocado"}},
		{"blank lines skipped with empty primary", "A:apple\n\nB:banana", "", []string{"apple", "banana"}},
		{"empty source", "", "A", []string{}},
	}

	r := NewResolver("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveSecondaryOptions(inline(tt.options), tt.primary)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveSecondaryOptions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveNeverReturnsCommentOrNonMatching(t *testing.T) {
	source := "A:1\n#A:2\nAA:3\nB:4\n#:5\nA:6"
	for _, primary := range []string{"", "A", "AA", "B", "#"} {
		got, err := NewResolver("").ResolveSecondaryOptions(inline(source), primary)
		require.NoError(t, err)
		for _, label := range got {
			assert.NotContains(t, []string{"2", "5"}, label, "comment label for primary %q", primary)
		}
	}

	got, err := NewResolver("").ResolveSecondaryOptions(inline(source), "AA")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, got)
}

func TestResolveExactMatch(t *testing.T) {
	d := inline("AB:abacus\nA:apple\n#A:hidden\nA:avocado:x")
	d.ExactMatch = true

	got, err := NewResolver("").ResolveSecondaryOptions(d, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "avocado"}, got)
}

func TestResolveNilDefinition(t *testing.T) {
	_, err := NewResolver("").ResolveSecondaryOptions(nil, "A")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveFromFile(t *testing.T) {
	path := writeOptions(t, fruit)
	d := inline("A:inline")
	d.SecondaryOptionsFile = path

	got, err := NewResolver("").ResolveSecondaryOptions(d, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "avocado"}, got)

	d2 := inline("A:changed\nA:again")
	d2.SecondaryOptionsFile = path
	got, err = NewResolver("").ResolveSecondaryOptions(d2, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "avocado"}, got, "inline text must not affect file-backed results")
}

func TestResolveRelativeFileUsesBaseDir(t *testing.T) {
	path := writeOptions(t, "eu:eu-web\nus:us-web")
	d := inline("")
	d.SecondaryOptionsFile = filepath.Base(path)

	got, err := NewResolver(filepath.Dir(path)).ResolveSecondaryOptions(d, "eu")
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-web"}, got)
}

func TestResolveMissingFile(t *testing.T) {
	d := inline(fruit)
	d.SecondaryOptionsFile = filepath.Join(t.TempDir(), "missing.txt")

	got, err := NewResolver("").ResolveSecondaryOptions(d, "A")
	require.Error(t, err)
	assert.Nil(t, got)

	var srcErr *SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, d.SecondaryOptionsFile, srcErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestResolveDirectoryAsFile(t *testing.T) {
	d := inline("")
	d.SecondaryOptionsFile = t.TempDir()

	_, err := NewResolver("").ResolveSecondaryOptions(d, "A")
	var srcErr *SourceError
	assert.True(t, errors.As(err, &srcErr))
}

func TestResolveMalformedLines(t *testing.T) {
	source := "A:apple\nAnoseparator\nB:banana\nA:\nAlso bad\n#A no colon comment"

	_, err := NewResolver("").ResolveSecondaryOptions(inline(source), "A")
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.Equal(t, inlineSource, fmtErr.Source)
	assert.Equal(t, []LineError{
		{Line: 2, Text: "Anoseparator"},
		{Line: 4, Text: "A:"},
		{Line: 5, Text: "Also bad"},
	}, fmtErr.Lines)
	assert.Contains(t, err.Error(), `line 2 "Anoseparator"`)
	assert.Contains(t, err.Error(), `line 5 "Also bad"`)
}

func TestResolveMalformedLineOutsidePrefixIgnored(t *testing.T) {
	got, err := NewResolver("").ResolveSecondaryOptions(inline("A:apple\nBroken"), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple"}, got)
}

func TestResolveMalformedLineInFile(t *testing.T) {
	path := writeOptions(t, "A:apple\nA")
	d := inline("")
	d.SecondaryOptionsFile = path

	_, err := NewResolver("").ResolveSecondaryOptions(d, "A")
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.Equal(t, path, fmtErr.Source)
	assert.Equal(t, []LineError{{Line: 2, Text: "A"}}, fmtErr.Lines)
}
