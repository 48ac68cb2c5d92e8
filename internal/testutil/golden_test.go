package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetUpFromGoldenFileNamed(t *testing.T) {
	filename := SetUpFromGoldenFileNamed(t, "TestGoldenBlueprint.yaml")

	assert.Equal(t, "TestGoldenBlueprint.yaml", filepath.Base(filename))
	bytes, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, GoldenFileNamed(t, "TestGoldenBlueprint.yaml"), bytes)
}

func TestSetUpFromGoldenDir(t *testing.T) {
	dirname := SetUpFromGoldenDir(t)

	require.DirExists(t, filepath.Join(dirname, "pages"))
	require.FileExists(t, filepath.Join(dirname, "pages/home.aspx.html"))
	assertFileContains(t, filepath.Join(dirname, "pages/home.aspx.html"), "<div></div>\n")

	// The copy is writable without touching the golden dir.
	extra := filepath.Join(dirname, "pages/extra.aspx.html")
	require.NoError(t, os.WriteFile(extra, []byte("<div></div>"), 0644))
	assert.NoFileExists(t, filepath.Join("testdata", t.Name(), "pages/extra.aspx.html"))
}

func TestGoldenBlueprint(t *testing.T) {
	content := GoldenBlueprint(t)
	assert.Contains(t, string(content), "title: Welcome")
}

func TestGoldenMarkup(t *testing.T) {
	markup := GoldenMarkup(t)
	assert.Equal(t, "<div></div>", markup)
}

/* Test Assertions */

func assertFileContains(t *testing.T, filename string, expected string) {
	actual, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, expected, string(actual))
}
