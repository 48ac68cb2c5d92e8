package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cp "github.com/otiai10/copy"
)

// SetUpFromGoldenFileNamed creates a temp copy of the given golden file.
// The file must exist in directory testdata/.
func SetUpFromGoldenFileNamed(t *testing.T, filename string) string {
	dir := t.TempDir()

	fileIn := filepath.Join("testdata", filename)
	stat, err := os.Lstat(fileIn)
	if err != nil {
		t.Fatal(err)
	}

	in, err := os.ReadFile(fileIn)
	if err != nil {
		t.Fatal(err)
	}

	fileOut := filepath.Join(dir, filename)
	err = os.WriteFile(fileOut, in, stat.Mode())
	if err != nil {
		t.Fatal(err)
	}

	return fileOut
}

// SetUpFromFileContent creates a temp file with the given file content.
func SetUpFromFileContent(t *testing.T, filename string, content string) string {
	dir := t.TempDir()

	fileOut := filepath.Join(dir, filename)
	err := os.WriteFile(fileOut, []byte(content), 0755)
	if err != nil {
		t.Fatal(err)
	}

	return fileOut
}

// SetUpFromGoldenDir populates a temp directory from the golden dir of
// the current test. The directory is a real copy, so tests are free to
// write into it.
func SetUpFromGoldenDir(t *testing.T) string {
	return SetUpFromGoldenDirNamed(t, t.Name())
}

// SetUpFromGoldenDirNamed populates a temp directory from the given golden dir.
func SetUpFromGoldenDirNamed(t *testing.T, testname string) string {
	dir := t.TempDir()

	dirIn := filepath.Join("testdata", testname)
	dirOut := filepath.Join(dir, testname)

	if err := cp.Copy(dirIn, dirOut); err != nil {
		t.Fatal(err)
	}

	return dirOut
}

// GoldenBlueprint reads the blueprint golden file of the current test.
func GoldenBlueprint(t *testing.T) []byte {
	return GoldenFileNamed(t, t.Name()+".yaml")
}

// GoldenMarkup reads the markup golden file of the current test. The
// trailing newline editors append to files is not part of the markup.
func GoldenMarkup(t *testing.T) string {
	return strings.TrimRight(string(GoldenFileNamed(t, t.Name()+".html")), "\n")
}

// GoldenFileNamed reads the content of the given golden file.
func GoldenFileNamed(t *testing.T, filename string) []byte {
	path := filepath.Join("testdata", filename)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed reading golden file %s: %v", path, err)
	}
	return b
}
