package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/numtide/fstree/codec"
	"github.com/numtide/fstree/config"
	cp "github.com/otiai10/copy"
	"github.com/stretchr/testify/require"
)

// ExamplesDir is relative to the directory of any package directly below the module root.
const ExamplesDir = "../test/examples"

// WriteConfig encodes cfg as a TOML config file at path.
func WriteConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create a new config file: %v", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err = encoder.Encode(cfg); err != nil {
		t.Fatalf("failed to write to config file: %v", err)
	}
}

// WriteTree encodes node as a TOML tree file at path.
func WriteTree(t *testing.T, path string, node *codec.Node) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create a new tree file: %v", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err = encoder.Encode(node); err != nil {
		t.Fatalf("failed to write to tree file: %v", err)
	}
}

// TempExamples copies the example tree files into a new temporary directory and returns its path.
func TempExamples(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	require.NoError(t, cp.Copy(ExamplesDir, tempDir), "failed to copy test data to dir")

	return tempDir
}

// Example returns the path of an example tree file inside dir.
func Example(dir string, name string) string {
	return filepath.Join(dir, name+".toml")
}

// ChangeWorkDir changes the current working directory for the duration of the test.
// The original directory is restored when the test ends.
func ChangeWorkDir(t *testing.T, dir string) {
	t.Helper()

	// capture current cwd, so we can replace it after the test is finished
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current working directory: %v", err)
	}

	t.Cleanup(func() {
		// return to the previous working directory
		if err := os.Chdir(cwd); err != nil {
			t.Errorf("failed to return to the previous working directory: %v", err)
		}
	})

	// change to the new directory
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change working directory: %v", err)
	}
}
