package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/ffbun/cli/internal/errors"
)

func TestNewInitCmd(t *testing.T) {
	cmd := NewInitCmd(&GlobalConfig{})

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("variant"))
}

func TestInit_TooManyArgs(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "init", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg")
}

func TestInit_DirectoryExists(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "my-api"), 0o755))

	_, _, err := execute(t,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"-C", dir,
		"init", "my-api", "--variant", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "nothing is fetched next to the existing directory")
}
