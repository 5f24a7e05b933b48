package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/ffbun/cli/internal/errors"
)

// isolateEnv clears FFBUN_* variables so the host environment cannot leak
// into command tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FFBUN_CONFIG",
		"FFBUN_PROJECT_DIR",
		"FFBUN_PROJECT_MODULESDIR",
		"FFBUN_PROJECT_ROUTERFILE",
		"FFBUN_TEMPLATE_NAME",
		"FFBUN_TEMPLATE_REPOSITORY",
	} {
		t.Setenv(key, "")
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	err := root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "ffbun", root.Use)
	for _, name := range []string{"config", "project-dir", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "flag %s", name)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"init", "newmodule", "config", "version"})
}

func TestRoot_NoArgsShowsHelp(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "newmodule")
}

func TestRoot_UnknownCommand(t *testing.T) {
	isolateEnv(t)

	stdout, stderr, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "deploy")
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, oerrors.ExitGeneralError, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.Contains(t, stderr, `unknown command "deploy"`)
	assert.Contains(t, stderr, "Usage:")
	assert.Empty(t, stdout)
}
