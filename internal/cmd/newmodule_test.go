package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/testutil"
	"github.com/ffbun/cli/internal/module"
)

func TestNewNewModuleCmd(t *testing.T) {
	cmd := NewNewModuleCmd(&GlobalConfig{})

	assert.Equal(t, "newmodule <name...>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("dry-run"))
	assert.NotNil(t, cmd.Flags().Lookup("output"))
}

func TestNewModule_RequiresArgs(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "newmodule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestNewModule_CreatesModule(t *testing.T) {
	isolateEnv(t)
	dir := testutil.NewProject(t)

	stdout, _, err := execute(t,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"-C", dir,
		"newmodule", "order", "item")
	require.NoError(t, err)

	assert.Contains(t, stdout, "OrderItem")
	assert.Contains(t, stdout, "routes.ts")
	assert.Contains(t, stdout, "Registered OrderItemRoutes")

	for _, name := range []string{"schema.ts", "interfaces.ts", "controller.ts", "repository.ts", "routes.ts"} {
		assert.FileExists(t, filepath.Join(dir, "src", "modules", "OrderItem", name))
	}

	router, err := os.ReadFile(filepath.Join(dir, "src", "router.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(router), `import { OrderItemRoutes } from "./modules/OrderItem/routes";`)
	assert.Contains(t, string(router), "    fastify.register(OrderItemRoutes);")
}

func TestNewModule_AlreadyExists(t *testing.T) {
	isolateEnv(t)
	dir := testutil.NewProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "modules", "Product"), 0o755))

	_, _, err := execute(t,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"-C", dir,
		"newmodule", "product")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))

	router, err := os.ReadFile(filepath.Join(dir, "src", "router.ts"))
	require.NoError(t, err)
	assert.Equal(t, testutil.SeedRouter, string(router))
}

func TestNewModule_MissingRegistry(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	stdout, _, err := execute(t,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"-C", dir,
		"newmodule", "invoice")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	assert.Contains(t, stdout, "Invoice", "written files are still reported")
	assert.FileExists(t, filepath.Join(dir, "src", "modules", "Invoice", "routes.ts"))
}

func TestNewModule_DryRunJSON(t *testing.T) {
	isolateEnv(t)
	dir := testutil.NewProject(t)

	stdout, _, err := execute(t,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"-C", dir,
		"newmodule", "order item", "--dry-run", "-o", "json")
	require.NoError(t, err)

	var result module.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "OrderItem", result.Identifiers.TypeName)
	assert.True(t, result.DryRun)
	assert.Len(t, result.Files, 5)
	assert.True(t, result.Registry.RegistrationAdded)

	assert.NoDirExists(t, filepath.Join(dir, "src", "modules", "OrderItem"))
	router, err := os.ReadFile(filepath.Join(dir, "src", "router.ts"))
	require.NoError(t, err)
	assert.Equal(t, testutil.SeedRouter, string(router))
}

func TestNewModule_YAML(t *testing.T) {
	isolateEnv(t)
	dir := testutil.NewProject(t)

	stdout, _, err := execute(t,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"-C", dir,
		"newmodule", "product", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "typeName: Product")
	assert.Contains(t, stdout, "routesName: ProductRoutes")
}

func TestNewModule_InvalidOutput(t *testing.T) {
	isolateEnv(t)

	_, _, err := execute(t,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"-C", testutil.NewProject(t),
		"newmodule", "product", "-o", "table")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}

func TestNewModule_ConfigModulesDir(t *testing.T) {
	isolateEnv(t)
	dir := testutil.NewProject(t)
	t.Setenv("FFBUN_PROJECT_MODULESDIR", "src/features")

	_, _, err := execute(t,
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"-C", dir,
		"newmodule", "product")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "src", "features", "Product"))
}

func TestNewModule_InvalidConfig(t *testing.T) {
	isolateEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("project:\n  routerFile: src/router.js\n"), 0o644))

	_, _, err := execute(t, "--config", cfgPath, "-C", testutil.NewProject(t), "newmodule", "product")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid configuration"))
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}
