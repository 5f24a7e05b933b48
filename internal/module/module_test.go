package module

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/registry"
	"github.com/ffbun/cli/internal/templates"
)

const seedRouter = `import type { FastifyInstance } from "fastify";
import { UserRoutes } from "./modules/User/routes";

export const router = async (fastify: FastifyInstance) => {
    fastify.register(UserRoutes);
}
`

func defaultOptions() Options {
	return Options{ModulesDir: "src/modules", RouterFile: "src/router.ts"}
}

func newProject(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "src/router.ts", []byte(seedRouter), 0o644))
	require.NoError(t, fsys.MkdirAll("src/modules/User", 0o755))
	return fsys
}

// snapshot returns every file and directory with its content.
func snapshot(t *testing.T, fsys afero.Fs) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := afero.Walk(fsys, "", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			files[path+"/"] = ""
			return nil
		}
		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		files[path] = string(content)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestGenerate_OrderItem(t *testing.T) {
	fsys := newProject(t)

	result, err := NewGenerator(fsys, defaultOptions()).Generate("order item")
	require.NoError(t, err)

	assert.Equal(t, "OrderItem", result.Identifiers.TypeName)
	assert.Equal(t, "orderItem", result.Identifiers.InstanceName)
	assert.Equal(t, "IOrderItem", result.Identifiers.InterfaceName)
	assert.Equal(t, filepath.Join("src", "modules", "OrderItem"), result.Dir)

	entries, err := afero.ReadDir(fsys, result.Dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"schema.ts", "interfaces.ts", "controller.ts", "repository.ts", "routes.ts"}, names)

	routes, err := afero.ReadFile(fsys, filepath.Join(result.Dir, "routes.ts"))
	require.NoError(t, err)
	want, err := templates.Render(templates.Routes, result.Identifiers)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(routes))

	router, err := afero.ReadFile(fsys, "src/router.ts")
	require.NoError(t, err)
	got := string(router)
	assert.Equal(t, 1, strings.Count(got, registry.ImportLine("OrderItem")))
	assert.Equal(t, 1, strings.Count(got, registry.RegistrationLine("OrderItem")))
	assert.Equal(t, strings.Count(seedRouter, "\n")+2, strings.Count(got, "\n"), "exactly two lines added")

	assert.True(t, result.Registry.ImportAdded)
	assert.True(t, result.Registry.RegistrationAdded)
	assert.Equal(t, "OrderItemRoutes", result.Registry.RoutesName)
}

func TestGenerate_FileDescriptions(t *testing.T) {
	result, err := NewGenerator(newProject(t), defaultOptions()).Generate("product")
	require.NoError(t, err)

	require.Len(t, result.Files, len(templates.Kinds()))
	for i, kind := range templates.Kinds() {
		assert.Equal(t, kind, result.Files[i].Kind)
		assert.Equal(t, filepath.Join(result.Dir, templates.FileName(kind)), result.Files[i].Path)
		assert.NotEmpty(t, result.Files[i].Description)
	}
}

func TestGenerate_ExistingModuleWritesNothing(t *testing.T) {
	fsys := newProject(t)
	before := snapshot(t, fsys)

	result, err := NewGenerator(fsys, defaultOptions()).Generate("user")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, oerrors.ErrExists))
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))

	if diff := cmp.Diff(before, snapshot(t, fsys)); diff != "" {
		t.Errorf("filesystem changed (-before +after):\n%s", diff)
	}
}

func TestGenerate_EmptyName(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		fsys := newProject(t)
		before := snapshot(t, fsys)

		_, err := NewGenerator(fsys, defaultOptions()).Generate(raw)
		require.Error(t, err, "raw %q", raw)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
		assert.Equal(t, before, snapshot(t, fsys))
	}
}

func TestGenerate_CreatesMissingModulesDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "src/router.ts", []byte(seedRouter), 0o644))

	result, err := NewGenerator(fsys, defaultOptions()).Generate("invoice")
	require.NoError(t, err)

	exists, err := afero.DirExists(fsys, result.Dir)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGenerate_MissingRegistryKeepsFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()

	result, err := NewGenerator(fsys, defaultOptions()).Generate("invoice")
	require.Error(t, err)
	require.NotNil(t, result)

	var regErr *RegistryError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, "src/router.ts", regErr.Path)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))

	for _, f := range result.Files {
		exists, err := afero.Exists(fsys, f.Path)
		require.NoError(t, err)
		assert.True(t, exists, "%s is kept", f.Path)
	}
}

func TestGenerate_DryRunWritesNothing(t *testing.T) {
	fsys := newProject(t)
	before := snapshot(t, fsys)

	opts := defaultOptions()
	opts.DryRun = true
	result, err := NewGenerator(fsys, opts).Generate("order item")
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Len(t, result.Files, 5)
	assert.True(t, result.Registry.Changed())
	assert.Equal(t, before, snapshot(t, fsys))
}

// failingFs fails to open one file name for writing.
type failingFs struct {
	afero.Fs
	failOn string
}

func (f *failingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if filepath.Base(name) == f.failOn && flag&os.O_WRONLY != 0 {
		return nil, errors.New("disk full")
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestGenerate_WriteFailureRemovesPartialModule(t *testing.T) {
	base := newProject(t)
	before := snapshot(t, base)
	fsys := &failingFs{Fs: base, failOn: "repository.ts"}

	result, err := NewGenerator(fsys, defaultOptions()).Generate("order item")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "disk full")

	if diff := cmp.Diff(before, snapshot(t, base)); diff != "" {
		t.Errorf("partial module left behind (-before +after):\n%s", diff)
	}
}

func TestGenerate_SecondModuleAppendsAfterFirst(t *testing.T) {
	fsys := newProject(t)
	gen := NewGenerator(fsys, defaultOptions())

	_, err := gen.Generate("alpha")
	require.NoError(t, err)
	_, err = gen.Generate("beta")
	require.NoError(t, err)

	router, err := afero.ReadFile(fsys, "src/router.ts")
	require.NoError(t, err)
	doc, err := registry.Parse(string(router))
	require.NoError(t, err)
	assert.Equal(t, []string{"UserRoutes", "AlphaRoutes", "BetaRoutes"}, doc.Registrations())
}
