package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultModulesDir, cfg.Project.ModulesDir)
}

func TestLoader_File(t *testing.T) {
	path := writeConfig(t, `
template:
  repository: https://example.com/tmpl.git
  variants:
    - name: main
    - name: postgres
      branch: pg
      description: PostgreSQL
project:
  modulesDir: app/modules
log:
  timestamps: false
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/tmpl.git", cfg.Template.Repository)
	assert.Equal(t, DefaultTemplateName, cfg.Template.Name)
	assert.Equal(t, []string{"main", "postgres"}, cfg.VariantNames())
	pg, ok := cfg.FindVariant("postgres")
	require.True(t, ok)
	assert.Equal(t, "pg", pg.Branch)
	assert.Equal(t, "app/modules", cfg.Project.ModulesDir)
	assert.Equal(t, DefaultRouterFile, cfg.Project.RouterFile)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.False(t, *cfg.Log.Timestamps)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "project:\n  routerFile: src/routes.ts\n")
	t.Setenv("FFBUN_PROJECT_ROUTERFILE", "src/app.ts")
	t.Setenv("FFBUN_TEMPLATE_REPOSITORY", "https://mirror.example.com/ffbun")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "src/app.ts", cfg.Project.RouterFile)
	assert.Equal(t, "https://mirror.example.com/ffbun", cfg.Template.Repository)
}

func TestLoader_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "template: [unclosed\n")

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}
