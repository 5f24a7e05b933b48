// Package module materializes a new module: it derives identifiers from a raw
// name, renders the module files, writes them under the modules directory and
// registers the module's routes.
package module

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/naming"
	"github.com/ffbun/cli/internal/output"
	"github.com/ffbun/cli/internal/registry"
	"github.com/ffbun/cli/internal/templates"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Options configures a Generator.
type Options struct {
	// ModulesDir is the directory new modules are created in.
	ModulesDir string

	// RouterFile is the route registry patched for every new module.
	RouterFile string

	// DryRun renders the module and computes the registry patch without
	// writing anything.
	DryRun bool
}

// FileInfo describes one generated file.
type FileInfo struct {
	Kind        templates.FileKind `json:"kind"`
	Path        string             `json:"path"`
	Description string             `json:"description"`
}

// Result reports what Generate did.
type Result struct {
	Identifiers naming.IdentifierSet `json:"identifiers"`
	Dir         string               `json:"dir"`
	Files       []FileInfo           `json:"files"`
	Registry    registry.PatchResult `json:"registry"`
	DryRun      bool                 `json:"dryRun,omitempty"`
}

// RegistryError reports a route registry failure after the module files
// were written. The files are kept.
type RegistryError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	return fmt.Sprintf("module files were written but the route registry %s was not updated: %v", e.Path, e.Err)
}

// Unwrap returns the underlying registry error.
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// Generator creates modules on a filesystem.
type Generator struct {
	fs   afero.Fs
	opts Options
	log  *log.Logger
}

// NewGenerator creates a Generator writing through fs.
func NewGenerator(fs afero.Fs, opts Options) *Generator {
	return &Generator{
		fs:   fs,
		opts: opts,
		log:  output.ModuleLogger("newmodule"),
	}
}

// Generate materializes the module named by rawName.
//
// If the module directory already exists nothing is written and an error
// wrapping ErrExists is returned. A registry failure is returned as a
// *RegistryError together with a non-nil Result.
func (g *Generator) Generate(rawName string) (*Result, error) {
	ids := naming.Derive(rawName)
	if err := templates.ValidateIdentifiers(ids); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), "",
			"Pass a module name such as \"order item\" or \"Product\".")
	}

	dir := filepath.Join(g.opts.ModulesDir, ids.TypeName)
	exists, err := afero.Exists(g.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("checking module directory %s: %w", dir, err)
	}
	if exists {
		return nil, oerrors.NewExistsError(
			fmt.Sprintf("module %s already exists", ids.TypeName),
			dir,
			"Choose a different name or remove the existing module directory.",
		)
	}

	// Render everything before touching the disk.
	bundle, err := templates.RenderBundle(ids)
	if err != nil {
		return nil, fmt.Errorf("rendering module %s: %w", ids.TypeName, err)
	}

	result := &Result{
		Identifiers: ids,
		Dir:         dir,
		Files:       make([]FileInfo, 0, len(bundle.Files)),
		DryRun:      g.opts.DryRun,
	}
	for _, f := range bundle.Files {
		result.Files = append(result.Files, FileInfo{
			Kind:        f.Kind,
			Path:        filepath.Join(dir, f.Name),
			Description: templates.Describe(f.Kind),
		})
	}

	if g.opts.DryRun {
		res, err := registry.PreviewFile(g.fs, g.opts.RouterFile, ids.TypeName)
		result.Registry = res
		if err != nil {
			return result, &RegistryError{Path: g.opts.RouterFile, Err: err}
		}
		return result, nil
	}

	if err := g.write(dir, bundle); err != nil {
		return nil, err
	}
	g.log.Debug("module files written", "dir", dir, "files", len(bundle.Files))

	res, err := registry.PatchFile(g.fs, g.opts.RouterFile, ids.TypeName)
	result.Registry = res
	if err != nil {
		return result, &RegistryError{Path: g.opts.RouterFile, Err: err}
	}

	return result, nil
}

// write commits a rendered bundle into dir. On failure the partially written
// directory is removed.
func (g *Generator) write(dir string, bundle templates.Bundle) error {
	if err := g.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating module directory %s: %w", dir, err)
	}

	for _, f := range bundle.Files {
		path := filepath.Join(dir, f.Name)
		if err := afero.WriteFile(g.fs, path, f.Content, filePerm); err != nil {
			g.log.Error("writing module file", "path", path, "err", err)
			if rmErr := g.fs.RemoveAll(dir); rmErr != nil && !os.IsNotExist(rmErr) {
				g.log.Warn("cleaning up module directory", "dir", dir, "err", rmErr)
			}
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return nil
}
