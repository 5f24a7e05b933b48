// Package project bootstraps a new project from the remote template.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/ffbun/cli/internal/config"
	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/output"
)

// VariantPromptTitle is the question asked when no variant was given.
const VariantPromptTitle = "Which database do you need? main has no database implemented."

// vcsDir is the version control metadata stripped from fetched templates.
const vcsDir = ".git"

// Options configures one Bootstrap call.
type Options struct {
	// TargetDir is the project directory to create. Empty means the
	// template name in the current directory.
	TargetDir string

	// Variant selects the template variant. Empty means ask.
	Variant string
}

// Result reports a created project.
type Result struct {
	Dir        string         `json:"dir"`
	Name       string         `json:"name"`
	Variant    config.Variant `json:"variant"`
	Repository string         `json:"repository"`
}

// Deps holds the collaborators of a Bootstrapper.
type Deps struct {
	// FS is used for existence checks, the final rename and .git removal.
	// It must view the same files the Fetcher writes.
	FS afero.Fs

	Prompter Prompter
	Fetcher  Fetcher
	Template config.TemplateConfig

	// Preflight runs after the target check and before any prompt. Optional.
	Preflight func() error
}

// Bootstrapper creates projects from the template.
type Bootstrapper struct {
	deps Deps
	log  *log.Logger
}

// NewBootstrapper creates a Bootstrapper.
func NewBootstrapper(deps Deps) *Bootstrapper {
	return &Bootstrapper{deps: deps, log: output.ModuleLogger("init")}
}

// Bootstrap fetches the template into opts.TargetDir.
//
// If the target exists nothing is prompted, fetched or run. A failed fetch
// is returned as an error wrapping ErrExternal and leaves nothing behind.
func (b *Bootstrapper) Bootstrap(ctx context.Context, opts Options) (*Result, error) {
	target := opts.TargetDir
	if target == "" {
		target = b.deps.Template.Name
	}
	target = filepath.Clean(target)
	name := filepath.Base(target)

	if name == "." || name == ".." || name == string(filepath.Separator) {
		return nil, oerrors.NewValidationError(
			fmt.Sprintf("invalid project directory %q", opts.TargetDir), target,
			"Pass the name of a new directory, e.g. ffbun init my-api.")
	}

	exists, err := afero.Exists(b.deps.FS, target)
	if err != nil {
		return nil, fmt.Errorf("checking project directory %s: %w", target, err)
	}
	if exists {
		return nil, oerrors.NewExistsError(
			fmt.Sprintf("directory already exists: %s", target), target,
			"Choose a different directory or remove the existing one.")
	}

	if b.deps.Preflight != nil {
		if err := b.deps.Preflight(); err != nil {
			return nil, err
		}
	}

	variant, err := b.selectVariant(ctx, opts.Variant)
	if err != nil {
		return nil, err
	}

	staging := filepath.Join(filepath.Dir(target), "."+name+".ffbun-tmp")
	if err := b.deps.FS.RemoveAll(staging); err != nil {
		return nil, fmt.Errorf("removing stale staging directory %s: %w", staging, err)
	}

	title := fmt.Sprintf("Fetching %s template (%s)", b.deps.Template.Name, variant.Name)
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		return b.deps.Fetcher.Fetch(ctx, variant, staging)
	}, output.WithTitle(title))
	if err != nil {
		b.cleanup(staging)
		return nil, oerrors.NewExternalError("fetching the project template failed", map[string]string{
			"repository": b.deps.Template.Repository,
			"variant":    variant.Name,
		}, err)
	}

	if err := b.deps.FS.Rename(staging, target); err != nil {
		b.cleanup(staging)
		return nil, fmt.Errorf("moving template to %s: %w", target, err)
	}

	if err := b.deps.FS.RemoveAll(filepath.Join(target, vcsDir)); err != nil {
		return nil, fmt.Errorf("removing template history: %w", err)
	}

	b.log.Debug("project created", "dir", target, "variant", variant.Name)

	return &Result{
		Dir:        target,
		Name:       name,
		Variant:    variant,
		Repository: b.deps.Template.Repository,
	}, nil
}

// selectVariant resolves the requested variant or prompts for one.
func (b *Bootstrapper) selectVariant(ctx context.Context, requested string) (config.Variant, error) {
	variants := b.deps.Template.Variants
	if len(variants) == 0 {
		return config.Variant{}, oerrors.NewValidationError("no template variants configured", "",
			"Add template.variants to the config file or remove it to use the defaults.")
	}

	if requested == "" {
		if len(variants) == 1 {
			return variants[0], nil
		}

		choices := make([]Choice, 0, len(variants))
		for _, v := range variants {
			label := v.Name
			if v.Description != "" {
				label = fmt.Sprintf("%s (%s)", v.Name, v.Description)
			}
			choices = append(choices, Choice{Key: v.Name, Label: label})
		}

		picked, err := b.deps.Prompter.Select(ctx, Prompt{
			Title:   VariantPromptTitle,
			Choices: choices,
			Default: variants[0].Name,
		})
		if err != nil {
			if errors.Is(err, ErrNotInteractive) {
				return config.Variant{}, oerrors.NewValidationError(err.Error(), "",
					"Pass --variant to choose a template variant.")
			}
			return config.Variant{}, fmt.Errorf("selecting template variant: %w", err)
		}
		requested = picked
	}

	for _, v := range variants {
		if v.Name == requested {
			return v, nil
		}
	}

	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.Name)
	}
	return config.Variant{}, oerrors.NewNotFoundError(
		fmt.Sprintf("unknown template variant %q", requested), "",
		fmt.Sprintf("Valid variants: %s", strings.Join(names, ", ")))
}

func (b *Bootstrapper) cleanup(staging string) {
	if err := b.deps.FS.RemoveAll(staging); err != nil && !os.IsNotExist(err) {
		b.log.Warn("cleaning up staging directory", "dir", staging, "err", err)
	}
}
