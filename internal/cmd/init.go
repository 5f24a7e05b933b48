package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/output"
	"github.com/ffbun/cli/internal/project"
	"github.com/ffbun/cli/internal/version"
)

// NewInitCmd creates the init command.
func NewInitCmd(globals *GlobalConfig) *cobra.Command {
	var variantFlag string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new project from the template",
		Long: `Create a new project by cloning the ffbun template repository.

The template variant decides which database the project starts with. Without
--variant you are asked to pick one. The cloned history is removed so the
project starts without git metadata.

Examples:
  # Create ./ffbun
  ffbun init

  # Create ./my-api with the Oracle variant
  ffbun init my-api --variant oracle`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return runInit(cmd, globals, target, variantFlag)
		},
	}

	cmd.Flags().StringVar(&variantFlag, "variant", "",
		"Template variant (default: ask)")

	return cmd
}

func runInit(cmd *cobra.Command, globals *GlobalConfig, target, variant string) error {
	if err := globals.requireValidConfig(); err != nil {
		return exitError(err)
	}

	tmpl := globals.Config.Template
	if target == "" {
		target = tmpl.Name
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(globals.ProjectDir, target)
	}

	boot := project.NewBootstrapper(project.Deps{
		FS:       afero.NewOsFs(),
		Prompter: project.NewHuhPrompter(),
		Fetcher: project.GitFetcher{
			Runner:     project.ExecRunner{},
			Repository: tmpl.Repository,
		},
		Template:  tmpl,
		Preflight: requireGit,
	})

	result, err := boot.Bootstrap(cmd.Context(), project.Options{
		TargetDir: target,
		Variant:   variant,
	})
	if err != nil {
		return exitError(err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Created project %s from %s (%s)",
		output.StyleNoun.Render(result.Name), result.Repository, result.Variant.Name)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Next: cd %s && bun install\n", filepath.ToSlash(result.Dir))

	return nil
}

// requireGit fails when git is not installed.
func requireGit() error {
	info := version.DetectGit()
	if info.Found {
		output.Debug("git detected", "path", info.Path, "version", info.Version)
		return nil
	}

	return &oerrors.DetailError{
		Type:    "external command failed",
		Message: "git is required to fetch the project template",
		Hint:    "Install git and make sure it is in PATH.",
		Cause:   fmt.Errorf("%w: %w", oerrors.ErrExternal, errors.New(info.Message)),
	}
}
