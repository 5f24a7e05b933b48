package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/module"
	"github.com/ffbun/cli/internal/output"
)

// NewNewModuleCmd creates the newmodule command.
func NewNewModuleCmd(globals *GlobalConfig) *cobra.Command {
	var (
		dryRun     bool
		outputFlag string
	)

	cmd := &cobra.Command{
		Use:   "newmodule <name...>",
		Short: "Generate a module and register its routes",
		Long: `Generate a module in the modules directory and register its routes.

The name is converted to identifiers: "order item" becomes the type OrderItem,
the instance orderItem and the interface IOrderItem. Five files are created in
src/modules/OrderItem and src/router.ts gains an import and a registration.

Multiple arguments are joined with a space.

Examples:
  # Create src/modules/Product
  ffbun newmodule product

  # Create src/modules/OrderItem
  ffbun newmodule "order item"

  # Show what would be generated as YAML
  ffbun newmodule order item --dry-run -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNewModule(cmd, globals, strings.Join(args, " "), dryRun, outputFlag)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing files")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "text",
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))

	return cmd
}

func runNewModule(cmd *cobra.Command, globals *GlobalConfig, rawName string, dryRun bool, outputFlag string) error {
	format, ok := output.ParseFormat(outputFlag)
	if !ok {
		return exitError(oerrors.NewValidationError(
			fmt.Sprintf("unknown output format: %s", outputFlag), "",
			fmt.Sprintf("Valid formats: %s", strings.Join(output.ValidFormats(), ", "))))
	}

	if err := globals.requireValidConfig(); err != nil {
		return exitError(err)
	}

	root, err := projectRoot(globals.ProjectDir)
	if err != nil {
		return exitError(err)
	}

	cfg := globals.Config
	gen := module.NewGenerator(afero.NewBasePathFs(afero.NewOsFs(), root), module.Options{
		ModulesDir: cfg.Project.ModulesDir,
		RouterFile: cfg.Project.RouterFile,
		DryRun:     dryRun,
	})

	result, genErr := gen.Generate(rawName)
	if result == nil {
		return exitError(genErr)
	}

	var regErr *module.RegistryError
	if genErr != nil && !errors.As(genErr, &regErr) {
		return exitError(genErr)
	}

	if format != output.FormatText {
		if err := output.WriteStructured(cmd.OutOrStdout(), format, result); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	} else {
		printModuleResult(cmd, result, regErr == nil)
	}

	if genErr != nil {
		return exitError(genErr)
	}
	return nil
}

func printModuleResult(cmd *cobra.Command, result *module.Result, registered bool) {
	w := cmd.OutOrStdout()

	verb := "Created"
	if result.DryRun {
		verb = "Would create"
	}
	fmt.Fprintf(w, "%s module %s in %s\n\n",
		verb, output.StyleNoun.Render(result.Identifiers.TypeName), filepath.ToSlash(result.Dir))

	entries := make([]output.FileEntry, 0, len(result.Files))
	for _, f := range result.Files {
		entries = append(entries, output.FileEntry{
			Path:        filepath.Base(f.Path),
			Description: f.Description,
		})
	}
	fmt.Fprint(w, output.RenderFileTree(filepath.ToSlash(result.Dir), entries))
	fmt.Fprintln(w)

	reg := result.Registry
	width := len(reg.Path) + 4
	switch {
	case !registered:
		fmt.Fprintln(w, output.FormatStatusLine(reg.Path, output.StatusFailed, width))
	case !reg.Changed():
		fmt.Fprintln(w, output.FormatStatusLine(reg.Path, output.StatusUnchanged, width))
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%s already registered", reg.RoutesName)))
	case result.DryRun:
		fmt.Fprintf(w, "Would register %s in %s\n", reg.RoutesName, reg.Path)
	default:
		fmt.Fprintln(w, output.FormatStatusLine(reg.Path, output.StatusUpdated, width))
		fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Registered %s in %s", reg.RoutesName, reg.Path)))
	}
}

// projectRoot returns the absolute project directory, which must exist.
func projectRoot(dir string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving project directory: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", oerrors.NewNotFoundError(
				fmt.Sprintf("project directory not found: %s", dir), root,
				"Pass an existing directory with --project-dir.")
		}
		return "", fmt.Errorf("checking project directory: %w", err)
	}
	if !info.IsDir() {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("project path is not a directory: %s", dir), root, "")
	}
	return root, nil
}
