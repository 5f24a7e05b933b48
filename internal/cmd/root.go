// Package cmd provides CLI command implementations.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ffbun/cli/internal/config"
	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/output"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is passed explicitly into every sub-command constructor.
type GlobalConfig struct {
	// Config is the loaded configuration, defaults applied.
	Config *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ProjectDir is the resolved --project-dir.
	ProjectDir string

	// Verbose is the --verbose flag.
	Verbose bool

	// loadErr is set when the config file exists but could not be loaded.
	loadErr error
}

// requireValidConfig fails when the config file could not be loaded or does
// not match the schema. Commands that act on a project call it first.
func (g *GlobalConfig) requireValidConfig() error {
	if g.loadErr != nil {
		return &oerrors.DetailError{
			Type:     "invalid configuration",
			Message:  g.loadErr.Error(),
			Location: g.ConfigPath,
			Hint:     "Fix the file or run 'ffbun config vet' for details.",
			Cause:    fmt.Errorf("%w: %w", oerrors.ErrValidation, g.loadErr),
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating config validator: %w", err)
	}
	if err := validator.Validate(g.Config); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			return &oerrors.DetailError{
				Type:     "invalid configuration",
				Message:  verrs.Error(),
				Location: g.ConfigPath,
				Hint:     "Run 'ffbun config vet' for details.",
				Cause:    oerrors.ErrValidation,
			}
		}
		return err
	}
	return nil
}

// NewRootCmd creates the root command for the ffbun CLI.
func NewRootCmd() *cobra.Command {
	var (
		configFlag     string
		projectDirFlag string
		verboseFlag    bool
		timestampsFlag bool
	)
	globals := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "ffbun",
		Short: "Scaffold fastify + bun API projects and modules",
		Long: `ffbun creates API projects from the ffbun template and generates
module slices (schema, interfaces, controller, repository, routes) inside them.

Examples:
  # Create a project in ./my-api
  ffbun init my-api

  # Add a module and register its routes in src/router.ts
  ffbun newmodule order item`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, globals, globalFlags{
				config:     configFlag,
				projectDir: projectDirFlag,
				verbose:    verboseFlag,
				timestamps: timestampsFlag,
			})
		},
		RunE: runRoot,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: FFBUN_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&projectDirFlag, "project-dir", "C", "", "Project root directory (env: FFBUN_PROJECT_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewInitCmd(globals))
	rootCmd.AddCommand(NewNewModuleCmd(globals))
	rootCmd.AddCommand(NewConfigCmd(globals))
	rootCmd.AddCommand(NewVersionCmd(globals))

	return rootCmd
}

// runRoot prints help without arguments and a usage error for anything that
// is not a known command.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	err := fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n\n%s", err, cmd.UsageString())
	return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err, Printed: true}
}

type globalFlags struct {
	config     string
	projectDir string
	verbose    bool
	timestamps bool
}

// initializeGlobals resolves flags, loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command, globals *GlobalConfig, flags globalFlags) error {
	resolved, err := config.ResolveAll(config.ResolveOptions{
		ConfigFlag:     flags.config,
		ProjectDirFlag: flags.projectDir,
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	loader := config.NewLoader()
	cfg, loadErr := loader.Load(resolved.ConfigPath.Value)
	if loadErr != nil {
		cfg = config.DefaultConfig()
	}

	globals.Config = cfg
	globals.ConfigPath = resolved.ConfigPath.Value
	globals.ProjectDir = resolved.ProjectDir.Value
	globals.Verbose = flags.verbose
	globals.loadErr = loadErr

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if loadErr != nil {
		output.Warn("config file could not be loaded, using defaults", "path", globals.ConfigPath, "err", loadErr)
	}

	if flags.verbose {
		config.LogResolvedValues(resolved.Values())
		output.Debug("initializing CLI",
			"configFile", loader.ConfigFileUsed(),
			"modulesDir", cfg.Project.ModulesDir,
			"routerFile", cfg.Project.RouterFile,
			"repository", cfg.Template.Repository,
		)
	}

	return nil
}

// exitError wraps err with the exit code derived from its chain.
func exitError(err error) error {
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
}
