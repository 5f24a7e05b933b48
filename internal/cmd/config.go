package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ffbun/cli/internal/config"
	oerrors "github.com/ffbun/cli/internal/errors"
	"github.com/ffbun/cli/internal/output"
)

// configHeader is written above the generated config file.
const configHeader = `# ffbun configuration.
# Environment variables override these values, e.g. FFBUN_PROJECT_ROUTERFILE.
# Validate with: ffbun config vet
`

// NewConfigCmd creates the config command group.
func NewConfigCmd(globals *GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
		Long:  `Commands for creating and validating the ffbun configuration file.`,
	}

	cmd.AddCommand(
		newConfigInitCmd(globals),
		newConfigVetCmd(globals),
	)

	return cmd
}

func newConfigInitCmd(globals *GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write the default configuration to ~/.ffbun/config.yaml.

Use --config to write it somewhere else.

Examples:
  # Initialize configuration
  ffbun config init

  # Overwrite existing configuration
  ffbun config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, globals, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, globals *GlobalConfig, force bool) error {
	path, err := config.ExpandPath(globals.ConfigPath)
	if err != nil {
		return exitError(oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory"))
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return exitError(fmt.Errorf("checking config file: %w", err))
	}
	if exists && !force {
		return exitError(oerrors.NewExistsError("configuration already exists", path,
			"Use --force to overwrite existing configuration."))
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		return exitError(fmt.Errorf("encoding default config: %w", err))
	}
	if err := enc.Close(); err != nil {
		return exitError(fmt.Errorf("encoding default config: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return exitError(fmt.Errorf("creating config directory: %w", err))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return exitError(fmt.Errorf("writing config file: %w", err))
	}

	output.Debug("config written", "path", path)
	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration initialized at "+path))
	fmt.Fprintln(cmd.OutOrStdout(), "Validate with: ffbun config vet")
	return nil
}

func newConfigVetCmd(globals *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the ffbun configuration file",
		Long: `Validate the configuration file against the internal schema.

The command validates ~/.ffbun/config.yaml by default.
Use --config to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigVet(cmd, globals)
		},
	}
}

func runConfigVet(cmd *cobra.Command, globals *GlobalConfig) error {
	path, err := config.ExpandPath(globals.ConfigPath)
	if err != nil {
		return exitError(fmt.Errorf("expanding config path: %w", err))
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return exitError(fmt.Errorf("checking config file: %w", err))
	}
	if !exists {
		return exitError(oerrors.NewNotFoundError(
			fmt.Sprintf("config file not found: %s", path), path,
			"Create one with 'ffbun config init'."))
	}

	validator, err := config.NewValidator()
	if err != nil {
		return exitError(fmt.Errorf("creating validator: %w", err))
	}

	if err := validator.ValidateFile(path); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error: config validation failed")
			fmt.Fprintf(cmd.ErrOrStderr(), "  File: %s\n\n", path)
			for _, e := range verrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", e.Field, e.Message)
			}
			return &oerrors.ExitError{
				Code:    oerrors.ExitValidationError,
				Err:     fmt.Errorf("%w: %w", oerrors.ErrValidation, err),
				Printed: true,
			}
		}
		return exitError(fmt.Errorf("validating config: %w", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+path))
	return nil
}
