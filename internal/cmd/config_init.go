package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reltag/cli/internal/config"
	oerrors "github.com/reltag/cli/internal/errors"
	"github.com/reltag/cli/internal/output"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the reltag CLI configuration.

Creates ~/.reltag/config.yaml with the defaults:
  - branch: the designated release branch
  - tagMessagePrefix: prefix for annotated tag messages
  - local: whether releases skip pushing by default
  - log.timestamps: timestamps in log output

Examples:
  # Initialize configuration
  reltag config init

  # Overwrite existing configuration
  reltag config init --force`,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return oerrors.Wrap(oerrors.ErrPreconditionFailed, "could not determine home directory")
	}

	if _, err := os.Stat(paths.ConfigFile); err == nil && !configInitForce {
		return &oerrors.DetailError{
			Type:     "precondition failed",
			Message:  "configuration already exists",
			Location: paths.ConfigFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrPreconditionFailed,
		}
	}

	if err := os.MkdirAll(paths.HomeDir, 0o700); err != nil {
		return oerrors.Wrap(oerrors.ErrPreconditionFailed, "could not create ~/.reltag directory")
	}

	content, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return oerrors.Wrap(oerrors.ErrPreconditionFailed, "could not render default configuration")
	}

	if err := os.WriteFile(paths.ConfigFile, content, 0o600); err != nil {
		return oerrors.Wrap(oerrors.ErrPreconditionFailed, "could not write config.yaml")
	}

	output.Println("Configuration initialized at " + paths.ConfigFile)
	output.Println("")
	output.Println("Validate with: reltag config vet")

	return nil
}
