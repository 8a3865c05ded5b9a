package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/reltag/cli/internal/config"
	oerrors "github.com/reltag/cli/internal/errors"
	"github.com/reltag/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the reltag CLI configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file parses as YAML
  3. Values pass validation (branch name, tag message prefix)

The config path is resolved using precedence:
  --config flag > RELTAG_CONFIG env > ~/.reltag/config.yaml

Examples:
  # Validate default configuration
  reltag config vet

  # Validate custom config path
  reltag config vet --config /path/to/config.yaml`,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: GetConfigPath(),
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrPreconditionFailed, "could not resolve config path")
	}

	configPath := pathResult.Value

	output.Debug("validating config",
		"path", configPath,
		"source", pathResult.Source,
	)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &oerrors.DetailError{
			Type:     "precondition failed",
			Message:  "configuration file not found",
			Location: configPath,
			Hint:     "Run 'reltag config init' to create default configuration",
			Cause:    oerrors.ErrPreconditionFailed,
		}
	}

	cfg, err := config.NewLoader().Load(configPath)
	if err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	output.Println("Configuration is valid: " + configPath)
	return nil
}
