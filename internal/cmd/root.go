// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reltag/cli/internal/config"
	"github.com/reltag/cli/internal/output"
)

var (
	// Global flags
	configFlag       string
	outputFormatFlag string
	verboseFlag      bool
	timestampsFlag   bool

	// Loaded configuration (populated during PersistentPreRunE)
	cliConfig *config.Config
)

// NewRootCmd creates the root command for the reltag CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reltag",
		Short:         "Version detection and release tagging",
		Long: `reltag detects the current version of a repository from its
version-bearing files and git tags, computes the next version for a release,
rewrites the version everywhere it appears, and commits, tags, and pushes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: RELTAG_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "text", "Output format: text, yaml, json")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(NewReleaseCmd())
	rootCmd.AddCommand(NewCurrentCmd())
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	loaded, loadErr := config.NewLoader().LoadWithDefaults(configFlag)
	if loadErr != nil {
		// Commands that never read config should still work; the load
		// error resurfaces through config vet.
		loaded = config.DefaultConfig()
	}
	cliConfig = loaded

	// Resolve timestamps: flag (if explicitly set) > config > default (true)
	timestamps := true
	if cmd.Flags().Changed("timestamps") {
		timestamps = timestampsFlag
	} else if cliConfig.Log.Timestamps != nil {
		timestamps = *cliConfig.Log.Timestamps
	}

	output.SetupLogging(verboseFlag, timestamps)

	if loadErr != nil {
		output.Warn("config file could not be loaded, using defaults", "error", loadErr)
	}

	if verboseFlag {
		pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
			FlagValue: configFlag,
		})
		if err == nil {
			config.LogResolvedValues([]config.ResolvedValue{pathResult})
		}
	}

	return nil
}

// GetConfig returns the loaded CLI configuration.
func GetConfig() *config.Config {
	if cliConfig != nil {
		return cliConfig
	}
	return config.DefaultConfig()
}

// GetConfigPath returns the raw --config flag value.
func GetConfigPath() string {
	return configFlag
}

// GetOutputFormat returns the parsed --output flag value.
func GetOutputFormat() output.OutputFormat {
	return output.ParseOutputFormat(outputFormatFlag)
}
