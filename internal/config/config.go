// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the reltag CLI configuration.
// Loaded from ~/.reltag/config.yaml.
type Config struct {
	// Branch is the designated release branch.
	// Env: RELTAG_BRANCH, Default: "master"
	Branch string `yaml:"branch,omitempty" mapstructure:"branch"`

	// TagMessagePrefix prefixes annotated tag messages.
	// Default: "release", producing messages like "release 1.4.0".
	TagMessagePrefix string `yaml:"tagMessagePrefix,omitempty" mapstructure:"tagMessagePrefix"`

	// Local makes releases commit and tag without pushing by default.
	// Env: RELTAG_LOCAL
	Local bool `yaml:"local,omitempty" mapstructure:"local"`

	// Log contains logging-related settings.
	Log LogConfig `yaml:"log,omitempty" mapstructure:"log"`
}

// Default values applied when neither file, env, nor flag sets them.
const (
	DefaultBranch           = "master"
	DefaultTagMessagePrefix = "release"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `reltag config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Branch:           DefaultBranch,
		TagMessagePrefix: DefaultTagMessagePrefix,
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// WithDefaults returns a copy of the config with unset fields filled in.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Branch == "" {
		out.Branch = DefaultBranch
	}
	if out.TagMessagePrefix == "" {
		out.TagMessagePrefix = DefaultTagMessagePrefix
	}
	return &out
}
