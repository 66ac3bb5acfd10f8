package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = "autograder"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for autograder settings.
const envPrefix = "AUTOGRADER"

// Load loads configuration from file, env vars, and defaults.
// If path is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("disable_linting", false)
	v.SetDefault("jobs", runtime.NumCPU())
	v.SetDefault("max_bytes", DefaultMaxBytes)
	v.SetDefault("format", DefaultFormat)

	for _, lang := range []string{"css", "html", "js"} {
		v.SetDefault("linters."+lang+".command", "")
		v.SetDefault("linters."+lang+".args", []string{})
	}
}
