package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for ffbun configuration.
const envPrefix = "FFBUN"

// Loader handles loading and merging configuration from the config file,
// the environment and built-in defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults register the keys, so AutomaticEnv applies to them on Unmarshal.
	v.SetDefault("template.name", DefaultTemplateName)
	v.SetDefault("template.repository", DefaultTemplateRepository)
	v.SetDefault("project.modulesDir", DefaultModulesDir)
	v.SetDefault("project.routerFile", DefaultRouterFile)

	return &Loader{v: v}
}

// Load loads configuration from configFile. A missing file is not an error:
// defaults and environment variables are used instead.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		expanded, err := ExpandPath(configFile)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}

		l.v.SetConfigFile(expanded)
		l.v.SetConfigType("yaml")

		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg.WithDefaults(), nil
}

// ConfigFileUsed returns the config file viper read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
