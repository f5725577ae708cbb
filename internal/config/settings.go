package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// VRECHNER_LOG_LEVEL.
const EnvPrefix = "VRECHNER"

// Settings holds application settings, as opposed to calculation parameters.
type Settings struct {
	LogLevel     string   `mapstructure:"log_level"`
	LogFormat    string   `mapstructure:"log_format"`
	OutputFormat string   `mapstructure:"output_format"`
	OutputDir    string   `mapstructure:"output_dir"`
	DatabasePath string   `mapstructure:"database_path"`
	ServerAddr   string   `mapstructure:"server_addr"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// SetDefaults registers the default settings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("output_format", "console")
	v.SetDefault("output_dir", "")
	v.SetDefault("database_path", "vergleichsrechner.db")
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("cors_origins", []string{"http://localhost:3000"})
}

// LoadSettings reads the optional settings file at configPath and applies
// environment overrides. An empty path yields defaults plus environment.
func LoadSettings(v *viper.Viper, configPath string) (*Settings, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", configPath, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	return &settings, nil
}
