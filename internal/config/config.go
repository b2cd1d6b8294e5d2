// Package config loads acfgen settings from acfgen.yaml and ACFGEN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/goliatone/go-acfgen/pkg/declaration"
)

// EnvPrefix prefixes environment overrides, e.g. ACFGEN_EXPORT_FORMAT.
const EnvPrefix = "ACFGEN"

// Export formats.
const (
	FormatJSON = "json"
	FormatPHP  = "php"
)

// Config holds application configuration.
type Config struct {
	Declarations  DeclarationsConfig `mapstructure:"declarations"`
	Export        ExportConfig       `mapstructure:"export"`
	Log           LogConfig          `mapstructure:"log"`
	Sanitize      bool               `mapstructure:"sanitize"`
	FieldDefaults map[string]any     `mapstructure:"field_defaults"`
	GroupDefaults map[string]any     `mapstructure:"group_defaults"`
}

// DeclarationsConfig locates declaration files.
type DeclarationsConfig struct {
	Dir      string   `mapstructure:"dir"`
	Patterns []string `mapstructure:"patterns"`
}

// ExportConfig controls generated output.
type ExportConfig struct {
	Dir      string `mapstructure:"dir"`
	Format   string `mapstructure:"format"`
	Combined string `mapstructure:"combined"`
	Modified bool   `mapstructure:"modified"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Declarations: DeclarationsConfig{Dir: "acf", Patterns: []string{declaration.DefaultPattern}},
		Export:       ExportConfig{Dir: "acf-json", Format: FormatJSON, Modified: true},
		Log:          LogConfig{Level: "info", Pretty: true},
		Sanitize:     true,
	}
}

// Load reads configuration from path on fsys, falling back to acfgen.yaml
// in the working directory when path is empty. A missing default file is
// not an error.
func Load(fsys afero.Fs, path string) (Config, error) {
	v := viper.New()
	if fsys != nil {
		v.SetFs(fsys)
	}

	d := Defaults()
	v.SetDefault("declarations.dir", d.Declarations.Dir)
	v.SetDefault("declarations.patterns", d.Declarations.Patterns)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.format", d.Export.Format)
	v.SetDefault("export.combined", d.Export.Combined)
	v.SetDefault("export.modified", d.Export.Modified)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.pretty", d.Log.Pretty)
	v.SetDefault("sanitize", d.Sanitize)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("acfgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports unusable settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.Export.Format) {
	case FormatJSON, FormatPHP:
	default:
		return fmt.Errorf("config: unsupported export format %q", c.Export.Format)
	}
	if strings.TrimSpace(c.Export.Dir) == "" {
		return errors.New("config: export.dir is required")
	}
	if strings.TrimSpace(c.Declarations.Dir) == "" {
		return errors.New("config: declarations.dir is required")
	}
	return nil
}

// Save writes cfg as YAML to path on fsys.
func Save(fsys afero.Fs, path string, c Config) error {
	v := viper.New()
	if fsys != nil {
		v.SetFs(fsys)
	}
	v.SetConfigType("yaml")
	v.Set("declarations.dir", c.Declarations.Dir)
	v.Set("declarations.patterns", c.Declarations.Patterns)
	v.Set("export.dir", c.Export.Dir)
	v.Set("export.format", c.Export.Format)
	v.Set("export.combined", c.Export.Combined)
	v.Set("export.modified", c.Export.Modified)
	v.Set("log.level", c.Log.Level)
	v.Set("log.pretty", c.Log.Pretty)
	v.Set("sanitize", c.Sanitize)
	if len(c.FieldDefaults) > 0 {
		v.Set("field_defaults", c.FieldDefaults)
	}
	if len(c.GroupDefaults) > 0 {
		v.Set("group_defaults", c.GroupDefaults)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
