// Package config loads dupgen settings from dupgen.yaml, DUPGEN_* environment
// variables and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"type-duplicate/internal/gen"
)

// EnvPrefix prefixes environment variables, e.g. DUPGEN_OUTPUT_LINE_DIRECTIVES.
const EnvPrefix = "DUPGEN"

// Config represents the dupgen configuration
type Config struct {
	Patterns []string      `mapstructure:"patterns"`
	Output   OutputConfig  `mapstructure:"output"`
	Runtime  RuntimeConfig `mapstructure:"runtime"`
	Log      LogConfig     `mapstructure:"log"`
}

// OutputConfig controls the generated files
type OutputConfig struct {
	File           string `mapstructure:"file"`
	Dir            string `mapstructure:"dir"`
	LineDirectives bool   `mapstructure:"line_directives"`
	DebugDir       string `mapstructure:"debug_dir"`
}

// RuntimeConfig holds the import paths generated code refers to
type RuntimeConfig struct {
	Heapsize  string `mapstructure:"heapsize"`
	Duplicate string `mapstructure:"duplicate"`
}

// LogConfig configures the zap logger of the CLI
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"pattern":         "patterns",
	"output":          "output.file",
	"output-dir":      "output.dir",
	"line-directives": "output.line_directives",
	"debug-dir":       "output.debug_dir",
	"log-level":       "log.level",
}

// Load loads the configuration. An explicit path must exist; otherwise
// dupgen.yaml (or .yml) in the working directory is read when present.
// Flags of flags that were set on the command line override everything else;
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := gen.DefaultGeneratorConfig()

	// Set defaults
	v.SetDefault("patterns", []string{"."})
	v.SetDefault("output.file", defaults.OutputFile)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.line_directives", defaults.LineDirectives)
	v.SetDefault("output.debug_dir", "")
	v.SetDefault("runtime.heapsize", defaults.HeapsizeImport)
	v.SetDefault("runtime.duplicate", defaults.DuplicateImport)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dupgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}

			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Generator returns the generator settings of the configuration.
func (c *Config) Generator() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		OutputFile:      c.Output.File,
		LineDirectives:  c.Output.LineDirectives,
		HeapsizeImport:  c.Runtime.Heapsize,
		DuplicateImport: c.Runtime.Duplicate,
		DebugDir:        c.Output.DebugDir,
	}
}

// Logger builds the logger described by the configuration. Logs go to stderr.
func (c LogConfig) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Level = level

	return zc.Build()
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if len(cfg.Patterns) == 0 {
		return errors.New("patterns must not be empty")
	}

	file := cfg.Output.File
	if filepath.Base(file) != file || !strings.HasSuffix(file, ".go") {
		return fmt.Errorf("output.file must be a .go file name without directories, got: %s", file)
	}

	if strings.HasSuffix(file, "_test.go") {
		return fmt.Errorf("output.file must not be a test file, got: %s", file)
	}

	if cfg.Runtime.Heapsize == "" || cfg.Runtime.Duplicate == "" {
		return errors.New("runtime.heapsize and runtime.duplicate must be set")
	}

	if _, err := zap.ParseAtomicLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}
