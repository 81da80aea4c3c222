// Package config loads settings from margins.yaml, MARGINS_* environment variables,
// a .env file and bound command-line flags, in viper's precedence order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/komsit37/margins/pkg/margins/logging"
	"github.com/komsit37/margins/pkg/margins/pipeline"
)

const EnvPrefix = "MARGINS"

type Config struct {
	Store   StoreConfig  `mapstructure:"store"`
	Import  ImportConfig `mapstructure:"import"`
	Targets []float64    `mapstructure:"targets" validate:"dive,min=0,max=99"`
	Log     LogConfig    `mapstructure:"log"`
	Render  RenderConfig `mapstructure:"render"`
}

type StoreConfig struct {
	Path     string `mapstructure:"path" validate:"required"`
	MaxBytes int64  `mapstructure:"max_bytes" validate:"min=0"`
}

type ImportConfig struct {
	MaxFileBytes int64         `mapstructure:"max_file_bytes" validate:"min=1"`
	MaxProducts  int           `mapstructure:"max_products" validate:"min=1"`
	MaxAnalyses  int           `mapstructure:"max_analyses" validate:"min=1"`
	MinInterval  time.Duration `mapstructure:"min_interval" validate:"min=0"`
	Workers      int           `mapstructure:"workers" validate:"min=1,max=64"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
	Output string `mapstructure:"output" validate:"oneof=console file both none"`
	File   string `mapstructure:"file" validate:"required_if=Output file,required_if=Output both"`
}

type RenderConfig struct {
	MaxColWidth int  `mapstructure:"max_col_width" validate:"min=0"`
	Color       bool `mapstructure:"color"`
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.path", defaultStorePath())
	v.SetDefault("store.max_bytes", 4<<20)
	v.SetDefault("import.max_file_bytes", 5<<20)
	v.SetDefault("import.max_products", 1000)
	v.SetDefault("import.max_analyses", 50)
	v.SetDefault("import.min_interval", "2s")
	v.SetDefault("import.workers", 4)
	v.SetDefault("targets", []float64{70, 75})
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("render.max_col_width", 40)
	v.SetDefault("render.color", true)
}

// Load reads configuration into a validated Config. An explicit configFile must
// exist; otherwise margins.yaml is looked up in the working directory and
// $HOME/.config/margins and may be absent.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("margins")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "margins"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ImportLimits converts the import and store settings for the importer.
func (c *Config) ImportLimits() pipeline.Limits {
	return pipeline.Limits{
		MaxFileBytes: c.Import.MaxFileBytes,
		MaxProducts:  c.Import.MaxProducts,
		MaxAnalyses:  c.Import.MaxAnalyses,
		MinInterval:  c.Import.MinInterval,
		StoreBytes:   c.Store.MaxBytes,
		Workers:      c.Import.Workers,
	}
}

// LogOptions converts the log settings for logging.New.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Output: c.Log.Output,
		File:   c.Log.File,
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".margins", "analyses.json")
	}
	return filepath.Join(home, ".margins", "analyses.json")
}
