// Package config loads application configuration from config.yaml and
// ENRICH_*-prefixed environment variables, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	ZoomInfo ZoomInfoConfig `yaml:"zoominfo" mapstructure:"zoominfo"`
	S3       S3Config       `yaml:"s3" mapstructure:"s3"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ZoomInfoConfig holds provider API settings. Username and Password may be
// left empty when SecretID names a Secrets Manager secret to resolve them
// from, or when the CLI prompts interactively.
type ZoomInfoConfig struct {
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	Username      string  `yaml:"username" mapstructure:"username"`
	Password      string  `yaml:"password" mapstructure:"password"`
	SecretID      string  `yaml:"secret_id" mapstructure:"secret_id"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// S3Config configures the bucket layout for triggered runs. Objects arriving
// under RawPrefix are processed and written back under EnhancedPrefix.
type S3Config struct {
	Bucket         string `yaml:"bucket" mapstructure:"bucket"`
	RawPrefix      string `yaml:"raw_prefix" mapstructure:"raw_prefix"`
	EnhancedPrefix string `yaml:"enhanced_prefix" mapstructure:"enhanced_prefix"`
	TempDir        string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from config.yaml (optional) and environment
// variables prefixed with ENRICH_.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys without a meaningful default are still registered so
	// AutomaticEnv picks them up when they are set only in the environment.
	v.SetDefault("zoominfo.base_url", "https://api.zoominfo.com")
	v.SetDefault("zoominfo.username", "")
	v.SetDefault("zoominfo.password", "")
	v.SetDefault("zoominfo.secret_id", "")
	v.SetDefault("zoominfo.rate_per_second", 4.0)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.raw_prefix", "raw/")
	v.SetDefault("s3.enhanced_prefix", "enhanced/")
	v.SetDefault("s3.temp_dir", "/tmp")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
