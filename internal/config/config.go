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
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Auth        AuthConfig        `yaml:"auth" mapstructure:"auth"`
	Adapters    AdaptersConfig    `yaml:"adapters" mapstructure:"adapters"`
	Correlation CorrelationConfig `yaml:"correlation" mapstructure:"correlation"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// AuthConfig configures identity token verification.
type AuthConfig struct {
	SigningKey string `yaml:"signing_key" mapstructure:"signing_key"`
	Issuer     string `yaml:"issuer" mapstructure:"issuer"`
}

// AdaptersConfig configures the surveillance source adapters.
type AdaptersConfig struct {
	WastewaterURL  string `yaml:"wastewater_url" mapstructure:"wastewater_url"`
	RespiratoryURL string `yaml:"respiratory_url" mapstructure:"respiratory_url"`
	EDVisitsURL    string `yaml:"ed_visits_url" mapstructure:"ed_visits_url"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheTTLHours  int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
}

// CorrelationConfig points at the optional scoring threshold overrides.
type CorrelationConfig struct {
	ThresholdsPath string `yaml:"thresholds_path" mapstructure:"thresholds_path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EPISCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "episcope.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("auth.issuer", "episcope")
	v.SetDefault("adapters.wastewater_url", "https://data.cdc.gov/resource/2ew6-ywp6.json")
	v.SetDefault("adapters.respiratory_url", "https://data.cdc.gov/resource/kvib-3txy.json")
	v.SetDefault("adapters.ed_visits_url", "https://data.cdc.gov/resource/vutn-jzwm.json")
	v.SetDefault("adapters.timeout_secs", 8)
	v.SetDefault("adapters.cache_ttl_hours", 6)
	v.SetDefault("adapters.user_agent", "episcope/1.0")

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
