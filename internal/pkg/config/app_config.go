package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied before the config file and the environment are read
const (
	DefaultPort      = "8080"
	DefaultCutoffDay = 17
	DefaultTimezone  = "Europe/Copenhagen"
	EnvPrefix        = "THESLOPE"
)

// AppConfig is the configuration shared by the REST server and the maintenance binary
type AppConfig struct {
	Port      string            `mapstructure:"port" validate:"required"`
	Database  DatabaseSettings  `mapstructure:"database"`
	Logger    LoggerSettings    `mapstructure:"logger"`
	Messaging MessagingSettings `mapstructure:"messaging"`
	Billing   BillingSettings   `mapstructure:"billing"`
}

// Validate checks the top level fields and every nested settings block
func (c *AppConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for AppConfig: %w", err)
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Messaging.Validate(); err != nil {
		return err
	}
	return c.Billing.Validate()
}

// InitializeAppConfig reads the YAML file at path, applies THESLOPE_* environment
// overrides (THESLOPE_DATABASE_DSN overrides database.dsn) and validates the result.
func InitializeAppConfig(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "theslope.db")
	v.SetDefault("database.db_name", "")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)
	v.SetDefault("messaging.enabled", false)
	v.SetDefault("messaging.url", "")
	v.SetDefault("messaging.exchange", "theslope.events")
	v.SetDefault("billing.cutoff_day", DefaultCutoffDay)
	v.SetDefault("billing.timezone", DefaultTimezone)
}
