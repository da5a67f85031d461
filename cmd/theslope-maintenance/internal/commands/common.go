package commands

import (
	"fmt"
	"os"

	"github.com/Mathmagicians/theslope/internal/bootstrap"
	"github.com/Mathmagicians/theslope/internal/pkg/config"
	"github.com/Mathmagicians/theslope/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ConfigFlag is the persistent flag naming the YAML config file.
const ConfigFlag = "config"

// DefaultConfigPath is used when neither --config nor CONFIG_PATH is set.
const DefaultConfigPath = "../../configs/app.yaml"

// configPath resolves --config, then CONFIG_PATH, then the default.
func configPath(cmd *cobra.Command) string {
	if path, err := cmd.Root().PersistentFlags().GetString(ConfigFlag); err == nil && path != "" {
		return path
	}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return DefaultConfigPath
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// openApplication loads the config and builds the services. The caller closes
// the application.
func openApplication(cmd *cobra.Command) (*bootstrap.Application, logger.Logger, error) {
	path := configPath(cmd)
	cfg, err := config.InitializeAppConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	log, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, nil, err
	}

	application, err := bootstrap.New(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, log, nil
}
