package cli

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/config"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/internal/logging"
	"github.com/KellenBlackman/Data-Modeling-with-Postgres/pkg/sparkify"
)

// loadProjectConfig loads .env into the environment, then sparkify.yaml.
// An explicit --config path must exist; the default ./sparkify.yaml is optional.
func loadProjectConfig(configPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w: %w", configPath, sparkify.ErrInvalidConfig, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, sparkify.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// resolveLogFormat applies flag > sparkify.yaml > console.
func resolveLogFormat(flagValue string, projectCfg *config.ProjectConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if projectCfg != nil && projectCfg.LogFormat != "" {
		return projectCfg.LogFormat
	}
	return logging.FormatConsole
}
