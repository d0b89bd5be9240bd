package common

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/config"
	"github.com/alphathia/hk-strategy-mvp-sub001/pkg/logger"
)

// LoadEnv loads a .env file when present. Missing files are fine;
// everything can come from the real environment or the YAML config.
func LoadEnv(path string) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err == nil {
		_ = godotenv.Load(path)
	}
}

// Bootstrap loads the environment and config, then builds the logger
// the way every command does it.
func Bootstrap(envPath, configPath string) (*config.Config, *logrus.Logger, error) {
	LoadEnv(envPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
