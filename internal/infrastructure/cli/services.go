package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/fashionous/internal/infrastructure/config"
	"github.com/felixgeelhaar/fashionous/internal/infrastructure/wiring"
)

func getWorkingDir() (string, error) {
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return "", fmt.Errorf("invalid config path %q: %w", configPath, err)
		}
		return filepath.Dir(abs), nil
	}
	return os.Getwd()
}

func loadConfig() (*config.ClientConfig, error) {
	dir, err := getWorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir, configPath)
	if err != nil {
		return nil, MapError(err)
	}
	return cfg, nil
}

func loadServices() (*wiring.AppServices, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	services, err := wiring.BuildAppServices(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", err)
	}
	logger.Debug("services ready",
		"base_url", cfg.BaseURL,
		"voice_engine", cfg.Voice.Engine,
		"back_policy", cfg.BackPolicy)
	return services, nil
}
