package main

import (
	"os"

	"github.com/tomz197/ringdefense/internal/config"
	"github.com/tomz197/ringdefense/internal/desktop"
)

func main() {
	envErr := config.LoadDotEnv()
	logger := config.NewLogger(os.Stderr, "desktop")
	if envErr != nil {
		logger.Warn("failed to load .env", "err", envErr)
	}

	settings, err := config.LoadSettingsOrDefault(config.GetEnv(config.EnvConfigPath, ""))
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}

	if err := desktop.Run(*settings, logger); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
