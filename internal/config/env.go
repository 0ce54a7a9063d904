package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/appshell/internal/logfields"
)

// envFiles are loaded in order; variables already present in the environment win.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load environment file", logfields.File(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.File(name))
	}
}
