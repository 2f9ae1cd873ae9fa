package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvFiles are the dotenv files consulted, in order, by LoadEnvFile.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFile loads the first dotenv file found in the working directory.
// Variables already set in the process environment are not overridden. It
// returns the file loaded, or "" when none exists.
func LoadEnvFile() (string, error) {
	for _, name := range EnvFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return "", err
		}
		slog.Debug("Loaded environment variables", slog.String("file", name))
		return name, nil
	}
	return "", nil
}
