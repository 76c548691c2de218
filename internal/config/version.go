package config

import (
	"os"
	"strings"
)

// GetVersion returns the version from the environment (set by CI/CD) or the
// VERSION file in the repository root, falling back to a development default.
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}
	if content, err := os.ReadFile("VERSION"); err == nil {
		return strings.TrimSpace(string(content))
	}
	return "0.1.0-dev"
}
