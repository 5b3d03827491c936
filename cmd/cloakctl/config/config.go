// Package config provides configuration management for the cloakctl CLI.
package config

import "github.com/cloak-dev/cloak/internal/version"

const (
	DefaultAPIAddr = "127.0.0.1:8080" // Default API server address (routable)
)

// Version returns the current cloakctl CLI version from the centralized version package
var Version = version.CloakctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr  string // Address of the cloakd API server to connect to
	LogLevel string // Log level for CLI operations
	Timeout  int    // Connection timeout in seconds
	Output   string // Output format: table, json
}
