// Package commands provides the CLI command structure for the cloakd daemon.
//
// The command tree covers the server lifecycle: start (production),
// start-dev (development profile), and the data transfer commands export and
// import. All commands share the same flag set and a common pre-run pipeline
// that applies environment overrides and validates configuration before any
// service binds a port.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloak-dev/cloak/cmd/cloakd/config"
	"github.com/cloak-dev/cloak/internal/cli"
	"github.com/cloak-dev/cloak/internal/environment"
	"github.com/cloak-dev/cloak/internal/logging"
	"github.com/cloak-dev/cloak/internal/version"
)

// Env holds the process environment used by all commands. Set once by
// SetupCommands before dispatch.
var Env *environment.Environment

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists.
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Write to stderr directly; we are tearing down the log file itself
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// RootCmd is the root command for the cloakd daemon.
var RootCmd = &cobra.Command{
	Use:   "cloakd",
	Short: "Lightweight identity server with Keycloak-compatible bootstrap conventions",
	Long: `cloak daemon (cloakd) provides a lightweight identity server.

Realms and users live in an embedded SQLite store. Multi-node deployments
can run gossip-based cluster membership for discovery and failure detection.

The admin bootstrap environment variables follow Keycloak's container
conventions, so existing deployment manifests keep working unchanged.`,
	Version:       version.CloakdVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	Example: `  # Start in production mode
  cloakd start

  # Start an already-configured deployment, skipping CLI bootstrapping
  cloakd start --optimized

  # Start in development mode
  cloakd start-dev

  # Export all realm data
  cloakd export --file=realms.json`,
}

// SetupCommands initializes the command tree against the given process
// environment.
func SetupCommands(env *environment.Environment) {
	Env = env

	SetupFlags(startCmd)
	startCmd.Flags().BoolVar(&optimizedStart, "optimized", false,
		"Skip startup bootstrapping for an already-configured deployment")
	SetupFlags(startDevCmd)
	SetupFlags(exportCmd)
	SetupFlags(importCmd)

	RootCmd.AddCommand(startCmd)
	RootCmd.AddCommand(startDevCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
}

// preRunSetup is the shared PreRunE pipeline: flag tracking, log file
// redirection, environment overrides, and full configuration validation.
// Validation failures surface as usage errors before any service starts.
func preRunSetup(cmd *cobra.Command, args []string) error {
	CheckExplicitFlags(cmd)

	if config.Global.IsExplicitlySet(config.LogFileField) && config.Global.LogFile != "" {
		logDir := filepath.Dir(config.Global.LogFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}

		var err error
		logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
		}
		logging.SetOutput(logFileHandle)
	}

	// Apply the level before and after InitializeConfig so env overrides of
	// the log level take effect without leaking INFO lines first
	logging.SetLevel(config.Global.LogLevel)
	config.InitializeConfig()
	logging.SetLevel(config.Global.LogLevel)

	if err := config.ValidateConfig(); err != nil {
		CleanupLogFile()
		return cli.Usagef("%v", err)
	}
	return nil
}
