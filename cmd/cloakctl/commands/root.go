// Package commands provides the command tree for the cloakctl CLI.
//
// Commands are organized by resource, similar to kubectl: realm for realm
// inspection, member for cluster membership, and health for daemon liveness.
// Output defaults to human-readable tables with a JSON option for scripting.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cloak-dev/cloak/cmd/cloakctl/config"
	"github.com/cloak-dev/cloak/internal/logging"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "cloakctl",
	Short: "CLI tool for managing cloak identity servers",
	Long: `Cloak CLI (cloakctl) is a command-line tool for inspecting and
managing cloakd identity servers.

It talks to the daemon's HTTP API, so any reachable node works as a target.`,
	SilenceUsage: true,
	Example: `  # Check daemon health
  cloakctl health

  # List realms
  cloakctl realm ls

  # Count users in a realm
  cloakctl realm users master

  # List cluster members
  cloakctl member ls

  # Connect to a remote daemon
  cloakctl --api=192.168.1.100:8080 health

  # Output in JSON format
  cloakctl -o json realm ls`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	realmCmd.AddCommand(realmLsCmd)
	realmCmd.AddCommand(realmUsersCmd)
	memberCmd.AddCommand(memberLsCmd)

	RootCmd.AddCommand(healthCmd)
	RootCmd.AddCommand(realmCmd)
	RootCmd.AddCommand(memberCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags() {
	RootCmd.PersistentFlags().StringVar(&config.Global.APIAddr, "api", config.DefaultAPIAddr,
		"API server address")
	RootCmd.PersistentFlags().StringVar(&config.Global.LogLevel, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	RootCmd.PersistentFlags().IntVar(&config.Global.Timeout, "timeout", 8,
		"Connection timeout in seconds")
	RootCmd.PersistentFlags().StringVarP(&config.Global.Output, "output", "o", "table",
		"Output format: table, json")
}

// setupLogging configures CLI logging behavior. Debug output is enabled
// with DEBUG=true, otherwise only errors reach the terminal so command
// output stays clean.
func setupLogging() {
	if os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
	} else {
		logging.SetLevel(config.Global.LogLevel)
		logging.SuppressOutput()
	}
}
