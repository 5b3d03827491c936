// Command cloakctl is the CLI tool for inspecting cloakd identity servers.
package main

import (
	"os"

	"github.com/cloak-dev/cloak/cmd/cloakctl/commands"
	"github.com/cloak-dev/cloak/cmd/cloakctl/config"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()
	commands.SetupGlobalFlags()
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
