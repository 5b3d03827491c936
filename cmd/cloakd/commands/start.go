package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloak-dev/cloak/cmd/cloakd/config"
	"github.com/cloak-dev/cloak/cmd/cloakd/daemon"
	"github.com/cloak-dev/cloak/internal/cli"
	"github.com/cloak-dev/cloak/internal/environment"
	"github.com/cloak-dev/cloak/internal/logging"
)

// optimizedStart is also accepted through full dispatch when additional
// flags rule out the fast path.
var optimizedStart bool

// startCmd runs the server in production mode. The dev profile is rejected
// here: development deployments must go through start-dev so the relaxed
// defaults are always an explicit choice.
var startCmd = &cobra.Command{
	Use:     "start",
	Short:   "Start the server in production mode",
	PreRunE: preRunSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		if Env.IsDevProfile() {
			return &cli.ProfileError{Profile: Env.Profile(), Command: cli.StartCommandName}
		}
		if optimizedStart {
			logging.Debug("Optimized start requested alongside other flags; using full dispatch")
		}
		if code := daemon.Start(Env); code != cli.ExitOK {
			return &cli.ExitError{Code: code}
		}
		return nil
	},
}

// startDevCmd runs the server in development mode.
var startDevCmd = &cobra.Command{
	Use:     "start-dev",
	Short:   "Start the server in development mode",
	PreRunE: preRunSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		Env.SetProfile(environment.DevProfile)
		if code := daemon.Start(Env); code != cli.ExitOK {
			return &cli.ExitError{Code: code}
		}
		return nil
	},
}

// ValidateStartConfig performs the lightweight validation used by the
// optimized start path, which bypasses the command dispatcher and its flag
// parsing entirely. Only environment overrides apply on top of defaults.
func ValidateStartConfig() error {
	config.Global.Reset()
	config.InitializeConfig()
	logging.SetLevel(config.Global.LogLevel)
	if err := config.ValidateConfig(); err != nil {
		return cli.Usagef("%v", err)
	}
	return nil
}
