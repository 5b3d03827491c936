package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloak-dev/cloak/cmd/cloakctl/client"
	"github.com/cloak-dev/cloak/cmd/cloakctl/config"
	"github.com/cloak-dev/cloak/cmd/cloakctl/display"
	"github.com/cloak-dev/cloak/internal/logging"
)

// healthCmd reports daemon liveness, version, and uptime.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show daemon health and version",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		logging.Info("Fetching health from API server: %s", config.Global.APIAddr)

		apiClient := client.CreateAPIClient()
		health, err := apiClient.GetHealth()
		if err != nil {
			return err
		}

		display.DisplayHealth(health)
		return nil
	},
}
