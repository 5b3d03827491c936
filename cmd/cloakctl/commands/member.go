package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloak-dev/cloak/cmd/cloakctl/client"
	"github.com/cloak-dev/cloak/cmd/cloakctl/config"
	"github.com/cloak-dev/cloak/cmd/cloakctl/display"
	"github.com/cloak-dev/cloak/internal/logging"
)

// memberCmd groups cluster membership subcommands.
var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Inspect cluster membership",
}

// memberLsCmd lists all cluster members.
var memberLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List cluster members",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		logging.Info("Fetching cluster members from API server: %s", config.Global.APIAddr)

		apiClient := client.CreateAPIClient()
		members, err := apiClient.GetMembers()
		if err != nil {
			return err
		}

		display.DisplayMembers(members)
		logging.Success("Successfully retrieved %d cluster members", len(members))
		return nil
	},
}
