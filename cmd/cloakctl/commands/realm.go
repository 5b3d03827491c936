package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloak-dev/cloak/cmd/cloakctl/client"
	"github.com/cloak-dev/cloak/cmd/cloakctl/config"
	"github.com/cloak-dev/cloak/cmd/cloakctl/display"
	"github.com/cloak-dev/cloak/internal/logging"
)

// realmCmd groups realm inspection subcommands.
var realmCmd = &cobra.Command{
	Use:   "realm",
	Short: "Inspect identity realms",
}

// realmLsCmd lists all realms.
var realmLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all realms",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		logging.Info("Fetching realms from API server: %s", config.Global.APIAddr)

		apiClient := client.CreateAPIClient()
		realms, err := apiClient.GetRealms()
		if err != nil {
			return err
		}

		display.DisplayRealms(realms)
		logging.Success("Successfully retrieved %d realms", len(realms))
		return nil
	},
}

// realmUsersCmd shows the user count for a realm.
var realmUsersCmd = &cobra.Command{
	Use:   "users REALM",
	Short: "Show the number of users in a realm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		realm := args[0]
		logging.Info("Fetching user count for realm %s from API server: %s",
			realm, config.Global.APIAddr)

		apiClient := client.CreateAPIClient()
		count, err := apiClient.CountUsers(realm)
		if err != nil {
			return err
		}

		display.DisplayUserCount(realm, count)
		return nil
	},
}
