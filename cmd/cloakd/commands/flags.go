package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloak-dev/cloak/cmd/cloakd/config"
)

// SetupFlags registers the shared daemon flags on a command. Every
// lifecycle command accepts the same set so flag order never depends on
// which command runs the server.
func SetupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&config.Global.HTTPAddr, "http", config.DefaultHTTP,
		"HTTP API bind address (host:port)")
	cmd.Flags().StringVar(&config.Global.ClusterAddr, "cluster-bind", config.DefaultCluster,
		"Cluster gossip bind address (host:port)")
	cmd.Flags().BoolVar(&config.Global.Cluster, "cluster", false,
		"Enable cluster membership")
	cmd.Flags().StringSliceVar(&config.Global.JoinAddrs, "join", nil,
		"Addresses of existing cluster members to join (implies --cluster)")
	cmd.Flags().StringVar(&config.Global.DBPath, "db", config.DefaultDBPath,
		"Path to the SQLite database file")
	cmd.Flags().StringVar(&config.Global.NodeName, "name", "",
		"Node name for cluster membership (default: hostname)")
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level (DEBUG, INFO, WARN, ERROR)")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Redirect logs to a file instead of stdout/stderr")
}

// CheckExplicitFlags records which flags the user set explicitly, so env
// var overrides in InitializeConfig never clobber a CLI choice.
func CheckExplicitFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("http") {
		config.Global.SetExplicitlySet(config.HTTPField, true)
	}
	if cmd.Flags().Changed("cluster-bind") || cmd.Flags().Changed("cluster") || cmd.Flags().Changed("join") {
		config.Global.SetExplicitlySet(config.ClusterField, true)
	}
	if cmd.Flags().Changed("db") {
		config.Global.SetExplicitlySet(config.DBPathField, true)
	}
	if cmd.Flags().Changed("log-file") {
		config.Global.SetExplicitlySet(config.LogFileField, true)
	}
}
