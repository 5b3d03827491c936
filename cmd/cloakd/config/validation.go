// Package config handles configuration validation for the cloakd daemon.
//
// Validation transforms raw CLI and environment values into validated,
// normalized forms ready for service initialization: network addresses are
// parsed and range-checked, the log level is verified against the canonical
// set, and clustering flags are checked for consistency. Failures surface
// before any service binds a port.
package config

import (
	"fmt"
	"os"

	"github.com/cloak-dev/cloak/internal/logging"
	"github.com/cloak-dev/cloak/internal/validate"
)

// InitializeConfig applies environment variable overrides and defaults
// before validation runs. Explicitly set flags always win over environment
// values.
func InitializeConfig() {
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}

	if v := os.Getenv("CLOAK_DB"); v != "" && !Global.dbPathExplicitlySet {
		Global.DBPath = v
	}

	if v := os.Getenv("CLOAK_HTTP_ADDR"); v != "" && !Global.httpExplicitlySet {
		Global.HTTPAddr = v
	}
}

// ValidateConfig performs validation and normalization of all daemon
// configuration parameters before service startup. Returns an error for any
// validation failure with descriptive context.
func ValidateConfig() error {
	// Parse and validate the HTTP API address. The port must be explicit:
	// clients and readiness probes need a predictable endpoint.
	netAddr, err := validate.ParseBindAddress(Global.HTTPAddr)
	if err != nil {
		logging.Error("Invalid HTTP address '%s': %v", Global.HTTPAddr, err)
		return fmt.Errorf("invalid HTTP address: %w", err)
	}
	if err := validate.ValidateField(netAddr.Port, "required,min=1,max=65535"); err != nil {
		logging.Error("HTTP port cannot be 0 (auto-assigned)")
		return fmt.Errorf("HTTP address requires specific port (not 0): %w", err)
	}
	Global.HTTPAddr = netAddr.Host
	Global.HTTPPort = netAddr.Port

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	// Joining a cluster implies running membership.
	if len(Global.JoinAddrs) > 0 {
		Global.Cluster = true
	}

	if Global.Cluster {
		clusterAddr, err := validate.ParseBindAddress(Global.ClusterAddr)
		if err != nil {
			logging.Error("Invalid cluster address '%s': %v", Global.ClusterAddr, err)
			return fmt.Errorf("invalid cluster address: %w", err)
		}
		if err := validate.ValidateField(clusterAddr.Port, "required,min=1,max=65535"); err != nil {
			logging.Error("Cluster port cannot be 0 (auto-assigned)")
			return fmt.Errorf("cluster address requires specific port (not 0): %w", err)
		}
		Global.ClusterAddr = clusterAddr.Host
		Global.ClusterPort = clusterAddr.Port
	}

	if len(Global.JoinAddrs) > 0 {
		if err := validate.ValidateAddressList(Global.JoinAddrs); err != nil {
			logging.Error("Invalid join addresses: %v", err)
			return fmt.Errorf("invalid join addresses: %w", err)
		}
	}

	if Global.NodeName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("failed to get hostname: %w", err)
		}
		Global.NodeName = hostname
	}

	if Global.DBPath == "" {
		logging.Error("Database path cannot be empty")
		return fmt.Errorf("database path cannot be empty")
	}

	return nil
}
