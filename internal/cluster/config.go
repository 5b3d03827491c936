package cluster

import (
	"fmt"

	"github.com/cloak-dev/cloak/internal/validate"
)

// Config holds cluster membership settings for a single node.
type Config struct {
	BindAddr        string            // Address for gossip traffic
	BindPort        int               // Port for gossip traffic (UDP and TCP)
	NodeName        string            // Unique node name within the cluster
	Tags            map[string]string // Metadata gossiped with the node
	LogLevel        string            // Log level applied to serf internals
	EventBufferSize int               // Buffer size for membership events
}

// DefaultConfig returns a config suitable for a single-node deployment.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:        "0.0.0.0",
		BindPort:        7946,
		Tags:            make(map[string]string),
		LogLevel:        "INFO",
		EventBufferSize: 64,
	}
}

func validateConfig(config *Config) error {
	if config.NodeName == "" {
		return fmt.Errorf("node name is required")
	}
	if err := validate.ValidateField(config.BindAddr, "required,ip"); err != nil {
		return fmt.Errorf("invalid bind address %q: %w", config.BindAddr, err)
	}
	if err := validate.ValidateField(config.BindPort, "required,min=1,max=65535"); err != nil {
		return fmt.Errorf("invalid bind port %d: %w", config.BindPort, err)
	}
	if err := validate.ValidateField(config.EventBufferSize, "min=1"); err != nil {
		return fmt.Errorf("invalid event buffer size %d: %w", config.EventBufferSize, err)
	}
	return nil
}
