package cluster

import (
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		expectError   bool
		errorContains string
	}{
		{
			name:   "defaults_with_name_valid",
			mutate: func(c *Config) { c.NodeName = "node1" },
		},
		{
			name:          "missing_node_name",
			mutate:        func(c *Config) {},
			expectError:   true,
			errorContains: "node name is required",
		},
		{
			name: "invalid_bind_address",
			mutate: func(c *Config) {
				c.NodeName = "node1"
				c.BindAddr = "example.com"
			},
			expectError:   true,
			errorContains: "invalid bind address",
		},
		{
			name: "bind_port_zero",
			mutate: func(c *Config) {
				c.NodeName = "node1"
				c.BindPort = 0
			},
			expectError:   true,
			errorContains: "invalid bind port",
		},
		{
			name: "bind_port_too_large",
			mutate: func(c *Config) {
				c.NodeName = "node1"
				c.BindPort = 70000
			},
			expectError:   true,
			errorContains: "invalid bind port",
		},
		{
			name: "zero_event_buffer",
			mutate: func(c *Config) {
				c.NodeName = "node1"
				c.EventBufferSize = 0
			},
			expectError:   true,
			errorContains: "invalid event buffer size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := validateConfig(config)

			if tt.expectError {
				if err == nil {
					t.Fatal("validateConfig() expected error")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err, tt.errorContains)
				}
				return
			}

			if err != nil {
				t.Errorf("validateConfig() unexpected error: %v", err)
			}
		})
	}
}
