// Package config provides configuration management for the cloakd daemon.
//
// The daemon manages two service endpoints (the HTTP API and the optional
// cluster gossip port) plus storage and logging settings. Configuration
// state is centralized here with explicit user override tracking so
// validation can distinguish values the user set from inherited defaults.
package config

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	// Configuration field identifiers
	HTTPField ConfigField = iota
	ClusterField
	DBPathField
	LogFileField
)

const (
	DefaultHTTP     = "127.0.0.1:8080" // Default HTTP API address
	DefaultCluster  = "0.0.0.0:7946"   // Default cluster gossip address
	DefaultDBPath   = "./data/cloak.db"
	DefaultLogLevel = "INFO"
)

// Config holds all daemon configuration values
type Config struct {
	HTTPAddr    string   // HTTP API server address
	HTTPPort    int      // HTTP API server port (derived from HTTPAddr)
	ClusterAddr string   // Cluster gossip address
	ClusterPort int      // Cluster gossip port (derived from ClusterAddr)
	NodeName    string   // Name of this node (defaults to hostname)
	JoinAddrs   []string // List of cluster addresses to join
	Cluster     bool     // Whether to run gossip membership
	DBPath      string   // Path to the SQLite database file
	LogLevel    string   // Log level: DEBUG, INFO, WARN, ERROR
	LogFile     string   // Optional file to redirect all logs to

	// Flags to track if values were explicitly set by user
	httpExplicitlySet    bool
	clusterExplicitlySet bool
	dbPathExplicitlySet  bool
	logFileExplicitlySet bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	switch field {
	case HTTPField:
		c.httpExplicitlySet = value
	case ClusterField:
		c.clusterExplicitlySet = value
	case DBPathField:
		c.dbPathExplicitlySet = value
	case LogFileField:
		c.logFileExplicitlySet = value
	}
}

// IsExplicitlySet returns whether a configuration field was explicitly set
// by the user.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	switch field {
	case HTTPField:
		return c.httpExplicitlySet
	case ClusterField:
		return c.clusterExplicitlySet
	case DBPathField:
		return c.dbPathExplicitlySet
	case LogFileField:
		return c.logFileExplicitlySet
	}
	return false
}

// Reset restores defaults and clears explicit-set tracking. Used by the
// lightweight single-command validation on the optimized start path, which
// runs without the flag system that normally populates Global.
func (c *Config) Reset() {
	*c = Config{
		HTTPAddr:    DefaultHTTP,
		ClusterAddr: DefaultCluster,
		DBPath:      DefaultDBPath,
		LogLevel:    DefaultLogLevel,
	}
}
