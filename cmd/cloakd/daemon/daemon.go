package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloak-dev/cloak/cmd/cloakd/config"
	"github.com/cloak-dev/cloak/internal/bootstrap"
	"github.com/cloak-dev/cloak/internal/cli"
	"github.com/cloak-dev/cloak/internal/cluster"
	"github.com/cloak-dev/cloak/internal/environment"
	"github.com/cloak-dev/cloak/internal/logging"
	"github.com/cloak-dev/cloak/internal/server"
	"github.com/cloak-dev/cloak/internal/store"
	"github.com/cloak-dev/cloak/internal/version"
)

// StoreJob is an import/export job with access to the opened store.
type StoreJob func(ctx context.Context, st *store.Store) int

// Start runs the daemon with no post-start job and returns the process exit
// code.
func Start(env *environment.Environment) int {
	return StartWithJob(env, nil)
}

// StartWithJob runs the daemon, optionally with an import/export job. The
// start attempt itself is guarded: any unexpected failure is logged with the
// resolved deployment mode and forces exit code 1.
func StartWithJob(env *environment.Environment, job StoreJob) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Unexpected error when starting the server in (%s) mode: %v", env.ResolvedMode(), r)
			code = cli.ExitFailure
		}
	}()

	logging.SetLevel(config.Global.LogLevel)
	logging.Info("Starting cloak server v%s in (%s) mode", version.CloakdVersion, env.ResolvedMode())
	logging.Info("Node: %s", config.Global.NodeName)

	rt := newServerRuntime()
	lc := NewLifecycle(env, rt)
	lc.SetProvisioner(func(ctx context.Context) {
		bootstrap.CreateAdminUser(ctx, env, rt.store)
	})
	if job != nil {
		lc.SetJob(func(ctx context.Context) int {
			return job(ctx, rt.store)
		})
	}

	return lc.Run()
}

// serverRuntime assembles the real services from the global config: storage
// first, then the optional cluster membership, then the HTTP server.
// Shutdown runs in reverse order.
type serverRuntime struct {
	store   *store.Store
	cluster *cluster.Manager
	server  *server.Server
}

func newServerRuntime() *serverRuntime {
	return &serverRuntime{}
}

// Start brings services up in dependency order. A failure leaves nothing
// half-running: services started before the failing one are torn down.
func (rt *serverRuntime) Start() error {
	if dir := filepath.Dir(config.Global.DBPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory %s: %w", dir, err)
		}
	}

	st, err := store.Open(config.Global.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	rt.store = st

	if config.Global.Cluster {
		clusterConfig := cluster.DefaultConfig()
		clusterConfig.BindAddr = config.Global.ClusterAddr
		clusterConfig.BindPort = config.Global.ClusterPort
		clusterConfig.NodeName = config.Global.NodeName
		clusterConfig.LogLevel = config.Global.LogLevel
		clusterConfig.Tags["cloak_version"] = version.CloakdVersion

		cm, err := cluster.NewManager(clusterConfig)
		if err != nil {
			_ = st.Close()
			return fmt.Errorf("failed to create cluster manager: %w", err)
		}
		if err := cm.Start(); err != nil {
			_ = st.Close()
			return fmt.Errorf("failed to start cluster membership: %w", err)
		}
		rt.cluster = cm

		if len(config.Global.JoinAddrs) > 0 {
			if err := cm.Join(config.Global.JoinAddrs); err != nil {
				// Keep running in isolation; the node is still usable and can
				// be joined later. This also covers bootstrap of the first node.
				logging.Warn("Continuing without cluster peers: %v", err)
			}
		}
	}

	srv := server.NewServer(&server.Config{
		BindAddr: config.Global.HTTPAddr,
		BindPort: config.Global.HTTPPort,
		Store:    rt.store,
		Cluster:  rt.cluster,
	})
	if err := srv.Start(); err != nil {
		rt.teardown(context.Background())
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	rt.server = srv

	logging.Info("Node services started:")
	logging.Info("  - HTTP API: %s:%d", config.Global.HTTPAddr, config.Global.HTTPPort)
	if rt.cluster != nil {
		logging.Info("  - Cluster membership: %s:%d", config.Global.ClusterAddr, config.Global.ClusterPort)
	}
	logging.Info("  - Storage: %s", config.Global.DBPath)

	return nil
}

// Shutdown stops services in reverse dependency order.
func (rt *serverRuntime) Shutdown(ctx context.Context) error {
	if rt.server != nil {
		if err := rt.server.Shutdown(ctx); err != nil {
			logging.Error("Error shutting down HTTP server: %v", err)
		}
		rt.server = nil
	}
	rt.teardown(ctx)
	return nil
}

func (rt *serverRuntime) teardown(_ context.Context) {
	if rt.cluster != nil {
		if err := rt.cluster.Shutdown(); err != nil {
			logging.Error("Error shutting down cluster membership: %v", err)
		}
		rt.cluster = nil
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			logging.Error("Error closing store: %v", err)
		}
		rt.store = nil
	}
}
