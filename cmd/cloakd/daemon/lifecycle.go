// Package daemon provides the cloakd orchestration and lifecycle management.
//
// The lifecycle drives the process from startup to exit: it starts the
// runtime, runs the post-start hooks (admin provisioning, dev-mode warning,
// import/export jobs), and decides between blocking for a shutdown signal
// and exiting immediately based on the launch mode. Startup failures are
// fatal and mode-qualified in the logs; post-start provisioning failures
// never are.
package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloak-dev/cloak/internal/cli"
	"github.com/cloak-dev/cloak/internal/environment"
	"github.com/cloak-dev/cloak/internal/logging"
)

// Runtime abstracts the server services the lifecycle starts and stops.
type Runtime interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// Job is an optional unit of work executed after successful startup, used
// by data import/export runs. Its return value becomes the process exit
// code.
type Job func(ctx context.Context) int

// Lifecycle drives a single process run. The exit code is written once by
// the completion path (startup failure or job result) and read once on
// return; there are no concurrent writers.
type Lifecycle struct {
	env       *environment.Environment
	runtime   Runtime
	provision func(ctx context.Context)
	job       Job

	// signals is injectable so tests can trigger shutdown without raising
	// real process signals.
	signals chan os.Signal

	shutdownTimeout time.Duration
	exitCode        int
}

// NewLifecycle creates a lifecycle for the given runtime.
func NewLifecycle(env *environment.Environment, runtime Runtime) *Lifecycle {
	return &Lifecycle{
		env:             env,
		runtime:         runtime,
		shutdownTimeout: 5 * time.Second,
	}
}

// SetProvisioner installs the post-start admin provisioning hook. The hook
// must swallow its own failures; the lifecycle does not inspect them.
func (lc *Lifecycle) SetProvisioner(fn func(ctx context.Context)) {
	lc.provision = fn
}

// SetJob installs the import/export job run after startup.
func (lc *Lifecycle) SetJob(job Job) {
	lc.job = job
}

// SetSignals overrides the shutdown signal source. Tests use this to stop a
// blocking lifecycle deterministically.
func (lc *Lifecycle) SetSignals(ch chan os.Signal) {
	lc.signals = ch
}

// Run drives the full lifecycle and returns the process exit code.
//
// Startup failure is terminal: the cause is logged with the resolved
// deployment mode and the generic failure code is returned without retry.
// After successful startup the provisioning hook runs (skipped in
// import/export mode), then test-launch and import/export runs return
// immediately with the recorded exit code while normal runs block until a
// shutdown signal arrives.
func (lc *Lifecycle) Run() int {
	if err := lc.runtime.Start(); err != nil {
		logging.Error("Failed to start server in (%s) mode: %v", lc.env.ResolvedMode(), err)
		return cli.ExitFailure
	}

	ctx := context.Background()

	if !lc.env.IsImportExportMode() && lc.provision != nil {
		lc.provision(ctx)
	}

	if lc.env.IsDevProfile() {
		logging.Warn("Running the server in development mode. DO NOT use this configuration in production.")
	}

	if lc.job != nil {
		lc.exitCode = lc.job(ctx)
	}

	if lc.env.IsTestLaunchMode() || lc.env.IsImportExportMode() {
		// Exit immediately with the recorded code instead of waiting for a
		// shutdown signal.
		lc.shutdown()
		return lc.exitCode
	}

	sigCh := lc.signals
	if sigCh == nil {
		sigCh = make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
	}

	logging.Success("Server started successfully")
	logging.Info("Server running... Press Ctrl+C to shutdown")

	sig := <-sigCh
	logging.Info("Received signal: %v", sig)

	lc.shutdown()
	return lc.exitCode
}

func (lc *Lifecycle) shutdown() {
	logging.Info("Initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), lc.shutdownTimeout)
	defer cancel()

	if err := lc.runtime.Shutdown(ctx); err != nil {
		logging.Error("Error during shutdown: %v", err)
	}

	logging.Success("Server shutdown completed")
}
