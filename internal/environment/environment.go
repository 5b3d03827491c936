// Package environment resolves the deployment profile and launch mode for
// the cloak server.
//
// The profile decides which startup paths are permitted (the optimized start
// refuses the dev profile) and which mode name appears in startup failure
// messages. Launch modes change the lifecycle: test launches and data
// import/export runs exit immediately after startup instead of blocking for
// a shutdown signal.
//
// Lookups go through an injectable function so tests can exercise profile
// and mode combinations without mutating the process environment.
package environment

import "os"

const (
	// ProfileEnvVar selects the deployment profile (prod, dev).
	ProfileEnvVar = "CLOAK_PROFILE"
	// LaunchModeEnvVar selects the launch mode; "test" requests a test launch.
	LaunchModeEnvVar = "CLOAK_LAUNCH_MODE"

	// DefaultProfile is assumed when no profile is configured.
	DefaultProfile = "prod"
	// DevProfile marks a development deployment.
	DevProfile = "dev"

	testLaunchMode = "test"
)

// LookupFunc reports the value of a named environment variable and whether
// it is set. os.LookupEnv satisfies this signature.
type LookupFunc func(key string) (string, bool)

// Environment answers profile and mode queries for the current process.
// Commands may override the profile (start-dev) or flag an import/export run
// programmatically; environment variables cover the rest.
type Environment struct {
	lookup          LookupFunc
	profileOverride string
	importExport    bool
}

// FromOS returns an Environment backed by the process environment.
func FromOS() *Environment {
	return New(os.LookupEnv)
}

// New returns an Environment backed by the given lookup function.
func New(lookup LookupFunc) *Environment {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	return &Environment{lookup: lookup}
}

// Lookup reports a raw environment value. Exposed so collaborators that need
// ad-hoc variables share the same injectable source.
func (e *Environment) Lookup(key string) (string, bool) {
	return e.lookup(key)
}

// Getenv returns a raw environment value, or "" when unset.
func (e *Environment) Getenv(key string) string {
	v, _ := e.lookup(key)
	return v
}

// Profile returns the active deployment profile. A programmatic override
// (start-dev) wins over the environment variable, which wins over the
// default prod profile.
func (e *Environment) Profile() string {
	if e.profileOverride != "" {
		return e.profileOverride
	}
	if v, ok := e.lookup(ProfileEnvVar); ok && v != "" {
		return v
	}
	return DefaultProfile
}

// SetProfile forces the given profile for this process, overriding the
// environment variable.
func (e *Environment) SetProfile(profile string) {
	e.profileOverride = profile
}

// IsDevProfile reports whether the active profile is the dev profile.
func (e *Environment) IsDevProfile() bool {
	return e.Profile() == DevProfile
}

// IsTestLaunchMode reports whether this is a test launch, which exits
// immediately after startup instead of waiting for a shutdown signal.
func (e *Environment) IsTestLaunchMode() bool {
	v, _ := e.lookup(LaunchModeEnvVar)
	return v == testLaunchMode
}

// SetImportExportMode marks this run as a data import/export run. Set by the
// export and import commands before the server starts.
func (e *Environment) SetImportExportMode(enabled bool) {
	e.importExport = enabled
}

// IsImportExportMode reports whether this run performs a data import or
// export. Import/export runs skip admin provisioning and exit immediately
// after the job completes.
func (e *Environment) IsImportExportMode() bool {
	return e.importExport
}

// ResolvedMode returns the human-readable deployment mode name derived from
// the active profile. Used in mode-qualified startup failure messages.
func (e *Environment) ResolvedMode() string {
	if e.IsDevProfile() {
		return "development"
	}
	return "production"
}
