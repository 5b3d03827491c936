// Package version provides centralized version information for the cloak
// monorepo. The daemon and the CLI are versioned independently so the
// management tool can evolve separately from the server.
// All versions follow semantic versioning (semver) conventions.
package version

// CloakdVersion holds the current cloakd daemon version.
// Format: major.minor.patch[-prerelease][+build]
const CloakdVersion = "0.1.0-dev"

// CloakctlVersion holds the current cloakctl CLI version.
// Format: major.minor.patch[-prerelease][+build]
const CloakctlVersion = "0.1.0-dev"
