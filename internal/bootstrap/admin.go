// Package bootstrap provisions the initial administrative user for a cloak
// deployment.
//
// Provisioning is driven entirely by environment variables and runs once per
// process, after the server has fully initialized. The variable names and
// the default email domain match Keycloak's container conventions so
// existing deployment manifests keep working unchanged.
//
// Failures here are never fatal: the server is already running and must not
// be taken down by a bad bootstrap credential.
package bootstrap

import (
	"context"
	"database/sql"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/cloak-dev/cloak/internal/environment"
	"github.com/cloak-dev/cloak/internal/logging"
	"github.com/cloak-dev/cloak/internal/store"
	"github.com/cloak-dev/cloak/internal/validate"
)

// Environment variables consumed by admin provisioning. Username and
// password gate the whole feature; the rest are optional.
const (
	AdminEnvVar          = "KEYCLOAK_ADMIN"
	AdminPasswordEnvVar  = "KEYCLOAK_ADMIN_PASSWORD"
	AdminFirstNameEnvVar = "KEYCLOAK_ADMIN_FIRSTNAME"
	AdminLastNameEnvVar  = "KEYCLOAK_ADMIN_LASTNAME"
	AdminEmailEnvVar     = "KEYCLOAK_ADMIN_EMAIL"

	// DefaultEmailDomain completes the derived email when none is configured.
	DefaultEmailDomain = "keycloak.test"
)

// adminEnv is the raw shape of the provisioning variables.
type adminEnv struct {
	Username  string `env:"KEYCLOAK_ADMIN"`
	Password  string `env:"KEYCLOAK_ADMIN_PASSWORD"`
	FirstName string `env:"KEYCLOAK_ADMIN_FIRSTNAME"`
	LastName  string `env:"KEYCLOAK_ADMIN_LASTNAME"`
	Email     string `env:"KEYCLOAK_ADMIN_EMAIL"`
}

// UserCreator is the unit-of-work surface provisioning needs from the store.
type UserCreator interface {
	RunInTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error
	CreateUserTx(ctx context.Context, tx *sql.Tx, spec store.UserSpec) error
}

var _ UserCreator = (*store.Store)(nil)

// CreateAdminUser reads the admin bootstrap variables and creates the
// master-realm administrator when both username and password are set.
//
// Unset username or password is the common case and a silent no-op. An
// invalid derived email aborts provisioning with a logged error. A failing
// unit of work is logged and swallowed. No error ever escapes: provisioning
// must not affect the running server's lifecycle or exit code.
func CreateAdminUser(ctx context.Context, environ *environment.Environment, users UserCreator) {
	spec, ok := resolveAdminSpec(environ)
	if !ok {
		return
	}

	err := users.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return users.CreateUserTx(ctx, tx, spec)
	})
	if err != nil {
		logging.Error("Failed to add user %q to realm %q: %v", spec.Username, store.MasterRealm, err)
		return
	}

	logging.Info("Created admin user %q in realm %q", spec.Username, store.MasterRealm)
}

// resolveAdminSpec materializes the admin user spec from the environment.
// Returns ok=false when provisioning should not run, whether silently
// (missing credentials) or after logging (invalid email).
func resolveAdminSpec(environ *environment.Environment) (store.UserSpec, bool) {
	var raw adminEnv
	// Parse from the injected environment reader rather than the process
	// environment so tests can drive provisioning without os.Setenv.
	if err := env.ParseWithOptions(&raw, env.Options{Environment: snapshotAdminEnv(environ)}); err != nil {
		logging.Error("Failed to read admin bootstrap environment: %v", err)
		return store.UserSpec{}, false
	}

	if isBlank(raw.Username) || isBlank(raw.Password) {
		return store.UserSpec{}, false
	}

	// Try to create the admin user with only username and password set;
	// the remaining fields derive from the username.
	if isBlank(raw.FirstName) {
		raw.FirstName = raw.Username
	}
	if isBlank(raw.LastName) {
		raw.LastName = raw.Username
	}
	if isBlank(raw.Email) {
		raw.Email = raw.Username + "@" + DefaultEmailDomain
	}

	if err := validate.EmailFormat(raw.Email); err != nil {
		logging.Error("The admin user %s is not created because the associated email is invalid: %s. "+
			"Please set a valid email in the %s environment variable.", raw.Username, raw.Email, AdminEmailEnvVar)
		return store.UserSpec{}, false
	}

	return store.UserSpec{
		Realm:     store.MasterRealm,
		Username:  raw.Username,
		Password:  raw.Password,
		FirstName: raw.FirstName,
		LastName:  raw.LastName,
		Email:     raw.Email,
	}, true
}

// snapshotAdminEnv copies the provisioning variables out of the injected
// environment reader into the map form the env parser consumes.
func snapshotAdminEnv(environ *environment.Environment) map[string]string {
	out := make(map[string]string, 5)
	for _, key := range []string{
		AdminEnvVar, AdminPasswordEnvVar,
		AdminFirstNameEnvVar, AdminLastNameEnvVar, AdminEmailEnvVar,
	} {
		if v, ok := environ.Lookup(key); ok {
			out[key] = v
		}
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
