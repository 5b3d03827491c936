package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/cloak-dev/cloak/internal/environment"
	"github.com/cloak-dev/cloak/internal/store"
)

// fakeUserCreator records creation attempts without touching a database.
type fakeUserCreator struct {
	created  []store.UserSpec
	failWith error
}

func (f *fakeUserCreator) RunInTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if f.failWith != nil {
		return f.failWith
	}
	return fn(nil)
}

func (f *fakeUserCreator) CreateUserTx(ctx context.Context, tx *sql.Tx, spec store.UserSpec) error {
	f.created = append(f.created, spec)
	return nil
}

func envFrom(vars map[string]string) *environment.Environment {
	return environment.New(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
}

func TestCreateAdminUser(t *testing.T) {
	tests := []struct {
		name        string
		vars        map[string]string
		wantCreated bool
		wantSpec    store.UserSpec
	}{
		{
			name:        "no_variables_silent_noop",
			vars:        map[string]string{},
			wantCreated: false,
		},
		{
			name: "username_without_password_noop",
			vars: map[string]string{
				AdminEnvVar: "admin",
			},
			wantCreated: false,
		},
		{
			name: "password_without_username_noop",
			vars: map[string]string{
				AdminPasswordEnvVar: "secret",
			},
			wantCreated: false,
		},
		{
			name: "blank_username_noop",
			vars: map[string]string{
				AdminEnvVar:         "   ",
				AdminPasswordEnvVar: "secret",
			},
			wantCreated: false,
		},
		{
			name: "minimal_credentials_derive_remaining_fields",
			vars: map[string]string{
				AdminEnvVar:         "admin",
				AdminPasswordEnvVar: "secret",
			},
			wantCreated: true,
			wantSpec: store.UserSpec{
				Realm:     store.MasterRealm,
				Username:  "admin",
				Password:  "secret",
				FirstName: "admin",
				LastName:  "admin",
				Email:     "admin@keycloak.test",
			},
		},
		{
			name: "explicit_fields_win_over_derivation",
			vars: map[string]string{
				AdminEnvVar:          "admin",
				AdminPasswordEnvVar:  "secret",
				AdminFirstNameEnvVar: "Ada",
				AdminLastNameEnvVar:  "Lovelace",
				AdminEmailEnvVar:     "ada@example.com",
			},
			wantCreated: true,
			wantSpec: store.UserSpec{
				Realm:     store.MasterRealm,
				Username:  "admin",
				Password:  "secret",
				FirstName: "Ada",
				LastName:  "Lovelace",
				Email:     "ada@example.com",
			},
		},
		{
			name: "invalid_email_aborts_provisioning",
			vars: map[string]string{
				AdminEnvVar:         "admin",
				AdminPasswordEnvVar: "secret",
				AdminEmailEnvVar:    "not-an-email",
			},
			wantCreated: false,
		},
		{
			name: "invalid_derived_email_aborts_provisioning",
			vars: map[string]string{
				AdminEnvVar:         "ad min",
				AdminPasswordEnvVar: "secret",
			},
			wantCreated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeUserCreator{}

			CreateAdminUser(context.Background(), envFrom(tt.vars), creator)

			if !tt.wantCreated {
				if len(creator.created) != 0 {
					t.Fatalf("unexpected user creation: %+v", creator.created)
				}
				return
			}

			if len(creator.created) != 1 {
				t.Fatalf("created %d users, want 1", len(creator.created))
			}
			if got := creator.created[0]; got != tt.wantSpec {
				t.Errorf("created spec = %+v, want %+v", got, tt.wantSpec)
			}
		})
	}
}

func TestCreateAdminUserSwallowsStoreFailure(t *testing.T) {
	creator := &fakeUserCreator{failWith: fmt.Errorf("disk full")}
	env := envFrom(map[string]string{
		AdminEnvVar:         "admin",
		AdminPasswordEnvVar: "secret",
	})

	// Must not panic and must not create anything; the failure is logged
	// and swallowed so the server lifecycle is unaffected.
	CreateAdminUser(context.Background(), env, creator)

	if len(creator.created) != 0 {
		t.Errorf("unexpected user creation despite store failure: %+v", creator.created)
	}
}

func TestCreateAdminUserIsIdempotentPerSpec(t *testing.T) {
	creator := &fakeUserCreator{}
	env := envFrom(map[string]string{
		AdminEnvVar:         "admin",
		AdminPasswordEnvVar: "secret",
	})

	CreateAdminUser(context.Background(), env, creator)
	CreateAdminUser(context.Background(), env, creator)

	if len(creator.created) != 2 {
		t.Fatalf("created %d users, want 2 attempts", len(creator.created))
	}
	if creator.created[0] != creator.created[1] {
		t.Errorf("repeated provisioning produced different specs: %+v vs %+v",
			creator.created[0], creator.created[1])
	}
}
