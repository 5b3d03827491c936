package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "cloak.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createUser(t *testing.T, s *Store, spec UserSpec) {
	t.Helper()

	err := s.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		return s.CreateUserTx(context.Background(), tx, spec)
	})
	if err != nil {
		t.Fatalf("CreateUserTx(%q) failed: %v", spec.Username, err)
	}
}

func TestOpenSeedsMasterRealm(t *testing.T) {
	s := openTestStore(t)

	realms, err := s.Realms(context.Background())
	if err != nil {
		t.Fatalf("Realms() failed: %v", err)
	}
	if len(realms) != 1 {
		t.Fatalf("Realms() returned %d realms, want 1", len(realms))
	}
	if realms[0].Name != MasterRealm {
		t.Errorf("seeded realm = %q, want %q", realms[0].Name, MasterRealm)
	}
	if !realms[0].Enabled {
		t.Error("seeded master realm is not enabled")
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("Open with blank path expected error")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloak.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer s2.Close()

	realms, err := s2.Realms(context.Background())
	if err != nil {
		t.Fatalf("Realms() failed: %v", err)
	}
	if len(realms) != 1 {
		t.Errorf("reopened store has %d realms, want 1", len(realms))
	}
}

func TestCreateUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	createUser(t, s, UserSpec{
		Realm:     MasterRealm,
		Username:  "admin",
		Password:  "secret",
		FirstName: "admin",
		LastName:  "admin",
		Email:     "admin@keycloak.test",
	})

	exists, err := s.UserExists(ctx, MasterRealm, "admin")
	if err != nil {
		t.Fatalf("UserExists() failed: %v", err)
	}
	if !exists {
		t.Error("created user not found")
	}

	count, err := s.CountUsers(ctx, MasterRealm)
	if err != nil {
		t.Fatalf("CountUsers() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountUsers() = %d, want 1", count)
	}

	// The plaintext password must never reach the database
	var hash string
	err = s.db.QueryRow(`SELECT password_hash FROM users WHERE username = 'admin'`).Scan(&hash)
	if err != nil {
		t.Fatalf("reading password hash: %v", err)
	}
	if hash == "secret" {
		t.Error("password stored in plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("password hash %q is not a bcrypt hash", hash)
	}
}

func TestCreateUserDefaultsToMasterRealm(t *testing.T) {
	s := openTestStore(t)

	createUser(t, s, UserSpec{Username: "admin", Password: "secret"})

	exists, err := s.UserExists(context.Background(), MasterRealm, "admin")
	if err != nil {
		t.Fatalf("UserExists() failed: %v", err)
	}
	if !exists {
		t.Error("user without explicit realm not placed in master")
	}
}

func TestCreateUserValidation(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		name string
		spec UserSpec
	}{
		{name: "blank_username", spec: UserSpec{Username: "  ", Password: "x"}},
		{name: "empty_password", spec: UserSpec{Username: "admin", Password: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
				return s.CreateUserTx(context.Background(), tx, tt.spec)
			})
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDuplicateUserFails(t *testing.T) {
	s := openTestStore(t)

	createUser(t, s, UserSpec{Username: "admin", Password: "secret"})

	err := s.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		return s.CreateUserTx(context.Background(), tx, UserSpec{Username: "admin", Password: "other"})
	})
	if err == nil {
		t.Error("duplicate username in same realm expected error")
	}
}

func TestRunInTransactionRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.CreateUserTx(ctx, tx, UserSpec{Username: "admin", Password: "secret"}); err != nil {
			return err
		}
		return fmt.Errorf("forced failure")
	})
	if err == nil {
		t.Fatal("expected forced failure to surface")
	}

	exists, err := s.UserExists(ctx, MasterRealm, "admin")
	if err != nil {
		t.Fatalf("UserExists() failed: %v", err)
	}
	if exists {
		t.Error("user survived a rolled-back transaction")
	}
}

func TestRunInTransactionNilStore(t *testing.T) {
	var s *Store
	err := s.RunInTransaction(context.Background(), func(tx *sql.Tx) error { return nil })
	if err == nil {
		t.Error("nil store expected error")
	}
}

func TestCountUsersEmptyRealm(t *testing.T) {
	s := openTestStore(t)

	count, err := s.CountUsers(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("CountUsers() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("CountUsers(nonexistent) = %d, want 0", count)
	}
}
