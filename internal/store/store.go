// Package store provides the SQLite-backed realm and user store for cloak.
//
// The store owns the transactional unit-of-work boundary used by admin
// provisioning: callers hand a closure to RunInTransaction and every
// persistence operation inside it commits or rolls back atomically.
// Uniqueness of (realm, username) is enforced here, not by callers.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// MasterRealm is the top-level administrative security domain. It is seeded
// when the store is opened; the bootstrap admin user is created inside it.
const MasterRealm = "master"

const timeFormat = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS realms (
	name         TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	enabled      INTEGER NOT NULL DEFAULT 1,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	realm         TEXT NOT NULL REFERENCES realms(name),
	username      TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL,
	UNIQUE (realm, username)
);
`

// Store provides a SQLite-backed store for realms and users.
type Store struct {
	db *sql.DB
}

// Realm describes a security domain.
type Realm struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserSpec carries the fields needed to create a user. Password is the
// plaintext credential; it is hashed before it touches the database.
type UserSpec struct {
	Realm     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

// Open opens a SQLite store at the provided path, creating the schema and
// seeding the master realm when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureRealm(context.Background(), MasterRealm); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed master realm: %w", err)
	}

	return s, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RunInTransaction executes fn inside a single database transaction. The
// transaction commits when fn returns nil and rolls back otherwise; the
// closure's error (or the commit error) is surfaced to the caller.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CreateUserTx creates a user within an existing transaction. The password
// is stored as a bcrypt hash. Inserting a duplicate (realm, username) fails
// with the database's uniqueness error; callers decide whether that is fatal.
func (s *Store) CreateUserTx(ctx context.Context, tx *sql.Tx, spec UserSpec) error {
	if strings.TrimSpace(spec.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if spec.Password == "" {
		return fmt.Errorf("password is required")
	}
	realm := spec.Realm
	if realm == "" {
		realm = MasterRealm
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(spec.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, realm, username, password_hash, first_name, last_name, email, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), realm, spec.Username, string(hash),
		spec.FirstName, spec.LastName, spec.Email,
		time.Now().UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert user %s in realm %s: %w", spec.Username, realm, err)
	}
	return nil
}

// Realms lists all realms ordered by name.
func (s *Store) Realms(ctx context.Context) ([]Realm, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, display_name, enabled, created_at FROM realms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query realms: %w", err)
	}
	defer rows.Close()

	var realms []Realm
	for rows.Next() {
		var r Realm
		var enabled int
		var createdAt string
		if err := rows.Scan(&r.Name, &r.DisplayName, &enabled, &createdAt); err != nil {
			return nil, fmt.Errorf("scan realm: %w", err)
		}
		r.Enabled = enabled != 0
		r.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		realms = append(realms, r)
	}
	return realms, rows.Err()
}

// CountUsers returns the number of users in a realm.
func (s *Store) CountUsers(ctx context.Context, realm string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE realm = ?`, realm).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users in realm %s: %w", realm, err)
	}
	return count, nil
}

// UserExists reports whether a username exists in a realm.
func (s *Store) UserExists(ctx context.Context, realm, username string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE realm = ? AND username = ?`, realm, username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("look up user %s in realm %s: %w", username, realm, err)
	}
	return count > 0, nil
}

// ensureRealm creates a realm if it does not exist yet.
func (s *Store) ensureRealm(ctx context.Context, name string) error {
	return s.RunInTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO realms (name, display_name, enabled, created_at)
			 VALUES (?, ?, 1, ?)
			 ON CONFLICT(name) DO NOTHING`,
			name, name, time.Now().UTC().Format(timeFormat))
		return err
	})
}
