package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// exportDocument is the on-disk shape of an export: every realm with its
// users, password hashes included so an import restores credentials as-is.
type exportDocument struct {
	ExportedAt time.Time     `json:"exportedAt"`
	Realms     []exportRealm `json:"realms"`
}

type exportRealm struct {
	Realm
	Users []exportUser `json:"users"`
}

type exportUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	CreatedAt    string `json:"createdAt"`
}

// Export writes all realms and users as a JSON document.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	realms, err := s.Realms(ctx)
	if err != nil {
		return err
	}

	doc := exportDocument{ExportedAt: time.Now().UTC()}
	for _, r := range realms {
		er := exportRealm{Realm: r}
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, username, password_hash, first_name, last_name, email, created_at
			 FROM users WHERE realm = ? ORDER BY username`, r.Name)
		if err != nil {
			return fmt.Errorf("query users in realm %s: %w", r.Name, err)
		}
		for rows.Next() {
			var u exportUser
			if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash,
				&u.FirstName, &u.LastName, &u.Email, &u.CreatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("scan user: %w", err)
			}
			er.Users = append(er.Users, u)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
		doc.Realms = append(doc.Realms, er)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Import reads a JSON export and merges it into the store inside a single
// transaction. Existing realms are kept; users that collide on
// (realm, username) are skipped rather than overwritten.
func (s *Store) Import(ctx context.Context, r io.Reader) error {
	var doc exportDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode import: %w", err)
	}

	return s.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, er := range doc.Realms {
			enabled := 0
			if er.Enabled {
				enabled = 1
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO realms (name, display_name, enabled, created_at)
				 VALUES (?, ?, ?, ?)
				 ON CONFLICT(name) DO NOTHING`,
				er.Name, er.DisplayName, enabled,
				er.CreatedAt.UTC().Format(timeFormat)); err != nil {
				return fmt.Errorf("import realm %s: %w", er.Name, err)
			}

			for _, u := range er.Users {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO users (id, realm, username, password_hash, first_name, last_name, email, created_at)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
					 ON CONFLICT(realm, username) DO NOTHING`,
					u.ID, er.Name, u.Username, u.PasswordHash,
					u.FirstName, u.LastName, u.Email, u.CreatedAt); err != nil {
					return fmt.Errorf("import user %s in realm %s: %w", u.Username, er.Name, err)
				}
			}
		}
		return nil
	})
}
