// Package storage provides SQLite-based persistence for named settings profiles.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/terminal-heist/internal/config"
)

// ErrProfileNotFound is returned when a named profile does not exist.
var ErrProfileNotFound = errors.New("storage: profile not found")

// Store manages the SQLite database connection for profile persistence.
type Store struct {
	db *sql.DB
}

// ProfileInfo describes a saved profile.
type ProfileInfo struct {
	Name      string
	UpdatedAt time.Time
}

// ProfileChange records one key changed by a profile save.
type ProfileChange struct {
	ID        int64
	Profile   string
	Key       string
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS profile_changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			field_key TEXT NOT NULL,
			old_value TEXT NOT NULL,
			new_value TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_profile_changes_profile ON profile_changes(profile, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProfile stores cfg under name, replacing any existing profile.
// When a profile is replaced, each changed key is appended to its history.
func (s *Store) SaveProfile(name string, cfg config.GameConfig) error {
	if name == "" {
		return errors.New("storage: profile name is empty")
	}

	data, err := config.Encode(cfg, config.FormatYAML)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var previous string
	err = tx.QueryRow("SELECT data FROM profiles WHERE name = ?", name).Scan(&previous)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("storage: cannot read profile: %w", err)
	default:
		old, perr := config.Parse([]byte(previous), config.FormatYAML)
		if perr != nil {
			return fmt.Errorf("storage: stored profile %q is corrupt: %w", name, perr)
		}
		for _, c := range config.Diff(old, cfg) {
			if _, err := tx.Exec(
				"INSERT INTO profile_changes (profile, field_key, old_value, new_value) VALUES (?, ?, ?, ?)",
				name, c.Key, fmt.Sprint(c.Old), fmt.Sprint(c.New),
			); err != nil {
				return fmt.Errorf("storage: cannot record change: %w", err)
			}
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO profiles (name, data) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		name, string(data),
	); err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit profile: %w", err)
	}
	return nil
}

// LoadProfile returns the named profile overlaid onto the defaults.
func (s *Store) LoadProfile(name string) (config.GameConfig, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM profiles WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return config.DefaultGameConfig(), fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	if err != nil {
		return config.DefaultGameConfig(), fmt.Errorf("storage: cannot query profile: %w", err)
	}

	cfg, err := config.Parse([]byte(data), config.FormatYAML)
	if err != nil {
		return config.DefaultGameConfig(), fmt.Errorf("storage: stored profile %q is corrupt: %w", name, err)
	}
	return cfg, nil
}

// ListProfiles returns every saved profile ordered by name.
func (s *Store) ListProfiles() ([]ProfileInfo, error) {
	rows, err := s.db.Query("SELECT name, updated_at FROM profiles ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []ProfileInfo
	for rows.Next() {
		var p ProfileInfo
		var updatedAt any
		if err := rows.Scan(&p.Name, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTimestamp(updatedAt)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return profiles, nil
}

// DeleteProfile removes a profile and its history.
func (s *Store) DeleteProfile(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.Exec("DELETE FROM profiles WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}

	if _, err := tx.Exec("DELETE FROM profile_changes WHERE profile = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete profile history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// ProfileHistory returns the most recent changes to a profile, newest first.
func (s *Store) ProfileHistory(name string, limit int) ([]ProfileChange, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, profile, field_key, old_value, new_value, created_at
		 FROM profile_changes
		 WHERE profile = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profile history: %w", err)
	}
	defer rows.Close()

	var changes []ProfileChange
	for rows.Next() {
		var c ProfileChange
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Profile, &c.Key, &c.OldValue, &c.NewValue, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseTimestamp(createdAt)
		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return changes, nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
