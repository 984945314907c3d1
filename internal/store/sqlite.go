package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/felixgeelhaar/remind/internal/album"
)

// Logical keys in the state table.
const (
	keyPhotos     = "photos"
	keyQuery      = "query"
	keyPremium    = "premium"
	keySharedInfo = "sharedInfo"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS state (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME,
			entries TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			data TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS configuration (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// state key helpers

func (s *SQLiteStore) setState(key string, value string) error {
	query := `INSERT INTO state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.db.Exec(query, key, value)
	return err
}

func (s *SQLiteStore) getState(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Photo collection snapshot

func (s *SQLiteStore) Photos() ([]album.Photo, error) {
	raw, err := s.getState(keyPhotos)
	if err != nil || raw == "" {
		return nil, err
	}
	var photos []album.Photo
	if err := json.Unmarshal([]byte(raw), &photos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal photos: %w", err)
	}
	return photos, nil
}

func (s *SQLiteStore) SavePhotos(photos []album.Photo) error {
	raw, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("failed to marshal photos: %w", err)
	}
	return s.setState(keyPhotos, string(raw))
}

// Search query

func (s *SQLiteStore) Query() (string, error) {
	return s.getState(keyQuery)
}

func (s *SQLiteStore) SaveQuery(q string) error {
	return s.setState(keyQuery, q)
}

// Premium flag

func (s *SQLiteStore) Premium() (bool, error) {
	raw, err := s.getState(keyPremium)
	if err != nil {
		return false, err
	}
	return raw == "1", nil
}

func (s *SQLiteStore) SetPremium(on bool) error {
	val := "0"
	if on {
		val = "1"
	}
	return s.setState(keyPremium, val)
}

// Shared info

func (s *SQLiteStore) SharedInfo() (*SharedInfo, error) {
	raw, err := s.getState(keySharedInfo)
	if err != nil || raw == "" {
		return nil, err
	}
	var info SharedInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shared info: %w", err)
	}
	return &info, nil
}

func (s *SQLiteStore) SaveSharedInfo(info *SharedInfo) error {
	if info == nil {
		return s.setState(keySharedInfo, "")
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal shared info: %w", err)
	}
	return s.setState(keySharedInfo, string(raw))
}

// Coach sessions

func (s *SQLiteStore) Sessions() ([]CoachSession, error) {
	rows, err := s.db.Query(`SELECT id, started_at, entries FROM sessions ORDER BY started_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []CoachSession
	for rows.Next() {
		var sess CoachSession
		var entriesJSON string
		if err := rows.Scan(&sess.ID, &sess.StartedAt, &entriesJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(entriesJSON), &sess.Entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session entries: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *SQLiteStore) AppendSession(session CoachSession) error {
	entriesJSON, err := json.Marshal(session.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal session entries: %w", err)
	}
	query := `INSERT INTO sessions (id, started_at, entries) VALUES (?, ?, ?)`
	_, err = s.db.Exec(query, session.ID, session.StartedAt, string(entriesJSON))
	return err
}

func (s *SQLiteStore) ClearSessions() error {
	_, err := s.db.Exec(`DELETE FROM sessions`)
	return err
}

// Reminders. Rows are read newest-first so the list ordering is
// most-recently-saved-first, and positional deletion is resolved against
// that same ordering on every call.

func (s *SQLiteStore) Reminders() ([]album.Reminder, error) {
	rows, err := s.db.Query(`SELECT data FROM reminders ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []album.Reminder
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r album.Reminder
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *SQLiteStore) SaveReminder(r album.Reminder) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO reminders (data) VALUES (?)`, string(raw))
	return err
}

func (s *SQLiteStore) DeleteReminder(index int) error {
	rows, err := s.db.Query(`SELECT id FROM reminders ORDER BY id DESC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if index < 0 || index >= len(ids) {
		return fmt.Errorf("reminder index out of range: %d", index)
	}

	_, err = s.db.Exec(`DELETE FROM reminders WHERE id = ?`, ids[index])
	return err
}

// Configuration

func (s *SQLiteStore) SetConfig(key, value string) error {
	query := `INSERT INTO configuration (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	_, err := s.db.Exec(query, key, value)
	return err
}

func (s *SQLiteStore) GetConfig(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM configuration WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

var _ Storage = (*SQLiteStore)(nil)
