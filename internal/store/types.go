package store

import (
	"time"

	"github.com/felixgeelhaar/remind/internal/album"
)

// CoachSession is one completed guided recall run. It is persisted once,
// when the session ends, and never mutated afterwards.
type CoachSession struct {
	ID        string         `json:"id"`
	StartedAt time.Time      `json:"startedAt"`
	Entries   []SessionEntry `json:"entries"`
}

// SessionEntry records one answered question inside a coach session.
type SessionEntry struct {
	PhotoID    string    `json:"photoId"`
	PhotoTitle string    `json:"photoTitle"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	At         time.Time `json:"at"`
}

// SharedInfo records the last share/export action.
type SharedInfo struct {
	TS     time.Time `json:"ts"`
	Method string    `json:"method"`
}

// Storage defines the persistence contract: a handful of logical keys with
// JSON-serializable values. Writes are best-effort at-most-once; callers
// keep the in-memory state authoritative when a write fails.
type Storage interface {
	// Photo collection snapshot
	Photos() ([]album.Photo, error)
	SavePhotos(photos []album.Photo) error

	// Last search query
	Query() (string, error)
	SaveQuery(q string) error

	// Premium feature flag
	Premium() (bool, error)
	SetPremium(on bool) error

	// Last share/export metadata; saving nil clears it
	SharedInfo() (*SharedInfo, error)
	SaveSharedInfo(info *SharedInfo) error

	// Completed coach sessions, append-only
	Sessions() ([]CoachSession, error)
	AppendSession(session CoachSession) error
	ClearSessions() error

	// Reminder list, most-recently-saved first; deletion is by the
	// positional index of the current list
	Reminders() ([]album.Reminder, error)
	SaveReminder(r album.Reminder) error
	DeleteReminder(index int) error

	// Configuration Management
	SetConfig(key, value string) error
	GetConfig(key string) (string, error)

	Close() error
}
