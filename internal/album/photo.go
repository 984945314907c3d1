package album

import "time"

// Emotion labels assigned to photos at ingestion.
const (
	EmotionJoy       = "joy"
	EmotionNostalgia = "nostalgia"
	EmotionPeace     = "peace"
	EmotionSurprise  = "surprise"
	EmotionSadness   = "sadness"
	EmotionWonder    = "wonder"
)

// Photo is one item in the memory album. Photos are created at import time
// and mutated by comment, reminder and answer additions; they are never
// deleted.
type Photo struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Title     string     `json:"title,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Comments  []string   `json:"comments,omitempty"`
	Emotion   string     `json:"emotion,omitempty"`
	Reminders []Reminder `json:"reminders,omitempty"`
	Answers   []Answer   `json:"answers,omitempty"`
	AISummary string     `json:"aiSummary,omitempty"`
}

// PhotoRef is a lightweight snapshot of a photo attached to a reminder.
type PhotoRef struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Ref returns the snapshot form of the photo.
func (p Photo) Ref() PhotoRef {
	return PhotoRef{ID: p.ID, URL: p.URL, Title: p.Title}
}

// Reminder is a user-saved note, optionally time-stamped via the
// natural-language parser and optionally linked to a photo.
type Reminder struct {
	Note      string    `json:"note"`
	TimeISO   string    `json:"timeISO,omitempty"`
	TimeLabel string    `json:"timeLabel,omitempty"`
	At        time.Time `json:"at"`
	Photo     *PhotoRef `json:"photo,omitempty"`
}

// Answer is one prompt/response pair from lightweight per-photo coaching.
type Answer struct {
	Prompt string    `json:"prompt"`
	Answer string    `json:"answer"`
	At     time.Time `json:"at"`
}

// Snapshot is the share/export payload. Consumers must tolerate unknown
// additional fields.
type Snapshot struct {
	Photos      []Photo   `json:"photos"`
	GeneratedAt time.Time `json:"generatedAt"`
}
