// Package coach implements the guided recall session: photo ordering,
// question progression, skip/hint/remind sub-flows and transcript
// persistence.
package coach

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/remind/internal/album"
	"github.com/felixgeelhaar/remind/internal/observe"
	"github.com/felixgeelhaar/remind/internal/speech"
	"github.com/felixgeelhaar/remind/internal/store"
	"github.com/felixgeelhaar/remind/internal/timeparse"
)

var (
	// ErrNoPhotos is returned when a session is started with an empty album.
	ErrNoPhotos = errors.New("coach: no photos to start a session with")
	// ErrNotRunning is returned for session operations outside a run.
	ErrNotRunning = errors.New("coach: no session running")
	// ErrRunning is returned when Start is called mid-session.
	ErrRunning = errors.New("coach: session already running")
)

const noAnswer = "(no answer)"

// Engine drives one guided recall session at a time: Idle -> Running ->
// Idle. All transitions are caused by discrete calls; advancement between
// steps is a critical section so a second Submit or Skip arriving during
// the narration pause is ignored.
type Engine struct {
	photos *album.Collection
	store  store.Storage
	voice  speech.Synthesizer
	opts   speech.Options
	bus    *EventBus
	obs    *observe.Observer
	policy Policy

	// injectable for deterministic tests
	shuffle func(ids []string)
	now     func() time.Time

	mu           sync.Mutex
	running      bool
	advancing    bool
	sessionID    string
	sessionStart time.Time
	order        []string
	photoIndex   int
	qIndex       int
	responses    []store.SessionEntry
	hintLevel    int
	remindOffer  bool
}

// New creates an engine in the Idle state.
func New(photos *album.Collection, st store.Storage, voice speech.Synthesizer, obs *observe.Observer, policy Policy) *Engine {
	if voice == nil {
		voice = speech.NullSynthesizer{}
	}
	if policy.MaxPhotos <= 0 {
		policy.MaxPhotos = DefaultPolicy.MaxPhotos
	}
	if len(policy.Questions) == 0 {
		policy.Questions = DefaultQuestions
	}
	return &Engine{
		photos:  photos,
		store:   st,
		voice:   voice,
		opts:    speech.DefaultOptions(),
		bus:     NewEventBus(),
		obs:     obs,
		policy:  policy,
		shuffle: func(ids []string) { rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] }) },
		now:     time.Now,
	}
}

// SetShuffle swaps the photo-order shuffle (tests supply a fixed permutation).
func (e *Engine) SetShuffle(fn func(ids []string)) {
	if fn != nil {
		e.shuffle = fn
	}
}

// SetClock swaps the time source.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
	}
}

// SetSpeechOptions configures narration delivery for this engine.
func (e *Engine) SetSpeechOptions(opts speech.Options) {
	e.opts = opts
}

// Events exposes the engine's event bus for UI and logging subscribers.
func (e *Engine) Events() *EventBus {
	return e.bus
}

// Start begins a new session: shuffles the candidate photo ids, keeps the
// first MaxPhotos, clears the previous run's responses and asks the first
// question. Responses survive session completion and are only cleared here.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ErrRunning
	}

	all := e.photos.All()
	if len(all) == 0 {
		e.mu.Unlock()
		return ErrNoPhotos
	}

	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	e.shuffle(ids)
	n := e.policy.MaxPhotos
	if len(ids) < n {
		n = len(ids)
	}

	e.sessionID = uuid.New().String()
	e.sessionStart = e.now()
	e.order = ids[:n]
	e.photoIndex = 0
	e.qIndex = 0
	e.responses = []store.SessionEntry{}
	e.hintLevel = 0
	e.remindOffer = false
	e.running = true
	sessionID := e.sessionID
	e.mu.Unlock()

	e.bus.PublishWithData(EventSessionStarted, sessionID, map[string]interface{}{"photos": n})
	e.say(ctx, "Welcome to Memory Coach. I will show you a few memories and ask a short question. Ready?")
	e.askCurrent(ctx)
	return nil
}

// Running reports whether a session is in progress.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// CurrentPhoto returns the photo the session is on.
func (e *Engine) CurrentPhoto() (album.Photo, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentPhotoLocked()
}

func (e *Engine) currentPhotoLocked() (album.Photo, bool) {
	if !e.running || e.photoIndex >= len(e.order) {
		return album.Photo{}, false
	}
	return e.photos.Get(e.order[e.photoIndex])
}

// CurrentQuestion returns the question text for the current step.
func (e *Engine) CurrentQuestion() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return ""
	}
	return e.policy.Questions[e.qIndex]
}

// Progress reports the 1-based step position within the session.
func (e *Engine) Progress() (photo, photos, question, questions int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.photoIndex + 1, len(e.order), e.qIndex + 1, len(e.policy.Questions)
}

// Order returns the selected photo ids for this session.
func (e *Engine) Order() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Responses returns the transcript accumulated so far. After a completed
// run it keeps returning the final transcript until the next Start.
func (e *Engine) Responses() []store.SessionEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]store.SessionEntry, len(e.responses))
	copy(out, e.responses)
	return out
}

// Submit records the answer for the current step, appends a coach comment
// to the photo, and advances. An empty answer is stored as "(no answer)".
// Calls while Idle or mid-advancement are no-ops.
func (e *Engine) Submit(ctx context.Context, answer string) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrNotRunning
	}
	if e.advancing {
		e.mu.Unlock()
		return nil
	}

	photo, ok := e.currentPhotoLocked()
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("coach: session photo missing: %s", e.order[e.photoIndex])
	}
	question := e.policy.Questions[e.qIndex]
	if answer == "" {
		answer = noAnswer
	}

	entry := store.SessionEntry{
		PhotoID:    photo.ID,
		PhotoTitle: photo.Title,
		Question:   question,
		Answer:     answer,
		At:         e.now(),
	}
	e.responses = append(e.responses, entry)
	e.advancing = true
	sessionID := e.sessionID
	e.mu.Unlock()

	// Soft-save the exchange onto the photo. A failed write never stops
	// the session; the transcript still carries the answer.
	photo.Comments = append(photo.Comments, fmt.Sprintf("Coach: %s -> %s", question, answer))
	if err := e.photos.Update(photo); err != nil && e.obs != nil {
		e.obs.Log().Warn().Err(err).Str("photo", photo.ID).Msg("failed to save coach comment")
	}

	e.bus.PublishWithData(EventAnswerRecorded, sessionID, map[string]interface{}{
		"photo":    photo.ID,
		"question": question,
	})
	e.advance(ctx)
	return nil
}

// Skip moves past the current step without recording anything.
func (e *Engine) Skip(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrNotRunning
	}
	if e.advancing {
		e.mu.Unlock()
		return nil
	}
	e.advancing = true
	sessionID := e.sessionID
	e.mu.Unlock()

	e.bus.PublishWithData(EventStepSkipped, sessionID, nil)
	e.advance(ctx)
	return nil
}

// Hint reveals one more character of the current photo's title, capped at
// the full title. The reveal counter resets on every advancement.
func (e *Engine) Hint() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return "", ErrNotRunning
	}
	photo, ok := e.currentPhotoLocked()
	if !ok {
		return "", ErrNotRunning
	}

	title := []rune(photo.Title)
	if e.hintLevel < len(title) {
		e.hintLevel++
	}
	hint := string(title[:e.hintLevel])
	e.bus.PublishWithData(EventHintRevealed, e.sessionID, map[string]interface{}{"level": e.hintLevel})
	return hint, nil
}

// DontRemember marks the current step as not remembered, which unlocks the
// remind-me option for this step.
func (e *Engine) DontRemember(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrNotRunning
	}
	e.remindOffer = true
	sessionID := e.sessionID
	e.mu.Unlock()

	e.bus.PublishWithData(EventReminderOffered, sessionID, nil)
	e.say(ctx, "That's alright. Would you like me to remind you about this memory later?")
	return nil
}

// RemindOffered reports whether the current step has unlocked the
// remind-me option.
func (e *Engine) RemindOffered() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remindOffer
}

// RemindLater saves a reminder about the current photo. The note is run
// through the time parser; when it parses, the reminder carries the
// absolute timestamp, otherwise just the raw note.
func (e *Engine) RemindLater(note string) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrNotRunning
	}
	photo, _ := e.currentPhotoLocked()
	now := e.now()
	sessionID := e.sessionID
	e.mu.Unlock()

	reminder := album.Reminder{Note: note, At: now}
	if when, ok := timeparse.Parse(note, now); ok {
		reminder.TimeISO = when.Format(time.RFC3339)
		reminder.TimeLabel = timeparse.Format(when)
	} else {
		reminder.TimeLabel = note
	}
	if photo.ID != "" {
		ref := photo.Ref()
		reminder.Photo = &ref
	}

	if err := e.store.SaveReminder(reminder); err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}
	e.bus.PublishWithData(EventReminderSaved, sessionID, map[string]interface{}{"photo": photo.ID})
	return nil
}

// advance moves to the next question, the next photo, or completion. The
// narration pause between steps is a critical section: Submit and Skip are
// ignored until the next question has been asked.
func (e *Engine) advance(ctx context.Context) {
	e.mu.Lock()
	e.hintLevel = 0
	e.remindOffer = false

	switch {
	case e.qIndex+1 < len(e.policy.Questions):
		e.qIndex++
	case e.photoIndex+1 < len(e.order):
		e.photoIndex++
		e.qIndex = 0
	default:
		e.completeLocked(ctx)
		return
	}

	pace := e.policy.PaceDelay
	e.mu.Unlock()

	if pace > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(pace):
		}
	}
	e.askCurrent(ctx)

	e.mu.Lock()
	e.advancing = false
	e.mu.Unlock()
}

// completeLocked finishes the run: persists the transcript as one immutable
// session record and returns to Idle. Responses are kept for the summary
// view. Called with the mutex held; releases it.
func (e *Engine) completeLocked(ctx context.Context) {
	e.running = false
	e.advancing = false
	session := store.CoachSession{
		ID:        e.sessionID,
		StartedAt: e.sessionStart,
		Entries:   make([]store.SessionEntry, len(e.responses)),
	}
	copy(session.Entries, e.responses)
	sessionID := e.sessionID
	e.mu.Unlock()

	if err := e.store.AppendSession(session); err != nil && e.obs != nil {
		e.obs.Log().Error().Err(err).Str("sessionID", sessionID).Msg("failed to persist session")
	}
	e.bus.PublishWithData(EventSessionComplete, sessionID, map[string]interface{}{
		"entries": len(session.Entries),
	})
	e.say(ctx, "Great job — session complete. You can review your answers below.")
}

// askCurrent narrates the current photo and question.
func (e *Engine) askCurrent(ctx context.Context) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	photo, ok := e.currentPhotoLocked()
	question := e.policy.Questions[e.qIndex]
	sessionID := e.sessionID
	e.mu.Unlock()

	title := "a memory"
	if ok && photo.Title != "" {
		title = photo.Title
	}
	e.bus.PublishWithData(EventQuestionAsked, sessionID, map[string]interface{}{
		"photo":    photo.ID,
		"question": question,
	})
	e.say(ctx, fmt.Sprintf("Look at this moment: %s. %s", title, question))
}

// say narrates text, degrading to a logged notice when synthesis fails.
// Transitions never depend on speech succeeding.
func (e *Engine) say(ctx context.Context, text string) {
	if err := e.voice.Speak(ctx, text, e.opts); err != nil && e.obs != nil {
		e.obs.Log().Warn().Err(err).Msg("speech unavailable")
	}
}
