package coach

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/felixgeelhaar/remind/internal/album"
	"github.com/felixgeelhaar/remind/internal/speech"
	"github.com/felixgeelhaar/remind/internal/store"
)

// memStorage is an in-memory Storage for engine tests.
type memStorage struct {
	mu        sync.Mutex
	photos    []album.Photo
	query     string
	premium   bool
	shared    *store.SharedInfo
	sessions  []store.CoachSession
	reminders []album.Reminder
	config    map[string]string
}

func newMemStorage(photos ...album.Photo) *memStorage {
	return &memStorage{photos: photos, config: map[string]string{}}
}

func (m *memStorage) Photos() ([]album.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]album.Photo, len(m.photos))
	copy(out, m.photos)
	return out, nil
}

func (m *memStorage) SavePhotos(photos []album.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos = make([]album.Photo, len(photos))
	copy(m.photos, photos)
	return nil
}

func (m *memStorage) Query() (string, error)  { return m.query, nil }
func (m *memStorage) SaveQuery(q string) error { m.query = q; return nil }

func (m *memStorage) Premium() (bool, error)   { return m.premium, nil }
func (m *memStorage) SetPremium(on bool) error { m.premium = on; return nil }

func (m *memStorage) SharedInfo() (*store.SharedInfo, error)  { return m.shared, nil }
func (m *memStorage) SaveSharedInfo(i *store.SharedInfo) error { m.shared = i; return nil }

func (m *memStorage) Sessions() ([]store.CoachSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.CoachSession{}, m.sessions...), nil
}

func (m *memStorage) AppendSession(s store.CoachSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *memStorage) ClearSessions() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = nil
	return nil
}

func (m *memStorage) Reminders() ([]album.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]album.Reminder, len(m.reminders))
	for i, r := range m.reminders {
		out[len(out)-1-i] = r
	}
	return out, nil
}

func (m *memStorage) SaveReminder(r album.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = append(m.reminders, r)
	return nil
}

func (m *memStorage) DeleteReminder(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos := len(m.reminders) - 1 - index
	if pos < 0 || pos >= len(m.reminders) {
		return fmt.Errorf("reminder index out of range: %d", index)
	}
	m.reminders = append(m.reminders[:pos], m.reminders[pos+1:]...)
	return nil
}

func (m *memStorage) SetConfig(key, value string) error { m.config[key] = value; return nil }
func (m *memStorage) GetConfig(key string) (string, error) {
	return m.config[key], nil
}
func (m *memStorage) Close() error { return nil }

var _ store.Storage = (*memStorage)(nil)

func sessionPhotos(n int) []album.Photo {
	photos := make([]album.Photo, n)
	for i := range photos {
		photos[i] = album.Photo{
			ID:    fmt.Sprintf("p%d", i+1),
			Title: fmt.Sprintf("Photo %d", i+1),
		}
	}
	return photos
}

// testEngine builds an engine over n photos with a no-op shuffle, a fixed
// clock and no narration pause.
func testEngine(t *testing.T, n int, policy Policy) (*Engine, *memStorage) {
	t.Helper()
	st := newMemStorage(sessionPhotos(n)...)
	photos, err := album.Load(st, nil, nil)
	if err != nil {
		t.Fatalf("failed to load collection: %v", err)
	}
	policy.PaceDelay = 0
	e := New(photos, st, nil, nil, policy)
	e.SetShuffle(func(ids []string) {})
	e.SetClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	return e, st
}

func TestStart(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyAlbum", func(t *testing.T) {
		st := newMemStorage()
		photos, err := album.Load(st, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		e := New(photos, st, nil, nil, Policy{})
		if err := e.Start(ctx); err != ErrNoPhotos {
			t.Fatalf("expected ErrNoPhotos, got %v", err)
		}
		if e.Running() {
			t.Error("engine should stay idle")
		}
	})

	t.Run("TakesAtMostMaxPhotos", func(t *testing.T) {
		e, _ := testEngine(t, 7, Policy{})
		if err := e.Start(ctx); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		order := e.Order()
		if len(order) != 5 {
			t.Fatalf("expected 5 photos, got %d", len(order))
		}
		seen := map[string]bool{}
		for _, id := range order {
			if seen[id] {
				t.Errorf("duplicate photo %s in order", id)
			}
			seen[id] = true
		}
	})

	t.Run("SmallAlbumTakesAll", func(t *testing.T) {
		e, _ := testEngine(t, 3, Policy{})
		if err := e.Start(ctx); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		if got := len(e.Order()); got != 3 {
			t.Fatalf("expected 3 photos, got %d", got)
		}
	})

	t.Run("ShuffleControlsOrder", func(t *testing.T) {
		e, _ := testEngine(t, 3, Policy{})
		e.SetShuffle(func(ids []string) {
			for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
				ids[i], ids[j] = ids[j], ids[i]
			}
		})
		if err := e.Start(ctx); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		order := e.Order()
		if order[0] != "p3" || order[2] != "p1" {
			t.Errorf("injected shuffle ignored: %v", order)
		}
	})

	t.Run("RejectedWhileRunning", func(t *testing.T) {
		e, _ := testEngine(t, 3, Policy{})
		if err := e.Start(ctx); err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		if err := e.Start(ctx); err != ErrRunning {
			t.Fatalf("expected ErrRunning, got %v", err)
		}
	})
}

func TestSubmit_FullRun(t *testing.T) {
	ctx := context.Background()
	questions := []string{"Who is in this photo?", "What did you do that day?"}
	e, st := testEngine(t, 2, Policy{MaxPhotos: 2, Questions: questions})

	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	answers := []string{"My brother", "", "Nobody", "We went swimming"}
	for i, a := range answers {
		if !e.Running() {
			t.Fatalf("session ended early at step %d", i)
		}
		if err := e.Submit(ctx, a); err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
	}

	if e.Running() {
		t.Fatal("session should be complete")
	}

	sessions, _ := st.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 persisted session, got %d", len(sessions))
	}
	entries := sessions[0].Entries
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].PhotoID != "p1" || entries[0].Question != questions[0] || entries[0].Answer != "My brother" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Answer != "(no answer)" {
		t.Errorf("empty answer should default, got %q", entries[1].Answer)
	}
	if entries[2].PhotoID != "p2" || entries[2].Question != questions[0] {
		t.Errorf("photo advance broken: %+v", entries[2])
	}

	t.Run("CommentsAppended", func(t *testing.T) {
		photos, _ := st.Photos()
		var p1 album.Photo
		for _, p := range photos {
			if p.ID == "p1" {
				p1 = p
			}
		}
		if len(p1.Comments) != 2 {
			t.Fatalf("expected 2 coach comments, got %v", p1.Comments)
		}
		want := "Coach: Who is in this photo? -> My brother"
		if p1.Comments[0] != want {
			t.Errorf("expected %q, got %q", want, p1.Comments[0])
		}
	})

	t.Run("ResponsesSurviveCompletion", func(t *testing.T) {
		if got := len(e.Responses()); got != 4 {
			t.Errorf("transcript gone after completion: %d entries", got)
		}
	})

	t.Run("RestartClearsResponses", func(t *testing.T) {
		if err := e.Start(ctx); err != nil {
			t.Fatalf("restart failed: %v", err)
		}
		if got := len(e.Responses()); got != 0 {
			t.Errorf("expected fresh transcript, got %d entries", got)
		}
	})
}

func TestSkip(t *testing.T) {
	ctx := context.Background()
	e, st := testEngine(t, 2, Policy{MaxPhotos: 2, Questions: []string{"Q1", "Q2"}})

	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := e.Skip(ctx); err != nil {
			t.Fatalf("Skip %d failed: %v", i, err)
		}
	}
	if e.Running() {
		t.Fatal("session should be complete")
	}

	sessions, _ := st.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 persisted session, got %d", len(sessions))
	}
	if len(sessions[0].Entries) != 0 {
		t.Errorf("skipped steps must not record entries: %+v", sessions[0].Entries)
	}
	photos, _ := st.Photos()
	for _, p := range photos {
		if len(p.Comments) != 0 {
			t.Errorf("skip added comments to %s: %v", p.ID, p.Comments)
		}
	}
}

func TestIdleOperations(t *testing.T) {
	ctx := context.Background()
	e, _ := testEngine(t, 2, Policy{})

	if err := e.Submit(ctx, "hello"); err != ErrNotRunning {
		t.Errorf("Submit: expected ErrNotRunning, got %v", err)
	}
	if err := e.Skip(ctx); err != ErrNotRunning {
		t.Errorf("Skip: expected ErrNotRunning, got %v", err)
	}
	if _, err := e.Hint(); err != ErrNotRunning {
		t.Errorf("Hint: expected ErrNotRunning, got %v", err)
	}
	if err := e.DontRemember(ctx); err != ErrNotRunning {
		t.Errorf("DontRemember: expected ErrNotRunning, got %v", err)
	}
	if err := e.RemindLater("in 2 hours"); err != ErrNotRunning {
		t.Errorf("RemindLater: expected ErrNotRunning, got %v", err)
	}
	if _, ok := e.CurrentPhoto(); ok {
		t.Error("CurrentPhoto should report nothing while idle")
	}
	if q := e.CurrentQuestion(); q != "" {
		t.Errorf("CurrentQuestion should be empty while idle, got %q", q)
	}
}

func TestHint(t *testing.T) {
	ctx := context.Background()
	e, _ := testEngine(t, 1, Policy{Questions: []string{"Q1", "Q2"}})
	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Title is "Photo 1", 7 runes.
	for i, want := range []string{"P", "Ph", "Pho"} {
		hint, err := e.Hint()
		if err != nil {
			t.Fatalf("Hint %d failed: %v", i, err)
		}
		if hint != want {
			t.Errorf("hint %d: expected %q, got %q", i, want, hint)
		}
	}

	t.Run("CappedAtFullTitle", func(t *testing.T) {
		var last string
		for i := 0; i < 20; i++ {
			last, _ = e.Hint()
		}
		if last != "Photo 1" {
			t.Errorf("expected full title, got %q", last)
		}
	})

	t.Run("ResetsOnAdvance", func(t *testing.T) {
		if err := e.Skip(ctx); err != nil {
			t.Fatalf("Skip failed: %v", err)
		}
		hint, err := e.Hint()
		if err != nil {
			t.Fatalf("Hint failed: %v", err)
		}
		if hint != "P" {
			t.Errorf("hint level should reset, got %q", hint)
		}
	})
}

func TestRemindFlow(t *testing.T) {
	ctx := context.Background()
	e, st := testEngine(t, 1, Policy{Questions: []string{"Q1", "Q2"}})
	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if e.RemindOffered() {
		t.Fatal("remind option should start locked")
	}
	if err := e.DontRemember(ctx); err != nil {
		t.Fatalf("DontRemember failed: %v", err)
	}
	if !e.RemindOffered() {
		t.Fatal("remind option should be unlocked")
	}

	if err := e.RemindLater("in 2 hours"); err != nil {
		t.Fatalf("RemindLater failed: %v", err)
	}
	reminders, _ := st.Reminders()
	if len(reminders) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(reminders))
	}
	r := reminders[0]
	if r.Note != "in 2 hours" {
		t.Errorf("note lost: %q", r.Note)
	}
	if r.TimeISO == "" {
		t.Error("parseable note should carry an absolute timestamp")
	}
	want := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if r.TimeISO != want {
		t.Errorf("expected %s, got %s", want, r.TimeISO)
	}
	if r.Photo == nil || r.Photo.ID != "p1" {
		t.Errorf("reminder should reference the current photo: %+v", r.Photo)
	}

	t.Run("UnparseableNoteKeepsLabel", func(t *testing.T) {
		if err := e.RemindLater("when we meet again"); err != nil {
			t.Fatalf("RemindLater failed: %v", err)
		}
		reminders, _ := st.Reminders()
		r := reminders[0]
		if r.TimeISO != "" || r.TimeLabel != "when we meet again" {
			t.Errorf("unexpected reminder: %+v", r)
		}
	})

	t.Run("OfferResetsOnAdvance", func(t *testing.T) {
		if err := e.Skip(ctx); err != nil {
			t.Fatalf("Skip failed: %v", err)
		}
		if e.RemindOffered() {
			t.Error("remind option should relock after advancing")
		}
	})
}

func TestProgress(t *testing.T) {
	ctx := context.Background()
	e, _ := testEngine(t, 2, Policy{MaxPhotos: 2, Questions: []string{"Q1", "Q2"}})
	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	photo, photos, q, qs := e.Progress()
	if photo != 1 || photos != 2 || q != 1 || qs != 2 {
		t.Fatalf("unexpected initial progress: %d/%d %d/%d", photo, photos, q, qs)
	}
	if err := e.Submit(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if photo, _, q, _ = e.Progress(); photo != 1 || q != 2 {
		t.Errorf("expected photo 1 question 2, got photo %d question %d", photo, q)
	}
	if err := e.Submit(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	if photo, _, q, _ = e.Progress(); photo != 2 || q != 1 {
		t.Errorf("expected photo 2 question 1, got photo %d question %d", photo, q)
	}
}

func TestEvents_FullRunSequence(t *testing.T) {
	ctx := context.Background()
	e, _ := testEngine(t, 1, Policy{Questions: []string{"Q1", "Q2"}})

	var mu sync.Mutex
	var types []EventType
	e.Events().SubscribeAll(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		types = append(types, ev.Type)
	})

	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := e.Submit(ctx, "answer one"); err != nil {
		t.Fatal(err)
	}
	if err := e.Skip(ctx); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []EventType{
		EventSessionStarted,
		EventQuestionAsked,
		EventAnswerRecorded,
		EventQuestionAsked,
		EventStepSkipped,
		EventSessionComplete,
	}
	if len(types) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], types[i])
		}
	}
}

// captureSynth records narration for assertions.
type captureSynth struct {
	mu    sync.Mutex
	lines []string
}

func (s *captureSynth) Speak(ctx context.Context, text string, opts speech.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
	return nil
}

func (s *captureSynth) Cancel() {}

func (s *captureSynth) spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

func TestNarration(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage(sessionPhotos(1)...)
	photos, err := album.Load(st, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	voice := &captureSynth{}
	e := New(photos, st, voice, nil, Policy{Questions: []string{"Who is in this photo?"}, PaceDelay: 0})
	e.SetShuffle(func([]string) {})

	if err := e.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	lines := voice.spoken()
	if len(lines) < 2 {
		t.Fatalf("expected welcome plus question, got %v", lines)
	}
	if !strings.Contains(lines[1], "Photo 1") || !strings.Contains(lines[1], "Who is in this photo?") {
		t.Errorf("question narration missing photo or question: %q", lines[1])
	}
}
