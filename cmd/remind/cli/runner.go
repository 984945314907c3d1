package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/remind/internal/album"
	"github.com/felixgeelhaar/remind/internal/coach"
	"github.com/felixgeelhaar/remind/internal/observe"
	"github.com/felixgeelhaar/remind/internal/speech"
	"github.com/felixgeelhaar/remind/internal/store"
	"github.com/felixgeelhaar/remind/internal/ui"
	"github.com/felixgeelhaar/remind/internal/ui/tui"
)

type Runner struct {
	Observer *observe.Observer
	Store    store.Storage
	Photos   *album.Collection
	Policy   coach.Policy
	UI       ui.UI
}

func NewRunner(obs *observe.Observer, s store.Storage, photos *album.Collection, policy coach.Policy, u ui.UI) *Runner {
	if u == nil {
		u = ui.SilentUI{}
	}
	return &Runner{
		Observer: obs,
		Store:    s,
		Photos:   photos,
		Policy:   policy,
		UI:       u,
	}
}

func (r *Runner) newEngine() *coach.Engine {
	var voice speech.Synthesizer
	if mute {
		voice = speech.NullSynthesizer{}
	} else {
		voice = speech.NewEngine(speech.WriterDevice{Out: os.Stdout})
	}

	engine := coach.New(r.Photos, r.Store, voice, r.Observer, r.Policy)

	opts := speech.DefaultOptions()
	switch r.resolveDelivery() {
	case "chunked":
		opts.Delivery = speech.DeliveryChunked
	case "wordByWord":
		opts.Delivery = speech.DeliveryWordByWord
	}
	engine.SetSpeechOptions(opts)

	r.wireEvents(engine)
	return engine
}

// resolveDelivery returns the narration pacing for this run. The
// --delivery flag wins; otherwise the speech.delivery config applies.
func (r *Runner) resolveDelivery() string {
	if delivery != "" {
		return delivery
	}
	mode, _ := r.Store.GetConfig("speech.delivery")
	return mode
}

// wireEvents forwards engine events to the UI and the structured log.
func (r *Runner) wireEvents(engine *coach.Engine) {
	bus := engine.Events()

	bus.Subscribe(coach.EventQuestionAsked, func(ev coach.Event) {
		photo, _ := engine.CurrentPhoto()
		title := photo.Title
		if title == "" {
			title = "Memory"
		}
		p, pTotal, q, qTotal := engine.Progress()
		r.UI.ShowQuestion(title, engine.CurrentQuestion(), (p-1)*qTotal+q, pTotal*qTotal)
	})
	bus.Subscribe(coach.EventSessionComplete, func(ev coach.Event) {
		r.UI.UpdateStatus("Session complete")
	})
	bus.SubscribeAll(func(ev coach.Event) {
		r.Observer.Log().Info().
			Str("event", string(ev.Type)).
			Str("sessionID", ev.SessionID).
			Msg("coach event")
	})
}

// Run drives a session from standard input. Plain text answers the current
// question; /skip, /hint, /forgot, /remind <note> and /quit control the
// sub-flows.
func (r *Runner) Run() error {
	ctx := context.Background()
	ctx, span := r.Observer.StartSpan(ctx, "CoachSession")
	defer span.End()

	engine := r.newEngine()

	r.UI.UpdateStatus("Starting session...")
	if err := engine.Start(ctx); err != nil {
		r.Observer.Log().Error().Err(err).Msg("Failed to start session")
		fmt.Println("Cannot start a session: the album is empty.")
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for engine.Running() {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return nil
		case line == "/skip":
			_ = engine.Skip(ctx)
		case line == "/hint":
			if hint, err := engine.Hint(); err == nil {
				photo, _ := engine.CurrentPhoto()
				fmt.Println(hintLine(hint, photo.Title))
			}
		case line == "/forgot":
			_ = engine.DontRemember(ctx)
			if engine.RemindOffered() {
				fmt.Println("Type /remind <when> to be reminded, or answer /skip to move on.")
			}
		case strings.HasPrefix(line, "/remind "):
			note := strings.TrimPrefix(line, "/remind ")
			if err := engine.RemindLater(note); err != nil {
				fmt.Printf("Could not save the reminder: %v\n", err)
			} else {
				fmt.Println("Reminder saved.")
			}
		default:
			_ = engine.Submit(ctx, line)
		}
	}

	r.printSummary(ctx, engine)
	return nil
}

// RunInteractive hands the session to the TUI: the bubbletea model owns
// input and calls the engine; this goroutine only starts the session and
// quits the program when it finishes.
func (r *Runner) RunInteractive(program *tea.Program) error {
	ctx := context.Background()
	engine := r.newEngine()

	engine.Events().Subscribe(coach.EventSessionComplete, func(ev coach.Event) {
		program.Send(tui.SessionDoneMsg{})
	})
	program.Send(tui.SessionReadyMsg{Session: &tuiSession{ctx: ctx, engine: engine}})

	if err := engine.Start(ctx); err != nil {
		r.Observer.Log().Error().Err(err).Msg("Failed to start session")
		program.Quit()
		return err
	}
	return nil
}

func (r *Runner) printSummary(ctx context.Context, engine *coach.Engine) {
	responses := engine.Responses()
	fmt.Printf("\nSession answers (%d):\n", len(responses))
	for _, e := range responses {
		fmt.Printf("  %s: %s\n", e.PhotoTitle, e.Answer)
	}
	fmt.Println(coach.SummarizeSession(ctx, summaryStrategy(r.Store), responses))
}

// hintLine renders a hint, trailing an ellipsis only while part of the
// title is still hidden.
func hintLine(hint, title string) string {
	if hint == title {
		return "Hint: " + hint
	}
	return "Hint: " + hint + "…"
}

// tuiSession adapts the engine to the TUI's session port.
type tuiSession struct {
	ctx    context.Context
	engine *coach.Engine
}

func (t *tuiSession) Submit(answer string) error    { return t.engine.Submit(t.ctx, answer) }
func (t *tuiSession) Skip() error                   { return t.engine.Skip(t.ctx) }
func (t *tuiSession) Hint() (string, error)         { return t.engine.Hint() }
func (t *tuiSession) DontRemember() error           { return t.engine.DontRemember(t.ctx) }
func (t *tuiSession) RemindLater(note string) error { return t.engine.RemindLater(note) }
func (t *tuiSession) Running() bool                 { return t.engine.Running() }

// summaryStrategy picks the configured summarizer: the keyword table by
// default, OpenAI when an API key has been configured.
func summaryStrategy(s store.Storage) coach.SummaryStrategy {
	apiKey, _ := s.GetConfig("openai.api_key")
	if apiKey == "" {
		return coach.KeywordSummary{}
	}
	baseURL, _ := s.GetConfig("openai.base_url")
	model, _ := s.GetConfig("openai.model")
	return coach.NewOpenAISummary(apiKey, baseURL, model)
}
