// Package speech defines the text-to-speech and speech-to-text ports used
// by the coach. The platform engines live behind small interfaces so the
// session logic never depends on a capability being present.
package speech

import "context"

// Delivery selects the pacing strategy for synthesized output.
type Delivery string

const (
	// DeliverySingle speaks the whole utterance at once.
	DeliverySingle Delivery = "single"
	// DeliveryChunked speaks sentence by sentence with short pauses.
	DeliveryChunked Delivery = "chunked"
	// DeliveryWordByWord speaks one word at a time.
	DeliveryWordByWord Delivery = "wordByWord"
)

// Gender preference for voice selection.
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderAny    Gender = "any"
)

// Options configure one utterance.
type Options struct {
	Rate            float64
	Pitch           float64
	Volume          float64
	Language        string
	PreferredGender Gender
	Delivery        Delivery
	// WordPauseMs and ChunkPauseMs pace the non-single delivery modes.
	WordPauseMs  int
	ChunkPauseMs int
}

// DefaultOptions mirrors the tuning the app has always used.
func DefaultOptions() Options {
	return Options{
		Rate:            0.95,
		Pitch:           1.05,
		Volume:          0.95,
		Language:        "en-US",
		PreferredGender: GenderFemale,
		Delivery:        DeliverySingle,
		WordPauseMs:     90,
		ChunkPauseMs:    140,
	}
}

// Synthesizer converts text to spoken audio. Speak cancels any utterance
// still in flight before starting; Cancel is always safe to call.
type Synthesizer interface {
	Speak(ctx context.Context, text string, opts Options) error
	Cancel()
}

// Transcript is one recognition event. Only final transcripts should drive
// state transitions; interim ones are for display.
type Transcript struct {
	Text  string
	Final bool
}

// Recognizer converts spoken audio to text. At most one session is active
// at a time: Listen while active must stop the prior session first, and
// Stop is an idempotent no-op when nothing is running.
type Recognizer interface {
	Listen(ctx context.Context) (<-chan Transcript, error)
	Stop()
}

// NullSynthesizer is the capability-unavailable degradation: every call is
// a silent no-op.
type NullSynthesizer struct{}

func (NullSynthesizer) Speak(ctx context.Context, text string, opts Options) error { return nil }
func (NullSynthesizer) Cancel()                                                    {}

// NullRecognizer never produces transcripts.
type NullRecognizer struct{}

func (NullRecognizer) Listen(ctx context.Context) (<-chan Transcript, error) {
	ch := make(chan Transcript)
	close(ch)
	return ch, nil
}

func (NullRecognizer) Stop() {}
