package speech

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Device is the low-level synthesis capability: it can utter one piece of
// text with one voice. The Engine layers voice selection, delivery pacing
// and cancellation on top.
type Device interface {
	Utter(ctx context.Context, text string, voice Voice, opts Options) error
	Voices() []Voice
}

// Engine is the single Synthesizer implementation. Starting a new utterance
// cancels any pending one, so at most one is audible at a time.
type Engine struct {
	mu     sync.Mutex
	device Device
	cancel context.CancelFunc
}

// NewEngine wraps a device. A nil device degrades every Speak to a no-op.
func NewEngine(device Device) *Engine {
	return &Engine{device: device}
}

// Speak delivers text according to opts.Delivery. It returns when the
// utterance finishes, is cancelled, or the context ends.
func (e *Engine) Speak(ctx context.Context, text string, opts Options) error {
	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	if e.device == nil {
		e.mu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	device := e.device
	e.mu.Unlock()
	defer cancel()

	voice, _ := PickVoice(device.Voices(), opts.PreferredGender, opts.Language)

	switch opts.Delivery {
	case DeliveryWordByWord:
		return e.speakPieces(ctx, device, SplitWords(text), voice, opts, opts.WordPauseMs)
	case DeliveryChunked:
		return e.speakPieces(ctx, device, SplitSentences(text), voice, opts, opts.ChunkPauseMs)
	default:
		return device.Utter(ctx, text, voice, opts)
	}
}

func (e *Engine) speakPieces(ctx context.Context, device Device, pieces []string, voice Voice, opts Options, pauseMs int) error {
	pause := time.Duration(pauseMs) * time.Millisecond
	for i, piece := range pieces {
		if err := device.Utter(ctx, piece, voice, opts); err != nil {
			return err
		}
		if i == len(pieces)-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
	}
	return nil
}

// Cancel stops the in-flight utterance, if any.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// WriterDevice narrates to a writer. It is the terminal stand-in for an
// audio backend and keeps the coach usable where no synthesis engine is
// installed.
type WriterDevice struct {
	Out io.Writer
}

func (d WriterDevice) Utter(ctx context.Context, text string, voice Voice, opts Options) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	_, err := fmt.Fprintf(d.Out, "🔈 %s\n", text)
	return err
}

func (d WriterDevice) Voices() []Voice {
	return []Voice{{Name: "console", Language: "en-US"}}
}
