package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/holoplot/go-evdev"
	"golang.org/x/sys/unix"

	dlog "github.com/tbocek/dvorak/internal/log"
)

// Handler turns one input event into zero or more output events appended
// to out. *remap.Engine implements it.
type Handler interface {
	Handle(ev *evdev.InputEvent, out []evdev.InputEvent) []evdev.InputEvent
}

// Recorder observes loop traffic.
type Recorder interface {
	EventRead(ev *evdev.InputEvent)
	EventWritten(ev *evdev.InputEvent)
	WriteFailed()
}

type nopRecorder struct{}

func (nopRecorder) EventRead(*evdev.InputEvent)    {}
func (nopRecorder) EventWritten(*evdev.InputEvent) {}
func (nopRecorder) WriteFailed()                   {}

// Loop pumps events from Source through Handler into Sink.
type Loop struct {
	Source  Source
	Sink    Sink
	Handler Handler
	Logger  *slog.Logger
	Events  dlog.EventLogger
	Stats   Recorder
}

// Run reads until the source fails or ctx is cancelled. The context is
// checked once per event; a read that never returns keeps Run blocked.
// Interrupted reads are retried and write failures are logged and skipped.
// A nil error means ctx was cancelled.
func (l *Loop) Run(ctx context.Context) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stats := l.Stats
	if stats == nil {
		stats = nopRecorder{}
	}

	var out []evdev.InputEvent
	for {
		if ctx.Err() != nil {
			return nil
		}

		ev, err := l.Source.ReadOne()
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("cannot read event: %w", err)
		}
		stats.EventRead(ev)
		if l.Events != nil {
			l.Events.Log(true, ev)
		}

		out = l.Handler.Handle(ev, out[:0])
		for i := range out {
			if l.Events != nil {
				l.Events.Log(false, &out[i])
			}
			if err := l.Sink.WriteOne(&out[i]); err != nil {
				stats.WriteFailed()
				logger.Error("Cannot write to device", "error", err,
					"type", evdev.TypeName(out[i].Type), "code", evdev.CodeName(out[i].Type, out[i].Code))
				continue
			}
			stats.EventWritten(&out[i])
		}
	}
}
