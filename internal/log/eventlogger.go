package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"
)

// EventLogger traces individual input events.
type EventLogger interface {
	// Log writes one event. in=true for events read from the physical
	// device, in=false for events written to the virtual device.
	Log(in bool, ev *evdev.InputEvent)
}

type eventLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewEventLogger creates an EventLogger. A nil writer gives a no-op logger.
func NewEventLogger(w io.Writer) EventLogger {
	return &eventLogger{w: w, now: time.Now}
}

// Log emits a single line with wall time, direction and the decoded event.
func (l *eventLogger) Log(in bool, ev *evdev.InputEvent) {
	if l.w == nil || ev == nil {
		return
	}

	dir := "out"
	if in {
		dir = " in"
	}

	line := fmt.Sprintf("%s %s %s %s value=%d\n",
		l.now().Format("2006/01/02 15:04:05.000000"),
		dir,
		evdev.TypeName(ev.Type),
		evdev.CodeName(ev.Type, ev.Code),
		ev.Value)

	l.mu.Lock()
	_, _ = io.WriteString(l.w, line)
	l.mu.Unlock()
}
