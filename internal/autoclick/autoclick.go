// Package autoclick repeats left clicks after a long press.
//
// Holding the button longer than Options.Hold and releasing it starts a
// click loop on its own goroutine; the next press of the button stops it.
package autoclick

import (
	"log/slog"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"
)

const (
	DefaultHold     = 3 * time.Second
	DefaultInterval = 100 * time.Millisecond
)

// Writer receives synthesized clicks. It must be safe for concurrent use
// with the event loop writing to the same device.
type Writer interface {
	WriteOne(ev *evdev.InputEvent) error
}

type Options struct {
	Button   evdev.EvCode
	Hold     time.Duration
	Interval time.Duration
	// OnChange is called when the click loop starts or stops.
	OnChange func(active bool)
}

type Clicker struct {
	w      Writer
	opts   Options
	logger *slog.Logger
	now    func() time.Time

	pressedAt time.Time

	mu     sync.Mutex
	active bool
	stop   chan struct{}
	done   chan struct{}
}

func New(w Writer, opts Options, logger *slog.Logger) *Clicker {
	if opts.Button == 0 {
		opts.Button = evdev.BTN_LEFT
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Clicker{w: w, opts: opts, logger: logger, now: time.Now}
}

// Handle observes ev and forwards it unchanged. It lets a Clicker sit in the
// event loop in place of the remap engine.
func (c *Clicker) Handle(ev *evdev.InputEvent, out []evdev.InputEvent) []evdev.InputEvent {
	c.Observe(ev)
	return append(out, *ev)
}

// Observe tracks presses of the click button. Only the event loop calls it.
func (c *Clicker) Observe(ev *evdev.InputEvent) {
	if ev.Type != evdev.EV_KEY || ev.Code != c.opts.Button {
		return
	}
	switch ev.Value {
	case 1:
		c.pressedAt = c.now()
		c.Stop()
	case 0:
		if !c.pressedAt.IsZero() && c.now().Sub(c.pressedAt) > c.opts.Hold {
			c.start()
		}
	}
}

// Active reports whether the click loop runs.
func (c *Clicker) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Stop ends the click loop and waits for its final release.
func (c *Clicker) Stop() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	c.active = false
	close(c.stop)
	done := c.done
	c.mu.Unlock()

	<-done
	c.logger.Info("autoclick stopped")
	if c.opts.OnChange != nil {
		c.opts.OnChange(false)
	}
}

func (c *Clicker) start() {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return
	}
	c.active = true
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.stop, c.done)
	c.mu.Unlock()

	c.logger.Info("autoclick started", "interval", c.opts.Interval)
	if c.opts.OnChange != nil {
		c.opts.OnChange(true)
	}
}

func (c *Clicker) run(stop, done chan struct{}) {
	defer close(done)
	for {
		c.click(1)
		stopped := sleep(stop, c.opts.Interval)
		c.click(0)
		if stopped || sleep(stop, c.opts.Interval) {
			return
		}
	}
}

func (c *Clicker) click(value int32) {
	evs := [2]evdev.InputEvent{
		{Type: evdev.EV_KEY, Code: c.opts.Button, Value: value},
		{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT},
	}
	for i := range evs {
		if err := c.w.WriteOne(&evs[i]); err != nil {
			c.logger.Error("Cannot write click", "error", err)
			return
		}
	}
}

// sleep waits for d and reports whether stop was closed meanwhile.
func sleep(stop <-chan struct{}, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-stop:
		return true
	case <-t.C:
		return false
	}
}
