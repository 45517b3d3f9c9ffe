// Package input connects the remap engine to Linux evdev devices: it opens
// and grabs the physical keyboard, mirrors its capabilities onto a uinput
// device and runs the read-translate-write loop.
package input

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/holoplot/go-evdev"
)

// VirtualDeviceName is the name of the uinput device we create. A physical
// device reporting this name is our own output and must not be grabbed.
const VirtualDeviceName = "Virtual Dvorak Keyboard"

// VirtualMouseName is the uinput device of the autoclicker.
const VirtualMouseName = "Virtual Autoclick Mouse"

// DefaultGrabDelay lets keys that are down at startup (typically Enter from
// the launching shell) be released before the grab; grabbing mid-press
// leaves the key stuck in the compositor.
const DefaultGrabDelay = 200 * time.Millisecond

var (
	ErrSelfDevice = errors.New("device is our own virtual keyboard")
	ErrNoMatch    = errors.New("not a matching device")
)

// Source yields input events.
type Source interface {
	ReadOne() (*evdev.InputEvent, error)
}

// Sink accepts output events.
type Sink interface {
	WriteOne(event *evdev.InputEvent) error
}

// OpenOptions selects and prepares the physical device.
type OpenOptions struct {
	Path string
	// Self is the name of our own output device, which is refused.
	// Defaults to VirtualDeviceName.
	Self string
	// Match lists words of which at least one must occur in the device
	// name (case-insensitive). Entries may hold several space separated
	// words. Empty accepts any device.
	Match     []string
	GrabDelay time.Duration
}

// Physical is an opened and grabbed keyboard.
type Physical struct {
	*evdev.InputDevice
	Name string
}

// OpenPhysical opens the device at opts.Path, checks its name and grabs it
// for exclusive access.
func OpenPhysical(opts OpenOptions, logger *slog.Logger) (*Physical, error) {
	d, err := evdev.Open(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open device [%s]: %w", opts.Path, err)
	}

	name, err := d.Name()
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("cannot get device name [%s]: %w", opts.Path, err)
	}

	self := opts.Self
	if self == "" {
		self = VirtualDeviceName
	}
	if strings.EqualFold(strings.TrimSpace(name), self) {
		_ = d.Close()
		return nil, fmt.Errorf("%w: %s", ErrSelfDevice, name)
	}

	if !MatchName(name, opts.Match) {
		_ = d.Close()
		return nil, fmt.Errorf("%w: [%s] does not match these words: [%s]", ErrNoMatch, name, strings.Join(opts.Match, " "))
	}
	logger.Info("found input", "name", name, "path", opts.Path)

	if opts.GrabDelay > 0 {
		time.Sleep(opts.GrabDelay)
	}
	if err := d.Grab(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("cannot grab device [%s]: %w", name, err)
	}

	return &Physical{InputDevice: d, Name: name}, nil
}

// Release ungrabs and closes the device.
func (p *Physical) Release() error {
	return errors.Join(p.Ungrab(), p.Close())
}

// MatchName reports whether any word in match occurs in name, ignoring case.
func MatchName(name string, match []string) bool {
	var words []string
	for _, m := range match {
		words = append(words, strings.Fields(m)...)
	}
	if len(words) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, w := range words {
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
