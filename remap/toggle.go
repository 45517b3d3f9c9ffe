package remap

import "github.com/holoplot/go-evdev"

// ToggleTaps is the number of uninterrupted presses that flip the mapping.
const ToggleTaps = 3

// Toggle counts rapid presses of one key to switch mapping on and off.
//
// A press of the toggle key counts, its release is neutral (a tap is a
// press and a release), and anything else on the keyboard, including a
// key repeat of the toggle key itself, starts the count over.
type Toggle struct {
	key      evdev.EvCode
	taps     int
	enabled  bool
	disabled bool
}

// NewToggle returns a toggle bound to key with mapping enabled. A disabled
// toggle never counts and never flips.
func NewToggle(key evdev.EvCode, disabled bool) *Toggle {
	return &Toggle{key: key, enabled: true, disabled: disabled}
}

// Feed observes one event and reports whether the mapping flag flipped.
func (t *Toggle) Feed(ev *evdev.InputEvent) bool {
	if t.disabled || ev.Type != evdev.EV_KEY {
		return false
	}
	if ev.Code != t.key {
		t.taps = 0
		return false
	}
	switch ev.Value {
	case Pressed:
		t.taps++
		if t.taps >= ToggleTaps {
			t.taps = 0
			t.enabled = !t.enabled
			return true
		}
	case Released:
	default:
		t.taps = 0
	}
	return false
}

// Enabled reports whether mapping is on.
func (t *Toggle) Enabled() bool { return t.enabled }

// Taps returns the current consecutive press count.
func (t *Toggle) Taps() int { return t.taps }
