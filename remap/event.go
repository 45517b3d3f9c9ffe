// Package remap implements the chord-aware key translation engine.
//
// An Engine consumes raw input events one at a time and produces the events
// to write to the virtual device. It owns all tracked state (held modifiers,
// in-flight translations and the on/off toggle) and is not safe for
// concurrent use: the event loop is its only caller.
package remap

import "github.com/holoplot/go-evdev"

// Key event values as reported by the kernel.
const (
	Released int32 = 0
	Pressed  int32 = 1
	Repeated int32 = 2
)

// ValueName returns a short name for a key event value.
func ValueName(v int32) string {
	switch v {
	case Released:
		return "released"
	case Pressed:
		return "pressed"
	case Repeated:
		return "repeated"
	}
	return "unknown"
}

// KeyEvent builds an EV_KEY event with a zero timestamp.
func KeyEvent(code evdev.EvCode, value int32) evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

// SyncEvent builds the SYN_REPORT boundary event.
func SyncEvent() evdev.InputEvent {
	return evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}
}

func isKeyTransition(ev *evdev.InputEvent) bool {
	return ev.Type == evdev.EV_KEY && ev.Value >= Released && ev.Value <= Repeated
}

func withCode(ev *evdev.InputEvent, code evdev.EvCode) evdev.InputEvent {
	out := *ev
	out.Code = code
	return out
}
