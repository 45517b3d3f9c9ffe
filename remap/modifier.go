package remap

import "github.com/holoplot/go-evdev"

// ModifierMask has one bit per tracked modifier key.
type ModifierMask uint8

// Chord modifiers arm the primary table.
const (
	ModLeftCtrl  ModifierMask = 1 << 0
	ModRightCtrl ModifierMask = 1 << 1
	ModLeftAlt   ModifierMask = 1 << 2
	ModLeftMeta  ModifierMask = 1 << 3
	ModCapsLock  ModifierMask = 1 << 4
)

// Level keys select characters rather than shortcuts. They are tracked for
// the diacritic layer but never arm the primary table.
const (
	ModLeftShift  ModifierMask = 1 << 5
	ModRightShift ModifierMask = 1 << 6
	ModRightAlt   ModifierMask = 1 << 7

	chordMask = ModLeftCtrl | ModRightCtrl | ModLeftAlt | ModLeftMeta | ModCapsLock
	shiftMask = ModLeftShift | ModRightShift
)

// ModifierTracker keeps the set of currently held modifier keys.
type ModifierTracker struct {
	mask   ModifierMask
	noCaps bool
}

// NewModifierTracker returns an empty tracker. With disableCapsLock set,
// Caps Lock is treated as an ordinary key.
func NewModifierTracker(disableCapsLock bool) *ModifierTracker {
	return &ModifierTracker{noCaps: disableCapsLock}
}

// Bit returns the mask bit for code, or 0 if code is not a modifier.
func (m *ModifierTracker) Bit(code evdev.EvCode) ModifierMask {
	switch code {
	case evdev.KEY_LEFTCTRL:
		return ModLeftCtrl
	case evdev.KEY_RIGHTCTRL:
		return ModRightCtrl
	case evdev.KEY_LEFTALT:
		return ModLeftAlt
	case evdev.KEY_LEFTMETA:
		return ModLeftMeta
	case evdev.KEY_CAPSLOCK:
		if m.noCaps {
			return 0
		}
		return ModCapsLock
	case evdev.KEY_LEFTSHIFT:
		return ModLeftShift
	case evdev.KEY_RIGHTSHIFT:
		return ModRightShift
	case evdev.KEY_RIGHTALT:
		return ModRightAlt
	}
	return 0
}

// Update applies one key transition.
func (m *ModifierTracker) Update(code evdev.EvCode, value int32) {
	bit := m.Bit(code)
	if bit == 0 {
		return
	}
	switch value {
	case Pressed, Repeated:
		m.mask |= bit
	case Released:
		m.mask &^= bit
	}
}

// Mask returns every held modifier bit.
func (m *ModifierTracker) Mask() ModifierMask { return m.mask }

// Chord returns the held chord modifiers only.
func (m *ModifierTracker) Chord() ModifierMask { return m.mask & chordMask }

// Has reports whether any of bits is held.
func (m *ModifierTracker) Has(bits ModifierMask) bool { return m.mask&bits != 0 }

// Shift reports whether either shift key is held.
func (m *ModifierTracker) Shift() bool { return m.Has(shiftMask) }

// AltGr reports whether the right alt key is held.
func (m *ModifierTracker) AltGr() bool { return m.Has(ModRightAlt) }
