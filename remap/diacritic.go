package remap

import "github.com/holoplot/go-evdev"

// bracketKeys produce dead-key characters on the international Dvorak
// layout only together with AltGr. The engine synthesizes an AltGr press
// around them so the plain key gives the accent, and releases a held AltGr
// so AltGr+key gives the plain character.
var bracketKeys = []evdev.EvCode{evdev.KEY_Q, evdev.KEY_GRAVE, evdev.KEY_6}

func (e *Engine) bracketApplies(code evdev.EvCode) bool {
	switch code {
	case evdev.KEY_Q, evdev.KEY_GRAVE:
		return true
	case evdev.KEY_6:
		// ^ lives on shift+6.
		return e.mods.Shift()
	}
	return false
}

func (e *Engine) bracketPress(ev *evdev.InputEvent, out []evdev.InputEvent) []evdev.InputEvent {
	if e.mods.AltGr() {
		// Held AltGr is lifted for this key only; a second release later
		// from the physical key is harmless.
		out = append(out, KeyEvent(evdev.KEY_RIGHTALT, Released), SyncEvent())
		return append(out, *ev)
	}
	if e.brackets.Insert(ev.Code) {
		out = append(out, KeyEvent(evdev.KEY_RIGHTALT, Pressed), SyncEvent())
	}
	return append(out, *ev)
}

func (e *Engine) bracketResolve(ev *evdev.InputEvent, out []evdev.InputEvent) []evdev.InputEvent {
	if ev.Value == Released && e.brackets.FindAndClear(ev.Code) {
		out = append(out, KeyEvent(evdev.KEY_RIGHTALT, Released), SyncEvent())
	}
	return append(out, *ev)
}
