package layout

import "github.com/holoplot/go-evdev"

// Qwerty translates the physical key of a Dvorak typist into the code the
// host's Dvorak keymap turns back into the QWERTY character at that
// position. Used for modifier chords only.
var Qwerty = newTable(IDQwerty, map[evdev.EvCode]evdev.EvCode{
	evdev.KEY_MINUS:      evdev.KEY_APOSTROPHE,
	evdev.KEY_EQUAL:      evdev.KEY_RIGHTBRACE,
	evdev.KEY_Q:          evdev.KEY_X,
	evdev.KEY_W:          evdev.KEY_COMMA,
	evdev.KEY_E:          evdev.KEY_D,
	evdev.KEY_R:          evdev.KEY_O,
	evdev.KEY_T:          evdev.KEY_K,
	evdev.KEY_Y:          evdev.KEY_T,
	evdev.KEY_U:          evdev.KEY_F,
	evdev.KEY_I:          evdev.KEY_G,
	evdev.KEY_O:          evdev.KEY_S,
	evdev.KEY_P:          evdev.KEY_R,
	evdev.KEY_LEFTBRACE:  evdev.KEY_MINUS,
	evdev.KEY_RIGHTBRACE: evdev.KEY_EQUAL,
	evdev.KEY_A:          evdev.KEY_A,
	evdev.KEY_S:          evdev.KEY_SEMICOLON,
	evdev.KEY_D:          evdev.KEY_H,
	evdev.KEY_F:          evdev.KEY_Y,
	evdev.KEY_G:          evdev.KEY_U,
	evdev.KEY_H:          evdev.KEY_J,
	evdev.KEY_J:          evdev.KEY_C,
	evdev.KEY_K:          evdev.KEY_V,
	evdev.KEY_L:          evdev.KEY_P,
	evdev.KEY_SEMICOLON:  evdev.KEY_Z,
	evdev.KEY_APOSTROPHE: evdev.KEY_Q,
	evdev.KEY_Z:          evdev.KEY_SLASH,
	evdev.KEY_X:          evdev.KEY_B,
	evdev.KEY_C:          evdev.KEY_I,
	evdev.KEY_V:          evdev.KEY_DOT,
	evdev.KEY_B:          evdev.KEY_N,
	evdev.KEY_N:          evdev.KEY_L,
	evdev.KEY_M:          evdev.KEY_M,
	evdev.KEY_COMMA:      evdev.KEY_W,
	evdev.KEY_DOT:        evdev.KEY_E,
	evdev.KEY_SLASH:      evdev.KEY_LEFTBRACE,
})

// Umlaut swaps the AltGr positions of the international Dvorak layout so
// that AltGr+a/o/u style umlauts land on the home row.
var Umlaut = newTable(IDUmlaut, map[evdev.EvCode]evdev.EvCode{
	evdev.KEY_A: evdev.KEY_X,
	evdev.KEY_X: evdev.KEY_A,
	evdev.KEY_S: evdev.KEY_R,
	evdev.KEY_R: evdev.KEY_S,
	evdev.KEY_F: evdev.KEY_T,
	evdev.KEY_T: evdev.KEY_F,
})
