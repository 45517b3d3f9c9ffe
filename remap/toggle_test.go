package remap_test

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/tbocek/dvorak/remap"
)

func tap(code evdev.EvCode) []evdev.InputEvent {
	return []evdev.InputEvent{
		remap.KeyEvent(code, remap.Pressed),
		remap.KeyEvent(code, remap.Released),
	}
}

func TestToggle(t *testing.T) {
	type testCase struct {
		name     string
		disabled bool
		events   []evdev.InputEvent
		flips    int
		enabled  bool
	}

	alt := evdev.EvCode(evdev.KEY_LEFTALT)
	seq := func(parts ...[]evdev.InputEvent) []evdev.InputEvent {
		var out []evdev.InputEvent
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}

	testCases := []testCase{
		{
			name:    "three taps flip",
			events:  seq(tap(alt), tap(alt), tap(alt)),
			flips:   1,
			enabled: false,
		},
		{
			name:    "three presses without releases flip",
			events:  seq([]evdev.InputEvent{remap.KeyEvent(alt, remap.Pressed), remap.KeyEvent(alt, remap.Pressed), remap.KeyEvent(alt, remap.Pressed)}),
			flips:   1,
			enabled: false,
		},
		{
			name:    "two taps do nothing",
			events:  seq(tap(alt), tap(alt)),
			enabled: true,
		},
		{
			name:    "other key interrupts",
			events:  seq(tap(alt), tap(alt), tap(evdev.KEY_J), tap(alt)),
			enabled: true,
		},
		{
			name:    "fresh taps after interruption",
			events:  seq(tap(alt), tap(alt), tap(evdev.KEY_J), tap(alt), tap(alt), tap(alt)),
			flips:   1,
			enabled: false,
		},
		{
			name:    "repeat of toggle key interrupts",
			events:  seq(tap(alt), tap(alt), []evdev.InputEvent{remap.KeyEvent(alt, remap.Repeated)}, tap(alt)),
			enabled: true,
		},
		{
			name: "non key events are ignored",
			events: seq(tap(alt), []evdev.InputEvent{
				remap.SyncEvent(),
				{Type: evdev.EV_MSC, Code: evdev.MSC_SCAN, Value: 0x700e2},
			}, tap(alt), tap(alt)),
			flips:   1,
			enabled: false,
		},
		{
			name:    "six taps flip back",
			events:  seq(tap(alt), tap(alt), tap(alt), tap(alt), tap(alt), tap(alt)),
			flips:   2,
			enabled: true,
		},
		{
			name:     "disabled toggle never flips",
			disabled: true,
			events:   seq(tap(alt), tap(alt), tap(alt)),
			enabled:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tg := remap.NewToggle(alt, tc.disabled)
			flips := 0
			for i := range tc.events {
				if tg.Feed(&tc.events[i]) {
					flips++
				}
			}
			assert.Equal(t, tc.flips, flips)
			assert.Equal(t, tc.enabled, tg.Enabled())
		})
	}
}

func TestToggleCountResets(t *testing.T) {
	tg := remap.NewToggle(evdev.KEY_LEFTALT, false)
	press := remap.KeyEvent(evdev.KEY_LEFTALT, remap.Pressed)
	other := remap.KeyEvent(evdev.KEY_J, remap.Released)

	tg.Feed(&press)
	tg.Feed(&press)
	assert.Equal(t, 2, tg.Taps())
	tg.Feed(&other)
	assert.Equal(t, 0, tg.Taps())
	tg.Feed(&press)
	tg.Feed(&press)
	tg.Feed(&press)
	assert.Equal(t, 0, tg.Taps(), "count resets after a flip")
	assert.False(t, tg.Enabled())
}
