package remap_test

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/tbocek/dvorak/remap"
)

func TestModifierTracker(t *testing.T) {
	m := remap.NewModifierTracker(false)

	m.Update(evdev.KEY_LEFTCTRL, remap.Pressed)
	m.Update(evdev.KEY_LEFTMETA, remap.Pressed)
	assert.Equal(t, remap.ModLeftCtrl|remap.ModLeftMeta, m.Chord())

	m.Update(evdev.KEY_LEFTCTRL, remap.Repeated)
	assert.True(t, m.Has(remap.ModLeftCtrl), "repeat keeps the bit set")

	m.Update(evdev.KEY_LEFTCTRL, remap.Released)
	assert.Equal(t, remap.ModLeftMeta, m.Chord())

	m.Update(evdev.KEY_J, remap.Pressed)
	assert.Equal(t, remap.ModLeftMeta, m.Chord(), "ordinary keys are ignored")

	m.Update(evdev.KEY_RIGHTSHIFT, remap.Pressed)
	m.Update(evdev.KEY_RIGHTALT, remap.Pressed)
	assert.True(t, m.Shift())
	assert.True(t, m.AltGr())
	assert.Equal(t, remap.ModLeftMeta, m.Chord(), "level keys never count as chord modifiers")

	m.Update(evdev.KEY_CAPSLOCK, remap.Pressed)
	assert.True(t, m.Has(remap.ModCapsLock))
}

func TestModifierTrackerWithoutCapsLock(t *testing.T) {
	m := remap.NewModifierTracker(true)
	assert.Zero(t, m.Bit(evdev.KEY_CAPSLOCK))

	m.Update(evdev.KEY_CAPSLOCK, remap.Pressed)
	assert.Zero(t, m.Mask())
}
