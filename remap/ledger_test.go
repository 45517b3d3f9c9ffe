package remap_test

import (
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"

	"github.com/tbocek/dvorak/remap"
)

func TestLedger(t *testing.T) {
	l := remap.NewLedger(3)
	assert.Equal(t, 3, l.Cap())
	assert.Equal(t, 0, l.Len())

	assert.True(t, l.Insert(evdev.KEY_C))
	assert.True(t, l.Insert(evdev.KEY_V))
	assert.True(t, l.Insert(evdev.KEY_C), "duplicate insert keeps a single entry")
	assert.Equal(t, 2, l.Len())

	assert.True(t, l.Insert(evdev.KEY_X))
	assert.Equal(t, l.Cap(), l.Len())
	assert.False(t, l.Insert(evdev.KEY_Z), "full ledger refuses new codes")
	assert.False(t, l.Contains(evdev.KEY_Z))

	assert.True(t, l.FindAndClear(evdev.KEY_V))
	assert.False(t, l.FindAndClear(evdev.KEY_V), "a code is cleared once")
	assert.False(t, l.Contains(evdev.KEY_V))
	assert.ElementsMatch(t, []evdev.EvCode{evdev.KEY_C, evdev.KEY_X}, l.Codes())

	assert.True(t, l.Insert(evdev.KEY_Z), "freed slot is reused")
	assert.True(t, l.Contains(evdev.KEY_Z))

	for _, c := range l.Codes() {
		assert.True(t, l.FindAndClear(c))
	}
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Codes())
}

func TestLedgerReservedCode(t *testing.T) {
	l := remap.NewLedger(2)
	assert.False(t, l.Insert(evdev.KEY_RESERVED))
	assert.False(t, l.Contains(evdev.KEY_RESERVED))
	assert.False(t, l.FindAndClear(evdev.KEY_RESERVED))
}

func TestLedgerDefaultCapacity(t *testing.T) {
	assert.Equal(t, remap.DefaultLedgerCapacity, remap.NewLedger(0).Cap())
}
