package remap

import "github.com/holoplot/go-evdev"

// DefaultLedgerCapacity bounds the number of simultaneously held translated keys.
const DefaultLedgerCapacity = 16

// Ledger is a bounded set of translated codes whose press has been emitted
// and whose release has not. A release resolves through the ledger so it
// always matches the code its press sent downstream.
//
// Slot order carries no meaning. Zero marks a free slot; KEY_RESERVED is
// never a translation target.
type Ledger struct {
	slots []evdev.EvCode
	n     int
}

// NewLedger returns an empty ledger with the given capacity. A capacity
// below one falls back to DefaultLedgerCapacity.
func NewLedger(capacity int) *Ledger {
	if capacity < 1 {
		capacity = DefaultLedgerCapacity
	}
	return &Ledger{slots: make([]evdev.EvCode, capacity)}
}

// Insert records code. It returns false when the ledger is full or when
// code is KEY_RESERVED. Inserting a code that is already present is a no-op
// that returns true.
func (l *Ledger) Insert(code evdev.EvCode) bool {
	if code == evdev.KEY_RESERVED {
		return false
	}
	free := -1
	for i, c := range l.slots {
		if c == code {
			return true
		}
		if c == 0 && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return false
	}
	l.slots[free] = code
	l.n++
	return true
}

// FindAndClear removes code and reports whether it was present.
func (l *Ledger) FindAndClear(code evdev.EvCode) bool {
	if code == evdev.KEY_RESERVED || l.n == 0 {
		return false
	}
	for i, c := range l.slots {
		if c == code {
			l.slots[i] = 0
			l.n--
			return true
		}
	}
	return false
}

// Contains reports whether code is in flight.
func (l *Ledger) Contains(code evdev.EvCode) bool {
	if code == evdev.KEY_RESERVED || l.n == 0 {
		return false
	}
	for _, c := range l.slots {
		if c == code {
			return true
		}
	}
	return false
}

// Len returns the number of in-flight codes.
func (l *Ledger) Len() int { return l.n }

// Cap returns the capacity.
func (l *Ledger) Cap() int { return len(l.slots) }

// Codes returns the in-flight codes in slot order.
func (l *Ledger) Codes() []evdev.EvCode {
	out := make([]evdev.EvCode, 0, l.n)
	for _, c := range l.slots {
		if c != 0 {
			out = append(out, c)
		}
	}
	return out
}
