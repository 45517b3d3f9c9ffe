// Package layout provides the fixed key translation tables used by the remapper.
//
// A table maps the code of a physical key to the code that must be emitted so
// that the host, configured for the typing layout, sees the character of the
// alternate layout at that position. Codes without an entry map to themselves.
package layout

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/holoplot/go-evdev"
)

// ID names a table.
type ID string

const (
	IDQwerty ID = "qwerty"
	IDUmlaut ID = "umlaut"
)

// ErrUnknownLayout is returned by ByID for names without a table.
var ErrUnknownLayout = errors.New("unknown layout")

// Table is an immutable code-to-code translation.
type Table struct {
	id ID
	m  map[evdev.EvCode]evdev.EvCode
}

func newTable(id ID, pairs map[evdev.EvCode]evdev.EvCode) Table {
	m := make(map[evdev.EvCode]evdev.EvCode, len(pairs))
	for from, to := range pairs {
		if from == to {
			continue
		}
		m[from] = to
	}
	return Table{id: id, m: m}
}

// ID returns the table name.
func (t Table) ID() ID { return t.id }

// Lookup returns the translated code, or code itself when there is no mapping.
func (t Table) Lookup(code evdev.EvCode) evdev.EvCode {
	if to, ok := t.m[code]; ok {
		return to
	}
	return code
}

// Maps reports whether code has a non-identity translation.
func (t Table) Maps(code evdev.EvCode) bool {
	_, ok := t.m[code]
	return ok
}

// Len returns the number of non-identity entries.
func (t Table) Len() int { return len(t.m) }

// Sources returns the translated physical codes in ascending order.
func (t Table) Sources() []evdev.EvCode {
	out := make([]evdev.EvCode, 0, len(t.m))
	for from := range t.m {
		out = append(out, from)
	}
	slices.Sort(out)
	return out
}

// Targets returns every code the table can emit in ascending order.
func (t Table) Targets() []evdev.EvCode {
	out := make([]evdev.EvCode, 0, len(t.m))
	for _, to := range t.m {
		out = append(out, to)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Restrict returns a copy of t that only keeps entries whose source and
// target are both in supported. Keys the device cannot produce, or the
// virtual device cannot emit, never get translated.
func (t Table) Restrict(supported func(evdev.EvCode) bool) Table {
	m := make(map[evdev.EvCode]evdev.EvCode, len(t.m))
	for from, to := range t.m {
		if supported(from) && supported(to) {
			m[from] = to
		}
	}
	return Table{id: t.id, m: m}
}

func (t Table) String() string {
	return fmt.Sprintf("%s (%d keys)", t.id, len(t.m))
}

// ByID returns the table with the given name (case-insensitive).
func ByID(id string) (Table, error) {
	switch ID(strings.ToLower(id)) {
	case IDQwerty:
		return Qwerty, nil
	case IDUmlaut:
		return Umlaut, nil
	}
	return Table{}, fmt.Errorf("%w: %q, known layouts: %v", ErrUnknownLayout, id, IDs())
}

// IDs lists the known table names.
func IDs() []ID {
	return []ID{IDQwerty, IDUmlaut}
}
