package remap

import (
	"fmt"
	"log/slog"

	"github.com/holoplot/go-evdev"

	"github.com/tbocek/dvorak/layout"
)

// Options configures an Engine. The zero value maps with layout.Qwerty,
// toggles on Left-Alt and treats Caps Lock as a chord modifier.
type Options struct {
	// Table is the primary chord table. Defaults to layout.Qwerty.
	Table layout.Table
	// Umlaut enables the AltGr diacritic layer.
	Umlaut bool
	// UmlautTable defaults to layout.Umlaut.
	UmlautTable layout.Table

	DisableToggle   bool
	DisableCapsLock bool
	// ToggleKey defaults to KEY_LEFTALT.
	ToggleKey      evdev.EvCode
	LedgerCapacity int

	// OnToggle is called after the mapping flag flipped.
	OnToggle func(enabled bool)
	// OnSaturated is called for every press that could not be tracked.
	OnSaturated func(table layout.ID, code evdev.EvCode)
}

type layer struct {
	table     layout.Table
	ledger    *Ledger
	saturated bool
}

// Engine is the per-event translation state machine.
type Engine struct {
	logger *slog.Logger
	opts   Options

	mods     *ModifierTracker
	toggle   *Toggle
	primary  *layer
	umlaut   *layer
	brackets *Ledger
}

// New builds an Engine with empty state.
func New(opts Options, logger *slog.Logger) *Engine {
	if opts.Table.Len() == 0 && opts.Table.ID() == "" {
		opts.Table = layout.Qwerty
	}
	if opts.UmlautTable.Len() == 0 && opts.UmlautTable.ID() == "" {
		opts.UmlautTable = layout.Umlaut
	}
	if opts.ToggleKey == 0 {
		opts.ToggleKey = evdev.KEY_LEFTALT
	}
	if opts.LedgerCapacity < 1 {
		opts.LedgerCapacity = DefaultLedgerCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		logger:  logger,
		opts:    opts,
		mods:    NewModifierTracker(opts.DisableCapsLock),
		toggle:  NewToggle(opts.ToggleKey, opts.DisableToggle),
		primary: &layer{table: opts.Table, ledger: NewLedger(opts.LedgerCapacity)},
	}
	if opts.Umlaut {
		e.umlaut = &layer{table: opts.UmlautTable, ledger: NewLedger(opts.LedgerCapacity)}
		e.brackets = NewLedger(len(bracketKeys))
	}
	return e
}

// Handle processes one input event and appends the events to emit to out.
func (e *Engine) Handle(ev *evdev.InputEvent, out []evdev.InputEvent) []evdev.InputEvent {
	if e.toggle.Feed(ev) {
		enabled := e.toggle.Enabled()
		e.logger.Info(fmt.Sprintf("mapping is set to [%t]", enabled))
		if e.opts.OnToggle != nil {
			e.opts.OnToggle(enabled)
		}
	}

	if !isKeyTransition(ev) {
		return append(out, *ev)
	}

	e.mods.Update(ev.Code, ev.Value)

	if !e.toggle.Enabled() {
		// Keys pressed while mapping was on still release as what they sent.
		if ev.Value == Pressed {
			return append(out, *ev)
		}
		return e.resolve(ev, out)
	}

	if ev.Value != Pressed {
		return e.resolve(ev, out)
	}

	if e.umlaut != nil {
		if e.mods.Chord() == 0 && e.bracketApplies(ev.Code) {
			return e.bracketPress(ev, out)
		}
		if e.armed(e.umlaut, ev.Code, e.mods.AltGr()) {
			return e.press(e.umlaut, ev, out)
		}
	}

	if e.armed(e.primary, ev.Code, e.mods.Chord() != 0) {
		return e.press(e.primary, ev, out)
	}
	return append(out, *ev)
}

// armed reports whether a press of code translates through l: the layer's
// modifier is held, or the key is still in flight from an earlier press.
func (e *Engine) armed(l *layer, code evdev.EvCode, held bool) bool {
	translated := l.table.Lookup(code)
	if translated == code {
		return false
	}
	return held || l.ledger.Contains(translated)
}

// press records the translation of an armed key press. A full ledger
// degrades to the original code rather than dropping the event.
func (e *Engine) press(l *layer, ev *evdev.InputEvent, out []evdev.InputEvent) []evdev.InputEvent {
	translated := l.table.Lookup(ev.Code)
	if l.ledger.Contains(translated) {
		return append(out, withCode(ev, translated))
	}
	if !l.ledger.Insert(translated) {
		if !l.saturated {
			l.saturated = true
			e.logger.Warn("too many keys pressed, passing key through untranslated",
				"table", l.table.ID(),
				"capacity", l.ledger.Cap(),
				"code", evdev.CodeName(evdev.EV_KEY, ev.Code),
				"value", ValueName(ev.Value))
		}
		if e.opts.OnSaturated != nil {
			e.opts.OnSaturated(l.table.ID(), ev.Code)
		}
		return append(out, *ev)
	}
	return append(out, withCode(ev, translated))
}

// resolve maps a release or repeat to whatever its press emitted. The
// ledgers are searched by translated code, so the modifier state at
// release time does not matter.
func (e *Engine) resolve(ev *evdev.InputEvent, out []evdev.InputEvent) []evdev.InputEvent {
	if e.brackets != nil && e.brackets.Contains(ev.Code) {
		return e.bracketResolve(ev, out)
	}
	for _, l := range e.layers() {
		translated := l.table.Lookup(ev.Code)
		if translated == ev.Code {
			continue
		}
		if ev.Value == Repeated {
			if l.ledger.Contains(translated) {
				return append(out, withCode(ev, translated))
			}
			continue
		}
		if l.ledger.FindAndClear(translated) {
			l.saturated = false
			return append(out, withCode(ev, translated))
		}
	}
	return append(out, *ev)
}

func (e *Engine) layers() []*layer {
	if e.umlaut != nil {
		return []*layer{e.umlaut, e.primary}
	}
	return []*layer{e.primary}
}

// Enabled reports whether mapping is currently on.
func (e *Engine) Enabled() bool { return e.toggle.Enabled() }

// Modifiers returns the held modifier mask.
func (e *Engine) Modifiers() ModifierMask { return e.mods.Mask() }

// InFlight returns the translated codes currently held, per table.
func (e *Engine) InFlight() map[layout.ID][]evdev.EvCode {
	out := map[layout.ID][]evdev.EvCode{}
	for _, l := range e.layers() {
		if l.ledger.Len() > 0 {
			out[l.table.ID()] = l.ledger.Codes()
		}
	}
	return out
}

// EmittedCodes lists every key code Handle may emit that is not an input
// code passed through, so the virtual device can register it.
func (e *Engine) EmittedCodes() []evdev.EvCode {
	codes := e.primary.table.Targets()
	if e.umlaut != nil {
		codes = append(codes, e.umlaut.table.Targets()...)
		codes = append(codes, evdev.KEY_RIGHTALT)
	}
	return codes
}
