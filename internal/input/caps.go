package input

import (
	"errors"
	"slices"

	"github.com/holoplot/go-evdev"
)

// MaxKeyCode bounds the key codes registered on the virtual device.
// Registering all of KEY_MAX overflows the kernel's uevent buffer when the
// device is destroyed ("add_uevent_var: buffer size too small").
const MaxKeyCode evdev.EvCode = 0x23e

// ErrNoCapabilities is returned when a device reports no event types.
var ErrNoCapabilities = errors.New("device reports no capabilities")

// CapabilityQuerier is implemented by *evdev.InputDevice.
type CapabilityQuerier interface {
	CapableTypes() []evdev.EvType
	CapableEvents(t evdev.EvType) []evdev.EvCode
}

// Capabilities maps event types to supported codes.
type Capabilities map[evdev.EvType][]evdev.EvCode

// QueryCapabilities reads the capability bitsets once.
func QueryCapabilities(d CapabilityQuerier) (Capabilities, error) {
	types := d.CapableTypes()
	if len(types) == 0 {
		return nil, ErrNoCapabilities
	}
	c := Capabilities{}
	for _, t := range types {
		c[t] = d.CapableEvents(t)
	}
	return c, nil
}

// Has reports whether code of type t is supported.
func (c Capabilities) Has(t evdev.EvType, code evdev.EvCode) bool {
	return slices.Contains(c[t], code)
}

// HasKey reports whether key code is supported.
func (c Capabilities) HasKey(code evdev.EvCode) bool {
	return c.Has(evdev.EV_KEY, code)
}

// mirroredTypes are copied onto the virtual device. EV_ABS needs absinfo
// setup, EV_REP would make the kernel generate a second stream of repeats
// and EV_LED/EV_SND belong to the physical device.
var mirroredTypes = []evdev.EvType{evdev.EV_SYN, evdev.EV_KEY, evdev.EV_REL, evdev.EV_MSC}

// Mirror returns the capabilities for the virtual device: the mirrored
// types of c, keys clamped below MaxKeyCode, plus extraKeys which the
// engine may synthesize.
func (c Capabilities) Mirror(extraKeys ...evdev.EvCode) Capabilities {
	out := Capabilities{}
	for _, t := range mirroredTypes {
		codes, ok := c[t]
		switch {
		case ok, t == evdev.EV_SYN:
		case t == evdev.EV_KEY && len(extraKeys) > 0:
		default:
			continue
		}
		var kept []evdev.EvCode
		for _, code := range codes {
			if t == evdev.EV_KEY && code >= MaxKeyCode {
				continue
			}
			kept = append(kept, code)
		}
		if t == evdev.EV_KEY {
			for _, code := range extraKeys {
				if code < MaxKeyCode && !slices.Contains(kept, code) {
					kept = append(kept, code)
				}
			}
		}
		slices.Sort(kept)
		out[t] = kept
	}
	return out
}
