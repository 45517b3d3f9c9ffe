package input

import (
	"slices"
	"strings"

	"github.com/holoplot/go-evdev"
)

// DeviceInfo describes one /dev/input node.
type DeviceInfo struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Keyboard bool   `json:"keyboard"`
	Virtual  bool   `json:"virtual"`
}

// keyboardProbe are keys any real keyboard reports.
var keyboardProbe = []evdev.EvCode{evdev.KEY_A, evdev.KEY_Z, evdev.KEY_SPACE}

// IsKeyboard reports whether caps look like a keyboard.
func IsKeyboard(caps Capabilities) bool {
	for _, k := range keyboardProbe {
		if !caps.HasKey(k) {
			return false
		}
	}
	return true
}

// ListDevices enumerates input devices, sorted by path. Devices that cannot
// be opened for capability queries are listed without the keyboard flag.
func ListDevices(match []string) ([]DeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}

	var out []DeviceInfo
	for _, p := range paths {
		if !MatchName(p.Name, match) {
			continue
		}
		info := DeviceInfo{
			Path:    p.Path,
			Name:    p.Name,
			Virtual: strings.EqualFold(p.Name, VirtualDeviceName) || strings.EqualFold(p.Name, VirtualMouseName),
		}
		if d, err := evdev.Open(p.Path); err == nil {
			if caps, err := QueryCapabilities(d); err == nil {
				info.Keyboard = IsKeyboard(caps)
			}
			_ = d.Close()
		}
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b DeviceInfo) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}
