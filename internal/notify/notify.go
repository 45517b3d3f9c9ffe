// Package notify shows desktop notifications for state changes the user
// triggers blind, like the mapping toggle gesture.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appName = "Dvorak"

type Notifier struct {
	enabled bool
	logger  *slog.Logger
	send    func(title, message, icon string) error
}

func New(enabled bool, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{enabled: enabled, logger: logger, send: beeep.Notify}
}

// MappingToggled reports the new mapping state.
func (n *Notifier) MappingToggled(enabled bool) {
	n.notify("Mapping", fmt.Sprintf("mapping is set to [%t]", enabled))
}

// Autoclick reports the click loop state.
func (n *Notifier) Autoclick(active bool) {
	state := "stopped"
	if active {
		state = "started"
	}
	n.notify("Autoclick", "autoclick "+state)
}

func (n *Notifier) notify(title, message string) {
	if n == nil || !n.enabled {
		return
	}
	// Running as a system service there is usually no session bus.
	if err := n.send(appName+": "+title, message, ""); err != nil {
		n.logger.Debug("desktop notification failed", "error", err)
	}
}
