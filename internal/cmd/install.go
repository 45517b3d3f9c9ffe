package cmd

import "log/slog"

type Install struct {
	Device string   `short:"d" required:"" help:"Keyboard the service captures"`
	Args   []string `arg:"" optional:"" passthrough:"" help:"Extra remap flags, e.g. -- --umlaut --match k750"`
}

// Run is called by Kong when the install command is executed.
func (i *Install) Run(logger *slog.Logger) error {
	return install(logger, append([]string{"remap", "--device", i.Device}, i.Args...))
}

type Uninstall struct{}

// Run is called by Kong when the uninstall command is executed.
func (u *Uninstall) Run(logger *slog.Logger) error {
	return uninstall(logger)
}
