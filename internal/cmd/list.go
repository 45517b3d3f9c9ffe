package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/tbocek/dvorak/internal/input"
)

type List struct {
	Match  []string `short:"m" help:"Only list devices whose name contains one of these words"`
	All    bool     `short:"a" help:"Include devices that are not keyboards"`
	Format string   `help:"Output format; auto uses a table on a terminal and JSON otherwise" enum:"auto,table,json" default:"auto"`
}

// Run is called by Kong when the list command is executed.
func (l *List) Run(logger *slog.Logger) error {
	devices, err := input.ListDevices(l.Match)
	if err != nil {
		return fmt.Errorf("cannot list input devices: %w", err)
	}
	devices = filterDevices(devices, l.All)
	logger.Debug("listed input devices", "count", len(devices))

	format := l.Format
	if format == "auto" {
		format = "json"
		if term.IsTerminal(int(os.Stdout.Fd())) {
			format = "table"
		}
	}
	return writeDevices(os.Stdout, devices, format)
}

func filterDevices(devices []input.DeviceInfo, all bool) []input.DeviceInfo {
	if all {
		return devices
	}
	out := devices[:0:0]
	for _, d := range devices {
		if d.Keyboard && !d.Virtual {
			out = append(out, d)
		}
	}
	return out
}

func writeDevices(w io.Writer, devices []input.DeviceInfo, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if devices == nil {
			devices = []input.DeviceInfo{}
		}
		return enc.Encode(devices)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tNAME\tKEYBOARD\tVIRTUAL")
	for _, d := range devices {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%t\n", d.Path, d.Name, d.Keyboard, d.Virtual)
	}
	return tw.Flush()
}
