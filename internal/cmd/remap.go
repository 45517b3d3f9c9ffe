package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/tbocek/dvorak/internal/input"
	"github.com/tbocek/dvorak/internal/log"
	"github.com/tbocek/dvorak/internal/metrics"
	"github.com/tbocek/dvorak/internal/notify"
	"github.com/tbocek/dvorak/layout"
	"github.com/tbocek/dvorak/remap"
)

var errDeviceRemoved = errors.New("input device removed")

type MetricsConfig struct {
	Addr string `help:"Serve Prometheus metrics on this address, e.g. 127.0.0.1:9477" env:"DVORAK_METRICS_ADDR"`
}

type Remap struct {
	Device         string        `short:"d" required:"" help:"Keyboard to capture, e.g. /dev/input/by-id/usb-Logitech_USB_Receiver-if02-event-kbd" env:"DVORAK_DEVICE"`
	Layout         string        `help:"Chord layout: qwerty, or umlaut for qwerty plus the AltGr diacritic layer" enum:"qwerty,umlaut" default:"qwerty" env:"DVORAK_LAYOUT"`
	Umlaut         bool          `short:"u" help:"Enable the AltGr diacritic layer" env:"DVORAK_UMLAUT"`
	Match          []string      `short:"m" help:"Only map devices whose name contains one of these words" env:"DVORAK_MATCH"`
	NoToggle       bool          `short:"t" help:"Disable the triple Left-Alt toggle" env:"DVORAK_NO_TOGGLE"`
	NoCapsModifier bool          `short:"c" help:"Do not treat Caps Lock as a chord modifier" env:"DVORAK_NO_CAPS_MODIFIER"`
	LedgerCapacity int           `help:"Maximum number of translated keys held at once" default:"16" env:"DVORAK_LEDGER_CAPACITY"`
	GrabDelay      time.Duration `help:"Wait before grabbing so keys held at startup are released" default:"200ms" env:"DVORAK_GRAB_DELAY"`
	Notify         bool          `help:"Show a desktop notification when the mapping is toggled" env:"DVORAK_NOTIFY"`
	Metrics        MetricsConfig `embed:"" prefix:"metrics."`
}

// Run is called by Kong when the remap command is executed.
func (r *Remap) Run(logger *slog.Logger, events log.EventLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Start(ctx, logger, events)
}

// Options derives the engine options; the tables are restricted to keys
// the device supports.
func (r *Remap) Options(supported func(evdev.EvCode) bool) (remap.Options, error) {
	primary, err := layout.ByID(string(layout.IDQwerty))
	if err != nil {
		return remap.Options{}, err
	}
	umlaut := r.Umlaut || strings.EqualFold(r.Layout, string(layout.IDUmlaut))

	opts := remap.Options{
		Table:           primary,
		Umlaut:          umlaut,
		UmlautTable:     layout.Umlaut,
		DisableToggle:   r.NoToggle,
		DisableCapsLock: r.NoCapsModifier,
		LedgerCapacity:  r.LedgerCapacity,
	}
	if supported != nil {
		opts.Table = opts.Table.Restrict(supported)
		opts.UmlautTable = opts.UmlautTable.Restrict(supported)
	}
	return opts, nil
}

func (r *Remap) Start(ctx context.Context, logger *slog.Logger, events log.EventLogger) error {
	phys, err := input.OpenPhysical(input.OpenOptions{
		Path:      r.Device,
		Match:     r.Match,
		GrabDelay: r.GrabDelay,
	}, logger)
	if errors.Is(err, input.ErrSelfDevice) {
		logger.Info("Do not map the device we just created", "device", r.Device)
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := phys.Release(); err != nil {
			logger.Debug("release input device", "error", err)
		}
	}()

	caps, err := input.QueryCapabilities(phys)
	if err != nil {
		return fmt.Errorf("cannot query capabilities of [%s]: %w", phys.Name, err)
	}

	opts, err := r.Options(caps.HasKey)
	if err != nil {
		return err
	}

	m := metrics.New()
	notifier := notify.New(r.Notify, logger)
	opts.OnToggle = func(enabled bool) {
		m.MappingEnabled(enabled)
		notifier.MappingToggled(enabled)
	}
	opts.OnSaturated = m.LedgerSaturated

	engine := remap.New(opts, logger)
	m.MappingEnabled(engine.Enabled())
	logger.Debug("tables", "primary", opts.Table.String(), "umlaut", opts.Umlaut)

	out, err := input.CreateVirtual(input.VirtualDeviceName, caps.Mirror(engine.EmittedCodes()...))
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if w, err := input.WatchRemoval(r.Device, logger, func() { cancel(errDeviceRemoved) }); err != nil {
		logger.Warn("cannot watch input device node", "path", r.Device, "error", err)
	} else {
		defer func() { _ = w.Close() }()
	}

	if r.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, r.Metrics.Addr, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("mapping", "device", phys.Name, "umlaut", opts.Umlaut, "toggle", !opts.DisableToggle)

	loop := &input.Loop{
		Source:  phys,
		Sink:    out,
		Handler: engine,
		Logger:  logger,
		Events:  events,
		Stats:   m,
	}
	return runLoop(ctx, loop, logger)
}

// runLoop runs the event loop on its own goroutine so a signal does not
// have to wait for the next key press.
func runLoop(ctx context.Context, loop *input.Loop, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- loop.Run(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if cause := context.Cause(ctx); errors.Is(cause, errDeviceRemoved) {
			return cause
		}
		logger.Info("Shutting down")
		return nil
	}
}
