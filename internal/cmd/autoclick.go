package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/tbocek/dvorak/internal/autoclick"
	"github.com/tbocek/dvorak/internal/input"
	"github.com/tbocek/dvorak/internal/log"
	"github.com/tbocek/dvorak/internal/metrics"
	"github.com/tbocek/dvorak/internal/notify"
)

type Autoclick struct {
	Device    string        `short:"d" required:"" help:"Mouse to capture, e.g. /dev/input/by-id/usb-Logitech_USB_Receiver-if02-event-mouse" env:"DVORAK_AUTOCLICK_DEVICE"`
	Hold      time.Duration `help:"Hold the left button longer than this to start clicking" default:"3s" env:"DVORAK_AUTOCLICK_HOLD"`
	Interval  time.Duration `help:"Press and release duration of each click" default:"100ms" env:"DVORAK_AUTOCLICK_INTERVAL"`
	GrabDelay time.Duration `help:"Wait before grabbing the device" default:"200ms" env:"DVORAK_GRAB_DELAY"`
	Notify    bool          `help:"Show a desktop notification when clicking starts or stops" env:"DVORAK_NOTIFY"`
	Metrics   MetricsConfig `embed:"" prefix:"metrics."`
}

// Run is called by Kong when the autoclick command is executed.
func (a *Autoclick) Run(logger *slog.Logger, events log.EventLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Start(ctx, logger, events)
}

func (a *Autoclick) Start(ctx context.Context, logger *slog.Logger, events log.EventLogger) error {
	phys, err := input.OpenPhysical(input.OpenOptions{
		Path:      a.Device,
		Self:      input.VirtualMouseName,
		GrabDelay: a.GrabDelay,
	}, logger)
	if errors.Is(err, input.ErrSelfDevice) {
		logger.Info("Do not map the device we just created", "device", a.Device)
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = phys.Release() }()

	caps, err := input.QueryCapabilities(phys)
	if err != nil {
		return fmt.Errorf("cannot query capabilities of [%s]: %w", phys.Name, err)
	}

	out, err := input.CreateVirtual(input.VirtualMouseName, caps.Mirror(evdev.BTN_LEFT))
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	sink := input.NewLockedSink(out)

	notifier := notify.New(a.Notify, logger)
	clicker := autoclick.New(sink, autoclick.Options{
		Hold:     a.Hold,
		Interval: a.Interval,
		OnChange: notifier.Autoclick,
	}, logger)
	defer clicker.Stop()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if w, err := input.WatchRemoval(a.Device, logger, func() { cancel(errDeviceRemoved) }); err != nil {
		logger.Warn("cannot watch input device node", "path", a.Device, "error", err)
	} else {
		defer func() { _ = w.Close() }()
	}

	m := metrics.New()
	if a.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, a.Metrics.Addr, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("autoclick ready", "device", phys.Name, "hold", a.Hold)

	loop := &input.Loop{
		Source:  phys,
		Sink:    sink,
		Handler: clicker,
		Logger:  logger,
		Events:  events,
		Stats:   m,
	}
	return runLoop(ctx, loop, logger)
}
