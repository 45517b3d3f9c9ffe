// Package metrics exposes remapper counters in the Prometheus text format.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tbocek/dvorak/layout"
)

type Metrics struct {
	reg         *prometheus.Registry
	events      *prometheus.CounterVec
	saturations *prometheus.CounterVec
	enabled     prometheus.Gauge
	writeErrors prometheus.Counter
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dvorak_events_total",
			Help: "Input events read from the physical device and written to the virtual device.",
		}, []string{"kind"}),
		saturations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dvorak_ledger_saturations_total",
			Help: "Translated presses that fell back to the original key because the ledger was full.",
		}, []string{"layout"}),
		enabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dvorak_mapping_enabled",
			Help: "1 while the chord mapping is active.",
		}),
		writeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dvorak_write_errors_total",
			Help: "Failed writes to the virtual device.",
		}),
	}
	m.reg.MustRegister(m.events, m.saturations, m.enabled, m.writeErrors)
	return m
}

func (m *Metrics) EventRead(*evdev.InputEvent) { m.events.WithLabelValues("read").Inc() }

func (m *Metrics) EventWritten(*evdev.InputEvent) { m.events.WithLabelValues("written").Inc() }

func (m *Metrics) WriteFailed() { m.writeErrors.Inc() }

func (m *Metrics) LedgerSaturated(id layout.ID, _ evdev.EvCode) {
	m.saturations.WithLabelValues(string(id)).Inc()
}

func (m *Metrics) MappingEnabled(on bool) {
	if on {
		m.enabled.Set(1)
		return
	}
	m.enabled.Set(0)
}

// Gatherer returns the private registry.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.reg }

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve listens on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
