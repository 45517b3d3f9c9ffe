package input

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	dlog "github.com/tbocek/dvorak/internal/log"
	"github.com/tbocek/dvorak/remap"
)

type read struct {
	ev  evdev.InputEvent
	err error
}

type fakeSource struct {
	reads  []read
	onRead func(i int)
	n      int
}

func (s *fakeSource) ReadOne() (*evdev.InputEvent, error) {
	if s.n >= len(s.reads) {
		return nil, io.EOF
	}
	r := s.reads[s.n]
	if s.onRead != nil {
		s.onRead(s.n)
	}
	s.n++
	if r.err != nil {
		return nil, r.err
	}
	ev := r.ev
	return &ev, nil
}

type fakeSink struct {
	written []evdev.InputEvent
	failOn  evdev.EvCode
}

func (s *fakeSink) WriteOne(ev *evdev.InputEvent) error {
	if s.failOn != 0 && ev.Code == s.failOn {
		return errors.New("write failed")
	}
	s.written = append(s.written, *ev)
	return nil
}

type countingRecorder struct {
	read, written, failed int
}

func (c *countingRecorder) EventRead(*evdev.InputEvent)    { c.read++ }
func (c *countingRecorder) EventWritten(*evdev.InputEvent) { c.written++ }
func (c *countingRecorder) WriteFailed()                   { c.failed++ }

func key(code evdev.EvCode, value int32) read {
	return read{ev: remap.KeyEvent(code, value)}
}

func newLoop(src Source, sink Sink) *Loop {
	return &Loop{
		Source:  src,
		Sink:    sink,
		Handler: remap.New(remap.Options{}, dlog.Discard()),
		Logger:  dlog.Discard(),
	}
}

func codes(evs []evdev.InputEvent) []evdev.EvCode {
	var out []evdev.EvCode
	for _, ev := range evs {
		out = append(out, ev.Code)
	}
	return out
}

func TestLoop_TranslatesChords(t *testing.T) {
	src := &fakeSource{reads: []read{
		key(evdev.KEY_LEFTCTRL, remap.Pressed),
		key(evdev.KEY_J, remap.Pressed),
		key(evdev.KEY_LEFTCTRL, remap.Released),
		key(evdev.KEY_J, remap.Released),
		key(evdev.KEY_J, remap.Pressed),
	}}
	sink := &fakeSink{}

	err := newLoop(src, sink).Run(context.Background())
	require.ErrorIs(t, err, io.EOF)

	assert.Equal(t, []evdev.EvCode{
		evdev.KEY_LEFTCTRL, evdev.KEY_C, evdev.KEY_LEFTCTRL, evdev.KEY_C, evdev.KEY_J,
	}, codes(sink.written))
}

func TestLoop_RetriesInterruptedRead(t *testing.T) {
	src := &fakeSource{reads: []read{
		{err: unix.EINTR},
		key(evdev.KEY_A, remap.Pressed),
	}}
	sink := &fakeSink{}

	err := newLoop(src, sink).Run(context.Background())
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []evdev.EvCode{evdev.KEY_A}, codes(sink.written))
}

func TestLoop_WriteErrorsAreNotFatal(t *testing.T) {
	src := &fakeSource{reads: []read{
		key(evdev.KEY_B, remap.Pressed),
		key(evdev.KEY_A, remap.Pressed),
	}}
	sink := &fakeSink{failOn: evdev.KEY_B}
	rec := &countingRecorder{}

	var logs bytes.Buffer
	l := newLoop(src, sink)
	l.Stats = rec
	l.Logger = dlog.New(io.Discard, &logs, dlog.ParseLevel("info"))

	err := l.Run(context.Background())
	require.ErrorIs(t, err, io.EOF)

	assert.Equal(t, []evdev.EvCode{evdev.KEY_A}, codes(sink.written))
	assert.Equal(t, 2, rec.read)
	assert.Equal(t, 1, rec.written)
	assert.Equal(t, 1, rec.failed)
	assert.Contains(t, logs.String(), "Cannot write to device")
}

func TestLoop_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{reads: []read{
		key(evdev.KEY_A, remap.Pressed),
		key(evdev.KEY_B, remap.Pressed),
		key(evdev.KEY_C, remap.Pressed),
	}}
	src.onRead = func(i int) {
		if i == 1 {
			cancel()
		}
	}
	sink := &fakeSink{}

	err := newLoop(src, sink).Run(ctx)
	require.NoError(t, err)
	// The event read while cancelling is still delivered.
	assert.Equal(t, []evdev.EvCode{evdev.KEY_A, evdev.KEY_B}, codes(sink.written))
}

func TestLoop_ReadErrorAfterCancelIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := &fakeSource{reads: []read{{err: errors.New("file already closed")}}}
	src.onRead = func(int) { cancel() }

	err := newLoop(src, &fakeSink{}).Run(ctx)
	assert.NoError(t, err)
}

func TestLoop_TracesEvents(t *testing.T) {
	src := &fakeSource{reads: []read{key(evdev.KEY_J, remap.Pressed)}}
	var trace bytes.Buffer
	l := newLoop(src, &fakeSink{})
	l.Events = dlog.NewEventLogger(&trace)

	_ = l.Run(context.Background())

	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], " in EV_KEY KEY_J value=1")
	assert.Contains(t, lines[1], "out EV_KEY KEY_J value=1")
}

func TestLockedSink(t *testing.T) {
	sink := &fakeSink{}
	ls := NewLockedSink(sink)
	ev := remap.KeyEvent(evdev.BTN_LEFT, remap.Pressed)
	require.NoError(t, ls.WriteOne(&ev))
	assert.Len(t, sink.written, 1)
}
