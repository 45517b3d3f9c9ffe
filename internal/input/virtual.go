package input

import (
	"fmt"
	"sync"

	"github.com/holoplot/go-evdev"
	"golang.org/x/sys/unix"
)

// VirtualID identifies the uinput device to the kernel.
var VirtualID = evdev.InputID{
	BusType: unix.BUS_VIRTUAL,
	Vendor:  0x1,
	Product: 0x1,
	Version: 1,
}

// CreateVirtual registers a uinput keyboard with the given capabilities.
func CreateVirtual(name string, caps Capabilities) (*evdev.InputDevice, error) {
	dev, err := evdev.CreateDevice(name, VirtualID, caps)
	if err != nil {
		return nil, fmt.Errorf("cannot create virtual device [%s]: %w", name, err)
	}
	return dev, nil
}

// LockedSink serializes writes from the event loop and the autoclicker.
type LockedSink struct {
	mu   sync.Mutex
	sink Sink
}

func NewLockedSink(s Sink) *LockedSink {
	return &LockedSink{sink: s}
}

func (l *LockedSink) WriteOne(ev *evdev.InputEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink.WriteOne(ev)
}
