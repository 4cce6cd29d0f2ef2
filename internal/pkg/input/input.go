// Package input turns evdev key and encoder events into the three menu
// navigation events the controller understands.
package input

import (
	"context"
	"fmt"

	"github.com/holoplot/go-evdev"

	"github.com/lemewp/Intervalomedio/internal/pkg/logger"
)

var log = logger.GetLogger()

type EventType int

const (
	Next EventType = iota
	Previous
	Increment
)

func (e EventType) String() string {
	switch e {
	case Next:
		return "next"
	case Previous:
		return "previous"
	case Increment:
		return "increment"
	default:
		return "unknown"
	}
}

type Event struct {
	Type  EventType
	Steps float64 // increment only
}

const (
	keyPress  = 1
	keyRepeat = 2
)

// translate maps a raw evdev event to a menu event. Arrows navigate,
// plus/minus and rotary REL events adjust the selected parameter.
// Auto-repeat is honored for adjustments only, holding a direction key
// must not spin through the menu.
func translate(ev *evdev.InputEvent) (Event, bool) {
	switch ev.Type {
	case evdev.EV_KEY:
		switch ev.Code {
		case evdev.KEY_DOWN, evdev.KEY_RIGHT:
			if ev.Value == keyPress {
				return Event{Type: Next}, true
			}
		case evdev.KEY_UP, evdev.KEY_LEFT:
			if ev.Value == keyPress {
				return Event{Type: Previous}, true
			}
		case evdev.KEY_KPPLUS, evdev.KEY_EQUAL:
			if ev.Value == keyPress || ev.Value == keyRepeat {
				return Event{Type: Increment, Steps: 1}, true
			}
		case evdev.KEY_KPMINUS, evdev.KEY_MINUS:
			if ev.Value == keyPress || ev.Value == keyRepeat {
				return Event{Type: Increment, Steps: -1}, true
			}
		}
	case evdev.EV_REL:
		switch ev.Code {
		case evdev.REL_WHEEL, evdev.REL_DIAL:
			return Event{Type: Increment, Steps: float64(ev.Value)}, true
		}
	}
	return Event{}, false
}

// Reader owns one evdev device node.
type Reader struct {
	dev  *evdev.InputDevice
	name string
	path string
}

func Open(path string) (*Reader, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input device failed: %w", err)
	}

	name, err := dev.Name()
	if err != nil {
		name = path
	}

	return &Reader{dev: dev, name: name, path: path}, nil
}

func (r *Reader) Name() string { return r.name }

// ProcessEvents reads the device until the context is canceled or the
// device disappears, delivering translated events on the returned channel.
func (r *Reader) ProcessEvents(ctx context.Context, grab bool) <-chan Event {
	var events = make(chan Event, 8)

	if grab {
		err := r.dev.Grab()
		if err != nil {
			log.Info(fmt.Sprintf("device grab failed: %v", err), logger.Warning)
		}
	}

	go func() {
		defer close(events)
		defer r.dev.Close()

		for {
			select {
			case <-ctx.Done():
				return
			default:
				break
			}

			ev, err := r.dev.ReadOne()
			if err != nil {
				log.Info(fmt.Sprintf("input device gone: %v", err), logger.Warning)
				return
			}

			e, ok := translate(ev)
			if !ok {
				continue
			}

			select {
			case events <- e:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events
}
