// Package lcd provides menu.Screen implementations for the supported
// display hardware: SparkFun serLCD modules over a serial line and
// HD44780 modules over I2C.
package lcd

import (
	"fmt"
	"io"
	"time"

	"github.com/lemewp/Intervalomedio/internal/pkg/logger"
	"github.com/lemewp/Intervalomedio/internal/pkg/menu"
)

var log = logger.GetLogger()

// serLCD command set
const (
	cmdPrefix = 0xFE
	cmdClear  = 0x01

	posLineOne = 128
	posLineTwo = 192

	ctrlPrefix   = 0x7C
	backlightOn  = 157
	backlightOff = 128
)

const (
	Lines   = 2
	Columns = 16
)

// DefaultSettleDelay is the pause the controller needs after each command
// sequence before it accepts the next one.
const DefaultSettleDelay = 10 * time.Millisecond

var _ menu.Screen = (*Serial)(nil)

// Serial drives a SparkFun serial enabled LCD through any byte sink,
// typically a tarm/serial port. Write errors are logged and swallowed,
// the menu has no use for them.
type Serial struct {
	w      io.Writer
	settle time.Duration
}

type SerialOption func(*Serial)

// WithSettleDelay overrides the per-command settling pause. Zero is
// useful for tests against an in-memory sink.
func WithSettleDelay(d time.Duration) SerialOption {
	return func(s *Serial) { s.settle = d }
}

// NewSerial prepares the display, sending the screen size init for the
// standard 16x2 resolution.
func NewSerial(w io.Writer, opts ...SerialOption) *Serial {
	s := &Serial{w: w, settle: DefaultSettleDelay}
	for _, opt := range opts {
		opt(s)
	}
	s.ScreenSize(5)
	return s
}

func (s *Serial) Clear() {
	s.command(cmdPrefix, cmdClear)
}

func (s *Serial) SetPosition(line, col int) {
	if col < 0 {
		col = 0
	}
	if col >= Columns {
		col = Columns - 1
	}
	if line <= 0 {
		s.command(cmdPrefix, byte(posLineOne+col))
	} else {
		s.command(cmdPrefix, byte(posLineTwo+col))
	}
}

// GoTo positions the cursor by linear offset: 0-15 is the first row,
// 16-31 the second, anything past that folds back to the origin.
func (s *Serial) GoTo(pos int) {
	switch {
	case pos >= 0 && pos < Columns:
		s.command(cmdPrefix, byte(posLineOne+pos))
	case pos >= Columns && pos < 2*Columns:
		s.command(cmdPrefix, byte(posLineTwo+pos-Columns))
	default:
		s.GoTo(0)
	}
}

// Print sends text as raw characters. Reserved command bytes are blanked
// out so a payload can never be misread as a command, and anything past
// the row width is dropped.
func (s *Serial) Print(text string) {
	payload := []byte(text)
	if len(payload) > Columns {
		payload = payload[:Columns]
	}
	for i, b := range payload {
		if b == cmdPrefix || b == ctrlPrefix {
			payload[i] = ' '
		}
	}
	s.send(payload)
}

func (s *Serial) BacklightOn() {
	s.command(ctrlPrefix, backlightOn)
}

func (s *Serial) BacklightOff() {
	s.command(ctrlPrefix, backlightOff)
}

// ScreenSize configures the controller resolution, valid range 3-6
// (5 selects 16x2). Out-of-range values are clamped.
func (s *Serial) ScreenSize(size int) {
	if size < 3 {
		size = 3
	}
	if size > 6 {
		size = 6
	}
	s.command(ctrlPrefix, byte(size))
}

func (s *Serial) command(b ...byte) {
	s.send(b)
}

func (s *Serial) send(b []byte) {
	_, err := s.w.Write(b)
	if err != nil {
		log.Info(fmt.Sprintf("lcd write failed: %v", err), logger.Warning)
	}
	if s.settle > 0 {
		time.Sleep(s.settle)
	}
}
