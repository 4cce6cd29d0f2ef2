// Package timelapse is the capture engine behind the menu: parameter
// change events adjust its settings, and in timelapse mode it fires the
// shutter trigger once per interval.
package timelapse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lemewp/Intervalomedio/internal/pkg/logger"
	"github.com/lemewp/Intervalomedio/internal/pkg/menu"
)

var log = logger.GetLogger()

// Parameter ids the stock menu definition binds to engine settings.
const (
	ParamInterval = 1
	ParamExposure = 2
	ParamFrames   = 3
	ParamMode     = 4
)

type Mode int

const (
	Single Mode = iota
	Timelapse
	Bulb
)

func (m Mode) String() string {
	switch m {
	case Single:
		return "Single"
	case Timelapse:
		return "Timelapse"
	case Bulb:
		return "Bulb"
	default:
		return "Unknown"
	}
}

// Trigger fires the camera shutter. Single and bulb exposures are driven
// by the shutter hardware itself, the engine only schedules frames.
type Trigger interface {
	Fire(exposure time.Duration)
}

type TriggerFunc func(time.Duration)

func (f TriggerFunc) Fire(exposure time.Duration) { f(exposure) }

type Settings struct {
	Interval   time.Duration
	Exposure   time.Duration
	FrameLimit int // 0 means unlimited
	Mode       Mode
}

// Engine runs the capture schedule. Settings are mutated from the control
// loop through OnChange while Run ticks in its own goroutine, hence the
// lock.
type Engine struct {
	mu       sync.Mutex
	trigger  Trigger
	settings Settings
	frames   int
}

func New(trigger Trigger, initial Settings) *Engine {
	if initial.Interval <= 0 {
		initial.Interval = 5 * time.Second
	}
	return &Engine{trigger: trigger, settings: initial}
}

// OnChange implements menu.ChangeHandler. Values arrive in the menu's
// units: seconds for interval and exposure, counts and mode indexes as-is.
// Out-of-range values are dropped, the menu has no way to report them.
func (e *Engine) OnChange(ev menu.ChangeEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev.SourceID {
	case ParamInterval:
		if ev.Value <= 0 {
			return
		}
		e.settings.Interval = time.Duration(ev.Value * float64(time.Second))
	case ParamExposure:
		if ev.Value < 0 {
			return
		}
		e.settings.Exposure = time.Duration(ev.Value * float64(time.Second))
	case ParamFrames:
		if ev.Value < 0 {
			return
		}
		e.settings.FrameLimit = int(ev.Value)
	case ParamMode:
		mode := Mode(int(ev.Value))
		if mode < Single || mode > Bulb {
			return
		}
		e.settings.Mode = mode
		e.frames = 0 // a mode switch starts a fresh sequence
	default:
		return
	}

	log.Info(fmt.Sprintf("setting changed: %+v", e.settings),
		zap.Int("param_id", ev.SourceID), logger.Action)
}

func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

func (e *Engine) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Run ticks at the configured interval until the context is canceled.
// Frames fire in timelapse mode only, up to the frame limit.
func (e *Engine) Run(ctx context.Context) {
	log.Info("capture engine started", logger.Debug)
root:
	for {
		e.mu.Lock()
		interval := e.settings.Interval
		e.mu.Unlock()

		select {
		case <-ctx.Done():
			break root
		case <-time.After(interval):
			break
		}

		e.mu.Lock()
		s := e.settings
		done := s.FrameLimit > 0 && e.frames >= s.FrameLimit
		fire := s.Mode == Timelapse && !done
		if fire {
			e.frames++
		}
		frame := e.frames
		e.mu.Unlock()

		if !fire {
			continue
		}

		e.trigger.Fire(s.Exposure)
		log.Info(fmt.Sprintf("frame %d captured", frame),
			zap.Int("limit", s.FrameLimit), logger.Action)
	}
	log.Info("capture engine stopped", logger.Debug)
}
