package menu

import (
	"strconv"
	"time"
)

const (
	lineLabel = 0
	lineValue = 1
)

// DefaultSleepTimeout is the inactivity window after which the backlight
// is switched off.
const DefaultSleepTimeout = 30 * time.Second

// Menu owns the display and renders the current parameter of the current
// section with per-line dirty tracking. All operations are fail-soft:
// invalid input is clamped or ignored, never surfaced, because the
// display has no error channel back to the user.
//
// Single-threaded by contract: one control loop calls the navigation
// methods and Print.
type Menu struct {
	screen Screen
	clock  Clock

	root    *Section // first section ever attached, kept for future nesting
	current *Section

	dirty     bool
	lineDirty [2]bool
	asleep    bool

	sleepTimeout time.Duration
	lastActivity time.Time
}

type Option func(*Menu)

func WithSleepTimeout(d time.Duration) Option {
	return func(m *Menu) { m.sleepTimeout = d }
}

// New prepares the screen (clear, backlight on) and marks the whole menu
// dirty so the first Print performs a full render.
func New(screen Screen, clock Clock, opts ...Option) *Menu {
	if clock == nil {
		clock = systemClock{}
	}
	m := &Menu{
		screen:       screen,
		clock:        clock,
		sleepTimeout: DefaultSleepTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.screen.Clear()
	m.screen.BacklightOn()
	m.markDirty(true, true)
	return m
}

// AddSection makes the section current. The first section ever added
// becomes the root.
func (m *Menu) AddSection(s *Section) {
	s.setClock(m.clock)
	m.current = s
	if m.root == nil {
		m.root = s
	}
	m.markDirty(true, true)
}

func (m *Menu) Next() {
	if m.current != nil {
		m.current.Next()
	}
	m.markDirty(true, true)
}

func (m *Menu) Prev() {
	if m.current != nil {
		m.current.Prev()
	}
	m.markDirty(true, true)
}

// IncCurrent steps the selected parameter. Only the value line needs a
// redraw, the label is unchanged.
func (m *Menu) IncCurrent(steps float64) {
	m.currentParam().Inc(steps)
	m.markDirty(false, true)
}

// Print drains pending dirty lines, or, when clean, checks the sleep
// timeout. It never wakes the menu and never re-marks anything dirty.
func (m *Menu) Print() {
	if !m.dirty {
		if !m.asleep && m.clock.Now().Sub(m.lastActivity) > m.sleepTimeout {
			m.sleep()
		}
		return
	}
	m.dirty = false

	// full clear only when both lines changed, a single-line update just
	// overwrites in place
	if m.lineDirty[lineLabel] && m.lineDirty[lineValue] {
		m.screen.Clear()
	}

	p := m.currentParam()

	if m.lineDirty[lineLabel] {
		m.screen.SetPosition(lineLabel, 0)
		m.screen.Print(p.Name())
		m.lineDirty[lineLabel] = false
	}
	if m.lineDirty[lineValue] {
		m.screen.SetPosition(lineValue, 0)
		if p.IsFloat() {
			m.screen.Print(strconv.FormatFloat(p.Value(), 'f', 2, 64))
		} else {
			m.screen.Print(p.DisplayValue())
		}
		m.lineDirty[lineValue] = false
	}
}

func (m *Menu) CurrentSection() *Section { return m.current }

func (m *Menu) Dirty() bool { return m.dirty }

func (m *Menu) Asleep() bool { return m.asleep }

func (m *Menu) markDirty(label, value bool) {
	if label {
		m.lineDirty[lineLabel] = true
	}
	if value {
		m.lineDirty[lineValue] = true
	}
	m.dirty = m.lineDirty[lineLabel] || m.lineDirty[lineValue]
	m.stayAwake()
}

// stayAwake is the sole wake transition, driven only by navigation and
// increment activity.
func (m *Menu) stayAwake() {
	if m.asleep {
		m.screen.BacklightOn()
		m.asleep = false
	}
	m.lastActivity = m.clock.Now()
}

func (m *Menu) sleep() {
	m.screen.BacklightOff()
	m.asleep = true
}

func (m *Menu) currentParam() *Parameter {
	if m.current == nil {
		return placeholder
	}
	return m.current.Current()
}
