package menu

import (
	"strconv"
	"time"
)

type Kind int

const (
	Continuous Kind = iota // free floating value adjusted by a fixed increment
	Enumerated             // fixed ordered list of labeled states, cyclic
)

// ChangeEvent describes an accepted, value-changing parameter update.
type ChangeEvent struct {
	SourceID int
	Time     time.Time
	Value    float64
	Param    *Parameter
}

type ChangeHandler interface {
	OnChange(ChangeEvent)
}

type ChangeHandlerFunc func(ChangeEvent)

func (f ChangeHandlerFunc) OnChange(e ChangeEvent) { f(e) }

// Parameter is a single adjustable menu item. The zero value is a valid
// placeholder with empty name and zero value, rendered when a section
// has nothing to show.
type Parameter struct {
	name string
	id   int
	kind Kind

	value     float64
	increment float64

	states []string
	state  int

	handler ChangeHandler
	clock   Clock
}

func NewContinuous(name string, id int, value, increment float64) *Parameter {
	return &Parameter{
		name:      name,
		id:        id,
		kind:      Continuous,
		value:     value,
		increment: increment,
	}
}

func NewEnumerated(name string, id int, states []string, initial int) *Parameter {
	if initial < 0 || initial >= len(states) {
		initial = 0
	}
	return &Parameter{
		name:   name,
		id:     id,
		kind:   Enumerated,
		states: append([]string(nil), states...),
		state:  initial,
	}
}

// RegisterChangeHandler sets the handler invoked synchronously on every
// accepted value change. Passing nil silences the parameter.
func (p *Parameter) RegisterChangeHandler(h ChangeHandler) {
	p.handler = h
}

func (p *Parameter) Name() string { return p.name }
func (p *Parameter) ID() int      { return p.id }
func (p *Parameter) Kind() Kind   { return p.kind }

// IsFloat selects the display formatting path: true for continuous
// parameters, false for enumerated ones.
func (p *Parameter) IsFloat() bool { return p.kind == Continuous }

// Value returns the numeric value, which for an enumerated parameter is
// its current state index.
func (p *Parameter) Value() float64 {
	if p.kind == Enumerated {
		return float64(p.state)
	}
	return p.value
}

func (p *Parameter) DisplayValue() string {
	if p.kind == Enumerated {
		if p.state < 0 || p.state >= len(p.states) {
			return ""
		}
		return p.states[p.state]
	}
	return strconv.FormatFloat(p.value, 'f', 2, 64)
}

// SetValue replaces the value. A continuous parameter accepts any float,
// an enumerated one treats it as a state index.
func (p *Parameter) SetValue(v float64) {
	if p.kind == Enumerated {
		p.SetState(int(v))
		return
	}
	if p.value == v {
		return
	}
	p.value = v
	p.fire(v)
}

// SetState switches an enumerated parameter to the given state index.
// An out-of-range index is ignored, except that a corrupt current index
// heals back to zero.
func (p *Parameter) SetState(state int) {
	if p.kind != Enumerated {
		return
	}
	if state != p.state && p.validState(state) {
		p.state = state
		p.fire(float64(state))
	} else if !p.validState(p.state) {
		p.state = 0
	}
}

// Inc steps the value: continuous adds increment*steps, enumerated
// advances the state index with wraparound in both directions.
func (p *Parameter) Inc(steps float64) {
	if p.kind == Enumerated {
		if len(p.states) == 0 {
			return
		}
		next := (p.state + int(steps)) % len(p.states)
		if next < 0 {
			next += len(p.states)
		}
		p.SetState(next)
		return
	}
	p.SetValue(p.value + p.increment*steps)
}

func (p *Parameter) States() []string {
	return append([]string(nil), p.states...)
}

func (p *Parameter) validState(state int) bool {
	return state >= 0 && state < len(p.states)
}

func (p *Parameter) fire(v float64) {
	if p.handler == nil {
		return
	}
	p.handler.OnChange(ChangeEvent{
		SourceID: p.id,
		Time:     p.now(),
		Value:    v,
		Param:    p,
	})
}

func (p *Parameter) now() time.Time {
	if p.clock != nil {
		return p.clock.Now()
	}
	return time.Now()
}
