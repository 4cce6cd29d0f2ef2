package menu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	events []ChangeEvent
}

func (h *recordingHandler) OnChange(e ChangeEvent) {
	h.events = append(h.events, e)
}

func TestContinuousInc(t *testing.T) {
	for _, tc := range []struct {
		name      string
		value     float64
		increment float64
		steps     float64
		expected  float64
	}{
		{name: "single step", value: 5.0, increment: 0.5, steps: 1, expected: 5.5},
		{name: "multiple steps", value: 5.0, increment: 0.5, steps: 4, expected: 7.0},
		{name: "negative steps", value: 5.0, increment: 0.5, steps: -2, expected: 4.0},
		{name: "zero steps", value: 5.0, increment: 0.5, steps: 0, expected: 5.0},
		{name: "below zero", value: 1.0, increment: 2.0, steps: -1, expected: -1.0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := NewContinuous("Interval", 1, tc.value, tc.increment)
			p.Inc(tc.steps)
			assert.Equal(t, tc.expected, p.Value())
		})
	}
}

func TestContinuousDisplayValue(t *testing.T) {
	p := NewContinuous("Interval", 1, 2.5, 0.5)
	assert.Equal(t, "2.50", p.DisplayValue())
	assert.Equal(t, true, p.IsFloat())
}

func TestEnumeratedIncWraps(t *testing.T) {
	for _, tc := range []struct {
		name     string
		initial  int
		steps    float64
		expected int
	}{
		{name: "forward", initial: 0, steps: 1, expected: 1},
		{name: "forward wrap", initial: 3, steps: 2, expected: 1},
		{name: "backward wrap", initial: 0, steps: -2, expected: 2},
		{name: "full cycle", initial: 2, steps: 4, expected: 2},
		{name: "backward", initial: 2, steps: -1, expected: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := NewEnumerated("Mode", 4, []string{"a", "b", "c", "d"}, tc.initial)
			p.Inc(tc.steps)
			assert.Equal(t, float64(tc.expected), p.Value())
		})
	}
}

func TestEnumeratedDisplayValue(t *testing.T) {
	p := NewEnumerated("Mode", 4, []string{"Single", "Timelapse", "Bulb"}, 1)
	assert.Equal(t, "Timelapse", p.DisplayValue())
	assert.Equal(t, false, p.IsFloat())
}

func TestEnumeratedInvalidInitialState(t *testing.T) {
	p := NewEnumerated("Mode", 4, []string{"a", "b"}, 17)
	assert.Equal(t, float64(0), p.Value())
}

func TestEnumeratedSetStateOutOfRangeIgnored(t *testing.T) {
	var h recordingHandler
	p := NewEnumerated("Mode", 4, []string{"a", "b", "c"}, 1)
	p.RegisterChangeHandler(&h)

	p.SetState(5)
	assert.Equal(t, float64(1), p.Value())
	p.SetState(-1)
	assert.Equal(t, float64(1), p.Value())
	assert.Equal(t, 0, len(h.events))
}

func TestChangeHandlerFiresOnlyOnChange(t *testing.T) {
	var h recordingHandler
	p := NewContinuous("Exposure", 2, 1.0, 0.5)
	p.RegisterChangeHandler(&h)

	p.SetValue(1.0) // same value, no event
	assert.Equal(t, 0, len(h.events))

	p.SetValue(2.0)
	assert.Equal(t, 1, len(h.events))
	assert.Equal(t, 2.0, h.events[0].Value)
	assert.Equal(t, 2, h.events[0].SourceID)
	assert.Equal(t, p, h.events[0].Param)

	p.SetValue(2.0)
	assert.Equal(t, 1, len(h.events))
}

func TestEnumeratedCallbackScenario(t *testing.T) {
	// three increments over a three-state parameter wrap back to the start
	var h recordingHandler
	p := NewEnumerated("Power", 7, []string{"Off", "Low", "High"}, 0)
	p.RegisterChangeHandler(&h)

	p.Inc(1)
	assert.Equal(t, "Low", p.DisplayValue())
	p.Inc(1)
	assert.Equal(t, "High", p.DisplayValue())
	p.Inc(1)
	assert.Equal(t, "Off", p.DisplayValue())

	assert.Equal(t, 3, len(h.events))
	assert.Equal(t, []float64{1, 2, 0}, []float64{h.events[0].Value, h.events[1].Value, h.events[2].Value})
}

func TestChangeEventUsesInjectedClock(t *testing.T) {
	var h recordingHandler
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	p := NewContinuous("Interval", 1, 0, 1)
	p.clock = &fakeClock{t: now}
	p.RegisterChangeHandler(&h)

	p.Inc(1)
	assert.Equal(t, 1, len(h.events))
	assert.Equal(t, now, h.events[0].Time)
}

func TestPlaceholderParameter(t *testing.T) {
	var p Parameter
	assert.Equal(t, "", p.Name())
	assert.Equal(t, float64(0), p.Value())
	assert.Equal(t, "0.00", p.DisplayValue())
	assert.Equal(t, true, p.IsFloat())
}
