package timelapse

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lemewp/Intervalomedio/internal/pkg/menu"
)

type countingTrigger struct {
	mu        sync.Mutex
	exposures []time.Duration
}

func (c *countingTrigger) Fire(exposure time.Duration) {
	c.mu.Lock()
	c.exposures = append(c.exposures, exposure)
	c.mu.Unlock()
}

func (c *countingTrigger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.exposures)
}

func change(id int, value float64) menu.ChangeEvent {
	return menu.ChangeEvent{SourceID: id, Value: value}
}

func TestOnChangeUpdatesSettings(t *testing.T) {
	e := New(&countingTrigger{}, Settings{})

	e.OnChange(change(ParamInterval, 2.5))
	e.OnChange(change(ParamExposure, 0.5))
	e.OnChange(change(ParamFrames, 120))
	e.OnChange(change(ParamMode, float64(Timelapse)))

	assert.Equal(t, Settings{
		Interval:   2500 * time.Millisecond,
		Exposure:   500 * time.Millisecond,
		FrameLimit: 120,
		Mode:       Timelapse,
	}, e.Settings())
}

func TestOnChangeRejectsInvalidValues(t *testing.T) {
	initial := Settings{
		Interval: time.Second,
		Exposure: time.Second,
		Mode:     Timelapse,
	}
	e := New(&countingTrigger{}, initial)

	e.OnChange(change(ParamInterval, 0))
	e.OnChange(change(ParamInterval, -1))
	e.OnChange(change(ParamExposure, -0.5))
	e.OnChange(change(ParamFrames, -10))
	e.OnChange(change(ParamMode, 7))
	e.OnChange(change(99, 3))

	assert.Equal(t, initial, e.Settings())
}

func TestModeChangeResetsFrameCounter(t *testing.T) {
	e := New(&countingTrigger{}, Settings{Mode: Timelapse})
	e.frames = 42

	e.OnChange(change(ParamMode, float64(Single)))
	assert.Equal(t, 0, e.Frames())
}

func TestRunFiresUpToFrameLimit(t *testing.T) {
	trigger := &countingTrigger{}
	e := New(trigger, Settings{
		Interval:   5 * time.Millisecond,
		Exposure:   time.Millisecond,
		FrameLimit: 3,
		Mode:       Timelapse,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	e.Run(ctx)

	assert.Equal(t, 3, trigger.count())
	assert.Equal(t, 3, e.Frames())
	assert.Equal(t, time.Millisecond, trigger.exposures[0])
}

func TestRunIdlesOutsideTimelapseMode(t *testing.T) {
	trigger := &countingTrigger{}
	e := New(trigger, Settings{
		Interval: 5 * time.Millisecond,
		Mode:     Single,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	e.Run(ctx)

	assert.Equal(t, 0, trigger.count())
}
