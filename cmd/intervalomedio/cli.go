package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/logrusorgru/aurora"

	"github.com/lemewp/Intervalomedio/internal/pkg/input"
	"github.com/lemewp/Intervalomedio/internal/pkg/lcd"
	"github.com/lemewp/Intervalomedio/internal/pkg/logger"
	"github.com/lemewp/Intervalomedio/internal/pkg/menu"
)

const (
	ViewLogs = "logs"
	ViewLCD  = "lcd"
)

func GetCli() (*gocui.Gui, error) {
	g, err := gocui.NewGui(gocui.Output256, true)
	if err != nil {
		return nil, err
	}

	g.SetManagerFunc(Layout)

	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return nil, err
	}

	return g, nil
}

func Layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(ViewLCD, maxX-lcd.Columns-3, 0, maxX-1, lcd.Lines+1, 0); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[lcd 16x2]"
		v.Autoscroll = false
		v.Wrap = false
		v.Frame = true
	}

	if v, err := g.SetView(ViewLogs, 0, 0, maxX-lcd.Columns-4, maxY-1, 0); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "[Logs]"
		v.Autoscroll = true
		v.Wrap = false
		v.Frame = true
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

// bindVirtualInput maps terminal keys to the same events a hardware
// encoder would deliver, so the whole stack runs without hardware.
func bindVirtualInput(g *gocui.Gui, events chan<- input.Event) error {
	push := func(ev input.Event) func(*gocui.Gui, *gocui.View) error {
		return func(*gocui.Gui, *gocui.View) error {
			select {
			case events <- ev:
			default:
			}
			return nil
		}
	}

	for _, bind := range []struct {
		key gocui.Key
		ev  input.Event
	}{
		{key: gocui.KeyArrowDown, ev: input.Event{Type: input.Next}},
		{key: gocui.KeyArrowRight, ev: input.Event{Type: input.Next}},
		{key: gocui.KeyArrowUp, ev: input.Event{Type: input.Previous}},
		{key: gocui.KeyArrowLeft, ev: input.Event{Type: input.Previous}},
	} {
		if err := g.SetKeybinding("", bind.key, gocui.ModNone, push(bind.ev)); err != nil {
			return err
		}
	}

	if err := g.SetKeybinding("", '+', gocui.ModNone, push(input.Event{Type: input.Increment, Steps: 1})); err != nil {
		return err
	}
	if err := g.SetKeybinding("", '-', gocui.ModNone, push(input.Event{Type: input.Increment, Steps: -1})); err != nil {
		return err
	}
	return nil
}

type TimeNanosecond time.Time

func (j *TimeNanosecond) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*j = TimeNanosecond(time.Unix(0, v))
	return nil
}

func (j TimeNanosecond) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(j))
}

type Entry struct {
	Ts     TimeNanosecond `json:"ts"`
	Caller string         `json:"caller"`
	Msg    string         `json:"msg"`
	Level  int            `json:"level"`

	ParamID int `json:"param_id"`
}

func unpack(data []byte) (Entry, error) {
	var v Entry
	err := json.Unmarshal(data, &v)
	return v, err
}

func gray(v uint8) aurora.Color {
	if v > 23 {
		v = 23
	}
	return aurora.Color(232+v) << 16
}

func color(r, g, b uint8) aurora.Color {
	return aurora.Color(16+36*r+6*g+b) << 16
}

func prepareString(msg Entry, au aurora.Aurora, logLevel int) string {
	if msg.Level > logLevel {
		return ""
	}

	var msgColor aurora.Color

	switch msg.Level {
	case logger.ErrorLvl:
		msgColor = color(5, 1, 1)
	case logger.WarningLvl:
		msgColor = color(5, 5, 1)
	case logger.InfoLvl:
		msgColor = gray(18)
	case logger.ActionLvl:
		msgColor = gray(15)
	case logger.DebugLvl:
		msgColor = gray(9)
	}

	t := time.Time(msg.Ts)
	timestamp := fmt.Sprintf(
		"[%s]",
		au.Reset(t.Format("15:04:05.000")).Colorize(color(1, 1, 5)).String(),
	)

	fields := ""
	if msg.ParamID != 0 {
		fields = fmt.Sprintf(" [param=%d]", msg.ParamID)
	}
	if logLevel >= logger.DebugLvl {
		fields += fmt.Sprintf(" (%s)", msg.Caller)
	}

	m := au.Reset(msg.Msg).Colorize(msgColor).String()
	return fmt.Sprintf("%s %s%s", timestamp, m, fields)
}

func logView(g *gocui.Gui, colors bool, logLevel int) {
	au := aurora.NewAurora(colors)

	for data := range logger.Messages {
		msg, err := unpack(data)
		if err != nil {
			g.Update(func(g *gocui.Gui) error {
				v, err := g.View(ViewLogs)
				if err != nil {
					return nil
				}
				v.Write(data)
				v.Write([]byte{'\n'})
				return nil
			})
			continue
		}

		s := prepareString(msg, au, logLevel)
		if s == "" {
			continue
		}
		g.Update(func(g *gocui.Gui) error {
			v, err := g.View(ViewLogs)
			if err != nil {
				return nil
			}
			v.Write([]byte(s))
			v.Write([]byte{'\n'})
			return nil
		})
	}
}

var _ menu.Screen = (*virtualScreen)(nil)

// virtualScreen renders into the gocui LCD view instead of hardware,
// emulating the 16x2 character matrix including cursor addressing.
type virtualScreen struct {
	mu        sync.Mutex
	gui       *gocui.Gui
	rows      [lcd.Lines][lcd.Columns]byte
	line, col int
	backlight bool
}

func newVirtualScreen(g *gocui.Gui) *virtualScreen {
	v := &virtualScreen{gui: g, backlight: true}
	v.blank()
	return v
}

func (v *virtualScreen) blank() {
	for l := range v.rows {
		for c := range v.rows[l] {
			v.rows[l][c] = ' '
		}
	}
	v.line, v.col = 0, 0
}

func (v *virtualScreen) Clear() {
	v.mu.Lock()
	v.blank()
	v.mu.Unlock()
	v.render()
}

func (v *virtualScreen) SetPosition(line, col int) {
	v.mu.Lock()
	if line < 0 {
		line = 0
	}
	if line >= lcd.Lines {
		line = lcd.Lines - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= lcd.Columns {
		col = lcd.Columns - 1
	}
	v.line, v.col = line, col
	v.mu.Unlock()
}

func (v *virtualScreen) Print(text string) {
	v.mu.Lock()
	for _, b := range []byte(text) {
		if v.col >= lcd.Columns {
			break
		}
		v.rows[v.line][v.col] = b
		v.col++
	}
	v.mu.Unlock()
	v.render()
}

func (v *virtualScreen) BacklightOn() {
	v.mu.Lock()
	v.backlight = true
	v.mu.Unlock()
	v.render()
}

func (v *virtualScreen) BacklightOff() {
	v.mu.Lock()
	v.backlight = false
	v.mu.Unlock()
	v.render()
}

func (v *virtualScreen) render() {
	v.mu.Lock()
	var lines [lcd.Lines]string
	for l := range v.rows {
		lines[l] = string(v.rows[l][:])
	}
	backlight := v.backlight
	v.mu.Unlock()

	v.gui.Update(func(g *gocui.Gui) error {
		view, err := g.View(ViewLCD)
		if err != nil {
			return nil
		}
		view.Clear()
		if backlight {
			view.Title = "[lcd 16x2]"
		} else {
			view.Title = "[lcd off]"
		}
		for _, line := range lines {
			fmt.Fprintln(view, line)
		}
		return nil
	})
}
