package menu

import "time"

// Clock is the menu's time source, an explicit collaborator so the sleep
// timeout and event timestamps are testable without waiting.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// Screen is the display sink the menu renders into. Implemented by the
// lcd package drivers and by the virtual LCD of the debug UI.
type Screen interface {
	Clear()
	SetPosition(line, col int)
	Print(text string)
	BacklightOn()
	BacklightOff()
}
