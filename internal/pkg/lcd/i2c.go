package lcd

import (
	device "github.com/d2r2/go-hd44780"
	"github.com/d2r2/go-i2c"
	d2r2logger "github.com/d2r2/go-logger"

	"github.com/lemewp/Intervalomedio/internal/pkg/menu"
)

var _ menu.Screen = (*I2C)(nil)

// I2C drives an HD44780 display behind a PCF8574 I2C backpack.
type I2C struct {
	lcd *device.Lcd
	bus *i2c.I2C
}

func NewI2C(addr uint8, bus int, lcdType device.LcdType) (*I2C, error) {
	d2r2logger.ChangePackageLogLevel("i2c", d2r2logger.InfoLevel)

	raw, err := i2c.NewI2C(addr, bus)
	if err != nil {
		return nil, err
	}

	lcd, err := device.NewLcd(raw, lcdType)
	if err != nil {
		raw.Close()
		return nil, err
	}

	return &I2C{lcd: lcd, bus: raw}, nil
}

func (d *I2C) Clear() {
	d.lcd.Clear()
}

func (d *I2C) SetPosition(line, col int) {
	d.lcd.SetPosition(line, col)
}

func (d *I2C) Print(text string) {
	d.lcd.Write([]byte(text))
}

func (d *I2C) BacklightOn() {
	d.lcd.BacklightOn()
}

func (d *I2C) BacklightOff() {
	d.lcd.BacklightOff()
}

func (d *I2C) Close() error {
	return d.bus.Close()
}
