package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-ini/ini"

	"github.com/lemewp/Intervalomedio/internal/pkg/logger"
)

type App struct {
	PollRate     time.Duration
	SleepTimeout time.Duration
	LogViewRate  time.Duration
	MenuFile     string
}

type ScreenConfig struct {
	Enabled bool
	Type    string // serial / i2c16x2 / i2c20x4
	Port    string
	Baud    int
	Settle  time.Duration
	Address uint8
	Bus     int
}

type InputConfig struct {
	Device string
	Grab   bool
}

type Config struct {
	App    App
	Screen ScreenConfig
	Input  InputConfig
}

func LoadConfig(path string) Config {
	cfg, err := ini.Load(path)
	if err != nil {
		panic(err)
	}

	var c Config

	// [intervalomedio]
	app, _ := cfg.GetSection("intervalomedio")
	pollRate, _ := app.GetKey("poll_rate")
	i, err := pollRate.Int()
	if err != nil {
		panic(err)
	}
	c.App.PollRate = time.Second / time.Duration(i)

	sleepTimeout, _ := app.GetKey("sleep_timeout")
	i, err = sleepTimeout.Int()
	if err != nil {
		panic(err)
	}
	c.App.SleepTimeout = time.Millisecond * time.Duration(i)

	logViewRate, _ := app.GetKey("log_view_rate")
	i, err = logViewRate.Int()
	if err != nil {
		panic(err)
	}
	c.App.LogViewRate = time.Second / time.Duration(i)

	menuFile, _ := app.GetKey("menu_file")
	c.App.MenuFile = menuFile.String()

	// [screen]
	screen, _ := cfg.GetSection("screen")
	enabled, _ := screen.GetKey("enabled")
	b, err := enabled.Bool()
	if err != nil {
		panic(err)
	}
	c.Screen.Enabled = b

	screenType, _ := screen.GetKey("type")
	switch t := screenType.Value(); t {
	case "serial", "i2c16x2", "i2c20x4":
		c.Screen.Type = t
	default:
		panic(fmt.Sprintf("unsupported screen type: %q", t))
	}

	port, _ := screen.GetKey("port")
	c.Screen.Port = port.String()

	baud, _ := screen.GetKey("baud")
	i, err = baud.Int()
	if err != nil {
		panic(err)
	}
	c.Screen.Baud = i

	settle, _ := screen.GetKey("settle_ms")
	i, err = settle.Int()
	if err != nil {
		panic(err)
	}
	c.Screen.Settle = time.Millisecond * time.Duration(i)

	address, _ := screen.GetKey("address")
	i, err = address.Int()
	if err != nil {
		panic(err)
	}
	c.Screen.Address = uint8(i)

	bus, _ := screen.GetKey("bus")
	i, err = bus.Int()
	if err != nil {
		panic(err)
	}
	c.Screen.Bus = i

	// [input]
	in, _ := cfg.GetSection("input")
	device, _ := in.GetKey("device")
	c.Input.Device = device.String()

	grab, _ := in.GetKey("grab")
	b, err = grab.Bool()
	if err != nil {
		panic(err)
	}
	c.Input.Grab = b

	return c
}

//go:embed config
var templateConfig embed.FS

const configDir = "config"

// createConfigDirectoryIfNeeded materializes the embedded template config
// tree next to the binary on first run.
func createConfigDirectoryIfNeeded() error {
	cdir, err := os.OpenFile(configDir, os.O_RDONLY, 0)
	if err == nil {
		cdir.Close()
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot open config directory: %v", err)
	}
	log.Info("config not exist, generating tree...", logger.Info)

	err = fs.WalkDir(templateConfig, configDir, func(path string, d fs.DirEntry, err error) error {
		if d.IsDir() {
			err := os.MkdirAll(path, 0o777)
			if err != nil {
				return fmt.Errorf("cannot create \"%s\" directory: %w", path, err)
			}
			return nil
		}

		data, err := fs.ReadFile(templateConfig, path)
		if err != nil {
			return fmt.Errorf("cannot read \"%s\" template file: %w", path, err)
		}

		err = os.WriteFile(path, data, 0o666)
		if err != nil {
			return fmt.Errorf("cannot write data into \"%s\" file: %w", path, err)
		}

		log.Info(fmt.Sprintf("Created \"%s\" file", path), logger.Debug)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("config generation done", logger.Info)
	return nil
}
