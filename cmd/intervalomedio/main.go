package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/awesome-gocui/gocui"
	hd44780 "github.com/d2r2/go-hd44780"
	"github.com/logrusorgru/aurora"
	"github.com/tarm/serial"

	"github.com/lemewp/Intervalomedio/internal/pkg/input"
	"github.com/lemewp/Intervalomedio/internal/pkg/lcd"
	"github.com/lemewp/Intervalomedio/internal/pkg/logger"
	"github.com/lemewp/Intervalomedio/internal/pkg/menu"
	menuconfig "github.com/lemewp/Intervalomedio/internal/pkg/menu/config"
	"github.com/lemewp/Intervalomedio/internal/pkg/timelapse"
)

var log = logger.GetLogger()

var (
	ui      = flag.Bool("ui", false, "engage debug ui with a virtual lcd, no hardware needed")
	nocolor = flag.Bool("nocolor", false, "disable color")
	silent  = flag.Bool("silent", false, "no output logging")
	logLevel = flag.Int("loglevel", 3,
		"logging level, each level enables additional information class (0-4, default: 3)\n"+
			"\navailable options:\n"+
			"0: errors\n"+
			"1: warnings\n"+
			"2: general info (config loads, device status)\n"+
			"3: action events (parameter changes, captured frames)\n"+
			"4: debug",
	)
	configPath = flag.String("config", "config/intervalomedio.config", "main configuration file")
)

func init() {
	flag.Parse()
}

func handleSigs(wg *sync.WaitGroup, sigs <-chan os.Signal, cancel func(), g *gocui.Gui) {
	defer wg.Done()
	var counter int
	for sig := range sigs {
		if counter > 0 {
			fmt.Println("Dirty exit")
			os.Exit(1)
		}
		log.Info(fmt.Sprintf("signal received: %v", sig), logger.Debug)
		cancel()
		if g != nil {
			g.Close()
		}
		counter++
	}
}

func runUI(cfg Config, ui bool, sigs chan os.Signal) *gocui.Gui {
	var g *gocui.Gui
	if ui {
		var err error
		g, err = GetCli()
		if err != nil {
			panic(err)
		}

		go func() {
			if err := g.MainLoop(); err != nil {
				if err != gocui.ErrQuit {
					panic(err)
				}
				g.Close()
				sigs <- syscall.SIGINT // pretend that we received signal when exited from gui
			}
			g.Close()
		}()

		go func() {
			for {
				g.Update(Layout)
				time.Sleep(cfg.App.LogViewRate)
			}
		}()

		time.Sleep(time.Millisecond * 500) // waiting for view init
	}
	return g
}

// nullScreen swallows everything, used when no display is attached.
type nullScreen struct{}

func (nullScreen) Clear()               {}
func (nullScreen) SetPosition(_, _ int) {}
func (nullScreen) Print(_ string)       {}
func (nullScreen) BacklightOn()         {}
func (nullScreen) BacklightOff()        {}

func buildScreen(cfg Config, g *gocui.Gui) (menu.Screen, func()) {
	if g != nil {
		return newVirtualScreen(g), func() {}
	}
	if !cfg.Screen.Enabled {
		return nullScreen{}, func() {}
	}

	switch cfg.Screen.Type {
	case "serial":
		port, err := serial.OpenPort(&serial.Config{Name: cfg.Screen.Port, Baud: cfg.Screen.Baud})
		if err != nil {
			log.Info(fmt.Sprintf("failed to open serial port: %v", err), logger.Error)
			os.Exit(1)
		}
		return lcd.NewSerial(port, lcd.WithSettleDelay(cfg.Screen.Settle)), func() { port.Close() }
	case "i2c16x2", "i2c20x4":
		lcdType := hd44780.LCD_16x2
		if cfg.Screen.Type == "i2c20x4" {
			lcdType = hd44780.LCD_20x4
		}
		d, err := lcd.NewI2C(cfg.Screen.Address, cfg.Screen.Bus, lcdType)
		if err != nil {
			log.Info(fmt.Sprintf("failed to open i2c display: %v", err), logger.Error)
			os.Exit(1)
		}
		return d, func() { d.Close() }
	}

	return nullScreen{}, func() {}
}

// loadMenu builds sections from the definition file, binds every
// parameter to the capture engine and seeds the engine with the current
// values. A broken definition keeps the previous layout.
func loadMenu(m *menu.Menu, engine *timelapse.Engine, path string) {
	defs, err := menuconfig.Load(path)
	if err != nil {
		log.Info(fmt.Sprintf("menu definition load failed: %v", err), logger.Warning)
		return
	}

	def := defs[0]
	if len(defs) > 1 {
		// the menu drives one section at a time, nesting is a someday thing
		log.Info(fmt.Sprintf("%d sections defined, using \"%s\"", len(defs), def.Name), logger.Warning)
	}

	for i := 0; i < def.Section.Len(); i++ {
		p := def.Section.At(i)
		p.RegisterChangeHandler(engine)
		engine.OnChange(menu.ChangeEvent{
			SourceID: p.ID(),
			Time:     time.Now(),
			Value:    p.Value(),
			Param:    p,
		})
	}

	m.AddSection(def.Section)
	log.Info(fmt.Sprintf("menu loaded: %s (%d parameters)", def.Name, def.Section.Len()), logger.Info)
}

// runController is the single control loop: input events mutate the menu,
// the ticker drains dirty lines, definition changes rebuild the layout.
func runController(
	ctx context.Context, cfg Config, m *menu.Menu, engine *timelapse.Engine,
	events <-chan input.Event, reload <-chan bool,
) {
	ticker := time.NewTicker(cfg.App.PollRate)
	defer ticker.Stop()

	log.Info("Run controller", logger.Debug)
root:
	for {
		select {
		case <-ctx.Done():
			break root
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			switch ev.Type {
			case input.Next:
				m.Next()
			case input.Previous:
				m.Prev()
			case input.Increment:
				m.IncCurrent(ev.Steps)
			}
		case _, ok := <-reload:
			if !ok {
				reload = nil
				continue
			}
			loadMenu(m, engine, cfg.App.MenuFile)
		case <-ticker.C:
			m.Print()
		}
	}
	log.Info("Exit controller", logger.Debug)
}

func main() {
	createConfigDirectoryIfNeeded()

	var cfg = LoadConfig(*configPath)
	log.Info(fmt.Sprintf("config: %+v", cfg), logger.Debug)

	var level = *logLevel
	if level > 3 {
		level = logger.DebugLvl
	}

	var sigs = make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	g := runUI(cfg, *ui && !*silent, sigs)

	// this wait-group has to be propagated everywhere where usual logging appear
	wg := sync.WaitGroup{}

	wg.Add(1)
	go handleSigs(&wg, sigs, cancel, g)

	screen, closeScreen := buildScreen(cfg, g)

	var events <-chan input.Event
	if g != nil {
		virtual := make(chan input.Event, 8)
		if err := bindVirtualInput(g, virtual); err != nil {
			log.Info(fmt.Sprintf("virtual input binding failed: %v", err), logger.Warning)
		}
		events = virtual
	} else {
		reader, err := input.Open(cfg.Input.Device)
		if err != nil {
			log.Info(fmt.Sprintf("no input device, menu is display-only: %v", err), logger.Warning)
		} else {
			log.Info(fmt.Sprintf("input device: %s", reader.Name()), logger.Info)
			events = reader.ProcessEvents(ctx, cfg.Input.Grab)
		}
	}

	engine := timelapse.New(timelapse.TriggerFunc(func(exposure time.Duration) {
		log.Info(fmt.Sprintf("shutter fired, exposure %v", exposure), logger.Action)
	}), timelapse.Settings{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		engine.Run(ctx)
	}()

	m := menu.New(screen, menu.SystemClock(), menu.WithSleepTimeout(cfg.App.SleepTimeout))
	loadMenu(m, engine, cfg.App.MenuFile)

	reload := menuconfig.DetectMenuConfigChanges(ctx, cfg.App.MenuFile)

	if g != nil {
		go logView(g, !*nocolor, level)
	} else {
		go func() {
			if *silent {
				for range logger.Messages {
				}
				return
			}
			au := aurora.NewAurora(!*nocolor)
			for data := range logger.Messages {
				msg, err := unpack(data)
				if err != nil {
					fmt.Printf("%s\n", string(data))
					continue
				}
				s := prepareString(msg, au, level)
				if s != "" {
					fmt.Printf("%s\n", s)
				}
			}
		}()
	}

	runController(ctx, cfg, m, engine, events, reload)

	closeScreen()
	close(sigs)

	// closing logger can be safely invoked only when all internally running
	// goroutines (that may emit logs) are done
	wg.Wait()
	close(logger.Messages)
}
