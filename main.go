package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-ledfield/animation"
	"go-ledfield/config"
	"go-ledfield/debug"
	"go-ledfield/effect"
	"go-ledfield/geom"
	"go-ledfield/led"
	"go-ledfield/pixel"
	"go-ledfield/settings"
	"go-ledfield/sink"
	"go-ledfield/theme"
	"go-ledfield/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("go-ledfield", flag.ExitOnError)
	configPath := fs.String("config", "", "config file (default ~/.config/go-ledfield/config.json)")
	debugLog := fs.Bool("debug", false, "write a debug log to "+debug.DefaultPath())
	config.RegisterFlags(fs)
	fs.Parse(args)

	if *debugLog || os.Getenv("DEBUG") != "" {
		if err := debug.Enable(); err != nil {
			fmt.Printf("Warning: debug log disabled: %v\n", err)
		}
	}
	defer debug.Disable()

	cfg, err := loadConfig(*configPath, fs)
	if err != nil {
		return err
	}

	var layout pixel.Layout
	if cfg.LayoutPath != "" {
		if layout, err = pixel.LoadLayout(cfg.LayoutPath); err != nil {
			return err
		}
	}

	store, err := settings.Load(cfg.SettingsPath)
	if err != nil {
		// keep running on defaults; the file is rewritten on save
		fmt.Printf("Warning: %v\n", err)
		debug.Error("settings", err)
	}

	palette, err := theme.LoadOrDefault(cfg.PalettePath)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	ctrl, err := led.NewController(cfg.PixelCount, layout, led.Options{
		Env:      effect.NewEnv(fixtureBounds(cfg, layout), time.Now().UnixNano()),
		Settings: store,
	})
	if err != nil {
		return err
	}

	var out sink.FrameSink
	if cfg.DryRun {
		out = sink.NewRecorder()
	} else if out, err = sink.DialDDP(cfg.Address); err != nil {
		return err
	}

	engine, err := animation.NewEngine(ctrl, out, animation.Options{
		UpdateInterval:         cfg.UpdateEvery(),
		TransmitInterval:       cfg.TransmitEvery(),
		MaxConsecutiveFailures: cfg.MaxConsecutiveFailures,
		PauseUpdates:           cfg.PauseUpdatesWhenDisabled,
	})
	if err != nil {
		out.Close()
		return err
	}
	if err := engine.Start(); err != nil {
		return err
	}

	m := tui.NewModel(engine, theme.New(palette))
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, runErr := p.Run()

	stopErr := engine.Stop()
	if runErr != nil {
		return runErr
	}
	if fm, ok := final.(tui.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return stopErr
}

// loadConfig layers the config file, then the environment, then flags.
func loadConfig(path string, fs *flag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(fs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	debug.Log("config", "%+v", *cfg)
	return cfg, nil
}

// fixtureBounds prefers configured bounds, then the layout's extent, then
// the default fixture volume.
func fixtureBounds(cfg *config.Config, layout pixel.Layout) geom.Box {
	if !cfg.Bounds.IsZero() {
		return cfg.Bounds
	}
	if b := layout.Bounds(); !b.IsZero() {
		s := b.Size()
		if s.X > 0 && s.Y > 0 && s.Z > 0 {
			return b
		}
	}
	return geom.DefaultBox
}
