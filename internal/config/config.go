// Package config loads the game settings from defaults, an optional JSON
// file and command line flags.
package config

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"snakegame/internal/game"
)

// Board size limits.
const (
	MinSize = 2
	MaxSize = 200
)

// Config holds the settings for a session. Durations are stored as
// milliseconds in the file.
type Config struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Walls         string `json:"walls"`
	IntervalMS    int    `json:"interval_ms"`
	StepMS        int    `json:"step_ms"`
	MinIntervalMS int    `json:"min_interval_ms"`
	// Seed for food placement. 0 seeds from the clock.
	Seed int64 `json:"seed"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:         16,
		Height:        16,
		Walls:         game.Solid.String(),
		IntervalMS:    int(game.DefaultBaseInterval / time.Millisecond),
		StepMS:        int(game.DefaultStep / time.Millisecond),
		MinIntervalMS: int(game.DefaultMinInterval / time.Millisecond),
	}
}

// Load returns the defaults overlaid with the file at path. An empty path
// skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := readFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %v", err)
	}
	if err := decode(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %v", path, err)
	}
	return nil
}

func decode(data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Flags holds the flag values registered by RegisterFlags.
type Flags struct {
	fs     *flag.FlagSet
	Path   string
	values Config
}

// RegisterFlags registers the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.Path, "config", "", "path to a JSON config file")
	fs.IntVar(&f.values.Width, "width", d.Width, "board width in cells")
	fs.IntVar(&f.values.Height, "height", d.Height, "board height in cells")
	fs.StringVar(&f.values.Walls, "walls", d.Walls, "wall mode at start: solid or wrap")
	fs.IntVar(&f.values.IntervalMS, "interval_ms", d.IntervalMS, "tick interval at round start")
	fs.IntVar(&f.values.StepMS, "step_ms", d.StepMS, "interval decrease per food eaten")
	fs.IntVar(&f.values.MinIntervalMS, "min_interval_ms", d.MinIntervalMS, "shortest tick interval")
	fs.Int64Var(&f.values.Seed, "seed", d.Seed, "random seed, 0 for time based")
	return f
}

// Apply copies every flag that was set on the command line into cfg.
// Flags left at their defaults do not override the file.
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Width = f.values.Width
		case "height":
			cfg.Height = f.values.Height
		case "walls":
			cfg.Walls = f.values.Walls
		case "interval_ms":
			cfg.IntervalMS = f.values.IntervalMS
		case "step_ms":
			cfg.StepMS = f.values.StepMS
		case "min_interval_ms":
			cfg.MinIntervalMS = f.values.MinIntervalMS
		case "seed":
			cfg.Seed = f.values.Seed
		}
	})
}

// WallsSet reports whether -walls was given on the command line. An explicit
// flag wins over later edits of the config file.
func (f *Flags) WallsSet() bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "walls" {
			set = true
		}
	})
	return set
}

// Resolve loads the file named by -config and applies the flags on top.
func (f *Flags) Resolve() (Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return Config{}, err
	}
	f.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for values the game cannot run with.
func (c Config) Validate() error {
	if c.Width < MinSize || c.Width > MaxSize {
		return fmt.Errorf("width %d out of range [%d, %d]", c.Width, MinSize, MaxSize)
	}
	if c.Height < MinSize || c.Height > MaxSize {
		return fmt.Errorf("height %d out of range [%d, %d]", c.Height, MinSize, MaxSize)
	}
	if _, err := game.ParseWallMode(c.Walls); err != nil {
		return err
	}
	if c.IntervalMS <= 0 || c.StepMS <= 0 || c.MinIntervalMS <= 0 {
		return fmt.Errorf("intervals must be positive: interval=%d step=%d min=%d", c.IntervalMS, c.StepMS, c.MinIntervalMS)
	}
	if c.MinIntervalMS > c.IntervalMS {
		return fmt.Errorf("min_interval_ms %d exceeds interval_ms %d", c.MinIntervalMS, c.IntervalMS)
	}
	return nil
}

// WallMode returns the parsed wall mode, Solid if it does not parse.
func (c Config) WallMode() game.WallMode {
	w, _ := game.ParseWallMode(c.Walls)
	return w
}

// GameOptions returns the tick timing for game.New.
func (c Config) GameOptions() game.Options {
	return game.Options{
		BaseInterval: time.Duration(c.IntervalMS) * time.Millisecond,
		Step:         time.Duration(c.StepMS) * time.Millisecond,
		MinInterval:  time.Duration(c.MinIntervalMS) * time.Millisecond,
	}
}
