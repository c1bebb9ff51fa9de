package config

import "flag"

// Flags holds command-line overrides. Zero values (and -1 for probability)
// mean "not set".
type Flags struct {
	Config      string
	Debug       bool
	Seed        uint64
	Depth       int
	Scale       float64
	Probability float64
	Windowed    bool
	Fullscreen  bool
	Width       int
	Height      int
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file (.yaml, .yml or .toml)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Uint64Var(&f.Seed, "seed", 0, "Random seed (0 = from clock)")
	fs.IntVar(&f.Depth, "depth", 0, "Maximum fractal depth")
	fs.Float64Var(&f.Scale, "scale", 0, "Child scale in (0, 1]")
	fs.Float64Var(&f.Probability, "probability", -1, "Spawn probability in [0, 1]")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
}

var cliFlags = Flags{Probability: -1}

// ParseFlags registers and parses the global command-line flags. Call this early in main().
func ParseFlags() {
	cliFlags.Register(flag.CommandLine)
	flag.Parse()
}

// CLI returns the flags parsed by ParseFlags.
func CLI() *Flags {
	return &cliFlags
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Seed != 0 {
		cfg.Simulation.Seed = f.Seed
	}
	if f.Depth > 0 {
		cfg.Fractal.MaxDepth = f.Depth
	}
	if f.Scale > 0 {
		cfg.Fractal.ChildScale = float32(f.Scale)
	}
	if f.Probability >= 0 {
		cfg.Fractal.SpawnProbability = float32(f.Probability)
	}
	if f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
}
