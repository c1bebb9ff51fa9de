// fractalsim grows fractals without a window and reports what it built.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/fractals/internal/config"
	"github.com/Faultbox/fractals/internal/fractal"
	"github.com/Faultbox/fractals/internal/game"
	"github.com/Faultbox/fractals/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "run":
		err = cmdRun(args, os.Stdout)
	case "palette":
		err = cmdPalette(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `fractalsim - headless fractal generator

Usage:
  fractalsim <command> [options]

Commands:
  run      Grow a fractal and print per-depth node counts
  palette  Print the depth palette for the configured max depth
  config   Print the effective configuration

Examples:
  fractalsim run -depth 3 -probability 1 -seed 42
  fractalsim run -duration 10 -tree
  fractalsim palette -depth 6
  fractalsim config -format toml
  fractalsim config -depth 6 -save`)
}

// load parses the shared config flags plus any command-specific ones
// registered by extra, then loads config and initializes logging.
func load(name string, args []string, extra func(fs *flag.FlagSet)) (*config.Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := config.Flags{Probability: -1}
	f.Register(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(&f)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func cmdRun(args []string, out io.Writer) error {
	var (
		duration      float64
		tickRate      int
		untilComplete bool
		printTree     bool
	)
	cfg, err := load("run", args, func(fs *flag.FlagSet) {
		fs.Float64Var(&duration, "duration", 0, "Simulated seconds (0 = config value)")
		fs.IntVar(&tickRate, "tick", 0, "Ticks per simulated second (0 = config value)")
		fs.BoolVar(&untilComplete, "until-complete", true, "Stop as soon as nothing is left to grow")
		fs.BoolVar(&printTree, "tree", false, "Print the node hierarchy")
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	if duration <= 0 {
		duration = cfg.Simulation.Duration
	}
	if tickRate <= 0 {
		tickRate = cfg.Simulation.TickRate
	}

	g, err := game.New(cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := g.Start(ctx); err != nil {
		return err
	}
	stats, err := g.Run(ctx, duration, tickRate, untilComplete)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Seed:     %d\n", g.Seed())
	fmt.Fprintf(out, "Elapsed:  %s (%d ticks)\n", stats.Elapsed, stats.Frames)
	fmt.Fprintf(out, "Nodes:    %d of %d possible\n", stats.Nodes, g.Tree().Config().MaxNodes())
	fmt.Fprintf(out, "Pending:  %d\n", stats.Pending)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Depth  Nodes")
	for depth, n := range stats.ByDepth {
		fmt.Fprintf(out, "%5d  %5d\n", depth, n)
	}

	if printTree {
		fmt.Fprintln(out)
		writeTree(out, g.Tree().Root(), 0)
	}
	return nil
}

func writeTree(out io.Writer, n *fractal.Node, indent int) {
	if n == nil || n.Destroyed() {
		return
	}
	dir := "root"
	if n.ChildIndex() >= 0 {
		dir = fractal.Directions[n.ChildIndex()].Name
	}
	fmt.Fprintf(out, "%s%-7s %-10s %s speed=%+.1f\n",
		strings.Repeat("  ", indent), dir, n.Mesh().Name(),
		formatColor(n.Material().Color()), n.RotationSpeed())
	for _, c := range n.Children() {
		writeTree(out, c, indent+1)
	}
}

func cmdPalette(args []string, out io.Writer) error {
	cfg, err := load("palette", args, nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tc, err := cfg.Tree()
	if err != nil {
		return err
	}
	p := fractal.BuildPalette(tc.Material, tc.MaxDepth)
	fmt.Fprintln(out, "Depth  Variant 0              Variant 1")
	for depth := 0; depth < p.Rows(); depth++ {
		fmt.Fprintf(out, "%5d  %-21s  %s\n", depth,
			formatColor(p.At(depth, 0).Color()),
			formatColor(p.At(depth, 1).Color()))
	}
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	var (
		format string
		save   bool
		path   string
	)
	cfg, err := load("config", args, func(fs *flag.FlagSet) {
		fs.StringVar(&format, "format", "yaml", "Output format: yaml or toml")
		fs.BoolVar(&save, "save", false, "Write the config to the user config directory")
		fs.StringVar(&path, "out", "", "Write the config to this file instead (implies -save)")
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	if save || path != "" {
		if path == "" {
			err = cfg.Save()
			path = filepath.Join(config.ConfigDir(), "fractal.yaml")
		} else {
			err = cfg.SaveTo(path)
		}
		if err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		logger.Info("config saved", zap.String("path", path))
		_, err = fmt.Fprintf(out, "Saved %s\n", path)
		return err
	}

	data, err := cfg.Marshal("." + strings.ToLower(format))
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func formatColor(c fractal.Color) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}
