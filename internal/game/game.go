// Package game runs a fractal simulation: scene, scheduler, random source and
// tree stepped together on one timeline. It has no rendering dependencies so
// both the viewer and the headless tool drive the same loop.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/fractals/internal/config"
	"github.com/Faultbox/fractals/internal/fractal"
	"github.com/Faultbox/fractals/internal/logger"
	"github.com/Faultbox/fractals/internal/rng"
	"github.com/Faultbox/fractals/internal/scene"
	"github.com/Faultbox/fractals/internal/schedule"
)

// ErrNoRoot is returned by Prune when there is no live fractal.
var ErrNoRoot = errors.New("no live fractal")

// Stats is a snapshot of the simulation.
type Stats struct {
	Elapsed  time.Duration
	Frames   int
	Nodes    int
	Pending  int
	Entities int
	ByDepth  []int
}

// Complete reports whether nothing is left to grow.
func (s Stats) Complete() bool {
	return s.Pending == 0
}

// Game is the main simulation instance.
type Game struct {
	config *config.Config

	scene *scene.Scene
	sched *schedule.Scheduler
	rng   *rng.Source
	tree  *fractal.Tree

	ctx    context.Context
	cancel context.CancelFunc

	frames int
}

// New creates a simulation from cfg. Nothing grows until Start.
func New(cfg *config.Config) (*Game, error) {
	treeCfg, err := cfg.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to build fractal config: %w", err)
	}

	g := &Game{
		config: cfg,
		scene:  scene.New(cfg.Simulation.MaxEntities),
		sched:  schedule.New(),
		rng:    rng.New(cfg.Simulation.Seed),
	}
	g.tree, err = fractal.NewTree(treeCfg, g.scene, g.rng, g.sched)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree: %w", err)
	}

	logger.Info("game initialized",
		zap.Uint64("seed", g.rng.Seed()),
		zap.Int("max_entities", cfg.Simulation.MaxEntities),
	)
	return g, nil
}

// Start grows the first fractal. Cancelling ctx stops all further growth.
func (g *Game) Start(ctx context.Context) error {
	g.ctx, g.cancel = context.WithCancel(ctx)
	if _, err := g.tree.Grow(g.ctx); err != nil {
		return fmt.Errorf("failed to grow fractal: %w", err)
	}
	return nil
}

// Step advances the timeline by dt seconds: due child creations run first,
// then every live node spins.
func (g *Game) Step(dt float64) {
	g.sched.Advance(dt)
	g.tree.Update(dt)
	g.frames++
}

// Run steps the simulation at a fixed tick rate until duration seconds have
// been simulated, the tree is fully grown (when stopWhenComplete is set) or
// ctx is done.
func (g *Game) Run(ctx context.Context, duration float64, tickRate int, stopWhenComplete bool) (Stats, error) {
	if tickRate <= 0 {
		return g.Stats(), fmt.Errorf("tick rate must be positive, got %d", tickRate)
	}
	dt := 1 / float64(tickRate)
	ticks := int(duration * float64(tickRate))

	logger.Debug("running simulation",
		zap.Float64("duration", duration),
		zap.Int("tick_rate", tickRate),
		zap.Int("ticks", ticks),
	)

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return g.Stats(), err
		}
		g.Step(dt)
		if stopWhenComplete && g.tree.Pending() == 0 {
			break
		}
		if (i+1)%tickRate == 0 {
			logger.Debug("tick",
				zap.Duration("elapsed", g.sched.Now()),
				zap.Int("nodes", g.tree.Count()),
				zap.Int("pending", g.tree.Pending()),
			)
		}
	}
	return g.Stats(), nil
}

// Regrow destroys the current fractal, if any, and grows a new one from the
// same configuration and palette.
func (g *Game) Regrow() error {
	if g.ctx == nil {
		return g.Start(context.Background())
	}
	if err := g.Prune(); err != nil && !errors.Is(err, ErrNoRoot) {
		return err
	}
	if _, err := g.tree.Grow(g.ctx); err != nil {
		return fmt.Errorf("failed to regrow fractal: %w", err)
	}
	logger.Info("fractal regrown")
	return nil
}

// Prune destroys the root entity and with it the whole fractal. Pending child
// creations are dropped.
func (g *Game) Prune() error {
	root := g.tree.Root()
	if root == nil || root.Destroyed() {
		return ErrNoRoot
	}
	entity, ok := root.Entity().(*scene.Entity)
	if !ok {
		return fmt.Errorf("root entity has unexpected type %T", root.Entity())
	}
	g.scene.Destroy(entity)
	logger.Info("fractal pruned", zap.Int("entities", g.scene.Count()))
	return nil
}

// Cut destroys e and everything grown from it. Cutting the root entity is
// the same as Prune.
func (g *Game) Cut(e *scene.Entity) {
	if e == nil || e.Destroyed() {
		return
	}
	before := g.scene.Count()
	g.scene.Destroy(e)
	logger.Info("subtree cut",
		zap.Uint32("entity", e.ID()),
		zap.Int("depth", e.Depth()),
		zap.Int("removed", before-g.scene.Count()),
	)
}

// Stats returns a snapshot of the simulation.
func (g *Game) Stats() Stats {
	return Stats{
		Elapsed:  g.sched.Now(),
		Frames:   g.frames,
		Nodes:    g.tree.Count(),
		Pending:  g.tree.Pending(),
		Entities: g.scene.Count(),
		ByDepth:  g.tree.CountByDepth(),
	}
}

// Scene returns the host scene graph.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Tree returns the fractal tree.
func (g *Game) Tree() *fractal.Tree { return g.tree }

// Seed returns the random seed in use.
func (g *Game) Seed() uint64 { return g.rng.Seed() }

// Close stops growth and clears the scene.
func (g *Game) Close() {
	logger.Info("closing game")
	if g.cancel != nil {
		g.cancel()
	}
	g.scene.Clear()
}
