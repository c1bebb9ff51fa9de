package fractal_test

import (
	"context"
	"testing"

	"github.com/Faultbox/fractals/internal/fractal"
	"github.com/Faultbox/fractals/internal/scene"
	"github.com/Faultbox/fractals/internal/schedule"
)

// scripted is a fractal.Random that replays fixed values. When a queue is
// empty it returns zero.
type scripted struct {
	ranges []float32
	floats []float32
	ints   []int
}

func (s *scripted) Range(min, max float32) float32 {
	if len(s.ranges) == 0 {
		return 0
	}
	v := s.ranges[0]
	s.ranges = s.ranges[1:]
	return v
}

func (s *scripted) Float32() float32 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scripted) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

// countingMaterial counts clones made from it.
type countingMaterial struct {
	color  fractal.Color
	clones *int
}

func (m *countingMaterial) Color() fractal.Color { return m.color }

func (m *countingMaterial) WithColor(c fractal.Color) fractal.Material {
	*m.clones++
	return &countingMaterial{color: c, clones: m.clones}
}

func testConfig(maxDepth int, probability float32) fractal.Config {
	return fractal.Config{
		Meshes:           []fractal.Mesh{scene.Cube, scene.Octahedron},
		Material:         scene.DefaultMaterial(),
		MaxDepth:         maxDepth,
		ChildScale:       0.5,
		SpawnProbability: probability,
		MaxRotationSpeed: 60,
		MaxTwist:         20,
	}
}

type harness struct {
	scene *scene.Scene
	sched *schedule.Scheduler
	tree  *fractal.Tree
	root  *fractal.Node
}

func grow(t *testing.T, cfg fractal.Config, rng fractal.Random) *harness {
	t.Helper()
	h := &harness{scene: scene.New(0), sched: schedule.New()}
	var err error
	h.tree, err = fractal.NewTree(cfg, h.scene, rng, h.sched)
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	h.root, err = h.tree.Grow(context.Background())
	if err != nil {
		t.Fatalf("Grow: %v", err)
	}
	return h
}

// step advances the scheduler and the tree together, like a frame.
func (h *harness) step(dt float64) {
	h.sched.Advance(dt)
	h.tree.Update(dt)
}
