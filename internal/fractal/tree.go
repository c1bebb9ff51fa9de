package fractal

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/fractals/internal/logger"
)

// Tree owns one fractal: its configuration, palette and live nodes.
// All methods run on the host timeline; Tree is not safe for concurrent use.
type Tree struct {
	cfg     *Config
	palette *Palette

	world World
	rng   Random
	sched Scheduler

	root    *Node
	nodes   map[uint32]*Node
	lastID  uint32
	onSpawn []func(*Node)
}

// NewTree validates cfg and returns an empty tree. Call Grow to create the root.
func NewTree(cfg Config, world World, rng Random, sched Scheduler) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.SpawnDelay == 0 {
		cfg.SpawnDelay = DefaultSpawnDelay
	}
	cfg.Meshes = append([]Mesh(nil), cfg.Meshes...)
	return &Tree{
		cfg:   &cfg,
		world: world,
		rng:   rng,
		sched: sched,
		nodes: make(map[uint32]*Node),
	}, nil
}

// Grow creates and activates the root node. The palette is built here, before
// any child can exist, and shared by the whole tree. Cancelling ctx stops all
// pending child creation in the tree.
func (t *Tree) Grow(ctx context.Context) (*Node, error) {
	if t.root != nil && !t.root.destroyed {
		return nil, fmt.Errorf("tree already has a live root %d", t.root.id)
	}
	entity, err := t.world.CreateEntity(rootName, nil)
	if err != nil {
		return nil, fmt.Errorf("creating root entity: %w", err)
	}
	if t.palette == nil {
		t.palette = BuildPalette(t.cfg.Material, t.cfg.MaxDepth)
	}

	root := newNode(t, ctx, entity, nil)
	t.root = root
	logger.Info("growing fractal",
		zap.Int("max_depth", t.cfg.MaxDepth),
		zap.Float32("child_scale", t.cfg.ChildScale),
		zap.Float32("spawn_probability", t.cfg.SpawnProbability),
		zap.Int("max_nodes", t.cfg.MaxNodes()),
	)
	root.activate()
	return root, nil
}

// OnSpawn registers fn to run after each node, root included, activates.
func (t *Tree) OnSpawn(fn func(*Node)) {
	t.onSpawn = append(t.onSpawn, fn)
}

// Update advances every live node by dt seconds.
func (t *Tree) Update(dt float64) {
	for _, n := range t.nodes {
		n.update(dt)
	}
}

// Root returns the current root, nil before Grow.
func (t *Tree) Root() *Node { return t.root }

// Config returns the shared configuration. Callers must not modify it.
func (t *Tree) Config() *Config { return t.cfg }

// Palette returns the shared palette, nil before the first Grow.
func (t *Tree) Palette() *Palette { return t.palette }

// Get returns a live node by ID.
func (t *Tree) Get(id uint32) *Node { return t.nodes[id] }

// Count returns the number of live nodes.
func (t *Tree) Count() int { return len(t.nodes) }

// CountByDepth returns live node counts indexed by depth.
func (t *Tree) CountByDepth() []int {
	counts := make([]int, t.cfg.MaxDepth+1)
	for _, n := range t.nodes {
		counts[n.depth]++
	}
	return counts
}

// Pending returns the number of queued child creations across live nodes.
func (t *Tree) Pending() int {
	total := 0
	for _, n := range t.nodes {
		total += n.PendingChildren()
	}
	return total
}

// Nodes returns live nodes ordered by ID (creation order).
func (t *Tree) Nodes() []*Node {
	result := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}

func (t *Tree) nextID() uint32 {
	t.lastID++
	return t.lastID
}

func (t *Tree) add(n *Node) {
	t.nodes[n.id] = n
}

func (t *Tree) remove(n *Node) {
	delete(t.nodes, n.id)
}
