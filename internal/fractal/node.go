// Package fractal grows a recursive tree of spinning, colored 3D objects.
//
// A Tree owns the shared configuration and palette. Its root node activates
// immediately; every node below max depth then creates a random subset of its
// five possible children one at a time, each child repeating the process one
// level deeper. All host interaction goes through the World, Entity, Random
// and Scheduler interfaces.
package fractal

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/fractals/internal/logger"
	"github.com/Faultbox/fractals/pkg/math"
)

const (
	rootName  = "Fractal"
	childName = "Fractal Child"
)

// Node is one element of the fractal tree.
type Node struct {
	id     uint32
	tree   *Tree
	entity Entity
	parent *Node

	depth      int
	childIndex int // -1 for the root

	rotationSpeed float32
	mesh          Mesh
	variant       int

	ctx    context.Context
	cancel context.CancelFunc

	children  []*Node
	scheduled int
	attempted int
	destroyed bool
}

func newNode(t *Tree, ctx context.Context, entity Entity, parent *Node) *Node {
	n := &Node{
		id:         t.nextID(),
		tree:       t,
		entity:     entity,
		parent:     parent,
		childIndex: -1,
	}
	n.ctx, n.cancel = context.WithCancel(ctx)
	entity.OnDestroy(n.onDestroy)
	return n
}

// initialize places a fresh child in direction i of parent.
func (n *Node) initialize(parent *Node, i int) {
	cfg := n.tree.cfg
	n.depth = parent.depth + 1
	n.childIndex = i
	n.entity.SetLocalScale(math.Splat(cfg.ChildScale))
	n.entity.SetLocalPosition(ChildOffset(i, cfg.ChildScale))
	n.entity.SetLocalRotation(Directions[i].Orientation)
}

// activate gives the node its randomized appearance and starts growing
// children when it is not a leaf.
func (n *Node) activate() {
	cfg := n.tree.cfg
	rng := n.tree.rng

	n.rotationSpeed = rng.Range(-cfg.MaxRotationSpeed, cfg.MaxRotationSpeed)
	twist := math.QuatFromEuler(rng.Range(-cfg.MaxTwist, cfg.MaxTwist), 0, 0)
	n.entity.SetLocalRotation(n.entity.LocalRotation().Mul(twist))

	n.mesh = cfg.Meshes[rng.IntN(len(cfg.Meshes))]
	n.variant = rng.IntN(2)
	n.entity.SetMesh(n.mesh)
	n.entity.SetMaterial(n.tree.palette.At(n.depth, n.variant))

	n.tree.add(n)
	logger.Debug("node activated",
		zap.Uint32("id", n.id),
		zap.Int("depth", n.depth),
		zap.Int("child", n.childIndex),
		zap.String("mesh", n.mesh.Name()),
		zap.Int("variant", n.variant),
	)

	for _, fn := range n.tree.onSpawn {
		fn(n)
	}

	if n.depth < cfg.MaxDepth {
		n.growChildren()
	}
}

// growChildren draws once per direction, in table order, and queues the
// winners. Each queued child appears one spawn delay after the previous one.
func (n *Node) growChildren() {
	var queue []int
	for i := range Directions {
		if n.tree.rng.Float32() < n.tree.cfg.SpawnProbability {
			queue = append(queue, i)
		}
	}
	n.scheduled = len(queue)
	n.scheduleNext(queue)
}

func (n *Node) scheduleNext(queue []int) {
	if len(queue) == 0 {
		return
	}
	n.tree.sched.After(n.ctx, n.tree.cfg.SpawnDelay, func() {
		n.spawnChild(queue[0])
		n.scheduleNext(queue[1:])
	})
}

func (n *Node) spawnChild(i int) {
	if n.destroyed {
		return
	}
	n.attempted++
	entity, err := n.tree.world.CreateEntity(childName, n.entity)
	if err != nil {
		logger.Warn("child creation failed",
			zap.Uint32("parent", n.id),
			zap.Int("depth", n.depth+1),
			zap.String("direction", Directions[i].Name),
			zap.Error(err),
		)
		return
	}
	child := newNode(n.tree, n.ctx, entity, n)
	child.initialize(n, i)
	n.children = append(n.children, child)
	child.activate()
}

// update spins the node around its local up axis.
func (n *Node) update(dt float64) {
	if n.rotationSpeed == 0 {
		return
	}
	angle := math.DegToRad(n.rotationSpeed * float32(dt))
	spin := math.QuatFromAxisAngle(math.Up, angle)
	n.entity.SetLocalRotation(n.entity.LocalRotation().Mul(spin).Normalize())
}

func (n *Node) onDestroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true
	n.cancel()
	n.tree.remove(n)
}

// ID returns the node's tree-unique identifier.
func (n *Node) ID() uint32 { return n.id }

// Depth returns the distance from the root.
func (n *Node) Depth() int { return n.depth }

// ChildIndex returns the direction index the node was placed in, or -1 for the root.
func (n *Node) ChildIndex() int { return n.childIndex }

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the children created so far, in creation order.
func (n *Node) Children() []*Node { return n.children }

// Entity returns the host entity backing the node.
func (n *Node) Entity() Entity { return n.entity }

// Mesh returns the mesh chosen at activation.
func (n *Node) Mesh() Mesh { return n.mesh }

// Material returns the palette material assigned at activation.
func (n *Node) Material() Material { return n.tree.palette.At(n.depth, n.variant) }

// Variant returns the palette column, 0 or 1.
func (n *Node) Variant() int { return n.variant }

// RotationSpeed returns the spin in degrees per second.
func (n *Node) RotationSpeed() float32 { return n.rotationSpeed }

// PendingChildren returns how many queued children have not been created yet.
// It is zero once the node is destroyed.
func (n *Node) PendingChildren() int {
	if n.destroyed {
		return 0
	}
	return n.scheduled - n.attempted
}

// Destroyed reports whether the host destroyed the node's entity.
func (n *Node) Destroyed() bool { return n.destroyed }
