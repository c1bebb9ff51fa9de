// Package scene is an in-memory transform hierarchy that hosts fractal nodes.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/fractals/internal/fractal"
	"github.com/Faultbox/fractals/pkg/math"
)

var (
	// ErrCapacity is returned when the scene is full.
	ErrCapacity = errors.New("scene entity limit reached")
	// ErrForeignParent is returned for a parent from another scene or a destroyed one.
	ErrForeignParent = errors.New("parent is not a live entity of this scene")
)

var (
	_ fractal.World  = (*Scene)(nil)
	_ fractal.Entity = (*Entity)(nil)
)

// Entity is a node of the scene graph with a local transform.
type Entity struct {
	id       uint32
	name     string
	scene    *Scene
	parent   *Entity
	children []*Entity

	position math.Vec3
	rotation math.Quat
	scale    math.Vec3

	mesh     fractal.Mesh
	material fractal.Material

	onDestroy []func()
	destroyed bool
}

// Scene owns every entity it creates.
type Scene struct {
	entities    map[uint32]*Entity
	lastID      uint32
	maxEntities int
}

// New returns an empty scene. maxEntities <= 0 means unlimited.
func New(maxEntities int) *Scene {
	return &Scene{
		entities:    make(map[uint32]*Entity),
		maxEntities: maxEntities,
	}
}

// CreateEntity implements fractal.World.
func (s *Scene) CreateEntity(name string, parent fractal.Entity) (fractal.Entity, error) {
	var p *Entity
	if parent != nil {
		var ok bool
		p, ok = parent.(*Entity)
		if !ok || p.scene != s || p.destroyed {
			return nil, ErrForeignParent
		}
	}
	e, err := s.Create(name, p)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create adds an entity under parent (nil for top level) with an identity transform.
func (s *Scene) Create(name string, parent *Entity) (*Entity, error) {
	if s.maxEntities > 0 && len(s.entities) >= s.maxEntities {
		return nil, fmt.Errorf("creating %q: %w (%d)", name, ErrCapacity, s.maxEntities)
	}
	s.lastID++
	e := &Entity{
		id:       s.lastID,
		name:     name,
		scene:    s,
		parent:   parent,
		rotation: math.QuatIdentity(),
		scale:    math.One,
	}
	if parent != nil {
		parent.children = append(parent.children, e)
	}
	s.entities[e.id] = e
	return e, nil
}

// Destroy removes e and its whole subtree. Destroy hooks run parent first.
func (s *Scene) Destroy(e *Entity) {
	if e == nil || e.destroyed || e.scene != s {
		return
	}
	if p := e.parent; p != nil {
		for i, c := range p.children {
			if c == e {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	s.destroy(e)
}

func (s *Scene) destroy(e *Entity) {
	e.destroyed = true
	delete(s.entities, e.id)
	for _, fn := range e.onDestroy {
		fn()
	}
	for _, c := range e.children {
		s.destroy(c)
	}
	e.children = nil
}

// Clear destroys every entity.
func (s *Scene) Clear() {
	for _, e := range s.Roots() {
		s.Destroy(e)
	}
}

// Get returns a live entity by ID.
func (s *Scene) Get(id uint32) *Entity {
	return s.entities[id]
}

// Count returns the number of live entities.
func (s *Scene) Count() int {
	return len(s.entities)
}

// All returns live entities ordered by ID.
func (s *Scene) All() []*Entity {
	result := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}

// Roots returns top-level entities ordered by ID.
func (s *Scene) Roots() []*Entity {
	var result []*Entity
	for _, e := range s.All() {
		if e.parent == nil {
			result = append(result, e)
		}
	}
	return result
}

// Walk visits every renderable entity depth first with its world matrix.
func (s *Scene) Walk(fn func(e *Entity, world math.Mat4)) {
	for _, r := range s.Roots() {
		walk(r, math.Identity(), fn)
	}
}

func walk(e *Entity, parentWorld math.Mat4, fn func(*Entity, math.Mat4)) {
	world := parentWorld.Mul(e.LocalMatrix())
	fn(e, world)
	for _, c := range e.children {
		walk(c, world, fn)
	}
}

// ID returns the scene-unique entity ID.
func (e *Entity) ID() uint32 { return e.id }

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// Parent returns the parent entity, nil at top level.
func (e *Entity) Parent() *Entity { return e.parent }

// Children returns the direct children.
func (e *Entity) Children() []*Entity { return e.children }

// Destroyed reports whether the entity has been destroyed.
func (e *Entity) Destroyed() bool { return e.destroyed }

// Mesh returns the attached mesh, nil if none.
func (e *Entity) Mesh() fractal.Mesh { return e.mesh }

// Material returns the attached material, nil if none.
func (e *Entity) Material() fractal.Material { return e.material }

// LocalPosition returns the position relative to the parent.
func (e *Entity) LocalPosition() math.Vec3 { return e.position }

// LocalRotation returns the rotation relative to the parent.
func (e *Entity) LocalRotation() math.Quat { return e.rotation }

// LocalScale returns the scale relative to the parent.
func (e *Entity) LocalScale() math.Vec3 { return e.scale }

// SetMesh attaches or replaces the mesh.
func (e *Entity) SetMesh(m fractal.Mesh) { e.mesh = m }

// SetMaterial attaches or replaces the material.
func (e *Entity) SetMaterial(m fractal.Material) { e.material = m }

// SetLocalPosition sets the position relative to the parent.
func (e *Entity) SetLocalPosition(p math.Vec3) { e.position = p }

// SetLocalRotation sets the rotation relative to the parent.
func (e *Entity) SetLocalRotation(q math.Quat) { e.rotation = q }

// SetLocalScale sets the scale relative to the parent.
func (e *Entity) SetLocalScale(s math.Vec3) { e.scale = s }

// OnDestroy registers a hook run when the entity is destroyed.
func (e *Entity) OnDestroy(fn func()) { e.onDestroy = append(e.onDestroy, fn) }

// LocalMatrix returns the TRS matrix relative to the parent.
func (e *Entity) LocalMatrix() math.Mat4 {
	return math.TRS(e.position, e.rotation, e.scale)
}

// WorldMatrix returns the transform from local to world space.
func (e *Entity) WorldMatrix() math.Mat4 {
	if e.parent == nil {
		return e.LocalMatrix()
	}
	return e.parent.WorldMatrix().Mul(e.LocalMatrix())
}

// WorldPosition returns the entity origin in world space.
func (e *Entity) WorldPosition() math.Vec3 {
	return e.WorldMatrix().Translation()
}

// Depth returns the number of ancestors.
func (e *Entity) Depth() int {
	d := 0
	for p := e.parent; p != nil; p = p.parent {
		d++
	}
	return d
}
