package fractal

import (
	"context"
	"time"

	"github.com/Faultbox/fractals/pkg/math"
)

// Mesh is an opaque handle to one of the interchangeable shapes a node can show.
type Mesh interface {
	Name() string
}

// Material is a renderable surface description.
// WithColor returns an independent copy of the material with its color replaced.
type Material interface {
	Color() Color
	WithColor(c Color) Material
}

// Entity is a host object placed in the spatial hierarchy.
// Position, rotation and scale are relative to the parent entity.
type Entity interface {
	SetMesh(m Mesh)
	SetMaterial(m Material)
	SetLocalPosition(p math.Vec3)
	SetLocalRotation(q math.Quat)
	LocalRotation() math.Quat
	SetLocalScale(s math.Vec3)

	// OnDestroy registers fn to run when the host destroys the entity.
	OnDestroy(fn func())
}

// World creates entities. A nil parent creates a top-level entity.
type World interface {
	CreateEntity(name string, parent Entity) (Entity, error)
}

// Random is the source of every randomized decision.
type Random interface {
	// Range returns a uniform value in [min, max].
	Range(min, max float32) float32
	// Float32 returns a uniform value in [0, 1).
	Float32() float32
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Scheduler runs deferred work on the host timeline.
// After must return immediately; fn runs later on the same timeline unless ctx
// is done by then.
type Scheduler interface {
	After(ctx context.Context, d time.Duration, fn func())
}
