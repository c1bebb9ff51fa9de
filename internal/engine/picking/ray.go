// Package picking casts rays from the screen into the scene.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/fractals/internal/scene"
	"github.com/Faultbox/fractals/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// UnitBox bounds every built-in primitive in local space.
var UnitBox = AABB{Min: math.Splat(-0.5), Max: math.Splat(0.5)}

// ScreenToRay converts pixel coordinates into a world-space ray from the eye.
// fovY is the vertical field of view in radians and view the camera's view
// matrix as built by math.LookAt.
func ScreenToRay(screenX, screenY, viewportW, viewportH, fovY float32, view math.Mat4, eye math.Vec3) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	tanHalf := math32.Tan(fovY / 2)
	aspect := viewportW / viewportH
	vx := ndcX * tanHalf * aspect
	vy := ndcY * tanHalf

	// The view rotation is orthonormal, so its rows are the camera axes.
	right := math.Vec3{X: view[0], Y: view[4], Z: view[8]}
	up := math.Vec3{X: view[1], Y: view[5], Z: view[9]}
	back := math.Vec3{X: view[2], Y: view[6], Z: view[10]}

	dir := right.Scale(vx).Add(up.Scale(vy)).Sub(back).Normalize()
	return Ray{Origin: eye, Direction: dir}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTransformed tests the ray against box placed by an affine world
// matrix without shear. The returned t is measured along the world ray.
func (r Ray) IntersectTransformed(box AABB, world math.Mat4) (float32, bool) {
	center := world.Translation()
	axes := [3]math.Vec3{
		{X: world[0], Y: world[1], Z: world[2]},
		{X: world[4], Y: world[5], Z: world[6]},
		{X: world[8], Y: world[9], Z: world[10]},
	}

	rel := r.Origin.Sub(center)
	var o, d [3]float32
	for i, a := range axes {
		l2 := a.Dot(a)
		if l2 == 0 {
			return 0, false
		}
		o[i] = rel.Dot(a) / l2
		d[i] = r.Direction.Dot(a) / l2
	}

	// Affine maps preserve the ray parameter, so t carries over unchanged.
	local := Ray{
		Origin:    math.Vec3{X: o[0], Y: o[1], Z: o[2]},
		Direction: math.Vec3{X: d[0], Y: d[1], Z: d[2]},
	}
	return local.IntersectAABB(box)
}

// Pick returns the nearest entity with a mesh hit by the ray, or nil.
func Pick(s *scene.Scene, r Ray) *scene.Entity {
	var (
		best  *scene.Entity
		bestT = math32.Inf(1)
	)
	s.Walk(func(e *scene.Entity, world math.Mat4) {
		if e.Mesh() == nil {
			return
		}
		if t, hit := r.IntersectTransformed(UnitBox, world); hit && t < bestT {
			best, bestT = e, t
		}
	})
	return best
}
