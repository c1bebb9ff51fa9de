package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/fractals/internal/scene"
	"github.com/Faultbox/fractals/pkg/math"
)

func TestIntersectAABB(t *testing.T) {
	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"straight on", Ray{math.Vec3{Z: 5}, math.Vec3{Z: -1}}, true, 4.5},
		{"miss", Ray{math.Vec3{X: 2, Z: 5}, math.Vec3{Z: -1}}, false, 0},
		{"behind", Ray{math.Vec3{Z: 5}, math.Vec3{Z: 1}}, false, 0},
		{"inside", Ray{math.Vec3{}, math.Vec3{X: 1}}, true, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(UnitBox)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && math32.Abs(got-tt.wantT) > 1e-5 {
				t.Errorf("t = %f, want %f", got, tt.wantT)
			}
		})
	}
}

func TestIntersectTransformed(t *testing.T) {
	// Half-size box moved to x=2 and turned 45 degrees around Y.
	world := math.TRS(
		math.Vec3{X: 2},
		math.QuatFromAxisAngle(math.Up, math32.Pi/4),
		math.Splat(0.5),
	)
	r := Ray{Origin: math.Vec3{X: 2, Z: 5}, Direction: math.Vec3{Z: -1}}

	got, hit := r.IntersectTransformed(UnitBox, world)
	if !hit {
		t.Fatal("expected hit")
	}
	// The rotated box presents a corner at distance 0.25*sqrt(2) from its center.
	want := 5 - 0.25*math32.Sqrt(2)
	if math32.Abs(got-want) > 1e-4 {
		t.Errorf("t = %f, want %f", got, want)
	}

	r.Origin.X = 2.5
	if _, hit := r.IntersectTransformed(UnitBox, world); hit {
		t.Error("expected miss beside the box")
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{X: 1, Y: 2, Z: 6}
	view := math.LookAt(eye, math.Vec3{}, math.Up)

	r := ScreenToRay(400, 300, 800, 600, math32.Pi/3, view, eye)
	want := math.Vec3{}.Sub(eye).Normalize()
	if !r.Direction.ApproxEqual(want, 1e-5) {
		t.Errorf("center ray = %v, want %v", r.Direction, want)
	}

	// Top-left pixel points up and to the left of center.
	corner := ScreenToRay(0, 0, 800, 600, math32.Pi/3, view, math.Vec3{Z: 6})
	if corner.Direction.Y <= 0 {
		t.Errorf("top edge ray should point up: %v", corner.Direction)
	}
}

func TestPickNearest(t *testing.T) {
	s := scene.New(0)
	far, _ := s.Create("far", nil)
	far.SetMesh(scene.Cube)
	near, _ := s.Create("near", nil)
	near.SetMesh(scene.Octahedron)
	near.SetLocalPosition(math.Vec3{Z: 2})
	empty, _ := s.Create("empty", nil)
	empty.SetLocalPosition(math.Vec3{Z: 4})

	r := Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}
	if got := Pick(s, r); got != near {
		t.Errorf("Pick = %v, want near", got)
	}

	s.Destroy(near)
	if got := Pick(s, r); got != far {
		t.Errorf("Pick after destroy = %v, want far", got)
	}

	r.Origin.X = 3
	if got := Pick(s, r); got != nil {
		t.Errorf("Pick = %v, want nil", got)
	}
}
