package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/fractals/pkg/math"
)

func TestOrbitPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = 5

	got := c.Position()
	if !got.ApproxEqual(math.Vec3{Z: 5}, 1e-5) {
		t.Errorf("Position() = %v, want (0,0,5)", got)
	}

	c.Yaw = math32.Pi / 2
	got = c.Position()
	if !got.ApproxEqual(math.Vec3{X: 5}, 1e-5) {
		t.Errorf("Position() after yaw = %v, want (5,0,0)", got)
	}

	c.Center = math.Vec3{Y: 1}
	c.Yaw = 0
	c.Pitch = math32.Pi / 2
	got = c.Position()
	if !got.ApproxEqual(math.Vec3{Y: 6}, 1e-4) {
		t.Errorf("Position() from above = %v, want (0,6,0)", got)
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	view := c.ViewMatrix()

	// The orbit center sits straight ahead on the view -Z axis.
	p := view.TransformPoint(c.Center)
	if math32.Abs(p.X) > 1e-4 || math32.Abs(p.Y) > 1e-4 {
		t.Errorf("center off axis in view space: %v", p)
	}
	if math32.Abs(p.Z+c.Distance) > 1e-4 {
		t.Errorf("center depth = %f, want %f", p.Z, -c.Distance)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %f, want %f", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("Pitch = %f, want %f", c.Pitch, c.MinPitch)
	}

	yaw := c.Yaw
	c.HandleDrag(100, 0)
	if c.Yaw >= yaw {
		t.Errorf("dragging right should decrease yaw: %f -> %f", yaw, c.Yaw)
	}
}

func TestHandleZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Distance
	c.HandleZoom(1)
	if c.Distance >= before {
		t.Errorf("zoom in should reduce distance: %f -> %f", before, c.Distance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %f, want min %f", c.Distance, c.MinDistance)
	}
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %f, want max %f", c.Distance, c.MaxDistance)
	}
}

func TestFitRadiusAndAutoRotate(t *testing.T) {
	c := NewOrbitCamera()
	c.FitRadius(2, math32.Pi/3)
	if want := float32(2 / 0.5 * 1.1); math32.Abs(c.Distance-want) > 1e-4 {
		t.Errorf("Distance = %f, want %f", c.Distance, want)
	}

	c.AutoRotate = 0.5
	c.Update(2)
	if math32.Abs(c.Yaw-1) > 1e-6 {
		t.Errorf("Yaw = %f, want 1", c.Yaw)
	}
}
