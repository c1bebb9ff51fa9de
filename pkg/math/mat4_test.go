package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})

	if m.Translation() != (Vec3{5, 10, 15}) {
		t.Errorf("Translate: got %v, want (5, 10, 15)", m.Translation())
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(Splat(2))
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestTRSOrder(t *testing.T) {
	// Scale, then rotate 90 degrees around Y, then translate.
	m := TRS(Vec3{0, 1, 0}, QuatFromAxisAngle(Up, math.Pi/2), Splat(2))
	got := m.TransformPoint(Right)
	want := Vec3{0, 1, -2}
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("TRS point: got %v, want %v", got, want)
	}
}

func TestTRSNestedChild(t *testing.T) {
	// A child offset by 0.75 up and scaled by half sits at 0.75 in the parent frame.
	parent := TRS(Vec3{0, 0, 0}, QuatIdentity(), One)
	child := TRS(Up.Scale(0.75), QuatIdentity(), Splat(0.5))
	world := parent.Mul(child)
	if got := world.Translation(); got != (Vec3{0, 0.75, 0}) {
		t.Errorf("nested translation: got %v", got)
	}
	// The top of the child's unit cube reaches 0.75 + 0.25.
	top := world.TransformPoint(Vec3{0, 0.5, 0})
	if !top.ApproxEqual(Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("child top: got %v", top)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	// The eye maps to the view-space origin.
	if got := m.TransformPoint(eye); !got.ApproxEqual(Zero, 1e-5) {
		t.Errorf("LookAt eye should map to origin, got %v", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}
