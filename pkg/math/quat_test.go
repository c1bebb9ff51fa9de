package math

import (
	"math"
	"testing"
)

const eps = 1e-5

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("degenerate quaternion should normalize to identity")
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
		in   Vec3
		want Vec3
	}{
		{"yaw 90 turns right into back", QuatFromAxisAngle(Up, math.Pi/2), Right, Back},
		{"roll -90 turns up into right", QuatFromEuler(0, 0, -90), Up, Right},
		{"roll 90 turns up into left", QuatFromEuler(0, 0, 90), Up, Left},
		{"pitch 90 turns up into forward", QuatFromEuler(90, 0, 0), Up, Forward},
		{"pitch -90 turns up into back", QuatFromEuler(-90, 0, 0), Up, Back},
		{"identity", QuatIdentity(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Rotate(tt.in)
			if !got.ApproxEqual(tt.want, eps) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Up, math.Pi/4)
	b := QuatFromAxisAngle(Up, math.Pi/4)
	want := QuatFromAxisAngle(Up, math.Pi/2)
	if !a.Mul(b).ApproxEqual(want, eps) {
		t.Errorf("two 45 degree yaws should equal one 90 degree yaw, got %v", a.Mul(b))
	}
}

func TestQuatApproxEqualSign(t *testing.T) {
	q := QuatFromEuler(30, 40, 50)
	neg := Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
	if !q.ApproxEqual(neg, eps) {
		t.Error("q and -q should be the same rotation")
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := QuatFromEuler(20, -35, 70)
	p := Vec3{0.3, -1.2, 2.5}
	viaMat := q.ToMat4().TransformPoint(p)
	viaQuat := q.Rotate(p)
	if !viaMat.ApproxEqual(viaQuat, 1e-4) {
		t.Errorf("matrix rotation %v != quaternion rotation %v", viaMat, viaQuat)
	}
}
