package lighting

import (
	"testing"

	"github.com/Faultbox/fractals/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float32
		want               math.Vec3
	}{
		{"overhead", 0, 90, math.Vec3{Y: -1}},
		{"horizon south", 0, 0, math.Vec3{Z: -1}},
		{"horizon east", 90, 0, math.Vec3{X: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if !got.ApproxEqual(tt.want, 1e-5) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
			if l := got.Length(); l < 0.9999 || l > 1.0001 {
				t.Errorf("length = %f, want 1", l)
			}
		})
	}
}
