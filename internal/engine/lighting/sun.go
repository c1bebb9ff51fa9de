// Package lighting provides light directions for the renderer.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/fractals/pkg/math"
)

// SunDirection converts azimuth and elevation in degrees into the unit
// direction light travels, from the sun toward the scene. Azimuth rotates
// around Y starting at +Z; elevation is measured up from the horizon.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	sinAz, cosAz := math32.Sincos(math.DegToRad(azimuth))
	sinEl, cosEl := math32.Sincos(math.DegToRad(elevation))
	toSun := math.Vec3{X: cosEl * sinAz, Y: sinEl, Z: cosEl * cosAz}
	return toSun.Scale(-1)
}
