package cmd

import (
	"math"

	"github.com/mistfall/photonmapper/pkg/core"
)

// camera is the minimal pinhole camera the demo CLI uses to drive the estimator end to
// end. Camera ray generation beyond this is outside this module's scope.
type camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// newCamera builds a camera at origin looking toward target, with the given vertical
// field of view (degrees) and aspect ratio (width/height).
func newCamera(origin, target, up core.Vec3, vfov, aspectRatio float64) *camera {
	theta := vfov * (math.Pi / 180.0)
	halfHeight := math.Tan(theta / 2)
	halfWidth := aspectRatio * halfHeight

	w := origin.Subtract(target).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(2 * halfWidth)
	vertical := v.Multiply(2 * halfHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// getRay returns a primary ray through screen coordinates (s, t), 0 <= s, t <= 1, with
// t=0 at the bottom of the frame.
func (c *camera) getRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}
