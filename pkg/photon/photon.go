// Package photon defines the particles stored by the photon tracer and the four maps
// that index them for the radiance estimator.
package photon

import "github.com/mistfall/photonmapper/pkg/core"

// Photon is a stored unit of light transport: a position, the flux it carries, and the
// direction it was travelling in at the moment it was absorbed. Direction points toward
// the surface it was stored on, matching the direction of travel, not the direction back
// to the light.
type Photon struct {
	Pos  core.Vec3
	Flux core.Vec3
	Dir  core.Vec3
}

// Position implements octree.Positioned.
func (p Photon) Position() core.Vec3 { return p.Pos }

// ShadowPhoton marks a point on a diffuse surface that is occluded from at least one
// light.
type ShadowPhoton struct {
	Pos core.Vec3
}

// Position implements octree.Positioned.
func (s ShadowPhoton) Position() core.Vec3 { return s.Pos }
