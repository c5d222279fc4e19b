package photon

import (
	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/octree"
)

// Maps is the mutable, single-goroutine builder for the four photon maps. It exists
// only during aggregation, after every worker's thread-local vectors have been drained.
type Maps struct {
	Direct   *octree.Octree[Photon]
	Indirect *octree.Octree[Photon]
	Caustic  *octree.Octree[Photon]
	Shadow   *octree.Octree[ShadowPhoton]
}

// NewMaps allocates four empty octrees bounded by bounds, each subdividing leaves once
// they hold more than maxLeafData points.
func NewMaps(bounds core.AABB, maxLeafData int) *Maps {
	return &Maps{
		Direct:   octree.New[Photon](bounds, maxLeafData),
		Indirect: octree.New[Photon](bounds, maxLeafData),
		Caustic:  octree.New[Photon](bounds, maxLeafData),
		Shadow:   octree.New[ShadowPhoton](bounds, maxLeafData),
	}
}

// Freeze converts every map to its read-only Linear form. Maps must not be inserted into
// again afterward.
func (m *Maps) Freeze() *Frozen {
	return &Frozen{
		Direct:   octree.Build(m.Direct),
		Indirect: octree.Build(m.Indirect),
		Caustic:  octree.Build(m.Caustic),
		Shadow:   octree.Build(m.Shadow),
	}
}

// Frozen holds the four read-only photon maps the radiance estimator queries. Safe for
// concurrent use by many goroutines.
type Frozen struct {
	Direct   *octree.Linear[Photon]
	Indirect *octree.Linear[Photon]
	Caustic  *octree.Linear[Photon]
	Shadow   *octree.Linear[ShadowPhoton]
}

// HasShadowPhoton reports whether any shadow photon lies within r of p.
func (f *Frozen) HasShadowPhoton(p core.Vec3, r float64) bool {
	return !f.Shadow.RadiusEmpty(p, r)
}

// PhotonCounts summarizes map sizes for progress reporting.
type PhotonCounts struct {
	Direct, Indirect, Caustic, Shadow int
}

// Counts reports how many entries each map holds.
func (f *Frozen) Counts() PhotonCounts {
	return PhotonCounts{
		Direct:   f.Direct.Len(),
		Indirect: f.Indirect.Len(),
		Caustic:  f.Caustic.Len(),
		Shadow:   f.Shadow.Len(),
	}
}
