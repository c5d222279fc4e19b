package scene

import "github.com/mistfall/photonmapper/pkg/core"

// NewCornellBox builds the classic Cornell box: five diffuse quad walls, a rectangular
// area light in the ceiling, and a mirror and a glass sphere as the two objects, in the
// standard 555x555x555 unit box. Scene loading from a document is out of this module's
// scope, so this hand-built scene is what exercises the tracer and estimator end to end.
func NewCornellBox() *World {
	boxSize := 555.0

	white := NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	light := NewEmissive(core.NewVec3(15, 15, 15))

	surfaces := []Surface{
		// floor
		NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// ceiling
		NewQuad(core.NewVec3(0, boxSize, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, -boxSize), white),
		// back wall
		NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),
		// left wall (red)
		NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(0, 0, -boxSize), core.NewVec3(0, boxSize, 0), red),
		// right wall (green)
		NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), green),
		// ceiling light
		NewQuad(
			core.NewVec3(boxSize/2-65, boxSize-1, boxSize/2-52),
			core.NewVec3(130, 0, 0),
			core.NewVec3(0, 0, 105),
			light,
		),
		// mirror sphere
		NewSphere(core.NewVec3(370, 90, 190), 90, NewMirror()),
		// glass sphere
		NewSphere(core.NewVec3(180, 90, 350), 90, NewDielectric(1.5)),
	}

	return NewWorld(surfaces, 1.0)
}
