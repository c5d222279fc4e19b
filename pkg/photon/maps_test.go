package photon

import (
	"testing"

	"github.com/mistfall/photonmapper/pkg/core"
)

func testBounds() core.AABB {
	return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
}

func TestMapsFreezePreservesCounts(t *testing.T) {
	m := NewMaps(testBounds(), 4)

	m.Direct.Insert(Photon{Pos: core.NewVec3(0, 0, 0), Flux: core.NewVec3(1, 1, 1)})
	m.Direct.Insert(Photon{Pos: core.NewVec3(0.1, 0, 0), Flux: core.NewVec3(1, 1, 1)})
	m.Indirect.Insert(Photon{Pos: core.NewVec3(0, 0, 0)})
	m.Shadow.Insert(ShadowPhoton{Pos: core.NewVec3(0.5, 0.5, 0.5)})

	frozen := m.Freeze()
	counts := frozen.Counts()

	if counts.Direct != 2 {
		t.Errorf("Direct count = %d, want 2", counts.Direct)
	}
	if counts.Indirect != 1 {
		t.Errorf("Indirect count = %d, want 1", counts.Indirect)
	}
	if counts.Caustic != 0 {
		t.Errorf("Caustic count = %d, want 0", counts.Caustic)
	}
	if counts.Shadow != 1 {
		t.Errorf("Shadow count = %d, want 1", counts.Shadow)
	}
}

func TestHasShadowPhoton(t *testing.T) {
	m := NewMaps(testBounds(), 4)
	m.Shadow.Insert(ShadowPhoton{Pos: core.NewVec3(0, 0, 0)})
	frozen := m.Freeze()

	if !frozen.HasShadowPhoton(core.NewVec3(0.01, 0, 0), 0.1) {
		t.Error("expected a shadow photon nearby")
	}
	if frozen.HasShadowPhoton(core.NewVec3(0.9, 0.9, 0.9), 0.05) {
		t.Error("did not expect a shadow photon far away")
	}
}
