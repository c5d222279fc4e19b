package core

import (
	"math"
	"testing"
)

func TestCoordinateSystemOrthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0.577, 0.577, 0.577),
	}

	for _, n := range normals {
		n = n.Normalize()
		cs := NewCoordinateSystem(n)

		const tol = 1e-9
		if math.Abs(cs.Tangent.Length()-1) > tol {
			t.Errorf("tangent not unit length for normal %v: %v", n, cs.Tangent.Length())
		}
		if math.Abs(cs.Bitangent.Length()-1) > tol {
			t.Errorf("bitangent not unit length for normal %v: %v", n, cs.Bitangent.Length())
		}
		if math.Abs(cs.Tangent.Dot(cs.Bitangent)) > tol {
			t.Errorf("tangent/bitangent not orthogonal for normal %v", n)
		}
		if math.Abs(cs.Tangent.Dot(n)) > tol {
			t.Errorf("tangent not orthogonal to normal %v", n)
		}
	}
}

func TestCoordinateSystemRoundTrip(t *testing.T) {
	n := NewVec3(0.2, 0.9, 0.3).Normalize()
	cs := NewCoordinateSystem(n)

	local := NewVec3(0.3, -0.4, 0.8)
	world := cs.ToWorld(local)
	back := cs.ToLocal(world)

	if back.Subtract(local).Length() > 1e-9 {
		t.Errorf("round trip failed: got %v, want %v", back, local)
	}
}

func TestCoordinateSystemNormalMapsToZ(t *testing.T) {
	n := NewVec3(0, 0, 1)
	cs := NewCoordinateSystem(n)
	if got := cs.ToWorld(NewVec3(0, 0, 1)); got.Subtract(n).Length() > 1e-9 {
		t.Errorf("local z should map to world normal, got %v", got)
	}
}
