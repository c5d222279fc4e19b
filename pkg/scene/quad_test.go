package scene

import (
	"math"
	"testing"

	"github.com/mistfall/photonmapper/pkg/core"
)

func TestQuadHitWithinBounds(t *testing.T) {
	q := NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), NewDiffuse(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	hit, ok := q.Hit(ray, 0.001, 1000)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("T = %v, want 5", hit.T)
	}
}

func TestQuadHitOutsideBounds(t *testing.T) {
	q := NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), NewDiffuse(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(10, 10, -5), core.NewVec3(0, 0, 1))

	if _, ok := q.Hit(ray, 0.001, 1000); ok {
		t.Error("expected no hit outside quad bounds")
	}
}

func TestQuadParallelRayMisses(t *testing.T) {
	q := NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), NewDiffuse(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(1, 0, 0))

	if _, ok := q.Hit(ray, 0.001, 1000); ok {
		t.Error("expected no hit for a ray parallel to the quad")
	}
}

func TestQuadAreaAndSample(t *testing.T) {
	q := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 3, 0), NewDiffuse(core.NewVec3(1, 1, 1)))
	if got := q.Area(); math.Abs(got-12) > 1e-9 {
		t.Errorf("Area() = %v, want 12", got)
	}

	p := q.Sample(0.5, 0.5)
	if p != (core.NewVec3(2, 1.5, 0)) {
		t.Errorf("Sample(0.5, 0.5) = %v, want (2, 1.5, 0)", p)
	}
}
