package scene

import (
	"math"
	"testing"

	"github.com/mistfall/photonmapper/pkg/core"
)

func TestSphereHit(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -5), 1, NewDiffuse(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, ok := s.Hit(ray, 0.001, 1000)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("T = %v, want 4", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Normal = %v, want (0,0,1)", hit.Normal)
	}
}

func TestSphereMiss(t *testing.T) {
	s := NewSphere(core.NewVec3(10, 10, 10), 1, NewDiffuse(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, ok := s.Hit(ray, 0.001, 1000); ok {
		t.Error("expected no hit")
	}
}

func TestSphereAreaAndSample(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, 0), 2, NewDiffuse(core.NewVec3(1, 1, 1)))
	want := 4 * math.Pi * 4
	if got := s.Area(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Area() = %v, want %v", got, want)
	}

	p := s.Sample(0.3, 0.7)
	if math.Abs(p.Subtract(s.Center).Length()-s.Radius) > 1e-9 {
		t.Errorf("sampled point %v is not on the sphere surface", p)
	}
}
