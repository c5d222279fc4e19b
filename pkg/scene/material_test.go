package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/mistfall/photonmapper/pkg/core"
)

func TestMaterialKindHelpers(t *testing.T) {
	if !NewDiffuse(core.NewVec3(1, 1, 1)).CanDiffuselyReflect() {
		t.Error("diffuse material should be able to diffusely reflect")
	}
	if NewMirror().CanDiffuselyReflect() {
		t.Error("mirror material should not diffusely reflect")
	}
	if !NewMirror().PerfectMirror() {
		t.Error("mirror material should be a perfect mirror")
	}
	if NewDielectric(1.5).Opaque() {
		t.Error("dielectric should not be opaque")
	}
}

func TestFresnelDielectricNormalIncidence(t *testing.T) {
	r := FresnelDielectric(1.0, 1.5, 1.0)
	want := math.Pow((1.5-1.0)/(1.5+1.0), 2)
	if math.Abs(r-want) > 1e-9 {
		t.Errorf("FresnelDielectric at normal incidence = %v, want %v", r, want)
	}
}

func TestFresnelDielectricGrazingApproachesOne(t *testing.T) {
	r := FresnelDielectric(1.0, 1.5, 0.001)
	if r < 0.9 {
		t.Errorf("expected near-total reflectance at grazing angle, got %v", r)
	}
}

func TestConductorFresnelReturnsPerChannelReflectance(t *testing.T) {
	gold := ComplexIOR{N: core.NewVec3(0.2, 0.9, 1.4), K: core.NewVec3(3.0, 2.5, 1.8)}
	r := ConductorFresnel(1.0, &gold, 1.0)
	if r.X <= 0 || r.X > 1 || r.Y <= 0 || r.Y > 1 || r.Z <= 0 || r.Z > 1 {
		t.Errorf("expected reflectance in (0,1] per channel, got %v", r)
	}
}

func TestSpecularMicrofacetNormalNonRoughIsIdentity(t *testing.T) {
	m := NewMirror()
	random := rand.New(rand.NewPCG(1, 1))
	n := m.SpecularMicrofacetNormal(random)
	if n != (core.NewVec3(0, 0, 1)) {
		t.Errorf("non-rough material should return the identity micro-normal, got %v", n)
	}
}

func TestSpecularMicrofacetNormalRoughStaysUpperHemisphere(t *testing.T) {
	m := NewRoughDielectric(1.5, 0.3)
	random := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 20; i++ {
		n := m.SpecularMicrofacetNormal(random)
		if n.Z <= 0 {
			t.Errorf("microfacet normal %v should stay in the upper hemisphere", n)
		}
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Errorf("microfacet normal %v should be unit length", n)
		}
	}
}
