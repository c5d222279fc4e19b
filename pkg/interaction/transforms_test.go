package interaction

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/mistfall/photonmapper/pkg/core"
	"github.com/mistfall/photonmapper/pkg/scene"
)

func TestReflectDiffuseStaysInUpperHemisphere(t *testing.T) {
	mat := scene.NewDiffuse(core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	isect := hitSphere(t, core.NewVec3(0, 0, 0), 1, mat, ray)

	random := rand.New(rand.NewPCG(10, 10))
	ia := New(isect, ray, random)

	for i := 0; i < 20; i++ {
		bounce := ReflectDiffuse(ia, random)
		if bounce.Direction.Dot(ia.ShadingNormal) <= 0 {
			t.Errorf("diffuse bounce %v should stay above the shading normal %v", bounce.Direction, ia.ShadingNormal)
		}
		if bounce.MediumIOR != ia.N1 {
			t.Errorf("MediumIOR = %v, want %v", bounce.MediumIOR, ia.N1)
		}
		if bounce.Specular {
			t.Error("diffuse bounce should not be marked specular")
		}
	}
}

func TestReflectSpecularMirrorsAboutNormal(t *testing.T) {
	mat := scene.NewMirror()
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	isect := hitSphere(t, core.NewVec3(0, 0, 0), 1, mat, ray)

	random := rand.New(rand.NewPCG(11, 11))
	ia := New(isect, ray, random)

	bounce, ok := ReflectSpecular(ia, ia.Out.Negate())
	if !ok {
		t.Fatal("expected reflected direction to stay in the upper hemisphere")
	}
	want := core.NewVec3(0, 0, -1)
	if math.Abs(bounce.Direction.X-want.X) > 1e-9 || math.Abs(bounce.Direction.Y-want.Y) > 1e-9 || math.Abs(bounce.Direction.Z-want.Z) > 1e-9 {
		t.Errorf("reflected direction = %v, want %v", bounce.Direction, want)
	}
	if !bounce.Specular {
		t.Error("specular bounce should be marked specular")
	}
}

func TestRefractSpecularNormalIncidenceContinuesStraight(t *testing.T) {
	mat := scene.NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	isect := hitSphere(t, core.NewVec3(0, 0, 0), 1, mat, ray)

	random := rand.New(rand.NewPCG(12, 12))
	ia := New(isect, ray, random)

	bounce, ok := RefractSpecular(ia, ia.Out.Negate())
	if !ok {
		t.Fatal("expected refracted direction to pass through to the lower hemisphere")
	}
	if bounce.MediumIOR != ia.N2 {
		t.Errorf("MediumIOR = %v, want N2 = %v", bounce.MediumIOR, ia.N2)
	}
	// at normal incidence the ray should continue straight through without bending
	if math.Abs(bounce.Direction.X) > 1e-9 || math.Abs(bounce.Direction.Y) > 1e-9 {
		t.Errorf("refracted direction %v should have no lateral bend at normal incidence", bounce.Direction)
	}
}

func TestRefractSpecularTotalInternalReflectionDegradesToReflect(t *testing.T) {
	mat := scene.NewDielectric(1.5)
	sphere := scene.NewSphere(core.NewVec3(0, 0, -1000), 1000, mat)

	// a ray inside the denser medium striking a flat boundary at 80 degrees from the
	// normal, well past the ~41.8 degree critical angle for n=1.5 -> n=1.0
	direction := core.NewVec3(math.Sin(80*math.Pi/180), 0, math.Cos(80*math.Pi/180))
	isect := scene.Intersection{T: 1, Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), Surface: sphere}
	ray := core.Ray{Origin: isect.Point.Subtract(direction), Direction: direction, MediumIOR: 1.5}

	random := rand.New(rand.NewPCG(13, 13))
	ia := New(isect, ray, random)

	bounce, _ := RefractSpecular(ia, ia.Out.Negate())
	if bounce.MediumIOR != ia.N1 {
		t.Errorf("a total-internal-reflection bounce should stay in medium N1 = %v, got %v", ia.N1, bounce.MediumIOR)
	}
}
