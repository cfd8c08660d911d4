package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestLambertian_ScatterUsesCosinePDF(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := &core.HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.IsSpecular {
		t.Error("Lambertian should not be specular")
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
	}
	if scatter.PDF == nil {
		t.Fatal("Expected a scattering PDF")
	}

	for i := 0; i < 100; i++ {
		direction := scatter.PDF.Generate(sampler)
		if direction.Dot(normal) < 0 {
			t.Fatalf("Generated direction %v below the surface", direction)
		}

		// Generated density and material density must agree
		expected := lambertian.ScatteringPDF(ray, hit, core.NewRay(hit.Point, direction))
		if math.Abs(scatter.PDF.Value(direction)-expected) > 1e-10 {
			t.Errorf("PDF mismatch: got %f, expected %f", scatter.PDF.Value(direction), expected)
		}
	}
}

func TestLambertian_ScatteringPDF(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	hit := &core.HitRecord{Normal: core.NewVec3(0, 1, 0)}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  float64
	}{
		{"Along normal", core.NewVec3(0, 1, 0), 1 / math.Pi},
		{"Scaled direction", core.NewVec3(0, 5, 0), 1 / math.Pi},
		{"45 degrees", core.NewVec3(1, 1, 0), math.Sqrt2 / 2 / math.Pi},
		{"Below surface", core.NewVec3(0, -1, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lambertian.ScatteringPDF(ray, hit, core.NewRay(core.Vec3{}, tt.direction))
			if math.Abs(got-tt.expected) > 1e-10 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestLambertian_TexturedAlbedo(t *testing.T) {
	checker := NewCheckerColors(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	lambertian := NewTexturedLambertian(checker)

	// sin(1)^3 > 0 selects the even texture
	hit := &core.HitRecord{Point: core.NewVec3(0.1, 0.1, 0.1), Normal: core.NewVec3(0, 1, 0)}
	scatter, _ := lambertian.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), hit, core.NewSeededSampler(1))
	if !scatter.Attenuation.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected even checker color, got %v", scatter.Attenuation)
	}
}
