package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Texture // Metal color
	Fuzz   float64      // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material with a solid color
func NewMetal(albedo core.Color, fuzz float64) *Metal {
	return NewTexturedMetal(NewSolidColor(albedo), fuzz)
}

// NewTexturedMetal creates a new metal material, clamping fuzz to [0, 1]
func NewTexturedMetal(albedo core.Texture, fuzz float64) *Metal {
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter reflects about the normal, perturbed by fuzz.
// Rays perturbed below the surface, or cancelled out by the fuzz, are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterRecord, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzz))
	}

	if reflected.NearZero() || reflected.Dot(hit.Normal) <= 0 {
		return core.ScatterRecord{}, false
	}

	return core.ScatterRecord{
		SpecularRay: core.NewRayAtTime(hit.Point, reflected, rayIn.Time),
		IsSpecular:  true,
		Attenuation: m.Albedo.Value(hit.UV, hit.Point),
	}, true
}

// ScatteringPDF is zero for a delta distribution
func (m *Metal) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns black
func (m *Metal) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Color {
	return core.Color{}
}
