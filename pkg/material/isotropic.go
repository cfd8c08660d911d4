package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Isotropic is the phase function of a homogeneous medium: it scatters
// uniformly in all directions.
type Isotropic struct {
	Albedo core.Texture
}

// NewIsotropic creates an isotropic phase function with a solid color
func NewIsotropic(albedo core.Color) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function with a texture
func NewTexturedIsotropic(albedo core.Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter continues along a uniform random direction.
// The ray is returned as specular so it is followed without light sampling.
func (i *Isotropic) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterRecord, bool) {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	return core.ScatterRecord{
		SpecularRay: core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		IsSpecular:  true,
		Attenuation: i.Albedo.Value(hit.UV, hit.Point),
	}, true
}

// ScatteringPDF is zero because scattering bypasses the PDF path
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns black
func (i *Isotropic) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Color {
	return core.Color{}
}
