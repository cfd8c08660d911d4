package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CosinePDF samples directions with density proportional to the cosine to a normal
type CosinePDF struct {
	uvw core.ONB
}

// NewCosinePDF creates a cosine-weighted hemisphere PDF around normal
func NewCosinePDF(normal core.Vec3) *CosinePDF {
	return &CosinePDF{uvw: core.NewONBFromW(normal)}
}

// Value returns cos(θ)/π for directions above the hemisphere, 0 otherwise
func (p *CosinePDF) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate samples a cosine-weighted direction in world space
func (p *CosinePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.uvw.LocalVec(core.SampleCosineDirection(sampler.Get2D()))
}
