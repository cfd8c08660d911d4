package pdf

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// MixturePDF is an equal-weight blend of two PDFs
type MixturePDF struct {
	p [2]core.PDF
}

// NewMixturePDF creates a 50/50 mixture of p0 and p1
func NewMixturePDF(p0, p1 core.PDF) *MixturePDF {
	return &MixturePDF{p: [2]core.PDF{p0, p1}}
}

// Value returns the mean of both densities
func (m *MixturePDF) Value(direction core.Vec3) float64 {
	return 0.5*m.p[0].Value(direction) + 0.5*m.p[1].Value(direction)
}

// Generate flips a coin to choose which PDF draws the direction
func (m *MixturePDF) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.p[0].Generate(sampler)
	}
	return m.p[1].Generate(sampler)
}
