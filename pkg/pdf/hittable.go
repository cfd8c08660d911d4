package pdf

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// HittablePDF samples directions from an origin towards a light-like object
type HittablePDF struct {
	object core.Samplable
	origin core.Vec3
}

// NewHittablePDF creates a PDF aimed at object as seen from origin
func NewHittablePDF(object core.Samplable, origin core.Vec3) *HittablePDF {
	return &HittablePDF{object: object, origin: origin}
}

// Value delegates to the object's solid angle density
func (p *HittablePDF) Value(direction core.Vec3) float64 {
	return p.object.PDFValue(p.origin, direction)
}

// Generate delegates to the object's direction sampling
func (p *HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.object.Random(p.origin, sampler)
}
