package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight emits light from its front face and never scatters
type DiffuseLight struct {
	Emit core.Texture
}

// NewDiffuseLight creates a light with a solid emission color
func NewDiffuseLight(emission core.Color) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light with a textured emission
func NewTexturedDiffuseLight(emit core.Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter always absorbs
func (l *DiffuseLight) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterRecord, bool) {
	return core.ScatterRecord{}, false
}

// ScatteringPDF is zero since lights do not scatter
func (l *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns the texture color on the front face only
func (l *DiffuseLight) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Color {
	if !hit.FrontFace {
		return core.Color{}
	}
	return l.Emit.Value(hit.UV, hit.Point)
}
