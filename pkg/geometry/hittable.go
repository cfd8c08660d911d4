package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// pdfValueOf returns the light sampling density of object, or 0 when
// the object cannot be sampled
func pdfValueOf(object core.Hittable, origin, direction core.Vec3) float64 {
	if s, ok := object.(core.Samplable); ok {
		return s.PDFValue(origin, direction)
	}
	return 0
}

// randomTowards samples a direction towards object, falling back to +X
// when the object cannot be sampled
func randomTowards(object core.Hittable, origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if s, ok := object.(core.Samplable); ok {
		return s.Random(origin, sampler)
	}
	return core.NewVec3(1, 0, 0)
}

// inRange reports whether t lies in [tMin, tMax]; NaN is never in range
func inRange(t, tMin, tMax float64) bool {
	return t >= tMin && t <= tMax
}
