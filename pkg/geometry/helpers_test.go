package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// fixedSampler returns the same value for every dimension
type fixedSampler struct {
	value float64
}

func (s fixedSampler) Get1D() float64   { return s.value }
func (s fixedSampler) Get2D() core.Vec2 { return core.NewVec2(s.value, s.value) }
func (s fixedSampler) Get3D() core.Vec3 { return core.NewVec3(s.value, s.value, s.value) }

// unboundedShape is a mock hittable without a bounding box
type unboundedShape struct{}

func (unboundedShape) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return nil, false
}

func (unboundedShape) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

// taggedMaterial is a mock material that identifies the object it belongs to
type taggedMaterial struct {
	id int
}

func (m *taggedMaterial) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterRecord, bool) {
	return core.ScatterRecord{}, false
}

func (m *taggedMaterial) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 0
}

func (m *taggedMaterial) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Color {
	return core.Color{}
}
