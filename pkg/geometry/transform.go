package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Translate moves a hittable by a fixed offset
type Translate struct {
	Object core.Hittable
	Offset core.Vec3
}

// NewTranslate wraps object, moving it by offset
func NewTranslate(object core.Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space and the hit point back out
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	hit, ok := t.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	hit.SetFaceNormal(ray, outwardNormal(hit))
	return hit, true
}

// BoundingBox shifts the object's box by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// PDFValue delegates to the object with the origin in object space
func (t *Translate) PDFValue(origin, direction core.Vec3) float64 {
	return pdfValueOf(t.Object, origin.Subtract(t.Offset), direction)
}

// Random delegates to the object with the origin in object space
func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return randomTowards(t.Object, origin.Subtract(t.Offset), sampler)
}

// RotateY rotates a hittable about the Y axis
type RotateY struct {
	Object   core.Hittable
	sinTheta float64
	cosTheta float64
}

// NewRotateY wraps object, rotating it by angle degrees about the Y axis
func NewRotateY(object core.Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	return &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}
}

// toObject rotates a world vector by -θ
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object vector by +θ
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space and the hit back out
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	hit, ok := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	normal := r.toWorld(outwardNormal(hit))
	hit.Point = r.toWorld(hit.Point)
	hit.SetFaceNormal(ray, normal)
	return hit, true
}

// BoundingBox returns the box of the eight rotated corners of the object's
// box over the same shutter interval
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := r.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}

	min := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	max := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x := float64(i)*box.Max.X + float64(1-i)*box.Min.X
				y := float64(j)*box.Max.Y + float64(1-j)*box.Min.Y
				z := float64(k)*box.Max.Z + float64(1-k)*box.Min.Z

				corner := r.toWorld(core.NewVec3(x, y, z))
				min = core.NewVec3(math.Min(min.X, corner.X), math.Min(min.Y, corner.Y), math.Min(min.Z, corner.Z))
				max = core.NewVec3(math.Max(max.X, corner.X), math.Max(max.Y, corner.Y), math.Max(max.Z, corner.Z))
			}
		}
	}
	return core.NewAABB(min, max), true
}

// PDFValue delegates to the object in object space
func (r *RotateY) PDFValue(origin, direction core.Vec3) float64 {
	return pdfValueOf(r.Object, r.toObject(origin), r.toObject(direction))
}

// Random delegates to the object and rotates the result back
func (r *RotateY) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.toWorld(randomTowards(r.Object, r.toObject(origin), sampler))
}

// FlipFace inverts which side of a surface counts as the front
type FlipFace struct {
	Object core.Hittable
}

// NewFlipFace wraps object, inverting its front face
func NewFlipFace(object core.Hittable) *FlipFace {
	return &FlipFace{Object: object}
}

// Hit inverts FrontFace and leaves the normal untouched
func (f *FlipFace) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.FrontFace = !hit.FrontFace
	return hit, true
}

// BoundingBox returns the wrapped object's box
func (f *FlipFace) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return f.Object.BoundingBox(time0, time1)
}

// PDFValue passes through to the wrapped object
func (f *FlipFace) PDFValue(origin, direction core.Vec3) float64 {
	return pdfValueOf(f.Object, origin, direction)
}

// Random passes through to the wrapped object
func (f *FlipFace) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return randomTowards(f.Object, origin, sampler)
}

// outwardNormal recovers the geometric normal from an oriented hit record
func outwardNormal(hit *core.HitRecord) core.Vec3 {
	if hit.FrontFace {
		return hit.Normal
	}
	return hit.Normal.Negate()
}
