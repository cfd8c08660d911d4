package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Box is an axis-aligned box made of six rectangles
type Box struct {
	Min, Max core.Point3
	sides    *HittableList
}

// NewBox creates a box spanning p0 to p1 with a single material
func NewBox(p0, p1 core.Point3, material core.Material) *Box {
	sides := NewHittableList()

	sides.Add(NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, material))
	sides.Add(NewFlipFace(NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, material)))

	sides.Add(NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, material))
	sides.Add(NewFlipFace(NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, material)))

	sides.Add(NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, material))
	sides.Add(NewFlipFace(NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, material)))

	return &Box{Min: p0, Max: p1, sides: sides}
}

// Hit returns the closest face hit
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABBFromPoints(b.Min, b.Max), true
}
