package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// rectPadding keeps the bounding box of a flat rectangle from having zero thickness
const rectPadding = 1e-5

// AARect is an axis-aligned rectangle lying in the plane axis K = k.
// A and B are the in-plane axes, with extents [A0, A1] x [B0, B1].
type AARect struct {
	A0, A1, B0, B1 float64
	K              float64
	Material       core.Material

	axisA, axisB, axisK int
}

// NewXYRect creates a rectangle in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *AARect {
	return &AARect{A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: material, axisA: 0, axisB: 1, axisK: 2}
}

// NewXZRect creates a rectangle in the plane y = k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *AARect {
	return &AARect{A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: material, axisA: 0, axisB: 2, axisK: 1}
}

// NewYZRect creates a rectangle in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *AARect {
	return &AARect{A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: material, axisA: 1, axisB: 2, axisK: 0}
}

// Normal returns the outward normal, along the positive K axis
func (r *AARect) Normal() core.Vec3 {
	return r.point(0, 0, 1)
}

// Area returns the rectangle area
func (r *AARect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// point builds a world vector from in-plane coordinates and the K coordinate
func (r *AARect) point(a, b, k float64) core.Vec3 {
	var c [3]float64
	c[r.axisA] = a
	c[r.axisB] = b
	c[r.axisK] = k
	return core.NewVec3(c[0], c[1], c[2])
}

// Hit intersects the ray with the plane and checks the in-plane extent.
// Rays parallel to the plane give an infinite or NaN t and are rejected.
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	t := (r.K - ray.Origin.Axis(r.axisK)) / ray.Direction.Axis(r.axisK)
	if !inRange(t, tMin, tMax) || math.IsInf(t, 0) {
		return nil, false
	}

	a := ray.Origin.Axis(r.axisA) + t*ray.Direction.Axis(r.axisA)
	b := ray.Origin.Axis(r.axisB) + t*ray.Direction.Axis(r.axisB)
	if !(a >= r.A0 && a <= r.A1 && b >= r.B0 && b <= r.B1) {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2(rectCoord(a, r.A0, r.A1), rectCoord(b, r.B0, r.B1)),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, r.Normal())

	return hitRecord, true
}

// rectCoord maps x in [lo, hi] to [0, 1]; a zero extent maps to 0
func rectCoord(x, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (x - lo) / (hi - lo)
}

// BoundingBox returns the rectangle padded slightly along its thin axis
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(
		r.point(r.A0, r.B0, r.K-rectPadding),
		r.point(r.A1, r.B1, r.K+rectPadding),
	), true
}

// PDFValue converts the uniform area density to solid angle:
// distance² / (|cos θ| · area)
func (r *AARect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), 0.001, math.Inf(1), nil)
	if !ok {
		return 0
	}

	area := r.Area()
	lengthSquared := direction.LengthSquared()
	distanceSquared := hit.T * hit.T * lengthSquared
	cosine := math.Abs(direction.Dot(r.Normal())) / math.Sqrt(lengthSquared)
	if area <= 0 || cosine <= 0 {
		return 0
	}

	return distanceSquared / (cosine * area)
}

// Random returns the vector from origin to a uniform point on the rectangle
func (r *AARect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	p := r.point(
		r.A0+sample.X*(r.A1-r.A0),
		r.B0+sample.Y*(r.B1-r.B0),
		r.K,
	)
	return p.Subtract(origin)
}
