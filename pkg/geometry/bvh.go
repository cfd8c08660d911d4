package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BVHNode is an interior or leaf node of the hierarchy.
// A leaf holding a single object has a nil Right child.
type BVHNode struct {
	Box   core.AABB
	Left  core.Hittable
	Right core.Hittable
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable after construction and safe for concurrent traversal.
type BVH struct {
	Root *BVHNode
}

// boxedObject pairs an object with its precomputed bounding box
type boxedObject struct {
	object core.Hittable
	box    core.AABB
}

// NewBVH constructs a BVH over objects for the shutter interval [time0, time1].
// It fails if any object has no bounding box.
func NewBVH(objects []core.Hittable, time0, time1 float64) (*BVH, error) {
	if len(objects) == 0 {
		return &BVH{}, nil
	}

	// Work on a copy so the caller's slice order is untouched
	boxed := make([]boxedObject, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("object %d (%T) has no bounding box", i, object)
		}
		boxed[i] = boxedObject{object: object, box: box}
	}

	return &BVH{Root: buildBVH(boxed, 0)}, nil
}

// buildBVH recursively splits objects at the midpoint after sorting by box
// minimum along an axis that cycles x, y, z with depth
func buildBVH(objects []boxedObject, depth int) *BVHNode {
	axis := depth % 3

	switch len(objects) {
	case 1:
		return &BVHNode{Box: objects[0].box, Left: objects[0].object}
	case 2:
		left, right := objects[0], objects[1]
		if right.box.Min.Axis(axis) < left.box.Min.Axis(axis) {
			left, right = right, left
		}
		return &BVHNode{
			Box:   core.SurroundingBox(left.box, right.box),
			Left:  left.object,
			Right: right.object,
		}
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].box.Min.Axis(axis) < objects[j].box.Min.Axis(axis)
	})

	mid := len(objects) / 2
	left := buildBVH(objects[:mid], depth+1)
	right := buildBVH(objects[mid:], depth+1)

	return &BVHNode{
		Box:   core.SurroundingBox(left.Box, right.Box),
		Left:  left,
		Right: right,
	}
}

// Hit tests the node box, then the left child, then the right child
// bounded by the closest hit so far
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	hitLeft, okLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if n.Right == nil {
		return hitLeft, okLeft
	}

	closest := tMax
	if okLeft {
		closest = hitLeft.T
	}
	if hitRight, okRight := n.Right.Hit(ray, tMin, closest, sampler); okRight {
		return hitRight, true
	}
	return hitLeft, okLeft
}

// BoundingBox returns the cached node box
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// Hit finds the closest intersection in the hierarchy
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	if b.Root == nil {
		return nil, false
	}
	return b.Root.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the root box; an empty hierarchy has none
func (b *BVH) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if b.Root == nil {
		return core.AABB{}, false
	}
	return b.Root.Box, true
}
