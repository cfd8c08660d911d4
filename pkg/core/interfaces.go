package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection.
// It is created per intersection test and consumed by shading right away.
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	UV        Vec2     // Surface texture coordinates
	FrontFace bool     // Whether the ray hit the outward facing side
	Material  Material // Material at the hit point
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is anything a ray can intersect
type Hittable interface {
	// Hit returns the closest intersection with t in [tMin, tMax].
	// The sampler is only consumed by stochastic geometry such as participating media.
	Hit(ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool)

	// BoundingBox returns the box enclosing the object over the shutter interval.
	// It reports false only for empty aggregates.
	BoundingBox(time0, time1 float64) (AABB, bool)
}

// Samplable is implemented by hittables usable as light sampling targets
type Samplable interface {
	Hittable

	// PDFValue returns the solid angle density of sampling direction from origin
	PDFValue(origin, direction Vec3) float64

	// Random returns a direction from origin towards the object
	Random(origin Vec3, sampler Sampler) Vec3
}

// PDF is a probability density over directions that can also be sampled
type PDF interface {
	Value(direction Vec3) float64
	Generate(sampler Sampler) Vec3
}

// ScatterRecord describes how a material continues a path
type ScatterRecord struct {
	SpecularRay Ray   // Continuation ray for specular scattering
	IsSpecular  bool  // Whether SpecularRay is used instead of sampling PDF
	Attenuation Color // Color attenuation
	PDF         PDF   // Direction distribution for diffuse scattering
}

// Material interface for objects that can scatter or emit light
type Material interface {
	// Scatter returns false when the incoming ray is absorbed
	Scatter(rayIn Ray, hit *HitRecord, sampler Sampler) (ScatterRecord, bool)

	// ScatteringPDF returns the density the material scatters rayIn into scattered with
	ScatteringPDF(rayIn Ray, hit *HitRecord, scattered Ray) float64

	// Emitted returns the radiance emitted at the hit point
	Emitted(rayIn Ray, hit *HitRecord) Color
}

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns color at given UV coordinates and 3D point
	Value(uv Vec2, point Vec3) Color
}

// Camera generates primary rays
type Camera interface {
	// GetRay returns the ray through normalized screen coordinates (s, t), origin bottom-left
	GetRay(s, t float64, sampler Sampler) Ray
}

// Scene is the read-only view of a scene used by integrators and renderers
type Scene interface {
	GetCamera() Camera
	GetWorld() Hittable
	GetLights() Samplable // nil when the scene registers no lights
	GetBackground() Color
}
