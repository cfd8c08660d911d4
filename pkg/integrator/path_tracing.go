package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

const (
	// rayEpsilon offsets the start of secondary rays to avoid self-intersection
	rayEpsilon = 0.001

	// minMixturePDF below which a sampled direction carries no usable estimate
	minMixturePDF = 1e-8
)

// PathTracingIntegrator implements unidirectional path tracing with a fixed
// bounce limit. Diffuse bounces draw directions from an equal mixture of the
// material distribution and the scene lights.
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene core.Scene, sampler core.Sampler, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := scene.GetWorld().Hit(ray, rayEpsilon, math.Inf(1), sampler)
	if !isHit {
		return scene.GetBackground()
	}
	if hit.Material == nil {
		return core.Color{}
	}

	emitted := hit.Material.Emitted(ray, hit)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return emitted
	}

	if scatter.IsSpecular {
		return emitted.Add(scatter.Attenuation.MultiplyVec(
			pt.RayColor(scatter.SpecularRay, scene, sampler, depth-1)))
	}

	return emitted.Add(pt.calculateDiffuseColor(ray, hit, scatter, scene, sampler, depth))
}

// calculateDiffuseColor samples a direction from the material/light mixture and
// weights the incoming radiance by scatteringPDF / mixturePDF
func (pt *PathTracingIntegrator) calculateDiffuseColor(ray core.Ray, hit *core.HitRecord, scatter core.ScatterRecord, scene core.Scene, sampler core.Sampler, depth int) core.Color {
	if scatter.PDF == nil {
		return core.Color{}
	}

	var samplingPDF core.PDF = scatter.PDF
	if lights := scene.GetLights(); lights != nil {
		samplingPDF = pdf.NewMixturePDF(pdf.NewHittablePDF(lights, hit.Point), scatter.PDF)
	}

	scattered := core.NewRayAtTime(hit.Point, samplingPDF.Generate(sampler), ray.Time)
	pdfValue := samplingPDF.Value(scattered.Direction)
	if !(pdfValue > minMixturePDF) || math.IsInf(pdfValue, 0) {
		return core.Color{}
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	if scatteringPDF <= 0 {
		return core.Color{}
	}

	incoming := pt.RayColor(scattered, scene, sampler, depth-1)
	return scatter.Attenuation.MultiplyVec(incoming).Multiply(scatteringPDF / pdfValue)
}
