package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	boxesPerSide   = 20
	clusterSpheres = 1000
)

// NewFinalScene creates a scene exercising every primitive and material: a
// field of boxes, a moving sphere, glass, metal, fog, a noise textured sphere
// and a rotated cluster of small spheres. With opts.TexturePath set, the
// image is wrapped around a globe.
func NewFinalScene(opts Options) (*Scene, error) {
	random := rand.New(rand.NewSource(opts.Seed))

	s := &Scene{
		CameraConfig: renderer.CameraConfig{
			LookFrom:    core.NewVec3(478, 278, -600),
			LookAt:      core.NewVec3(278, 278, 0),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        40.0,
			AspectRatio: aspectRatio(opts, 1.0),
			Time0:       0.0,
			Time1:       1.0,
		},
		Background: core.NewVec3(0, 0, 0),
	}

	boxes, err := groundBoxes(random)
	if err != nil {
		return nil, err
	}
	s.Add(boxes)

	light := geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7)))
	s.Add(geometry.NewFlipFace(light))
	s.AddLight(light)

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center0, center1, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass ball filled with blue smoke
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary)
	s.Add(geometry.NewConstantMedium(boundary, 0.2, material.NewIsotropic(core.NewVec3(0.2, 0.4, 0.9))))

	// Thin fog over the whole scene
	fog := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMedium(fog, 0.0001, material.NewIsotropic(core.NewVec3(1, 1, 1))))

	globe, err := globeTexture(opts)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(globe)))

	noise := material.NewNoiseTexture(material.NewPerlin(random), 0.1)
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(noise)))

	cluster, err := sphereCluster(random)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(cluster, 15), core.NewVec3(-100, 270, 395)))

	return s, nil
}

// groundBoxes builds a BVH over a grid of boxes with random heights
func groundBoxes(random *rand.Rand) (*geometry.BVH, error) {
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))

	boxes := make([]core.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := 1 + 100*random.Float64()
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}

	bvh, err := geometry.NewBVH(boxes, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to build ground boxes: %w", err)
	}
	return bvh, nil
}

// sphereCluster builds a BVH over small spheres scattered in a 165 unit cube
func sphereCluster(random *rand.Rand) (*geometry.BVH, error) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	spheres := make([]core.Hittable, 0, clusterSpheres)
	for i := 0; i < clusterSpheres; i++ {
		center := randomVec3(random, 0, 165)
		spheres = append(spheres, geometry.NewSphere(center, 10, white))
	}

	bvh, err := geometry.NewBVH(spheres, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to build sphere cluster: %w", err)
	}
	return bvh, nil
}

// globeTexture loads the optional globe image, or falls back to a checker
func globeTexture(opts Options) (core.Texture, error) {
	if opts.TexturePath == "" {
		return material.NewCheckerColors(core.NewVec3(0.1, 0.2, 0.6), core.NewVec3(0.2, 0.6, 0.2)), nil
	}

	texture, err := loaders.LoadImageTexture(opts.TexturePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load globe texture: %w", err)
	}
	if opts.Logger != nil {
		opts.Logger.Printf("Loaded texture %s (%dx%d)\n", opts.TexturePath, texture.Width, texture.Height)
	}
	return texture, nil
}
