package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func cornellCamera(opts Options) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:    core.NewVec3(278, 278, -800), // Outside the open side of the box
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: aspectRatio(opts, 1.0),
		Time0:       0.0,
		Time1:       1.0,
	}
}

// addCornellWalls adds the five walls of the box, open towards -z
func addCornellWalls(s *Scene) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	s.Add(
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // left as seen from the camera
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // back
	)
}

// NewCornellScene creates the Cornell box with a tall rotated block and a glass
// sphere. Both the ceiling light and the sphere are light sampling targets.
func NewCornellScene(opts Options) (*Scene, error) {
	s := &Scene{
		CameraConfig: cornellCamera(opts),
		Background:   core.NewVec3(0, 0, 0),
	}
	addCornellWalls(s)

	// The light faces down into the box
	light := geometry.NewXZRect(213, 343, 227, 332, 554, material.NewDiffuseLight(core.NewVec3(15, 15, 15)))
	s.Add(geometry.NewFlipFace(light))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	block := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	s.Add(geometry.NewTranslate(geometry.NewRotateY(block, 15), core.NewVec3(265, 0, 295)))

	glass := geometry.NewSphere(core.NewVec3(190, 90, 190), 90, material.NewDielectric(1.5))
	s.Add(glass)

	s.AddLight(light)
	s.AddLight(glass)
	return s, nil
}

// NewCornellSmokeScene creates the Cornell box with a dark and a light block
// of constant density smoke
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	s := &Scene{
		CameraConfig: cornellCamera(opts),
		Background:   core.NewVec3(0, 0, 0),
	}
	addCornellWalls(s)

	light := geometry.NewXZRect(113, 443, 127, 432, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7)))
	s.Add(geometry.NewFlipFace(light))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tall := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white), 15),
		core.NewVec3(265, 0, 295),
	)
	short := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white), -18),
		core.NewVec3(130, 0, 65),
	)

	s.Add(
		geometry.NewConstantMedium(tall, 0.01, material.NewIsotropic(core.NewVec3(0, 0, 0))),
		geometry.NewConstantMedium(short, 0.01, material.NewIsotropic(core.NewVec3(1, 1, 1))),
	)

	s.AddLight(light)
	return s, nil
}
