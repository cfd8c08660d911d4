package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	Objects      []core.Hittable // Objects in the scene
	LightTargets []core.Samplable
	Background   core.Color
	RenderConfig renderer.RenderConfig // Suggested image size and sampling settings

	world  *geometry.BVH  // Acceleration structure built by Preprocess
	lights core.Samplable // nil when the scene has no light targets
}

// Preprocess prepares the scene for rendering: it builds the camera, the BVH
// over all objects and the combined light sampling target
func (s *Scene) Preprocess() error {
	s.Camera = renderer.NewCamera(s.CameraConfig)

	bvh, err := geometry.NewBVH(s.Objects, s.CameraConfig.Time0, s.CameraConfig.Time1)
	if err != nil {
		return fmt.Errorf("failed to build BVH: %w", err)
	}
	s.world = bvh

	switch len(s.LightTargets) {
	case 0:
		s.lights = nil
	case 1:
		s.lights = s.LightTargets[0]
	default:
		list := geometry.NewHittableList()
		for _, light := range s.LightTargets {
			list.Add(light)
		}
		s.lights = list
	}

	return nil
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...core.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLight registers a light sampling target; it is not added to the world
func (s *Scene) AddLight(target core.Samplable) {
	s.LightTargets = append(s.LightTargets, target)
}

func (s *Scene) GetCamera() core.Camera {
	if s.Camera == nil {
		return nil
	}
	return s.Camera
}

func (s *Scene) GetWorld() core.Hittable {
	if s.world == nil {
		return nil
	}
	return s.world
}

func (s *Scene) GetLights() core.Samplable { return s.lights }
func (s *Scene) GetBackground() core.Color { return s.Background }

// GetPrimitiveCount returns the number of top-level objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
