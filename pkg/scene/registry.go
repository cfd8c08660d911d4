package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// Options parameterizes scene construction
type Options struct {
	Seed        int64       // Seed for randomly placed objects and noise textures
	AspectRatio float64     // Camera aspect ratio; 0 uses the scene default
	TexturePath string      // Optional image texture (used by the final scene)
	Logger      core.Logger // Optional logger for setup messages
}

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Description string `json:"description"` // Short description
	Width       int    `json:"width"`       // Default image width
	Height      int    `json:"height"`      // Default image height
}

type builder func(opts Options) (*Scene, error)

type entry struct {
	description string
	config      renderer.RenderConfig
	build       builder
}

// sceneConfig returns the default render settings of a scene
func sceneConfig(width, height, samples, maxDepth int) renderer.RenderConfig {
	config := renderer.DefaultRenderConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = samples
	config.MaxDepth = maxDepth
	return config
}

var registry = map[string]entry{
	"spheres": {
		description: "Random spheres with motion blur over a checkered ground",
		config:      sceneConfig(600, 337, 10, 10),
		build:       NewSpheresScene,
	},
	"cornell": {
		description: "Cornell box with a rotated block and a glass sphere",
		config:      sceneConfig(600, 600, 10, 5),
		build:       NewCornellScene,
	},
	"cornell-smoke": {
		description: "Cornell box with two blocks of smoke",
		config:      sceneConfig(600, 600, 20, 10),
		build:       NewCornellSmokeScene,
	},
	"final": {
		description: "Box field, fog, glass, metal, noise and a cluster of spheres",
		config:      sceneConfig(600, 600, 10, 5),
		build:       NewFinalScene,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the registered scenes with their default image sizes
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, name := range Names() {
		infos = append(infos, SceneInfo{
			ID:          name,
			Description: registry[name].description,
			Width:       registry[name].config.Width,
			Height:      registry[name].config.Height,
		})
	}
	return infos
}

// DefaultConfig returns the suggested render settings of the named scene
func DefaultConfig(name string) (renderer.RenderConfig, error) {
	e, ok := registry[name]
	if !ok {
		return renderer.RenderConfig{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return e.config, nil
}

// Create builds and preprocesses the named scene
func Create(name string, opts Options) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	s, err := e.build(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
	}
	s.RenderConfig = e.config
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("failed to preprocess scene %q: %w", name, err)
	}

	if opts.Logger != nil {
		opts.Logger.Printf("Scene %s: %d objects, %d light targets\n", name, s.GetPrimitiveCount(), len(s.LightTargets))
	}
	return s, nil
}

func aspectRatio(opts Options, fallback float64) float64 {
	if opts.AspectRatio > 0 {
		return opts.AspectRatio
	}
	return fallback
}
