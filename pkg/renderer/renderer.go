package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// ErrInvalidConfig is wrapped by every render configuration validation error
var ErrInvalidConfig = errors.New("invalid render config")

const defaultNumTiles = 16

// RenderConfig contains the image and sampling parameters of a render
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Camera rays per pixel
	MaxDepth        int   // Maximum number of bounces per path
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	NumTiles        int   // Number of horizontal bands (0 = default, clamped to Height)
	Seed            int64 // Base seed; tile i samples from Seed + i
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		NumWorkers:      16,
		NumTiles:        defaultNumTiles,
		Seed:            1,
	}
}

// Validate reports the first invalid field of the configuration
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	case c.NumTiles < 0:
		return fmt.Errorf("%w: tile count must not be negative, got %d", ErrInvalidConfig, c.NumTiles)
	}
	return nil
}

// Renderer renders scenes into RGB24 buffers with a fixed pool of workers
type Renderer struct {
	config     RenderConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer validates the configuration and creates a path tracing renderer
func NewRenderer(config RenderConfig, logger core.Logger) (*Renderer, error) {
	return NewRendererWithIntegrator(config, integrator.NewPathTracingIntegrator(), logger)
}

// NewRendererWithIntegrator creates a renderer that shades rays with the given integrator
func NewRendererWithIntegrator(config RenderConfig, integratorInst integrator.Integrator, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if integratorInst == nil {
		return nil, fmt.Errorf("%w: integrator is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = &NopLogger{}
	}

	if config.NumWorkers == 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.NumTiles == 0 {
		config.NumTiles = defaultNumTiles
	}
	config.NumTiles = min(config.NumTiles, config.Height)

	return &Renderer{
		config:     config,
		integrator: integratorInst,
		logger:     logger,
	}, nil
}

// Config returns the resolved configuration
func (r *Renderer) Config() RenderConfig {
	return r.config
}

// Render renders the scene into a row-major RGB24 buffer of Width*Height*3 bytes.
// It blocks until every tile is finished; a panicking tile fails the whole render.
func (r *Renderer) Render(scene core.Scene) ([]byte, RenderStats, error) {
	if scene == nil || scene.GetCamera() == nil || scene.GetWorld() == nil {
		return nil, RenderStats{}, fmt.Errorf("%w: scene must have a camera and a world", ErrInvalidConfig)
	}

	startTime := time.Now()
	buffer := make([]byte, r.config.Width*r.config.Height*3)
	tiles := SplitTiles(r.config.Width, r.config.Height, r.config.NumTiles)

	workerPool := NewWorkerPool(NewTileRenderer(scene, r.integrator, r.config), r.config.NumWorkers, len(tiles))
	r.logger.Printf("Rendering %dx%d at %d samples per pixel (%d tiles, %d workers)...\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, len(tiles), workerPool.GetNumWorkers())

	workerPool.Start()
	for _, tile := range tiles {
		tile.Seed = r.config.Seed + int64(tile.Index)
		workerPool.SubmitTask(TileTask{Tile: tile, Buffer: buffer})
	}

	var stats RenderStats
	var errs []error
	for range tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			errs = append(errs, result.Error)
			continue
		}
		stats.Merge(result.Stats)
	}
	workerPool.Stop()

	stats.Duration = time.Since(startTime)
	if len(errs) > 0 {
		return nil, stats, fmt.Errorf("render failed: %w", errors.Join(errs...))
	}

	if stats.NonFiniteSamples > 0 {
		r.logger.Printf("Discarded %d non-finite samples\n", stats.NonFiniteSamples)
	}
	r.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)

	return buffer, stats, nil
}
