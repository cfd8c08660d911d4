package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Tile is a horizontal band of the image rendered by a single worker
type Tile struct {
	Index  int             // Position of the tile, top to bottom
	Bounds image.Rectangle // Pixel bounds in image coordinates, y = 0 being the top row
	Seed   int64           // Seed of the tile's sample stream
}

// SplitTiles divides the image into numTiles horizontal bands of equal height.
// Remainder rows go to the first bands. numTiles is clamped to [1, height].
func SplitTiles(width, height, numTiles int) []Tile {
	numTiles = max(1, min(numTiles, height))
	base := height / numTiles
	remainder := height % numTiles

	tiles := make([]Tile, 0, numTiles)
	y := 0
	for i := 0; i < numTiles; i++ {
		rows := base
		if i < remainder {
			rows++
		}
		tiles = append(tiles, Tile{
			Index:  i,
			Bounds: image.Rect(0, y, width, y+rows),
		})
		y += rows
	}
	return tiles
}

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      core.Scene
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
	maxDepth   int
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene core.Scene, integratorInst integrator.Integrator, config RenderConfig) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
		width:      config.Width,
		height:     config.Height,
		samples:    config.SamplesPerPixel,
		maxDepth:   config.MaxDepth,
	}
}

// RenderTile renders every pixel of the tile into its rows of the RGB24 buffer.
// Tiles never overlap, so concurrent calls on distinct tiles share the buffer safely.
func (tr *TileRenderer) RenderTile(tile Tile, buffer []byte) RenderStats {
	camera := tr.scene.GetCamera()
	sampler := core.NewSeededSampler(tile.Seed)
	stats := RenderStats{Tiles: 1}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		// Camera rows count upwards from the bottom of the image
		j := tr.height - 1 - y
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			var ps PixelStats
			for s := 0; s < tr.samples; s++ {
				u := (float64(i) + sampler.Get1D()) / float64(tr.width)
				v := (float64(j) + sampler.Get1D()) / float64(tr.height)
				ray := camera.GetRay(u, v, sampler)

				color := tr.integrator.RayColor(ray, tr.scene, sampler, tr.maxDepth)
				if !color.IsFinite() {
					stats.NonFiniteSamples++
					color = core.Color{}
				}
				ps.AddSample(color)
			}

			writePixel(buffer, tr.width, i, y, ps.GetColor())
			stats.TotalSamples += ps.SampleCount
			stats.TotalPixels++
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}
