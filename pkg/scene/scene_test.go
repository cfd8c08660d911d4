package scene

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// recordingLogger collects formatted log lines
type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.lines = append(r.lines, format)
}

func renderSmall(t *testing.T, s *Scene, seed int64) []byte {
	t.Helper()
	config := renderer.RenderConfig{Width: 6, Height: 6, SamplesPerPixel: 2, MaxDepth: 3, NumWorkers: 2, NumTiles: 3, Seed: seed}
	r, err := renderer.NewRenderer(config, &renderer.NopLogger{})
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	buffer, stats, err := r.Render(s)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.TotalPixels != 36 {
		t.Errorf("Expected 36 pixels, got %d", stats.TotalPixels)
	}
	return buffer
}

func TestNames(t *testing.T) {
	expected := []string{"cornell", "cornell-smoke", "final", "spheres"}
	names := Names()
	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, names)
		}
	}

	infos := List()
	if len(infos) != len(expected) {
		t.Fatalf("Expected %d scene infos, got %d", len(expected), len(infos))
	}
	for _, info := range infos {
		if info.Description == "" || info.Width <= 0 || info.Height <= 0 {
			t.Errorf("Incomplete scene info %+v", info)
		}
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	_, err := Create("teapot", Options{})
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestCreate_AllScenes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			logger := &recordingLogger{}
			s, err := Create(name, Options{Seed: 1, Logger: logger})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			if s.GetCamera() == nil || s.GetWorld() == nil {
				t.Fatal("Scene should have a camera and a world")
			}
			if _, ok := s.GetWorld().BoundingBox(0, 1); !ok {
				t.Error("World should be bounded")
			}
			if err := s.RenderConfig.Validate(); err != nil {
				t.Errorf("Scene render config should be valid: %v", err)
			}
			if len(logger.lines) == 0 {
				t.Error("Expected a setup log line")
			}

			// The center of the view always looks at something
			ray := s.GetCamera().GetRay(0.5, 0.5, core.NewSeededSampler(1))
			if _, hit := s.GetWorld().Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(1)); !hit {
				t.Error("Center camera ray should hit the scene")
			}

			renderSmall(t, s, 3)
		})
	}
}

func TestCornellScene_Lights(t *testing.T) {
	s, err := Create("cornell", Options{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	lights, ok := s.GetLights().(*geometry.HittableList)
	if !ok {
		t.Fatalf("Expected the ceiling light and the glass sphere in a list, got %T", s.GetLights())
	}
	if lights.Len() != 2 {
		t.Errorf("Expected 2 light targets, got %d", lights.Len())
	}

	// From the middle of the floor the light straight above is sampled
	origin := core.NewVec3(278, 1, 280)
	if pdf := lights.PDFValue(origin, core.NewVec3(0, 1, 0)); pdf <= 0 {
		t.Errorf("Expected positive density towards the ceiling light, got %f", pdf)
	}
}

func TestScenesWithoutLights(t *testing.T) {
	s, err := Create("spheres", Options{Seed: 4})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.GetLights() != nil {
		t.Errorf("Expected no light targets, got %T", s.GetLights())
	}
	if s.GetBackground().IsZero() {
		t.Error("Spheres scene is lit by its background and should not be black")
	}
}

func TestCreate_Deterministic(t *testing.T) {
	first, err := Create("spheres", Options{Seed: 7})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := Create("spheres", Options{Seed: 7})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.GetPrimitiveCount() != second.GetPrimitiveCount() {
		t.Errorf("Same seed should place the same objects: %d vs %d", first.GetPrimitiveCount(), second.GetPrimitiveCount())
	}
	if !bytes.Equal(renderSmall(t, first, 5), renderSmall(t, second, 5)) {
		t.Error("Same scene seed and render seed should render identically")
	}
}

func TestCreate_AspectRatio(t *testing.T) {
	wide, err := Create("cornell", Options{AspectRatio: 2})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if wide.CameraConfig.AspectRatio != 2 {
		t.Errorf("Expected aspect ratio 2, got %f", wide.CameraConfig.AspectRatio)
	}

	square, err := Create("cornell", Options{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if square.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected default aspect ratio 1, got %f", square.CameraConfig.AspectRatio)
	}
}

func TestFinalScene_Texture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globe.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.RGBA{R: 20, G: 60, B: 200, A: 255})
		img.Set(x, 1, color.RGBA{R: 40, G: 160, B: 40, A: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create texture: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode texture: %v", err)
	}
	f.Close()

	if _, err := Create("final", Options{Seed: 2, TexturePath: path}); err != nil {
		t.Errorf("Create with texture failed: %v", err)
	}

	if _, err := Create("final", Options{Seed: 2, TexturePath: filepath.Join(t.TempDir(), "missing.jpg")}); err == nil {
		t.Error("Expected an error for a missing texture")
	}
}
