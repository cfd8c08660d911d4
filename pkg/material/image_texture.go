package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from an RGB24 image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []byte // Row-major RGB24, top row first
}

// NewImageTexture creates a new image texture over width*height*3 bytes
func NewImageTexture(width, height int, pixels []byte) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the texture at UV coordinates using nearest-neighbor filtering.
// Missing image data renders as solid cyan so it stands out.
func (t *ImageTexture) Value(uv core.Vec2, point core.Vec3) core.Color {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height*3 {
		return core.NewVec3(0, 1, 1)
	}

	// Clamp UV to [0, 1]; V=0 is bottom, image rows start at the top
	u := clamp01(uv.X)
	v := 1.0 - clamp01(uv.Y)

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	offset := (y*t.Width + x) * 3
	return core.NewVec3(
		float64(t.Pixels[offset])/255.0,
		float64(t.Pixels[offset+1])/255.0,
		float64(t.Pixels[offset+2])/255.0,
	)
}

// clamp01 clamps x to [0, 1], mapping NaN to 0
func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
