package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ColorToBytes tone maps a linear color into RGB24: gamma 2 correction,
// clamp to [0, 0.999] and scale to [0, 255]
func ColorToBytes(c core.Color) (r, g, b uint8) {
	mapped := core.NewVec3(positive(c.X), positive(c.Y), positive(c.Z)).
		GammaCorrect(2).
		Clamp(0, 0.999)
	return uint8(256 * mapped.X), uint8(256 * mapped.Y), uint8(256 * mapped.Z)
}

// positive maps negative and NaN channels to 0
func positive(value float64) float64 {
	if !(value > 0) {
		return 0
	}
	return value
}

// writePixel stores a color at (x, y) of a row-major RGB24 buffer, y = 0 being the top row
func writePixel(buffer []byte, width, x, y int, c core.Color) {
	offset := (y*width + x) * 3
	buffer[offset], buffer[offset+1], buffer[offset+2] = ColorToBytes(c)
}

// ToImage converts a row-major RGB24 buffer into an RGBA image
func ToImage(buffer []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(buffer) != width*height*3 {
		return nil, fmt.Errorf("buffer of %d bytes does not hold a %dx%d RGB24 image", len(buffer), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := (y*width + x) * 3
			img.SetRGBA(x, y, color.RGBA{
				R: buffer[offset],
				G: buffer[offset+1],
				B: buffer[offset+2],
				A: 255,
			})
		}
	}
	return img, nil
}
