package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(uv core.Vec2, point core.Vec3) core.Color {
	return s.Color
}

// Checker alternates between two textures in 3D space
type Checker struct {
	Odd   core.Texture
	Even  core.Texture
	Scale float64 // Spatial frequency of the pattern
}

// NewChecker creates a checker texture from two textures
func NewChecker(odd, even core.Texture) *Checker {
	return &Checker{Odd: odd, Even: even, Scale: 10}
}

// NewCheckerColors creates a checker texture from two solid colors
func NewCheckerColors(odd, even core.Color) *Checker {
	return NewChecker(NewSolidColor(odd), NewSolidColor(even))
}

// Value picks Odd where the product of sines is negative, Even otherwise
func (c *Checker) Value(uv core.Vec2, point core.Vec3) core.Color {
	sines := math.Sin(c.Scale*point.X) * math.Sin(c.Scale*point.Y) * math.Sin(c.Scale*point.Z)
	if sines < 0 {
		return c.Odd.Value(uv, point)
	}
	return c.Even.Value(uv, point)
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a noise texture with the given frequency scale
func NewNoiseTexture(noise *Perlin, scale float64) *NoiseTexture {
	return &NoiseTexture{noise: noise, Scale: scale}
}

// Value returns a gray level in [0, 1]
func (n *NoiseTexture) Value(uv core.Vec2, point core.Vec3) core.Color {
	gray := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.noise.Turbulence(point, 7)))
	return core.NewVec3(gray, gray, gray)
}
