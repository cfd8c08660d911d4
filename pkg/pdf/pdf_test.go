package pdf

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// constantPDF is a mock PDF with a fixed value and direction
type constantPDF struct {
	value     float64
	direction core.Vec3
}

func (c constantPDF) Value(direction core.Vec3) float64       { return c.value }
func (c constantPDF) Generate(sampler core.Sampler) core.Vec3 { return c.direction }

// mockSamplable is a light target that records the origin it was queried with
type mockSamplable struct {
	value     float64
	direction core.Vec3
	origin    core.Vec3
}

func (m *mockSamplable) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return nil, false
}
func (m *mockSamplable) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, true
}
func (m *mockSamplable) PDFValue(origin, direction core.Vec3) float64 {
	m.origin = origin
	return m.value
}
func (m *mockSamplable) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	m.origin = origin
	return m.direction
}

func TestCosinePDF_Value(t *testing.T) {
	p := NewCosinePDF(core.NewVec3(0, 1, 0))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  float64
	}{
		{"Along normal", core.NewVec3(0, 1, 0), 1 / math.Pi},
		{"Unnormalized", core.NewVec3(0, 3, 0), 1 / math.Pi},
		{"Tangent", core.NewVec3(1, 0, 0), 0},
		{"Below", core.NewVec3(0, -1, 0), 0},
		{"60 degrees", core.NewVec3(math.Sqrt(3), 1, 0), 0.5 / math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Value(tt.direction); math.Abs(got-tt.expected) > 1e-10 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestCosinePDF_GenerateInHemisphere(t *testing.T) {
	normal := core.NewVec3(1, 2, -1).Normalize()
	p := NewCosinePDF(normal)
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 1000; i++ {
		d := p.Generate(sampler)
		if d.Dot(normal) < -1e-12 {
			t.Fatalf("Generated direction %v below hemisphere", d)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got %v", d)
		}
	}
}

// Monte Carlo estimate of ∫ p(ω) dω over the sphere using uniform samples
func TestCosinePDF_IntegratesToOne(t *testing.T) {
	p := NewCosinePDF(core.NewVec3(0, 0, 1))
	sampler := core.NewSeededSampler(7)

	const numSamples = 100000
	sum := 0.0
	for i := 0; i < numSamples; i++ {
		d := core.SampleOnUnitSphere(sampler.Get2D())
		sum += p.Value(d) * 4 * math.Pi
	}

	if estimate := sum / numSamples; math.Abs(estimate-1) > 0.02 {
		t.Errorf("Expected integral ~1, got %f", estimate)
	}
}

func TestMixturePDF_ValueIsMean(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 float64
	}{
		{"Equal", 0.5, 0.5},
		{"Different", 0.2, 1.4},
		{"One zero", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMixturePDF(constantPDF{value: tt.p0}, constantPDF{value: tt.p1})
			expected := 0.5*tt.p0 + 0.5*tt.p1
			if got := m.Value(core.NewVec3(0, 1, 0)); got != expected {
				t.Errorf("Expected %f, got %f", expected, got)
			}
		})
	}
}

func TestMixturePDF_GenerateChoosesBoth(t *testing.T) {
	left := core.NewVec3(-1, 0, 0)
	right := core.NewVec3(1, 0, 0)
	m := NewMixturePDF(constantPDF{value: 1, direction: left}, constantPDF{value: 1, direction: right})
	sampler := core.NewSeededSampler(42)

	countLeft := 0
	const numSamples = 10000
	for i := 0; i < numSamples; i++ {
		if m.Generate(sampler).Equals(left) {
			countLeft++
		}
	}

	fraction := float64(countLeft) / numSamples
	if math.Abs(fraction-0.5) > 0.03 {
		t.Errorf("Expected each PDF chosen half the time, got %f", fraction)
	}
}

func TestHittablePDF_Delegates(t *testing.T) {
	origin := core.NewVec3(1, 2, 3)
	target := &mockSamplable{value: 0.25, direction: core.NewVec3(0, 1, 0)}
	p := NewHittablePDF(target, origin)

	if got := p.Value(core.NewVec3(0, 1, 0)); got != 0.25 {
		t.Errorf("Expected delegated value 0.25, got %f", got)
	}
	if !target.origin.Equals(origin) {
		t.Errorf("Expected origin %v passed through, got %v", origin, target.origin)
	}

	target.origin = core.Vec3{}
	if got := p.Generate(core.NewSeededSampler(1)); !got.Equals(target.direction) {
		t.Errorf("Expected delegated direction, got %v", got)
	}
	if !target.origin.Equals(origin) {
		t.Errorf("Expected origin %v passed through, got %v", origin, target.origin)
	}
}
