package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCameraGetCameraForward(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45.0,
		AspectRatio: 1.0,
	})

	forward := camera.GetCameraForward()
	if !forward.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected forward direction (0,0,-1), got %v", forward)
	}
}

func TestCameraGetRay_Corners(t *testing.T) {
	// 90 degree field of view puts the image plane corners at (±1, ±1, -1)
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 1.0,
	})
	sampler := core.NewSeededSampler(42)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"bottom left", 0, 0, core.NewVec3(-1, -1, -1)},
		{"top right", 1, 1, core.NewVec3(1, 1, -1)},
		{"bottom right", 1, 0, core.NewVec3(1, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !ray.Origin.IsZero() {
				t.Errorf("Pinhole camera ray should start at the eye, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCameraGetRay_Defocus(t *testing.T) {
	config := CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 5),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   2.0,
		Aperture:      0.5,
		FocusDistance: 5,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(7)

	focusPoint := core.NewVec3(0, 0, 0)
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		offset := ray.Origin.Subtract(config.LookFrom)
		if offset.Length() > config.Aperture/2+1e-9 {
			t.Fatalf("Ray origin %v outside the lens", ray.Origin)
		}
		if math.Abs(offset.Z) > 1e-9 {
			t.Fatalf("Lens offset should lie in the lens plane, got %v", offset)
		}

		// Every ray through the image center converges on the focus plane
		hitFocusPlane := ray.At((focusPoint.Z - ray.Origin.Z) / ray.Direction.Z)
		if hitFocusPlane.Subtract(focusPoint).Length() > 1e-9 {
			t.Fatalf("Ray missed the focus point: %v", hitFocusPlane)
		}
	}
}

func TestCameraGetRay_Shutter(t *testing.T) {
	config := CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: 1.5,
		Time0:       0.25,
		Time1:       0.75,
	}
	sampler := core.NewSeededSampler(3)

	camera := NewCamera(config)
	minTime, maxTime := math.Inf(1), math.Inf(-1)
	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(0.3, 0.6, sampler)
		minTime = math.Min(minTime, ray.Time)
		maxTime = math.Max(maxTime, ray.Time)
	}
	if minTime < 0.25 || maxTime >= 0.75 {
		t.Errorf("Ray times should lie in [0.25, 0.75), got [%f, %f]", minTime, maxTime)
	}
	if maxTime-minTime < 0.4 {
		t.Errorf("Ray times should spread over the shutter interval, got [%f, %f]", minTime, maxTime)
	}

	// A closed shutter interval always uses the open time
	config.Time1 = config.Time0
	ray := NewCamera(config).GetRay(0.3, 0.6, sampler)
	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %f", ray.Time)
	}
}

func TestCameraFocusDistanceDefaultsToLookAt(t *testing.T) {
	base := CameraConfig{
		LookFrom:    core.NewVec3(1, 2, 3),
		LookAt:      core.NewVec3(-2, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30,
		AspectRatio: 1,
	}
	explicit := base
	explicit.FocusDistance = base.LookFrom.Subtract(base.LookAt).Length()

	sampler := core.NewSeededSampler(1)
	a := NewCamera(base).GetRay(0.2, 0.9, sampler)
	b := NewCamera(explicit).GetRay(0.2, 0.9, sampler)
	if a.Direction.Subtract(b.Direction).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", b.Direction, a.Direction)
	}
}
