package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *core.HitRecord
	Object    core.Hittable // Top level scene object that was hit, nil if unknown
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	r, g, b := c.X, c.Y, c.Z
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Min(r, 1)*255), int(math.Min(g, 1)*255), int(math.Min(b, 1)*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat core.Material, hit *core.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Value(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = hexColor(albedo)
		properties["texture"] = textureType(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		albedo := m.Albedo.Value(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = hexColor(albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		emission := m.Emit.Value(hit.UV, hit.Point)
		properties["emission"] = vecArray(emission)
		properties["color"] = hexColor(emission)
		return "diffuse_light", properties

	case *material.Isotropic:
		albedo := m.Albedo.Value(hit.UV, hit.Point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = hexColor(albedo)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

func textureType(tex core.Texture) string {
	switch tex.(type) {
	case *material.SolidColor:
		return "solid"
	case *material.Checker:
		return "checker"
	case *material.NoiseTexture:
		return "noise"
	case *material.ImageTexture:
		return "image"
	default:
		return "unknown"
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(object core.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vecArray(geom.Center0)
		properties["center1"] = vecArray(geom.Center1)
		properties["radius"] = geom.Radius
		return "moving_sphere", properties

	case *geometry.AARect:
		properties["bounds"] = [4]float64{geom.A0, geom.A1, geom.B0, geom.B1}
		properties["k"] = geom.K
		return "rect", properties

	case *geometry.Box:
		properties["min"] = vecArray(geom.Min)
		properties["max"] = vecArray(geom.Max)
		return "box", properties

	case *geometry.ConstantMedium:
		innerType, innerProps := extractGeometryInfo(geom.Boundary)
		properties["boundary"] = map[string]interface{}{
			"type":       innerType,
			"properties": innerProps,
		}
		return "constant_medium", properties

	case *geometry.Translate:
		innerType, innerProps := extractGeometryInfo(geom.Object)
		properties["offset"] = vecArray(geom.Offset)
		properties["object"] = map[string]interface{}{
			"type":       innerType,
			"properties": innerProps,
		}
		return "translate", properties

	case *geometry.RotateY:
		innerType, innerProps := extractGeometryInfo(geom.Object)
		properties["object"] = map[string]interface{}{
			"type":       innerType,
			"properties": innerProps,
		}
		return "rotate_y", properties

	case *geometry.FlipFace:
		return extractGeometryInfo(geom.Object)

	case *geometry.BVH:
		return "bvh", properties

	case *geometry.HittableList:
		properties["count"] = geom.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of the given pixel and reports the first hit.
// Pixel rows count from the top of the image.
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	camera := sceneObj.GetCamera()
	world := sceneObj.GetWorld()
	if camera == nil || world == nil {
		return InspectResult{Hit: false}
	}

	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := camera.GetRay(u, v, core.NewSeededSampler(0))

	hit, isHit := world.Hit(ray, 0.001, math.Inf(1), core.NewSeededSampler(0))
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The BVH does not report which object was hit, so retest the top level objects
	for _, object := range sceneObj.Objects {
		if objectHit, ok := object.Hit(ray, 0.001, hit.T+0.001, core.NewSeededSampler(0)); ok && objectHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Object: object}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		writeError(w, status, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := scene.Create(inspectReq.Scene, scene.Options{
		Seed:        inspectReq.Seed,
		AspectRatio: float64(inspectReq.Width) / float64(inspectReq.Height),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material, result.HitRecord)
	geometryType, geometryProps := "unknown", map[string]interface{}{}
	if result.Object != nil {
		geometryType, geometryProps = extractGeometryInfo(result.Object)
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
