package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func doRequest(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewServer(0, 2).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doRequest(t, "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Scenes []scene.SceneInfo `json:"scenes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(body.Scenes) != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), len(body.Scenes))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := doRequest(t, "/api/scene-config?scene=cornell")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Scene    string         `json:"scene"`
		Defaults map[string]int `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	expected, err := scene.DefaultConfig("cornell")
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}
	if body.Scene != "cornell" || body.Defaults["width"] != expected.Width || body.Defaults["maxDepth"] != expected.MaxDepth {
		t.Errorf("Unexpected scene config %+v", body)
	}

	if rec := doRequest(t, "/api/scene-config?scene=teapot"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown scene, got %d", rec.Code)
	}
}

func TestHandleRender_PNG(t *testing.T) {
	rec := doRequest(t, "/api/render?scene=cornell&width=4&height=3&samples=1&depth=2&seed=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Response is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("Expected 4x3 image, got %v", img.Bounds())
	}
}

func TestHandleRender_Deterministic(t *testing.T) {
	target := "/api/render?scene=spheres&width=5&height=4&samples=2&depth=3&seed=8"
	first := doRequest(t, target)
	second := doRequest(t, target)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d and %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("Same request should produce the same image")
	}
}

func TestHandleRender_JSON(t *testing.T) {
	rec := doRequest(t, "/api/render?scene=cornell&width=4&height=4&samples=2&depth=2&format=json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Stats.TotalPixels != 16 || response.Stats.TotalSamples != 32 {
		t.Errorf("Unexpected stats %+v", response.Stats)
	}
	if len(response.Console) == 0 {
		t.Error("Expected render log messages in the response")
	}

	data, err := base64.StdEncoding.DecodeString(response.ImageData)
	if err != nil {
		t.Fatalf("Image data is not base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Image data is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 4x4 image, got %v", img.Bounds())
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"zero width", "width=0", http.StatusBadRequest},
		{"non numeric height", "height=abc", http.StatusBadRequest},
		{"zero samples", "samples=0", http.StatusBadRequest},
		{"depth too large", "depth=5000", http.StatusBadRequest},
		{"bad seed", "seed=x", http.StatusBadRequest},
		{"unsupported format", "format=gif", http.StatusBadRequest},
		{"unknown scene", "scene=teapot", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, "/api/render?"+tt.query)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, rec.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("Expected a JSON error message, got %s", rec.Body.String())
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	rec := doRequest(t, "/api/inspect?scene=cornell&width=8&height=8&x=4&y=4")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !response.Hit {
		t.Fatal("Center of the Cornell box should hit something")
	}
	if response.Distance <= 0 {
		t.Errorf("Expected positive distance, got %f", response.Distance)
	}
	if response.MaterialType == "" || response.MaterialType == "unknown" {
		t.Errorf("Expected a known material, got %q", response.MaterialType)
	}
}

func TestHandleInspect_BadRequests(t *testing.T) {
	tests := []string{
		"/api/inspect?scene=cornell&width=8&height=8&y=4",
		"/api/inspect?scene=cornell&width=8&height=8&x=4&y=abc",
		"/api/inspect?scene=cornell&width=8&height=8&x=8&y=0",
		"/api/inspect?scene=cornell&width=8&height=8&x=0&y=-1",
	}
	for _, target := range tests {
		if rec := doRequest(t, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestExtractGeometryInfo(t *testing.T) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	box := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3), white)
	object := geometry.NewTranslate(geometry.NewRotateY(box, 15), core.NewVec3(5, 0, 0))

	geometryType, properties := extractGeometryInfo(object)
	if geometryType != "translate" {
		t.Fatalf("Expected translate, got %s", geometryType)
	}
	rotated, ok := properties["object"].(map[string]interface{})
	if !ok || rotated["type"] != "rotate_y" {
		t.Fatalf("Expected nested rotate_y, got %v", properties["object"])
	}
	inner, ok := rotated["properties"].(map[string]interface{})["object"].(map[string]interface{})
	if !ok || inner["type"] != "box" {
		t.Errorf("Expected nested box, got %v", rotated["properties"])
	}

	if geometryType, _ := extractGeometryInfo(geometry.NewFlipFace(geometry.NewXZRect(0, 1, 0, 1, 2, white))); geometryType != "rect" {
		t.Errorf("Flipped rect should report rect, got %s", geometryType)
	}
}

func TestExtractMaterialInfo(t *testing.T) {
	hit := &core.HitRecord{Point: core.NewVec3(0, 0, 0)}

	tests := []struct {
		name     string
		material core.Material
		expected string
	}{
		{"lambertian", material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)), "lambertian"},
		{"metal", material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.2), "metal"},
		{"dielectric", material.NewDielectric(1.5), "dielectric"},
		{"light", material.NewDiffuseLight(core.NewVec3(15, 15, 15)), "diffuse_light"},
		{"isotropic", material.NewIsotropic(core.NewVec3(1, 1, 1)), "isotropic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			materialType, properties := extractMaterialInfo(tt.material, hit)
			if materialType != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, materialType)
			}
			if _, ok := properties["color"]; !ok {
				t.Error("Expected a color property")
			}
		})
	}

	_, properties := extractMaterialInfo(material.NewDiffuseLight(core.NewVec3(15, 15, 15)), hit)
	if properties["color"] != "#ffffff" {
		t.Errorf("Bright emission should clamp to white, got %v", properties["color"])
	}
}
