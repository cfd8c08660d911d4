package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	maxImageSize = 2000
	maxSamples   = 10000
	maxDepth     = 1000
)

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	ElapsedMs int64            `json:"elapsedMs"`
	Console   []ConsoleMessage `json:"console"`
}

// handleRender renders a scene and returns it as a PNG, or as JSON with format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		writeError(w, status, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	logger := NewWebLogger(fmt.Sprintf("%s-%d", req.Scene, time.Now().UnixNano()))
	startTime := time.Now()

	img, stats, err := s.render(req, logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}
	elapsed := time.Since(startTime)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	if req.Format == "json" {
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     req.Scene,
			Width:     req.Width,
			Height:    req.Height,
			ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
			Stats: Stats{
				TotalPixels:      stats.TotalPixels,
				TotalSamples:     int64(stats.TotalSamples),
				AverageSamples:   stats.AverageSamples,
				NonFiniteSamples: stats.NonFiniteSamples,
				Tiles:            stats.Tiles,
			},
			ElapsedMs: elapsed.Milliseconds(),
			Console:   logger.Messages(),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))
	w.Header().Set("X-Samples-Per-Pixel", strconv.Itoa(req.Samples))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// render builds the requested scene and renders it to an image
func (s *Server) render(req *RenderRequest, logger *WebLogger) (image.Image, renderer.RenderStats, error) {
	sceneObj, err := scene.Create(req.Scene, scene.Options{
		Seed:        req.Seed,
		AspectRatio: float64(req.Width) / float64(req.Height),
		Logger:      logger,
	})
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	config := renderer.RenderConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		NumWorkers:      max(s.numWorkers, 0),
		Seed:            req.Seed,
	}
	r, err := renderer.NewRenderer(config, logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	buffer, stats, err := r.Render(sceneObj)
	if err != nil {
		return nil, stats, err
	}

	img, err := renderer.ToImage(buffer, req.Width, req.Height)
	if err != nil {
		return nil, stats, err
	}
	return img, stats, nil
}

// parseRenderRequest parses request parameters, defaulting to the scene's own settings
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Format: query.Get("format")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != "png" && req.Format != "json" {
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	defaults, err := scene.DefaultConfig(req.Scene)
	if err != nil {
		return nil, err
	}

	if req.Width, err = parseIntParam(query, "width", defaults.Width, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", defaults.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", defaults.MaxDepth, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", defaults.Seed); err != nil {
		return nil, err
	}

	return req, nil
}
