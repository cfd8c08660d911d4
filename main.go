package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// renderOptions holds the flags of the render command
type renderOptions struct {
	scene   string
	width   int
	height  int
	samples int
	depth   int
	workers int
	tiles   int
	seed    int64
	output  string
	texture string
}

func newRootCmd() *cobra.Command {
	opts := &renderOptions{}

	rootCmd := &cobra.Command{
		Use:   "pathtracer",
		Short: "Offline Monte Carlo path tracer",
		Long: `pathtracer renders built-in scenes with unidirectional path tracing,
BVH acceleration and light sampling, and saves the result as a PNG file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          renderRunE(opts),
	}
	// Rendering is the default action, so the root accepts the same flags
	addRenderFlags(rootCmd, opts)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to a PNG file",
		Args:  cobra.NoArgs,
		RunE:  renderRunE(opts),
	}
	addRenderFlags(renderCmd, opts)

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, info := range scene.List() {
				fmt.Fprintf(out, "  %-14s %dx%d  %s\n", info.ID, info.Width, info.Height, info.Description)
			}
		},
	}

	rootCmd.AddCommand(renderCmd, scenesCmd)
	return rootCmd
}

func renderRunE(opts *renderOptions) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		config, err := buildRenderConfig(cmd, opts)
		if err != nil {
			return err
		}
		return runRender(opts, config, renderer.NewDefaultLogger())
	}
}

func addRenderFlags(cmd *cobra.Command, opts *renderOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.scene, "scene", "cornell", "Scene to render (see 'pathtracer scenes')")
	flags.IntVar(&opts.width, "width", 0, "Image width in pixels (default: scene setting)")
	flags.IntVar(&opts.height, "height", 0, "Image height in pixels (default: scene setting)")
	flags.IntVar(&opts.samples, "samples", 0, "Samples per pixel (default: scene setting)")
	flags.IntVar(&opts.depth, "depth", 0, "Maximum bounces per path (default: scene setting)")
	flags.IntVar(&opts.workers, "workers", 16, "Number of parallel workers (0 = CPU count)")
	flags.IntVar(&opts.tiles, "tiles", 0, "Number of horizontal tiles (0 = default)")
	flags.Int64Var(&opts.seed, "seed", 1, "Seed for scene layout and sampling")
	flags.StringVar(&opts.output, "output", "", "Output PNG path (default: output/<scene>/render_<timestamp>.png)")
	flags.StringVar(&opts.texture, "texture", "", "Image file for the globe of the final scene")
}

// buildRenderConfig starts from the scene's suggested settings and applies the flags that were set
func buildRenderConfig(cmd *cobra.Command, opts *renderOptions) (renderer.RenderConfig, error) {
	config, err := scene.DefaultConfig(opts.scene)
	if err != nil {
		return renderer.RenderConfig{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		config.Width = opts.width
	}
	if flags.Changed("height") {
		config.Height = opts.height
	}
	if flags.Changed("samples") {
		config.SamplesPerPixel = opts.samples
	}
	if flags.Changed("depth") {
		config.MaxDepth = opts.depth
	}
	config.NumWorkers = opts.workers
	config.NumTiles = opts.tiles
	config.Seed = opts.seed

	if err := config.Validate(); err != nil {
		return renderer.RenderConfig{}, err
	}
	return config, nil
}

func createScene(opts *renderOptions, config renderer.RenderConfig, logger core.Logger) (*scene.Scene, error) {
	return scene.Create(opts.scene, scene.Options{
		Seed:        opts.seed,
		AspectRatio: float64(config.Width) / float64(config.Height),
		TexturePath: opts.texture,
		Logger:      logger,
	})
}

func runRender(opts *renderOptions, config renderer.RenderConfig, logger core.Logger) error {
	selectedScene, err := createScene(opts, config, logger)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(config, logger)
	if err != nil {
		return err
	}

	buffer, stats, err := r.Render(selectedScene)
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %.1f\n", stats.AverageSamples)

	filename := opts.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", opts.scene, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := writePNG(filename, buffer, config.Width, config.Height); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

func writePNG(filename string, buffer []byte, width, height int) error {
	img, err := renderer.ToImage(buffer, width, height)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
