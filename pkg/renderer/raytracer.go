package renderer

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/lights"
)

// DefaultSeed seeds the sampler when none is supplied, so renders are reproducible
const DefaultSeed int64 = 42

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        10,
	}
}

// RenderState tracks where a raytracer is in its lifecycle
type RenderState int

const (
	StateUnconfigured RenderState = iota
	StateInitialized
	StateRendering
	StateDone
)

func (s RenderState) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateInitialized:
		return "initialized"
	case StateRendering:
		return "rendering"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("RenderState(%d)", int(s))
	}
}

// PixelSink receives a rendered image one pixel at a time in raster order
type PixelSink interface {
	Begin(width, height int) error
	WritePixel(c color.RGBA) error
	End() error
}

// Raytracer handles the rendering process
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	background lights.Background
	config     SamplingConfig
	integrator integrator.Integrator
	sampler    core.Sampler
	logger     core.Logger
	state      RenderState
}

// NewRaytracer creates a new raytracer. A nil background uses the sky gradient.
func NewRaytracer(world geometry.Shape, camera *Camera, background lights.Background) *Raytracer {
	rt := &Raytracer{
		world:      world,
		camera:     camera,
		background: background,
		sampler:    core.NewSeededSampler(DefaultSeed),
	}
	rt.SetSamplingConfig(DefaultSamplingConfig())
	return rt
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
	rt.integrator = integrator.NewPathTracingIntegrator(config.MaxDepth, rt.background)
	rt.state = StateUnconfigured
}

// SamplingConfig returns the active sampling configuration
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.config
}

// SetSampler replaces the random source used for every sample
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SetSeed reseeds the sampler deterministically
func (rt *Raytracer) SetSeed(seed int64) {
	rt.SetSampler(core.NewSeededSampler(seed))
}

// SetLogger sets the destination for progress messages. Nil disables them.
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// State returns the current lifecycle state
func (rt *Raytracer) State() RenderState {
	return rt.state
}

// Camera returns the camera used for ray generation
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Initialize derives camera state from the current configuration
func (rt *Raytracer) Initialize() error {
	if rt.config.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be positive, got %d", rt.config.SamplesPerPixel)
	}
	if err := rt.camera.Initialize(); err != nil {
		rt.state = StateUnconfigured
		return err
	}
	rt.state = StateInitialized
	return nil
}

// Render traces every pixel top-to-bottom, left-to-right and streams the
// quantized colors to sink in that order.
func (rt *Raytracer) Render(sink PixelSink) (RenderStats, error) {
	if err := rt.Initialize(); err != nil {
		return RenderStats{}, fmt.Errorf("initialize camera: %w", err)
	}

	width := rt.camera.ImageWidth()
	height := rt.camera.ImageHeight()
	start := time.Now()

	if err := sink.Begin(width, height); err != nil {
		return RenderStats{}, fmt.Errorf("begin output: %w", err)
	}

	rt.state = StateRendering
	luminanceSum := 0.0

	for j := 0; j < height; j++ {
		rt.logf("Scanlines remaining: %d", height-j)
		for i := 0; i < width; i++ {
			ps := rt.renderPixel(i, j)
			c := ps.RGBA()
			luminanceSum += luminance(c)
			if err := sink.WritePixel(c); err != nil {
				rt.state = StateInitialized
				return RenderStats{}, fmt.Errorf("write pixel (%d, %d): %w", i, j, err)
			}
		}
	}

	if err := sink.End(); err != nil {
		rt.state = StateInitialized
		return RenderStats{}, fmt.Errorf("end output: %w", err)
	}
	rt.logf("Done.")
	rt.state = StateDone

	totalPixels := width * height
	return RenderStats{
		Width:            width,
		Height:           height,
		TotalPixels:      totalPixels,
		TotalSamples:     totalPixels * rt.config.SamplesPerPixel,
		SamplesPerPixel:  rt.config.SamplesPerPixel,
		MaxDepth:         rt.config.MaxDepth,
		AverageLuminance: luminanceSum / float64(totalPixels),
		Duration:         time.Since(start),
	}, nil
}

// RenderImage renders into an in-memory RGBA image
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats, error) {
	sink := &imageSink{}
	stats, err := rt.Render(sink)
	if err != nil {
		return nil, stats, err
	}
	return sink.img, stats, nil
}

// renderPixel accumulates every sample for pixel (i, j)
func (rt *Raytracer) renderPixel(i, j int) PixelStats {
	var ps PixelStats
	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		ray := rt.camera.GetRay(i, j, rt.sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, rt.sampler))
	}
	return ps
}

func (rt *Raytracer) logf(format string, args ...interface{}) {
	if rt.logger != nil {
		rt.logger.Printf(format, args...)
	}
}

// imageSink collects pixels into an image.RGBA
type imageSink struct {
	img  *image.RGBA
	next int
}

func (s *imageSink) Begin(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.next = 0
	return nil
}

func (s *imageSink) WritePixel(c color.RGBA) error {
	b := s.img.Bounds()
	if s.next >= b.Dx()*b.Dy() {
		return fmt.Errorf("image full: more than %d pixels", b.Dx()*b.Dy())
	}
	s.img.SetRGBA(s.next%b.Dx(), s.next/b.Dx(), c)
	s.next++
	return nil
}

func (s *imageSink) End() error {
	if total := s.img.Bounds().Dx() * s.img.Bounds().Dy(); s.next != total {
		return fmt.Errorf("image incomplete: wrote %d of %d pixels", s.next, total)
	}
	return nil
}
