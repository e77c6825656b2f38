package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/logging"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(2)
	}

	action, err := parseFlags(os.Args[1:], cfg, os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	switch action {
	case actionHelp:
		printHelp(os.Stdout, cfg)
		return
	case actionList:
		printScenes(os.Stdout)
		return
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(2)
	}
	logging.ReplaceGlobals(logger)

	ctx := logging.ContextWithLogger(context.Background(), logger)
	if err := run(ctx, cfg, os.Stdout); err != nil {
		logger.Error("render failed", logging.Error(err))
		os.Exit(1)
	}
}

type action int

const (
	actionRender action = iota
	actionHelp
	actionList
)

// newFlagSet binds every flag to a field of cfg, so defaults come from the environment
func newFlagSet(cfg *config.Config, errOut io.Writer) (fs *flag.FlagSet, list, help *bool) {
	fs = flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene to render (see -list)")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels (0 = scene default)")
	fs.IntVar(&cfg.Samples, "samples", cfg.Samples, "Samples per pixel (0 = scene default)")
	fs.IntVar(&cfg.MaxDepth, "depth", cfg.MaxDepth, "Maximum ray bounce depth, 0 renders black (-1 = scene default)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "PPM output path, '-' for stdout")
	fs.StringVar(&cfg.Compression, "compression", cfg.Compression, "PPM compression: none, zstd or snappy")
	fs.StringVar(&cfg.PNGPath, "png", cfg.PNGPath, "Also save a PNG to this path")
	fs.StringVar(&cfg.PreviewPath, "preview", cfg.PreviewPath, "Also save a downscaled PNG preview to this path")
	fs.IntVar(&cfg.PreviewWidth, "preview-width", cfg.PreviewWidth, "Preview width in pixels")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	list = fs.Bool("list", false, "List available scenes")
	help = fs.Bool("help", false, "Show help information")
	return fs, list, help
}

// parseFlags applies command line flags on top of cfg. Flags win over the environment.
func parseFlags(args []string, cfg *config.Config, errOut io.Writer) (action, error) {
	fs, list, help := newFlagSet(cfg, errOut)
	if err := fs.Parse(args); err != nil {
		return actionRender, err
	}
	if *help {
		return actionHelp, nil
	}
	if *list {
		return actionList, nil
	}
	if cfg.Width < 0 || cfg.Samples < 0 || cfg.MaxDepth < config.SceneMaxDepth || cfg.PreviewWidth <= 0 {
		err := errors.New("width and samples must not be negative, depth must be -1 or more and preview width must be positive")
		fmt.Fprintln(errOut, err)
		return actionRender, err
	}
	return actionRender, nil
}

func printHelp(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs, _, _ := newFlagSet(cfg, w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every option can also be set with a PATHTRACER_* environment variable or a .env file.")
	fmt.Fprintln(w)
	printScenes(w)
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-13s - %s\n", info.ID, info.Description)
	}
}

// createScene builds the configured scene with width, samples and depth overrides
func createScene(cfg *config.Config) (*scene.Scene, error) {
	s, err := scene.NewScene(cfg.Scene, renderer.CameraConfig{Width: cfg.Width})
	if err != nil {
		return nil, err
	}
	if cfg.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.Samples
	}
	if cfg.MaxDepth != config.SceneMaxDepth {
		s.SamplingConfig.MaxDepth = cfg.MaxDepth
	}
	return s, nil
}

// run renders the configured scene, writes every requested artifact and
// uploads the on-disk ones when a bucket is configured.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	logger := logging.LoggerFromContext(ctx)

	compression, err := output.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}

	for _, path := range []string{cfg.PNGPath, cfg.PreviewPath} {
		if path == "" {
			continue
		}
		if err := output.CheckImagePath(path); err != nil {
			return err
		}
	}

	s, err := createScene(cfg)
	if err != nil {
		return err
	}
	logger = logger.With(logging.String("scene", s.Name))

	raytracer := s.NewRaytracer()
	raytracer.SetSeed(cfg.Seed)
	raytracer.SetLogger(logger)

	sinks := output.NewMultiSink()
	finish := func() error { return nil }
	discard := func() {}
	var artifacts []string

	// PPM stream
	if cfg.Output == "-" || cfg.Output == "" {
		encoder, err := output.NewCompressedWriter(stdout, compression)
		if err != nil {
			return err
		}
		defer encoder.Close()
		sinks.Add(output.NewPPMWriter(encoder))
		finish = encoder.Close
	} else {
		file, err := output.CreatePPMFile(cfg.Output, compression)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		discard = func() {
			if err := file.Abort(); err != nil {
				logger.Warn("partial output left on disk", logging.String("path", file.Path()), logging.Error(err))
			}
		}
		sinks.Add(file)
		artifacts = append(artifacts, file.Path())
	}

	var images *output.ImageSink
	if cfg.PNGPath != "" || cfg.PreviewPath != "" {
		images = output.NewImageSink()
		sinks.Add(images)
	}

	logger.Info("render started",
		logging.Int("width", s.CameraConfig.Width),
		logging.Int("samples_per_pixel", s.SamplingConfig.SamplesPerPixel),
		logging.Int("max_depth", s.SamplingConfig.MaxDepth),
		logging.Int("primitives", s.GetPrimitiveCount()),
		logging.Int64("seed", cfg.Seed),
	)

	stats, err := raytracer.Render(sinks)
	if err != nil {
		discard()
		return err
	}
	if err := finish(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	logger.Info("render completed",
		logging.Int("width", stats.Width),
		logging.Int("height", stats.Height),
		logging.Int("total_samples", stats.TotalSamples),
		logging.Float64("average_luminance", stats.AverageLuminance),
		logging.Duration("elapsed", stats.Duration),
	)

	if images != nil {
		if cfg.PNGPath != "" {
			if err := output.SavePNG(cfg.PNGPath, images.Image()); err != nil {
				return err
			}
			artifacts = append(artifacts, cfg.PNGPath)
			logger.Info("saved png", logging.String("path", cfg.PNGPath))
		}
		if cfg.PreviewPath != "" {
			preview := output.Preview(images.Image(), cfg.PreviewWidth)
			if err := output.SavePNG(cfg.PreviewPath, preview); err != nil {
				return err
			}
			artifacts = append(artifacts, cfg.PreviewPath)
			logger.Info("saved preview", logging.String("path", cfg.PreviewPath), logging.Int("width", preview.Bounds().Dx()))
		}
	}

	if !cfg.S3.Enabled() || len(artifacts) == 0 {
		return nil
	}
	uploader, err := upload.NewS3Uploader(cfg.S3)
	if err != nil {
		return err
	}
	return uploadArtifacts(ctx, uploader, s.Name, time.Now(), artifacts)
}

// artifactUploader is the part of upload.S3Uploader used after a render
type artifactUploader interface {
	ObjectKey(scene string, at time.Time, localPath string) string
	UploadFile(ctx context.Context, key, localPath string) error
}

// uploadArtifacts uploads every artifact, returning the first failure
func uploadArtifacts(ctx context.Context, uploader artifactUploader, sceneName string, at time.Time, artifacts []string) error {
	for _, path := range artifacts {
		key := uploader.ObjectKey(sceneName, at, path)
		if err := uploader.UploadFile(ctx, key, path); err != nil {
			return err
		}
	}
	return nil
}
