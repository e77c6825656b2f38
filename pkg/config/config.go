package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-pathtracer/pkg/logging"
	"github.com/df07/go-pathtracer/pkg/output"
)

const (
	// DefaultScene is rendered when no scene is named.
	DefaultScene = "default"
	// DefaultOutput is where the PPM image goes. "-" means stdout.
	DefaultOutput = "-"
	// DefaultCompression leaves the PPM stream as plain text.
	DefaultCompression = "none"
	// DefaultPreviewWidth is the thumbnail width in pixels.
	DefaultPreviewWidth = 128
	// DefaultLogLevel controls verbosity for render logs.
	DefaultLogLevel = "info"
	// DefaultSeed keeps renders reproducible unless overridden.
	DefaultSeed int64 = 42
	// DefaultS3Prefix is prepended to uploaded object keys.
	DefaultS3Prefix = "renders"
	// SceneMaxDepth keeps the scene's own bounce budget. Zero is a real depth.
	SceneMaxDepth = -1
)

// Config captures all runtime tunables for a render.
// Zero Width or Samples and a MaxDepth of SceneMaxDepth mean "use the scene's value".
type Config struct {
	Scene        string
	Width        int
	Samples      int
	MaxDepth     int
	Seed         int64
	Output       string
	Compression  string
	PNGPath      string
	PreviewPath  string
	PreviewWidth int
	LogLevel     string
	S3           S3Config
}

// S3Config describes the optional artifact bucket.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// Enabled reports whether uploads are configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Load reads an optional .env file and then the PATHTRACER_* environment,
// applying defaults and returning every invalid override in one error.
// Variables already set in the environment win over the .env file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{
		Scene:        getString("PATHTRACER_SCENE", DefaultScene),
		MaxDepth:     SceneMaxDepth,
		Seed:         DefaultSeed,
		Output:       getString("PATHTRACER_OUTPUT", DefaultOutput),
		Compression:  getString("PATHTRACER_COMPRESSION", DefaultCompression),
		PNGPath:      strings.TrimSpace(os.Getenv("PATHTRACER_PNG")),
		PreviewPath:  strings.TrimSpace(os.Getenv("PATHTRACER_PREVIEW")),
		PreviewWidth: DefaultPreviewWidth,
		LogLevel:     getString("PATHTRACER_LOG_LEVEL", DefaultLogLevel),
		S3: S3Config{
			Bucket:    strings.TrimSpace(os.Getenv("PATHTRACER_S3_BUCKET")),
			Region:    strings.TrimSpace(os.Getenv("PATHTRACER_S3_REGION")),
			Endpoint:  strings.TrimSpace(os.Getenv("PATHTRACER_S3_ENDPOINT")),
			AccessKey: strings.TrimSpace(os.Getenv("PATHTRACER_S3_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("PATHTRACER_S3_SECRET_KEY")),
			Prefix:    getString("PATHTRACER_S3_PREFIX", DefaultS3Prefix),
		},
	}

	var problems []string

	parsePositive := func(key string, target *int) {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be a positive integer, got %q", key, raw))
			return
		}
		*target = value
	}

	parsePositive("PATHTRACER_WIDTH", &cfg.Width)
	parsePositive("PATHTRACER_SAMPLES", &cfg.Samples)
	parsePositive("PATHTRACER_PREVIEW_WIDTH", &cfg.PreviewWidth)

	if raw := strings.TrimSpace(os.Getenv("PATHTRACER_MAX_DEPTH")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("PATHTRACER_MAX_DEPTH must be a non-negative integer, got %q", raw))
		} else {
			cfg.MaxDepth = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("PATHTRACER_SEED")); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			problems = append(problems, fmt.Sprintf("PATHTRACER_SEED must be an integer, got %q", raw))
		} else {
			cfg.Seed = value
		}
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("PATHTRACER_LOG_LEVEL: %v", err))
	}
	if _, err := output.ParseCompression(cfg.Compression); err != nil {
		problems = append(problems, fmt.Sprintf("PATHTRACER_COMPRESSION: %v", err))
	}

	if cfg.S3.Enabled() {
		if cfg.S3.Region == "" {
			problems = append(problems, "PATHTRACER_S3_REGION is required when PATHTRACER_S3_BUCKET is set")
		}
		if (cfg.S3.AccessKey == "") != (cfg.S3.SecretKey == "") {
			problems = append(problems, "PATHTRACER_S3_ACCESS_KEY and PATHTRACER_S3_SECRET_KEY must be provided together")
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
