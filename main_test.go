package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/logging"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func testConfig() *config.Config {
	return &config.Config{
		Scene:        "ground",
		Width:        8,
		Samples:      1,
		MaxDepth:     4,
		Seed:         config.DefaultSeed,
		Output:       "-",
		Compression:  "none",
		PreviewWidth: 4,
		LogLevel:     "info",
	}
}

func testContext() context.Context {
	return logging.ContextWithLogger(context.Background(), logging.NewTestLogger())
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"ground scene", "ground", false},
		{"defocus scene", "defocus", false},
		{"hollow-glass scene", "hollow-glass", false},
		{"spheregrid scene", "spheregrid", false},

		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Scene = tt.sceneType
			s, err := createScene(cfg)

			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for scene type '%s', got %v", tt.sceneType, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CameraConfig.Width != 8 {
				t.Errorf("Expected width override 8, got %d", s.CameraConfig.Width)
			}
			if s.SamplingConfig.SamplesPerPixel != 1 || s.SamplingConfig.MaxDepth != 4 {
				t.Errorf("Expected sampling overrides, got %+v", s.SamplingConfig)
			}
		})
	}
}

func TestCreateScene_KeepsSceneDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.Scene = "default"
	cfg.Width, cfg.Samples, cfg.MaxDepth = 0, 0, config.SceneMaxDepth

	s, err := createScene(cfg)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.CameraConfig.Width != 400 || s.SamplingConfig.SamplesPerPixel != 100 || s.SamplingConfig.MaxDepth != 50 {
		t.Errorf("Expected scene defaults, got camera %+v sampling %+v", s.CameraConfig, s.SamplingConfig)
	}
}

func TestCreateScene_DepthZero(t *testing.T) {
	cfg := testConfig()
	if _, err := parseFlags([]string{"-depth", "0"}, cfg, io.Discard); err != nil {
		t.Fatalf("parseFlags rejected depth 0: %v", err)
	}
	s, err := createScene(cfg)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.SamplingConfig.MaxDepth != 0 {
		t.Errorf("Expected depth 0 to reach the scene, got %d", s.SamplingConfig.MaxDepth)
	}

	var stdout bytes.Buffer
	if err := run(testContext(), cfg, &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	for i, line := range lines[3:] {
		if line != "0 0 0" {
			t.Fatalf("Pixel %d: expected black with no bounce budget, got %q", i, line)
		}
	}
}

func TestParseFlags(t *testing.T) {
	cfg := testConfig()
	act, err := parseFlags([]string{"-scene", "defocus", "-width", "32", "-seed", "5", "-compression", "zstd"}, cfg, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if act != actionRender {
		t.Errorf("Expected render action, got %v", act)
	}
	if cfg.Scene != "defocus" || cfg.Width != 32 || cfg.Seed != 5 || cfg.Compression != "zstd" {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	// Untouched flags keep their configured values
	if cfg.Samples != 1 || cfg.MaxDepth != 4 {
		t.Errorf("Expected config values preserved, got %+v", cfg)
	}
}

func TestParseFlags_Actions(t *testing.T) {
	if act, _ := parseFlags([]string{"-help"}, testConfig(), io.Discard); act != actionHelp {
		t.Errorf("Expected help action, got %v", act)
	}
	if act, _ := parseFlags([]string{"-list"}, testConfig(), io.Discard); act != actionList {
		t.Errorf("Expected list action, got %v", act)
	}
	if _, err := parseFlags([]string{"-width", "-3"}, testConfig(), io.Discard); err == nil {
		t.Error("Expected error for negative width")
	}
	if _, err := parseFlags([]string{"-depth", "-2"}, testConfig(), io.Discard); err == nil {
		t.Error("Expected error for depth below -1")
	}
	if _, err := parseFlags([]string{"-bogus"}, testConfig(), io.Discard); err == nil {
		t.Error("Expected error for unknown flag")
	}
}

func TestPrintHelpListsScenes(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf, testConfig())
	for _, want := range []string{"-scene", "-compression", "PATHTRACER_", "hollow-glass"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Help output missing %q", want)
		}
	}
}

func TestRun_StdoutPPM(t *testing.T) {
	var stdout bytes.Buffer
	if err := run(testContext(), testConfig(), &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "P3\n8 8\n255\n") {
		t.Fatalf("Unexpected PPM header: %q", stdout.String()[:min(20, stdout.Len())])
	}
	if lines := strings.Count(stdout.String(), "\n"); lines != 3+64 {
		t.Errorf("Expected %d lines, got %d", 3+64, lines)
	}
}

func TestRun_FilesAndArtifacts(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Output = filepath.Join(dir, "render.ppm")
	cfg.Compression = "snappy"
	cfg.PNGPath = filepath.Join(dir, "render.png")
	cfg.PreviewPath = filepath.Join(dir, "preview.png")

	var stdout bytes.Buffer
	if err := run(testContext(), cfg, &stdout); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout when writing to a file, got %d bytes", stdout.Len())
	}

	for _, path := range []string{cfg.Output + ".sz", cfg.PNGPath, cfg.PreviewPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected artifact %s: %v", path, err)
		}
	}

	file, err := os.Open(cfg.Output + ".sz")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	r, err := output.NewDecompressedReader(file, output.CompressionSnappy)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n8 8\n255\n") {
		t.Errorf("Unexpected decompressed header %q", string(data[:min(20, len(data))]))
	}
}

func TestRun_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.Compression = "gzip"
	if err := run(testContext(), cfg, io.Discard); !errors.Is(err, output.ErrUnknownCompression) {
		t.Errorf("Expected ErrUnknownCompression, got %v", err)
	}

	cfg = testConfig()
	cfg.Scene = "cornell"
	if err := run(testContext(), cfg, io.Discard); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestRun_BadImagePathFailsBeforeRender(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Output = filepath.Join(dir, "render.ppm")
	cfg.PreviewPath = filepath.Join(dir, "preview")

	if err := run(testContext(), cfg, io.Discard); err == nil {
		t.Fatal("Expected error for a preview path without an image extension")
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("Expected no PPM file to be created, stat returned %v", err)
	}
}

func TestRun_Deterministic(t *testing.T) {
	render := func() string {
		cfg := testConfig()
		cfg.Scene = "default"
		cfg.Width = 16
		cfg.Samples = 2
		var buf bytes.Buffer
		if err := run(testContext(), cfg, &buf); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return buf.String()
	}
	if render() != render() {
		t.Error("Expected identical output for identical seeds")
	}
}

// fakeUploader records uploads
type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) ObjectKey(scene string, at time.Time, localPath string) string {
	return scene + "/" + filepath.Base(localPath)
}

func (f *fakeUploader) UploadFile(ctx context.Context, key, localPath string) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	return nil
}

func TestUploadArtifacts(t *testing.T) {
	fake := &fakeUploader{}
	err := uploadArtifacts(testContext(), fake, "default", time.Now(), []string{"/tmp/a.ppm.zst", "/tmp/a.png"})
	if err != nil {
		t.Fatalf("uploadArtifacts failed: %v", err)
	}
	if len(fake.keys) != 2 || fake.keys[0] != "default/a.ppm.zst" || fake.keys[1] != "default/a.png" {
		t.Errorf("Unexpected keys %v", fake.keys)
	}

	failing := &fakeUploader{err: errors.New("denied")}
	if err := uploadArtifacts(testContext(), failing, "default", time.Now(), []string{"x"}); err == nil {
		t.Error("Expected upload error to propagate")
	}
}
