package scene

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestDefaultScene_Layout(t *testing.T) {
	s := NewDefaultScene()

	if s.GetPrimitiveCount() != 5 {
		t.Fatalf("Expected 5 spheres, got %d", s.GetPrimitiveCount())
	}
	cfg := s.CameraConfig
	if cfg.Width != 400 || cfg.VFov != 20 || math.Abs(cfg.AspectRatio-16.0/9.0) > 1e-12 {
		t.Errorf("Unexpected camera config %+v", cfg)
	}
	if s.SamplingConfig.SamplesPerPixel != 100 || s.SamplingConfig.MaxDepth != 50 {
		t.Errorf("Unexpected sampling config %+v", s.SamplingConfig)
	}

	// The hollow interior uses a negative radius
	inner, ok := s.World.Shapes[3].(*geometry.Sphere)
	if !ok || inner.Radius >= 0 {
		t.Errorf("Expected negative-radius inner glass sphere, got %+v", s.World.Shapes[3])
	}
	if _, ok := inner.Material.(*material.Dielectric); !ok {
		t.Errorf("Expected dielectric inner sphere, got %T", inner.Material)
	}
}

func TestGroundScene_LooksDown(t *testing.T) {
	s := NewGroundScene()
	view := s.CameraConfig.LookAt.Subtract(s.CameraConfig.Center).Normalize()
	if view.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("Expected camera to look straight down, got %v", view)
	}

	// Every primary ray hits the ground
	rt := s.NewRaytracer()
	img, _, err := rt.RenderImage()
	if err != nil {
		t.Fatalf("RenderImage failed: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Errorf("Expected 100x100 image, got %v", img.Bounds())
	}
}

func TestSceneAddSphere(t *testing.T) {
	s := newScene("test", NewGroundScene().CameraConfig, QuickSampling())
	s.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(1, 1, 1)))
	s.AddSphere(core.NewVec3(0, 0, 0), -0.5, material.NewDielectric(1.5))
	if s.GetPrimitiveCount() != 2 {
		t.Errorf("Expected 2 primitives, got %d", s.GetPrimitiveCount())
	}
}

func TestSceneNewRaytracer_UsesSamplingConfig(t *testing.T) {
	s := NewDefaultScene()
	s.SamplingConfig = QuickSampling()
	rt := s.NewRaytracer()
	if rt.SamplingConfig() != QuickSampling() {
		t.Errorf("Expected quick sampling, got %+v", rt.SamplingConfig())
	}
}

func TestOklchToRGB(t *testing.T) {
	// Zero chroma is a neutral gray
	gray := oklchToRGB(0.65, 0, 120)
	if math.Abs(gray.X-gray.Y) > 1e-9 || math.Abs(gray.Y-gray.Z) > 1e-9 {
		t.Errorf("Expected neutral gray, got %v", gray)
	}

	for h := 0.0; h < 360; h += 30 {
		c := oklchToRGB(0.65, 0.25, h)
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("Hue %f out of gamut after clamp: %v", h, c)
		}
	}
}
