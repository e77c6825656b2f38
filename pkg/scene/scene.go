package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.ShapeList // Objects in the scene
	Background     lights.Background   // Radiance for rays that escape
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// newScene creates an empty scene under the sky gradient
func newScene(name string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		World:          geometry.NewShapeList(),
		Background:     lights.NewSkyBackground(),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}

// AddSphere adds a sphere to the scene. A negative radius flips its normals.
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.World.Add(sphere)
	return sphere
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// NewRaytracer builds a raytracer over this scene's current configuration.
// Changes made to the scene afterwards are not seen by the raytracer.
func (s *Scene) NewRaytracer() *renderer.Raytracer {
	rt := renderer.NewRaytracer(s.World, renderer.NewCamera(s.CameraConfig), s.Background)
	rt.SetSamplingConfig(s.SamplingConfig)
	return rt
}

// QuickSampling returns a cheap configuration for previews and tests
func QuickSampling() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		SamplesPerPixel: 4,
		MaxDepth:        8,
	}
}

// applyOverrides merges the first camera override, if any, into config
func applyOverrides(config renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(config, overrides[0])
	}
	return config
}
