package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewGroundScene creates a single diffuse ground sphere seen from directly above
func NewGroundScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := applyOverrides(renderer.CameraConfig{
		Center:      core.NewVec3(0, 5, 0),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 0, -1), // world up is parallel to the view
		Width:       100,
		AspectRatio: 1.0,
		VFov:        90,
	}, cameraOverrides)

	s := newScene("ground", cameraConfig, renderer.SamplingConfig{
		SamplesPerPixel: 1,
		MaxDepth:        10,
	})
	s.AddSphere(core.NewVec3(0, -100, 0), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s
}
