package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefocusScene creates a row of spheres receding from the camera with a
// thin-lens camera focused on the middle one
func NewDefocusScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := applyOverrides(renderer.CameraConfig{
		Center:        core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		DefocusAngle:  10,
		FocusDistance: 3.4,
	}, cameraOverrides)

	s := newScene("defocus", cameraConfig, renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))

	// Spheres march away from the camera so only the middle one is sharp
	colors := []core.Vec3{
		core.NewVec3(0.7, 0.2, 0.2),
		core.NewVec3(0.1, 0.2, 0.5),
		core.NewVec3(0.2, 0.6, 0.3),
	}
	for i, albedo := range colors {
		z := 0.5 - 1.5*float64(i)
		s.AddSphere(core.NewVec3(float64(i)-1, 0, z-1), 0.5, material.NewLambertian(albedo))
	}
	s.AddSphere(core.NewVec3(1.5, 0, -3.5), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1))

	return s
}
