package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewHollowGlassScene creates nested glass shells in front of a checker of
// colored diffuse spheres, showing refraction, reflection and total internal reflection
func NewHollowGlassScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := applyOverrides(renderer.CameraConfig{
		Center:        core.NewVec3(0, 0.4, 1.5),
		LookAt:        core.NewVec3(0, 0.2, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          50,
		FocusDistance: 0, // focus on the look-at point
	}, cameraOverrides)

	s := newScene("hollow-glass", cameraConfig, renderer.SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	})

	glass := material.NewDielectric(1.5)
	water := material.NewDielectric(1.33)

	s.AddSphere(core.NewVec3(0, -1000.5, -1), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	// Outer shell with a negative-radius inner wall, then a water droplet inside
	s.AddSphere(core.NewVec3(0, 0.2, -1), 0.7, glass)
	s.AddSphere(core.NewVec3(0, 0.2, -1), -0.65, glass)
	s.AddSphere(core.NewVec3(0, 0.2, -1), 0.3, water)

	for i := -3; i <= 3; i++ {
		albedo := core.NewVec3(0.8, 0.3, 0.2)
		if i%2 == 0 {
			albedo = core.NewVec3(0.2, 0.4, 0.8)
		}
		s.AddSphere(core.NewVec3(float64(i)*0.6, -0.25, -3), 0.25, material.NewLambertian(albedo))
	}

	return s
}
