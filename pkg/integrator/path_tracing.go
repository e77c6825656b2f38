package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
)

// shadowAcneEpsilon is the smallest t accepted for a hit, so a scattered ray
// does not re-intersect the surface it just left.
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	maxDepth   int
	background lights.Background
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A nil background defaults to the white to sky-blue gradient.
func NewPathTracingIntegrator(maxDepth int, background lights.Background) *PathTracingIntegrator {
	if background == nil {
		background = lights.NewSkyBackground()
	}
	return &PathTracingIntegrator{
		maxDepth:   maxDepth,
		background: background,
	}
}

// RayColor computes the color for a single ray using the full bounce budget
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	return pt.RayColorDepth(ray, world, sampler, pt.maxDepth)
}

// RayColorDepth computes the color for a ray with an explicit number of remaining bounces.
// Paths that run out of bounces contribute black.
func (pt *PathTracingIntegrator) RayColorDepth(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return pt.background.Emit(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColorDepth(scatter.Scattered, world, sampler, depth-1))
}
