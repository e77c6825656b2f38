package lights

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Background supplies the radiance seen along rays that escape the scene
type Background interface {
	Emit(rayIn core.Ray) core.Vec3
}

// GradientBackground blends vertically between a bottom and a top color
type GradientBackground struct {
	TopColor    core.Vec3 // Color looking straight up
	BottomColor core.Vec3 // Color looking straight down
}

// NewGradientBackground creates a new gradient background
func NewGradientBackground(topColor, bottomColor core.Vec3) *GradientBackground {
	return &GradientBackground{TopColor: topColor, BottomColor: bottomColor}
}

// NewSkyBackground returns the default white to sky-blue gradient
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(
		core.NewVec3(0.5, 0.7, 1.0), // topColor (blue sky)
		core.NewVec3(1.0, 1.0, 1.0), // bottomColor (white horizon)
	)
}

// Emit returns the gradient color for the ray direction
func (g *GradientBackground) Emit(rayIn core.Ray) core.Vec3 {
	direction := rayIn.Direction.Normalize()
	t := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return g.BottomColor.Multiply(1.0 - t).Add(g.TopColor.Multiply(t))
}

// UniformBackground emits the same color in every direction
type UniformBackground struct {
	Emission core.Vec3
}

// NewUniformBackground creates a new uniform background
func NewUniformBackground(emission core.Vec3) *UniformBackground {
	return &UniformBackground{Emission: emission}
}

// Emit returns the constant emission
func (u *UniformBackground) Emit(rayIn core.Ray) core.Vec3 {
	return u.Emission
}
