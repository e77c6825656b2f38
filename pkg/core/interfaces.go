package core

import "github.com/go-gl/mathgl/mgl64"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return mgl64.DegToRad(degrees)
}
