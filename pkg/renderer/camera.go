package renderer

import (
	"errors"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrDegenerateCamera is returned when the view direction or the up vector
// cannot produce an orthonormal camera basis.
var ErrDegenerateCamera = errors.New("degenerate camera configuration")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height ratio
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Variation angle of rays through each pixel, in degrees (0 = pinhole)
	FocusDistance float64   // Distance to the plane of perfect focus (0 = distance to LookAt)
}

// DefaultCameraConfig returns a small square camera looking down +Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, -1),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         100,
		AspectRatio:   1.0,
		VFov:          90,
		DefocusAngle:  0,
		FocusDistance: 10,
	}
}

// Camera generates rays for rendering.
// Derived fields are only valid after Initialize has succeeded.
type Camera struct {
	config CameraConfig

	initialized   bool
	imageHeight   int
	center        core.Vec3
	pixel00       core.Vec3 // Center of the upper left pixel
	pixelDeltaU   core.Vec3 // Offset to the pixel on the right
	pixelDeltaV   core.Vec3 // Offset to the pixel below
	u, v, w       core.Vec3 // Camera frame basis vectors
	defocusDiskU  core.Vec3 // Defocus disk horizontal radius
	defocusDiskV  core.Vec3 // Defocus disk vertical radius
	focusDistance float64
}

// NewCamera creates a camera from the given configuration.
// Call Initialize before generating rays.
func NewCamera(config CameraConfig) *Camera {
	return &Camera{config: config}
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// SetConfig replaces the configuration and invalidates derived state
func (c *Camera) SetConfig(config CameraConfig) {
	c.config = config
	c.initialized = false
}

// Initialized reports whether derived state matches the current configuration
func (c *Camera) Initialized() bool {
	return c.initialized
}

// Initialize computes the viewport and basis from the configuration.
// It may be called any number of times; each call recomputes everything.
func (c *Camera) Initialize() error {
	c.initialized = false
	cfg := c.config

	imageHeight := int(float64(cfg.Width) / cfg.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	viewDir := cfg.Center.Subtract(cfg.LookAt)
	if viewDir.NearZero() {
		return ErrDegenerateCamera
	}
	w := viewDir.Normalize()
	side := cfg.Up.Cross(w)
	if side.NearZero() {
		return ErrDegenerateCamera
	}
	u := side.Normalize()
	v := w.Cross(u)

	focusDistance := cfg.FocusDistance
	if focusDistance <= 0 {
		focusDistance = viewDir.Length()
	}

	// Determine viewport dimensions
	theta := core.DegreesToRadians(cfg.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := viewportHeight * (float64(cfg.Width) / float64(imageHeight))

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(cfg.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := cfg.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))

	defocusRadius := focusDistance * math.Tan(core.DegreesToRadians(cfg.DefocusAngle/2))

	c.imageHeight = imageHeight
	c.center = cfg.Center
	c.u, c.v, c.w = u, v, w
	c.pixelDeltaU = pixelDeltaU
	c.pixelDeltaV = pixelDeltaV
	c.pixel00 = viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))
	c.defocusDiskU = u.Multiply(defocusRadius)
	c.defocusDiskV = v.Multiply(defocusRadius)
	c.focusDistance = focusDistance
	c.initialized = true
	return nil
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.Width
}

// ImageHeight returns the derived image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Basis returns the camera frame (u right, v up, w backwards)
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// PixelCenter returns the world-space center of pixel (i, j), row j counted from the top
func (c *Camera) PixelCenter(i, j int) core.Vec3 {
	return c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// GetRay generates a jittered ray through pixel (i, j), row j counted from the top
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	pixelSample := c.PixelCenter(i, j).Add(c.pixelSampleSquare(sampler))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// pixelSampleSquare returns a random offset within the pixel footprint
func (c *Camera) pixelSampleSquare(sampler core.Sampler) core.Vec3 {
	s := sampler.Get2D()
	px := -0.5 + s.X
	py := -0.5 + s.Y
	return c.pixelDeltaU.Multiply(px).Add(c.pixelDeltaV.Multiply(py))
}

// defocusDiskSample returns a random point on the lens
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.AspectRatio > 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	if override.DefocusAngle > 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance > 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}
