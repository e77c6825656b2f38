package renderer

import (
	"image"
	"image/color"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// intensity is the range quantized channels are clamped to before scaling by 256
var intensity = core.NewInterval(0.000, 0.999)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width            int           // Image width in pixels
	Height           int           // Image height in pixels
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	SamplesPerPixel  int           // Samples taken for every pixel
	MaxDepth         int           // Bounce budget for each camera ray
	AverageLuminance float64       // Mean Rec. 709 luminance of the quantized image
	Duration         time.Duration // Wall-clock time spent rendering
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// RGBA quantizes the averaged pixel color
func (ps *PixelStats) RGBA() color.RGBA {
	return ToRGB(ps.ColorAccum, ps.SampleCount)
}

// ToRGB converts an accumulated radiance sum into an 8-bit color.
// The sum is averaged over samples, gamma corrected with a square root,
// clamped to [0, 0.999] and scaled by 256.
func ToRGB(accum core.Vec3, samples int) color.RGBA {
	if samples <= 0 {
		return color.RGBA{A: 255}
	}
	c := accum.Multiply(1.0 / float64(samples)).Sqrt()
	return color.RGBA{
		R: uint8(256 * intensity.Clamp(c.X)),
		G: uint8(256 * intensity.Clamp(c.Y)),
		B: uint8(256 * intensity.Clamp(c.Z)),
		A: 255,
	}
}

// CalculateAverageLuminance computes the average Rec. 709 luminance of an image
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total += luminance(img.RGBAAt(x, y))
		}
	}
	return total / float64(pixels)
}

func luminance(c color.RGBA) float64 {
	return core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Divide(255).Luminance()
}
