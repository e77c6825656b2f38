package output

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
)

// PPMWriter streams pixels as a plain-text P3 image.
// Pixels must arrive in raster order, top row first.
type PPMWriter struct {
	w       *bufio.Writer
	width   int
	height  int
	written int
}

// NewPPMWriter wraps w. Nothing is written until Begin.
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// Begin writes the P3 header
func (p *PPMWriter) Begin(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	p.width, p.height, p.written = width, height, 0
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WritePixel writes one "R G B" line
func (p *PPMWriter) WritePixel(c color.RGBA) error {
	if p.written >= p.width*p.height {
		return fmt.Errorf("%w: more than %d pixels", ErrPixelCount, p.width*p.height)
	}
	p.written++
	_, err := fmt.Fprintf(p.w, "%d %d %d\n", c.R, c.G, c.B)
	return err
}

// End flushes buffered output. It fails if the image is incomplete.
func (p *PPMWriter) End() error {
	if err := p.w.Flush(); err != nil {
		return err
	}
	if p.written != p.width*p.height {
		return fmt.Errorf("%w: wrote %d of %d pixels", ErrPixelCount, p.written, p.width*p.height)
	}
	return nil
}
