package output

import (
	"fmt"
	"image"
	"image/color"
)

// ImageSink collects pixels into an in-memory RGBA image
type ImageSink struct {
	img  *image.RGBA
	next int
}

// NewImageSink creates an empty image sink
func NewImageSink() *ImageSink {
	return &ImageSink{}
}

func (s *ImageSink) Begin(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.next = 0
	return nil
}

func (s *ImageSink) WritePixel(c color.RGBA) error {
	b := s.img.Bounds()
	if s.next >= b.Dx()*b.Dy() {
		return fmt.Errorf("%w: more than %d pixels", ErrPixelCount, b.Dx()*b.Dy())
	}
	s.img.SetRGBA(s.next%b.Dx(), s.next/b.Dx(), c)
	s.next++
	return nil
}

func (s *ImageSink) End() error {
	b := s.img.Bounds()
	if s.next != b.Dx()*b.Dy() {
		return fmt.Errorf("%w: wrote %d of %d pixels", ErrPixelCount, s.next, b.Dx()*b.Dy())
	}
	return nil
}

// Image returns the collected image, or nil before Begin
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}
