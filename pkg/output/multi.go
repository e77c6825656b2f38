package output

import (
	"image/color"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// MultiSink duplicates every call to each of its sinks, stopping at the first error
type MultiSink struct {
	sinks []renderer.PixelSink
}

// NewMultiSink fans out to sinks in order
func NewMultiSink(sinks ...renderer.PixelSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Add appends another sink
func (m *MultiSink) Add(sink renderer.PixelSink) {
	m.sinks = append(m.sinks, sink)
}

func (m *MultiSink) Begin(width, height int) error {
	for _, s := range m.sinks {
		if err := s.Begin(width, height); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) WritePixel(c color.RGBA) error {
	for _, s := range m.sinks {
		if err := s.WritePixel(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) End() error {
	for _, s := range m.sinks {
		if err := s.End(); err != nil {
			return err
		}
	}
	return nil
}
