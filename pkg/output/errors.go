package output

import "errors"

var (
	// ErrUnknownCompression is returned for a compression name that is not supported
	ErrUnknownCompression = errors.New("unknown compression")
	// ErrPixelCount is returned when a sink receives the wrong number of pixels
	ErrPixelCount = errors.New("pixel count mismatch")
)
