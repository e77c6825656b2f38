package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PPMFile writes a PPM image to disk, optionally compressed
type PPMFile struct {
	path    string
	file    *os.File
	encoder io.WriteCloser
	closed  bool
	*PPMWriter
}

// CreatePPMFile creates the file at path plus the compression extension,
// making parent directories as needed.
func CreatePPMFile(path string, c Compression) (*PPMFile, error) {
	path += c.Extension()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	encoder, err := NewCompressedWriter(file, c)
	if err != nil {
		file.Close()
		return nil, err
	}

	return &PPMFile{
		path:      path,
		file:      file,
		encoder:   encoder,
		PPMWriter: NewPPMWriter(encoder),
	}, nil
}

// Path returns the final file name, including any compression extension
func (f *PPMFile) Path() string {
	return f.path
}

// End flushes the PPM stream, the encoder and the file, in that order
func (f *PPMFile) End() error {
	if err := f.PPMWriter.End(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close releases the encoder and file without checking completeness.
// Calling it more than once is a no-op.
func (f *PPMFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	encErr := f.encoder.Close()
	fileErr := f.file.Close()
	if encErr != nil {
		return fmt.Errorf("close encoder: %w", encErr)
	}
	return fileErr
}

// Abort closes the file and removes it, discarding a partial image
func (f *PPMFile) Abort() error {
	f.Close()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove partial output: %w", err)
	}
	return nil
}
