package raster

import (
	"errors"
	"fmt"
)

// Error kinds returned by raster operations. Wrapped errors carry the
// detail; test with errors.Is.
var (
	// ErrInvalidDimensions is returned when a width or height is negative.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrDimensionMismatch is returned when two operands must share a size
	// but don't.
	ErrDimensionMismatch = errors.New("raster: dimension mismatch")

	// ErrMipNotReady is returned when a pyramid level is requested from an
	// image that does not maintain one.
	ErrMipNotReady = errors.New("raster: mip-map not ready")

	// ErrIO is returned for missing, unreadable or truncated files.
	ErrIO = errors.New("raster: i/o error")

	// ErrUnsupportedFormat is returned when a file type or pixel type
	// cannot be encoded / decoded.
	ErrUnsupportedFormat = errors.New("raster: unsupported format")

	// ErrAliased is returned when a destination image is also a source.
	ErrAliased = errors.New("raster: destination aliases source")

	// ErrNoImage is returned by a BufferPair without a primary image.
	ErrNoImage = errors.New("raster: no image")
)

// mismatch wraps ErrDimensionMismatch with the offending sizes.
func mismatch(op string, want, got Vec2i) error {
	return fmt.Errorf("%w: %s wants %dx%d, got %dx%d", ErrDimensionMismatch, op, want.X, want.Y, got.X, got.Y)
}
