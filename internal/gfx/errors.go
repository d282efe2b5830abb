package gfx

import "errors"

// Sentinel errors for the gfx package.
var (
	// ErrEmptyShader is returned when shader source code is empty.
	ErrEmptyShader = errors.New("shader source is empty")

	// ErrEmptyBuffer is returned when buffer contents are empty.
	ErrEmptyBuffer = errors.New("buffer contents are empty")

	// ErrInvalidUsage is returned when a buffer is uploaded with no
	// usage flags.
	ErrInvalidUsage = errors.New("buffer usage flags are empty")

	// ErrZeroExtent is returned when a texture dimension is zero.
	ErrZeroExtent = errors.New("texture width and height must be non-zero")

	// ErrUnknownFormat is returned for a texture format the bridge does
	// not recognize.
	ErrUnknownFormat = errors.New("unknown texture format")

	// ErrTexelSize is returned when texel data does not match
	// width * height * bytes-per-texel.
	ErrTexelSize = errors.New("texel data size does not match dimensions")
)
