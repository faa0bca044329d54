package wgpu

import "errors"

// Errors returned by the backend.
var (
	ErrNoBackend      = errors.New("wgpu: backend not available")
	ErrNoAdapter      = errors.New("wgpu: no GPU adapters found")
	ErrNotHALProvider = errors.New("wgpu: provider does not expose HAL types")
	ErrNotConfigured  = errors.New("wgpu: renderer not configured")
	ErrClosed         = errors.New("wgpu: renderer closed")
	ErrMisaligned     = errors.New("wgpu: uniform stride not aligned")
	ErrInvalidSize    = errors.New("wgpu: invalid target size")
	ErrForeignBuffer  = errors.New("wgpu: buffer not allocated by this renderer")
	ErrForeignBatch   = errors.New("wgpu: batch not encoded by this renderer")
	ErrForeignTarget  = errors.New("wgpu: target not acquired from this renderer")
	ErrOutOfBounds    = errors.New("wgpu: write outside buffer")
	ErrNoOffscreen    = errors.New("wgpu: renderer has no offscreen target")
	ErrSampleCount    = errors.New("wgpu: sample count must be 1 or 4")
	ErrGPUTimeout     = errors.New("wgpu: timed out waiting for GPU")
)
