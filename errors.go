package plasma

import "errors"

// Sentinel errors for the frame orchestrator.
var (
	// ErrTargetUnavailable is returned by GPU.AcquireTarget when no render
	// target exists for this frame. The frame is skipped, not failed.
	ErrTargetUnavailable = errors.New("plasma: render target unavailable")

	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("plasma: invalid config")

	// ErrNilGPU is returned by New when no GPU is given.
	ErrNilGPU = errors.New("plasma: nil GPU")

	// ErrClosed is returned by Render after Close.
	ErrClosed = errors.New("plasma: renderer closed")

	// ErrUnknownConfigFormat is returned by LoadConfig for unsupported
	// file extensions.
	ErrUnknownConfigFormat = errors.New("plasma: unknown config format")
)
