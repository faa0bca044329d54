package plasma

import (
	"log/slog"

	"github.com/gogpu/plasma/uniforms"
)

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r, err := plasma.New(gpu, cfg,
//	    plasma.WithLogger(slog.Default()),
//	    plasma.WithLayout(uniforms.Aligned(256)))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	logger *slog.Logger
	layout *uniforms.Layout
}

// WithLogger sets the logger for this renderer and its GPU. Without it the
// package logger from Logger is used.
func WithLogger(l *slog.Logger) RendererOption {
	return func(o *rendererOptions) {
		o.logger = l
	}
}

// WithLayout overrides the uniform layout derived from
// Config.UniformAlignment and the GPU's alignment requirement.
// The layout must still satisfy the GPU.
func WithLayout(l uniforms.Layout) RendererOption {
	return func(o *rendererOptions) {
		o.layout = &l
	}
}
