package wgpu

import (
	"time"

	"github.com/gogpu/gputypes"
)

// Defaults applied by every constructor.
const (
	DefaultSampleCount = 4
	DefaultWaitTimeout = 5 * time.Second
)

// DefaultClearColor is the background behind the cubes.
var DefaultClearColor = gputypes.Color{R: 0.65, G: 0.65, B: 0.65, A: 1}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	samples     uint32
	clearColor  gputypes.Color
	waitTimeout time.Duration
	format      gputypes.TextureFormat
}

func defaultOptions() options {
	return options{
		samples:     DefaultSampleCount,
		clearColor:  DefaultClearColor,
		waitTimeout: DefaultWaitTimeout,
		format:      gputypes.TextureFormatBGRA8Unorm,
	}
}

// WithSampleCount sets the MSAA sample count, 1 or 4.
func WithSampleCount(n uint32) Option {
	return func(o *options) {
		o.samples = n
	}
}

// WithClearColor sets the color the target is cleared to every frame.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithWaitTimeout sets how long a frame may stay pending on the GPU before
// a warning is logged, and how long Snapshot waits for its copy.
func WithWaitTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.waitTimeout = d
		}
	}
}

// WithFormat sets the color format of offscreen targets. Surface targets
// use the provider's surface format.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}
