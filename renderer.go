package plasma

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/plasma/anim"
	"github.com/gogpu/plasma/ring"
	"github.com/gogpu/plasma/scene"
	"github.com/gogpu/plasma/uniforms"
)

// Renderer drives the two plasma cubes on a GPU.
//
// Update, Reshape, Render and Close must be called from one goroutine.
// Stats may be called from any goroutine.
type Renderer struct {
	gpu    GPU
	cfg    Config
	layout uniforms.Layout
	log    *slog.Logger

	ring   *ring.Ring
	scene  *scene.State
	plasma [uniforms.ObjectCount]anim.Plasma
	frame  uniforms.Frame
	draws  []DrawCall
	buf    []byte

	closed   bool
	rendered atomic.Uint64
	skipped  atomic.Uint64
}

// Stats is a snapshot of a Renderer's counters.
type Stats struct {
	// Frames is the number of frames submitted to the GPU.
	Frames uint64
	// Skipped is the number of frames dropped for lack of a render target.
	Skipped uint64
	// InFlight is the number of submitted frames not yet completed.
	InFlight int
	// Cursor is the ring slot the next frame will use.
	Cursor int
}

// New validates cfg, configures gpu and allocates the uniform ring.
//
// A Configure or ring allocation failure is returned. Ring buffers allocated
// before the failure are released; resources created by Configure stay owned
// by gpu and are released by its Close.
func New(gpu GPU, cfg Config, opts ...RendererOption) (*Renderer, error) {
	if gpu == nil {
		return nil, ErrNilGPU
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o rendererOptions
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	propagateLogger(gpu, log)

	layout := layoutFor(gpu, cfg.UniformAlignment)
	if o.layout != nil {
		layout = *o.layout
	}
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("plasma: %w", err)
	}

	if err := gpu.Configure(layout); err != nil {
		return nil, fmt.Errorf("plasma: configure gpu: %w", err)
	}

	rg, err := ring.New(gpu, cfg.InFlight, layout.SlotSize())
	if err != nil {
		return nil, fmt.Errorf("plasma: %w", err)
	}
	log.Info("plasma: uniform ring allocated",
		"slots", cfg.InFlight,
		"slot_size", layout.SlotSize(),
		"vertex_stride", layout.VertexStride,
		"fragment_stride", layout.FragmentStride)

	r := &Renderer{
		gpu:    gpu,
		cfg:    cfg,
		layout: layout,
		log:    log,
		ring:   rg,
		scene:  scene.New(cfg.Scene),
		frame:  uniforms.NewFrame(),
		draws:  DrawCalls(layout),
		buf:    make([]byte, layout.SlotSize()),
	}
	for i, obj := range cfg.Objects {
		r.plasma[i] = obj.Plasma
		r.frame.Fragment[i].Kind = obj.Kind
	}
	return r, nil
}

// Update advances the animation by one frame: both plasma parameter pairs
// step and both model-view matrices are recomputed.
func (r *Renderer) Update() {
	mv := r.scene.Update()
	for i := range r.frame.Vertex {
		r.frame.Vertex[i].ModelView = mv[i]
		p := r.plasma[i].Update()
		r.frame.Fragment[i].Time = p.X
		r.frame.Fragment[i].Scale = p.Y
	}
}

// Reshape informs the renderer of a new drawable size and orientation. It
// reports whether the projection was recomputed.
func (r *Renderer) Reshape(width, height int, orientation scene.Orientation) bool {
	if !r.scene.Reshape(width, height, orientation) {
		return false
	}
	r.frame.SetProjection(r.scene.Projection())
	r.log.Debug("plasma: projection updated",
		"width", width,
		"height", height,
		"orientation", orientation.String(),
		"aspect", r.scene.Aspect())
	return true
}

// Render streams the current frame's uniforms into the next ring slot and
// submits both draws.
//
// Render blocks while Config.InFlight frames are pending on the GPU. If
// no render target is available the frame is skipped and Render returns
// nil. If ctx is done while waiting, its error is returned.
func (r *Renderer) Render(ctx context.Context) error {
	if r.closed {
		return ErrClosed
	}

	slot, err := r.ring.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("plasma: acquire slot: %w", err)
	}

	if err := r.submit(slot); err != nil {
		// Nothing reads the slot; give the permit back.
		slot.Complete()
		if errors.Is(err, ErrTargetUnavailable) {
			r.skipped.Add(1)
			r.log.Debug("plasma: frame skipped", "slot", slot.Index)
			return nil
		}
		return err
	}

	r.rendered.Add(1)
	return nil
}

func (r *Renderer) submit(slot *ring.Slot) error {
	if err := r.layout.Encode(r.buf, &r.frame); err != nil {
		return fmt.Errorf("plasma: encode uniforms: %w", err)
	}
	if err := r.ring.Write(slot, 0, r.buf); err != nil {
		return fmt.Errorf("plasma: write slot %d: %w", slot.Index, err)
	}

	target, err := r.gpu.AcquireTarget()
	if err != nil {
		if errors.Is(err, ErrTargetUnavailable) {
			return err
		}
		return fmt.Errorf("plasma: acquire target: %w", err)
	}

	batch, err := r.gpu.Encode(target, slot.Buffer, r.draws)
	if err != nil {
		return fmt.Errorf("plasma: encode frame: %w", err)
	}
	r.ring.Advance()

	if err := r.gpu.Submit(batch, slot.Complete); err != nil {
		return fmt.Errorf("plasma: submit frame: %w", err)
	}
	r.gpu.Present(target)
	r.log.Debug("plasma: frame submitted", "slot", slot.Index, "in_flight", r.ring.InFlight())
	return nil
}

// Close waits for every submitted frame to complete and releases the ring
// buffers. If ctx is done first the renderer stays usable and the context
// error is returned. Close after a successful Close is a no-op.
func (r *Renderer) Close(ctx context.Context) error {
	if r.closed {
		return nil
	}
	if err := r.ring.Drain(ctx); err != nil {
		return fmt.Errorf("plasma: drain ring: %w", err)
	}
	r.closed = true
	r.log.Info("plasma: renderer closed",
		"frames", r.rendered.Load(),
		"skipped", r.skipped.Load())
	return nil
}

// Stats returns the renderer's counters.
func (r *Renderer) Stats() Stats {
	return Stats{
		Frames:   r.rendered.Load(),
		Skipped:  r.skipped.Load(),
		InFlight: r.ring.InFlight(),
		Cursor:   r.ring.Cursor(),
	}
}

// Layout returns the uniform layout in use.
func (r *Renderer) Layout() uniforms.Layout { return r.layout }

// Frame returns a copy of the uniforms the next Render will stream.
func (r *Renderer) Frame() uniforms.Frame { return r.frame }

// Scene returns the renderer's transform state.
func (r *Renderer) Scene() *scene.State { return r.scene }
