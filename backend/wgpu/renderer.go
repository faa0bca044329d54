package wgpu

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/plasma"
	"github.com/gogpu/plasma/internal/cube"
	"github.com/gogpu/plasma/ring"
	"github.com/gogpu/plasma/uniforms"
)

// UniformAlignment is the binding offset alignment the renderer requires.
// It matches the WebGPU default minUniformBufferOffsetAlignment.
const UniformAlignment = 256

var _ plasma.GPU = (*Renderer)(nil)

// Renderer implements plasma.GPU on a HAL device.
//
// AcquireTarget, Encode, Submit and Present are called by the plasma
// renderer's goroutine. Snapshot, Resize, SetSurfaceView and Stats may be
// called from any goroutine.
type Renderer struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue
	opened *openedDevice // nil when the device belongs to the caller
	info   GPUInfo
	opts   options

	offscreen     bool
	width, height uint32
	surfaceView   hal.TextureView
	textures      textureSet

	pipeline   *plasmaPipeline
	layout     uniforms.Layout
	vertexBuf  hal.Buffer
	buffers    map[*uniformBuffer]struct{}
	bindGroups map[*uniformBuffer][]cachedBindGroup

	pending   sync.WaitGroup
	submitted atomic.Uint64
	completed atomic.Uint64
	presented atomic.Uint64
	closed    bool
}

// Stats counts the renderer's submissions.
type Stats struct {
	Submitted uint64
	Completed uint64
	Presented uint64
}

type cachedBindGroup struct {
	vertexOffset   uint64
	fragmentOffset uint64
	group          hal.BindGroup
}

// commandBatch is the plasma.CommandBatch produced by Encode.
type commandBatch struct {
	owner *Renderer
	cmd   hal.CommandBuffer
}

// New returns a Renderer drawing offscreen on a device the caller owns.
// Close does not destroy the device.
func New(device hal.Device, queue hal.Queue, width, height int, opts ...Option) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("wgpu: nil device or queue")
	}
	return newRenderer(device, queue, nil, GPUInfo{Backend: "external"}, width, height, true, opts)
}

// NewFromProvider returns a Renderer that shares the host's device and
// renders into views passed to SetSurfaceView, using the host's surface
// format. Close does not destroy the device.
func NewFromProvider(provider gpucontext.DeviceProvider, width, height int, opts ...Option) (*Renderer, error) {
	if provider == nil {
		return nil, ErrNotHALProvider
	}
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		opts = append(opts, WithFormat(f))
	}
	return newRenderer(device, queue, nil, GPUInfo{Backend: "external"}, width, height, false, opts)
}

// NewStandalone opens a Vulkan device and returns a Renderer drawing
// offscreen. Close destroys the device.
func NewStandalone(width, height int, opts ...Option) (*Renderer, error) {
	dev, err := openVulkan()
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(dev.device, dev.queue, dev, dev.info, width, height, true, opts)
	if err != nil {
		dev.destroy()
		return nil, err
	}
	return r, nil
}

// NewNoop opens the noop HAL device and returns a Renderer drawing
// offscreen. Close destroys the device.
func NewNoop(width, height int, opts ...Option) (*Renderer, error) {
	dev, err := openNoop()
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(dev.device, dev.queue, dev, dev.info, width, height, true, opts)
	if err != nil {
		dev.destroy()
		return nil, err
	}
	return r, nil
}

func newRenderer(
	device hal.Device,
	queue hal.Queue,
	opened *openedDevice,
	info GPUInfo,
	width, height int,
	offscreen bool,
	opts []Option,
) (*Renderer, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.samples != 1 && o.samples != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrSampleCount, o.samples)
	}

	r := &Renderer{
		device:     device,
		queue:      queue,
		opened:     opened,
		info:       info,
		opts:       o,
		offscreen:  offscreen,
		width:      uint32(width),
		height:     uint32(height),
		buffers:    make(map[*uniformBuffer]struct{}),
		bindGroups: make(map[*uniformBuffer][]cachedBindGroup),
	}
	r.textures.samples = o.samples
	r.textures.format = o.format
	slogger().Info("wgpu: renderer created",
		"gpu", info.String(),
		"offscreen", offscreen,
		"samples", o.samples)
	return r, nil
}

// Info describes the device.
func (r *Renderer) Info() GPUInfo { return r.info }

// SetLogger sets the backend logger. plasma.New calls it with the
// renderer's logger.
func (r *Renderer) SetLogger(l *slog.Logger) { setLogger(l) }

// UniformAlignment reports the binding offset alignment to plasma.New.
func (r *Renderer) UniformAlignment() uint64 { return UniformAlignment }

// Configure creates the plasma pipeline and the cube vertex buffer. Every
// stride of layout must be a multiple of UniformAlignment.
func (r *Renderer) Configure(layout uniforms.Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	if layout.VertexStride%UniformAlignment != 0 || layout.FragmentStride%UniformAlignment != 0 {
		return fmt.Errorf("%w: vertex %d fragment %d, need multiples of %d",
			ErrMisaligned, layout.VertexStride, layout.FragmentStride, UniformAlignment)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	// Frames in flight still reference the pipeline, vertex buffer and
	// bind groups. Submit needs r.mu, so no new frame can start meanwhile.
	r.pending.Wait()
	r.destroyFrameResources()

	p, err := newPlasmaPipeline(r.device, r.textures.format, r.opts.samples)
	if err != nil {
		return err
	}

	data := cube.Bytes(cube.DefaultSize)
	vb, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "plasma_cube_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		p.destroy(r.device)
		return fmt.Errorf("create cube vertex buffer: %w", err)
	}
	if err := r.queue.WriteBuffer(vb, 0, data); err != nil {
		r.device.DestroyBuffer(vb)
		p.destroy(r.device)
		return fmt.Errorf("upload cube vertices: %w", err)
	}

	r.pipeline = p
	r.vertexBuf = vb
	r.layout = layout
	slogger().Info("wgpu: plasma pipeline created",
		"format", fmt.Sprint(r.textures.format),
		"samples", r.opts.samples,
		"slot_size", layout.SlotSize())
	return nil
}

// Resize sets the size of offscreen targets. A zero size makes targets
// unavailable until the next Resize. The textures are replaced by the next
// AcquireTarget.
func (r *Renderer) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	r.mu.Lock()
	r.width, r.height = uint32(width), uint32(height)
	r.mu.Unlock()
	return nil
}

// SetSurfaceView sets the view the next frames resolve into, with its
// size. A nil view makes targets unavailable. The view stays owned by the
// caller.
func (r *Renderer) SetSurfaceView(view hal.TextureView, width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	r.mu.Lock()
	r.surfaceView = view
	r.width, r.height = uint32(width), uint32(height)
	r.mu.Unlock()
	return nil
}

// AcquireTarget returns the target for the next frame. It wraps
// plasma.ErrTargetUnavailable when the size is zero or, for surface
// rendering, no view is set.
//
// After a size change AcquireTarget blocks until every submitted frame has
// completed, then replaces the textures.
func (r *Renderer) AcquireTarget() (plasma.Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if r.pipeline == nil {
		return nil, ErrNotConfigured
	}
	if r.width == 0 || r.height == 0 {
		return nil, fmt.Errorf("%w: size %dx%d", plasma.ErrTargetUnavailable, r.width, r.height)
	}
	if !r.offscreen && r.surfaceView == nil {
		return nil, fmt.Errorf("%w: no surface view", plasma.ErrTargetUnavailable)
	}

	if r.textures.allocated() && !r.textures.current(r.width, r.height, r.offscreen) {
		// The old textures stay attached to frames in flight until they
		// complete.
		r.pending.Wait()
	}
	if err := r.textures.ensure(r.device, r.width, r.height, r.offscreen); err != nil {
		return nil, err
	}
	out := r.surfaceView
	if r.offscreen {
		out = r.textures.outputView
	}
	view, resolve := r.textures.attachments(out)
	return &target{
		owner:   r,
		width:   r.width,
		height:  r.height,
		view:    view,
		resolve: resolve,
		depth:   r.textures.depthView,
		surface: !r.offscreen,
	}, nil
}

// Encode records one render pass drawing the cube once per draw call, each
// with the bind group for its offsets into buf.
func (r *Renderer) Encode(t plasma.Target, buf ring.Buffer, draws []plasma.DrawCall) (plasma.CommandBatch, error) {
	tg, ok := t.(*target)
	if !ok || tg.owner != r {
		return nil, ErrForeignTarget
	}
	ub, ok := buf.(*uniformBuffer)
	if !ok || ub.owner != r {
		return nil, ErrForeignBuffer
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if r.pipeline == nil {
		return nil, ErrNotConfigured
	}

	groups := make([]hal.BindGroup, len(draws))
	for i, d := range draws {
		bg, err := r.bindGroupFor(ub, d)
		if err != nil {
			return nil, err
		}
		groups[i] = bg
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "plasma_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("plasma_frame"); err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "plasma_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:          tg.view,
			ResolveTarget: tg.resolve,
			LoadOp:        gputypes.LoadOpClear,
			StoreOp:       gputypes.StoreOpStore,
			ClearValue:    r.opts.clearColor,
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              tg.depth,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})
	rp.SetPipeline(r.pipeline.pipeline)
	rp.SetVertexBuffer(0, r.vertexBuf, 0)
	for _, bg := range groups {
		rp.SetBindGroup(0, bg, nil)
		rp.Draw(cube.VertexCount, 1, 0, 0)
	}
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	return &commandBatch{owner: r, cmd: cmd}, nil
}

// bindGroupFor returns the cached bind group for d's offsets into ub,
// creating it on first use. The caller holds r.mu.
func (r *Renderer) bindGroupFor(ub *uniformBuffer, d plasma.DrawCall) (hal.BindGroup, error) {
	for _, c := range r.bindGroups[ub] {
		if c.vertexOffset == d.VertexOffset && c.fragmentOffset == d.FragmentOffset {
			return c.group, nil
		}
	}
	if d.VertexOffset%UniformAlignment != 0 || d.FragmentOffset%UniformAlignment != 0 {
		return nil, fmt.Errorf("%w: draw %d offsets %d, %d",
			ErrMisaligned, d.Object, d.VertexOffset, d.FragmentOffset)
	}
	if d.VertexOffset+uniforms.VertexSize > ub.size || d.FragmentOffset+uniforms.FragmentSize > ub.size {
		return nil, fmt.Errorf("%w: draw %d offsets %d, %d in %s",
			ErrOutOfBounds, d.Object, d.VertexOffset, d.FragmentOffset, ub.label)
	}
	if ub.buf == nil {
		return nil, fmt.Errorf("%w: %s released", ErrClosed, ub.label)
	}

	label := fmt.Sprintf("%s_bind%d", ub.label, d.Object)
	bg, err := r.pipeline.newBindGroup(r.device, ub.buf, label, d.VertexOffset, d.FragmentOffset)
	if err != nil {
		return nil, err
	}
	r.bindGroups[ub] = append(r.bindGroups[ub], cachedBindGroup{
		vertexOffset:   d.VertexOffset,
		fragmentOffset: d.FragmentOffset,
		group:          bg,
	})
	return bg, nil
}

// Submit queues the batch and returns. A background goroutine waits for
// the submission to complete, frees the command buffer and calls
// onComplete.
func (r *Renderer) Submit(batch plasma.CommandBatch, onComplete func()) error {
	b, ok := batch.(*commandBatch)
	if !ok || b.owner != r {
		return ErrForeignBatch
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	index, err := r.queue.Submit([]hal.CommandBuffer{b.cmd})
	if err != nil {
		r.device.FreeCommandBuffer(b.cmd)
		return fmt.Errorf("submit: %w", err)
	}

	seq := r.submitted.Add(1)
	r.pending.Add(1)
	go r.await(seq, index, b.cmd, onComplete)
	return nil
}

// Completion polling backs off from minPollInterval to maxPollInterval.
const (
	minPollInterval = 50 * time.Microsecond
	maxPollInterval = 2 * time.Millisecond
)

// waitSubmission polls the queue until submission index has completed. It
// reports false if timeout elapses first.
func (r *Renderer) waitSubmission(index uint64, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	delay := minPollInterval
	for r.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(delay)
		if delay < maxPollInterval {
			delay *= 2
		}
	}
	return true
}

// await blocks until submission index completes, warning each time the
// wait times out.
func (r *Renderer) await(seq, index uint64, cmd hal.CommandBuffer, onComplete func()) {
	defer r.pending.Done()
	start := time.Now()
	for !r.waitSubmission(index, r.opts.waitTimeout) {
		slogger().Warn("wgpu: frame still pending on GPU",
			"frame", seq,
			"submission", index,
			"waited", time.Since(start))
	}
	r.device.FreeCommandBuffer(cmd)
	r.completed.Add(1)
	if onComplete != nil {
		onComplete()
	}
}

// Present counts the frame. Offscreen frames are read with Snapshot and
// surface frames are presented by the host.
func (r *Renderer) Present(t plasma.Target) {
	tg, ok := t.(*target)
	if !ok || tg.owner != r {
		return
	}
	n := r.presented.Add(1)
	slogger().Debug("wgpu: frame presented", "frame", n, "surface", tg.surface)
}

// Snapshot waits for the GPU and returns the last offscreen frame.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	if !r.offscreen || r.textures.outputTex == nil {
		return nil, ErrNoOffscreen
	}
	w, h := r.textures.width, r.textures.height

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "plasma_snapshot_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("plasma_snapshot"); err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.textures.outputTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Copy rows must be 256-byte aligned.
	bytesPerRow := w * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "plasma_snapshot_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer func() {
		if staging != nil {
			r.device.DestroyBuffer(staging)
		}
	}()

	encoder.CopyTextureToBuffer(r.textures.outputTex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.textures.outputTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.textures.outputTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("end encoding: %w", err)
	}

	index, err := r.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		r.device.FreeCommandBuffer(cmd)
		return nil, fmt.Errorf("submit: %w", err)
	}
	if !r.waitSubmission(index, r.opts.waitTimeout) {
		// The copy may still run; leak the command buffer and staging
		// buffer rather than free them under the GPU.
		staging = nil
		return nil, fmt.Errorf("%w: snapshot submission %d", ErrGPUTimeout, index)
	}
	r.device.FreeCommandBuffer(cmd)

	mapping, err := r.device.MapBuffer(staging, 0, stagingSize)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	readback := unsafe.Slice((*byte)(mapping.Ptr), stagingSize)

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	copyPixels(img, readback, int(alignedBytesPerRow), r.textures.format == gputypes.TextureFormatBGRA8Unorm)
	if err := r.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return img, nil
}

// copyPixels copies tightly packed rows from a pitched readback into img,
// swapping red and blue for BGRA sources.
func copyPixels(img *image.RGBA, src []byte, pitch int, bgra bool) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		row := src[y*pitch : y*pitch+w*4]
		dst := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(dst, row)
		if !bgra {
			continue
		}
		for x := 0; x < len(dst); x += 4 {
			dst[x], dst[x+2] = dst[x+2], dst[x]
		}
	}
}

// Stats returns the submission counters.
func (r *Renderer) Stats() Stats {
	return Stats{
		Submitted: r.submitted.Load(),
		Completed: r.completed.Load(),
		Presented: r.presented.Load(),
	}
}

// releaseBuffer destroys ub and its bind groups.
func (r *Renderer) releaseBuffer(ub *uniformBuffer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		// Close already destroyed every buffer.
		return
	}
	for _, c := range r.bindGroups[ub] {
		r.device.DestroyBindGroup(c.group)
	}
	delete(r.bindGroups, ub)
	delete(r.buffers, ub)
	r.device.DestroyBuffer(ub.buf)
}

// destroyFrameResources destroys the pipeline, vertex buffer and bind
// groups. The caller holds r.mu.
func (r *Renderer) destroyFrameResources() {
	for ub, groups := range r.bindGroups {
		for _, c := range groups {
			r.device.DestroyBindGroup(c.group)
		}
		delete(r.bindGroups, ub)
	}
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
	if r.pipeline != nil {
		r.pipeline.destroy(r.device)
		r.pipeline = nil
	}
}

// Close waits for submitted frames, then destroys every GPU object the
// renderer created, including ring buffers not yet released. A device
// opened by NewStandalone or NewNoop is destroyed too. Close is
// idempotent.
func (r *Renderer) Close() {
	r.pending.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.destroyFrameResources()
	for ub := range r.buffers {
		r.device.DestroyBuffer(ub.buf)
		ub.buf = nil
	}
	r.buffers = nil
	r.textures.destroy(r.device)
	r.closed = true
	if r.opened != nil {
		r.opened.destroy()
	}
	slogger().Info("wgpu: renderer closed",
		"submitted", r.submitted.Load(),
		"presented", r.presented.Load())
}
