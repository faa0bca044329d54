package plasma

import (
	"github.com/gogpu/plasma/ring"
	"github.com/gogpu/plasma/uniforms"
)

// GPU is the device a Renderer draws with.
//
// Implementations allocate the ring buffers, own the plasma pipeline and
// cube geometry, and run submissions asynchronously. All methods except the
// completion callback passed to Submit are called from the producer
// goroutine.
type GPU interface {
	ring.Allocator

	// Configure creates the pipeline for the given uniform layout. It is
	// called once, before the ring is allocated. An error is fatal.
	Configure(layout uniforms.Layout) error

	// AcquireTarget returns the target for the next frame, or an error
	// wrapping ErrTargetUnavailable when there is none.
	AcquireTarget() (Target, error)

	// Encode records one draw per DrawCall into target. Every draw reads
	// its uniforms from buf at the given offsets.
	Encode(target Target, buf ring.Buffer, draws []DrawCall) (CommandBatch, error)

	// Submit queues batch for execution and returns without waiting.
	// onComplete is called exactly once, from any goroutine, after the GPU
	// has finished with the batch. If Submit returns an error onComplete
	// may not be called.
	Submit(batch CommandBatch, onComplete func()) error

	// Present shows target after its batch was submitted.
	Present(target Target)
}

// Target is a render target for one frame.
type Target interface {
	Size() (width, height int)
}

// CommandBatch is an encoded, not yet submitted, set of GPU commands. Its
// contents are private to the GPU that produced it.
type CommandBatch interface{}

// DrawCall is one object's draw within a frame.
type DrawCall struct {
	// Object is the object index, 0 or 1.
	Object int
	// VertexOffset is the byte offset of the object's vertex uniforms.
	VertexOffset uint64
	// FragmentOffset is the byte offset of the object's fragment uniforms.
	FragmentOffset uint64
}

// uniformAligner is implemented by GPUs that require aligned uniform
// binding offsets.
type uniformAligner interface {
	UniformAlignment() uint64
}

// layoutFor returns the slot layout for gpu given the configured alignment.
func layoutFor(gpu GPU, align uint64) uniforms.Layout {
	if a, ok := gpu.(uniformAligner); ok && a.UniformAlignment() > align {
		align = a.UniformAlignment()
	}
	return uniforms.Aligned(align)
}

// DrawCalls returns the draw calls for both objects of a frame under layout.
func DrawCalls(layout uniforms.Layout) []DrawCall {
	draws := make([]DrawCall, uniforms.ObjectCount)
	for i := range draws {
		vo, fo := layout.Offsets(i)
		draws[i] = DrawCall{Object: i, VertexOffset: vo, FragmentOffset: fo}
	}
	return draws
}
