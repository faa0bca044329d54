package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/plasma/ring"
)

// uniformBuffer is one ring slot in device memory.
type uniformBuffer struct {
	owner *Renderer
	buf   hal.Buffer
	label string
	size  uint64
}

// AllocateBuffer creates a uniform buffer for one ring slot.
func (r *Renderer) AllocateBuffer(label string, size uint64) (ring.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	b := &uniformBuffer{owner: r, buf: buf, label: label, size: size}
	r.buffers[b] = struct{}{}
	slogger().Debug("wgpu: uniform buffer allocated", "label", label, "size", size)
	return b, nil
}

// Write queues a copy of data into the buffer at offset. The copy is
// ordered before any later submission on the queue.
func (b *uniformBuffer) Write(offset uint64, data []byte) error {
	if offset > b.size || uint64(len(data)) > b.size-offset {
		return fmt.Errorf("%w: %s offset %d len %d size %d", ErrOutOfBounds, b.label, offset, len(data), b.size)
	}
	if b.buf == nil {
		return fmt.Errorf("%w: %s released", ErrClosed, b.label)
	}
	if err := b.owner.queue.WriteBuffer(b.buf, offset, data); err != nil {
		return fmt.Errorf("write %s: %w", b.label, err)
	}
	return nil
}

// Size returns the buffer length in bytes.
func (b *uniformBuffer) Size() uint64 { return b.size }

// Release destroys the buffer and the bind groups that reference it.
func (b *uniformBuffer) Release() {
	if b.buf == nil {
		return
	}
	b.owner.releaseBuffer(b)
	b.buf = nil
}
