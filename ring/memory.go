// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ring

import (
	"fmt"
	"sync"
)

// MemoryAllocator allocates host-memory buffers. It backs rings whose
// consumer reads slots on the CPU, and tests.
type MemoryAllocator struct {
	mu      sync.Mutex
	buffers []*MemoryBuffer
}

// AllocateBuffer implements Allocator.
func (a *MemoryAllocator) AllocateBuffer(label string, size uint64) (Buffer, error) {
	b := &MemoryBuffer{label: label, data: make([]byte, size)}
	a.mu.Lock()
	a.buffers = append(a.buffers, b)
	a.mu.Unlock()
	return b, nil
}

// Buffers returns every buffer allocated so far, in allocation order.
func (a *MemoryAllocator) Buffers() []*MemoryBuffer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*MemoryBuffer(nil), a.buffers...)
}

// MemoryBuffer is a Buffer in host memory.
type MemoryBuffer struct {
	label string

	mu       sync.Mutex
	data     []byte
	writes   int
	released bool
}

// Write implements Buffer.
func (b *MemoryBuffer) Write(offset uint64, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return fmt.Errorf("ring: write to released buffer %s", b.label)
	}
	if offset+uint64(len(data)) > uint64(len(b.data)) {
		return fmt.Errorf("%w: buffer %s", ErrOutOfBounds, b.label)
	}
	copy(b.data[offset:], data)
	b.writes++
	return nil
}

// Size implements Buffer.
func (b *MemoryBuffer) Size() uint64 { return uint64(len(b.data)) }

// Release implements Buffer.
func (b *MemoryBuffer) Release() {
	b.mu.Lock()
	b.released = true
	b.mu.Unlock()
}

// Label returns the label the buffer was allocated with.
func (b *MemoryBuffer) Label() string { return b.label }

// Bytes returns a copy of the buffer contents.
func (b *MemoryBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.data...)
}

// Writes returns the number of successful writes.
func (b *MemoryBuffer) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}

// Released reports whether Release has been called.
func (b *MemoryBuffer) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}
