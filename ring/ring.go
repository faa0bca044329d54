// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ring streams per-frame uniform data through a fixed set of GPU
// buffers.
//
// A Ring owns N buffers (slots) and a counting gate initialised to N. The
// producer acquires a permit before writing a slot and the GPU completion
// of the submission that read the slot returns it. At most N frames are
// therefore in flight, and a slot is never rewritten while a submission
// that reads it is pending.
//
// Typical frame:
//
//	slot, err := r.Acquire(ctx)
//	...
//	r.Write(slot, 0, data)
//	// encode draws that read slot.Buffer
//	r.Advance()
//	gpu.Submit(cmds, slot.Complete)
//
// Acquire, Write and Advance belong to a single producer goroutine.
// Slot.Complete may be called from any goroutine.
package ring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Errors returned by Ring.
var (
	ErrAllocation      = errors.New("ring: buffer allocation failed")
	ErrClosed          = errors.New("ring: closed")
	ErrInvalidCapacity = errors.New("ring: capacity must be positive")
	ErrInvalidSize     = errors.New("ring: slot size must be positive")
	ErrOutOfBounds     = errors.New("ring: write outside slot")
	ErrBusy            = errors.New("ring: all slots in flight")
)

// Buffer is device-visible memory backing one slot.
type Buffer interface {
	// Write copies data to the buffer at offset.
	Write(offset uint64, data []byte) error
	// Size returns the buffer length in bytes.
	Size() uint64
	// Release frees the buffer. It is called once, after Drain.
	Release()
}

// Allocator creates slot buffers.
type Allocator interface {
	AllocateBuffer(label string, size uint64) (Buffer, error)
}

// Slot is one acquired ring entry. Complete must be called exactly once
// per acquired Slot; further calls are ignored.
type Slot struct {
	Index  int
	Buffer Buffer

	ring *Ring
	done atomic.Bool
}

// Complete returns the slot's permit to the gate.
func (s *Slot) Complete() {
	if s.done.CompareAndSwap(false, true) {
		s.ring.release()
	}
}

// Ring is a fixed-capacity uniform buffer ring.
type Ring struct {
	buffers  []Buffer
	capacity int
	slotSize uint64
	gate     *semaphore.Weighted
	pending  atomic.Int64
	cursor   atomic.Int64

	mu     sync.Mutex
	closed bool
}

// Label returns the debug label of slot i.
func Label(i int) string { return fmt.Sprintf("PlasmaConstantBuffer%d", i) }

// New allocates capacity buffers of slotSize bytes each. If any allocation
// fails the buffers allocated so far are released and an error wrapping
// ErrAllocation is returned.
func New(alloc Allocator, capacity int, slotSize uint64) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if slotSize == 0 {
		return nil, ErrInvalidSize
	}

	buffers := make([]Buffer, 0, capacity)
	for i := 0; i < capacity; i++ {
		buf, err := alloc.AllocateBuffer(Label(i), slotSize)
		if err == nil && buf == nil {
			err = errors.New("allocator returned nil buffer")
		}
		if err == nil && buf.Size() < slotSize {
			buf.Release()
			err = fmt.Errorf("buffer has %d bytes, need %d", buf.Size(), slotSize)
		}
		if err != nil {
			for _, b := range buffers {
				b.Release()
			}
			return nil, fmt.Errorf("%w: slot %d: %w", ErrAllocation, i, err)
		}
		buffers = append(buffers, buf)
	}

	return &Ring{
		buffers:  buffers,
		capacity: capacity,
		slotSize: slotSize,
		gate:     semaphore.NewWeighted(int64(capacity)),
	}, nil
}

// Acquire blocks until fewer than Capacity submissions are pending and
// returns the slot at the cursor. If ctx is done first, its error is
// returned and no capacity is consumed.
func (r *Ring) Acquire(ctx context.Context) (*Slot, error) {
	if r.isClosed() {
		return nil, ErrClosed
	}
	if err := r.gate.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return r.take()
}

// TryAcquire is Acquire without blocking. It returns ErrBusy when every
// slot is in flight.
func (r *Ring) TryAcquire() (*Slot, error) {
	if r.isClosed() {
		return nil, ErrClosed
	}
	if !r.gate.TryAcquire(1) {
		return nil, ErrBusy
	}
	return r.take()
}

func (r *Ring) take() (*Slot, error) {
	// Drain may have closed the ring while we waited.
	if r.isClosed() {
		r.gate.Release(1)
		return nil, ErrClosed
	}
	r.pending.Add(1)
	i := int(r.cursor.Load())
	return &Slot{Index: i, Buffer: r.buffers[i], ring: r}, nil
}

func (r *Ring) release() {
	r.pending.Add(-1)
	r.gate.Release(1)
}

// Write copies data into the slot at offset.
func (r *Ring) Write(s *Slot, offset uint64, data []byte) error {
	end := offset + uint64(len(data))
	if end < offset || end > r.slotSize {
		return fmt.Errorf("%w: [%d, %d) in slot of %d bytes", ErrOutOfBounds, offset, end, r.slotSize)
	}
	if s.done.Load() {
		return fmt.Errorf("ring: write to completed slot %d", s.Index)
	}
	return s.Buffer.Write(offset, data)
}

// Advance moves the cursor to the next slot. It is called once per frame,
// after every draw reading the current slot has been encoded.
func (r *Ring) Advance() {
	r.cursor.Store((r.cursor.Load() + 1) % int64(r.capacity))
}

// Drain blocks until every permit has been returned, then releases the
// buffers and closes the ring. Later calls to Acquire return ErrClosed. The caller must not submit work that reads
// ring buffers after Drain starts. If ctx is done first, the ring stays
// open and the context error is returned.
func (r *Ring) Drain(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.mu.Unlock()

	n := int64(r.capacity)
	if err := r.gate.Acquire(ctx, n); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Waiters woken by the release below observe closed and give the
	// permit back.
	defer r.gate.Release(n)
	if r.closed {
		return ErrClosed
	}
	r.closed = true
	for _, b := range r.buffers {
		b.Release()
	}
	r.buffers = nil
	return nil
}

func (r *Ring) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Capacity returns the number of slots.
func (r *Ring) Capacity() int { return r.capacity }

// SlotSize returns the size of each slot in bytes.
func (r *Ring) SlotSize() uint64 { return r.slotSize }

// Cursor returns the index the next Acquire will return.
func (r *Ring) Cursor() int { return int(r.cursor.Load()) }

// InFlight returns the number of acquired slots not yet completed.
func (r *Ring) InFlight() int { return int(r.pending.Load()) }
