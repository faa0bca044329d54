package plasma

import (
	"errors"
	"sync"

	"github.com/gogpu/plasma/ring"
	"github.com/gogpu/plasma/uniforms"
)

// fakeTarget is a render target of fixed size.
type fakeTarget struct{ w, h int }

func (t fakeTarget) Size() (int, int) { return t.w, t.h }

// fakeBatch records what one Encode call saw.
type fakeBatch struct {
	slot  ring.Buffer
	bytes []byte
	draws []DrawCall
}

// fakeGPU is an in-memory GPU whose submissions complete only when the
// test says so, unless autoComplete is set.
type fakeGPU struct {
	ring.MemoryAllocator

	align        uint64
	configureErr error
	encodeErr    error
	submitErr    error
	noTarget     bool
	autoComplete bool

	mu        sync.Mutex
	layout    uniforms.Layout
	batches   []*fakeBatch
	pending   []func()
	presented int
}

func (g *fakeGPU) UniformAlignment() uint64 { return g.align }

func (g *fakeGPU) Configure(l uniforms.Layout) error {
	g.layout = l
	return g.configureErr
}

func (g *fakeGPU) AcquireTarget() (Target, error) {
	if g.noTarget {
		return nil, ErrTargetUnavailable
	}
	return fakeTarget{640, 480}, nil
}

func (g *fakeGPU) Encode(_ Target, buf ring.Buffer, draws []DrawCall) (CommandBatch, error) {
	if g.encodeErr != nil {
		return nil, g.encodeErr
	}
	mb, ok := buf.(*ring.MemoryBuffer)
	if !ok {
		return nil, errors.New("fake gpu: foreign buffer")
	}
	b := &fakeBatch{slot: buf, bytes: mb.Bytes(), draws: append([]DrawCall(nil), draws...)}
	return b, nil
}

func (g *fakeGPU) Submit(batch CommandBatch, onComplete func()) error {
	if g.submitErr != nil {
		return g.submitErr
	}
	g.mu.Lock()
	g.batches = append(g.batches, batch.(*fakeBatch))
	if !g.autoComplete {
		g.pending = append(g.pending, onComplete)
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()
	go onComplete()
	return nil
}

func (g *fakeGPU) Present(Target) {
	g.mu.Lock()
	g.presented++
	g.mu.Unlock()
}

// completeOldest finishes the oldest pending submission.
func (g *fakeGPU) completeOldest() {
	g.mu.Lock()
	done := g.pending[0]
	g.pending = g.pending[1:]
	g.mu.Unlock()
	done()
}

func (g *fakeGPU) completeAll() {
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()
	for _, done := range pending {
		done()
	}
}

func (g *fakeGPU) lastBatch() *fakeBatch {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.batches[len(g.batches)-1]
}
