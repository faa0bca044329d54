// Package plasma renders two animated plasma cubes while streaming their
// per-frame uniforms through a ring of GPU buffers.
//
// # Overview
//
// Every frame the CPU writes new transforms and shader parameters, and the
// GPU may still be reading the data of earlier frames. A [ring.Ring] of N
// buffers with a counting gate lets the CPU run up to N frames ahead
// without ever overwriting a buffer the GPU has not finished with.
//
// # Quick Start
//
//	gpu, err := wgpu.NewNoop(640, 480)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r, err := plasma.New(gpu, plasma.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close(context.Background())
//
//	r.Reshape(640, 480, scene.OrientationLandscapeLeft)
//	for i := 0; i < 60; i++ {
//	    r.Update()
//	    if err := r.Render(ctx); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Architecture
//
// The module is organized into:
//   - vecmath: float32 vectors, column-major matrices, transform builders
//   - anim: triangle-wave shader parameters
//   - scene: camera and per-object model-view state
//   - uniforms: uniform structs and their byte layout in a slot
//   - ring: the buffer ring and its gate
//   - backend/wgpu: the GPU implementation on gogpu/wgpu
//   - plasma (this package): the frame orchestrator
//
// # Threading
//
// Update, Reshape and Render are called from one goroutine. GPU completion
// callbacks arrive on other goroutines and only return ring permits.
// Close blocks until every submitted frame has completed.
package plasma
