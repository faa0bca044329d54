// Package wgpu runs the plasma renderer on a gogpu/wgpu HAL device.
//
// [Renderer] implements plasma.GPU. It owns the plasma pipeline, the cube
// vertex buffer, the render target textures and one bind group per object
// and ring buffer. Each submission is polled in the background; the
// completion callback of a frame runs once the queue reports its
// submission index as completed.
//
// # Devices
//
// Three constructors cover the supported hosts:
//
//   - [New] wraps a device and queue the caller already owns.
//   - [NewFromProvider] shares the device of a gpucontext.DeviceProvider
//     (for example a gogpu window) and renders into surface views set with
//     [Renderer.SetSurfaceView].
//   - [NewStandalone] opens the first hardware Vulkan adapter and renders
//     offscreen.
//
// [NewNoop] opens the noop HAL device. It accepts every call and is used by
// tests and the headless demo.
//
// # Render targets
//
// Offscreen targets are a multisampled BGRA color texture resolved into a
// single-sample texture that [Renderer.Snapshot] reads back. Surface
// targets resolve into the provided view. Both share one
// Depth24PlusStencil8 texture cleared to 1.0 every frame.
//
// # Uniform offsets
//
// Bind groups bind the uniform buffer at fixed offsets, so every stride of
// the slot layout must be a multiple of [UniformAlignment]. The plasma
// renderer picks an aligned layout automatically.
package wgpu
