package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

const depthFormat = gputypes.TextureFormatDepth24PlusStencil8

// target is the plasma.Target handed out by AcquireTarget.
type target struct {
	owner         *Renderer
	width, height uint32

	// view is the color attachment; resolve receives the multisampled
	// result and is nil when rendering single-sampled.
	view    hal.TextureView
	resolve hal.TextureView
	depth   hal.TextureView

	// surface is set when the frame ends in a host-provided view.
	surface bool
}

// Size returns the target size in pixels.
func (t *target) Size() (int, int) { return int(t.width), int(t.height) }

// textureSet holds the textures behind a target. The output texture exists
// only for offscreen rendering and is the source of snapshots.
type textureSet struct {
	width, height uint32
	samples       uint32
	format        gputypes.TextureFormat

	msaaTex    hal.Texture
	msaaView   hal.TextureView
	depthTex   hal.Texture
	depthView  hal.TextureView
	outputTex  hal.Texture
	outputView hal.TextureView
}

// ensure (re)creates the textures for a w×h target. It is a no-op when the
// current textures already match.
func (ts *textureSet) ensure(device hal.Device, w, h uint32, offscreen bool) error {
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if ts.current(w, h, offscreen) {
		return nil
	}
	ts.destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	if ts.samples > 1 {
		tex, view, err := createTexture(device, "plasma_msaa_color", size, ts.samples,
			ts.format, gputypes.TextureUsageRenderAttachment)
		if err != nil {
			return err
		}
		ts.msaaTex, ts.msaaView = tex, view
	}

	tex, view, err := createTexture(device, "plasma_depth", size, ts.samples,
		depthFormat, gputypes.TextureUsageRenderAttachment)
	if err != nil {
		ts.destroy(device)
		return err
	}
	ts.depthTex, ts.depthView = tex, view

	if offscreen {
		tex, view, err := createTexture(device, "plasma_output", size, 1,
			ts.format, gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc)
		if err != nil {
			ts.destroy(device)
			return err
		}
		ts.outputTex, ts.outputView = tex, view
	}

	ts.width, ts.height = w, h
	return nil
}

// current reports whether the set already holds textures for a w×h target.
func (ts *textureSet) current(w, h uint32, offscreen bool) bool {
	return ts.width == w && ts.height == h && ts.depthTex != nil && (!offscreen || ts.outputTex != nil)
}

func (ts *textureSet) allocated() bool {
	return ts.msaaTex != nil || ts.depthTex != nil || ts.outputTex != nil
}

// attachments returns the color view and resolve view for a frame whose
// final image goes to out.
func (ts *textureSet) attachments(out hal.TextureView) (view, resolve hal.TextureView) {
	if ts.samples > 1 {
		return ts.msaaView, out
	}
	return out, nil
}

func (ts *textureSet) destroy(device hal.Device) {
	if ts.msaaView != nil {
		device.DestroyTextureView(ts.msaaView)
		ts.msaaView = nil
	}
	if ts.msaaTex != nil {
		device.DestroyTexture(ts.msaaTex)
		ts.msaaTex = nil
	}
	if ts.depthView != nil {
		device.DestroyTextureView(ts.depthView)
		ts.depthView = nil
	}
	if ts.depthTex != nil {
		device.DestroyTexture(ts.depthTex)
		ts.depthTex = nil
	}
	if ts.outputView != nil {
		device.DestroyTextureView(ts.outputView)
		ts.outputView = nil
	}
	if ts.outputTex != nil {
		device.DestroyTexture(ts.outputTex)
		ts.outputTex = nil
	}
	ts.width, ts.height = 0, 0
}

func createTexture(
	device hal.Device,
	label string,
	size hal.Extent3D,
	samples uint32,
	format gputypes.TextureFormat,
	usage gputypes.TextureUsage,
) (hal.Texture, hal.TextureView, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s texture: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}
