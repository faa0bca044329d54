package wgpu

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/plasma/internal/cube"
)

func TestPlasmaShaderCompiles(t *testing.T) {
	spirv, err := naga.Compile(plasmaShaderSource)
	if err != nil {
		t.Fatalf("naga.Compile failed: %v", err)
	}
	if len(spirv) == 0 {
		t.Error("empty SPIR-V output")
	}
	if err := validateShader(); err != nil {
		t.Errorf("validateShader() = %v", err)
	}
}

func TestPlasmaShaderEntryPoints(t *testing.T) {
	for _, want := range []string{
		"fn vs_main(",
		"fn fs_main(",
		"@group(0) @binding(0) var<uniform>",
		"@group(0) @binding(1) var<uniform>",
	} {
		if !strings.Contains(plasmaShaderSource, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
}

func TestCubeVertexLayout(t *testing.T) {
	layouts := cubeVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 vertex buffer layout, got %d", len(layouts))
	}
	vbl := layouts[0]
	if vbl.ArrayStride != cube.VertexStride {
		t.Errorf("expected stride %d, got %d", cube.VertexStride, vbl.ArrayStride)
	}

	want := []struct {
		format   gputypes.VertexFormat
		offset   uint64
		location uint32
	}{
		{gputypes.VertexFormatFloat32x3, cube.PositionOffset, 0},
		{gputypes.VertexFormatFloat32x3, cube.NormalOffset, 1},
		{gputypes.VertexFormatFloat32x2, cube.TexCoordOffset, 2},
	}
	if len(vbl.Attributes) != len(want) {
		t.Fatalf("expected %d attributes, got %d", len(want), len(vbl.Attributes))
	}
	for i, w := range want {
		a := vbl.Attributes[i]
		if a.Format != w.format || uint64(a.Offset) != w.offset || uint32(a.ShaderLocation) != w.location {
			t.Errorf("attribute %d = %+v, want format %v offset %d location %d",
				i, a, w.format, w.offset, w.location)
		}
	}
}

func TestPlasmaPipelineLifecycle(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	for _, samples := range []uint32{1, 4} {
		p, err := newPlasmaPipeline(device, gputypes.TextureFormatBGRA8Unorm, samples)
		if err != nil {
			t.Fatalf("newPlasmaPipeline(%d) failed: %v", samples, err)
		}
		if p.shader == nil || p.bindLayout == nil || p.pipeLayout == nil || p.pipeline == nil {
			t.Errorf("samples %d: incomplete pipeline %+v", samples, p)
		}
		p.destroy(device)
		if p.pipeline != nil || p.shader != nil {
			t.Error("destroy left resources set")
		}
		// Double-destroy should be safe.
		p.destroy(device)
	}
}
