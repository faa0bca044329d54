package wgpu

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/plasma/internal/cube"
	"github.com/gogpu/plasma/uniforms"
)

//go:embed shaders/plasma.wgsl
var plasmaShaderSource string

// Binding indices of the plasma bind group.
const (
	vertexUniformBinding   = 0
	fragmentUniformBinding = 1
)

var (
	shaderOnce sync.Once
	shaderErr  error
)

// validateShader compiles the plasma shader with naga once per process.
// Pipeline creation is refused if it does not compile.
func validateShader() error {
	shaderOnce.Do(func() {
		if _, err := naga.Compile(plasmaShaderSource); err != nil {
			shaderErr = fmt.Errorf("compile plasma shader: %w", err)
		}
	})
	return shaderErr
}

// plasmaPipeline holds the GPU objects shared by every frame.
type plasmaPipeline struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// newPlasmaPipeline creates the plasma render pipeline for color targets
// of the given format and sample count.
func newPlasmaPipeline(device hal.Device, format gputypes.TextureFormat, samples uint32) (*plasmaPipeline, error) {
	if err := validateShader(); err != nil {
		return nil, err
	}

	p := &plasmaPipeline{}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "plasma_shader",
		Source: hal.ShaderSource{WGSL: plasmaShaderSource},
	})
	if err != nil {
		return nil, fmt.Errorf("create plasma shader module: %w", err)
	}
	p.shader = shader

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "plasma_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    vertexUniformBinding,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    fragmentUniformBinding,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create plasma bind group layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "plasma_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create plasma pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "plasma_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    cubeVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilReadMask:  0x00,
			StencilWriteMask: 0x00,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: samples,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create plasma pipeline: %w", err)
	}
	p.pipeline = pipeline
	return p, nil
}

func (p *plasmaPipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// newBindGroup binds one object's vertex and fragment uniforms inside buf.
func (p *plasmaPipeline) newBindGroup(device hal.Device, buf hal.Buffer, label string, vertexOffset, fragmentOffset uint64) (hal.BindGroup, error) {
	bg, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label,
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: vertexUniformBinding, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: vertexOffset, Size: uniforms.VertexSize,
			}},
			{Binding: fragmentUniformBinding, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: fragmentOffset, Size: uniforms.FragmentSize,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return bg, nil
}

// cubeVertexLayout describes the interleaved cube vertex stream.
func cubeVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: cube.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: cube.PositionOffset, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x3, Offset: cube.NormalOffset, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x2, Offset: cube.TexCoordOffset, ShaderLocation: 2},
			},
		},
	}
}
