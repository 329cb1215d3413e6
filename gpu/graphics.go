// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsPipeline is a Pipeline specifically for the Graphics stack.
// In this context, each pipeline could handle a different
// class of materials (textures, Phong lighting, etc).
// There must be a vertex and a fragment entry.
type GraphicsPipeline struct {
	Pipeline

	// Primitive has various settings for graphics primitives,
	// e.g., TriangleList
	Primitive wgpu.PrimitiveState

	Multisample wgpu.MultisampleState

	// Blend is the color blend state of the single color target.
	Blend wgpu.BlendState

	// Format is the color target format.
	Format wgpu.TextureFormat

	// DepthTest enables the depth test against a [Depth32] target.
	DepthTest bool

	// DepthWrite enables writing depth, for opaque passes.
	DepthWrite bool

	// DepthCompare is the depth test function.
	DepthCompare wgpu.CompareFunction

	// vars is the host layout that Config validated against.
	vars *Vars
}

// NewGraphicsPipeline returns a new GraphicsPipeline
// with default settings.
func NewGraphicsPipeline(name string) *GraphicsPipeline {
	pl := &GraphicsPipeline{}
	pl.Name = name
	pl.SetGraphicsDefaults()
	return pl
}

// VertexEntry returns the [ShaderEntry] for [VertexShader].
// Can be nil if no vertex shader defined.
func (pl *GraphicsPipeline) VertexEntry() *ShaderEntry {
	return pl.EntryByType(VertexShader)
}

// FragmentEntry returns the [ShaderEntry] for [FragmentShader].
// Can be nil if no fragment shader defined.
func (pl *GraphicsPipeline) FragmentEntry() *ShaderEntry {
	return pl.EntryByType(FragmentShader)
}

// Vars returns the host layout set by Config.
func (pl *GraphicsPipeline) Vars() *Vars {
	return pl.vars
}

// Config is called once all the options have been set
// using Set* methods, and the shaders have been loaded.
// It applies overrides and checks every shader against the given
// host vars, returning a *[ContractError] on any mismatch.
func (pl *GraphicsPipeline) Config(vs *Vars) error {
	ve := pl.VertexEntry()
	fe := pl.FragmentEntry()
	if ve == nil || fe == nil {
		return fmt.Errorf("gpu.GraphicsPipeline:Config %s: vertex and fragment entries are required", pl.Name)
	}
	if err := pl.applyOverrides(); err != nil {
		return err
	}
	ce := &ContractError{Pipeline: pl.Name}
	check := func(sh *Shader, vertexEntry, fragmentEntry string) error {
		if sh.Info == nil {
			return fmt.Errorf("gpu.GraphicsPipeline:Config %s: shader %s has no code", pl.Name, sh.Name)
		}
		if sce, ok := CheckContract(pl.Name, sh.Info, vs, vertexEntry, fragmentEntry).(*ContractError); ok {
			ce.Mismatches = append(ce.Mismatches, sce.Mismatches...)
		}
		return nil
	}
	if ve.Shader == fe.Shader {
		if err := check(ve.Shader, ve.Entry, fe.Entry); err != nil {
			return err
		}
	} else {
		if err := check(ve.Shader, ve.Entry, ""); err != nil {
			return err
		}
		if err := check(fe.Shader, "", fe.Entry); err != nil {
			return err
		}
	}
	if len(ce.Mismatches) > 0 {
		if Debug {
			slog.Error(ce.Error())
		}
		return ce
	}
	pl.vars = vs
	return nil
}

// Descriptor returns the WebGPU render pipeline descriptor, given
// the device shader modules created from [Pipeline.Code] for each shader
// (by shader name) and the pipeline layout created from
// [Vars.BindGroupLayoutDescriptors]. Config must have succeeded.
func (pl *GraphicsPipeline) Descriptor(modules map[string]*wgpu.ShaderModule, layout *wgpu.PipelineLayout) (*wgpu.RenderPipelineDescriptor, error) {
	if pl.vars == nil {
		return nil, fmt.Errorf("gpu.GraphicsPipeline:Descriptor %s: Config has not been called", pl.Name)
	}
	ve := pl.VertexEntry()
	fe := pl.FragmentEntry()
	blend := pl.Blend
	pd := &wgpu.RenderPipelineDescriptor{
		Label:       pl.Name,
		Layout:      layout,
		Primitive:   pl.Primitive,
		Multisample: pl.Multisample,
		Vertex: wgpu.VertexState{
			Module:     modules[ve.Shader.Name],
			EntryPoint: ve.Entry,
			Buffers:    pl.vars.VertexLayout(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     modules[fe.Shader.Name],
			EntryPoint: fe.Entry,
			Targets: []wgpu.ColorTargetState{{
				Format:    pl.Format,
				Blend:     &blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	}
	if pl.DepthTest {
		pd.DepthStencil = &wgpu.DepthStencilState{
			Format:            Depth32.TextureFormat(),
			DepthWriteEnabled: pl.DepthWrite,
			DepthCompare:      pl.DepthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}
	return pd, nil
}

//////////////////////////////////////////////////////////////
// Set graphics options

// SetGraphicsDefaults configures all the default settings for a
// graphics rendering pipeline: triangles, counter-clockwise front
// faces with back face culling, no blending, and an opaque depth test
// against a 4x multisampled target.
func (pl *GraphicsPipeline) SetGraphicsDefaults() *GraphicsPipeline {
	pl.SetTopology(TriangleList)
	pl.SetFrontFace(wgpu.FrontFaceCCW)
	pl.SetCullMode(wgpu.CullModeBack)
	pl.SetColorBlend(false)
	pl.SetMultisample(4)
	pl.SetDepth(true, true)
	pl.Format = wgpu.TextureFormatRGBA8UnormSrgb
	return pl
}

// SetTopology sets the topology of vertex position data.
// TriangleList is the default.
func (pl *GraphicsPipeline) SetTopology(topo Topologies) *GraphicsPipeline {
	pl.Primitive.Topology = topo.Primitive()
	return pl
}

// Topology returns the current topology.
func (pl *GraphicsPipeline) Topology() Topologies {
	for tp, wt := range WebGPUTopologies {
		if wt == pl.Primitive.Topology {
			return tp
		}
	}
	return TriangleList
}

// SetFrontFace sets the winding order for what counts as a front face.
func (pl *GraphicsPipeline) SetFrontFace(face wgpu.FrontFace) *GraphicsPipeline {
	pl.Primitive.FrontFace = face
	return pl
}

// SetCullMode sets the face culling mode.
func (pl *GraphicsPipeline) SetCullMode(mode wgpu.CullMode) *GraphicsPipeline {
	pl.Primitive.CullMode = mode
	return pl
}

func (pl *GraphicsPipeline) SetMultisample(ms int) *GraphicsPipeline {
	pl.Multisample.Count = uint32(max(1, ms))
	pl.Multisample.Mask = 0xFFFFFFFF
	pl.Multisample.AlphaToCoverageEnabled = false
	return pl
}

// SetColorBlend determines the color blending function:
// either 1-source alpha (alphaBlend) or no blending:
// new color overwrites old.
func (pl *GraphicsPipeline) SetColorBlend(alphaBlend bool) *GraphicsPipeline {
	if alphaBlend {
		pl.Blend = wgpu.BlendStateAlphaBlending
	} else {
		pl.Blend = wgpu.BlendStateReplace
	}
	return pl
}

// IsAlphaBlend returns true if source-over alpha blending is set.
func (pl *GraphicsPipeline) IsAlphaBlend() bool {
	return pl.Blend == wgpu.BlendStateAlphaBlending
}

// SetDepth sets the depth test and depth write; the test
// passes for fragments closer than the stored depth.
func (pl *GraphicsPipeline) SetDepth(test, write bool) *GraphicsPipeline {
	pl.DepthTest = test
	pl.DepthWrite = test && write
	pl.DepthCompare = wgpu.CompareFunctionLess
	return pl
}

// Topologies are the different vertex topology
type Topologies int32

const (
	PointList Topologies = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip

	TopologiesN
)

var topologiesNames = [...]string{"PointList", "LineList", "LineStrip", "TriangleList", "TriangleStrip"}

func (tp Topologies) String() string {
	if tp < 0 || tp >= TopologiesN {
		return fmt.Sprintf("Topologies(%d)", int32(tp))
	}
	return topologiesNames[tp]
}

func (tp Topologies) Primitive() wgpu.PrimitiveTopology {
	return WebGPUTopologies[tp]
}

// IsLines returns true for the line topologies.
func (tp Topologies) IsLines() bool {
	return tp == LineList || tp == LineStrip
}

var WebGPUTopologies = map[Topologies]wgpu.PrimitiveTopology{
	PointList:     wgpu.PrimitiveTopologyPointList,
	LineList:      wgpu.PrimitiveTopologyLineList,
	LineStrip:     wgpu.PrimitiveTopologyLineStrip,
	TriangleList:  wgpu.PrimitiveTopologyTriangleList,
	TriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
}
