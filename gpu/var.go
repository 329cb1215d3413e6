// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log"

	"github.com/cogentcore/webgpu/wgpu"
)

// VarRoles are the functional roles of variables,
// corresponding to Vertex input vectors and all the different
// "uniform" types as enumerated in the WGSL binding model.
type VarRoles int32

const (
	UndefVarRole VarRoles = iota

	// Vertex is vertex shader input data: mesh geometry points, normals, etc,
	// and per-instance data when the buffer steps per instance.
	// These are automatically located by the order added to a [VertexBuffer].
	Vertex

	// Index is for indexes to access to Vertex data, also called ElementArray.
	Index

	// Uniform is a read-only general purpose data, with a more limited capacity.
	// Use for transform Matrices, camera and light parameters, etc.
	Uniform

	// Storage is a read-write general purpose data, in a larger but slower pool.
	Storage

	// SampledTexture is a Texture image that is read through a [SamplerRole].
	SampledTexture

	// SamplerRole is a Sampler, which specifies the address and
	// filter modes used when reading a [SampledTexture].
	SamplerRole

	VarRolesN
)

var varRolesNames = [...]string{"UndefVarRole", "Vertex", "Index", "Uniform", "Storage", "SampledTexture", "SamplerRole"}

func (vr VarRoles) String() string {
	if vr < 0 || vr >= VarRolesN {
		return fmt.Sprintf("VarRoles(%d)", int32(vr))
	}
	return varRolesNames[vr]
}

// IsBound returns true if the role is set through a bind group,
// rather than through vertex buffers.
func (vr VarRoles) IsBound() bool {
	return vr >= Uniform
}

// ShaderTypes is a list of GPU shader types
type ShaderTypes int32

const (
	UnknownShader ShaderTypes = iota
	VertexShader
	FragmentShader
	ComputeShader

	ShaderTypesN
)

var shaderTypesNames = [...]string{"UnknownShader", "VertexShader", "FragmentShader", "ComputeShader"}

func (st ShaderTypes) String() string {
	if st < 0 || st >= ShaderTypesN {
		return fmt.Sprintf("ShaderTypes(%d)", int32(st))
	}
	return shaderTypesNames[st]
}

// ShaderStageFlags maps ShaderTypes to WebGPU ShaderStage bits.
var ShaderStageFlags = map[ShaderTypes]wgpu.ShaderStage{
	UnknownShader:  wgpu.ShaderStageNone,
	VertexShader:   wgpu.ShaderStageVertex,
	FragmentShader: wgpu.ShaderStageFragment,
	ComputeShader:  wgpu.ShaderStageCompute,
}

// Var specifies a variable used in a pipeline, accessed in shader programs.
// A Var represents a type of input or output into the GPU program,
// including things like Vertex arrays, transformation matricies (Uniforms),
// Images (Textures), and Samplers.
// Each bound Var belongs to a Group, and its Binding location is allocated
// within that, and these numbers are used in WGSL shader via @group and
// @binding to refer to the variables. Vertex Vars instead belong to a
// [VertexBuffer] and have a @location in the shader.
type Var struct {

	// variable name
	Name string

	// type of data in variable. Note that there are strict contraints
	// on the alignment of fields within uniform structs: see [StructLayout].
	Type Types

	// role of variable: Vertex is configured separately, and everything else
	// is configured in a BindGroup.
	Role VarRoles

	// bit flags for set of shaders that this variable is used in.
	Shaders wgpu.ShaderStage

	// Group binding for this variable, indicated by @group in WGSL shader.
	// In general, put data that is updated at the same point in time in the same
	// group, as everything within a group is updated together.
	Group int

	// binding number for this variable, indicated by @binding in WGSL shader.
	// These are automatically assigned sequentially within Group.
	Binding int

	// Location is the first @location of a Vertex var in the shader.
	// Matrix types occupy one location per column.
	Location int

	// Offset is the byte offset of a Vertex var within its buffer.
	Offset int

	// size in bytes of one element. For uniform structs
	// this is the [StructLayout] size.
	SizeOf int

	// Struct is the field layout for Struct uniform vars.
	Struct *StructLayout
}

// Init initializes the main values
func (vr *Var) Init(name string, typ Types, role VarRoles, group int, shaders ...ShaderTypes) {
	vr.Name = name
	vr.Type = typ
	vr.Role = role
	vr.SizeOf = typ.Bytes()
	vr.Group = group
	vr.Shaders = 0
	for _, sh := range shaders {
		vr.Shaders |= ShaderStageFlags[sh]
	}
}

func (vr *Var) String() string {
	typ := vr.Type.String()
	if vr.Struct != nil {
		typ = vr.Struct.Name
	}
	if vr.Role == Vertex {
		return fmt.Sprintf("@location(%d):\t%s\t%s\t(offset: %d, size: %d)", vr.Location, vr.Name, typ, vr.Offset, vr.SizeOf)
	}
	return fmt.Sprintf("@binding(%d):\t%s\t%s\t(size: %d)", vr.Binding, vr.Name, typ, vr.SizeOf)
}

// Locations returns the number of consecutive vertex locations
// used by this var.
func (vr *Var) Locations() int {
	n, _ := vr.Type.VertexColumns()
	return n
}

// vertexAttributes returns the WebGPU vertex attributes for this var:
// one per column for matrix types.
func (vr *Var) vertexAttributes() []wgpu.VertexAttribute {
	n, ct := vr.Type.VertexColumns()
	atts := make([]wgpu.VertexAttribute, n)
	for i := range n {
		atts[i] = wgpu.VertexAttribute{
			Format:         ct.VertexFormat(),
			Offset:         uint64(vr.Offset + i*ct.Bytes()),
			ShaderLocation: uint32(vr.Location + i),
		}
	}
	return atts
}

// bindLayoutEntry returns the WebGPU layout entry for a bound var.
func (vr *Var) bindLayoutEntry() (wgpu.BindGroupLayoutEntry, error) {
	bd := wgpu.BindGroupLayoutEntry{
		Binding:    uint32(vr.Binding),
		Visibility: vr.Shaders,
	}
	switch vr.Role {
	case Uniform:
		bd.Buffer = wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: uint64(vr.SizeOf),
		}
	case Storage:
		bd.Buffer = wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeReadOnlyStorage,
			MinBindingSize: uint64(vr.SizeOf),
		}
	case SampledTexture:
		bd.Texture = wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		}
	case SamplerRole:
		bd.Sampler = wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		}
	default:
		err := fmt.Errorf("gpu.Var:bindLayoutEntry var %q with role %s is not bound in a group", vr.Name, vr.Role)
		if Debug {
			log.Println(err)
		}
		return bd, err
	}
	return bd, nil
}

// VertexBuffer is one vertex buffer bound at a vertex buffer slot,
// holding interleaved attribute Vars at increasing byte offsets.
// Instance buffers step once per instance instead of once per vertex.
type VertexBuffer struct {
	// Name of the buffer, for documentation.
	Name string

	// Slot is the vertex buffer slot index, in order added.
	Slot int

	// StepMode is whether the buffer advances per vertex or per instance.
	StepMode wgpu.VertexStepMode

	// Vars are the attributes in the buffer, in offset order.
	Vars []*Var

	// Stride is the number of bytes between consecutive elements,
	// which is the sum of the attribute sizes.
	Stride int
}

// Add adds an attribute var of given type at given starting shader
// location, placed at the end of the buffer.
func (vb *VertexBuffer) Add(name string, typ Types, location int) *Var {
	vr := &Var{}
	vr.Init(name, typ, Vertex, VertexGroup, VertexShader)
	vr.Location = location
	vr.Offset = vb.Stride
	vb.Stride += vr.SizeOf
	vb.Vars = append(vb.Vars, vr)
	return vr
}

// Layout returns the WebGPU vertex buffer layout.
func (vb *VertexBuffer) Layout() wgpu.VertexBufferLayout {
	var atts []wgpu.VertexAttribute
	for _, vr := range vb.Vars {
		atts = append(atts, vr.vertexAttributes()...)
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(vb.Stride),
		StepMode:    vb.StepMode,
		Attributes:  atts,
	}
}

// IsInstance returns true if the buffer steps per instance.
func (vb *VertexBuffer) IsInstance() bool {
	return vb.StepMode == wgpu.VertexStepModeInstance
}
