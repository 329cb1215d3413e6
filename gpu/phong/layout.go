// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"fmt"

	"cogentcore.org/shade/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Groups are the bind group numbers, shared by every pipeline variant
// so that one pipeline layout serves all of them.
type Groups int32

const (
	// CameraGroup holds the [Camera] uniform at binding 0.
	CameraGroup Groups = iota

	// MaterialGroup holds the diffuse texture at binding 0
	// and its sampler at binding 1.
	MaterialGroup

	// LightGroup holds the [Light] uniform at binding 0.
	LightGroup

	GroupsN
)

var groupsNames = [...]string{"CameraGroup", "MaterialGroup", "LightGroup"}

func (gp Groups) String() string {
	if gp < 0 || gp >= GroupsN {
		return fmt.Sprintf("Groups(%d)", int32(gp))
	}
	return groupsNames[gp]
}

// Vertex buffer names, in slot order.
const (
	VertexBuffer   = "Vertex"
	InstanceBuffer = "Instance"
	PositionBuffer = "Position"
)

// Byte sizes of the host data, which must match the shader layouts.
const (
	CameraSize     = 80
	LightSize      = 32
	VertexStride   = 32
	InstanceStride = 100
	PositionStride = 12
)

// First @location of the instance attributes.
const (
	ModelLocation  = 5
	NormalLocation = 9
)

// CameraLayout is the WGSL layout of the Camera uniform struct.
var CameraLayout = gpu.NewStructLayout("Camera",
	"eye_position", gpu.Float32Vector4,
	"view_projection", gpu.Float32Matrix4,
)

// LightLayout is the WGSL layout of the Light uniform struct.
var LightLayout = gpu.NewStructLayout("Light",
	"position", gpu.Float32Vector3,
	"falloff_scale", gpu.Float32,
	"colour", gpu.Float32Vector3,
	"brightness", gpu.Float32,
)

// NewVars returns the configured host layout for the given variant:
// its vertex buffers, and the camera, material and light groups
// that are common to all variants.
func NewVars(vt Variants) (*gpu.Vars, error) {
	vs := &gpu.Vars{}
	vg := vs.AddVertexGroup()
	switch vt {
	case DebugOverlay:
		pb := vg.AddBuffer(PositionBuffer, wgpu.VertexStepModeVertex)
		pb.Add("position", gpu.Float32Vector3, 0)
	default:
		vb := vg.AddBuffer(VertexBuffer, wgpu.VertexStepModeVertex)
		vb.Add("position", gpu.Float32Vector3, 0)
		vb.Add("tex_coords", gpu.Float32Vector2, 1)
		vb.Add("normal", gpu.Float32Vector3, 2)
		if vt == LitInstanced {
			ib := vg.AddBuffer(InstanceBuffer, wgpu.VertexStepModeInstance)
			ib.Add("model_matrix", gpu.Float32Matrix4, ModelLocation)
			ib.Add("normal_matrix", gpu.Float32Matrix3, NormalLocation)
		}
	}

	cg := vs.AddGroup(gpu.Uniform, "Camera")
	cg.AddStruct("camera", CameraLayout, gpu.VertexShader, gpu.FragmentShader)

	mg := vs.AddGroup(gpu.SampledTexture, "Material")
	mg.Add("t_diffuse", gpu.TextureRGBA32, gpu.FragmentShader)
	mg.AddRole("s_diffuse", gpu.SamplerType, gpu.SamplerRole, gpu.FragmentShader)

	lg := vs.AddGroup(gpu.Uniform, "Light")
	lg.AddStruct("light", LightLayout, gpu.VertexShader, gpu.FragmentShader)

	if err := vs.Config(); err != nil {
		return nil, err
	}
	return vs, nil
}
