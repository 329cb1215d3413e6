// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Types is a list of supported GPU data types, which can be stored
// properly aligned in device memory, and used by the shader code.
// Sizes differ between vertex buffers, where attributes are tightly
// packed, and uniform structs, where WGSL alignment rules apply:
// see [Types.Bytes] vs [Types.WGSLSize] and [Types.WGSLAlign].
type Types int32

const (
	UndefinedType Types = iota
	Bool32

	Int32
	Int32Vector2
	Int32Vector4

	Uint32
	Uint32Vector2
	Uint32Vector4

	Float32
	Float32Vector2
	Float32Vector3
	Float32Vector4

	Float32Matrix4 // std transform matrix: math32.Matrix4 works directly
	Float32Matrix3 // normal matrix: vertex data packs 3 columns of vec3

	TextureRGBA32 // 32 bits with 8 bits per component of R,G,B,A: std image format

	Depth32 // standard float32 depth buffer

	SamplerType

	Struct

	TypesN
)

var typesNames = [...]string{"UndefinedType", "Bool32", "Int32", "Int32Vector2", "Int32Vector4", "Uint32", "Uint32Vector2", "Uint32Vector4", "Float32", "Float32Vector2", "Float32Vector3", "Float32Vector4", "Float32Matrix4", "Float32Matrix3", "TextureRGBA32", "Depth32", "SamplerType", "Struct"}

func (tp Types) String() string {
	if tp < 0 || tp >= TypesN {
		return fmt.Sprintf("Types(%d)", int32(tp))
	}
	return typesNames[tp]
}

// VertexFormat returns the WebGPU VertexFormat for given type.
// Matrix types have no single vertex format: they occupy one
// attribute per column, see [Types.VertexColumns].
func (tp Types) VertexFormat() wgpu.VertexFormat {
	return TypeToVertexFormat[tp]
}

// VertexColumns returns the number of vertex attribute locations
// that a value of this type occupies, and the type of each column.
func (tp Types) VertexColumns() (int, Types) {
	switch tp {
	case Float32Matrix4:
		return 4, Float32Vector4
	case Float32Matrix3:
		return 3, Float32Vector3
	default:
		return 1, tp
	}
}

// TextureFormat returns the WebGPU TextureFormat for given type.
func (tp Types) TextureFormat() wgpu.TextureFormat {
	return TypeToTextureFormat[tp]
}

// Bytes returns number of bytes for this type, tightly packed,
// as used in vertex buffers.
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

// WGSLSize returns the size in bytes of this type as a member
// of a WGSL uniform struct.
func (tp Types) WGSLSize() int {
	return TypeWGSLLayouts[tp].Size
}

// WGSLAlign returns the alignment in bytes of this type as a member
// of a WGSL uniform struct.
func (tp Types) WGSLAlign() int {
	return TypeWGSLLayouts[tp].Align
}

// WGSLName returns the canonical WGSL type name for this type.
func (tp Types) WGSLName() string {
	return TypeWGSLNames[tp]
}

// TypeFromWGSL returns the [Types] for the given WGSL type name,
// accepting both the short (vec3f) and long (vec3<f32>) spellings.
func TypeFromWGSL(name string) (Types, bool) {
	tp, ok := wgslNameTypes[name]
	return tp, ok
}

var TypeToTextureFormat = map[Types]wgpu.TextureFormat{
	TextureRGBA32: wgpu.TextureFormatRGBA8UnormSrgb,
	Depth32:       wgpu.TextureFormatDepth32Float,
}

// TypeSizes gives our data type sizes in bytes
var TypeSizes = map[Types]int{
	Bool32: 4,

	Int32:        4,
	Int32Vector2: 8,
	Int32Vector4: 16,

	Uint32:        4,
	Uint32Vector2: 8,
	Uint32Vector4: 16,

	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,

	Float32Matrix4: 64,
	Float32Matrix3: 36,

	TextureRGBA32: 4,

	Depth32: 4,
}

// TypeLayout is the size and alignment of a type within a WGSL struct.
type TypeLayout struct {
	Size  int
	Align int
}

// TypeWGSLLayouts gives the WGSL host-shareable size and alignment of each
// type that can appear in a uniform struct.
var TypeWGSLLayouts = map[Types]TypeLayout{
	Bool32:         {4, 4},
	Int32:          {4, 4},
	Int32Vector2:   {8, 8},
	Int32Vector4:   {16, 16},
	Uint32:         {4, 4},
	Uint32Vector2:  {8, 8},
	Uint32Vector4:  {16, 16},
	Float32:        {4, 4},
	Float32Vector2: {8, 8},
	Float32Vector3: {12, 16},
	Float32Vector4: {16, 16},
	Float32Matrix3: {48, 16},
	Float32Matrix4: {64, 16},
}

// TypeToVertexFormat maps gpu.Types to WebGPU VertexFormat
var TypeToVertexFormat = map[Types]wgpu.VertexFormat{
	UndefinedType:  wgpu.VertexFormatUndefined,
	Int32:          wgpu.VertexFormatSint32,
	Int32Vector2:   wgpu.VertexFormatSint32x2,
	Int32Vector4:   wgpu.VertexFormatSint32x4,
	Uint32:         wgpu.VertexFormatUint32,
	Uint32Vector2:  wgpu.VertexFormatUint32x2,
	Uint32Vector4:  wgpu.VertexFormatUint32x4,
	Float32:        wgpu.VertexFormatFloat32,
	Float32Vector2: wgpu.VertexFormatFloat32x2,
	Float32Vector3: wgpu.VertexFormatFloat32x3,
	Float32Vector4: wgpu.VertexFormatFloat32x4,
}

// TypeWGSLNames maps gpu.Types to WGSL type names.
var TypeWGSLNames = map[Types]string{
	Bool32:         "bool",
	Int32:          "i32",
	Int32Vector2:   "vec2i",
	Int32Vector4:   "vec4i",
	Uint32:         "u32",
	Uint32Vector2:  "vec2u",
	Uint32Vector4:  "vec4u",
	Float32:        "f32",
	Float32Vector2: "vec2f",
	Float32Vector3: "vec3f",
	Float32Vector4: "vec4f",
	Float32Matrix3: "mat3x3f",
	Float32Matrix4: "mat4x4f",
	TextureRGBA32:  "texture_2d<f32>",
	Depth32:        "texture_depth_2d",
	SamplerType:    "sampler",
}

var wgslNameTypes = map[string]Types{
	"bool":             Bool32,
	"i32":              Int32,
	"vec2i":            Int32Vector2,
	"vec2<i32>":        Int32Vector2,
	"vec4i":            Int32Vector4,
	"vec4<i32>":        Int32Vector4,
	"u32":              Uint32,
	"vec2u":            Uint32Vector2,
	"vec2<u32>":        Uint32Vector2,
	"vec4u":            Uint32Vector4,
	"vec4<u32>":        Uint32Vector4,
	"f32":              Float32,
	"vec2f":            Float32Vector2,
	"vec2<f32>":        Float32Vector2,
	"vec3f":            Float32Vector3,
	"vec3<f32>":        Float32Vector3,
	"vec4f":            Float32Vector4,
	"vec4<f32>":        Float32Vector4,
	"mat3x3f":          Float32Matrix3,
	"mat3x3<f32>":      Float32Matrix3,
	"mat4x4f":          Float32Matrix4,
	"mat4x4<f32>":      Float32Matrix4,
	"texture_2d<f32>":  TextureRGBA32,
	"texture_depth_2d": Depth32,
	"sampler":          SamplerType,
}

// MemSizeAlign returns the size aligned according to align byte increments
// e.g., if align = 16 and size = 12, it returns 16
func MemSizeAlign(size, align int) int {
	if size%align == 0 {
		return size
	}
	nb := size / align
	return (nb + 1) * align
}
