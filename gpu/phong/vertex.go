// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"encoding/binary"
	"fmt"

	"cogentcore.org/shade/base/errors"
	"cogentcore.org/shade/gpu/shape"
	"cogentcore.org/shade/math32"
)

// Vertex is one vertex of a lit or textured mesh, laid out as the
// [VertexBuffer]: position at @location(0), tex coords at 1, normal at 2.
type Vertex struct {
	Position  math32.Vector3
	TexCoords math32.Vector2
	Normal    math32.Vector3
}

// VerticesFromMesh returns the vertices of a mesh, which must have
// normals and tex coords.
func VerticesFromMesh(ms *shape.Mesh) ([]Vertex, error) {
	if len(ms.Normals) != ms.NVertices() || len(ms.TexCoords) != ms.NVertices() {
		return nil, fmt.Errorf("phong.VerticesFromMesh: mesh %s has no normals or tex coords", ms.Name)
	}
	vtx := make([]Vertex, ms.NVertices())
	for i := range vtx {
		vtx[i] = Vertex{Position: ms.Positions[i], TexCoords: ms.TexCoords[i], Normal: ms.Normals[i]}
	}
	return vtx, nil
}

//////////////////////////////////////////////////////////////
// Uniform and vertex buffer data

// Bytes returns the 80 byte uniform data of the camera.
func (cm *Camera) Bytes() []byte {
	return errors.Must1(binary.Append(make([]byte, 0, CameraSize), binary.LittleEndian, cm))
}

// Bytes returns the 32 byte uniform data of the light.
func (lt *Light) Bytes() []byte {
	return errors.Must1(binary.Append(make([]byte, 0, LightSize), binary.LittleEndian, lt))
}

// VertexBytes returns the [VertexBuffer] data, 32 bytes per vertex.
func VertexBytes(vtx []Vertex) []byte {
	return errors.Must1(binary.Append(make([]byte, 0, len(vtx)*VertexStride), binary.LittleEndian, vtx))
}

// InstanceBytes returns the [InstanceBuffer] data, 100 bytes per instance:
// the four model matrix columns then the three normal matrix columns.
func InstanceBytes(insts []InstanceRaw) []byte {
	b := make([]byte, 0, len(insts)*InstanceStride)
	for i := range insts {
		b = errors.Must1(binary.Append(b, binary.LittleEndian, &insts[i].model))
		b = errors.Must1(binary.Append(b, binary.LittleEndian, &insts[i].normal))
	}
	return b
}

// PositionBytes returns the [PositionBuffer] data of a mesh,
// 12 bytes per vertex.
func PositionBytes(ms *shape.Mesh) []byte {
	return errors.Must1(binary.Append(make([]byte, 0, ms.NVertices()*PositionStride), binary.LittleEndian, ms.Positions))
}

// IndexBytes returns the uint32 index buffer data of a mesh.
func IndexBytes(ms *shape.Mesh) []byte {
	return errors.Must1(binary.Append(make([]byte, 0, 4*len(ms.Indices)), binary.LittleEndian, ms.Indices))
}
