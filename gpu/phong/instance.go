// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"cogentcore.org/shade/math32"
)

// Instance is the pose of one drawn instance of a mesh.
type Instance struct {
	Position math32.Vector3

	Rotation math32.Quat

	// Scale defaults to 1 when zero.
	Scale math32.Vector3
}

// NewInstance returns an unscaled instance at given position and rotation.
func NewInstance(pos math32.Vector3, rot math32.Quat) Instance {
	return Instance{Position: pos, Rotation: rot, Scale: math32.Vec3(1, 1, 1)}
}

// Model returns the model matrix of the pose.
func (in *Instance) Model() *math32.Matrix4 {
	sc := in.Scale
	if sc == (math32.Vector3{}) {
		sc = math32.Vec3(1, 1, 1)
	}
	m := &math32.Matrix4{}
	m.SetTransform(in.Position, in.Rotation.Normal(), sc)
	return m
}

// Raw returns the per-instance vertex data for the pose.
func (in *Instance) Raw() InstanceRaw {
	return NewInstanceRaw(in.Model())
}

// InstanceRaw is the per-instance vertex data: the model matrix and
// its normal matrix. It can only be made by [NewInstanceRaw], which
// derives the normal matrix, so the two always agree.
type InstanceRaw struct {
	model  math32.Matrix4
	normal math32.Matrix3
}

// NewInstanceRaw returns the instance data for the given model matrix,
// with the normal matrix set to the inverse-transpose of its upper-left
// 3x3. For a rigid pose that is the rotation itself. A singular matrix
// falls back to the upper-left 3x3 unchanged.
func NewInstanceRaw(model *math32.Matrix4) InstanceRaw {
	ir := InstanceRaw{model: *model}
	ir.normal = NormalMatrix(model)
	return ir
}

// NormalMatrix returns the matrix that transforms model-space normals
// into world space for the given model matrix.
func NormalMatrix(model *math32.Matrix4) math32.Matrix3 {
	m3 := math32.Matrix3FromMatrix4(model)
	inv, err := m3.Inverse()
	if err != nil {
		return m3
	}
	return inv.Transpose()
}

// Model returns the model matrix.
func (ir *InstanceRaw) Model() *math32.Matrix4 {
	return &ir.model
}

// Normal returns the normal matrix.
func (ir *InstanceRaw) Normal() *math32.Matrix3 {
	return &ir.normal
}
