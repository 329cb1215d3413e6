// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log"

	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// VertexGroup is the group number for Vertex and Index variables,
	// which have special treatment.
	VertexGroup = -2
)

// VarGroup contains a group of Var variables, accessed by @group number
// in shader code, with @binding allocated sequentially within group
// (or @location in the case of VertexGroup).
type VarGroup struct {
	// name is optional and just provides documentation.
	Name string

	// Group index is assigned sequentially, with special VertexGroup
	// having a negative index: -2.
	Group int

	// Role is default Role of variables within this group.
	Role VarRoles

	// variables in order
	Vars []*Var

	// map of vars by name; names must be unique
	VarMap map[string]*Var

	// map of vars by different roles, within this group.
	// Updated in Config(), after all vars added
	RoleMap map[VarRoles][]*Var

	// Buffers are the vertex buffers, for the VertexGroup only.
	Buffers []*VertexBuffer
}

// Add adds a new variable of given type, role, and shaders to the group.
// The binding is the index of the var within the group.
func (vg *VarGroup) Add(name string, typ Types, shaders ...ShaderTypes) *Var {
	return vg.AddRole(name, typ, vg.Role, shaders...)
}

// AddRole adds a new variable with a role that differs from the
// group's default Role, for example a [SamplerRole] var in a
// texture group.
func (vg *VarGroup) AddRole(name string, typ Types, role VarRoles, shaders ...ShaderTypes) *Var {
	vr := &Var{}
	vr.Init(name, typ, role, vg.Group, shaders...)
	vr.Binding = len(vg.Vars)
	vg.addVar(vr)
	return vr
}

// AddStruct adds a new uniform struct variable with the given layout.
func (vg *VarGroup) AddStruct(name string, sl *StructLayout, shaders ...ShaderTypes) *Var {
	vr := vg.Add(name, Struct, shaders...)
	vr.Struct = sl
	vr.SizeOf = sl.Size
	return vr
}

// AddBuffer adds a new vertex buffer in the next slot.
// Only valid for the VertexGroup.
func (vg *VarGroup) AddBuffer(name string, step wgpu.VertexStepMode) *VertexBuffer {
	vb := &VertexBuffer{Name: name, Slot: len(vg.Buffers), StepMode: step}
	vg.Buffers = append(vg.Buffers, vb)
	return vb
}

func (vg *VarGroup) addVar(vr *Var) {
	if vg.VarMap == nil {
		vg.VarMap = make(map[string]*Var)
	}
	vg.Vars = append(vg.Vars, vr)
	vg.VarMap[vr.Name] = vr
}

// VarByNameTry returns Var by name, returning error if not found
func (vg *VarGroup) VarByNameTry(name string) (*Var, error) {
	vr, ok := vg.VarMap[name]
	if !ok {
		err := fmt.Errorf("gpu.VarGroup:VarByNameTry variable named %q not found in group %d", name, vg.Group)
		if Debug {
			log.Println(err)
		}
		return nil, err
	}
	return vr, nil
}

// Config must be called after all variables have been added.
// It collects the vertex buffer vars, builds the RoleMap, and
// checks that names and locations are unique.
func (vg *VarGroup) Config() error {
	if vg.Group == VertexGroup {
		vg.Vars = nil
		vg.VarMap = nil
		for _, vb := range vg.Buffers {
			for _, vr := range vb.Vars {
				if _, has := vg.VarMap[vr.Name]; has {
					return fmt.Errorf("gpu.VarGroup:Config vertex variable %q added twice", vr.Name)
				}
				vg.addVar(vr)
			}
		}
		locs := make(map[int]*Var)
		for _, vr := range vg.Vars {
			for li := range vr.Locations() {
				loc := vr.Location + li
				if ov, has := locs[loc]; has {
					return fmt.Errorf("gpu.VarGroup:Config vertex variables %q and %q both use @location(%d)", ov.Name, vr.Name, loc)
				}
				locs[loc] = vr
			}
		}
	}
	vg.RoleMap = make(map[VarRoles][]*Var)
	for _, vr := range vg.Vars {
		vg.RoleMap[vr.Role] = append(vg.RoleMap[vr.Role], vr)
	}
	return nil
}

// BindLayoutEntries returns the WebGPU layout entries for
// all the vars in this group. Not valid for the VertexGroup.
func (vg *VarGroup) BindLayoutEntries() ([]wgpu.BindGroupLayoutEntry, error) {
	ents := make([]wgpu.BindGroupLayoutEntry, 0, len(vg.Vars))
	for _, vr := range vg.Vars {
		ent, err := vr.bindLayoutEntry()
		if err != nil {
			return nil, err
		}
		ents = append(ents, ent)
	}
	return ents, nil
}

// vertexLayout returns WebGPU vertex layouts, one per buffer.
func (vg *VarGroup) vertexLayout() []wgpu.VertexBufferLayout {
	lays := make([]wgpu.VertexBufferLayout, len(vg.Buffers))
	for i, vb := range vg.Buffers {
		lays[i] = vb.Layout()
	}
	return lays
}

// LocationVar returns the vertex var that occupies the given @location,
// and the column index within it (for matrix types), or nil.
func (vg *VarGroup) LocationVar(loc int) (*Var, int) {
	for _, vb := range vg.Buffers {
		for _, vr := range vb.Vars {
			if loc >= vr.Location && loc < vr.Location+vr.Locations() {
				return vr, loc - vr.Location
			}
		}
	}
	return nil, 0
}

// BufferOf returns the vertex buffer that holds the given var, or nil.
func (vg *VarGroup) BufferOf(vr *Var) *VertexBuffer {
	for _, vb := range vg.Buffers {
		for _, bv := range vb.Vars {
			if bv == vr {
				return vb
			}
		}
	}
	return nil
}
