// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log"
	"strings"

	"cogentcore.org/shade/base/errors"
	"cogentcore.org/shade/base/indent"

	"github.com/cogentcore/webgpu/wgpu"
)

// Debug controls extra logging of binding and pipeline problems.
var Debug = false

// MaxGroups is the limit on the number of bind groups imposed
// by the WebGPU system on Web platforms.
const MaxGroups = 4

// Vars are all the variables that are used by a pipeline,
// organized into Groups (optionally including the special VertexGroup).
// Vars are allocated to bindings sequentially in the order added.
type Vars struct {
	// map of Groups, by group number: VertexGroup is -2,
	// rest are added incrementally.
	Groups map[int]*VarGroup

	// map of vars by different roles across all Groups, updated in Config(),
	// after all vars added.
	RoleMap map[VarRoles][]*Var

	// true if a VertexGroup has been added
	hasVertex bool
}

// AddVertexGroup adds a new Vertex Group.
// This is a special Group holding the vertex and instance buffers.
func (vs *Vars) AddVertexGroup() *VarGroup {
	if vs.Groups == nil {
		vs.Groups = make(map[int]*VarGroup)
	}
	vg := &VarGroup{Name: "Vertex", Group: VertexGroup, Role: Vertex}
	vs.Groups[VertexGroup] = vg
	vs.hasVertex = true
	return vg
}

// VertexGroup returns the Vertex Group, or nil if none was added.
func (vs *Vars) VertexGroup() *VarGroup {
	return vs.Groups[VertexGroup]
}

// AddGroup adds a new non-Vertex Group for holding data for given Role
// (Uniform, SampledTexture, etc).
// Groups are automatically numbered sequentially in order added.
// Name is optional and just provides documentation.
// Important limit: there can only be a maximum of 4 Groups!
func (vs *Vars) AddGroup(role VarRoles, name ...string) *VarGroup {
	if vs.Groups == nil {
		vs.Groups = make(map[int]*VarGroup)
	}
	idx := vs.NGroups()
	if idx >= MaxGroups {
		panic("gpu.AddGroup: there is a hard limit of 4 on the number of VarGroups imposed by the WebGPU system, on Web platforms!")
	}
	vg := &VarGroup{Group: idx, Role: role}
	if len(name) == 1 {
		vg.Name = name[0]
	}
	vs.Groups[idx] = vg
	return vg
}

// VarByName returns Var by name in given group number
func (vs *Vars) VarByName(group int, name string) *Var {
	return errors.Log1(vs.VarByNameTry(group, name))
}

// VarByNameTry returns Var by name in given group number,
// returning error if not found
func (vs *Vars) VarByNameTry(group int, name string) (*Var, error) {
	vg, err := vs.GroupTry(group)
	if err != nil {
		return nil, err
	}
	return vg.VarByNameTry(name)
}

// Binding returns the bound var at given group and binding, or nil.
func (vs *Vars) Binding(group, binding int) *Var {
	vg, has := vs.Groups[group]
	if !has || group == VertexGroup {
		return nil
	}
	if binding < 0 || binding >= len(vg.Vars) {
		return nil
	}
	return vg.Vars[binding]
}

// Config must be called after all variables have been added.
// Configures all Groups and also does validation, returning error.
func (vs *Vars) Config() error {
	ns := vs.NGroups()
	var errs []error
	vs.RoleMap = make(map[VarRoles][]*Var)
	for gi := vs.StartGroup(); gi < ns; gi++ {
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		if err := vg.Config(); err != nil {
			errs = append(errs, err)
		}
		for ri, rl := range vg.RoleMap {
			vs.RoleMap[ri] = append(vs.RoleMap[ri], rl...)
		}
	}
	return errors.Join(errs...)
}

// StringDoc returns info on variables
func (vs *Vars) StringDoc() string {
	ispc := 4
	var sb strings.Builder
	ns := vs.NGroups()
	for gi := vs.StartGroup(); gi < ns; gi++ {
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("Group: %d %s\n", vg.Group, vg.Name))
		if gi == VertexGroup {
			for _, vb := range vg.Buffers {
				sb.WriteString(fmt.Sprintf("%sBuffer: %d %s\t(stride: %d, step: %s)\n", indent.Spaces(1, ispc), vb.Slot, vb.Name, vb.Stride, stepModeName(vb.StepMode)))
				for _, vr := range vb.Vars {
					sb.WriteString(fmt.Sprintf("%sVar: %s\n", indent.Spaces(2, ispc), vr.String()))
				}
			}
			continue
		}
		for ri := Vertex; ri < VarRolesN; ri++ {
			rl, has := vg.RoleMap[ri]
			if !has || len(rl) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("%sRole: %s\n", indent.Spaces(1, ispc), ri.String()))
			for _, vr := range rl {
				sb.WriteString(fmt.Sprintf("%sVar: %s\n", indent.Spaces(2, ispc), vr.String()))
			}
		}
	}
	return sb.String()
}

func stepModeName(sm wgpu.VertexStepMode) string {
	if sm == wgpu.VertexStepModeInstance {
		return "instance"
	}
	return "vertex"
}

// NGroups returns the number of regular non-VertexGroup groups
func (vs *Vars) NGroups() int {
	ex := 0
	if vs.hasVertex {
		ex++
	}
	return len(vs.Groups) - ex
}

// StartGroup returns the starting group to use for iterating groups
func (vs *Vars) StartGroup() int {
	if vs.hasVertex {
		return VertexGroup
	}
	return 0
}

// GroupTry returns group by index, returning nil and error if not found
func (vs *Vars) GroupTry(group int) (*VarGroup, error) {
	vg, has := vs.Groups[group]
	if !has {
		err := fmt.Errorf("gpu.Vars:GroupTry gp number %d not found", group)
		if Debug {
			log.Println(err)
		}
		return nil, err
	}
	return vg, nil
}

// VertexLayout returns WebGPU vertex layout, for VertexGroup only!
func (vs *Vars) VertexLayout() []wgpu.VertexBufferLayout {
	if vs.hasVertex {
		return vs.Groups[VertexGroup].vertexLayout()
	}
	return nil
}

// BindGroupLayoutDescriptors returns the WebGPU bind group layout
// descriptors, one for each VarGroup >= 0, in group order.
func (vs *Vars) BindGroupLayoutDescriptors() ([]wgpu.BindGroupLayoutDescriptor, error) {
	ngp := vs.NGroups()
	lays := make([]wgpu.BindGroupLayoutDescriptor, 0, ngp)
	for gi := 0; gi < ngp; gi++ {
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		ents, err := vg.BindLayoutEntries()
		if err != nil {
			return nil, err
		}
		lays = append(lays, wgpu.BindGroupLayoutDescriptor{
			Label:   vg.Name,
			Entries: ents,
		})
	}
	return lays, nil
}
