// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
)

// Mismatches are the kinds of disagreement between a shader
// and the host-side [Vars] layout.
type Mismatches int32

const (
	// MissingEntry is an entry point that the pipeline names
	// but the shader does not define.
	MissingEntry Mismatches = iota

	// MissingBinding is a shader binding with no host var at
	// the same group and binding.
	MissingBinding

	// RoleMismatch is a binding whose resource kind differs
	// between shader and host.
	RoleMismatch

	// TypeMismatch is a binding or vertex input whose type
	// differs between shader and host.
	TypeMismatch

	// LayoutMismatch is a uniform struct whose field order,
	// types, offsets or size differ between shader and host.
	LayoutMismatch

	// MissingLocation is a vertex input @location that no
	// host vertex buffer attribute supplies.
	MissingLocation

	// GroupLimit is a shader binding in a group beyond [MaxGroups].
	GroupLimit

	// MissingOverride is an override value set on the pipeline
	// for a constant that no shader declares.
	MissingOverride

	MismatchesN
)

var mismatchesNames = [...]string{"MissingEntry", "MissingBinding", "RoleMismatch", "TypeMismatch", "LayoutMismatch", "MissingLocation", "GroupLimit", "MissingOverride"}

func (mm Mismatches) String() string {
	if mm < 0 || mm >= MismatchesN {
		return fmt.Sprintf("Mismatches(%d)", int32(mm))
	}
	return mismatchesNames[mm]
}

// Mismatch is one disagreement found by [CheckContract].
type Mismatch struct {
	Kind Mismatches

	// Group and Binding of the resource, for binding mismatches.
	Group   int
	Binding int

	// Location of the vertex input, for vertex mismatches, else -1.
	Location int

	// Msg describes the mismatch.
	Msg string
}

func (mm Mismatch) String() string {
	return mm.Kind.String() + ": " + mm.Msg
}

// ContractError is returned when a pipeline's shader disagrees
// with the host-side data layout. It lists every mismatch found.
type ContractError struct {
	// Pipeline is the name of the pipeline being configured.
	Pipeline string

	// Mismatches found, in shader declaration order.
	Mismatches []Mismatch
}

func (ce *ContractError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "gpu: pipeline %s does not match the host layout", ce.Pipeline)
	for _, mm := range ce.Mismatches {
		sb.WriteString("\n\t")
		sb.WriteString(mm.String())
	}
	return sb.String()
}

// Has returns true if any mismatch is of the given kind.
func (ce *ContractError) Has(kind Mismatches) bool {
	for _, mm := range ce.Mismatches {
		if mm.Kind == kind {
			return true
		}
	}
	return false
}

// CheckContract compares the reflected shader interface against
// the host vars, for the given vertex and fragment entry points
// (either can be empty). It returns a *ContractError listing all
// mismatches, or nil if every binding and vertex input agrees.
func CheckContract(name string, si *ShaderInfo, vs *Vars, vertexEntry, fragmentEntry string) error {
	ce := &ContractError{Pipeline: name}
	add := func(kind Mismatches, group, binding, loc int, format string, args ...any) {
		ce.Mismatches = append(ce.Mismatches, Mismatch{Kind: kind, Group: group, Binding: binding, Location: loc, Msg: fmt.Sprintf(format, args...)})
	}
	for _, en := range []string{vertexEntry, fragmentEntry} {
		if en != "" && si.Entry(en) == nil {
			add(MissingEntry, 0, 0, -1, "entry point %s is not defined", en)
		}
	}
	for _, sb := range si.Bindings {
		if sb.Group >= MaxGroups {
			add(GroupLimit, sb.Group, sb.Binding, -1, "%s uses @group(%d), beyond the limit of %d groups", sb.Name, sb.Group, MaxGroups)
			continue
		}
		vr := vs.Binding(sb.Group, sb.Binding)
		if vr == nil {
			add(MissingBinding, sb.Group, sb.Binding, -1, "%s at @group(%d) @binding(%d) has no host variable", sb.Name, sb.Group, sb.Binding)
			continue
		}
		if vr.Role != sb.Role {
			add(RoleMismatch, sb.Group, sb.Binding, -1, "%s at @group(%d) @binding(%d) is a %s in the shader, but host %s is a %s", sb.Name, sb.Group, sb.Binding, sb.Role, vr.Name, vr.Role)
			continue
		}
		if sb.Type != vr.Type {
			add(TypeMismatch, sb.Group, sb.Binding, -1, "%s at @group(%d) @binding(%d) is %s in the shader, but host %s is %s", sb.Name, sb.Group, sb.Binding, sb.TypeName, vr.Name, vr.Type)
			continue
		}
		if sb.Struct != nil && vr.Struct != nil {
			if err := vr.Struct.Equal(sb.Struct); err != nil {
				add(LayoutMismatch, sb.Group, sb.Binding, -1, "%s: %v", sb.Name, err)
			}
		}
	}
	if vertexEntry != "" {
		if en := si.Entry(vertexEntry); en != nil {
			checkVertexInputs(en, vs, add)
		}
	}
	if len(ce.Mismatches) == 0 {
		return nil
	}
	return ce
}

func checkVertexInputs(en *ShaderEntryInfo, vs *Vars, add func(Mismatches, int, int, int, string, ...any)) {
	vg := vs.VertexGroup()
	for _, in := range en.Inputs {
		var vr *Var
		col := 0
		if vg != nil {
			vr, col = vg.LocationVar(in.Location)
		}
		if vr == nil {
			add(MissingLocation, VertexGroup, 0, in.Location, "%s at @location(%d) is not supplied by any vertex buffer", in.Name, in.Location)
			continue
		}
		_, ct := vr.Type.VertexColumns()
		if ct != in.Type {
			add(TypeMismatch, VertexGroup, 0, in.Location, "%s at @location(%d) is %s in the shader, but host %s column %d is %s", in.Name, in.Location, in.TypeName, vr.Name, col, ct.WGSLName())
		}
	}
}
