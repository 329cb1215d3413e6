// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
)

// Field is one member of a [StructLayout].
type Field struct {
	// Name of the field as declared in WGSL.
	Name string

	// Type of the field.
	Type Types

	// Offset in bytes from the start of the struct.
	Offset int

	// Location is the @location attribute when the struct is used
	// as a shader stage input or output, and -1 otherwise.
	Location int
}

// StructLayout is the memory layout of a WGSL struct, computed with
// the WGSL host-shareable rules: each member is placed at the next
// multiple of its alignment, and the struct size is rounded up to
// the largest member alignment.
type StructLayout struct {
	// Name of the struct type.
	Name string

	// Fields in declaration order.
	Fields []Field

	// Size of the struct in bytes.
	Size int

	// Align is the struct alignment: the largest member alignment.
	Align int
}

// NewStructLayout returns the layout of a struct with the given
// name and fields, given as alternating field names and [Types].
//
//	gpu.NewStructLayout("Camera", "eye_position", gpu.Float32Vector4, "view_projection", gpu.Float32Matrix4)
func NewStructLayout(name string, fields ...any) *StructLayout {
	sl := &StructLayout{Name: name}
	for i := 0; i+1 < len(fields); i += 2 {
		sl.Add(fields[i].(string), fields[i+1].(Types))
	}
	return sl
}

// Add adds a field of given type at the next aligned offset,
// updating the struct size.
func (sl *StructLayout) Add(name string, typ Types) *Field {
	return sl.AddLocation(name, typ, -1)
}

// AddLocation adds a field with a shader @location attribute.
func (sl *StructLayout) AddLocation(name string, typ Types, location int) *Field {
	end := 0
	if n := len(sl.Fields); n > 0 {
		lf := sl.Fields[n-1]
		end = lf.Offset + lf.Type.WGSLSize()
	}
	al := max(typ.WGSLAlign(), 1)
	sl.Fields = append(sl.Fields, Field{Name: name, Type: typ, Offset: MemSizeAlign(end, al), Location: location})
	sl.Align = max(sl.Align, al)
	lf := sl.Fields[len(sl.Fields)-1]
	sl.Size = MemSizeAlign(lf.Offset+typ.WGSLSize(), sl.Align)
	return &sl.Fields[len(sl.Fields)-1]
}

// FieldByName returns the field with the given name, or nil.
func (sl *StructLayout) FieldByName(name string) *Field {
	for i := range sl.Fields {
		if sl.Fields[i].Name == name {
			return &sl.Fields[i]
		}
	}
	return nil
}

// Equal returns an error describing the first difference between
// this layout and other in field order, type, offset or total size,
// or nil if they are the same. Field names are not compared.
func (sl *StructLayout) Equal(other *StructLayout) error {
	if len(sl.Fields) != len(other.Fields) {
		return fmt.Errorf("struct %s has %d fields, but %s has %d", sl.Name, len(sl.Fields), other.Name, len(other.Fields))
	}
	for i, f := range sl.Fields {
		of := other.Fields[i]
		if f.Type != of.Type {
			return fmt.Errorf("field %d %s.%s is %s, but %s.%s is %s", i, sl.Name, f.Name, f.Type, other.Name, of.Name, of.Type)
		}
		if f.Offset != of.Offset {
			return fmt.Errorf("field %d %s.%s is at offset %d, but %s.%s is at %d", i, sl.Name, f.Name, f.Offset, other.Name, of.Name, of.Offset)
		}
	}
	if sl.Size != other.Size {
		return fmt.Errorf("struct %s has size %d, but %s has size %d", sl.Name, sl.Size, other.Name, other.Size)
	}
	return nil
}

func (sl *StructLayout) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "struct %s (size: %d, align: %d)\n", sl.Name, sl.Size, sl.Align)
	for _, f := range sl.Fields {
		fmt.Fprintf(&sb, "\t@%d\t%s: %s\n", f.Offset, f.Name, f.Type.WGSLName())
	}
	return sb.String()
}
