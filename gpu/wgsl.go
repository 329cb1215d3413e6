// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ShaderInfo is the binding interface of a WGSL module as declared
// in its source: the struct types, the bound variables, the
// entry points with their located inputs, and the override constants.
type ShaderInfo struct {
	// Structs are the struct types, by name, with field layouts.
	// Fields of stage-input structs carry their @location.
	Structs map[string]*StructLayout

	// Bindings are the @group @binding variables in source order.
	Bindings []ShaderBinding

	// Entries are the entry point functions in source order.
	Entries []ShaderEntryInfo

	// Overrides are the pipeline-overridable constants in source order.
	Overrides []ShaderOverride
}

// ShaderBinding is a module-scope variable bound at a @group and @binding.
type ShaderBinding struct {
	Group   int
	Binding int
	Name    string

	// Role is set from the address space and the type:
	// var<uniform> is Uniform, var<storage> is Storage,
	// textures are SampledTexture and samplers are SamplerRole.
	Role VarRoles

	// TypeName as written in the source.
	TypeName string

	// Type is the resolved type, which is Struct for struct types.
	Type Types

	// Struct is the layout for struct types.
	Struct *StructLayout
}

// ShaderInput is one @location input of an entry point.
type ShaderInput struct {
	Location int
	Name     string
	TypeName string
	Type     Types
}

// ShaderEntryInfo is an entry point function.
type ShaderEntryInfo struct {
	Name   string
	Stage  ShaderTypes
	Inputs []ShaderInput
}

// ShaderOverride is a pipeline-overridable constant.
type ShaderOverride struct {
	Name     string
	TypeName string
	Default  string
}

// Entry returns the entry point with given name, or nil.
func (si *ShaderInfo) Entry(name string) *ShaderEntryInfo {
	for i := range si.Entries {
		if si.Entries[i].Name == name {
			return &si.Entries[i]
		}
	}
	return nil
}

// Binding returns the binding at given group and binding, or nil.
func (si *ShaderInfo) Binding(group, binding int) *ShaderBinding {
	for i := range si.Bindings {
		sb := &si.Bindings[i]
		if sb.Group == group && sb.Binding == binding {
			return sb
		}
	}
	return nil
}

// Override returns the override constant with given name, or nil.
func (si *ShaderInfo) Override(name string) *ShaderOverride {
	for i := range si.Overrides {
		if si.Overrides[i].Name == name {
			return &si.Overrides[i]
		}
	}
	return nil
}

var (
	wgslLineComment = regexp.MustCompile(`//[^\n]*`)
	wgslStruct      = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	wgslBinding     = regexp.MustCompile(`@group\(\s*(\d+)\s*\)\s*@binding\(\s*(\d+)\s*\)\s*var(?:<\s*(\w+)[^>]*>)?\s+(\w+)\s*:\s*([^;]+);`)
	wgslEntry       = regexp.MustCompile(`@(vertex|fragment|compute)(?:\s*@workgroup_size\([^)]*\))?\s+fn\s+(\w+)\s*\(`)
	wgslOverride    = regexp.MustCompile(`override\s+(\w+)\s*(?::\s*(\w+))?\s*(?:=\s*([^;]+))?;`)
	wgslLocation    = regexp.MustCompile(`@location\(\s*(\d+)\s*\)`)
	wgslAttribute   = regexp.MustCompile(`@\w+(?:\([^)]*\))?`)
)

var wgslStages = map[string]ShaderTypes{
	"vertex":   VertexShader,
	"fragment": FragmentShader,
	"compute":  ComputeShader,
}

// ReflectWGSL parses the module-scope declarations of the given
// WGSL code that take part in the host interface. It is not a full
// WGSL parser: it supports the declaration forms written by this
// module's shaders, and returns an error for any it cannot resolve.
func ReflectWGSL(code string) (*ShaderInfo, error) {
	src := wgslLineComment.ReplaceAllString(code, "")
	si := &ShaderInfo{Structs: make(map[string]*StructLayout)}
	for _, m := range wgslStruct.FindAllStringSubmatch(src, -1) {
		sl, err := reflectStruct(m[1], m[2])
		if err != nil {
			return nil, err
		}
		si.Structs[sl.Name] = sl
	}
	for _, m := range wgslBinding.FindAllStringSubmatch(src, -1) {
		sb := ShaderBinding{Name: m[4], TypeName: strings.TrimSpace(m[5])}
		sb.Group, _ = strconv.Atoi(m[1])
		sb.Binding, _ = strconv.Atoi(m[2])
		if err := si.resolveBinding(&sb, m[3]); err != nil {
			return nil, err
		}
		si.Bindings = append(si.Bindings, sb)
	}
	for _, m := range wgslEntry.FindAllStringSubmatchIndex(src, -1) {
		en := ShaderEntryInfo{Name: src[m[4]:m[5]], Stage: wgslStages[src[m[2]:m[3]]]}
		params, ok := balancedParens(src[m[1]:])
		if !ok {
			return nil, fmt.Errorf("gpu.ReflectWGSL: entry %s: unbalanced parameter list", en.Name)
		}
		ins, err := si.reflectParams(en.Name, params)
		if err != nil {
			return nil, err
		}
		en.Inputs = ins
		si.Entries = append(si.Entries, en)
	}
	for _, m := range wgslOverride.FindAllStringSubmatch(src, -1) {
		si.Overrides = append(si.Overrides, ShaderOverride{Name: m[1], TypeName: m[2], Default: strings.TrimSpace(m[3])})
	}
	return si, nil
}

// reflectStruct parses the body of a struct declaration.
func reflectStruct(name, body string) (*StructLayout, error) {
	sl := &StructLayout{Name: name}
	for _, mem := range splitTopLevel(body) {
		loc := -1
		if lm := wgslLocation.FindStringSubmatch(mem); lm != nil {
			loc, _ = strconv.Atoi(lm[1])
		}
		builtin := strings.Contains(mem, "@builtin")
		fname, tname, ok := splitDecl(wgslAttribute.ReplaceAllString(mem, ""))
		if !ok {
			return nil, fmt.Errorf("gpu.ReflectWGSL: struct %s: cannot parse member %q", name, strings.TrimSpace(mem))
		}
		typ, ok := TypeFromWGSL(tname)
		if !ok {
			return nil, fmt.Errorf("gpu.ReflectWGSL: struct %s: member %s has unsupported type %s", name, fname, tname)
		}
		if builtin {
			continue
		}
		sl.AddLocation(fname, typ, loc)
	}
	return sl, nil
}

// resolveBinding sets the role and type of a binding.
func (si *ShaderInfo) resolveBinding(sb *ShaderBinding, space string) error {
	switch {
	case space == "uniform":
		sb.Role = Uniform
	case space == "storage":
		sb.Role = Storage
	case strings.HasPrefix(sb.TypeName, "texture_"):
		sb.Role = SampledTexture
	case strings.HasPrefix(sb.TypeName, "sampler"):
		sb.Role = SamplerRole
	default:
		return fmt.Errorf("gpu.ReflectWGSL: binding %s at @group(%d) @binding(%d) has unsupported type %s", sb.Name, sb.Group, sb.Binding, sb.TypeName)
	}
	if sl, ok := si.Structs[sb.TypeName]; ok {
		sb.Type = Struct
		sb.Struct = sl
		return nil
	}
	tp, ok := TypeFromWGSL(sb.TypeName)
	if !ok {
		return fmt.Errorf("gpu.ReflectWGSL: binding %s has unknown type %s", sb.Name, sb.TypeName)
	}
	sb.Type = tp
	return nil
}

// reflectParams returns the located inputs of an entry point,
// expanding struct-typed parameters into their located fields.
func (si *ShaderInfo) reflectParams(entry, params string) ([]ShaderInput, error) {
	var ins []ShaderInput
	for _, p := range splitTopLevel(params) {
		lm := wgslLocation.FindStringSubmatch(p)
		pname, tname, ok := splitDecl(wgslAttribute.ReplaceAllString(p, ""))
		if !ok {
			return nil, fmt.Errorf("gpu.ReflectWGSL: entry %s: cannot parse parameter %q", entry, strings.TrimSpace(p))
		}
		if sl, ok := si.Structs[tname]; ok {
			for _, f := range sl.Fields {
				if f.Location >= 0 {
					ins = append(ins, ShaderInput{Location: f.Location, Name: pname + "." + f.Name, TypeName: f.Type.WGSLName(), Type: f.Type})
				}
			}
			continue
		}
		if lm == nil {
			continue // builtin
		}
		typ, ok := TypeFromWGSL(tname)
		if !ok {
			return nil, fmt.Errorf("gpu.ReflectWGSL: entry %s: parameter %s has unsupported type %s", entry, pname, tname)
		}
		loc, _ := strconv.Atoi(lm[1])
		ins = append(ins, ShaderInput{Location: loc, Name: pname, TypeName: tname, Type: typ})
	}
	sort.Slice(ins, func(i, j int) bool { return ins[i].Location < ins[j].Location })
	return ins, nil
}

// balancedParens returns the text up to the ")" that closes
// an already opened "(".
func balancedParens(s string) (string, bool) {
	depth := 1
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i], true
			}
		}
	}
	return "", false
}

// splitDecl splits "name: type" into its parts.
func splitDecl(s string) (name, typ string, ok bool) {
	name, typ, ok = strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	typ = strings.TrimSpace(typ)
	return name, typ, ok && name != "" && typ != ""
}

// splitTopLevel splits a comma-separated list, ignoring commas
// inside <> or () pairs, and drops empty items.
func splitTopLevel(s string) []string {
	var items []string
	depth := 0
	st := 0
	for i, r := range s {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, s[st:i])
				st = i + 1
			}
		}
	}
	items = append(items, s[st:])
	out := items[:0]
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

// SetOverrides returns the code with the default values of the
// given override constants replaced. Values can be bool, int,
// int32, uint32, float32 or float64. It is an error to set an
// override that the code does not declare.
func SetOverrides(code string, vals map[string]any) (string, error) {
	names := make([]string, 0, len(vals))
	for nm := range vals {
		names = append(names, nm)
	}
	sort.Strings(names)
	for _, nm := range names {
		lit, err := wgslLiteral(vals[nm])
		if err != nil {
			return "", fmt.Errorf("gpu.SetOverrides: %s: %w", nm, err)
		}
		re := regexp.MustCompile(`override\s+` + regexp.QuoteMeta(nm) + `\b\s*(:\s*\w+)?\s*(=\s*[^;]+)?;`)
		if !re.MatchString(code) {
			return "", fmt.Errorf("gpu.SetOverrides: override %s is not declared", nm)
		}
		code = re.ReplaceAllString(code, "override "+nm+"${1} = "+lit+";")
	}
	return code, nil
}

func wgslLiteral(v any) (string, error) {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.Itoa(int(x)), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10) + "u", nil
	case float32:
		return floatLiteral(float64(x), 32), nil
	case float64:
		return floatLiteral(x, 64), nil
	}
	return "", fmt.Errorf("unsupported override value type %T", v)
}

func floatLiteral(x float64, bits int) string {
	s := strconv.FormatFloat(x, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
