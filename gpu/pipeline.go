// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log"
	"log/slog"
	"maps"
	"slices"
)

// Pipeline is the shared Base for Graphics Pipelines.
// It manages Shader program(s) that accomplish a specific
// type of rendering function, using Vars
// defined by the host layout.
// In the graphics context, each pipeline could handle a different
// class of materials (textures, Phong lighting, etc).
type Pipeline struct {
	// unique name of this pipeline
	Name string

	// Shaders contains actual shader code loaded for this pipeline.
	// A single shader can have multiple entry points: see Entries.
	Shaders map[string]*Shader

	// Entries contains the entry points into shader code,
	// which are what is actually called.
	Entries map[string]*ShaderEntry

	// Overrides are the values of pipeline-overridable constants,
	// by name, applied to the shader code by Config.
	Overrides map[string]any

	// code is the final shader code by shader name, set by Config.
	code map[string]string
}

// AddShader adds Shader with given name to the pipeline
func (pl *Pipeline) AddShader(name string) *Shader {
	if pl.Shaders == nil {
		pl.Shaders = make(map[string]*Shader)
	}
	if sh, has := pl.Shaders[name]; has {
		log.Printf("gpu.Pipeline AddShader: Shader named: %s already exists in pipline: %s\n", name, pl.Name)
		return sh
	}
	sh := NewShader(name)
	pl.Shaders[name] = sh
	return sh
}

// ShaderByName returns Shader by name.
// Returns nil if not found (error auto logged).
func (pl *Pipeline) ShaderByName(name string) *Shader {
	sh, ok := pl.Shaders[name]
	if !ok {
		slog.Error("gpu.Pipeline ShaderByName", "Shader", name, "not found in pipeline", pl.Name)
		return nil
	}
	return sh
}

// EntryByName returns ShaderEntry by name, which is Shader:Entry.
// Returns nil if not found (error auto logged).
func (pl *Pipeline) EntryByName(name string) *ShaderEntry {
	sh, ok := pl.Entries[name]
	if !ok {
		slog.Error("gpu.Pipeline EntryByName", "Entry", name, "not found in pipeline", pl.Name)
		return nil
	}
	return sh
}

// EntryByType returns ShaderEntry by ShaderType.
// Returns nil if not found.
func (pl *Pipeline) EntryByType(typ ShaderTypes) *ShaderEntry {
	for _, sh := range pl.Entries {
		if sh.Type == typ {
			return sh
		}
	}
	return nil
}

// AddEntry adds ShaderEntry for given shader, [ShaderTypes], and entry function name.
func (pl *Pipeline) AddEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	if pl.Entries == nil {
		pl.Entries = make(map[string]*ShaderEntry)
	}
	name := sh.Name + ":" + entry
	if se, has := pl.Entries[name]; has {
		slog.Error("gpu.Pipeline AddEntry", "ShaderEntry named", name, "already exists in pipline", pl.Name)
		return se
	}
	se := NewShaderEntry(sh, typ, entry)
	pl.Entries[name] = se
	return se
}

// SetOverride sets the value of a pipeline-overridable constant.
func (pl *Pipeline) SetOverride(name string, val any) *Pipeline {
	if pl.Overrides == nil {
		pl.Overrides = make(map[string]any)
	}
	pl.Overrides[name] = val
	return pl
}

// Code returns the final code of the named shader, with overrides
// applied. It is only valid after a successful Config.
func (pl *Pipeline) Code(shader string) string {
	return pl.code[shader]
}

// applyOverrides computes the final code of each shader.
// Each override is applied to the shaders that declare it,
// and it is an error if none does.
func (pl *Pipeline) applyOverrides() error {
	pl.code = make(map[string]string, len(pl.Shaders))
	used := make(map[string]bool)
	for _, shn := range slices.Sorted(maps.Keys(pl.Shaders)) {
		sh := pl.Shaders[shn]
		vals := make(map[string]any)
		for nm, v := range pl.Overrides {
			if sh.Info != nil && sh.Info.Override(nm) != nil {
				vals[nm] = v
				used[nm] = true
			}
		}
		code, err := SetOverrides(sh.Code, vals)
		if err != nil {
			return err
		}
		pl.code[shn] = code
	}
	for _, nm := range slices.Sorted(maps.Keys(pl.Overrides)) {
		if !used[nm] {
			return &ContractError{Pipeline: pl.Name, Mismatches: []Mismatch{{Kind: MissingOverride, Location: -1, Msg: "override " + nm + " is not declared by any shader"}}}
		}
	}
	return nil
}
