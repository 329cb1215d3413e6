// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/cogentcore/webgpu/wgpu"
)

// Shader manages a single WGSL shader program, which can have
// multiple entry points. See [ShaderEntry] for entry points into Shaders.
type Shader struct {
	Name string

	// Code is the WGSL source, after #include processing.
	Code string

	// Info is the reflected binding interface of Code.
	Info *ShaderInfo
}

// NewShader returns a new Shader with given name.
func NewShader(name string) *Shader {
	return &Shader{Name: name}
}

// OpenFileFS loads given WGSL file from the given fs,
// processing #include statements relative to its directory.
func (sh *Shader) OpenFileFS(fsys fs.FS, fname string) error {
	b, err := fs.ReadFile(fsys, fname)
	if err != nil {
		return fmt.Errorf("gpu.Shader:OpenFileFS %s: %w", sh.Name, err)
	}
	code, err := IncludeFS(fsys, path.Dir(fname), string(b))
	if err != nil {
		return err
	}
	return sh.OpenCode(code)
}

// OpenCode sets the WGSL code and reflects its interface.
func (sh *Shader) OpenCode(code string) error {
	si, err := ReflectWGSL(code)
	if err != nil {
		return fmt.Errorf("gpu.Shader:OpenCode %s: %w", sh.Name, err)
	}
	sh.Code = code
	sh.Info = si
	return nil
}

// ModuleDescriptor returns the WebGPU shader module descriptor
// for the given code, which is normally Code with overrides applied.
func (sh *Shader) ModuleDescriptor(code string) wgpu.ShaderModuleDescriptor {
	return wgpu.ShaderModuleDescriptor{
		Label: sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: code,
		},
	}
}

// ShaderEntry is an entry point into a Shader.  There can be multiple
// entry points per shader.
type ShaderEntry struct {

	// Shader has the code.
	Shader *Shader

	// Type of shader entry.
	Type ShaderTypes

	// Entry is the name of the function to call for this Entry.
	// Conventionally, it is some variant on "main"
	Entry string
}

// NewShaderEntry returns a new ShaderEntry with given settings
func NewShaderEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	return &ShaderEntry{Shader: sh, Type: typ, Entry: entry}
}
