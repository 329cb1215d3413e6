// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phong provides the shading core of the renderer: the camera,
// light and instance data and their byte layouts, the WGSL programs of
// the pipeline variants, and a CPU evaluation of every shader stage.
package phong

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"cogentcore.org/shade/base/errors"
	"cogentcore.org/shade/base/ordmap"
	"cogentcore.org/shade/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/*.wgsl shaders/lib/*.wgsl
var shaders embed.FS

// Shaders returns the file system of the WGSL programs,
// rooted above the shaders directory.
func Shaders() fs.FS {
	return shaders
}

// Phong holds the configured graphics pipelines of every variant,
// each checked against its host layout. All pipelines share the
// same bind group layouts.
//
// The lit pipelines are built for the Lighting model, so changing it
// requires calling Config again.
type Phong struct {
	// Lighting is the lighting model of the lit variants.
	Lighting LightingModel

	// ShaderFS holds the WGSL programs, rooted above a shaders
	// directory as [Shaders] is. If nil, the embedded programs are used.
	ShaderFS fs.FS

	// Pipelines by [PipelineName], in variant order.
	Pipelines ordmap.Map[string, *gpu.GraphicsPipeline]

	// vars is the host layout of each variant.
	vars [VariantsN]*gpu.Vars

	// overall lock on system, use Lock, Unlock
	sync.Mutex
}

// NewPhong returns a configured Phong for the given lighting model.
func NewPhong(lm LightingModel) (*Phong, error) {
	ph := &Phong{Lighting: lm}
	if err := ph.Config(); err != nil {
		return nil, err
	}
	return ph, nil
}

// NewPhongFS returns a Phong configured for the given lighting
// model from the WGSL programs of the given file system, which is
// rooted above a shaders directory. It is used to check edited
// programs against the host layouts.
func NewPhongFS(lm LightingModel, fsys fs.FS) (*Phong, error) {
	ph := &Phong{Lighting: lm, ShaderFS: fsys}
	if err := ph.Config(); err != nil {
		return nil, err
	}
	return ph, nil
}

// Config builds every pipeline variant from the embedded shaders and
// checks it against its host layout. It returns all the failures, in
// which layout mismatches are a *[gpu.ContractError].
func (ph *Phong) Config() error {
	ph.Lock()
	defer ph.Unlock()

	ph.Pipelines.Reset()
	var errs []error
	for _, vt := range AllVariants() {
		vs, err := NewVars(vt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ph.vars[vt] = vs
		for _, topo := range vt.Topologies() {
			pl, err := ph.configPipeline(vt, topo, vs)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			ph.Pipelines.Add(pl.Name, pl)
		}
	}
	if gpu.Debug && len(errs) == 0 {
		slog.Info("phong.Config", "pipelines", ph.Pipelines.Len(), "lighting", ph.Lighting.String())
	}
	return errors.Join(errs...)
}

// configPipeline makes and configures the pipeline of the given variant
// and topology against the given vars.
func (ph *Phong) configPipeline(vt Variants, topo gpu.Topologies, vs *gpu.Vars) (*gpu.GraphicsPipeline, error) {
	pl := gpu.NewGraphicsPipeline(PipelineName(vt, topo))
	vt.ConfigPipeline(pl, topo)
	name := vt.ShaderName()
	sh := pl.AddShader(name)
	fsys := ph.ShaderFS
	if fsys == nil {
		fsys = shaders
	}
	if err := sh.OpenFileFS(fsys, "shaders/"+name+".wgsl"); err != nil {
		return nil, err
	}
	pl.AddEntry(sh, gpu.VertexShader, "vs_main")
	pl.AddEntry(sh, gpu.FragmentShader, "fs_main")
	if vt.IsLit() {
		for nm, v := range ph.Lighting.Overrides() {
			pl.SetOverride(nm, v)
		}
	}
	if err := pl.Config(vs); err != nil {
		return nil, err
	}
	return pl, nil
}

// Pipeline returns the pipeline for the given variant and topology.
func (ph *Phong) Pipeline(vt Variants, topo gpu.Topologies) (*gpu.GraphicsPipeline, error) {
	ph.Lock()
	defer ph.Unlock()
	pl, ok := ph.Pipelines.ValueByKeyTry(PipelineName(vt, topo))
	if !ok {
		return nil, fmt.Errorf("phong.Phong:Pipeline: no %s pipeline for %s", topo, vt)
	}
	return pl, nil
}

// Vars returns the host layout of the given variant.
func (ph *Phong) Vars(vt Variants) *gpu.Vars {
	return ph.vars[vt]
}

// Code returns the final WGSL code of the given variant,
// with the lighting overrides applied.
func (ph *Phong) Code(vt Variants) (string, error) {
	pl, err := ph.Pipeline(vt, gpu.TriangleList)
	if err != nil {
		return "", err
	}
	return pl.Code(vt.ShaderName()), nil
}

// BindGroupLayouts returns the bind group layouts shared by
// every pipeline, in group order.
func (ph *Phong) BindGroupLayouts() ([]wgpu.BindGroupLayoutDescriptor, error) {
	vs := ph.vars[LitStatic]
	if vs == nil {
		return nil, fmt.Errorf("phong.Phong:BindGroupLayouts: Config has not been called")
	}
	return vs.BindGroupLayoutDescriptors()
}
