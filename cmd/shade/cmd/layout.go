// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"io/fs"

	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/gpu/phong"
	"github.com/cogentcore/webgpu/wgpu"
)

// Layout writes the host layout of every variant and the settings of
// every pipeline. The WGSL programs are read from fsys, rooted above a
// shaders directory, or the embedded programs if fsys is nil, and each
// is checked against its host layout: a mismatch is returned as the
// error, and every mismatch is listed.
func Layout(w io.Writer, lm phong.LightingModel, fsys fs.FS) error {
	var ph *phong.Phong
	var err error
	if fsys == nil {
		ph, err = phong.NewPhong(lm)
	} else {
		ph, err = phong.NewPhongFS(lm, fsys)
	}
	if err != nil {
		return err
	}
	for _, vt := range phong.AllVariants() {
		fmt.Fprintf(w, "%s (%s.wgsl)\n", vt, vt.ShaderName())
		fmt.Fprint(w, ph.Vars(vt).StringDoc())
	}
	fmt.Fprintln(w)
	for name, pl := range ph.Pipelines.All() {
		fmt.Fprintf(w, "Pipeline: %s\n", name)
		fmt.Fprintf(w, "    topology: %s, cull: %s, blend: %s\n", pl.Topology(), cullName(pl.Primitive.CullMode), blendName(pl))
		fmt.Fprintf(w, "    depth test: %v, depth write: %v\n", pl.DepthTest, pl.DepthWrite)
		if len(pl.Overrides) > 0 {
			fmt.Fprintf(w, "    overrides: %v\n", pl.Overrides)
		}
	}
	return nil
}

func cullName(cm wgpu.CullMode) string {
	switch cm {
	case wgpu.CullModeBack:
		return "back"
	case wgpu.CullModeFront:
		return "front"
	}
	return "none"
}

func blendName(pl *gpu.GraphicsPipeline) string {
	if pl.IsAlphaBlend() {
		return "alpha"
	}
	return "replace"
}
