// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"fmt"
	"strings"

	"cogentcore.org/shade/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Variants are the pipeline variants. They all share the camera, material
// and light groups, and differ in their vertex inputs, their transform
// and their fragment output.
type Variants int32

const (
	// Unlit is the plain texture pass: positions are already in clip space
	// and the fragment is the texture sample.
	Unlit Variants = iota

	// LitStatic is a single lit mesh at the origin, without instance data.
	LitStatic

	// LitInstanced is a lit mesh drawn with per-instance model and normal matrices.
	LitInstanced

	// DebugMarker draws a small glyph at the light position in the light colour.
	DebugMarker

	// DebugOverlay draws collider meshes, already in world coordinates,
	// in a flat translucent colour over the shaded scene.
	DebugOverlay

	VariantsN
)

var variantsNames = [...]string{"Unlit", "LitStatic", "LitInstanced", "DebugMarker", "DebugOverlay"}

func (vt Variants) String() string {
	if vt < 0 || vt >= VariantsN {
		return fmt.Sprintf("Variants(%d)", int32(vt))
	}
	return variantsNames[vt]
}

// VariantFromString returns the variant with the given name,
// ignoring case.
func VariantFromString(s string) (Variants, error) {
	for i, nm := range variantsNames {
		if strings.EqualFold(nm, s) {
			return Variants(i), nil
		}
	}
	return Unlit, fmt.Errorf("phong.VariantFromString: %q is not a valid Variants value", s)
}

// AllVariants returns all the variants, in order.
func AllVariants() []Variants {
	vts := make([]Variants, VariantsN)
	for i := range vts {
		vts[i] = Variants(i)
	}
	return vts
}

var variantShaders = [...]string{"texture", "model", "instanced", "light", "collider"}

// ShaderName returns the name of the shader program of the variant,
// which is in shaders/<name>.wgsl.
func (vt Variants) ShaderName() string {
	return variantShaders[vt]
}

// IsLit returns true for the variants that run the lighting stage.
func (vt Variants) IsLit() bool {
	return vt == LitStatic || vt == LitInstanced
}

// Topologies returns the primitive topologies the variant is drawn with.
// Collider meshes are drawn filled and as outlines.
func (vt Variants) Topologies() []gpu.Topologies {
	if vt == DebugOverlay {
		return []gpu.Topologies{gpu.TriangleList, gpu.LineList}
	}
	return []gpu.Topologies{gpu.TriangleList}
}

// ConfigPipeline configures the graphics settings of a pipeline for the
// variant: opaque variants replace the color and write depth, the overlay
// alpha blends over the scene without writing depth, and the plain texture
// pass draws on top without a depth test. Lines are not culled.
func (vt Variants) ConfigPipeline(pl *gpu.GraphicsPipeline, topo gpu.Topologies) {
	pl.SetGraphicsDefaults()
	pl.SetTopology(topo)
	switch vt {
	case Unlit:
		pl.SetDepth(false, false)
		pl.SetColorBlend(true)
	case DebugOverlay:
		pl.SetDepth(true, false)
		pl.SetColorBlend(true)
		pl.SetCullMode(wgpu.CullModeNone)
	}
	if topo.IsLines() {
		pl.SetCullMode(wgpu.CullModeNone)
	}
}

// PipelineName returns the name of the pipeline for a variant and topology.
func PipelineName(vt Variants, topo gpu.Topologies) string {
	if topo == gpu.TriangleList {
		return vt.String()
	}
	return vt.String() + ":" + topo.String()
}

// LightingModel selects the terms of the lighting stage that are evaluated.
// The full model has both; the reduced models force the dropped terms to
// their neutral values: no specular, and a constant brightness in place
// of the distance attenuation.
type LightingModel struct {
	Specular bool

	Attenuation bool
}

// FullLighting is the canonical lighting model.
var FullLighting = LightingModel{Specular: true, Attenuation: true}

// ReducedLighting is ambient + diffuse with constant brightness.
var ReducedLighting = LightingModel{}

// Override constant names for the [LightingModel] terms.
const (
	SpecularOverride    = "use_specular"
	AttenuationOverride = "use_attenuation"
)

// Overrides returns the pipeline override values of the model.
func (lm LightingModel) Overrides() map[string]any {
	return map[string]any{SpecularOverride: lm.Specular, AttenuationOverride: lm.Attenuation}
}

func (lm LightingModel) String() string {
	switch lm {
	case FullLighting:
		return "full"
	case ReducedLighting:
		return "reduced"
	}
	return fmt.Sprintf("specular=%v attenuation=%v", lm.Specular, lm.Attenuation)
}
