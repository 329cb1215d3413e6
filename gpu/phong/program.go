// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"cogentcore.org/shade/math32"
)

// Program is the CPU evaluation of one pipeline variant: its vertex
// and fragment stages, reading the frame state.
type Program struct {
	Variant Variants

	// Lighting applies to the lit variants.
	Lighting LightingModel
}

// NewProgram returns the program for a variant with the full lighting model.
func NewProgram(vt Variants) *Program {
	return &Program{Variant: vt, Lighting: FullLighting}
}

// Vertex runs the vertex stage of the variant. The instance is only
// used by [LitInstanced], where it is required.
func (pr *Program) Vertex(fr *Frame, v *Vertex, inst *InstanceRaw) VertexOutput {
	switch pr.Variant {
	case Unlit:
		return PlainVertexStage(v)
	case LitStatic:
		return VertexStage(&fr.camera, v, nil)
	case LitInstanced:
		return VertexStage(&fr.camera, v, inst)
	case DebugMarker:
		return MarkerVertexStage(&fr.camera, &fr.light, v.Position)
	default:
		return ColliderVertexStage(&fr.camera, v.Position)
	}
}

// Fragment runs the fragment stage of the variant on an interpolated
// vertex output, sampling the material for the textured variants.
func (pr *Program) Fragment(fr *Frame, in *VertexOutput, mat *Material) math32.Vector4 {
	switch pr.Variant {
	case Unlit:
		return mat.Sample(in.TexCoords)
	case LitStatic, LitInstanced:
		return pr.Lighting.Shade(&fr.camera, &fr.light, in, mat.Sample(in.TexCoords))
	case DebugMarker:
		return MarkerColor(&fr.light)
	default:
		return ColliderColor
	}
}
