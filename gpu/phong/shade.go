// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"cogentcore.org/shade/math32"
)

// This file evaluates the shader stages on the CPU with the same float32
// arithmetic as the WGSL programs in shaders/, which must be kept in sync.

// Lighting constants, as in shaders/lib/phong.wgsl.
const (
	AmbientStrength    = 0.1
	SkyAmbientStrength = 0.5
	Shininess          = 10
	SpecularCoeff      = 0.4

	// Cutoff is the distance from the light within which
	// the light is not attenuated.
	Cutoff = 0.1

	// MarkerScale is the scale of the light marker mesh.
	MarkerScale = 0.25
)

// SkyColour is the colour of the constant sky fill light.
var SkyColour = math32.Vec3(0.5, 0.82, 0.98)

// ColliderColor is the translucent colour of the collider overlay.
var ColliderColor = math32.Vec4(0.1, 0.9, 0.2, 0.35)

// VertexOutput is the output of the vertex stages, interpolated
// across each primitive for the fragment stage.
type VertexOutput struct {
	// Clip is the clip space position.
	Clip math32.Vector4

	TexCoords math32.Vector2

	WorldPosition math32.Vector3

	// WorldNormal is not normalized.
	WorldNormal math32.Vector3
}

// Lerp returns the output interpolated between vo and other by alpha,
// which is how the rasterizer interpolates along an edge.
func (vo VertexOutput) Lerp(other VertexOutput, alpha float32) VertexOutput {
	return VertexOutput{
		Clip:          vo.Clip.Lerp(other.Clip, alpha),
		TexCoords:     vo.TexCoords.Lerp(other.TexCoords, alpha),
		WorldPosition: vo.WorldPosition.Lerp(other.WorldPosition, alpha),
		WorldNormal:   vo.WorldNormal.Lerp(other.WorldNormal, alpha),
	}
}

// VertexStage transforms a vertex into world and clip space. With an
// instance, the model matrix poses the position and the normal matrix
// the normal; without, the mesh is at the origin unrotated.
func VertexStage(cm *Camera, v *Vertex, inst *InstanceRaw) VertexOutput {
	out := VertexOutput{TexCoords: v.TexCoords}
	if inst != nil {
		out.WorldPosition = v.Position.MulMatrix4AsVector4(&inst.model, 1).Vector3()
		out.WorldNormal = inst.normal.MulVector3(v.Normal)
	} else {
		out.WorldPosition = v.Position
		out.WorldNormal = v.Normal
	}
	out.Clip = out.WorldPosition.MulMatrix4AsVector4(&cm.ViewProjection, 1)
	return out
}

// PlainVertexStage passes the position through as the clip position,
// without any camera, for the plain texture pass.
func PlainVertexStage(v *Vertex) VertexOutput {
	return VertexOutput{
		Clip:          math32.Vector4FromVector3(v.Position, 1),
		TexCoords:     v.TexCoords,
		WorldPosition: v.Position,
		WorldNormal:   v.Normal,
	}
}

// MarkerWorld returns the world position of a light marker vertex:
// scaled by [MarkerScale] and then moved to the light position.
func MarkerWorld(lt *Light, pos math32.Vector3) math32.Vector3 {
	return pos.MulScalar(MarkerScale).Add(lt.Position)
}

// MarkerVertexStage transforms a light marker vertex.
func MarkerVertexStage(cm *Camera, lt *Light, pos math32.Vector3) VertexOutput {
	wp := MarkerWorld(lt, pos)
	return VertexOutput{WorldPosition: wp, Clip: wp.MulMatrix4AsVector4(&cm.ViewProjection, 1)}
}

// MarkerColor returns the flat colour of the light marker.
func MarkerColor(lt *Light) math32.Vector4 {
	return math32.Vector4FromVector3(lt.Colour, 1)
}

// ColliderVertexStage transforms a collider vertex, which is
// already in world coordinates.
func ColliderVertexStage(cm *Camera, pos math32.Vector3) VertexOutput {
	return VertexOutput{WorldPosition: pos, Clip: pos.MulMatrix4AsVector4(&cm.ViewProjection, 1)}
}

// Attenuation returns the light brightness at distance d from the light:
// the full brightness up to the [Cutoff], and an inverse square falloff
// beyond it, taking FalloffScale to fall to a quarter.
func Attenuation(lt *Light, d float32) float32 {
	if d <= Cutoff {
		return lt.Brightness
	}
	t := (d - Cutoff + lt.FalloffScale) / lt.FalloffScale
	return lt.Brightness / (t * t)
}

// Terms are the lighting terms at one surface point, before composition.
type Terms struct {
	Ambient  math32.Vector3
	Diffuse  math32.Vector3
	Specular math32.Vector3

	// Attenuation scales the diffuse and specular terms.
	Attenuation float32
}

// Terms returns the lighting terms for a surface point with the given
// world position and (not necessarily unit) normal. A point at the
// light position has no light direction and yields NaN terms.
func (lm LightingModel) Terms(cm *Camera, lt *Light, worldPos, worldNormal math32.Vector3) Terms {
	var tm Terms
	tm.Ambient = lt.Colour.MulScalar(AmbientStrength).Add(SkyColour.MulScalar(SkyAmbientStrength))
	normal := worldNormal.Normalize()
	toLight := lt.Position.Sub(worldPos)
	lightDir := toLight.Normalize()
	tm.Diffuse = lt.Colour.MulScalar(math32.Max(lightDir.Dot(normal), 0))
	if lm.Specular {
		viewDir := cm.Eye().Sub(worldPos).Normalize()
		halfDir := viewDir.Add(lightDir).Normalize()
		strength := math32.Pow(math32.Max(viewDir.Dot(halfDir), 0), Shininess)
		tm.Specular = lt.Colour.MulScalar(strength * SpecularCoeff)
	}
	if lm.Attenuation {
		tm.Attenuation = Attenuation(lt, toLight.Length())
	} else {
		tm.Attenuation = lt.Brightness
	}
	return tm
}

// Color composes the terms with the material colour. The alpha is the
// material alpha unchanged.
func (tm *Terms) Color(material math32.Vector4) math32.Vector4 {
	lit := tm.Ambient.Add(tm.Diffuse.Add(tm.Specular).MulScalar(tm.Attenuation))
	return math32.Vector4FromVector3(lit.Mul(material.Vector3()), material.W)
}

// Shade returns the lit colour of a fragment for the given sampled
// material colour.
func (lm LightingModel) Shade(cm *Camera, lt *Light, in *VertexOutput, material math32.Vector4) math32.Vector4 {
	tm := lm.Terms(cm, lt, in.WorldPosition, in.WorldNormal)
	return tm.Color(material)
}
