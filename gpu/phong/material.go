// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"image"
	"image/color"

	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/math32"
)

// Material is the diffuse texture and sampler bound in the
// [MaterialGroup] for a draw.
type Material struct {
	Name string

	Texture *gpu.Texture

	Sampler *gpu.Sampler
}

// NewMaterial returns a material for the given texture image,
// with the default sampler.
func NewMaterial(name string, img image.Image) *Material {
	return &Material{Name: name, Texture: gpu.NewTextureFromImage(name, img), Sampler: gpu.NewSampler(name)}
}

// NewColorMaterial returns a material with a single texel of the given color.
func NewColorMaterial(name string, clr color.Color) *Material {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, clr)
	return NewMaterial(name, img)
}

// srgbTable decodes 8 bit sRGB components to linear.
var srgbTable = func() (tb [256]float32) {
	for i := range tb {
		tb[i] = math32.SRGBToLinearComp(float32(i) / 255)
	}
	return
}()

// texel returns the linear color of the texel at x, y,
// with sRGB decoding of the color components.
func (mt *Material) texel(x, y int) math32.Vector4 {
	img := mt.Texture.Image
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	p := img.Pix[i : i+4 : i+4]
	return math32.Vec4(srgbTable[p[0]], srgbTable[p[1]], srgbTable[p[2]], float32(p[3])/255)
}

// Sample returns the linear color of the texture at the given tex coords,
// as textureSample does: tex coords are wrapped or clamped by the sampler
// address modes and texels are filtered by the sampler filter mode.
// A material without a texture image samples as transparent black.
func (mt *Material) Sample(uv math32.Vector2) math32.Vector4 {
	if mt == nil || mt.Texture == nil || mt.Texture.Image == nil {
		return math32.Vec4(0, 0, 0, 0)
	}
	sz := mt.Texture.Format.Size
	w, h := sz.X, sz.Y
	if w == 0 || h == 0 {
		return math32.Vec4(0, 0, 0, 0)
	}
	sm := mt.Sampler
	if sm == nil {
		sm = gpu.NewSampler(mt.Name)
	}
	fx := sm.UMode.Wrap(uv.X) * float32(w)
	fy := sm.VMode.Wrap(uv.Y) * float32(h)
	if sm.Filter == gpu.Nearest {
		x := texelIndex(sm.UMode, int(math32.Floor(fx)), w)
		y := texelIndex(sm.VMode, int(math32.Floor(fy)), h)
		return mt.texel(x, y)
	}
	fx -= 0.5
	fy -= 0.5
	x0 := math32.Floor(fx)
	y0 := math32.Floor(fy)
	ax := fx - x0
	ay := fy - y0
	ix, iy := int(x0), int(y0)
	xa := texelIndex(sm.UMode, ix, w)
	xb := texelIndex(sm.UMode, ix+1, w)
	ya := texelIndex(sm.VMode, iy, h)
	yb := texelIndex(sm.VMode, iy+1, h)
	top := mt.texel(xa, ya).Lerp(mt.texel(xb, ya), ax)
	bot := mt.texel(xa, yb).Lerp(mt.texel(xb, yb), ax)
	return top.Lerp(bot, ay)
}

// texelIndex applies the address mode to a texel index in [0, n).
func texelIndex(mode gpu.SamplerModes, i, n int) int {
	switch mode {
	case gpu.ClampToEdge:
		return min(max(i, 0), n-1)
	case gpu.MirroredRepeat:
		p := 2 * n
		i = ((i % p) + p) % p
		if i >= n {
			i = p - 1 - i
		}
		return i
	default:
		return ((i % n) + n) % n
	}
}
