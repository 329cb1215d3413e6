// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image"

	"cogentcore.org/shade/base/slicesx"
	"cogentcore.org/shade/math32"
)

// Target is a software render target: a linear color buffer and a
// 32 bit float depth buffer of the same size, addressed row by row
// from the top left.
type Target struct {
	Width  int
	Height int

	// Color is the linear color of each pixel, with straight alpha.
	Color []math32.Vector4

	// Depth is the depth of each pixel, in the 0..1 range of
	// WebGPU clip space, cleared to 1.
	Depth []float32
}

// NewTarget returns a cleared target of the given size.
func NewTarget(width, height int) *Target {
	tg := &Target{}
	tg.SetSize(width, height)
	tg.Clear(math32.Vec4(0, 0, 0, 1))
	return tg
}

// SetSize sets the size of the target, reusing the buffers where
// possible. The contents are undefined until the next Clear.
func (tg *Target) SetSize(width, height int) {
	tg.Width = max(width, 0)
	tg.Height = max(height, 0)
	n := tg.Width * tg.Height
	tg.Color = slicesx.SetLength(tg.Color, n)
	tg.Depth = slicesx.SetLength(tg.Depth, n)
}

// Size returns the size of the target.
func (tg *Target) Size() image.Point {
	return image.Pt(tg.Width, tg.Height)
}

// Clear sets every pixel to the given linear color and the depth to 1.
func (tg *Target) Clear(clr math32.Vector4) {
	slicesx.Fill(tg.Color, clr)
	slicesx.Fill(tg.Depth, 1)
}

// Index returns the buffer index of the pixel at x, y.
func (tg *Target) Index(x, y int) int {
	return y*tg.Width + x
}

// At returns the linear color at x, y.
func (tg *Target) At(x, y int) math32.Vector4 {
	return tg.Color[tg.Index(x, y)]
}

// DepthAt returns the depth at x, y.
func (tg *Target) DepthAt(x, y int) float32 {
	return tg.Depth[tg.Index(x, y)]
}

// Image returns the color buffer encoded as sRGB, which is what an
// RGBA8UnormSrgb surface stores for the same linear values.
func (tg *Target) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tg.Width, tg.Height))
	for y := range tg.Height {
		for x := range tg.Width {
			img.Set(x, y, clampColor(tg.At(x, y)).SRGBFromLinear().AsNRGBA())
		}
	}
	return img
}

// clampColor clamps each component to 0..1, with NaN as 0.
func clampColor(c math32.Vector4) math32.Vector4 {
	cl := func(x float32) float32 {
		if !(x > 0) {
			return 0
		}
		return min(x, 1)
	}
	return math32.Vec4(cl(c.X), cl(c.Y), cl(c.Z), cl(c.W))
}
