// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"cogentcore.org/shade/gpu/phong"
	"cogentcore.org/shade/math32"
)

// screenVertex is a vertex output after the perspective divide and
// the viewport transform.
type screenVertex struct {
	// X and Y are in pixels from the top left, and Z is the depth.
	X, Y, Z float32

	// InvW is 1/w of the clip position, for perspective-correct
	// interpolation of the outputs.
	InvW float32

	Out phong.VertexOutput
}

func toScreen(out *phong.VertexOutput, width, height int) screenVertex {
	c := out.Clip
	iw := 1 / c.W
	return screenVertex{
		X:    (c.X*iw + 1) * 0.5 * float32(width),
		Y:    (1 - c.Y*iw) * 0.5 * float32(height),
		Z:    c.Z * iw,
		InvW: iw,
		Out:  *out,
	}
}

// minW is the smallest clip w that is kept.
const minW = 1e-6

// clipPlanes return the signed distance of a clip position inside the
// WebGPU depth range 0 <= z <= w, and in front of the eye. The x and y
// planes are not clipped: pixels outside the target are never visited.
var clipPlanes = []func(c math32.Vector4) float32{
	func(c math32.Vector4) float32 { return c.W - minW },
	func(c math32.Vector4) float32 { return c.Z },
	func(c math32.Vector4) float32 { return c.W - c.Z },
}

// clipPolygon clips a convex polygon against the clip planes,
// interpolating the outputs linearly in clip space.
func clipPolygon(poly []phong.VertexOutput) []phong.VertexOutput {
	for _, dist := range clipPlanes {
		n := len(poly)
		if n == 0 {
			return nil
		}
		out := make([]phong.VertexOutput, 0, n+1)
		for i := range n {
			a, b := poly[i], poly[(i+1)%n]
			da, db := dist(a.Clip), dist(b.Clip)
			if da >= 0 {
				out = append(out, a)
			}
			if (da >= 0) != (db >= 0) {
				out = append(out, a.Lerp(b, da/(da-db)))
			}
		}
		poly = out
	}
	return poly
}

// clipLine clips a segment against the clip planes.
// It returns false if nothing is left.
func clipLine(a, b phong.VertexOutput) (phong.VertexOutput, phong.VertexOutput, bool) {
	t0, t1 := float32(0), float32(1)
	for _, dist := range clipPlanes {
		da, db := dist(a.Clip), dist(b.Clip)
		switch {
		case da < 0 && db < 0:
			return a, b, false
		case da < 0:
			t0 = max(t0, da/(da-db))
		case db < 0:
			t1 = min(t1, da/(da-db))
		}
	}
	if t0 > t1 {
		return a, b, false
	}
	return a.Lerp(b, t0), a.Lerp(b, t1), true
}

// edge returns twice the signed area of the triangle a, b, p:
// positive when p is on the right of a->b with y down.
func edge(a, b *screenVertex, px, py float32) float32 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// isTopLeft returns true for a top or left edge of a triangle of
// positive area, whose pixels on the edge are covered.
func isTopLeft(a, b *screenVertex) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dy < 0 || (dy == 0 && dx > 0)
}

// covers applies the fill rule for an edge value.
func covers(e float32, topLeft bool) bool {
	return e > 0 || (e == 0 && topLeft)
}

// triangle is a screen space triangle with positive area.
type triangle struct {
	v [3]screenVertex

	// area is twice the screen area.
	area float32

	// topLeft is the fill rule of the edge opposite each vertex.
	topLeft [3]bool
}

// newTriangle returns the triangle of the given vertices,
// reordered to positive area, and whether its front faces the
// viewer when front faces wind counter-clockwise. It returns
// nil for a degenerate triangle.
func newTriangle(a, b, c screenVertex) (tr *triangle, ccw bool) {
	tr = &triangle{v: [3]screenVertex{a, b, c}}
	tr.area = edge(&tr.v[0], &tr.v[1], tr.v[2].X, tr.v[2].Y)
	if tr.area == 0 || math32.IsNaN(tr.area) {
		return nil, false
	}
	// y is down, so a negative area is counter-clockwise in NDC
	ccw = tr.area < 0
	if ccw {
		tr.v[1], tr.v[2] = tr.v[2], tr.v[1]
		tr.area = -tr.area
	}
	tr.topLeft[0] = isTopLeft(&tr.v[1], &tr.v[2])
	tr.topLeft[1] = isTopLeft(&tr.v[2], &tr.v[0])
	tr.topLeft[2] = isTopLeft(&tr.v[0], &tr.v[1])
	return tr, ccw
}

// interpolate returns the outputs of three vertices weighted
// by the given weights, which sum to 1.
func interpolate(a, b, c *phong.VertexOutput, w0, w1, w2 float32) phong.VertexOutput {
	return phong.VertexOutput{
		Clip:          a.Clip.MulScalar(w0).Add(b.Clip.MulScalar(w1)).Add(c.Clip.MulScalar(w2)),
		TexCoords:     a.TexCoords.MulScalar(w0).Add(b.TexCoords.MulScalar(w1)).Add(c.TexCoords.MulScalar(w2)),
		WorldPosition: a.WorldPosition.MulScalar(w0).Add(b.WorldPosition.MulScalar(w1)).Add(c.WorldPosition.MulScalar(w2)),
		WorldNormal:   a.WorldNormal.MulScalar(w0).Add(b.WorldNormal.MulScalar(w1)).Add(c.WorldNormal.MulScalar(w2)),
	}
}

// pixelRange returns the inclusive range of pixels in lo..hi
// that are within start..end.
func pixelRange(lo, hi float32, start, end int) (int, int) {
	lo = math32.Clamp(math32.Floor(lo), float32(start), float32(end))
	hi = math32.Clamp(math32.Ceil(hi), float32(start-1), float32(end-1))
	return int(lo), int(hi)
}

// raster shades the pixels covered by the triangle in rows y0..y1,
// sampled at pixel centers.
func (tr *triangle) raster(ds *drawState, y0, y1 int) {
	v0, v1, v2 := &tr.v[0], &tr.v[1], &tr.v[2]
	minX, maxX := pixelRange(min(v0.X, v1.X, v2.X), max(v0.X, v1.X, v2.X), 0, ds.tg.Width)
	minY, maxY := pixelRange(min(v0.Y, v1.Y, v2.Y), max(v0.Y, v1.Y, v2.Y), y0, y1)
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			e0 := edge(v1, v2, px, py)
			e1 := edge(v2, v0, px, py)
			e2 := edge(v0, v1, px, py)
			if !covers(e0, tr.topLeft[0]) || !covers(e1, tr.topLeft[1]) || !covers(e2, tr.topLeft[2]) {
				continue
			}
			b0, b1, b2 := e0/tr.area, e1/tr.area, e2/tr.area
			z := b0*v0.Z + b1*v1.Z + b2*v2.Z
			p0, p1, p2 := b0*v0.InvW, b1*v1.InvW, b2*v2.InvW
			s := p0 + p1 + p2
			in := interpolate(&v0.Out, &v1.Out, &v2.Out, p0/s, p1/s, p2/s)
			ds.fragment(x, y, z, &in)
		}
	}
}

// line is a screen space line segment.
type line struct {
	a, b screenVertex
}

// raster shades the pixels of the line in rows y0..y1, stepping one
// pixel along the major axis and leaving out the last pixel, so that
// the segments of a strip do not overlap.
func (ln *line) raster(ds *drawState, y0, y1 int) {
	a, b := &ln.a, &ln.b
	dx, dy := b.X-a.X, b.Y-a.Y
	n := int(math32.Ceil(max(math32.Abs(dx), math32.Abs(dy))))
	for i := range n {
		t := (float32(i) + 0.5) / float32(n)
		x := int(math32.Floor(a.X + dx*t))
		y := int(math32.Floor(a.Y + dy*t))
		if y < y0 || y >= y1 || x < 0 || x >= ds.tg.Width {
			continue
		}
		z := math32.Lerp(a.Z, b.Z, t)
		iw := math32.Lerp(a.InvW, b.InvW, t)
		in := a.Out.Lerp(b.Out, t*b.InvW/iw)
		ds.fragment(x, y, z, &in)
	}
}

// point is a single screen space vertex.
type point struct {
	v screenVertex
}

func (pt *point) raster(ds *drawState, y0, y1 int) {
	x := int(math32.Floor(pt.v.X))
	y := int(math32.Floor(pt.v.Y))
	if y < y0 || y >= y1 || x < 0 || x >= ds.tg.Width {
		return
	}
	ds.fragment(x, y, pt.v.Z, &pt.v.Out)
}

// primitive is an assembled primitive ready to rasterize.
type primitive interface {
	raster(ds *drawState, y0, y1 int)
}
