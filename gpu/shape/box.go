// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/math32"
)

// Box is a rectangular-shaped solid (cuboid), centered on the origin.
type Box struct {
	// size along each dimension
	Size math32.Vector3

	// number of segments to divide each face into along each dimension
	// (enforced to be at least 1)
	Segs [3]int
}

// NewBox returns a Box shape with given size
func NewBox(width, height, depth float32) *Box {
	bx := &Box{}
	bx.Defaults()
	bx.Size.Set(width, height, depth)
	return bx
}

func (bx *Box) Defaults() {
	bx.Size.Set(1, 1, 1)
	bx.Segs = [3]int{1, 1, 1}
}

// Mesh returns the six outward-facing faces,
// starting with neg z as typically back.
func (bx *Box) Mesh() *Mesh {
	ms := NewMesh("box", gpu.TriangleList)
	ms.Normals = []math32.Vector3{}
	ms.TexCoords = []math32.Vector2{}
	hsz := bx.Size.MulScalar(0.5)
	faces := []struct {
		axis math32.Dims
		neg  bool
	}{
		{math32.Z, true}, {math32.Y, true}, {math32.X, false},
		{math32.X, true}, {math32.Y, false}, {math32.Z, false},
	}
	for _, fc := range faces {
		u, v := faceAxes(fc.axis, fc.neg)
		su := math32.Abs(u.Dot(bx.Size))
		sv := math32.Abs(v.Dot(bx.Size))
		n := u.Cross(v)
		center := n.Mul(hsz)
		origin := center.Sub(u.MulScalar(su / 2)).Sub(v.MulScalar(sv / 2))
		addGrid(ms, origin, u.MulScalar(su), v.MulScalar(sv), bx.segs(u), bx.segs(v))
	}
	return ms
}

// segs returns the segment count along the axis of unit vector u.
func (bx *Box) segs(u math32.Vector3) int {
	switch {
	case u.X != 0:
		return bx.Segs[0]
	case u.Y != 0:
		return bx.Segs[1]
	}
	return bx.Segs[2]
}

// Plane is a flat 2D plane, which can be oriented along any
// axis facing either positive or negative.
type Plane struct {
	// axis along which the normal perpendicular to the plane points.
	// E.g., if the Y axis is specified, then it is a standard X-Z ground plane.
	NormAxis math32.Dims

	// if true, the normal faces in the negative direction of NormAxis
	NormNeg bool

	// 2D size of plane
	Size math32.Vector2

	// number of segments to divide plane into (enforced to be at least 1)
	Segs [2]int

	// offset from origin along direction of normal to the plane
	Offset float32
}

// NewPlane returns a Plane with given size, with its normal pointing
// in the positive Y axis (i.e., a "ground" plane).
func NewPlane(width, height float32) *Plane {
	pl := &Plane{}
	pl.Defaults()
	pl.Size.Set(width, height)
	return pl
}

func (pl *Plane) Defaults() {
	pl.NormAxis = math32.Y
	pl.Size.Set(1, 1)
	pl.Segs = [2]int{1, 1}
}

func (pl *Plane) Mesh() *Mesh {
	ms := NewMesh("plane", gpu.TriangleList)
	ms.Normals = []math32.Vector3{}
	ms.TexCoords = []math32.Vector2{}
	u, v := faceAxes(pl.NormAxis, pl.NormNeg)
	n := u.Cross(v)
	origin := n.MulScalar(pl.Offset).Sub(u.MulScalar(pl.Size.X / 2)).Sub(v.MulScalar(pl.Size.Y / 2))
	addGrid(ms, origin, u.MulScalar(pl.Size.X), v.MulScalar(pl.Size.Y), pl.Segs[0], pl.Segs[1])
	return ms
}

// Quad is a rectangle in clip space at depth 0, facing the viewer,
// as drawn by the plain texture pass. Its tex coords put the
// texture origin at the top-left corner.
type Quad struct {
	// Min and Max are the corners in normalized device coordinates.
	Min, Max math32.Vector2
}

// NewQuad returns a Quad covering the whole screen.
func NewQuad() *Quad {
	return &Quad{Min: math32.Vec2(-1, -1), Max: math32.Vec2(1, 1)}
}

func (qd *Quad) Mesh() *Mesh {
	ms := NewMesh("quad", gpu.TriangleList)
	ms.Normals = []math32.Vector3{}
	ms.TexCoords = []math32.Vector2{}
	origin := math32.Vec3(qd.Min.X, qd.Min.Y, 0)
	u := math32.Vec3(qd.Max.X-qd.Min.X, 0, 0)
	v := math32.Vec3(0, qd.Max.Y-qd.Min.Y, 0)
	addGrid(ms, origin, u, v, 1, 1)
	return ms
}
