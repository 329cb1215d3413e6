// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides the meshes drawn by the shading passes:
// basic solids for the scene, the screen quad for the plain texture
// pass, and the filled and outline collider meshes for the debug
// overlay.
package shape

import (
	"fmt"

	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/math32"
)

// Shape is a parametric shape that can generate a [Mesh].
type Shape interface {
	// Mesh returns a new filled triangle mesh of the shape.
	Mesh() *Mesh
}

// Outliner is a [Shape] that also has a wireframe outline,
// as drawn by the collider overlay.
type Outliner interface {
	Shape

	// Outline returns a new [gpu.LineList] mesh of the outline.
	Outline() *Mesh
}

// Mesh is indexed vertex data for one draw.
// Normals and TexCoords are either empty or
// have one entry per position.
type Mesh struct {
	Name string

	Positions []math32.Vector3

	Normals []math32.Vector3

	TexCoords []math32.Vector2

	// Indices index into the vertex arrays, grouped according to Topology.
	Indices []uint32

	// Topology is how Indices are assembled into primitives.
	Topology gpu.Topologies

	// BBox is the bounding box of the positions, updated by Set methods.
	BBox math32.Box3
}

// NewMesh returns a new empty mesh with given name and topology.
func NewMesh(name string, topo gpu.Topologies) *Mesh {
	return &Mesh{Name: name, Topology: topo, BBox: math32.B3Empty()}
}

// NVertices returns the number of vertices.
func (ms *Mesh) NVertices() int {
	return len(ms.Positions)
}

// NPrimitives returns the number of triangles or lines.
func (ms *Mesh) NPrimitives() int {
	switch ms.Topology {
	case gpu.TriangleList:
		return len(ms.Indices) / 3
	case gpu.LineList:
		return len(ms.Indices) / 2
	case gpu.TriangleStrip:
		return max(len(ms.Indices)-2, 0)
	case gpu.LineStrip:
		return max(len(ms.Indices)-1, 0)
	}
	return len(ms.Indices)
}

// AddVertex adds a vertex, returning its index.
// The normal and tex coords are only stored if the
// mesh already has them for every vertex.
func (ms *Mesh) AddVertex(pos, norm math32.Vector3, tex math32.Vector2) uint32 {
	idx := uint32(len(ms.Positions))
	if len(ms.Normals) == len(ms.Positions) {
		ms.Normals = append(ms.Normals, norm)
		ms.TexCoords = append(ms.TexCoords, tex)
	}
	ms.Positions = append(ms.Positions, pos)
	ms.BBox.ExpandByPoint(pos)
	return idx
}

// AddPosition adds a position-only vertex, for outlines,
// returning its index.
func (ms *Mesh) AddPosition(pos math32.Vector3) uint32 {
	idx := uint32(len(ms.Positions))
	ms.Positions = append(ms.Positions, pos)
	ms.BBox.ExpandByPoint(pos)
	return idx
}

// AddTriangle adds a triangle, counter-clockwise seen from its front.
func (ms *Mesh) AddTriangle(a, b, c uint32) {
	ms.Indices = append(ms.Indices, a, b, c)
}

// AddLine adds a line segment.
func (ms *Mesh) AddLine(a, b uint32) {
	ms.Indices = append(ms.Indices, a, b)
}

// Append adds the vertices and primitives of other, which
// must have the same topology.
func (ms *Mesh) Append(other *Mesh) error {
	if other.Topology != ms.Topology {
		return fmt.Errorf("shape.Mesh:Append %s: cannot append %s mesh %s to %s mesh", ms.Name, other.Topology, other.Name, ms.Topology)
	}
	off := uint32(len(ms.Positions))
	attrs := len(ms.Normals) == len(ms.Positions) && len(other.Normals) == len(other.Positions)
	if !attrs {
		ms.Normals = nil
		ms.TexCoords = nil
	} else {
		ms.Normals = append(ms.Normals, other.Normals...)
		ms.TexCoords = append(ms.TexCoords, other.TexCoords...)
	}
	ms.Positions = append(ms.Positions, other.Positions...)
	for _, ix := range other.Indices {
		ms.Indices = append(ms.Indices, ix+off)
	}
	ms.BBox.ExpandByBox(other.BBox)
	return nil
}

// Transform applies the given model matrix to the positions, and
// its normal matrix (inverse-transpose of the upper 3x3) to the normals.
func (ms *Mesh) Transform(m *math32.Matrix4) {
	nm := math32.Matrix3FromMatrix4(m)
	if inv, err := nm.Inverse(); err == nil {
		nm = inv.Transpose()
	}
	ms.BBox.SetEmpty()
	for i, p := range ms.Positions {
		ms.Positions[i] = p.MulMatrix4(m)
		ms.BBox.ExpandByPoint(ms.Positions[i])
	}
	for i, n := range ms.Normals {
		ms.Normals[i] = nm.MulVector3(n).Normal()
	}
}

// Validate checks that the attribute arrays agree in length,
// that every index is in range, and that the index count
// fits the topology.
func (ms *Mesh) Validate() error {
	nv := len(ms.Positions)
	if len(ms.Normals) != 0 && len(ms.Normals) != nv {
		return fmt.Errorf("shape.Mesh %s: %d normals for %d positions", ms.Name, len(ms.Normals), nv)
	}
	if len(ms.TexCoords) != 0 && len(ms.TexCoords) != nv {
		return fmt.Errorf("shape.Mesh %s: %d tex coords for %d positions", ms.Name, len(ms.TexCoords), nv)
	}
	for i, ix := range ms.Indices {
		if int(ix) >= nv {
			return fmt.Errorf("shape.Mesh %s: index %d at %d is out of range of %d vertices", ms.Name, ix, i, nv)
		}
	}
	switch ms.Topology {
	case gpu.TriangleList:
		if len(ms.Indices)%3 != 0 {
			return fmt.Errorf("shape.Mesh %s: %d indices is not a multiple of 3 for TriangleList", ms.Name, len(ms.Indices))
		}
	case gpu.LineList:
		if len(ms.Indices)%2 != 0 {
			return fmt.Errorf("shape.Mesh %s: %d indices is not a multiple of 2 for LineList", ms.Name, len(ms.Indices))
		}
	}
	return nil
}

//////////////////////////////////////////////////////////////
// Builders

// faceAxes returns the in-plane unit axes u, v for a face whose
// normal points along the given axis, so that u x v is the normal.
func faceAxes(axis math32.Dims, neg bool) (u, v math32.Vector3) {
	switch axis {
	case math32.X:
		if neg {
			return math32.Vec3(0, 0, 1), math32.Vec3(0, 1, 0)
		}
		return math32.Vec3(0, 0, -1), math32.Vec3(0, 1, 0)
	case math32.Y:
		if neg {
			return math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 1)
		}
		return math32.Vec3(1, 0, 0), math32.Vec3(0, 0, -1)
	default:
		if neg {
			return math32.Vec3(-1, 0, 0), math32.Vec3(0, 1, 0)
		}
		return math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)
	}
}

// addGrid adds a planar grid from origin spanning u and v, divided into
// nu x nv cells, with normal u x v and tex coords mapping the grid to [0,1]
// with v=0 at the far edge.
func addGrid(ms *Mesh, origin, u, v math32.Vector3, nu, nv int) {
	nu = max(nu, 1)
	nv = max(nv, 1)
	norm := u.Cross(v).Normal()
	st := uint32(ms.NVertices())
	for j := 0; j <= nv; j++ {
		fv := float32(j) / float32(nv)
		for i := 0; i <= nu; i++ {
			fu := float32(i) / float32(nu)
			pos := origin.Add(u.MulScalar(fu)).Add(v.MulScalar(fv))
			ms.AddVertex(pos, norm, math32.Vec2(fu, 1-fv))
		}
	}
	row := uint32(nu + 1)
	for j := range uint32(nv) {
		for i := range uint32(nu) {
			p00 := st + j*row + i
			p10 := p00 + 1
			p01 := p00 + row
			p11 := p01 + 1
			ms.AddTriangle(p00, p10, p11)
			ms.AddTriangle(p00, p11, p01)
		}
	}
}

// addArc adds line segments along the arc center + radius*(cos(t)*a + sin(t)*b)
// for t from start to end radians, in nseg segments.
func addArc(ms *Mesh, center, a, b math32.Vector3, radius, start, end float32, nseg int) {
	nseg = max(nseg, 1)
	prev := uint32(0)
	for i := 0; i <= nseg; i++ {
		t := start + (end-start)*float32(i)/float32(nseg)
		p := center.Add(a.MulScalar(radius * math32.Cos(t))).Add(b.MulScalar(radius * math32.Sin(t)))
		cur := ms.AddPosition(p)
		if i > 0 {
			ms.AddLine(prev, cur)
		}
		prev = cur
	}
}

// addRing adds a full horizontal circle at height y.
func addRing(ms *Mesh, y, radius float32, nseg int) {
	addArc(ms, math32.Vec3(0, y, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 1), radius, 0, 2*math32.Pi, nseg)
}

// ringPoint returns the point at angle theta on a horizontal circle.
func ringPoint(y, radius, theta float32) math32.Vector3 {
	return math32.Vec3(radius*math32.Cos(theta), y, radius*math32.Sin(theta))
}

// addLatLong adds the triangles joining consecutive rows of a latitude /
// longitude vertex grid, each row having nseg+1 vertices, starting at st.
// Rows run from top to bottom. Triangles touching a zero-radius row are
// skipped where they would be degenerate.
func addLatLong(ms *Mesh, st uint32, rows []float32, nseg int) {
	row := uint32(nseg + 1)
	for k := range uint32(len(rows) - 1) {
		for i := range uint32(nseg) {
			a := st + k*row + i
			d := a + 1
			b := a + row
			c := b + 1
			if rows[k+1] != 0 {
				ms.AddTriangle(a, c, b)
			}
			if rows[k] != 0 {
				ms.AddTriangle(a, d, c)
			}
		}
	}
}
