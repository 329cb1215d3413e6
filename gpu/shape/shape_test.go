// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkOutward checks that every triangle winds counter-clockwise
// seen from outside, using the vertex normals as the outside.
func checkOutward(t *testing.T, ms *Mesh) {
	t.Helper()
	require.NoError(t, ms.Validate())
	require.Equal(t, gpu.TriangleList, ms.Topology)
	for i := 0; i < len(ms.Indices); i += 3 {
		a, b, c := ms.Indices[i], ms.Indices[i+1], ms.Indices[i+2]
		pa, pb, pc := ms.Positions[a], ms.Positions[b], ms.Positions[c]
		gn := pb.Sub(pa).Cross(pc.Sub(pa))
		if gn.Length() < 1e-7 {
			t.Errorf("%s: triangle %d is degenerate", ms.Name, i/3)
			continue
		}
		vn := ms.Normals[a].Add(ms.Normals[b]).Add(ms.Normals[c])
		assert.Greater(t, gn.Dot(vn), float32(0), "%s: triangle %d winds inward", ms.Name, i/3)
	}
}

func TestBox(t *testing.T) {
	bx := NewBox(2, 4, 6)
	ms := bx.Mesh()
	assert.Equal(t, 24, ms.NVertices())
	assert.Equal(t, 12, ms.NPrimitives())
	checkOutward(t, ms)
	assert.Equal(t, math32.Vec3(-1, -2, -3), ms.BBox.Min)
	assert.Equal(t, math32.Vec3(1, 2, 3), ms.BBox.Max)

	bx.Segs = [3]int{2, 3, 4}
	ms = bx.Mesh()
	checkOutward(t, ms)
	// faces: 2 z faces of 2x3, 2 y faces of 2x4, 2 x faces of 4x3
	assert.Equal(t, 2*2*(6+8+12), ms.NPrimitives())
}

func TestPlane(t *testing.T) {
	pl := NewPlane(10, 10)
	pl.Offset = -1
	ms := pl.Mesh()
	checkOutward(t, ms)
	assert.Equal(t, 4, ms.NVertices())
	for _, n := range ms.Normals {
		assert.Equal(t, math32.Vec3(0, 1, 0), n)
	}
	for _, p := range ms.Positions {
		assert.Equal(t, float32(-1), p.Y)
	}

	pl.NormAxis = math32.Z
	pl.NormNeg = true
	ms = pl.Mesh()
	checkOutward(t, ms)
	assert.Equal(t, math32.Vec3(0, 0, -1), ms.Normals[0])
}

func TestQuad(t *testing.T) {
	ms := NewQuad().Mesh()
	checkOutward(t, ms)
	require.Equal(t, 4, ms.NVertices())
	for i, p := range ms.Positions {
		assert.Equal(t, float32(0), p.Z)
		tc := ms.TexCoords[i]
		// texture origin is top-left: y=1 maps to v=0
		assert.Equal(t, (p.X+1)/2, tc.X)
		assert.Equal(t, (1-p.Y)/2, tc.Y)
	}
}

func TestCapsule(t *testing.T) {
	cp := NewCapsule(0.5, 1)
	ms := cp.Mesh()
	checkOutward(t, ms)
	assert.Equal(t, (DefaultSubdiv+2)*(DefaultSubdiv+1), ms.NVertices())
	for _, p := range ms.Positions {
		// distance to the axis segment is the radius
		y := math32.Clamp(p.Y, -cp.HalfHeight, cp.HalfHeight)
		assert.InDelta(t, cp.Radius, p.DistanceTo(math32.Vec3(0, y, 0)), 1e-5)
	}
	assert.InDelta(t, 1.5, ms.BBox.Max.Y, 1e-6)
	assert.InDelta(t, -1.5, ms.BBox.Min.Y, 1e-6)

	ol := cp.Outline()
	require.NoError(t, ol.Validate())
	assert.Equal(t, gpu.LineList, ol.Topology)
	assert.Empty(t, ol.Normals)
	// two rings, four lines, four half circles
	assert.Equal(t, 2*DefaultSubdiv+4+4*DefaultSubdiv/2, ol.NPrimitives())
	for _, p := range ol.Positions {
		y := math32.Clamp(p.Y, -cp.HalfHeight, cp.HalfHeight)
		assert.InDelta(t, cp.Radius, p.DistanceTo(math32.Vec3(0, y, 0)), 1e-5)
	}
}

func TestCylinder(t *testing.T) {
	cy := NewCylinder(1, 2)
	ms := cy.Mesh()
	checkOutward(t, ms)
	assert.InDelta(t, 2, ms.BBox.Max.Y, 1e-6)
	assert.InDelta(t, 1, ms.BBox.Max.X, 1e-6)
	ol := cy.Outline()
	require.NoError(t, ol.Validate())
	assert.Equal(t, 2*DefaultSubdiv+4, ol.NPrimitives())

	cy.BorderRadius = 0.25
	r, h := cy.Inner()
	assert.Equal(t, float32(0.75), r)
	assert.Equal(t, float32(1.75), h)
	ms = cy.Mesh()
	checkOutward(t, ms)
	assert.InDelta(t, 1.75, ms.BBox.Max.Y, 1e-6)
	ol = cy.Outline()
	require.NoError(t, ol.Validate())
	assert.InDelta(t, 2, ol.BBox.Max.Y, 1e-5)
	assert.InDelta(t, 1, ol.BBox.Max.X, 1e-5)
	assert.Greater(t, ol.NPrimitives(), 4*DefaultSubdiv+4)
}

func TestMeshAppendTransform(t *testing.T) {
	ms := NewBox(1, 1, 1).Mesh()
	pl := NewPlane(1, 1).Mesh()
	n := ms.NVertices()
	require.NoError(t, ms.Append(pl))
	assert.Equal(t, n+4, ms.NVertices())
	assert.Equal(t, 14, ms.NPrimitives())
	require.NoError(t, ms.Validate())
	assert.Error(t, ms.Append(NewCapsule(1, 1).Outline()))

	m := &math32.Matrix4{}
	m.SetTransform(math32.Vec3(0, 2, 0), math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), math32.Pi/2), math32.Vec3(1, 1, 1))
	bx := NewBox(2, 1, 1).Mesh()
	bx.Transform(m)
	checkOutward(t, bx)
	// the long x extent is rotated onto y
	assert.InDelta(t, 3, bx.BBox.Max.Y, 1e-5)
	assert.InDelta(t, 0.5, bx.BBox.Max.X, 1e-5)
}
