// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/math32"
)

// DefaultSubdiv is the default resolution of the collider meshes.
const DefaultSubdiv = 20

// Capsule is a cylinder capped with hemispheres, with its
// axis along Y and centered on the origin.
type Capsule struct {
	// radius of the cylinder and the caps
	Radius float32

	// half the height of the cylinder part, not including the caps
	HalfHeight float32

	// number of segments around the axis
	NTheta int

	// number of segments from pole to pole, split between the caps
	NPhi int
}

// NewCapsule returns a Capsule with given radius and half height,
// at the default resolution.
func NewCapsule(radius, halfHeight float32) *Capsule {
	cp := &Capsule{}
	cp.Defaults()
	cp.Radius = radius
	cp.HalfHeight = halfHeight
	return cp
}

func (cp *Capsule) Defaults() {
	cp.Radius = 0.5
	cp.HalfHeight = 0.5
	cp.NTheta = DefaultSubdiv
	cp.NPhi = DefaultSubdiv
}

// Mesh returns the filled capsule. The rows of the top cap end at the
// top of the cylinder, and the rows of the bottom cap start at its bottom,
// so the equator row is doubled to form the cylinder band.
func (cp *Capsule) Mesh() *Mesh {
	ms := NewMesh("capsule", gpu.TriangleList)
	ms.Normals = []math32.Vector3{}
	ms.TexCoords = []math32.Vector2{}
	nt := max(cp.NTheta, 3)
	half := max(cp.NPhi/2, 1)
	var radii []float32
	type row struct{ phi, y float32 }
	var rows []row
	for k := 0; k <= half; k++ {
		rows = append(rows, row{0.5 * math32.Pi * float32(k) / float32(half), cp.HalfHeight})
	}
	for k := half; k <= 2*half; k++ {
		rows = append(rows, row{0.5 * math32.Pi * float32(k) / float32(half), -cp.HalfHeight})
	}
	st := uint32(ms.NVertices())
	for k, rw := range rows {
		sp := math32.Sin(rw.phi)
		cph := math32.Cos(rw.phi)
		rad := cp.Radius * sp
		if k == 0 || k == len(rows)-1 {
			rad = 0
			sp = 0
		}
		radii = append(radii, rad)
		for i := 0; i <= nt; i++ {
			th := 2 * math32.Pi * float32(i) / float32(nt)
			norm := math32.Vec3(sp*math32.Cos(th), cph, sp*math32.Sin(th))
			pos := norm.MulScalar(cp.Radius).Add(math32.Vec3(0, rw.y, 0))
			ms.AddVertex(pos, norm, math32.Vec2(float32(i)/float32(nt), float32(k)/float32(len(rows)-1)))
		}
	}
	addLatLong(ms, st, radii, nt)
	return ms
}

// Outline returns the outline: the rings at the two ends of the cylinder,
// four lines along its length, and the half circle of each cap in the
// X-Y and Z-Y planes.
func (cp *Capsule) Outline() *Mesh {
	ms := NewMesh("capsule-outline", gpu.LineList)
	ns := max(cp.NTheta, 3)
	h := cp.HalfHeight
	addRing(ms, h, cp.Radius, ns)
	addRing(ms, -h, cp.Radius, ns)
	for i := range 4 {
		th := 0.5 * math32.Pi * float32(i)
		a := ms.AddPosition(ringPoint(h, cp.Radius, th))
		b := ms.AddPosition(ringPoint(-h, cp.Radius, th))
		ms.AddLine(a, b)
	}
	up := math32.Vec3(0, 1, 0)
	for _, ax := range []math32.Vector3{math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 1)} {
		addArc(ms, math32.Vec3(0, h, 0), ax, up, cp.Radius, 0, math32.Pi, ns/2)
		addArc(ms, math32.Vec3(0, -h, 0), ax, up, cp.Radius, math32.Pi, 2*math32.Pi, ns/2)
	}
	return ms
}
