// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/math32"
)

// Cylinder is a capped cylinder with its axis along Y, centered on the
// origin, optionally with rounded edges of BorderRadius. Radius and
// HalfHeight are the outer extents, including the border.
type Cylinder struct {
	Radius float32

	HalfHeight float32

	// radius of the rounded edges; zero for a sharp cylinder
	BorderRadius float32

	// number of segments around the axis, and along each rounded edge
	NSubdiv int
}

// NewCylinder returns a Cylinder with given radius and half height,
// at the default resolution.
func NewCylinder(radius, halfHeight float32) *Cylinder {
	cy := &Cylinder{}
	cy.Defaults()
	cy.Radius = radius
	cy.HalfHeight = halfHeight
	return cy
}

func (cy *Cylinder) Defaults() {
	cy.Radius = 0.5
	cy.HalfHeight = 0.5
	cy.NSubdiv = DefaultSubdiv
}

// Inner returns the radius and half height of the sharp inner
// cylinder that the border rounds.
func (cy *Cylinder) Inner() (radius, halfHeight float32) {
	return max(cy.Radius-cy.BorderRadius, 0), max(cy.HalfHeight-cy.BorderRadius, 0)
}

// Mesh returns the filled inner cylinder: the side band and the two caps.
func (cy *Cylinder) Mesh() *Mesh {
	ms := NewMesh("cylinder", gpu.TriangleList)
	ms.Normals = []math32.Vector3{}
	ms.TexCoords = []math32.Vector2{}
	ns := max(cy.NSubdiv, 3)
	r, h := cy.Inner()

	st := uint32(ms.NVertices())
	for k, y := range []float32{h, -h} {
		for i := 0; i <= ns; i++ {
			th := 2 * math32.Pi * float32(i) / float32(ns)
			norm := ringPoint(0, 1, th)
			ms.AddVertex(ringPoint(y, r, th), norm, math32.Vec2(float32(i)/float32(ns), float32(k)))
		}
	}
	addLatLong(ms, st, []float32{r, r}, ns)

	for _, y := range []float32{h, -h} {
		norm := math32.Vec3(0, 1, 0)
		if y < 0 {
			norm.Y = -1
		}
		c := ms.AddVertex(math32.Vec3(0, y, 0), norm, math32.Vec2(0.5, 0.5))
		ring := make([]uint32, ns+1)
		for i := range ring {
			th := 2 * math32.Pi * float32(i) / float32(ns)
			tc := math32.Vec2(0.5+0.5*math32.Cos(th), 0.5+0.5*math32.Sin(th))
			ring[i] = ms.AddVertex(ringPoint(y, r, th), norm, tc)
		}
		for i := range ns {
			if y >= 0 {
				ms.AddTriangle(c, ring[i+1], ring[i])
			} else {
				ms.AddTriangle(c, ring[i], ring[i+1])
			}
		}
	}
	return ms
}

// Outline returns the outline: rings around the side and the caps, and
// four lines along the length. With a border, each of the four lines is
// joined to the cap by a quarter circle at both ends.
func (cy *Cylinder) Outline() *Mesh {
	ms := NewMesh("cylinder-outline", gpu.LineList)
	ns := max(cy.NSubdiv, 3)
	r, h := cy.Inner()
	br := cy.Radius - r
	addRing(ms, h, cy.Radius, ns)
	addRing(ms, -h, cy.Radius, ns)
	if br > 0 {
		addRing(ms, cy.HalfHeight, r, ns)
		addRing(ms, -cy.HalfHeight, r, ns)
	}
	up := math32.Vec3(0, 1, 0)
	for i := range 4 {
		th := 0.5 * math32.Pi * float32(i)
		a := ms.AddPosition(ringPoint(h, cy.Radius, th))
		b := ms.AddPosition(ringPoint(-h, cy.Radius, th))
		ms.AddLine(a, b)
		if br <= 0 {
			continue
		}
		out := ringPoint(0, 1, th)
		addArc(ms, ringPoint(h, r, th), out, up, br, 0, 0.5*math32.Pi, ns/4+1)
		addArc(ms, ringPoint(-h, r, th), out, up, br, -0.5*math32.Pi, 0, ns/4+1)
	}
	return ms
}
