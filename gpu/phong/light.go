// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"image/color"

	"cogentcore.org/shade/math32"
)

// Light is the single point light, for uniform uploading.
type Light struct {
	// Position of the light in world coordinates.
	Position math32.Vector3

	// FalloffScale is the distance over which the light falls to a
	// quarter of its brightness, beyond the [Cutoff].
	FalloffScale float32

	// Colour of the light, in linear RGB.
	Colour math32.Vector3

	// Brightness multiplies the diffuse and specular terms.
	Brightness float32
}

// NewLight returns a light at the given position with given colour,
// full brightness and unit falloff scale.
func NewLight(pos, colour math32.Vector3) Light {
	return Light{Position: pos, FalloffScale: 1, Colour: colour, Brightness: 1}
}

// SetColor sets the colour from a standard Go sRGB color.
func (lt *Light) SetColor(clr color.Color) *Light {
	lt.Colour = math32.NewVector4Color(clr).SRGBToLinear().Vector3()
	return lt
}

// OrbitDegrees is the angle the light orbits per frame by default.
const OrbitDegrees = 0.8

// Orbit rotates the light position about the world +Y axis
// by the given angle in degrees.
func (lt *Light) Orbit(degrees float32) {
	q := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(degrees))
	lt.Position = lt.Position.MulQuat(q)
}
