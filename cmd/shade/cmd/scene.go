// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/shade/config"
	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/gpu/phong"
	"cogentcore.org/shade/gpu/shape"
	"cogentcore.org/shade/math32"
	"cogentcore.org/shade/raster"
)

// Scene is the demo scene: a ground plane and a grid of instanced
// boxes lit by the point light, with the light marker and the collider
// overlay of a capsule and a cylinder.
type Scene struct {
	Config *config.Config

	Camera *phong.CameraView

	Light phong.Light

	// Draws are the draws of the scene, in order, without the HUD.
	Draws []*raster.Draw

	// Frame is the number of the current frame.
	Frame int
}

// NewScene returns the scene of the given config for
// a render target of the given size.
func NewScene(cf *config.Config, width, height int) (*Scene, error) {
	sc := &Scene{Config: cf}
	sc.Camera = cf.Camera.CameraView(width, height)
	sc.Light = cf.Light.PhongLight()
	if err := sc.build(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scene) build() error {
	scf := &sc.Config.Scene
	add := func(vt phong.Variants, ms *shape.Mesh, mat *phong.Material) (*raster.Draw, error) {
		dr, err := raster.NewDraw(vt, ms, mat)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", ms.Name, err)
		}
		sc.Draws = append(sc.Draws, dr)
		return dr, nil
	}
	if scf.Ground {
		gr := shape.NewPlane(40, 40)
		gr.Offset = -0.5
		mat := phong.NewMaterial("ground", checker(256, 16, color.RGBA{120, 120, 110, 255}, color.RGBA{70, 80, 70, 255}))
		mat.Sampler.Filter = gpu.Nearest
		if _, err := add(phong.LitStatic, gr.Mesh(), mat); err != nil {
			return err
		}
	}
	if scf.Instances > 0 {
		dr, err := add(phong.LitInstanced, shape.NewBox(1, 1, 1).Mesh(), phong.NewColorMaterial("boxes", color.RGBA{230, 150, 90, 255}))
		if err != nil {
			return err
		}
		dr.Instances = Instances(scf.Instances, scf.Spacing)
	}
	if scf.Marker {
		if _, err := add(phong.DebugMarker, shape.NewBox(1, 1, 1).Mesh(), nil); err != nil {
			return err
		}
	}
	if scf.Colliders {
		cp := shape.NewCapsule(0.5, 0.75)
		dr, err := add(phong.DebugOverlay, cp.Mesh(), nil)
		if err != nil {
			return err
		}
		offset(dr, math32.Vec3(-3, 0.75, 0))
		dr, err = add(phong.DebugOverlay, cp.Outline(), nil)
		if err != nil {
			return err
		}
		offset(dr, math32.Vec3(-3, 0.75, 0))
		cy := shape.NewCylinder(0.6, 0.5)
		dr, err = add(phong.DebugOverlay, cy.Mesh(), nil)
		if err != nil {
			return err
		}
		offset(dr, math32.Vec3(3, 0, 0))
		dr, err = add(phong.DebugOverlay, cy.Outline(), nil)
		if err != nil {
			return err
		}
		offset(dr, math32.Vec3(3, 0, 0))
	}
	return nil
}

// offset moves the world space positions of a collider draw.
func offset(dr *raster.Draw, pos math32.Vector3) {
	for i := range dr.Vertices {
		dr.Vertices[i].Position = dr.Vertices[i].Position.Add(pos)
	}
}

// Instances returns the instances of an n x n grid of boxes with the
// given spacing, centered on the origin in the ground plane. Each box
// is turned 45 degrees about the direction from the center, and the
// box at the center is not turned.
func Instances(n int, spacing float32) []phong.InstanceRaw {
	insts := make([]phong.InstanceRaw, 0, n*n)
	half := float32(n-1) / 2
	for z := range n {
		for x := range n {
			pos := math32.Vec3((float32(x)-half)*spacing, 0, (float32(z)-half)*spacing)
			rot := math32.QuatIdentity()
			if pos.Length() > 0 {
				rot = math32.NewQuatAxisAngle(pos.Normal(), math32.DegToRad(45))
			}
			in := phong.NewInstance(pos, rot)
			insts = append(insts, in.Raw())
		}
	}
	return insts
}

// checker returns a checkerboard image of the given size
// with cells of the given size.
func checker(size, cell int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

// PhongFrame returns the uniforms of the current frame.
func (sc *Scene) PhongFrame() *phong.Frame {
	return phong.NewFrame(sc.Camera.Camera(), sc.Light)
}

// Step advances to the next frame, orbiting the light.
func (sc *Scene) Step() {
	sc.Light.Orbit(sc.Config.Light.Orbit)
	sc.Frame++
}

// HUDLines returns the lines of text of the HUD for the current frame.
func (sc *Scene) HUDLines() []string {
	lp := sc.Light.Position
	return []string{
		fmt.Sprintf("frame %d/%d", sc.Frame+1, sc.Config.Render.Frames),
		fmt.Sprintf("light (%.2f, %.2f, %.2f)", lp.X, lp.Y, lp.Z),
		fmt.Sprintf("lighting %s", sc.Config.Render.Lighting),
	}
}

// HUD returns the draw of the HUD for the current frame: a screen
// quad at the top left of a target of the given size, textured
// with the HUD text by the plain texture pass.
func (sc *Scene) HUD(width, height int, scale float64) (*raster.Draw, error) {
	img, err := raster.TextTexture(sc.HUDLines(), 14*scale, color.White)
	if err != nil {
		return nil, err
	}
	mat := phong.NewMaterial("hud", img)
	mat.Sampler.SetModes(gpu.ClampToEdge, gpu.ClampToEdge)
	mat.Sampler.Filter = gpu.Nearest
	return ScreenQuad(img.Bounds().Size(), width, height, mat), nil
}

// ScreenQuad returns a plain texture draw of a quad of the given
// size in pixels at the top left of a target of the given size.
func ScreenQuad(size image.Point, width, height int, mat *phong.Material) *raster.Draw {
	x1 := -1 + 2*float32(size.X)/float32(width)
	y1 := 1 - 2*float32(size.Y)/float32(height)
	return &raster.Draw{
		Variant:  phong.Unlit,
		Topology: gpu.TriangleList,
		Vertices: []phong.Vertex{
			{Position: math32.Vec3(-1, y1, 0), TexCoords: math32.Vec2(0, 1)},
			{Position: math32.Vec3(x1, y1, 0), TexCoords: math32.Vec2(1, 1)},
			{Position: math32.Vec3(x1, 1, 0), TexCoords: math32.Vec2(1, 0)},
			{Position: math32.Vec3(-1, 1, 0), TexCoords: math32.Vec2(0, 0)},
		},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
		Material: mat,
	}
}
