// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"image"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"cogentcore.org/shade/base/iox/imagex"
	"cogentcore.org/shade/config"
	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/gpu/phong"
	"cogentcore.org/shade/math32"
	"cogentcore.org/shade/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(t *testing.T, output string) *config.Config {
	t.Helper()
	cf := config.Defaults()
	cf.Render.Width = 64
	cf.Render.Height = 36
	cf.Render.Output = filepath.Join(t.TempDir(), output)
	return cf
}

func TestInstances(t *testing.T) {
	insts := Instances(3, 2)
	require.Len(t, insts, 9)
	center := insts[4].Model()
	assert.Equal(t, math32.Vec3(0, 0, 0), center.Pos())
	assert.Equal(t, *math32.Identity4(), *center)
	corner := insts[0].Model()
	assert.Equal(t, math32.Vec3(-2, 0, -2), corner.Pos())
	assert.Empty(t, Instances(0, 2))
}

func TestScene(t *testing.T) {
	cf := smallConfig(t, "scene.png")
	sc, err := NewScene(cf, 64, 36)
	require.NoError(t, err)
	// ground, boxes, marker, and the mesh and outline of two colliders
	require.Len(t, sc.Draws, 7)
	assert.Equal(t, phong.LitStatic, sc.Draws[0].Variant)
	assert.Equal(t, phong.LitInstanced, sc.Draws[1].Variant)
	assert.Len(t, sc.Draws[1].Instances, 16)
	assert.Equal(t, phong.DebugMarker, sc.Draws[2].Variant)
	assert.Equal(t, gpu.LineList, sc.Draws[4].Topology)

	p0 := sc.Light.Position
	sc.Step()
	assert.Equal(t, 1, sc.Frame)
	assert.NotEqual(t, p0, sc.Light.Position)
	assert.InDelta(t, p0.Length(), sc.Light.Position.Length(), 1e-4)
	assert.Contains(t, sc.HUDLines()[0], "frame 2/1")

	cf.Scene = config.Scene{}
	sc, err = NewScene(cf, 64, 36)
	require.NoError(t, err)
	assert.Empty(t, sc.Draws)
}

func TestRenderFrame(t *testing.T) {
	cf := smallConfig(t, "frame.png")
	cf.Render.HUD = true
	sc, err := NewScene(cf, 64, 36)
	require.NoError(t, err)
	ph, err := phong.NewPhong(phong.FullLighting)
	require.NoError(t, err)
	rd := raster.NewRenderer(ph, raster.NewTarget(64, 36))
	img, err := RenderFrame(context.Background(), rd, sc, 1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 36), img.Bounds())

	bgt := raster.NewTarget(1, 1)
	bgt.Clear(ClearColor)
	bg := bgt.Image().RGBAAt(0, 0)
	differ := 0
	for y := range 36 {
		for x := range 64 {
			if img.RGBAAt(x, y) != bg {
				differ++
			}
		}
	}
	assert.Greater(t, differ, 64*36/4, "the scene covers the target")
}

func TestRender(t *testing.T) {
	cf := smallConfig(t, "orbit.png")
	cf.Render.Frames = 2
	cf.Render.Supersample = 2
	cf.Render.Bands = 3
	require.NoError(t, Render(context.Background(), cf, false))
	for i := range 2 {
		im, f, err := imagex.Open(FrameFilename(cf.Render.Output, i, 2))
		require.NoError(t, err)
		assert.Equal(t, imagex.PNG, f)
		assert.Equal(t, image.Rect(0, 0, 64, 36), im.Bounds())
	}

	cf = smallConfig(t, "single.webp")
	cf.Render.Lighting = "reduced"
	require.NoError(t, Render(context.Background(), cf, false))
	_, f, err := imagex.Open(cf.Render.Output)
	require.NoError(t, err)
	assert.Equal(t, imagex.WebP, f)

	cf = smallConfig(t, "bad.gif")
	assert.Error(t, Render(context.Background(), cf, false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cf = smallConfig(t, "cancel.png")
	assert.ErrorIs(t, Render(ctx, cf, false), context.Canceled)
}

func TestFrameFilename(t *testing.T) {
	assert.Equal(t, "out/a.png", FrameFilename("out/a.png", 0, 1))
	assert.Equal(t, "out/a-0012.webp", FrameFilename("out/a.webp", 12, 20))
}

func TestParseVariant(t *testing.T) {
	vt, err := ParseVariant("litinstanced")
	require.NoError(t, err)
	assert.Equal(t, phong.LitInstanced, vt)

	_, err = ParseVariant("LitStatc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean LitStatic?")

	_, err = ParseVariant("zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want one of")
}

func TestShaders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Shaders(&buf, "LitStatic", phong.ReducedLighting, false))
	code := buf.String()
	assert.Contains(t, code, "fn vs_main")
	assert.Contains(t, code, "override use_specular: bool = false;")

	buf.Reset()
	require.NoError(t, Shaders(&buf, "DebugOverlay", phong.FullLighting, true))
	assert.Contains(t, buf.String(), "\x1b[")

	assert.Error(t, Shaders(&buf, "Lit", phong.FullLighting, false))
}

func TestLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Layout(&buf, phong.FullLighting, nil))
	out := buf.String()
	assert.Contains(t, out, "LitInstanced (instanced.wgsl)")
	assert.Contains(t, out, "Pipeline: DebugOverlay:LineList")
	assert.Contains(t, out, "cull: none, blend: alpha")
	assert.Contains(t, out, "use_attenuation")

	mf := fstest.MapFS{}
	require.NoError(t, fs.WalkDir(phong.Shaders(), "shaders", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := fs.ReadFile(phong.Shaders(), path)
		if path == "shaders/light.wgsl" {
			b = []byte(strings.ReplaceAll(string(b), "vs_main", "vertex_main"))
		}
		mf[path] = &fstest.MapFile{Data: b}
		return err
	}))
	assert.Error(t, Layout(&buf, phong.FullLighting, mf))
}
