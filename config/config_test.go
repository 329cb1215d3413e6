// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/shade/base/tolassert"
	"cogentcore.org/shade/gpu/phong"
	"cogentcore.org/shade/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cf := Defaults()
	require.NoError(t, cf.Validate())
	assert.Equal(t, 1280, cf.Render.Width)
	assert.Equal(t, 720, cf.Render.Height)
	assert.Equal(t, float32(45), cf.Camera.FOV)
	assert.Equal(t, math32.Vec3(2, 3, 2), cf.Light.Position)
	assert.Equal(t, float32(0.8), cf.Light.Orbit)

	lm, err := cf.LightingModel()
	require.NoError(t, err)
	assert.Equal(t, phong.FullLighting, lm)

	lt := cf.Light.PhongLight()
	assert.Equal(t, math32.Vec3(0.96, 0.68, 1), lt.Colour)
	assert.Equal(t, float32(1), lt.Brightness)
}

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	cf := Defaults()
	cf.Render.Width = 640
	cf.Render.Lighting = "reduced"
	cf.Camera.Eye = math32.Vec3(1, 2.5, -4)
	cf.Light.Hex = "#ff8000"
	cf.Scene.Colliders = false
	for _, fn := range []string{"shade.toml", "shade.yaml", "shade.yml"} {
		path := filepath.Join(dir, fn)
		require.NoError(t, cf.Save(path), fn)
		got, err := Open(path)
		require.NoError(t, err, fn)
		assert.Equal(t, cf, got, fn)
	}
	assert.Error(t, cf.Save(filepath.Join(dir, "shade.json")))
	_, err := Open(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestOpenPartial(t *testing.T) {
	dir := t.TempDir()
	tm := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(tm, []byte("[render]\nwidth = 320\nheight = 200\n\n[light]\nbrightness = 2.5\n"), 0666))
	cf, err := Open(tm)
	require.NoError(t, err)
	assert.Equal(t, 320, cf.Render.Width)
	assert.Equal(t, 200, cf.Render.Height)
	assert.Equal(t, float32(2.5), cf.Light.Brightness)
	assert.Equal(t, Defaults().Camera, cf.Camera)

	ym := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(ym, []byte("camera:\n  eye: {x: 0, y: 1, z: 3}\n  yaw: 90\n"), 0666))
	cf, err = Open(ym)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(0, 1, 3), cf.Camera.Eye)
	cv := cf.Camera.CameraView(cf.Render.Width, cf.Render.Height)
	tolassert.EqualTol(t, math32.Pi/2, cv.Horizontal, 1e-5)
	assert.Equal(t, cf.Camera.Far, cv.Far)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0666))
	cf, err = Open(empty)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cf)
}

func TestUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	tm := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(tm, []byte("[render]\nwidht = 320\n"), 0666))
	_, err := Open(tm)
	assert.Error(t, err)

	ym := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(ym, []byte("light:\n  colour_hex: '#fff'\n"), 0666))
	_, err = Open(ym)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for name, mod := range map[string]func(cf *Config){
		"width":       func(cf *Config) { cf.Render.Width = 0 },
		"supersample": func(cf *Config) { cf.Render.Supersample = 0 },
		"frames":      func(cf *Config) { cf.Render.Frames = 0 },
		"lighting":    func(cf *Config) { cf.Render.Lighting = "flat" },
		"fov":         func(cf *Config) { cf.Camera.FOV = 180 },
		"near":        func(cf *Config) { cf.Camera.Near = 0 },
		"far":         func(cf *Config) { cf.Camera.Far = cf.Camera.Near },
		"falloff":     func(cf *Config) { cf.Light.FalloffScale = 0 },
		"hex":         func(cf *Config) { cf.Light.Hex = "#12" },
		"version":     func(cf *Config) { cf.Version = "two" },
		"major":       func(cf *Config) { cf.Version = "2.0.0" },
		"newer":       func(cf *Config) { cf.Version = "1.9.0" },
	} {
		cf := Defaults()
		mod(cf)
		assert.Error(t, cf.Validate(), name)
	}
	cf := Defaults()
	cf.Version = "1.0.0"
	assert.NoError(t, cf.Validate())
	cf.Version = ""
	assert.NoError(t, cf.Validate())
}

func TestLinearColour(t *testing.T) {
	lt := Defaults().Light
	lt.Hex = "#ffffff"
	clr, err := lt.LinearColour()
	require.NoError(t, err)
	tolassert.EqualTolSlice(t, []float32{1, 1, 1}, []float32{clr.X, clr.Y, clr.Z}, 1e-5)

	lt.Hex = "#808080"
	clr, err = lt.LinearColour()
	require.NoError(t, err)
	tolassert.EqualTol(t, math32.SRGBToLinearComp(128.0/255.0), clr.X, 1e-4)
}

func TestClone(t *testing.T) {
	cf := Defaults()
	cp := cf.Clone()
	assert.Equal(t, cf, cp)
	cp.Light.Position.X = 10
	cp.Render.Output = "other.webp"
	assert.Equal(t, float32(2), cf.Light.Position.X)
	assert.Equal(t, "shade.png", cf.Render.Output)
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("a/b/Shade.YML")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
	f, err = FormatOf("shade.toml")
	require.NoError(t, err)
	assert.Equal(t, TOML, f)
	_, err = FormatOf("shade")
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.toml")
	require.NoError(t, Defaults().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cf *Config, err error) {
			if err != nil {
				return
			}
			select {
			case got <- cf:
			default:
			}
		})
	}()

	cf := Defaults()
	cf.Render.Width = 800
	timeout := time.After(10 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case c := <-got:
			if c.Render.Width == 800 {
				break loop
			}
		case <-tick.C:
			// rewrite until the watcher has started and sees a write
			require.NoError(t, cf.Save(path))
		case <-timeout:
			t.Fatal("no change seen by Watch")
		}
	}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
