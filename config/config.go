// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the shade tool:
// the render target, the camera, the light and the demo scene,
// stored in TOML or YAML files.
package config

import (
	"fmt"

	"cogentcore.org/shade/gpu/phong"
	"cogentcore.org/shade/math32"
	"github.com/Masterminds/semver/v3"
	"github.com/jinzhu/copier"
	"github.com/lucasb-eyer/go-colorful"
)

// Version is the version of the config format written by [Save].
const Version = "1.1.0"

// compatible is the range of config format versions that [Open] reads.
var compatible = semver.MustParse(Version)

// Config is the main config struct that contains
// all of the configuration options for the shade tool.
type Config struct {

	// Version is the config format version. It is
	// filled in by [Save], and empty means the current one.
	Version string `toml:"version" yaml:"version"`

	// Render holds the render target and output options.
	Render Render `toml:"render" yaml:"render"`

	Camera Camera `toml:"camera" yaml:"camera"`

	Light Light `toml:"light" yaml:"light"`

	Scene Scene `toml:"scene" yaml:"scene"`
}

// Render is the configuration of the render target and output.
type Render struct {

	// Width and Height of the output image in pixels.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// Supersample renders at this multiple of the size and
	// downsamples, to antialias edges. 1 is off.
	Supersample int `toml:"supersample" yaml:"supersample"`

	// Bands is the number of row bands shaded in parallel.
	// 0 uses all of the processors.
	Bands int `toml:"bands" yaml:"bands"`

	// Lighting is the lighting model of the lit passes: full or reduced.
	Lighting string `toml:"lighting" yaml:"lighting"`

	// Output is the image file to write, with a .png or .webp
	// extension. A leading ~ is the home directory.
	Output string `toml:"output" yaml:"output"`

	// Frames is the number of frames to render, orbiting the light
	// between them. Frames after the first are numbered.
	Frames int `toml:"frames" yaml:"frames"`

	// HUD draws a text overlay with the frame information.
	HUD bool `toml:"hud" yaml:"hud"`
}

// Camera is the configuration of the camera.
type Camera struct {
	Eye math32.Vector3 `toml:"eye" yaml:"eye"`

	// Yaw and Pitch are the viewing angles in degrees.
	Yaw   float32 `toml:"yaw" yaml:"yaw"`
	Pitch float32 `toml:"pitch" yaml:"pitch"`

	// FOV is the vertical field of view in degrees.
	FOV float32 `toml:"fov" yaml:"fov"`

	Near float32 `toml:"near" yaml:"near"`
	Far  float32 `toml:"far" yaml:"far"`
}

// Light is the configuration of the point light.
type Light struct {
	Position math32.Vector3 `toml:"position" yaml:"position"`

	// Colour is the linear RGB colour of the light.
	Colour math32.Vector3 `toml:"colour" yaml:"colour"`

	// Hex is an sRGB hex colour such as "#f5d4ff", which
	// overrides Colour if set.
	Hex string `toml:"hex,omitempty" yaml:"hex,omitempty"`

	FalloffScale float32 `toml:"falloff_scale" yaml:"falloff_scale"`

	Brightness float32 `toml:"brightness" yaml:"brightness"`

	// Orbit is the angle in degrees that the light
	// orbits about the vertical axis per frame.
	Orbit float32 `toml:"orbit" yaml:"orbit"`
}

// Scene is the configuration of the demo scene.
type Scene struct {

	// Instances is the number of instanced boxes per side
	// of the grid of boxes.
	Instances int `toml:"instances" yaml:"instances"`

	// Spacing is the distance between the instanced boxes.
	Spacing float32 `toml:"spacing" yaml:"spacing"`

	Ground bool `toml:"ground" yaml:"ground"`

	// Marker draws the light marker.
	Marker bool `toml:"marker" yaml:"marker"`

	// Colliders draws the collider overlay.
	Colliders bool `toml:"colliders" yaml:"colliders"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: Version,
		Render: Render{
			Width:       1280,
			Height:      720,
			Supersample: 1,
			Lighting:    "full",
			Output:      "shade.png",
			Frames:      1,
		},
		Camera: Camera{
			Eye:  math32.Vec3(0, 2, 6),
			FOV:  45,
			Near: 0.1,
			Far:  100,
		},
		Light: Light{
			Position:     math32.Vec3(2, 3, 2),
			Colour:       math32.Vec3(0.96, 0.68, 1),
			FalloffScale: 1,
			Brightness:   1,
			Orbit:        phong.OrbitDegrees,
		},
		Scene: Scene{
			Instances: 4,
			Spacing:   2,
			Ground:    true,
			Marker:    true,
			Colliders: true,
		},
	}
}

// Clone returns a deep copy of the config.
func (cf *Config) Clone() *Config {
	cp := &Config{}
	if err := copier.CopyWithOption(cp, cf, copier.Option{DeepCopy: true}); err != nil {
		panic(err) // only fails for mismatched types
	}
	return cp
}

// Validate returns an error for a config that cannot be rendered.
func (cf *Config) Validate() error {
	if cf.Version != "" {
		v, err := semver.NewVersion(cf.Version)
		if err != nil {
			return fmt.Errorf("config: version %q: %w", cf.Version, err)
		}
		if v.Major() != compatible.Major() || v.GreaterThan(compatible) {
			return fmt.Errorf("config: version %s is not compatible with %s", v, compatible)
		}
	}
	rd := &cf.Render
	if rd.Width <= 0 || rd.Height <= 0 {
		return fmt.Errorf("config: render size %dx%d must be positive", rd.Width, rd.Height)
	}
	if rd.Supersample < 1 || rd.Supersample > 8 {
		return fmt.Errorf("config: supersample %d must be in 1..8", rd.Supersample)
	}
	if rd.Frames < 1 {
		return fmt.Errorf("config: frames %d must be at least 1", rd.Frames)
	}
	if _, err := cf.LightingModel(); err != nil {
		return err
	}
	cm := &cf.Camera
	if cm.FOV <= 0 || cm.FOV >= 180 {
		return fmt.Errorf("config: camera fov %g must be in (0, 180)", cm.FOV)
	}
	if cm.Near <= 0 || cm.Far <= cm.Near {
		return fmt.Errorf("config: camera near %g and far %g must satisfy 0 < near < far", cm.Near, cm.Far)
	}
	if cf.Light.FalloffScale <= 0 {
		return fmt.Errorf("config: light falloff_scale %g must be positive", cf.Light.FalloffScale)
	}
	if _, err := cf.Light.LinearColour(); err != nil {
		return err
	}
	return nil
}

// LightingModel returns the lighting model named by [Render.Lighting].
func (cf *Config) LightingModel() (phong.LightingModel, error) {
	switch cf.Render.Lighting {
	case "", "full":
		return phong.FullLighting, nil
	case "reduced":
		return phong.ReducedLighting, nil
	}
	return phong.LightingModel{}, fmt.Errorf("config: unknown lighting model %q, want full or reduced", cf.Render.Lighting)
}

// LinearColour returns the light colour in linear RGB.
func (lt *Light) LinearColour() (math32.Vector3, error) {
	if lt.Hex == "" {
		return lt.Colour, nil
	}
	c, err := colorful.Hex(lt.Hex)
	if err != nil {
		return math32.Vector3{}, fmt.Errorf("config: light hex: %w", err)
	}
	r, g, b := c.LinearRgb()
	return math32.Vec3(float32(r), float32(g), float32(b)), nil
}

// PhongLight returns the light uniform for the light.
func (lt *Light) PhongLight() phong.Light {
	clr, err := lt.LinearColour()
	if err != nil {
		clr = lt.Colour
	}
	pl := phong.NewLight(lt.Position, clr)
	pl.FalloffScale = lt.FalloffScale
	pl.Brightness = lt.Brightness
	return pl
}

// CameraView returns the camera controller for the camera,
// for a target of the given size.
func (cm *Camera) CameraView(width, height int) *phong.CameraView {
	cv := phong.NewCameraView(cm.Eye, width, height)
	cv.FOV = cm.FOV
	cv.Near = cm.Near
	cv.Far = cm.Far
	cv.Turn(math32.DegToRad(cm.Yaw)/phong.TurnSpeed, math32.DegToRad(cm.Pitch)/phong.TurnSpeed)
	return cv
}
