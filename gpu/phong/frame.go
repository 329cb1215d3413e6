// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

// Frame is the camera and light state for one frame. It is set once when
// the frame starts and then only read, by every draw of the frame.
type Frame struct {
	camera Camera
	light  Light
}

// NewFrame returns the frame state for the given camera and light.
func NewFrame(cm Camera, lt Light) *Frame {
	return &Frame{camera: cm, light: lt}
}

// Camera returns the camera uniform of the frame.
func (fr *Frame) Camera() *Camera {
	cm := fr.camera
	return &cm
}

// Light returns the light uniform of the frame.
func (fr *Frame) Light() *Light {
	lt := fr.light
	return &lt
}

// Bytes returns the camera and light uniform data of the frame.
func (fr *Frame) Bytes() (camera, light []byte) {
	return fr.camera.Bytes(), fr.light.Bytes()
}
