// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"cogentcore.org/shade/math32"
)

// Camera contains the camera eye position and combined view-projection
// matrix, for uniform uploading. EyePosition.W is 1.
type Camera struct {
	// EyePosition is the world position of the camera, used for the
	// specular view direction.
	EyePosition math32.Vector4

	// ViewProjection transforms world coordinates into clip space.
	ViewProjection math32.Matrix4
}

// NewCamera returns the camera uniform for given eye position
// and view-projection matrix.
func NewCamera(eye math32.Vector3, viewProjection *math32.Matrix4) Camera {
	return Camera{EyePosition: math32.Vector4FromVector3(eye, 1), ViewProjection: *viewProjection}
}

// Eye returns the eye position.
func (cm *Camera) Eye() math32.Vector3 {
	return cm.EyePosition.Vector3()
}

// OpenGLToWGPU maps the OpenGL clip depth range of -1..1,
// as produced by [math32.Perspective], onto the 0..1 of WebGPU.
var OpenGLToWGPU = math32.Matrix4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Camera controller defaults.
const (
	// MoveSpeed is the distance moved per [CameraView.Move] step.
	MoveSpeed = 0.1

	// TurnSpeed is the angle in radians turned per [CameraView.Turn] step.
	TurnSpeed = 0.03

	// MaxPitch is the limit on the vertical angle, short of straight up or down.
	MaxPitch = math32.Pi/2 - 0.05
)

// CameraView is a first-person camera: an eye position with a horizontal
// (yaw about +Y) and vertical (pitch about +X) viewing angle, and the
// perspective projection parameters. It produces the [Camera] uniform.
type CameraView struct {
	// Eye is the camera position in world coordinates.
	Eye math32.Vector3

	// Horizontal is the yaw in radians, in [0, 2pi).
	Horizontal float32

	// Vertical is the pitch in radians, within +/- [MaxPitch].
	Vertical float32

	// Up is the up direction of the view.
	Up math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Aspect is the width / height ratio of the target.
	Aspect float32

	// Near and Far are the clipping plane distances.
	Near, Far float32
}

// NewCameraView returns a CameraView at the given eye position,
// looking down -Z, for a target of given size.
func NewCameraView(eye math32.Vector3, width, height int) *CameraView {
	cv := &CameraView{}
	cv.Defaults()
	cv.Eye = eye
	cv.SetSize(width, height)
	return cv
}

func (cv *CameraView) Defaults() {
	cv.Up = math32.Vec3(0, 1, 0)
	cv.FOV = 45
	cv.Aspect = 1280.0 / 720.0
	cv.Near = 0.1
	cv.Far = 100
}

// SetSize sets the aspect ratio from the target size.
func (cv *CameraView) SetSize(width, height int) {
	if width > 0 && height > 0 {
		cv.Aspect = float32(width) / float32(height)
	}
}

// Rotation returns the rotation of the view direction:
// the yaw applied after the pitch.
func (cv *CameraView) Rotation() math32.Matrix3 {
	ry := math32.Matrix3RotationY(cv.Horizontal)
	rx := math32.Matrix3RotationX(cv.Vertical)
	return ry.Mul(rx)
}

// Direction returns the unit viewing direction: -Z rotated by [CameraView.Rotation].
func (cv *CameraView) Direction() math32.Vector3 {
	rot := cv.Rotation()
	return rot.MulVector3(math32.Vec3(0, 0, -1))
}

// View returns the view matrix, looking from Eye along Direction.
func (cv *CameraView) View() *math32.Matrix4 {
	return math32.LookAt(cv.Eye, cv.Eye.Add(cv.Direction()), cv.Up)
}

// Projection returns the WebGPU perspective projection matrix.
func (cv *CameraView) Projection() *math32.Matrix4 {
	return OpenGLToWGPU.Mul(math32.Perspective(cv.FOV, cv.Aspect, cv.Near, cv.Far))
}

// ViewProjection returns the combined view-projection matrix.
func (cv *CameraView) ViewProjection() *math32.Matrix4 {
	return cv.Projection().Mul(cv.View())
}

// Camera returns the camera uniform for the current view.
func (cv *CameraView) Camera() Camera {
	return NewCamera(cv.Eye, cv.ViewProjection())
}

// Move moves the eye by the given number of [MoveSpeed] steps:
// right and forward in the horizontal plane of the view direction,
// and up along world Y. It returns true if the eye moved.
func (cv *CameraView) Move(right, forward, up float32) bool {
	moved := false
	if right != 0 || forward != 0 {
		rot := cv.Rotation()
		dir := rot.MulVector3(math32.Vec3(right, 0, -forward))
		dir.Y = 0
		cv.Eye = cv.Eye.Add(dir.Normalize().MulScalar(MoveSpeed))
		moved = true
	}
	if up != 0 {
		cv.Eye.Y += up * MoveSpeed
		moved = true
	}
	return moved
}

// Turn turns the view by the given number of [TurnSpeed] steps,
// left about +Y and up about the view's X axis. The pitch is clamped
// to [MaxPitch] and the yaw wraps at 2pi. It returns true if the
// view changed.
func (cv *CameraView) Turn(left, up float32) bool {
	cv.Vertical = math32.Clamp(cv.Vertical+up*TurnSpeed, -MaxPitch, MaxPitch)
	cv.Horizontal = math32.Mod(cv.Horizontal+left*TurnSpeed, 2*math32.Pi)
	if cv.Horizontal < 0 {
		cv.Horizontal += 2 * math32.Pi
	}
	return left != 0 || up != 0
}
