// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"image/color"
	"testing"

	"cogentcore.org/shade/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestVector3(t *testing.T) {
	assert.Equal(t, Vector3{5, 10, 15}, Vec3(5, 10, 15))
	assert.Equal(t, Vector3{2, 2, 2}, Vector3Scalar(2))

	v := Vector3{}
	v.Set(-1, 7, 3)
	assert.Equal(t, Vec3(-1, 7, 3), v)
	v.SetDim(Z, 4)
	assert.Equal(t, float32(4), v.Dim(Z))
	assert.Equal(t, "Z", Z.String())

	a := Vec3(1, 2, 3)
	b := Vec3(4, 5, 6)
	assert.Equal(t, Vec3(5, 7, 9), a.Add(b))
	assert.Equal(t, Vec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, Vec3(4, 10, 18), a.Mul(b))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vec3(-3, 6, -3), a.Cross(b))
	assert.Equal(t, Vec3(1, 2, 3), a.Min(b))
	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	assert.Equal(t, Vec3(2.5, 3.5, 4.5), a.Lerp(b, 0.5))
	assert.Equal(t, Vector3{}, a.DivScalar(0))

	tolassert.EqualTol(t, 5, Vec3(3, 4, 0).Length(), StandardTol)
	tolassert.EqualTol(t, 5, Vec3(0, 0, 0).DistanceTo(Vec3(0, 5, 0)), StandardTol)
	assert.Equal(t, Vec3(0, 1, 0), Vec3(0, 3, 0).Normal())
	assert.Equal(t, Vec3(0, 1, 0), Vec3(0, 3, 0).Normalize())
}

func TestVector3NormalZero(t *testing.T) {
	assert.Equal(t, Vector3{}, Vector3{}.Normal())
	assert.True(t, Vector3{}.Normalize().IsNaN())
}

func TestVector4(t *testing.T) {
	v := Vector4FromVector3(Vec3(1, 2, 3), 1)
	assert.Equal(t, Vec4(1, 2, 3, 1), v)
	assert.Equal(t, Vec3(1, 2, 3), v.Vector3())
	assert.Equal(t, Vec3(0.5, 1, 1.5), Vec4(1, 2, 3, 2).PerspDiv())

	sl := make([]float32, 5)
	v.ToSlice(sl, 1)
	assert.Equal(t, []float32{0, 1, 2, 3, 1}, sl)
	var r Vector4
	r.FromSlice(sl, 1)
	assert.Equal(t, v, r)

	c := NewVector4Color(color.NRGBA{255, 0, 51, 255})
	tolassert.EqualTol(t, 0.2, c.Z, StandardTol)
	assert.Equal(t, color.NRGBA{255, 0, 51, 255}, c.AsNRGBA())
	assert.Equal(t, color.NRGBA{255, 0, 0, 0}, Vec4(2, -1, 0, 0).AsNRGBA())

	lin := Vec4(0.5, 0.5, 0.5, 0.3).SRGBToLinear()
	assert.Equal(t, float32(0.3), lin.W)
	tolassert.EqualTol(t, 0.5, lin.SRGBFromLinear().X, 1.0e-4)
}

func TestVector2(t *testing.T) {
	v := Vec2(1, 2)
	assert.Equal(t, Vec2(3, 3), v.Add(Vec2(2, 1)))
	assert.Equal(t, Vec2(2, 4), v.MulScalar(2))
	assert.Equal(t, Vec2(0.5, 1), Vector2{}.Lerp(v, 0.5))
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.ExpandByPoint(Vec3(-1, 0, 2))
	b.ExpandByPoint(Vec3(1, 3, -2))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, B3(-1, 0, -2, 1, 3, 2), b)

	o := B3Empty()
	o.ExpandByPoint(Vec3(0, 5, 0))
	b.ExpandByBox(o)
	assert.Equal(t, B3(-1, 0, -2, 1, 5, 2), b)
	assert.Equal(t, "[(-1, 0, -2) - (1, 5, 2)]", b.String())
}

func TestQuat(t *testing.T) {
	assert.True(t, QuatIdentity().IsIdentity())
	assert.Equal(t, QuatIdentity(), Quat{}.Normal())
	q := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(45))
	qq := q.Mul(q)
	TolAssertEqualVector3(t, StandardTol, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(qq))
	tolassert.EqualTol(t, 1, qq.Length(), StandardTol)
	TolAssertEqualVector3(t, StandardTol, Vec3(1, 0, 0), Vec3(1, 0, 0).MulQuat(qq).MulQuat(qq.Conjugate()))
}

func TestMulQuatAxis(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(0.8))
	v := Vec3(2, 3, 2)
	r := v.Length()
	for range 450 {
		v = v.MulQuat(q)
		assert.Equal(t, float32(3), v.Y)
	}
	tolassert.EqualTol(t, r, v.Length(), 1e-4)
	TolAssertEqualVector3(t, 1e-3, Vec3(2, 3, 2), v)
}

func TestMath(t *testing.T) {
	assert.Equal(t, float32(3), Clamp(5, 0, 3))
	assert.Equal(t, float32(2), Lerp(0, 4, 0.5))
	tolassert.EqualTol(t, Pi, DegToRad(180), StandardTol)
	tolassert.EqualTol(t, 90, RadToDeg(Pi/2), 1.0e-4)
	assert.True(t, IsNaN(Sqrt(-1)))
}
