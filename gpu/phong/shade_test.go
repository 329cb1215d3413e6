// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/shade/base/tolassert"
	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = float32(1e-5)

func assertVector3(t *testing.T, expected, actual math32.Vector3, msgAndArgs ...any) {
	t.Helper()
	tolassert.EqualTol(t, expected.X, actual.X, tol, msgAndArgs...)
	tolassert.EqualTol(t, expected.Y, actual.Y, tol, msgAndArgs...)
	tolassert.EqualTol(t, expected.Z, actual.Z, tol, msgAndArgs...)
}

func assertVector4(t *testing.T, expected, actual math32.Vector4, msgAndArgs ...any) {
	t.Helper()
	assertVector3(t, expected.Vector3(), actual.Vector3(), msgAndArgs...)
	tolassert.EqualTol(t, expected.W, actual.W, tol, msgAndArgs...)
}

func testCamera() Camera {
	cv := NewCameraView(math32.Vec3(1, 2, 8), 1280, 720)
	cv.Turn(2, -3)
	return cv.Camera()
}

// testPoints are points spread around the unit cube.
func testPoints() []math32.Vector3 {
	var pts []math32.Vector3
	for _, x := range []float32{-1, 0.3, 1} {
		for _, y := range []float32{-0.7, 0, 1.5} {
			for _, z := range []float32{-2, 0.5} {
				pts = append(pts, math32.Vec3(x, y, z))
			}
		}
	}
	return pts
}

func TestVertexStageNoInstance(t *testing.T) {
	cm := testCamera()
	for _, p := range testPoints() {
		v := Vertex{Position: p, TexCoords: math32.Vec2(0.2, 3), Normal: math32.Vec3(0, 2, 0)}
		out := VertexStage(&cm, &v, nil)
		expect := cm.ViewProjection.MulVector4(math32.Vector4FromVector3(p, 1))
		assertVector4(t, expect, out.Clip)
		assert.Equal(t, p, out.WorldPosition)
		assert.Equal(t, v.Normal, out.WorldNormal, "normal is not normalized by the vertex stage")
		assert.Equal(t, v.TexCoords, out.TexCoords)
	}
}

func TestVertexStageInstance(t *testing.T) {
	cm := testCamera()
	in := NewInstance(math32.Vec3(3, -1, 2), math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), 0.7))
	raw := in.Raw()
	for _, p := range testPoints() {
		v := Vertex{Position: p, Normal: math32.Vec3(1, 0, 0)}
		out := VertexStage(&cm, &v, &raw)
		world := raw.Model().MulVector4(math32.Vector4FromVector3(p, 1))
		assertVector3(t, world.Vector3(), out.WorldPosition)
		assertVector4(t, cm.ViewProjection.MulVector4(world), out.Clip)
	}
	// rigid pose: the normal rotates with the mesh
	v := Vertex{Normal: math32.Vec3(1, 0, 0)}
	out := VertexStage(&cm, &v, &raw)
	assertVector3(t, math32.Vec3(1, 0, 0).MulQuat(in.Rotation), out.WorldNormal)
}

func TestNormalMatrix(t *testing.T) {
	in := NewInstance(math32.Vec3(1, 2, 3), math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), 0.5))
	in.Scale = math32.Vec3(3, 1, 0.5)
	raw := in.Raw()

	// a normal stays perpendicular to the transformed surface
	tangent := math32.Vec3(1, 1, 0)
	normal := math32.Vec3(1, -1, 0)
	m3 := math32.Matrix3FromMatrix4(raw.Model())
	wt := m3.MulVector3(tangent)
	wn := raw.Normal().MulVector3(normal)
	tolassert.EqualTol(t, 0, wt.Dot(wn), tol)

	// rigid: the normal matrix is the rotation
	rin := NewInstance(math32.Vec3(1, 2, 3), math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), 0.5))
	rigid := rin.Raw()
	rot := math32.Matrix3FromQuat(math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), 0.5))
	tolassert.EqualTolSlice(t, rot[:], rigid.Normal()[:], tol)

	// singular model matrices keep the upper 3x3
	flat := math32.Matrix4Scale(math32.Vec3(1, 0, 1))
	fm := NewInstanceRaw(flat)
	assert.Equal(t, math32.Matrix3FromMatrix4(flat), *fm.Normal())
}

func TestPlainVertexStage(t *testing.T) {
	v := Vertex{Position: math32.Vec3(0.5, -0.5, 0), TexCoords: math32.Vec2(0.75, 0.25)}
	out := PlainVertexStage(&v)
	assert.Equal(t, math32.Vec4(0.5, -0.5, 0, 1), out.Clip)
	assert.Equal(t, v.TexCoords, out.TexCoords)

	pr := NewProgram(Unlit)
	fr := NewFrame(testCamera(), NewLight(math32.Vec3(0, 5, 0), math32.Vec3(1, 1, 1)))
	assert.Equal(t, out, pr.Vertex(fr, &v, nil))
}

func TestMarkerVertexStage(t *testing.T) {
	cm := testCamera()
	lt := NewLight(math32.Vec3(2, 1, 0), math32.Vec3(0.96, 0.68, 1))
	out := MarkerVertexStage(&cm, &lt, math32.Vec3(0, 1, 0))
	assert.Equal(t, math32.Vec3(2, 1.25, 0), out.WorldPosition)
	assertVector4(t, cm.ViewProjection.MulVector4(math32.Vec4(2, 1.25, 0, 1)), out.Clip)
	assert.Equal(t, math32.Vec4(0.96, 0.68, 1, 1), MarkerColor(&lt))
}

func TestColliderVertexStage(t *testing.T) {
	cm := testCamera()
	p := math32.Vec3(1, 2, 3)
	out := ColliderVertexStage(&cm, p)
	assertVector4(t, cm.ViewProjection.MulVector4(math32.Vec4(1, 2, 3, 1)), out.Clip)
	pr := NewProgram(DebugOverlay)
	fr := NewFrame(cm, NewLight(math32.Vec3(0, 5, 0), math32.Vec3(1, 1, 1)))
	assert.Equal(t, ColliderColor, pr.Fragment(fr, &out, nil))
	assert.Less(t, ColliderColor.W, float32(1))
}

func TestDiffuseFacingAway(t *testing.T) {
	cm := NewCamera(math32.Vec3(0, 5, 10), math32.Identity4())
	lt := NewLight(math32.Vec3(0, 5, 0), math32.Vec3(1, 1, 1))
	for _, p := range testPoints() {
		toLight := lt.Position.Sub(p).Normalize()
		for _, n := range testPoints() {
			n = n.Normal()
			tm := FullLighting.Terms(&cm, &lt, p, n)
			if toLight.Dot(n) <= 0 {
				assert.Equal(t, math32.Vector3{}, tm.Diffuse, "point %v normal %v", p, n)
			} else {
				assert.Greater(t, tm.Diffuse.X, float32(0))
			}
		}
	}
}

func TestAttenuation(t *testing.T) {
	lt := Light{Brightness: 2, FalloffScale: 3}
	// continuous at the cutoff
	for _, eps := range []float32{1e-2, 1e-3, 1e-4} {
		tolassert.EqualTol(t, lt.Brightness, Attenuation(&lt, Cutoff+eps), 4*eps/lt.FalloffScale*lt.Brightness)
	}
	tolassert.EqualTol(t, lt.Brightness, Attenuation(&lt, Cutoff+1e-6), tol)

	// non-increasing beyond the cutoff
	prev := Attenuation(&lt, Cutoff)
	for d := float32(Cutoff); d < 50; d += 0.37 {
		at := Attenuation(&lt, d)
		assert.LessOrEqual(t, at, prev, "d = %g", d)
		prev = at
	}

	// quarter brightness at one falloff scale beyond the cutoff
	tolassert.EqualTol(t, lt.Brightness/4, Attenuation(&lt, Cutoff+lt.FalloffScale), tol)

	// flat in the near field, independent of the scale
	for _, sc := range []float32{0.01, 1, 100} {
		lt.FalloffScale = sc
		assert.Equal(t, lt.Brightness, Attenuation(&lt, 0))
		assert.Equal(t, lt.Brightness, Attenuation(&lt, Cutoff))
	}
}

func TestLightOverhead(t *testing.T) {
	cm := NewCamera(math32.Vec3(0, 5, 10), math32.Identity4())
	lt := Light{Position: math32.Vec3(0, 5, 0), Colour: math32.Vec3(1, 1, 1), Brightness: 1, FalloffScale: 10}
	tm := FullLighting.Terms(&cm, &lt, math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	assertVector3(t, lt.Colour, tm.Diffuse)
	tt := (5 - Cutoff + lt.FalloffScale) / lt.FalloffScale
	tolassert.EqualTol(t, 1/(tt*tt), tm.Attenuation, tol)
	assertVector3(t, math32.Vec3(0.1+0.25, 0.1+0.41, 0.1+0.49), tm.Ambient)

	// view_dir . half_dir for view (0,5,10)/|.| and light (0,1,0)
	vd := math32.Vec3(0, 5, 10).Normal()
	hd := vd.Add(math32.Vec3(0, 1, 0)).Normal()
	spec := math32.Pow(vd.Dot(hd), Shininess) * SpecularCoeff
	assertVector3(t, math32.Vec3(spec, spec, spec), tm.Specular)

	white := math32.Vec4(1, 1, 1, 1)
	clr := tm.Color(white)
	expect := tm.Ambient.Add(tm.Diffuse.Add(tm.Specular).MulScalar(tm.Attenuation))
	assertVector3(t, expect, clr.Vector3())
}

func TestLightCoincident(t *testing.T) {
	cm := NewCamera(math32.Vec3(0, 5, 10), math32.Identity4())
	lt := Light{Position: math32.Vec3(1, 1, 1), Colour: math32.Vec3(1, 1, 1), Brightness: 0.7, FalloffScale: 10}
	tm := FullLighting.Terms(&cm, &lt, lt.Position, math32.Vec3(0, 1, 0))
	assert.Equal(t, lt.Brightness, tm.Attenuation)
	// the light direction is undefined
	assert.True(t, tm.Diffuse.IsNaN())
}

func TestAlphaPassthrough(t *testing.T) {
	cm := testCamera()
	lt := NewLight(math32.Vec3(2, 3, 2), math32.Vec3(0.96, 0.68, 1))
	for _, a := range []float32{0, 0.35, 1} {
		for _, lm := range []LightingModel{FullLighting, ReducedLighting, {Specular: true}} {
			in := VertexOutput{WorldPosition: math32.Vec3(0.5, 0, 0), WorldNormal: math32.Vec3(0, 3, 0)}
			clr := lm.Shade(&cm, &lt, &in, math32.Vec4(0.2, 0.4, 0.6, a))
			assert.Equal(t, a, clr.W)
		}
	}
}

func TestReducedLighting(t *testing.T) {
	cm := NewCamera(math32.Vec3(0, 5, 10), math32.Identity4())
	lt := Light{Position: math32.Vec3(0, 5, 0), Colour: math32.Vec3(1, 1, 1), Brightness: 0.8, FalloffScale: 1}
	tm := ReducedLighting.Terms(&cm, &lt, math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	assert.Equal(t, math32.Vector3{}, tm.Specular)
	assert.Equal(t, lt.Brightness, tm.Attenuation)
	full := FullLighting.Terms(&cm, &lt, math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0))
	assert.Equal(t, full.Diffuse, tm.Diffuse)
	assert.Equal(t, full.Ambient, tm.Ambient)
}

func TestMaterialSample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 128})
	mt := NewMaterial("test", img)
	mt.Sampler.Filter = gpu.Nearest

	assertVector4(t, math32.Vec4(1, 0, 0, 1), mt.Sample(math32.Vec2(0.25, 0.25)))
	assertVector4(t, math32.Vec4(0, 1, 0, 1), mt.Sample(math32.Vec2(0.75, 0.25)))
	assert.Equal(t, mt.Sample(math32.Vec2(0.25, 0.75)), mt.Sample(math32.Vec2(1.25, -0.25)), "repeat")
	tolassert.EqualTol(t, 128.0/255, mt.Sample(math32.Vec2(0.75, 0.75)).W, tol)

	mt.Sampler.SetModes(gpu.ClampToEdge, gpu.ClampToEdge)
	assertVector4(t, math32.Vec4(0, 1, 0, 1), mt.Sample(math32.Vec2(3, -2)))

	mt.Sampler.SetModes(gpu.Repeat, gpu.Repeat)
	mt.Sampler.Filter = gpu.Linear
	// texel centers sample exactly
	assertVector4(t, math32.Vec4(1, 0, 0, 1), mt.Sample(math32.Vec2(0.25, 0.25)))
	// midway between the top two texels, in linear space
	assertVector4(t, math32.Vec4(0.5, 0.5, 0, 1), mt.Sample(math32.Vec2(0.5, 0.25)))

	gray := NewColorMaterial("gray", color.RGBA{188, 188, 188, 255})
	c := gray.Sample(math32.Vec2(7.3, -1.2))
	tolassert.EqualTol(t, math32.SRGBToLinearComp(188.0/255), c.X, tol)

	empty := &Material{Name: "empty"}
	assert.Equal(t, math32.Vec4(0, 0, 0, 0), empty.Sample(math32.Vec2(0.5, 0.5)))
	var none *Material
	assert.Equal(t, math32.Vec4(0, 0, 0, 0), none.Sample(math32.Vec2(0.5, 0.5)))
}

func TestProgramLit(t *testing.T) {
	cm := testCamera()
	lt := NewLight(math32.Vec3(2, 3, 2), math32.Vec3(0.96, 0.68, 1))
	fr := NewFrame(cm, lt)
	mat := NewColorMaterial("white", color.White)
	pose := NewInstance(math32.Vec3(0, 1, 0), math32.QuatIdentity())
	in := pose.Raw()
	v := Vertex{Position: math32.Vec3(0, 0, 0), Normal: math32.Vec3(0, 1, 0), TexCoords: math32.Vec2(0.5, 0.5)}

	pr := NewProgram(LitInstanced)
	out := pr.Vertex(fr, &v, &in)
	assert.Equal(t, math32.Vec3(0, 1, 0), out.WorldPosition)
	clr := pr.Fragment(fr, &out, mat)
	expect := FullLighting.Shade(fr.Camera(), fr.Light(), &out, math32.Vec4(1, 1, 1, 1))
	assertVector4(t, expect, clr)

	st := NewProgram(LitStatic)
	out = st.Vertex(fr, &v, &in)
	assert.Equal(t, math32.Vec3(0, 0, 0), out.WorldPosition, "static ignores instances")

	mk := NewProgram(DebugMarker)
	out = mk.Vertex(fr, &v, nil)
	assert.Equal(t, lt.Position, out.WorldPosition)
	assert.Equal(t, math32.Vec4(0.96, 0.68, 1, 1), mk.Fragment(fr, &out, nil))

	ul := NewProgram(Unlit)
	assert.Equal(t, math32.Vec4(0, 0, 0, 0), ul.Fragment(fr, &out, &Material{Name: "empty"}))
}

func TestFrame(t *testing.T) {
	cm := testCamera()
	lt := NewLight(math32.Vec3(2, 3, 2), math32.Vec3(0.96, 0.68, 1))
	fr := NewFrame(cm, lt)
	fr.Light().Position = math32.Vec3(9, 9, 9)
	fr.Camera().EyePosition = math32.Vec4(0, 0, 0, 0)
	assert.Equal(t, lt, *fr.Light(), "frame state is read only")
	assert.Equal(t, cm, *fr.Camera())
	cb, lb := fr.Bytes()
	require.Len(t, cb, CameraSize)
	require.Len(t, lb, LightSize)
}
