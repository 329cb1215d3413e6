// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phong

import (
	"encoding/binary"
	"io/fs"
	"math"
	"strings"
	"testing"
	"testing/fstest"

	"cogentcore.org/shade/base/errors"
	"cogentcore.org/shade/base/tolassert"
	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/gpu/shape"
	"cogentcore.org/shade/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestPhongConfig(t *testing.T) {
	ph, err := NewPhong(FullLighting)
	require.NoError(t, err)
	assert.Equal(t, 6, ph.Pipelines.Len())
	for i, kv := range ph.Pipelines.Order {
		if i < int(VariantsN) {
			assert.Equal(t, Variants(i).String(), kv.Key)
		}
	}

	opaque := []Variants{LitStatic, LitInstanced, DebugMarker}
	for _, vt := range opaque {
		pl, err := ph.Pipeline(vt, gpu.TriangleList)
		require.NoError(t, err)
		assert.True(t, pl.DepthTest, vt.String())
		assert.True(t, pl.DepthWrite, vt.String())
		assert.Equal(t, wgpu.CompareFunctionLess, pl.DepthCompare)
		assert.False(t, pl.IsAlphaBlend())
		assert.Equal(t, wgpu.CullModeBack, pl.Primitive.CullMode)
		assert.Equal(t, wgpu.FrontFaceCCW, pl.Primitive.FrontFace)
		assert.Equal(t, uint32(4), pl.Multisample.Count)
		assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, pl.Format)
	}

	ul, err := ph.Pipeline(Unlit, gpu.TriangleList)
	require.NoError(t, err)
	assert.False(t, ul.DepthTest)
	assert.True(t, ul.IsAlphaBlend())

	for _, topo := range []gpu.Topologies{gpu.TriangleList, gpu.LineList} {
		ov, err := ph.Pipeline(DebugOverlay, topo)
		require.NoError(t, err)
		assert.True(t, ov.DepthTest)
		assert.False(t, ov.DepthWrite)
		assert.True(t, ov.IsAlphaBlend())
		assert.Equal(t, wgpu.CullModeNone, ov.Primitive.CullMode)
		assert.Equal(t, topo, ov.Topology())
	}
	_, err = ph.Pipeline(LitStatic, gpu.LineList)
	assert.Error(t, err)

	code, err := ph.Code(LitStatic)
	require.NoError(t, err)
	assert.Contains(t, code, "override use_specular: bool = true;")
	assert.Contains(t, code, "override use_attenuation: bool = true;")
	assert.Contains(t, code, `// #include "lib/vertex.wgsl"`)
	for _, ln := range strings.Split(code, "\n") {
		assert.False(t, strings.HasPrefix(strings.TrimSpace(ln), "#include"), ln)
	}

	lays, err := ph.BindGroupLayouts()
	require.NoError(t, err)
	require.Len(t, lays, int(GroupsN))
	assert.Equal(t, "Camera", lays[CameraGroup].Label)
	assert.Len(t, lays[MaterialGroup].Entries, 2)
	assert.Len(t, lays[LightGroup].Entries, 1)
}

func TestPhongReducedLighting(t *testing.T) {
	ph, err := NewPhong(ReducedLighting)
	require.NoError(t, err)
	for _, vt := range []Variants{LitStatic, LitInstanced} {
		code, err := ph.Code(vt)
		require.NoError(t, err)
		assert.Contains(t, code, "override use_specular: bool = false;")
		assert.Contains(t, code, "override use_attenuation: bool = false;")
	}
	// unlit programs carry no lighting overrides
	pl, err := ph.Pipeline(DebugMarker, gpu.TriangleList)
	require.NoError(t, err)
	assert.Empty(t, pl.Overrides)
}

func TestLayouts(t *testing.T) {
	assert.Equal(t, CameraSize, CameraLayout.Size)
	assert.Equal(t, 16, CameraLayout.FieldByName("view_projection").Offset)
	assert.Equal(t, LightSize, LightLayout.Size)
	for nm, off := range map[string]int{"position": 0, "falloff_scale": 12, "colour": 16, "brightness": 28} {
		assert.Equal(t, off, LightLayout.FieldByName(nm).Offset, nm)
	}

	vs, err := NewVars(LitInstanced)
	require.NoError(t, err)
	vl := vs.VertexLayout()
	require.Len(t, vl, 2)
	assert.Equal(t, uint64(VertexStride), vl[0].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, vl[0].StepMode)
	assert.Equal(t, uint64(InstanceStride), vl[1].ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, vl[1].StepMode)

	vatts := map[uint32]uint64{0: 0, 1: 12, 2: 20}
	for _, at := range vl[0].Attributes {
		assert.Equal(t, vatts[at.ShaderLocation], at.Offset, "location %d", at.ShaderLocation)
	}
	iatts := map[uint32]uint64{5: 0, 6: 16, 7: 32, 8: 48, 9: 64, 10: 76, 11: 88}
	require.Len(t, vl[1].Attributes, len(iatts))
	for _, at := range vl[1].Attributes {
		assert.Equal(t, iatts[at.ShaderLocation], at.Offset, "location %d", at.ShaderLocation)
	}

	ov, err := NewVars(DebugOverlay)
	require.NoError(t, err)
	ol := ov.VertexLayout()
	require.Len(t, ol, 1)
	assert.Equal(t, uint64(PositionStride), ol[0].ArrayStride)

	// every variant shares the bind groups
	for _, vt := range AllVariants() {
		vs, err := NewVars(vt)
		require.NoError(t, err)
		assert.Equal(t, int(GroupsN), vs.NGroups(), vt.String())
		assert.NotNil(t, vs.Binding(int(CameraGroup), 0))
		assert.NotNil(t, vs.Binding(int(MaterialGroup), 1))
		assert.NotNil(t, vs.Binding(int(LightGroup), 0))
	}
}

func TestBytes(t *testing.T) {
	cv := NewCameraView(math32.Vec3(1, 2, 3), 1280, 720)
	cm := cv.Camera()
	cb := cm.Bytes()
	require.Len(t, cb, CameraSize)
	assert.Equal(t, float32(1), f32At(cb, 0))
	assert.Equal(t, float32(3), f32At(cb, 8))
	assert.Equal(t, float32(1), f32At(cb, 12), "eye w")
	// column-major: element (row 0, col 1) is the fifth float
	assert.Equal(t, cm.ViewProjection[4], f32At(cb, 16+16))

	lt := Light{Position: math32.Vec3(2, 3, 4), FalloffScale: 5, Colour: math32.Vec3(0.1, 0.2, 0.3), Brightness: 0.7}
	lb := lt.Bytes()
	require.Len(t, lb, LightSize)
	assert.Equal(t, float32(4), f32At(lb, 8))
	assert.Equal(t, float32(5), f32At(lb, 12))
	assert.Equal(t, float32(0.1), f32At(lb, 16))
	assert.Equal(t, float32(0.7), f32At(lb, 28))

	in := NewInstance(math32.Vec3(7, 8, 9), math32.QuatIdentity())
	in.Scale = math32.Vec3(2, 1, 1)
	ib := InstanceBytes([]InstanceRaw{in.Raw(), in.Raw()})
	require.Len(t, ib, 2*InstanceStride)
	assert.Equal(t, float32(2), f32At(ib, 0))
	assert.Equal(t, float32(7), f32At(ib, 48), "translation column")
	assert.Equal(t, float32(0.5), f32At(ib, 64), "inverse-transpose of the scale")
	assert.Equal(t, float32(1), f32At(ib, 64+16))
	assert.Equal(t, float32(7), f32At(ib, InstanceStride+48))

	vb := VertexBytes([]Vertex{{Position: math32.Vec3(1, 2, 3), TexCoords: math32.Vec2(4, 5), Normal: math32.Vec3(6, 7, 8)}})
	require.Len(t, vb, VertexStride)
	assert.Equal(t, float32(4), f32At(vb, 12))
	assert.Equal(t, float32(6), f32At(vb, 20))

	bx := shape.NewBox(1, 1, 1).Mesh()
	assert.Len(t, PositionBytes(bx), bx.NVertices()*PositionStride)
	assert.Len(t, IndexBytes(bx), 4*len(bx.Indices))
	vtx, err := VerticesFromMesh(bx)
	require.NoError(t, err)
	assert.Len(t, vtx, bx.NVertices())

	_, err = VerticesFromMesh(shape.NewCapsule(0.5, 1).Outline())
	assert.Error(t, err)
}

// configCode configures a pipeline of the variant from modified shader code.
func configCode(t *testing.T, vt Variants, edit func(string) string) error {
	t.Helper()
	ph, err := NewPhong(FullLighting)
	require.NoError(t, err)
	pl, err := ph.Pipeline(vt, gpu.TriangleList)
	require.NoError(t, err)
	code := edit(pl.ShaderByName(vt.ShaderName()).Code)

	npl := gpu.NewGraphicsPipeline("edited")
	vt.ConfigPipeline(npl, gpu.TriangleList)
	sh := npl.AddShader(vt.ShaderName())
	require.NoError(t, sh.OpenCode(code))
	npl.AddEntry(sh, gpu.VertexShader, "vs_main")
	npl.AddEntry(sh, gpu.FragmentShader, "fs_main")
	return npl.Config(ph.Vars(vt))
}

func TestContractViolations(t *testing.T) {
	err := configCode(t, LitStatic, func(s string) string {
		return strings.Replace(s, "@location(2) normal", "@location(3) normal", 1)
	})
	var ce *gpu.ContractError
	require.True(t, errors.As(err, &ce), "%v", err)
	assert.True(t, ce.Has(gpu.MissingLocation))

	err = configCode(t, LitInstanced, func(s string) string {
		return strings.Replace(s, "@group(2) @binding(0)", "@group(2) @binding(1)", 1)
	})
	require.True(t, errors.As(err, &ce), "%v", err)
	assert.True(t, ce.Has(gpu.MissingBinding))

	err = configCode(t, LitStatic, func(s string) string {
		return strings.Replace(s, "falloff_scale: f32,\n    colour", "colour: vec3<f32>,\n    falloff_scale: f32,\n    tint", 1)
	})
	require.True(t, errors.As(err, &ce), "%v", err)
	assert.True(t, ce.Has(gpu.LayoutMismatch))

	assert.NoError(t, configCode(t, DebugMarker, func(s string) string { return s }))
}

func TestShadersReflect(t *testing.T) {
	names, err := fs.Glob(Shaders(), "shaders/*.wgsl")
	require.NoError(t, err)
	assert.Len(t, names, int(VariantsN))
	for _, vt := range AllVariants() {
		sh := gpu.NewShader(vt.ShaderName())
		require.NoError(t, sh.OpenFileFS(Shaders(), "shaders/"+vt.ShaderName()+".wgsl"))
		assert.NotNil(t, sh.Info.Entry("vs_main"), vt.String())
		assert.NotNil(t, sh.Info.Entry("fs_main"), vt.String())
		if vt != Unlit {
			assert.NotNil(t, sh.Info.Binding(int(CameraGroup), 0), vt.String())
		}
		if vt.IsLit() {
			assert.NotNil(t, sh.Info.Override(SpecularOverride))
			assert.NotNil(t, sh.Info.Override(AttenuationOverride))
		}
	}
}

func TestVariants(t *testing.T) {
	for _, vt := range AllVariants() {
		got, err := VariantFromString(strings.ToLower(vt.String()))
		require.NoError(t, err)
		assert.Equal(t, vt, got)
	}
	_, err := VariantFromString("wireframe")
	assert.Error(t, err)
	assert.Equal(t, "Variants(9)", Variants(9).String())
	assert.Equal(t, "DebugOverlay:LineList", PipelineName(DebugOverlay, gpu.LineList))
	assert.Equal(t, "full", FullLighting.String())
	assert.Equal(t, "specular=true attenuation=false", LightingModel{Specular: true}.String())
}

func TestCameraView(t *testing.T) {
	cv := NewCameraView(math32.Vec3(0, 0, 0), 1280, 720)
	assertVector3(t, math32.Vec3(0, 0, -1), cv.Direction())
	tolassert.EqualTol(t, 1280.0/720.0, cv.Aspect, tol)

	// WebGPU depth runs 0 at the near plane to 1 at the far plane
	cm := cv.Camera()
	near := cm.ViewProjection.MulVector4(math32.Vec4(0, 0, -cv.Near, 1))
	far := cm.ViewProjection.MulVector4(math32.Vec4(0, 0, -cv.Far, 1))
	tolassert.EqualTol(t, 0, near.Z/near.W, 1e-4)
	tolassert.EqualTol(t, 1, far.Z/far.W, 1e-4)

	assert.True(t, cv.Move(0, 1, 0))
	assertVector3(t, math32.Vec3(0, 0, -MoveSpeed), cv.Eye)
	assert.True(t, cv.Move(0, 0, 2))
	tolassert.EqualTol(t, 2*MoveSpeed, cv.Eye.Y, tol)
	assert.False(t, cv.Move(0, 0, 0))

	// looking up does not lift the eye when moving forward
	cv.Turn(0, 10)
	y := cv.Eye.Y
	cv.Move(0, 1, 0)
	tolassert.EqualTol(t, y, cv.Eye.Y, tol)

	cv.Turn(0, 1000)
	assert.Equal(t, float32(MaxPitch), cv.Vertical)
	cv.Turn(0, -1000)
	assert.Equal(t, float32(-MaxPitch), cv.Vertical)

	cv.Turn(-1, 0)
	assert.GreaterOrEqual(t, cv.Horizontal, float32(0))
	assert.Less(t, cv.Horizontal, float32(2*math32.Pi))
	assert.False(t, cv.Turn(0, 0))
}

func TestLightOrbit(t *testing.T) {
	lt := NewLight(math32.Vec3(2, 3, 2), math32.Vec3(0.96, 0.68, 1))
	start := lt.Position
	lt.Orbit(90)
	assertVector3(t, math32.Vec3(2, 3, -2), lt.Position)
	lt.Position = start
	for range 450 {
		lt.Orbit(OrbitDegrees)
		tolassert.EqualTol(t, 3, lt.Position.Y, tol)
	}
	tolassert.EqualTol(t, start.X, lt.Position.X, 1e-3)
	tolassert.EqualTol(t, start.Z, lt.Position.Z, 1e-3)
}

// shaderMap returns a copy of the embedded programs, with the given
// file edited.
func shaderMap(t *testing.T, file string, edit func(string) string) fstest.MapFS {
	t.Helper()
	mf := fstest.MapFS{}
	err := fs.WalkDir(Shaders(), "shaders", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := fs.ReadFile(Shaders(), path)
		if err != nil {
			return err
		}
		if path == file {
			b = []byte(edit(string(b)))
		}
		mf[path] = &fstest.MapFile{Data: b}
		return nil
	})
	require.NoError(t, err)
	return mf
}

func TestPhongFS(t *testing.T) {
	same := shaderMap(t, "", nil)
	ph, err := NewPhongFS(FullLighting, same)
	require.NoError(t, err)
	assert.Equal(t, 6, ph.Pipelines.Len())

	moved := shaderMap(t, "shaders/collider.wgsl", func(s string) string {
		return strings.Replace(s, "@location(0) position", "@location(4) position", 1)
	})
	_, err = NewPhongFS(FullLighting, moved)
	var ce *gpu.ContractError
	require.True(t, errors.As(err, &ce), "%v", err)
	assert.True(t, ce.Has(gpu.MissingLocation))

	delete(same, "shaders/texture.wgsl")
	_, err = NewPhongFS(FullLighting, same)
	assert.Error(t, err)
}
