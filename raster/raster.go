// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster is a software reference renderer for the phong
// pipelines: it runs the CPU evaluation of each variant's vertex and
// fragment stages through a rasterizer that follows the pipeline's
// primitive, depth and blend settings, on a [Target] in memory.
package raster

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/gpu/phong"
	"cogentcore.org/shade/gpu/shape"
	"cogentcore.org/shade/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/sync/errgroup"
)

// Draw is one draw call: a variant's pipeline drawing an indexed
// mesh, optionally instanced, with a material.
type Draw struct {
	Variant phong.Variants

	// Topology selects the pipeline of the variant.
	Topology gpu.Topologies

	Vertices []phong.Vertex

	// Indices into Vertices. If empty, the vertices are drawn in order.
	Indices []uint32

	// Instances are required by [phong.LitInstanced], which draws
	// the mesh once per instance, and ignored by the others.
	Instances []phong.InstanceRaw

	// Material is required by the textured variants.
	Material *phong.Material
}

// NewDraw returns a draw of the given mesh with the given variant,
// using the mesh topology. The lit and plain texture variants need
// the normals and tex coords of the mesh, and the debug variants
// only use its positions.
func NewDraw(vt phong.Variants, ms *shape.Mesh, mat *phong.Material) (*Draw, error) {
	dr := &Draw{Variant: vt, Topology: ms.Topology, Indices: ms.Indices, Material: mat}
	if vt == phong.DebugMarker || vt == phong.DebugOverlay {
		dr.Vertices = make([]phong.Vertex, ms.NVertices())
		for i, p := range ms.Positions {
			dr.Vertices[i].Position = p
		}
		return dr, nil
	}
	vtx, err := phong.VerticesFromMesh(ms)
	if err != nil {
		return nil, err
	}
	dr.Vertices = vtx
	return dr, nil
}

// Validate returns an error if the draw is missing data
// that its variant requires, or has an index out of range.
func (dr *Draw) Validate() error {
	switch dr.Variant {
	case phong.Unlit, phong.LitStatic, phong.LitInstanced:
		if dr.Material == nil || dr.Material.Texture == nil {
			return fmt.Errorf("raster.Draw:Validate: %s requires a material", dr.Variant)
		}
	}
	n := uint32(len(dr.Vertices))
	for i, ix := range dr.Indices {
		if ix >= n {
			return fmt.Errorf("raster.Draw:Validate: index %d is %d, beyond the %d vertices", i, ix, n)
		}
	}
	return nil
}

// Renderer draws onto a [Target] with the pipelines of a [phong.Phong].
type Renderer struct {
	Phong *phong.Phong

	Target *Target

	// Bands is the number of row bands shaded in parallel,
	// defaulting to GOMAXPROCS.
	Bands int
}

// NewRenderer returns a renderer for the given pipelines and target.
func NewRenderer(ph *phong.Phong, tg *Target) *Renderer {
	return &Renderer{Phong: ph, Target: tg}
}

// drawState is the fixed state of one draw during rasterization.
type drawState struct {
	tg  *Target
	pl  *gpu.GraphicsPipeline
	pr  *phong.Program
	fr  *phong.Frame
	mat *phong.Material

	blend bool
}

// Draw runs one draw call. The vertex stage runs first for every vertex
// (of every instance), then the primitives are clipped, culled and
// rasterized in row bands in parallel, each band owning its pixels.
// Primitives are shaded in submission order within each pixel.
// Cancelling the context abandons the draw with the context error.
func (rd *Renderer) Draw(ctx context.Context, fr *phong.Frame, dr *Draw) error {
	pl, err := rd.Phong.Pipeline(dr.Variant, dr.Topology)
	if err != nil {
		return err
	}
	if err := dr.Validate(); err != nil {
		return err
	}
	ds := &drawState{
		tg:    rd.Target,
		pl:    pl,
		pr:    &phong.Program{Variant: dr.Variant, Lighting: rd.Phong.Lighting},
		fr:    fr,
		mat:   dr.Material,
		blend: pl.IsAlphaBlend(),
	}
	prims := ds.assemble(dr)
	if gpu.Debug {
		slog.Debug("raster.Draw", "pipeline", pl.Name, "vertices", len(dr.Vertices), "primitives", len(prims))
	}
	return rd.bands(ctx, func(ctx context.Context, y0, y1 int) error {
		for i, p := range prims {
			if i%256 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			p.raster(ds, y0, y1)
		}
		return nil
	})
}

// DrawAll runs the given draws in order, stopping at the first error.
func (rd *Renderer) DrawAll(ctx context.Context, fr *phong.Frame, draws ...*Draw) error {
	for _, dr := range draws {
		if err := rd.Draw(ctx, fr, dr); err != nil {
			return err
		}
	}
	return nil
}

// bands runs fn over the rows of the target split into bands,
// in parallel.
func (rd *Renderer) bands(ctx context.Context, fn func(ctx context.Context, y0, y1 int) error) error {
	h := rd.Target.Height
	nb := rd.Bands
	if nb <= 0 {
		nb = runtime.GOMAXPROCS(0)
	}
	nb = min(nb, h)
	if nb == 0 {
		return ctx.Err()
	}
	rows := (h + nb - 1) / nb
	g, gctx := errgroup.WithContext(ctx)
	for y0 := 0; y0 < h; y0 += rows {
		g.Go(func() error {
			return fn(gctx, y0, min(y0+rows, h))
		})
	}
	return g.Wait()
}

// assemble runs the vertex stage and assembles the clipped
// screen space primitives of the draw.
func (ds *drawState) assemble(dr *Draw) []primitive {
	idx := dr.Indices
	if len(idx) == 0 {
		idx = make([]uint32, len(dr.Vertices))
		for i := range idx {
			idx[i] = uint32(i)
		}
	}
	var insts []*phong.InstanceRaw
	switch {
	case dr.Variant != phong.LitInstanced:
		insts = []*phong.InstanceRaw{nil}
	default:
		for i := range dr.Instances {
			insts = append(insts, &dr.Instances[i])
		}
	}
	topo := ds.pl.Topology()
	outs := make([]phong.VertexOutput, len(dr.Vertices))
	var prims []primitive
	for _, inst := range insts {
		for i := range dr.Vertices {
			outs[i] = ds.pr.Vertex(ds.fr, &dr.Vertices[i], inst)
		}
		switch topo {
		case gpu.TriangleList:
			for i := 0; i+2 < len(idx); i += 3 {
				prims = ds.addTriangle(prims, &outs[idx[i]], &outs[idx[i+1]], &outs[idx[i+2]])
			}
		case gpu.TriangleStrip:
			for i := 0; i+2 < len(idx); i++ {
				a, b := idx[i], idx[i+1]
				if i%2 == 1 {
					a, b = b, a
				}
				prims = ds.addTriangle(prims, &outs[a], &outs[b], &outs[idx[i+2]])
			}
		case gpu.LineList:
			for i := 0; i+1 < len(idx); i += 2 {
				prims = ds.addLine(prims, &outs[idx[i]], &outs[idx[i+1]])
			}
		case gpu.LineStrip:
			for i := 0; i+1 < len(idx); i++ {
				prims = ds.addLine(prims, &outs[idx[i]], &outs[idx[i+1]])
			}
		case gpu.PointList:
			for _, ix := range idx {
				prims = ds.addPoint(prims, &outs[ix])
			}
		}
	}
	return prims
}

// addTriangle clips the triangle, which can split it into a fan,
// and adds the parts that survive face culling.
func (ds *drawState) addTriangle(prims []primitive, a, b, c *phong.VertexOutput) []primitive {
	poly := clipPolygon([]phong.VertexOutput{*a, *b, *c})
	if len(poly) < 3 {
		return prims
	}
	w, h := ds.tg.Width, ds.tg.Height
	s0 := toScreen(&poly[0], w, h)
	for i := 1; i+1 < len(poly); i++ {
		tr, ccw := newTriangle(s0, toScreen(&poly[i], w, h), toScreen(&poly[i+1], w, h))
		if tr == nil || ds.culled(ccw) {
			continue
		}
		prims = append(prims, tr)
	}
	return prims
}

// culled returns true if a triangle of the given winding is culled.
func (ds *drawState) culled(ccw bool) bool {
	front := ccw == (ds.pl.Primitive.FrontFace == wgpu.FrontFaceCCW)
	switch ds.pl.Primitive.CullMode {
	case wgpu.CullModeBack:
		return !front
	case wgpu.CullModeFront:
		return front
	}
	return false
}

func (ds *drawState) addLine(prims []primitive, a, b *phong.VertexOutput) []primitive {
	ca, cb, ok := clipLine(*a, *b)
	if !ok {
		return prims
	}
	w, h := ds.tg.Width, ds.tg.Height
	return append(prims, &line{a: toScreen(&ca, w, h), b: toScreen(&cb, w, h)})
}

func (ds *drawState) addPoint(prims []primitive, a *phong.VertexOutput) []primitive {
	if len(clipPolygon([]phong.VertexOutput{*a})) == 0 {
		return prims
	}
	return append(prims, &point{v: toScreen(a, ds.tg.Width, ds.tg.Height)})
}

// fragment runs the depth test, the fragment stage and the
// color blend for one pixel.
func (ds *drawState) fragment(x, y int, z float32, in *phong.VertexOutput) {
	i := ds.tg.Index(x, y)
	if ds.pl.DepthTest && !depthPasses(ds.pl.DepthCompare, z, ds.tg.Depth[i]) {
		return
	}
	clr := ds.pr.Fragment(ds.fr, in, ds.mat)
	if ds.blend {
		clr = blendOver(clr, ds.tg.Color[i])
	}
	ds.tg.Color[i] = clr
	if ds.pl.DepthTest && ds.pl.DepthWrite {
		ds.tg.Depth[i] = z
	}
}

// depthPasses applies the depth compare function
// to a fragment depth against the stored depth.
func depthPasses(cmp wgpu.CompareFunction, z, stored float32) bool {
	switch cmp {
	case wgpu.CompareFunctionNever:
		return false
	case wgpu.CompareFunctionLessEqual:
		return z <= stored
	case wgpu.CompareFunctionGreater:
		return z > stored
	case wgpu.CompareFunctionGreaterEqual:
		return z >= stored
	case wgpu.CompareFunctionEqual:
		return z == stored
	case wgpu.CompareFunctionNotEqual:
		return z != stored
	case wgpu.CompareFunctionAlways:
		return true
	}
	return z < stored
}

// blendOver composites src over dst with straight alpha,
// as [wgpu.BlendStateAlphaBlending] does.
func blendOver(src, dst math32.Vector4) math32.Vector4 {
	a := src.W
	rgb := src.Vector3().MulScalar(a).Add(dst.Vector3().MulScalar(1 - a))
	return math32.Vector4FromVector3(rgb, a+dst.W*(1-a))
}
