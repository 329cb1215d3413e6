// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/shade/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sampler specifies how a texture is read: what happens to
// texture coordinates beyond the unit square, and how texels
// are filtered.
type Sampler struct {
	Name string

	// for U (horizontal) axis -- what to do when going off the edge
	UMode SamplerModes

	// for V (vertical) axis -- what to do when going off the edge
	VMode SamplerModes

	// for W (horizontal) axis -- what to do when going off the edge
	WMode SamplerModes

	// Filter is the magnification and minification filter.
	Filter FilterModes
}

func (sm *Sampler) Defaults() {
	sm.UMode = Repeat
	sm.VMode = Repeat
	sm.WMode = Repeat
	sm.Filter = Linear
}

// NewSampler returns a new sampler with default settings.
func NewSampler(name string) *Sampler {
	sm := &Sampler{Name: name}
	sm.Defaults()
	return sm
}

// SetModes sets the U and V address modes.
func (sm *Sampler) SetModes(u, v SamplerModes) *Sampler {
	sm.UMode = u
	sm.VMode = v
	return sm
}

// Descriptor returns the WebGPU sampler descriptor.
func (sm *Sampler) Descriptor() wgpu.SamplerDescriptor {
	return wgpu.SamplerDescriptor{
		Label:         sm.Name,
		AddressModeU:  sm.UMode.Mode(),
		AddressModeV:  sm.VMode.Mode(),
		AddressModeW:  sm.WMode.Mode(),
		MagFilter:     sm.Filter.Mode(),
		MinFilter:     sm.Filter.Mode(),
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// Texture image sampler modes
type SamplerModes int32

const (
	// Repeat the texture when going beyond the image dimensions.
	Repeat SamplerModes = iota

	// Like repeat, but inverts the coordinates to mirror the image when going beyond the dimensions.
	MirroredRepeat

	// Take the color of the edge closest to the coordinate beyond the image dimensions.
	ClampToEdge

	SamplerModesN
)

var samplerModesNames = [...]string{"Repeat", "MirroredRepeat", "ClampToEdge"}

func (sm SamplerModes) String() string {
	if sm < 0 || sm >= SamplerModesN {
		return fmt.Sprintf("SamplerModes(%d)", int32(sm))
	}
	return samplerModesNames[sm]
}

// SamplerModeFromString returns the mode with the given name.
func SamplerModeFromString(s string) (SamplerModes, error) {
	for i, nm := range samplerModesNames {
		if nm == s {
			return SamplerModes(i), nil
		}
	}
	return Repeat, fmt.Errorf("gpu: unknown sampler mode %q", s)
}

func (sm SamplerModes) Mode() wgpu.AddressMode {
	return WebGPUSamplerModes[sm]
}

var WebGPUSamplerModes = map[SamplerModes]wgpu.AddressMode{
	Repeat:         wgpu.AddressModeRepeat,
	MirroredRepeat: wgpu.AddressModeMirrorRepeat,
	ClampToEdge:    wgpu.AddressModeClampToEdge,
}

// Wrap maps a texture coordinate into [0,1] according to the mode.
func (sm SamplerModes) Wrap(t float32) float32 {
	switch sm {
	case MirroredRepeat:
		f := math32.Mod(math32.Abs(t), 2)
		if f > 1 {
			f = 2 - f
		}
		return f
	case ClampToEdge:
		return math32.Clamp(t, 0, 1)
	default:
		return t - math32.Floor(t)
	}
}

// FilterModes are the texel filters.
type FilterModes int32

const (
	// Nearest uses the single closest texel.
	Nearest FilterModes = iota

	// Linear interpolates bilinearly between the four closest texels.
	Linear

	FilterModesN
)

var filterModesNames = [...]string{"Nearest", "Linear"}

func (fm FilterModes) String() string {
	if fm < 0 || fm >= FilterModesN {
		return fmt.Sprintf("FilterModes(%d)", int32(fm))
	}
	return filterModesNames[fm]
}

// FilterModeFromString returns the filter with the given name.
func FilterModeFromString(s string) (FilterModes, error) {
	for i, nm := range filterModesNames {
		if nm == s {
			return FilterModes(i), nil
		}
	}
	return Linear, fmt.Errorf("gpu: unknown filter mode %q", s)
}

func (fm FilterModes) Mode() wgpu.FilterMode {
	if fm == Nearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}
