// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/draw"

	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is the host-side staging of a sampled 2D texture:
// its format and its pixels as a Go image, ready to be written
// to a device texture of the same format.
type Texture struct {

	// Name of the texture, e.g., the material it belongs to.
	// This is helpful for debugging.
	Name string

	// Format & size of texture
	Format TextureFormat

	// Image holds the pixels, in sRGB encoded RGBA form.
	Image *image.RGBA
}

// NewTexture returns a new empty texture with default format.
func NewTexture(name string) *Texture {
	tx := &Texture{Name: name}
	tx.Format.Defaults()
	return tx
}

// NewTextureFromImage returns a texture holding the given image.
func NewTextureFromImage(name string, img image.Image) *Texture {
	tx := NewTexture(name)
	tx.SetFromGoImage(img)
	return tx
}

// SetFromGoImage sets texture data from a standard Go image.
// This is most efficiently done using an image.RGBA, but other
// formats will be converted as necessary.
func (tx *Texture) SetFromGoImage(img image.Image) {
	tx.Image = ImageToRGBA(img)
	tx.Format.Size = tx.Image.Rect.Size()
	tx.Format.Format = wgpu.TextureFormatRGBA8UnormSrgb
}

// Descriptor returns the WebGPU descriptor for the device texture,
// usable as a sampled texture that is written from the host.
func (tx *Texture) Descriptor() wgpu.TextureDescriptor {
	return tx.Format.Descriptor(tx.Name, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst)
}

// DataLayout returns the layout of the data from [Texture.PaddedData].
func (tx *Texture) DataLayout() wgpu.TextureDataLayout {
	td := NewTextureBufferDims(tx.Format.Size)
	return wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(td.PaddedRowSize),
		RowsPerImage: uint32(td.Height),
	}
}

// PaddedData returns the pixel data with each row padded to the
// copy row alignment required for buffer-to-texture copies.
// It returns nil unless the format is the standard RGBA format
// of the image.
func (tx *Texture) PaddedData() []byte {
	if tx.Image == nil || !tx.Format.IsStdRGBA() {
		return nil
	}
	td := NewTextureBufferDims(tx.Format.Size)
	if td.HasNoPadding() && tx.Image.Stride == int(td.UnpaddedRowSize) {
		return tx.Image.Pix
	}
	buf := make([]byte, td.PaddedSize())
	for y := 0; y < int(td.Height); y++ {
		src := tx.Image.Pix[y*tx.Image.Stride : y*tx.Image.Stride+int(td.UnpaddedRowSize)]
		copy(buf[uint64(y)*td.PaddedRowSize:], src)
	}
	return buf
}

// ImageToRGBA returns image.RGBA version of given image,
// either because it already is one, or by converting it.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rg, ok := img.(*image.RGBA); ok && rg.Rect.Min == (image.Point{}) {
		return rg
	}
	b := img.Bounds()
	rg := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rg, rg.Bounds(), img, b.Min, draw.Src)
	return rg
}
