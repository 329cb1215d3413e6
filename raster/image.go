// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/transform"
	"github.com/go-fonts/latin-modern/lmmono10regular"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Downsample resolves a supersampled image by the given integer factor
// with a box filter, which averages each factor x factor block.
func Downsample(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	sz := img.Bounds().Size()
	return transform.Resize(img, max(sz.X/factor, 1), max(sz.Y/factor, 1), transform.Box)
}

var monoFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(lmmono10regular.TTF)
})

// TextTexture returns an image of the given lines of text in a
// monospaced font of the given size in pixels, in the given color
// over a transparent background, with a margin of half a line.
// It is used as the texture of a screen quad drawn with the plain
// texture pass.
func TextTexture(lines []string, size float64, clr color.Color) (*image.RGBA, error) {
	fnt, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("raster.TextTexture: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("raster.TextTexture: %w", err)
	}
	defer face.Close()

	met := face.Metrics()
	lh := met.Height.Ceil()
	margin := lh / 2
	width := 0
	for _, ln := range lines {
		width = max(width, font.MeasureString(face, ln).Ceil())
	}
	img := image.NewRGBA(image.Rect(0, 0, width+2*margin, lh*max(len(lines), 1)+2*margin))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(clr), Face: face}
	for i, ln := range lines {
		dr.Dot = fixed.P(margin, margin+i*lh+met.Ascent.Ceil())
		dr.DrawString(strings.TrimRight(ln, "\n"))
	}
	return img, nil
}
