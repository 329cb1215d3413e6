// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...any)
}

// UpdateTestImages indicates whether to update currently saved test
// images in [Assert] instead of comparing against them.
// It is automatically set if the environment variable "SHADE_UPDATE_TESTDATA"
// is set to "true". It should only be set when behavior has been updated
// that causes test images to change, and it should only be set once and
// then turned back off.
var UpdateTestImages = os.Getenv("SHADE_UPDATE_TESTDATA") == "true"

// Tolerance is the per-component difference allowed by [Assert].
// Rendered images vary by a step or two of rounding in the sRGB
// encoding between platforms.
var Tolerance = 2

// CompareColors returns true if no component of the two colors
// differs by more than tol.
func CompareColors(cc, ic color.RGBA, tol int) bool {
	return absDiff(cc.R, ic.R) <= tol && absDiff(cc.G, ic.G) <= tol &&
		absDiff(cc.B, ic.B) <= tol && absDiff(cc.A, ic.A) <= tol
}

func absDiff(a, b uint8) int {
	return max(int(a)-int(b), int(b)-int(a))
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// DiffImage returns the difference between two images,
// with pixels having the abs of the difference between pixels.
func DiffImage(a, b image.Image) image.Image {
	ab := a.Bounds()
	di := image.NewRGBA(ab)
	for y := ab.Min.Y; y < ab.Max.Y; y++ {
		for x := ab.Min.X; x < ab.Max.X; x++ {
			ac, bc := rgbaAt(a, x, y), rgbaAt(b, x, y)
			di.SetRGBA(x, y, color.RGBA{uint8(absDiff(ac.R, bc.R)), uint8(absDiff(ac.G, bc.G)), uint8(absDiff(ac.B, bc.B)), 255})
		}
	}
	return di
}

// firstDiff returns the first pixel at which the images differ by more
// than tol, and false if there is none.
func firstDiff(img, ref image.Image, tol int) (image.Point, bool) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !CompareColors(rgbaAt(img, x, y), rgbaAt(ref, x, y), tol) {
				return image.Pt(x, y), true
			}
		}
	}
	return image.Point{}, false
}

// Assert asserts that the given image is equivalent, within [Tolerance],
// to the image stored at the given filename in the testdata directory,
// with ".png" added to the filename if there is no extension
// (eg: "scene" becomes "testdata/scene.png").
// If it is not, it fails the test with an error, saving the image and
// the difference next to the expected one, but continues its execution.
// If there is no image at the given filename in the testdata directory,
// it creates the image.
func Assert(t TestingT, img image.Image, filename string) {
	filename = filepath.Join("testdata", filename)
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		t.Errorf("imagex.Assert: error making testdata directory: %v", err)
	}
	ext := filepath.Ext(filename)
	failFilename := strings.TrimSuffix(filename, ext) + ".fail" + ext
	diffFilename := strings.TrimSuffix(filename, ext) + ".diff" + ext
	clean := func() {
		os.RemoveAll(failFilename)
		os.RemoveAll(diffFilename)
	}

	if UpdateTestImages {
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: error saving updated image: %v", err)
		}
		clean()
		return
	}

	ref, _, err := Open(filename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("imagex.Assert: error opening saved image: %v", err)
			return
		}
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: error saving new image: %v", err)
		}
		return
	}

	if ib, rb := img.Bounds(), ref.Bounds(); ib != rb {
		t.Errorf("imagex.Assert: expected bounds %v for %s, but got %v; see %s", rb, filename, ib, failFilename)
	} else if p, differ := firstDiff(img, ref, Tolerance); differ {
		t.Errorf("imagex.Assert: image for %s is not the same as expected; see %s; expected color %v at %v, but got %v",
			filename, failFilename, rgbaAt(ref, p.X, p.Y), p, rgbaAt(img, p.X, p.Y))
	} else {
		clean()
		return
	}
	if err := Save(img, failFilename); err != nil {
		t.Errorf("imagex.Assert: error saving fail image: %v", err)
	}
	if ref.Bounds() == img.Bounds() {
		if err := Save(DiffImage(img, ref), diffFilename); err != nil {
			t.Errorf("imagex.Assert: error saving diff image: %v", err)
		}
	}
}
