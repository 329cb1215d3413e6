// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex reads and writes images in the formats
// used for textures and rendered frames.
package imagex

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Formats are the supported image encoding / decoding formats
type Formats int32

// The supported image encoding formats
const (
	None Formats = iota
	PNG
	JPEG
	BMP
	TGA
	WebP

	FormatsN
)

var formatsNames = [...]string{"None", "PNG", "JPEG", "BMP", "TGA", "WebP"}

func (f Formats) String() string {
	if f < 0 || f >= FormatsN {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formatsNames[f]
}

// Ext returns the standard filename extension of the format, with the dot.
func (f Formats) Ext() string {
	if f <= None || f >= FormatsN {
		return ""
	}
	return "." + strings.ToLower(f.String())
}

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not
func ExtToFormat(ext string) (Formats, error) {
	if len(ext) == 0 {
		return None, errors.New("ExtToFormat: ext is empty")
	}
	if ext[0] == '.' {
		ext = ext[1:]
	}
	ext = strings.ToLower(ext)
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tga":
		return TGA, nil
	case "webp":
		return WebP, nil
	}
	return None, fmt.Errorf("ExtToFormat: extension %q not recognized", ext)
}

// Sniff returns the format of encoded image data from its leading
// bytes. TGA has no signature, so it is never sniffed.
func Sniff(head []byte) (Formats, error) {
	kind, err := filetype.Match(head)
	if err != nil {
		return None, err
	}
	if !filetype.IsImage(head) {
		return None, fmt.Errorf("imagex.Sniff: data of type %q is not an image", kind.MIME.Value)
	}
	return ExtToFormat(kind.Extension)
}

// Open opens an image from the given filename.
// The format is inferred automatically,
// and is returned using the Formats enum.
func Open(filename string) (image.Image, Formats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// OpenFS opens an image from the given filename
// using the given [fs.FS] filesystem (e.g., for embed files).
// The format is inferred automatically,
// and is returned using the Formats enum.
func OpenFS(fsys fs.FS, filename string) (image.Image, Formats, error) {
	file, err := fsys.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// Read reads an image from the given reader.
// The format is inferred automatically from the data,
// and is returned using the Formats enum.
// Data without a known signature is read as TGA.
func Read(r io.Reader) (image.Image, Formats, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(262)
	f, err := Sniff(head)
	if err != nil {
		im, terr := tga.Decode(br)
		if terr != nil {
			return nil, None, err
		}
		return im, TGA, nil
	}
	var im image.Image
	switch f {
	case PNG:
		im, err = png.Decode(br)
	case JPEG:
		im, err = jpeg.Decode(br)
	case BMP:
		im, err = bmp.Decode(br)
	case WebP:
		im, err = webp.Decode(br)
	}
	if err != nil {
		return nil, None, err
	}
	return im, f, nil
}

// Save saves the image to the given filename,
// with the format inferred from the filename.
func Save(im image.Image, filename string) error {
	ext := filepath.Ext(filename)
	f, err := ExtToFormat(ext)
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	if err := Write(im, bw, f); err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the image to the given writer using the given format.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case BMP:
		return bmp.Encode(w, im)
	case TGA:
		return tga.Encode(w, im)
	case WebP:
		return nativewebp.Encode(w, im, nil)
	default:
		return fmt.Errorf("iox/imagex.Write: format %q not valid", f)
	}
}
