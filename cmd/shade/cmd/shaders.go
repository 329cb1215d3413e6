// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"

	"cogentcore.org/shade/gpu/phong"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ParseVariant returns the variant of the given name, case insensitive.
// For an unknown name the error suggests the closest variant name.
func ParseVariant(name string) (phong.Variants, error) {
	vt, err := phong.VariantFromString(name)
	if err == nil {
		return vt, nil
	}
	best, sim := phong.Unlit, 0.0
	lv := metrics.NewLevenshtein()
	lv.CaseSensitive = false
	for _, v := range phong.AllVariants() {
		if s := strutil.Similarity(name, v.String(), lv); s > sim {
			best, sim = v, s
		}
	}
	if sim >= 0.5 {
		return vt, fmt.Errorf("unknown variant %q, did you mean %s?", name, best)
	}
	return vt, fmt.Errorf("unknown variant %q, want one of %v", name, phong.AllVariants())
}

// Shaders writes the assembled WGSL of the named variant, with the
// overrides of the given lighting model, syntax highlighted for the
// terminal if highlight is true.
func Shaders(w io.Writer, name string, lm phong.LightingModel, highlight bool) error {
	vt, err := ParseVariant(name)
	if err != nil {
		return err
	}
	ph, err := phong.NewPhong(lm)
	if err != nil {
		return err
	}
	code, err := ph.Code(vt)
	if err != nil {
		return err
	}
	if !highlight {
		_, err = io.WriteString(w, code)
		return err
	}
	return Highlight(w, code)
}

// Highlight writes WGSL code with terminal color markup.
func Highlight(w io.Writer, code string) error {
	lexer := lexers.Get("wgsl")
	if lexer == nil {
		lexer = lexers.Get("rust")
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return formatters.Get("terminal256").Format(w, styles.Get("monokai"), it)
}
