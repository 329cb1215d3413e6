// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"cogentcore.org/shade/base/stringsx"
)

// IncludeFS processes #include "file" statements in
// the given code string, using the given file system
// and default path to locate the included files.
// Included files are themselves processed, and each file
// is only included once. Each directive is kept as a comment
// above the code it includes.
func IncludeFS(fsys fs.FS, dir, code string) (string, error) {
	seen := make(map[string]bool)
	return includeFS(fsys, dir, code, seen)
}

func includeFS(fsys fs.FS, dir, code string, seen map[string]bool) (string, error) {
	fl := stringsx.SplitLines(code)
	nl := len(fl)
	for li := nl - 1; li >= 0; li-- {
		ln := strings.TrimSpace(fl[li])
		if !strings.HasPrefix(ln, `#include "`) {
			continue
		}
		fn := ln[10:]
		qi := strings.Index(fn, `"`)
		if qi < 0 {
			return "", fmt.Errorf("gpu.IncludeFS: malformed #include on line %d: no final quote", li+1)
		}
		fname := fn[:qi]
		fpath := fname
		b, err := fs.ReadFile(fsys, fpath)
		if err != nil {
			fpath = path.Join(dir, fname)
			b, err = fs.ReadFile(fsys, fpath)
			if err != nil {
				return "", fmt.Errorf("gpu.IncludeFS: could not find include %q in %q: %w", fname, dir, err)
			}
		}
		fl[li] = "// " + ln
		if seen[fpath] {
			continue
		}
		seen[fpath] = true
		inc, err := includeFS(fsys, path.Dir(fpath), string(b), seen)
		if err != nil {
			return "", err
		}
		if Debug {
			slog.Debug("gpu.IncludeFS", "file", fpath)
		}
		fl = slices.Insert(fl, li+1, stringsx.SplitLines(inc)...)
	}
	return strings.Join(fl, "\n"), nil
}
