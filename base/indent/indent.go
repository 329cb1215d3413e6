// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package indent provides indentation generation methods
// for the text reports printed by shade.
package indent

import "strings"

// Tabs returns a string of n tabs.
func Tabs(n int) string {
	return strings.Repeat("\t", n)
}

// Spaces returns a string of n*width spaces.
func Spaces(n, width int) string {
	return strings.Repeat(" ", n*width)
}

// Lines prefixes every non-empty line of s with n*width spaces.
func Lines(s string, n, width int) string {
	pfx := Spaces(n, width)
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		if ln != "" {
			lines[i] = pfx + ln
		}
	}
	return strings.Join(lines, "\n")
}
