// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages. It is on by default.
var UseColor = true

// colorProfile is the termenv color profile, stored globally for convenience.
// It is set by [SetDefaultLogger] to [termenv.ColorProfile] if [UseColor] is true.
var colorProfile termenv.Profile = termenv.Ascii

// InitColor sets up the terminal environment for color output. It is called
// automatically in [SetDefaultLogger], so it should not need to be called by
// end-user code in almost all circumstances.
func InitColor() {
	if !UseColor {
		colorProfile = termenv.Ascii
		return
	}
	colorProfile = termenv.ColorProfile()
}

// ApplyColor applies the given hex color to the given string
// and returns the resulting string. If [UseColor] is false,
// it just returns the string it was passed.
func ApplyColor(hex string, str string) string {
	if !UseColor {
		return str
	}
	return termenv.String(str).Foreground(colorProfile.Color(hex)).String()
}

// LevelColor applies the color associated with the given level to the
// given string and returns the resulting string. If [UseColor] is false,
// it just returns the string it was passed.
func LevelColor(level slog.Level, str string) string {
	switch {
	case level >= slog.LevelError:
		return ErrorColor(str)
	case level >= slog.LevelWarn:
		return WarnColor(str)
	case level >= slog.LevelInfo:
		return InfoColor(str)
	default:
		return DebugColor(str)
	}
}

// DebugColor applies the color associated with the debug level to
// the given string and returns the resulting string.
func DebugColor(str string) string {
	return ApplyColor("#7d7d92", str)
}

// InfoColor applies the color associated with the info level to
// the given string and returns the resulting string.
func InfoColor(str string) string {
	return ApplyColor("#3a88d7", str)
}

// WarnColor applies the color associated with the warn level to
// the given string and returns the resulting string.
func WarnColor(str string) string {
	return ApplyColor("#d7a13a", str)
}

// ErrorColor applies the color associated with the error level to
// the given string and returns the resulting string.
func ErrorColor(str string) string {
	return ApplyColor("#e0443e", str)
}

// SuccessColor applies the color associated with success to the
// given string and returns the resulting string.
func SuccessColor(str string) string {
	return ApplyColor("#3aa55c", str)
}

// CmdColor applies the color associated with terminal commands and
// arguments to the given string and returns the resulting string.
func CmdColor(str string) string {
	return ApplyColor("#b26ed6", str)
}
