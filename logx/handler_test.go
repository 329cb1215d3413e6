// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger(t *testing.T) {
	UserLevel = slog.LevelDebug
	SetDefaultLogger()

	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}

func TestHandler(t *testing.T) {
	UseColor = false
	defer func() { UseColor = true }()

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	lg.Debug("hidden")
	lg.Info("frame rendered", "frame", 3, "file", "out 1.png")
	assert.Equal(t, "INFO frame rendered frame=3 file=\"out 1.png\"\n", buf.String())

	buf.Reset()
	lg.With("variant", "LitStatic").WithGroup("pipeline").Warn("mismatch", "binding", 1)
	assert.Equal(t, "WARN mismatch variant=LitStatic pipeline.binding=1\n", buf.String())

	buf.Reset()
	lg.Error("failed", slog.Group("shader", "entry", "vs_main"))
	assert.Equal(t, "ERROR failed shader.entry=vs_main\n", buf.String())
}

func TestLevelFromString(t *testing.T) {
	for s, want := range map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warn": slog.LevelWarn, "error": slog.LevelError} {
		lv, err := LevelFromString(s)
		assert.NoError(t, err)
		assert.Equal(t, want, lv)
	}
	_, err := LevelFromString("loud")
	assert.Error(t, err)

	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}
