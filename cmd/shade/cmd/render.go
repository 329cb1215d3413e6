// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of the shade tool.
package cmd

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/shade/base/iox/imagex"
	"cogentcore.org/shade/config"
	"cogentcore.org/shade/gpu/phong"
	"cogentcore.org/shade/math32"
	"cogentcore.org/shade/raster"
	"github.com/schollz/progressbar/v3"
)

// ClearColor is the linear color the target is cleared to each frame.
var ClearColor = math32.Vec4(0.1, 0.2, 0.3, 1)

// Render renders the frames of the scene of the given config and
// saves them to the output file, numbering them if there are several.
// It shows a progress bar for several frames if progress is true.
func Render(ctx context.Context, cf *config.Config, progress bool) error {
	if err := cf.Validate(); err != nil {
		return err
	}
	lm, err := cf.LightingModel()
	if err != nil {
		return err
	}
	ph, err := phong.NewPhong(lm)
	if err != nil {
		return err
	}
	out, err := config.Expand(cf.Render.Output)
	if err != nil {
		return err
	}
	if _, err := imagex.ExtToFormat(filepath.Ext(out)); err != nil {
		return err
	}

	ss := cf.Render.Supersample
	w, h := cf.Render.Width*ss, cf.Render.Height*ss
	rd := raster.NewRenderer(ph, raster.NewTarget(w, h))
	rd.Bands = cf.Render.Bands
	sc, err := NewScene(cf, w, h)
	if err != nil {
		return err
	}

	nf := cf.Render.Frames
	var bar *progressbar.ProgressBar
	if progress && nf > 1 {
		bar = progressbar.Default(int64(nf), "rendering")
		defer bar.Close()
	}
	st := time.Now()
	for i := range nf {
		img, err := RenderFrame(ctx, rd, sc, float64(ss))
		if err != nil {
			return err
		}
		fn := FrameFilename(out, i, nf)
		if err := imagex.Save(raster.Downsample(img, ss), fn); err != nil {
			return err
		}
		slog.Debug("rendered frame", "file", fn, "frame", i)
		if bar != nil {
			bar.Add(1)
		}
		sc.Step()
	}
	slog.Info("rendered", "frames", nf, "size", fmt.Sprintf("%dx%d", cf.Render.Width, cf.Render.Height), "supersample", ss, "elapsed", time.Since(st))
	return nil
}

// RenderFrame renders the current frame of the scene,
// with the HUD if the config has it, at the given HUD scale.
func RenderFrame(ctx context.Context, rd *raster.Renderer, sc *Scene, hudScale float64) (*image.RGBA, error) {
	tg := rd.Target
	tg.Clear(ClearColor)
	fr := sc.PhongFrame()
	if err := rd.DrawAll(ctx, fr, sc.Draws...); err != nil {
		return nil, err
	}
	if sc.Config.Render.HUD {
		hud, err := sc.HUD(tg.Width, tg.Height, hudScale)
		if err != nil {
			return nil, err
		}
		if err := rd.Draw(ctx, fr, hud); err != nil {
			return nil, err
		}
	}
	return tg.Image(), nil
}

// FrameFilename returns the file name of the given frame of n:
// the output name itself for a single frame, and otherwise the
// output name with the frame number before the extension.
func FrameFilename(output string, frame, n int) string {
	if n <= 1 {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(output, ext), frame, ext)
}

// Watch renders the config file, and renders it again each time
// it changes, until the context is done. A change that fails to
// open or render is logged and watching continues.
func Watch(ctx context.Context, filename string) error {
	cf, err := config.Open(filename)
	if err != nil {
		return err
	}
	if err := Render(ctx, cf, false); err != nil {
		return err
	}
	slog.Info("watching for changes", "file", filename)
	return config.Watch(ctx, filename, func(cf *config.Config, err error) {
		if err == nil {
			err = Render(ctx, cf, false)
		}
		if err != nil {
			slog.Error("render", "file", filename, "err", err)
		}
	})
}
