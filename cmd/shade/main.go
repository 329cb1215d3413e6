// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command shade renders the demo scene with the software reference
// renderer of the shading core, and prints and checks its WGSL programs.
package main

import (
	"context"
	"os"
	"os/signal"

	"cogentcore.org/shade/base/errors"
	"cogentcore.org/shade/cmd/shade/cmd"
	"cogentcore.org/shade/config"
	"cogentcore.org/shade/gpu"
	"cogentcore.org/shade/gpu/phong"
	"cogentcore.org/shade/logx"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRoot().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	var vv, v, q bool
	root := &cobra.Command{
		Use:           "shade",
		Short:         "shade renders and checks the phong shading programs",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(vv, v, q)
			gpu.Debug = vv
			logx.SetDefaultLogger()
		},
	}
	root.PersistentFlags().BoolVar(&vv, "vv", false, "debug logging")
	root.PersistentFlags().BoolVarP(&v, "verbose", "v", false, "info logging")
	root.PersistentFlags().BoolVarP(&q, "quiet", "q", false, "only log errors")
	root.AddCommand(newRender(), newShaders(), newLayout(), newConfig())
	return root
}

// openConfig opens the named config file, or returns the defaults
// if there is no file name.
func openConfig(file string) (*config.Config, error) {
	if file == "" {
		return config.Defaults(), nil
	}
	return config.Open(file)
}

func newRender() *cobra.Command {
	var file, output, lighting string
	var width, height, ss, frames int
	var hud, watch bool
	c := &cobra.Command{
		Use:   "render",
		Short: "render the demo scene to a PNG or WebP image",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if watch {
				if file == "" {
					return errors.New("--watch needs a --config file")
				}
				return cmd.Watch(c.Context(), file)
			}
			cf, err := openConfig(file)
			if err != nil {
				return err
			}
			fl := c.Flags()
			if fl.Changed("output") {
				cf.Render.Output = output
			}
			if fl.Changed("width") {
				cf.Render.Width = width
			}
			if fl.Changed("height") {
				cf.Render.Height = height
			}
			if fl.Changed("supersample") {
				cf.Render.Supersample = ss
			}
			if fl.Changed("frames") {
				cf.Render.Frames = frames
			}
			if fl.Changed("lighting") {
				cf.Render.Lighting = lighting
			}
			if fl.Changed("hud") {
				cf.Render.HUD = hud
			}
			return cmd.Render(c.Context(), cf, true)
		},
	}
	fl := c.Flags()
	fl.StringVarP(&file, "config", "c", "", "config file (.toml, .yaml)")
	fl.StringVarP(&output, "output", "o", "shade.png", "output image (.png, .webp)")
	fl.IntVar(&width, "width", 1280, "output width")
	fl.IntVar(&height, "height", 720, "output height")
	fl.IntVarP(&ss, "supersample", "s", 1, "supersampling factor")
	fl.IntVarP(&frames, "frames", "n", 1, "number of frames, orbiting the light")
	fl.StringVar(&lighting, "lighting", "full", "lighting model: full or reduced")
	fl.BoolVar(&hud, "hud", false, "draw the frame information overlay")
	fl.BoolVarP(&watch, "watch", "w", false, "render again when the config file changes")
	return c
}

func lightingFlag(name string) (phong.LightingModel, error) {
	cf := config.Defaults()
	cf.Render.Lighting = name
	return cf.LightingModel()
}

func newShaders() *cobra.Command {
	var lighting string
	var color bool
	c := &cobra.Command{
		Use:       "shaders <variant>",
		Short:     "print the assembled WGSL program of a variant",
		Args:      cobra.ExactArgs(1),
		ValidArgs: variantNames(),
		RunE: func(c *cobra.Command, args []string) error {
			lm, err := lightingFlag(lighting)
			if err != nil {
				return err
			}
			hl := color && termenv.NewOutput(os.Stdout).ColorProfile() != termenv.Ascii
			return cmd.Shaders(c.OutOrStdout(), args[0], lm, hl)
		},
	}
	c.Flags().StringVar(&lighting, "lighting", "full", "lighting model: full or reduced")
	c.Flags().BoolVar(&color, "color", true, "syntax highlight on a color terminal")
	return c
}

func variantNames() []string {
	var names []string
	for _, vt := range phong.AllVariants() {
		names = append(names, vt.String())
	}
	return names
}

func newLayout() *cobra.Command {
	var lighting, dir string
	c := &cobra.Command{
		Use:   "layout",
		Short: "print the host layouts and check the WGSL programs against them",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			lm, err := lightingFlag(lighting)
			if err != nil {
				return err
			}
			if dir == "" {
				return cmd.Layout(c.OutOrStdout(), lm, nil)
			}
			exp, err := config.Expand(dir)
			if err != nil {
				return err
			}
			return cmd.Layout(c.OutOrStdout(), lm, os.DirFS(exp))
		},
	}
	c.Flags().StringVar(&lighting, "lighting", "full", "lighting model: full or reduced")
	c.Flags().StringVar(&dir, "shaders", "", "check the programs in this directory, above a shaders directory")
	return c
}

func newConfig() *cobra.Command {
	return &cobra.Command{
		Use:   "config <file>",
		Short: "write the default config to a .toml or .yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return config.Defaults().Save(args[0])
		},
	}
}
