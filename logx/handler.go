// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// SetDefaultLogger sets the default logger to be a [Handler] writing
// to [os.Stderr] with the level set to [UserLevel]. It also calls
// [InitColor]. It should be called once at program start.
func SetDefaultLogger() {
	InitColor()
	slog.SetDefault(slog.New(NewHandler(os.Stderr, &slog.HandlerOptions{Level: &UserLevel})))
}

// Handler is a [slog.Handler] that writes one line per record, with the
// level name colored by [LevelColor], followed by the message and the
// attributes as key=value pairs.
type Handler struct {
	opts   slog.HandlerOptions
	prefix string // pre-formatted attributes from WithAttrs
	groups string // dotted group prefix from WithGroup
	mu     *sync.Mutex
	w      io.Writer
}

// NewHandler returns a new [Handler] writing to w.
// If opts is nil the minimum level is [slog.LevelInfo].
func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats the record and writes it.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(LevelColor(r.Level, r.Level.String()))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	sb.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, h.groups, a)
		return true
	})
	sb.WriteByte('\n')
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs returns a new handler with the given attributes always added.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	var sb strings.Builder
	sb.WriteString(h.prefix)
	for _, a := range attrs {
		appendAttr(&sb, h.groups, a)
	}
	nh.prefix = sb.String()
	return &nh
}

// WithGroup returns a new handler qualifying subsequent attribute keys
// with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.groups = h.groups + name + "."
	return &nh
}

func appendAttr(sb *strings.Builder, groups string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(sb, sub, ga)
		}
		return
	}
	sb.WriteByte(' ')
	sb.WriteString(DebugColor(groups + a.Key + "="))
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\"") {
		v = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	sb.WriteString(v)
}
