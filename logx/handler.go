// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/muesli/termenv"
)

// levelColors are the terminal colors for each level.
var levelColors = map[slog.Level]string{
	slog.LevelDebug: "12",
	slog.LevelInfo:  "10",
	slog.LevelWarn:  "11",
	slog.LevelError: "9",
}

// Handler is a [slog.Handler] that writes each record as a colored
// level, the message, and then the attributes in [slog.TextHandler]
// form:
//
//	WARN cloth torn springs=3
type Handler struct {
	text slog.Handler // writes the attributes into buf
	buf  *bytes.Buffer
	mu   *sync.Mutex
	w    io.Writer
	out  *termenv.Output
}

// NewHandler returns a [Handler] writing to w at the given level.
// Colors degrade to plain text when w is not a terminal.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return newHandler(w, level, termenv.NewOutput(w))
}

func newHandler(w io.Writer, level slog.Leveler, out *termenv.Output) *Handler {
	buf := &bytes.Buffer{}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 {
				switch a.Key {
				case slog.TimeKey, slog.LevelKey, slog.MessageKey:
					return slog.Attr{}
				}
			}
			return a
		},
	}
	return &Handler{text: slog.NewTextHandler(buf, opts), buf: buf, mu: &sync.Mutex{}, w: w, out: out}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.text.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf.Reset()
	if err := h.text.Handle(ctx, r); err != nil {
		return err
	}
	line := h.level(r.Level) + " " + r.Message
	if attrs := bytes.TrimSpace(h.buf.Bytes()); len(attrs) > 0 {
		line += " " + string(attrs)
	}
	_, err := io.WriteString(h.w, line+"\n")
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.text = h.text.WithAttrs(attrs)
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	nh := *h
	nh.text = h.text.WithGroup(name)
	return &nh
}

// level returns the styled name of lv.
func (h *Handler) level(lv slog.Level) string {
	st := h.out.String(lv.String())
	if clr, has := levelColors[lv]; has {
		st = st.Foreground(h.out.Color(clr))
	}
	if lv >= slog.LevelError {
		st = st.Bold()
	}
	return st.String()
}
