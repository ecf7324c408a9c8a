// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package headless provides an in-memory [render.Device] that keeps
// buffer contents in byte slices and records draw calls instead of
// rasterizing them. It is used for tests and for running without a window.
package headless

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tessera3d/tessera/render"
)

// ErrForeignBuffer is returned for buffers not created by the device.
var ErrForeignBuffer = errors.New("headless: buffer belongs to another device")

// Device is an in-memory render device. It is not safe for concurrent use.
type Device struct {

	// MaxBufferSize, if > 0, is the largest buffer that can be created.
	MaxBufferSize int

	// Frames is the number of submitted command lists.
	Frames int

	// DrawCalls is the total number of draw calls submitted.
	DrawCalls int

	// LastFrame holds the draw calls of the last submitted command list.
	LastFrame []render.DrawCall

	buffers map[*Buffer]struct{}
}

// NewDevice returns a new headless device.
func NewDevice() *Device {
	return &Device{buffers: make(map[*Buffer]struct{})}
}

// Buffer is an in-memory buffer.
type Buffer struct {

	// Label is a unique name for debugging.
	Label string

	usage     render.BufferUsage
	data      []byte
	destroyed bool
	dev       *Device
}

func (bf *Buffer) Size() int                 { return len(bf.data) }
func (bf *Buffer) Usage() render.BufferUsage { return bf.usage }
func (bf *Buffer) IsDestroyed() bool         { return bf.destroyed }

// Bytes returns the current contents of the buffer.
func (bf *Buffer) Bytes() []byte { return bf.data }

func (bf *Buffer) Destroy() {
	if bf.destroyed {
		return
	}
	bf.destroyed = true
	bf.data = nil
	delete(bf.dev.buffers, bf)
}

// CreateBuffer allocates a zeroed buffer.
func (dv *Device) CreateBuffer(usage render.BufferUsage, size int) (render.Buffer, error) {
	if size < 0 || (dv.MaxBufferSize > 0 && size > dv.MaxBufferSize) {
		return nil, fmt.Errorf("headless: cannot allocate %s buffer of %d bytes", usage, size)
	}
	bf := &Buffer{Label: usage.String() + "-" + uuid.NewString(), usage: usage, data: make([]byte, size), dev: dv}
	dv.buffers[bf] = struct{}{}
	return bf, nil
}

// LiveBuffers returns the number of buffers not yet destroyed.
func (dv *Device) LiveBuffers() int {
	return len(dv.buffers)
}

func (dv *Device) own(b render.Buffer) (*Buffer, error) {
	bf, ok := b.(*Buffer)
	if !ok || bf.dev != dv {
		return nil, ErrForeignBuffer
	}
	if bf.destroyed {
		return nil, fmt.Errorf("headless: buffer %s: %w", bf.Label, render.ErrDestroyed)
	}
	return bf, nil
}

type update struct {
	buf    *Buffer
	offset int
	data   []byte
}

// CommandList records buffer updates and draw calls for [Device.Submit].
type CommandList struct {
	dev     *Device
	updates []update
	draws   []render.DrawCall
	ops     []bool // true for a draw, in recording order
}

// NewCommandList returns an empty command list.
func (dv *Device) NewCommandList() render.CommandList {
	return &CommandList{dev: dv}
}

// UpdateBuffer records a copy of data to be written at offset.
func (cl *CommandList) UpdateBuffer(b render.Buffer, offset int, data []byte) error {
	bf, err := cl.dev.own(b)
	if err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > len(bf.data) {
		return fmt.Errorf("headless: write of %d bytes at %d overflows buffer %s of %d bytes", len(data), offset, bf.Label, len(bf.data))
	}
	cl.updates = append(cl.updates, update{bf, offset, append([]byte(nil), data...)})
	cl.ops = append(cl.ops, false)
	return nil
}

// DrawIndexed records a draw call.
func (cl *CommandList) DrawIndexed(dc render.DrawCall) error {
	for _, b := range []render.Buffer{dc.Vertices, dc.Indices} {
		if _, err := cl.dev.own(b); err != nil {
			return err
		}
	}
	if dc.IndexCount*4 > dc.Indices.Size() {
		return fmt.Errorf("headless: draw %s: %d indices exceed index buffer", dc.Name, dc.IndexCount)
	}
	cl.draws = append(cl.draws, dc)
	cl.ops = append(cl.ops, true)
	return nil
}

// Len returns the number of recorded commands.
func (cl *CommandList) Len() int { return len(cl.ops) }

// Submit executes the command list: buffer writes are applied and
// draw calls become the device's LastFrame.
func (dv *Device) Submit(c render.CommandList) error {
	cl, ok := c.(*CommandList)
	if !ok || cl.dev != dv {
		return ErrForeignBuffer
	}
	var errs []error
	frame := make([]render.DrawCall, 0, len(cl.draws))
	ui, di := 0, 0
	for _, isDraw := range cl.ops {
		if isDraw {
			frame = append(frame, cl.draws[di])
			di++
			continue
		}
		up := cl.updates[ui]
		ui++
		if up.buf.destroyed {
			errs = append(errs, fmt.Errorf("headless: submit to %s: %w", up.buf.Label, render.ErrDestroyed))
			continue
		}
		copy(up.buf.data[up.offset:], up.data)
	}
	dv.Frames++
	dv.DrawCalls += len(frame)
	dv.LastFrame = frame
	slog.Debug("headless: frame", "frame", dv.Frames, "draws", len(frame), "updates", len(cl.updates))
	return errors.Join(errs...)
}
