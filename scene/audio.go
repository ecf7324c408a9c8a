// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"time"

	"github.com/gopxl/beep"
)

// DefaultSampleRate is the sample rate of the scene mixer.
const DefaultSampleRate = beep.SampleRate(48000)

// Audio mixes the sounds of a scene. The mixer is pumped once per
// frame for the frame's duration and the samples are handed to Sink,
// which typically feeds an output device.
type Audio struct {
	SampleRate beep.SampleRate
	Mixer      *beep.Mixer

	// Sink receives the mixed samples of each frame; the slice is
	// reused on the next frame. Samples are dropped when nil.
	Sink func(samples [][2]float64)

	// Streamed is the total number of samples mixed.
	Streamed int

	buf [][2]float64
}

// NewAudio returns an empty mixer at the given sample rate.
func NewAudio(sr beep.SampleRate) *Audio {
	return &Audio{SampleRate: sr, Mixer: &beep.Mixer{}}
}

// Play adds the streamers to the mixer.
func (au *Audio) Play(s ...beep.Streamer) {
	au.Mixer.Add(s...)
}

// Len returns the number of playing streamers.
func (au *Audio) Len() int { return au.Mixer.Len() }

// Pump mixes dt seconds of audio.
func (au *Audio) Pump(dt float64) {
	n := au.SampleRate.N(time.Duration(dt * float64(time.Second)))
	if n <= 0 {
		return
	}
	if cap(au.buf) < n {
		au.buf = make([][2]float64, n)
	}
	buf := au.buf[:n]
	n, _ = au.Mixer.Stream(buf)
	au.Streamed += n
	if au.Sink != nil {
		au.Sink(buf[:n])
	}
}

// Clear removes every streamer.
func (au *Audio) Clear() {
	au.Mixer.Clear()
}
