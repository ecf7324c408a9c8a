// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package components

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/tessera3d/tessera/math32"
	"github.com/tessera3d/tessera/scene"
)

// AudioSource plays a streamer through the scene mixer, attenuated
// linearly with the distance from the camera.
type AudioSource struct {
	scene.ComponentBase

	Streamer beep.Streamer

	// Volume is the linear gain at the source.
	Volume float64

	// Range is the distance at which the sound becomes silent;
	// 0 disables attenuation.
	Range float32

	// PlayOnInit starts playback when the component initializes.
	PlayOnInit bool

	ctrl    *beep.Ctrl
	vol     *effects.Volume
	playing bool
}

// NewAudioSource returns a source for the streamer at full volume.
func NewAudioSource(s beep.Streamer, rng float32) *AudioSource {
	return &AudioSource{Streamer: s, Volume: 1, Range: rng, PlayOnInit: true}
}

func (as *AudioSource) Init() {
	as.ctrl = &beep.Ctrl{Streamer: as.Streamer}
	as.vol = &effects.Volume{Streamer: as.ctrl, Base: 2}
	as.attenuate()
	if as.PlayOnInit {
		as.Play()
	}
}

// Play adds the source to the mixer, or resumes it if paused.
func (as *AudioSource) Play() {
	as.ctrl.Paused = false
	if !as.playing {
		as.Scene().Audio.Play(as.vol)
		as.playing = true
	}
}

// Pause pauses playback.
func (as *AudioSource) Pause() { as.ctrl.Paused = true }

// IsPaused returns whether playback is paused.
func (as *AudioSource) IsPaused() bool { return as.ctrl.Paused }

// Gain returns the current linear gain.
func (as *AudioSource) Gain() float64 {
	if as.vol.Silent {
		return 0
	}
	return math.Pow(as.vol.Base, as.vol.Volume)
}

func (as *AudioSource) Update(t *scene.Time) { as.attenuate() }

func (as *AudioSource) attenuate() {
	gain := as.Volume
	if as.Range > 0 {
		d := as.Entity().Position.DistanceTo(as.Scene().Camera.Pose.Pos)
		gain *= float64(math32.Clamp(1-d/as.Range, 0, 1))
	}
	if gain <= 0 {
		as.vol.Volume = 0
		as.vol.Silent = true
		return
	}
	as.vol.Volume = math.Log2(gain)
	as.vol.Silent = false
}

// Dispose stops the source; the mixer drops it on its next pass.
func (as *AudioSource) Dispose() {
	if as.ctrl != nil {
		as.ctrl.Streamer = nil
	}
}
