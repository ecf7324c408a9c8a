// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"math"

	"github.com/tessera3d/tessera/math32"
)

// DefaultFixedStep is the fixed update rate of 60 steps per second.
const DefaultFixedStep = 1.0 / 60

// Time is the frame clock of a [Loop]. Variable frames advance it
// by their real duration, and the accumulated time is consumed in
// fixed steps by [Time.StepFixed]. All durations are in seconds.
type Time struct {

	// Delta is the duration of the last frame.
	Delta float64

	// Total is the sum of all frame durations.
	Total float64

	// Frame counts calls to Advance.
	Frame uint64

	// FixedFrame counts fixed steps taken.
	FixedFrame uint64

	fixedStep float64
	acc       float64
}

// NewTime returns a clock with the given fixed step, which
// defaults to [DefaultFixedStep] when not positive.
func NewTime(fixedStep float64) *Time {
	t := &Time{}
	t.SetFixedStep(fixedStep)
	return t
}

// SetFixedStep sets the duration of one fixed step.
func (t *Time) SetFixedStep(step float64) {
	if step <= 0 {
		step = DefaultFixedStep
	}
	t.fixedStep = step
}

// Advance starts a new frame of duration dt. Negative durations
// are treated as zero.
func (t *Time) Advance(dt float64) {
	dt = max(dt, 0)
	t.Delta = dt
	t.Total += dt
	t.acc += dt
	t.Frame++
}

// StepFixed consumes one fixed step from the accumulator and
// returns true, or returns false if less than a step is left.
func (t *Time) StepFixed() bool {
	if t.acc < t.fixedStep {
		return false
	}
	t.acc -= t.fixedStep
	t.FixedFrame++
	return true
}

// Discard drops all whole steps left in the accumulator and
// returns how many were dropped.
func (t *Time) Discard() int {
	n := int(t.acc / t.fixedStep)
	t.acc = math.Mod(t.acc, t.fixedStep)
	return n
}

// FixedAccumulator returns the time accumulated toward the next fixed step.
func (t *Time) FixedAccumulator() float64 { return t.acc }

// FixedStep returns the duration of one fixed step.
func (t *Time) FixedStep() float64 { return t.fixedStep }

// Alpha returns the fraction of the next fixed step already
// accumulated, in [0,1], for interpolating between steps.
func (t *Time) Alpha() float32 {
	return math32.Clamp(float32(t.acc/t.fixedStep), 0, 1)
}
