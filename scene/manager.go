// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"
	"time"

	"github.com/tessera3d/tessera/render"
)

// Manager holds the active scene and the clock shared by
// the scenes it activates.
type Manager struct {
	Time *Time

	active *Scene
}

// NewManager returns a manager with a clock at the given fixed step.
func NewManager(fixedStep float64) *Manager {
	return &Manager{Time: NewTime(fixedStep)}
}

// Active returns the active scene, or nil.
func (m *Manager) Active() *Scene { return m.active }

// SetActive disposes the current scene and initializes sc in its place.
// sc.Time is replaced by the manager's clock; components that keep the
// clock past Init should hold the scene, which reads sc.Time on use.
func (m *Manager) SetActive(sc *Scene) {
	if m.active == sc {
		return
	}
	if m.active != nil {
		m.active.Dispose()
	}
	m.active = sc
	if sc == nil {
		return
	}
	sc.Time = m.Time
	sc.Init()
	slog.Debug("scene: activated", "scene", sc.Name, "entities", len(sc.Entities()))
}

// Close disposes the active scene.
func (m *Manager) Close() {
	m.SetActive(nil)
}

// DefaultMaxFixedSteps bounds the fixed steps of one frame.
const DefaultMaxFixedSteps = 5

// Loop drives the active scene of a [Manager] one frame at a time.
type Loop struct {
	Manager *Manager

	// MaxFixedSteps bounds the fixed steps run per frame; time
	// beyond it is dropped so that a slow frame cannot snowball.
	MaxFixedSteps int

	// Debug, if set, receives the debug geometry of every frame.
	Debug render.DebugDrawer

	// OnFrame is called after every drawn frame.
	OnFrame func(st render.Stats)

	// Now is the wall clock used by Run.
	Now func() time.Time
}

// NewLoop returns a loop over the manager.
func NewLoop(m *Manager) *Loop {
	return &Loop{Manager: m, MaxFixedSteps: DefaultMaxFixedSteps, Now: time.Now}
}

// Tick runs one frame of duration dt: Update, AfterUpdate, the fixed
// steps due, then Draw. It returns the number of fixed steps run.
func (lp *Loop) Tick(dt float64) (int, error) {
	t := lp.Manager.Time
	t.Advance(dt)
	sc := lp.Manager.Active()
	if sc == nil {
		t.Discard()
		return 0, nil
	}
	sc.Update(t)
	sc.AfterUpdate(t)
	steps := 0
	for steps < max(lp.MaxFixedSteps, 1) && t.StepFixed() {
		sc.FixedUpdate(t)
		steps++
	}
	if dropped := t.Discard(); dropped > 0 {
		slog.Warn("scene: dropping fixed steps", "scene", sc.Name, "dropped", dropped, "ran", steps)
	}
	st, err := sc.Draw(lp.Debug)
	if lp.OnFrame != nil {
		lp.OnFrame(st)
	}
	return steps, err
}

// Run ticks until shouldClose returns true, using the wall clock
// for frame durations. Frame errors are logged.
func (lp *Loop) Run(shouldClose func() bool) {
	last := lp.Now()
	for !shouldClose() {
		now := lp.Now()
		dt := now.Sub(last).Seconds()
		last = now
		if _, err := lp.Tick(dt); err != nil {
			slog.Warn("scene: frame", "frame", lp.Manager.Time.Frame, "err", err)
		}
	}
}
