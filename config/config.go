// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the engine configuration structs
// and the logic for loading, saving and watching them.
package config

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/tessera3d/tessera/math32"
)

// ErrInvalid is returned (wrapped) by [Config.Validate].
var ErrInvalid = errors.New("config: invalid value")

// Config is the main config struct that contains
// all of the configuration options for an engine run.
type Config struct {

	// the window (or terminal view) options
	Window Window `desc:"the window (or terminal view) options"`

	// the fixed-step timing options
	Time Time `desc:"the fixed-step timing options"`

	// the physics world options
	Physics Physics `desc:"the physics world options"`

	// the demo cloth soft body
	Cloth Cloth `desc:"the demo cloth soft body"`

	// the demo sphere soft body
	Sphere Sphere `desc:"the demo sphere soft body"`

	// the demo cube soft body
	Cube Cube `desc:"the demo cube soft body"`

	// the logging options
	Log Log `desc:"the logging options"`
}

type Window struct {

	// the width of the view in pixels
	Width int `default:"1280" desc:"the width of the view in pixels"`

	// the height of the view in pixels
	Height int `default:"720" desc:"the height of the view in pixels"`

	// the title of the window
	Title string `default:"tessera" desc:"the title of the window"`

	// the vertical field of view of the camera in degrees
	FOV float32 `default:"60" desc:"the vertical field of view of the camera in degrees"`
}

type Time struct {

	// the fixed physics step in seconds
	FixedStep float64 `default:"0.016666667" desc:"the fixed physics step in seconds"`

	// the maximum number of fixed steps run in one frame
	MaxFixedSteps int `default:"5" desc:"the maximum number of fixed steps run in one frame"`
}

type Physics struct {

	// the gravity acceleration vector
	Gravity math32.Vector3 `default:"0 -9.81 0" desc:"the gravity acceleration vector"`

	// the number of solver substeps per world step
	Substeps int `default:"8" desc:"the number of solver substeps per world step"`

	// the per-step velocity damping factor (1 = none)
	Damping float32 `default:"0.998" desc:"the per-step velocity damping factor (1 = none)"`

	// whether to collide bodies against a horizontal floor plane
	Floor bool `default:"true" desc:"whether to collide bodies against a horizontal floor plane"`

	// the height of the floor plane
	FloorHeight float32 `default:"0" desc:"the height of the floor plane"`
}

type Cloth struct {

	// the number of grid cells along X
	Width int `default:"8" desc:"the number of grid cells along X"`

	// the number of grid cells along Z
	Height int `default:"8" desc:"the number of grid cells along Z"`

	// the spacing between grid vertices along X and Z
	Spacing math32.Vector2 `default:"0.25 0.25" desc:"the spacing between grid vertices along X and Z"`

	// the compliance of the edge springs (0 = rigid)
	Softness float32 `default:"0.0005" desc:"the compliance of the edge springs (0 = rigid)"`

	// whether to anchor the center body to 1, 2 or 4 vertices by grid parity
	DynamicCenter bool `default:"true" desc:"whether to anchor the center body to 1, 2 or 4 vertices by grid parity"`

	// the texture coordinate mode: grid or normalized
	UV string `default:"normalized" desc:"the texture coordinate mode: grid or normalized"`

	// the initial position of the cloth center
	Position math32.Vector3 `default:"0 4 0" desc:"the initial position of the cloth center"`
}

type Sphere struct {

	// the number of icosphere subdivisions
	Subdivisions int `default:"2" desc:"the number of icosphere subdivisions"`

	// the radius of the sphere
	Radius float32 `default:"0.75" desc:"the radius of the sphere"`

	// the compliance of the center links (0 = rigid)
	Softness float32 `default:"0.002" desc:"the compliance of the center links (0 = rigid)"`

	// the initial position of the sphere center
	Position math32.Vector3 `default:"3 5 0" desc:"the initial position of the sphere center"`
}

type Cube struct {

	// the edge length of the cube
	Size float32 `default:"1" desc:"the edge length of the cube"`

	// the compliance of the center links (0 = rigid)
	Softness float32 `default:"0.001" desc:"the compliance of the center links (0 = rigid)"`

	// the initial position of the cube center
	Position math32.Vector3 `default:"-3 5 0" desc:"the initial position of the cube center"`
}

type Log struct {

	// the minimum level of messages to log: debug, info, warn or error
	Level string `default:"info" desc:"the minimum level of messages to log: debug, info, warn or error"`
}

// New returns a new [Config] with all fields set from their default tags.
func New() *Config {
	cfg := &Config{}
	SetFromDefaults(cfg)
	return cfg
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	nc := &Config{}
	if err := copier.CopyWithOption(nc, c, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Errorf("config.Clone: %w", err))
	}
	return nc
}

// Validate returns an error wrapping [ErrInvalid] for every
// value that the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if c.Time.FixedStep <= 0 {
		bad("Time.FixedStep must be > 0, got %g", c.Time.FixedStep)
	}
	if c.Time.MaxFixedSteps < 1 {
		bad("Time.MaxFixedSteps must be >= 1, got %d", c.Time.MaxFixedSteps)
	}
	if c.Physics.Substeps < 1 {
		bad("Physics.Substeps must be >= 1, got %d", c.Physics.Substeps)
	}
	if c.Cloth.Width < 1 || c.Cloth.Height < 1 {
		bad("Cloth dimensions must be >= 1, got %dx%d", c.Cloth.Width, c.Cloth.Height)
	}
	if c.Cloth.UV != "grid" && c.Cloth.UV != "normalized" {
		bad("Cloth.UV must be grid or normalized, got %q", c.Cloth.UV)
	}
	if c.Sphere.Subdivisions < 0 {
		bad("Sphere.Subdivisions must be >= 0, got %d", c.Sphere.Subdivisions)
	}
	if c.Sphere.Radius <= 0 {
		bad("Sphere.Radius must be > 0, got %g", c.Sphere.Radius)
	}
	if c.Cube.Size <= 0 {
		bad("Cube.Size must be > 0, got %g", c.Cube.Size)
	}
	return errors.Join(errs...)
}
