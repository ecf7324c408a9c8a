// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessera3d/tessera/math32"
)

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "tessera", cfg.Window.Title)
	assert.InDelta(t, 1.0/60, cfg.Time.FixedStep, 1e-6)
	assert.Equal(t, math32.Vec3(0, -9.81, 0), cfg.Physics.Gravity)
	assert.True(t, cfg.Physics.Floor)
	assert.Equal(t, math32.Vec2(0.25, 0.25), cfg.Cloth.Spacing)
	assert.Equal(t, "normalized", cfg.Cloth.UV)
	assert.Equal(t, float32(1), cfg.Cube.Size)
	assert.NoError(t, cfg.Validate())
}

type tagged struct {
	Wait  time.Duration `default:"250ms"`
	Count uint8         `default:"7"`
	Inner struct {
		Name string `default:"inner"`
	}
	Bad int `default:"seven"`
}

func TestSetFromDefaultsErrors(t *testing.T) {
	var v tagged
	err := SetFromDefaults(&v)
	assert.Error(t, err)
	assert.Equal(t, 250*time.Millisecond, v.Wait)
	assert.Equal(t, uint8(7), v.Count)
	assert.Equal(t, "inner", v.Inner.Name)

	assert.Error(t, SetFromDefaults(v))
}

func TestSaveOpen(t *testing.T) {
	for _, name := range []string{"engine.toml", "engine.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := New()
			cfg.Cloth.Width = 5
			cfg.Sphere.Position = math32.Vec3(1, 2, 3)
			cfg.Physics.Floor = false
			require.NoError(t, Save(cfg, path))

			got := New()
			require.NoError(t, Open(got, path))
			assert.Equal(t, cfg, got)
		})
	}
	assert.Error(t, Save(New(), filepath.Join(t.TempDir(), "engine.ini")))
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Cube]\nSize = 2.5\n"), 0o666))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), cfg.Cube.Size)
	assert.Equal(t, 8, cfg.Cloth.Width)

	require.NoError(t, os.WriteFile(path, []byte("[Cube]\nSize = -1\n"), 0o666))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.Time.FixedStep = 0
	cfg.Cloth.Height = 0
	cfg.Cloth.UV = "spherical"
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "FixedStep")
	assert.Contains(t, err.Error(), "Cloth dimensions")
	assert.Contains(t, err.Error(), "Cloth.UV")
}

func TestClone(t *testing.T) {
	cfg := New()
	cl := cfg.Clone()
	assert.Equal(t, cfg, cl)
	cl.Cloth.Width = 99
	assert.Equal(t, 8, cfg.Cloth.Width)
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.toml")
	require.NoError(t, Save(New(), path))

	got := make(chan *Config, 8)
	w, err := Watch(path, func(cfg *Config) { got <- cfg })
	require.NoError(t, err)
	defer w.Close()

	cfg := New()
	cfg.Cloth.Softness = 0.25
	require.NoError(t, Save(cfg, path))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-got:
			if c.Cloth.Softness == 0.25 {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
