// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command softdemo runs a scene with a cloth, a sphere and a cube
// falling onto a floor, either headless for a number of frames or
// as a live debug view in the terminal.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/profile"
	"github.com/tessera3d/tessera/base/errors"
	"github.com/tessera3d/tessera/config"
	"github.com/tessera3d/tessera/logx"
)

func main() {
	if err := run(); err != nil {
		slog.Error("softdemo", "err", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath = flag.String("config", "", "config file (.toml, .yaml or .yml)")
		frames  = flag.Int("frames", 600, "number of frames to run headless")
		term    = flag.Bool("term", false, "show a live debug view in the terminal")
		watch   = flag.Bool("watch", false, "reload constraint softness when the config file changes")
		prof    = flag.String("profile", "", "write a cpu or mem profile to the current directory")
		vv      = flag.Bool("vv", false, "debug logging")
		v       = flag.Bool("v", false, "info logging")
		q       = flag.Bool("q", false, "only log errors")
	)
	flag.Parse()

	cfg := config.New()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			return err
		}
	}
	logx.UserLevel = errors.Log1(logx.ParseLevel(cfg.Log.Level))
	if *vv || *v || *q {
		logx.UserLevel = logx.LevelFromFlags(*vv, *v, *q)
	}
	logx.SetDefaultLogger()

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *prof)
	}

	d, err := newDemo(cfg, *term)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	defer d.close()

	if *watch && *cfgPath != "" {
		w, err := config.Watch(*cfgPath, d.reload)
		if errors.Log(err) == nil {
			defer w.Close()
		}
	}

	if *term {
		return d.runTerminal()
	}
	return d.runHeadless(*frames)
}
