package app

import (
	"fmt"

	"sandfall/internal/core"
	"sandfall/internal/sims/sandfall"
)

// NewWorld builds the world described by cfg: from the YAML file when
// ConfigPath is set, otherwise through the simulation registry with the -set
// options. The world is reset with cfg.Seed.
func NewWorld(cfg *Config) (*sandfall.World, error) {
	var world *sandfall.World
	if cfg.ConfigPath != "" {
		wc, err := sandfall.LoadConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		world, err = sandfall.NewWithConfig(wc)
		if err != nil {
			return nil, err
		}
	} else {
		sim, err := core.New("sandfall", cfg.Set)
		if err != nil {
			return nil, err
		}
		w, ok := sim.(*sandfall.World)
		if !ok {
			return nil, fmt.Errorf("sim %q is %T, not a sandfall world", sim.Name(), sim)
		}
		world = w
	}
	if cfg.ConfigPath != "" {
		for key, value := range cfg.Set {
			if !applyOverride(world, key, value) {
				return nil, fmt.Errorf("option %q cannot be changed after loading %s", key, cfg.ConfigPath)
			}
		}
	}
	world.Reset(cfg.Seed)
	return world, nil
}

// applyOverride sets a tunable on an existing world through its HUD setters.
func applyOverride(w *sandfall.World, key, value string) bool {
	snap := w.Parameters()
	param, ok := snap.Lookup(key)
	if !ok {
		return false
	}
	switch param.Type {
	case core.ParamTypeInt:
		var v int
		if _, err := fmt.Sscan(value, &v); err != nil {
			return false
		}
		return w.SetIntParameter(key, v)
	case core.ParamTypeFloat:
		var v float64
		if _, err := fmt.Sscan(value, &v); err != nil {
			return false
		}
		return w.SetFloatParameter(key, v)
	}
	return false
}
