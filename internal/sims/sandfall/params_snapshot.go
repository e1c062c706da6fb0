package sandfall

import (
	"strconv"

	"sandfall/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("size", "Size", w.cfg.Size),
				intParam("chunk_size", "Chunk size", w.cfg.ChunkSize),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("awake_chunks", "Awake chunks", w.stats.AwakeChunks),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				floatParam("gravity_x", "Gravity X", params.GravityX),
				floatParam("gravity_y", "Gravity Y", params.GravityY),
				floatParam("time_step", "Time step", params.TimeStep),
			},
		},
		{
			Name: "Tools",
			Params: []core.Parameter{
				intParam("brush_radius", "Brush radius", params.BrushRadius),
				floatParam("explosion_min_radius", "Explosion min radius", params.ExplosionMinRadius),
				floatParam("explosion_max_radius", "Explosion max radius", params.ExplosionMaxRadius),
				floatParam("explosion_scorch", "Explosion scorch", params.ExplosionScorch),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "gravity_y", Label: "Gravity", Type: core.ParamTypeFloat, Step: 0.5, Min: -30, Max: 30, HasMin: true, HasMax: true},
		{Key: "brush_radius", Label: "Brush radius", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
		{Key: "explosion_min_radius", Label: "Blast min", Type: core.ParamTypeFloat, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
		{Key: "explosion_max_radius", Label: "Blast max", Type: core.ParamTypeFloat, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
		{Key: "explosion_scorch", Label: "Scorch", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, Max: 16, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable by key.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "brush_radius":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.BrushRadius = value
		return true
	}
	return false
}

// SetFloatParameter updates a float tunable by key. The explosion band stays
// ordered: raising the minimum past the maximum drags the maximum along and
// vice versa.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := &w.cfg.Params
	switch key {
	case "gravity_x":
		p.GravityX = value
	case "gravity_y":
		p.GravityY = value
	case "time_step":
		if value <= 0 {
			return false
		}
		p.TimeStep = value
	case "explosion_min_radius":
		p.ExplosionMinRadius = max(value, 0)
		if p.ExplosionMaxRadius < p.ExplosionMinRadius {
			p.ExplosionMaxRadius = p.ExplosionMinRadius
		}
	case "explosion_max_radius":
		p.ExplosionMaxRadius = max(value, 0)
		if p.ExplosionMinRadius > p.ExplosionMaxRadius {
			p.ExplosionMinRadius = p.ExplosionMaxRadius
		}
	case "explosion_scorch":
		p.ExplosionScorch = max(value, 0)
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
