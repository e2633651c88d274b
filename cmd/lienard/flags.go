package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/lienard/internal/config"
	"github.com/san-kum/lienard/internal/optim"
)

// loadConfig layers defaults, a named variant, a config file, the preset
// argument and finally any flags set on the command line.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	if variant != "" {
		if name == "" {
			return nil, fmt.Errorf("--variant needs a preset argument")
		}
		p := config.GetPreset(name, variant)
		if p == nil {
			return nil, fmt.Errorf("unknown variant: %s (available: %v)", variant, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if name != "" {
		cfg.Preset = name
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("c") {
		cfg.C = speedOfLight
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("frames") {
		cfg.Frames = frames
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("step") {
		cfg.StepFraction = stepFraction
	}
	if f.Changed("grid") {
		cfg.Grid = grid
	}
	if f.Changed("grid-size") {
		cfg.GridSize = gridSize
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("count") {
		cfg.Charges.Count = count
	}
	if f.Changed("radius") {
		cfg.Charges.Radius = radius
	}
	if f.Changed("speed") {
		cfg.Charges.Speed = speed
	}
	if f.Changed("charge") {
		cfg.Charges.Charge = charge
	}
	if f.Changed("mass") {
		cfg.Charges.Mass = mass
	}
	if f.Changed("appear-at") {
		at := appearAt
		cfg.Charges.AppearAt = &at
	}

	vectors := []struct {
		flag string
		src  *string
		dst  func(config.Vec3)
	}{
		{"watch", &watch, func(v config.Vec3) { cfg.Watch = &v }},
		{"observer", &observerPos, func(v config.Vec3) { cfg.Observer.Position = &v }},
		{"velocity", &velocity, func(v config.Vec3) { cfg.Observer.Velocity = v }},
		{"thrust", &thrust, func(v config.Vec3) { cfg.Observer.Acceleration = v }},
	}
	for _, vec := range vectors {
		if !f.Changed(vec.flag) {
			continue
		}
		v, err := parseVec3(*vec.src)
		if err != nil {
			return fmt.Errorf("--%s: %w", vec.flag, err)
		}
		vec.dst(v)
	}

	if f.Changed("c-at") {
		s, err := parseSchedule(schedule)
		if err != nil {
			return err
		}
		cfg.CSchedule = s
	}
	return nil
}

func parseVec3(s string) (config.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return config.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v config.Vec3
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return config.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = x
	}
	return v, nil
}

func parseSchedule(entries []string) ([]config.CChange, error) {
	out := make([]config.CChange, 0, len(entries))
	for _, e := range entries {
		frame, c, ok := strings.Cut(e, ":")
		if !ok {
			return nil, fmt.Errorf("--c-at: expected frame:c, got %q", e)
		}
		n, err := strconv.Atoi(strings.TrimSpace(frame))
		if err != nil {
			return nil, fmt.Errorf("--c-at %q: %w", e, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return nil, fmt.Errorf("--c-at %q: %w", e, err)
		}
		out = append(out, config.CChange{Frame: n, C: v})
	}
	return out, nil
}

// parseSearchParam reads name=v1,v2,... or name=lo:hi:n.
func parseSearchParam(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("--param: expected name=values, got %q", s)
	}
	name = strings.TrimSpace(name)
	if parts := strings.Split(list, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		n, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return "", nil, fmt.Errorf("--param %q: expected lo:hi:n", s)
		}
		return name, optim.Linspace(lo, hi, n), nil
	}
	var values []float64
	for _, p := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, fmt.Errorf("--param %q: %w", s, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}
