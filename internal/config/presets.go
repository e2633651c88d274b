package config

import "sort"

func appearAt(ct float64) *float64 { return &ct }

func watchAt(x, y, z float64) *Vec3 { return &Vec3{x, y, z} }

var Presets = map[string]map[string]*Config{
	"static": {
		"coulomb": {
			Preset: "static", C: 1, StepFraction: 0.01, Dt: 1.0 / 60, Frames: 300, Grid: "2d",
			Watch: watchAt(0, 5, 0),
		},
		"switch_on": {
			Preset: "static", C: 1, StepFraction: 0.01, Dt: 1.0 / 30, Frames: 900, Grid: "2d",
			Charges: ChargesConfig{AppearAt: appearAt(0)},
			Watch:   watchAt(0, 10, 0),
		},
	},
	"eom": {
		"slow": {
			Preset: "eom", C: 1, StepFraction: 0.01, Dt: 1.0 / 60, Frames: 1200, Grid: "2d",
			Charges: ChargesConfig{Speed: 0.2},
		},
		"fast": {
			Preset: "eom", C: 1, StepFraction: 0.005, Dt: 1.0 / 60, Frames: 1200, Grid: "2d",
			Charges: ChargesConfig{Speed: 0.9},
		},
	},
	"line_o": {
		"radio": {
			Preset: "line_o", C: 1, StepFraction: 0.01, Dt: 0.25, Frames: 400, Grid: "2d",
			Watch: watchAt(0, 10, 0),
		},
		"slow_light": {
			Preset: "line_o", C: 0.5, StepFraction: 0.01, Dt: 0.25, Frames: 400, Grid: "2d",
			Watch: watchAt(0, 10, 0),
		},
	},
	"o_eom": {
		"driven": {
			Preset: "o_eom", C: 1, StepFraction: 0.01, Dt: 1.0 / 60, Frames: 1200, Grid: "2d",
		},
	},
	"dipole": {
		"antenna": {
			Preset: "dipole", C: 1, StepFraction: 0.01, Dt: 0.1, Frames: 600, Grid: "2d",
			Watch: watchAt(10, 0, 0),
		},
		"relativistic": {
			Preset: "dipole", C: 0.6, StepFraction: 0.01, Dt: 0.1, Frames: 600, Grid: "3d",
			Watch: watchAt(10, 0, 0),
		},
	},
	"dipole2": {
		"parallel": {
			Preset: "dipole2", C: 1, StepFraction: 0.01, Dt: 0.1, Frames: 600, Grid: "2d",
			Watch: watchAt(0, 0, 10),
		},
	},
	"random": {
		"sparse": {
			Preset: "random", C: 1, StepFraction: 0.01, Dt: 1.0 / 60, Frames: 900, Seed: 1, Grid: "2d",
			Charges: ChargesConfig{Count: 4},
		},
		"dense": {
			Preset: "random", C: 1, StepFraction: 0.02, Dt: 1.0 / 60, Frames: 900, Seed: 7, Grid: "2d",
			Charges: ChargesConfig{Count: 20, Charge: 0.5},
		},
	},
	"circle": {
		"ring": {
			Preset: "circle", C: 1, StepFraction: 0.01, Dt: 1.0 / 60, Frames: 1200, Grid: "2d",
			Charges: ChargesConfig{Count: 6, Radius: 5, Speed: 0.4},
		},
		"observer_flyby": {
			Preset: "circle", C: 1, StepFraction: 0.01, Dt: 1.0 / 60, Frames: 1200, Grid: "2d",
			Charges:  ChargesConfig{Count: 8, Radius: 4, Speed: 0.3},
			Observer: ObserverConfig{Velocity: Vec3{0.6, 0, 0}, Acceleration: Vec3{-0.05, 0, 0}},
		},
	},
}

// GetPreset returns a copy of a named variant, or nil.
func GetPreset(preset, variant string) *Config {
	variants, ok := Presets[preset]
	if !ok {
		return nil
	}
	cfg, ok := variants[variant]
	if !ok {
		return nil
	}
	cp := cfg.Clone()
	cp.Variant = variant
	return cp
}

func ListPresets(preset string) []string {
	variants, ok := Presets[preset]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
