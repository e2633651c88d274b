package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/spacetime"
)

const (
	DefaultPreset       = "static"
	DefaultC            = 1.0
	DefaultStepFraction = chargeset.DefaultStepFraction
	DefaultDt           = 1.0 / 60
	DefaultFrames       = 600
	DefaultSeed         = 1
	DefaultGrid         = "2d"
)

type Config struct {
	Preset       string         `yaml:"preset"`
	Variant      string         `yaml:"variant,omitempty"`
	C            float64        `yaml:"c"`
	StepFraction float64        `yaml:"step_fraction"`
	Dt           float64        `yaml:"dt"`
	Frames       int            `yaml:"frames"`
	Seed         int64          `yaml:"seed"`
	Grid         string         `yaml:"grid"`
	GridSize     int            `yaml:"grid_size,omitempty"`
	Workers      int            `yaml:"workers,omitempty"`
	Observer     ObserverConfig `yaml:"observer"`
	Charges      ChargesConfig  `yaml:"charges"`
	CSchedule    []CChange      `yaml:"c_schedule,omitempty"`
	Watch        *Vec3          `yaml:"watch,omitempty"`
}

// Vec3 is written as a flow sequence: [x, y, z].
type Vec3 [3]float64

func (v Vec3) Vector() spacetime.Vector3 { return spacetime.Vec3(v[0], v[1], v[2]) }

func FromVector(v spacetime.Vector3) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func (v Vec3) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range v {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(x)})
	}
	return node, nil
}

type ObserverConfig struct {
	Position     *Vec3 `yaml:"position,omitempty"`
	Velocity     Vec3  `yaml:"velocity"`
	Acceleration Vec3  `yaml:"acceleration"`
}

type ChargesConfig struct {
	Count    int      `yaml:"count,omitempty"`
	Radius   float64  `yaml:"radius,omitempty"`
	Speed    float64  `yaml:"speed,omitempty"`
	Charge   float64  `yaml:"charge,omitempty"`
	Mass     float64  `yaml:"mass,omitempty"`
	AppearAt *float64 `yaml:"appear_at,omitempty"`
}

type CChange struct {
	Frame int     `yaml:"frame"`
	C     float64 `yaml:"c"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:       DefaultPreset,
		C:            DefaultC,
		StepFraction: DefaultStepFraction,
		Dt:           DefaultDt,
		Frames:       DefaultFrames,
		Seed:         DefaultSeed,
		Grid:         DefaultGrid,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := chargeset.ParsePreset(c.Preset); err != nil {
		return err
	}
	if !(c.C > 0) {
		return fmt.Errorf("%w: c must be positive, got %g", dynamo.ErrParameterBounds, c.C)
	}
	if !(c.StepFraction > 0) {
		return fmt.Errorf("%w: step_fraction must be positive, got %g", dynamo.ErrParameterBounds, c.StepFraction)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, c.Dt)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, c.Frames)
	}
	switch c.Grid {
	case "2d", "3d", "line", "none":
	default:
		return fmt.Errorf("%w: unknown grid %q", dynamo.ErrParameterBounds, c.Grid)
	}
	if c.Workers < 0 || c.GridSize < 0 {
		return fmt.Errorf("%w: workers and grid_size must not be negative", dynamo.ErrParameterBounds)
	}
	if c.Charges.Mass < 0 || c.Charges.Count < 0 {
		return fmt.Errorf("%w: charge mass and count must not be negative", dynamo.ErrParameterBounds)
	}
	for _, ch := range c.CSchedule {
		if !(ch.C > 0) {
			return fmt.Errorf("%w: c_schedule entry at frame %d has c=%g", dynamo.ErrParameterBounds, ch.Frame, ch.C)
		}
	}
	return nil
}

// ChargeOptions converts the charges section to preset options.
func (c *Config) ChargeOptions() chargeset.Options {
	return chargeset.Options{
		Count:    c.Charges.Count,
		Radius:   c.Charges.Radius,
		Speed:    c.Charges.Speed,
		Charge:   c.Charges.Charge,
		Mass:     c.Charges.Mass,
		AppearAt: c.Charges.AppearAt,
	}
}
