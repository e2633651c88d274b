package config

import (
	"fmt"
	"math"

	"github.com/san-kum/lienard/internal/dynamo"
)

// Params lists the names accepted by SetParam.
var Params = []string{"c", "charge", "count", "dt", "frames", "mass", "radius", "seed", "speed", "step_fraction"}

// SetParam sets a numeric field by name. Integer fields are rounded.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "c":
		c.C = v
	case "charge":
		c.Charges.Charge = v
	case "count":
		c.Charges.Count = int(math.Round(v))
	case "dt":
		c.Dt = v
	case "frames":
		c.Frames = int(math.Round(v))
	case "mass":
		c.Charges.Mass = v
	case "radius":
		c.Charges.Radius = v
	case "seed":
		c.Seed = int64(math.Round(v))
	case "speed":
		c.Charges.Speed = v
	case "step_fraction":
		c.StepFraction = v
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.CSchedule = append([]CChange(nil), c.CSchedule...)
	if c.Watch != nil {
		w := *c.Watch
		out.Watch = &w
	}
	if c.Observer.Position != nil {
		p := *c.Observer.Position
		out.Observer.Position = &p
	}
	if c.Charges.AppearAt != nil {
		a := *c.Charges.AppearAt
		out.Charges.AppearAt = &a
	}
	return &out
}
