package chargeset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/spacetime"
	"github.com/san-kum/lienard/internal/worldline"
)

type Preset string

const (
	PresetStatic           Preset = "static"
	PresetEom              Preset = "eom"
	PresetLineOscillate    Preset = "line_o"
	PresetLineOscillateEom Preset = "o_eom"
	PresetDipole           Preset = "dipole"
	PresetDipole2          Preset = "dipole2"
	PresetRandom           Preset = "random"
	PresetCircle           Preset = "circle"
)

var aliases = map[string]Preset{
	"line_oscillate":     PresetLineOscillate,
	"line_oscillate_eom": PresetLineOscillateEom,
}

var descriptions = map[Preset]string{
	PresetStatic:           "single charge at rest at the origin",
	PresetEom:              "two opposite charges passing each other",
	PresetLineOscillate:    "charge oscillating along x",
	PresetLineOscillateEom: "oscillating charge driving a free charge",
	PresetDipole:           "oscillating dipole along y",
	PresetDipole2:          "two in-phase oscillators with opposite charges",
	PresetRandom:           "random interacting charges in a thin slab",
	PresetCircle:           "ring of charges around a fixed center",
}

func ParsePreset(s string) (Preset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if p, ok := aliases[s]; ok {
		return p, nil
	}
	if _, ok := descriptions[Preset(s)]; ok {
		return Preset(s), nil
	}
	return "", fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, s)
}

// ListPresets returns all preset names in sorted order.
func ListPresets() []Preset {
	out := make([]Preset, 0, len(descriptions))
	for p := range descriptions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (p Preset) Description() string { return descriptions[p] }

// ObserverStart is where the observer begins watching the scene.
func (p Preset) ObserverStart() spacetime.Vector3 {
	switch p {
	case PresetEom, PresetRandom, PresetCircle:
		return spacetime.Vec3(0, 0, 30)
	}
	return spacetime.Vec3(0, 0, 20)
}

// Options tunes a preset. Zero values select the preset's defaults.
type Options struct {
	Count    int
	Radius   float64
	Speed    float64
	Charge   float64
	Mass     float64
	AppearAt *float64
	Rand     *rand.Rand
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// Build constructs the charge set of preset p for speed of light c.
func Build(p Preset, c float64, opts Options) (ChargeSet, error) {
	if !(c > 0) {
		return nil, fmt.Errorf("%w: c must be positive, got %g", dynamo.ErrParameterBounds, c)
	}
	mass := orDefault(opts.Mass, 1)
	if mass <= 0 {
		return nil, fmt.Errorf("%w: mass must be positive, got %g", dynamo.ErrParameterBounds, mass)
	}

	switch p {
	case PresetStatic:
		q := orDefault(opts.Charge, 1)
		return NewStaticSet(opts.fixed(q, worldline.NewStatic(spacetime.Vector3{}))), nil

	case PresetEom:
		q := orDefault(opts.Charge, 3.5)
		r := orDefault(opts.Radius, 2)
		u := orDefault(opts.Speed, 0.5) / c
		const t = -30.0
		return NewEomSet(
			NewEomCharge(-q, mass, spacetime.Vec4(2*u, r, 0, t), spacetime.Vec3(-u, 0, 0)),
			NewEomCharge(q, mass, spacetime.Vec4(-2*u, -r, 0, t), spacetime.Vec3(u, 0, 0)),
		), nil

	case PresetLineOscillate:
		wl, err := lineOscillator(c)
		if err != nil {
			return nil, err
		}
		return NewStaticSet(opts.fixed(orDefault(opts.Charge, 3.5), wl)), nil

	case PresetLineOscillateEom:
		wl, err := lineOscillator(c)
		if err != nil {
			return nil, err
		}
		q := orDefault(opts.Charge, 3.5)
		u := orDefault(opts.Speed, 1.8) / c
		r := orDefault(opts.Radius, 0.5)
		const t = -20.0
		return NewComposite(
			NewStaticSet(opts.fixed(q, wl)),
			NewEomSet(NewEomCharge(-q, mass, spacetime.Vec4(0, r, 0, t), spacetime.Vec3(u, 0, 0))),
		), nil

	case PresetDipole, PresetDipole2:
		f := math.Min(0.5*c, 5) / (2 * math.Pi)
		q := orDefault(opts.Charge, 3.5)
		x := spacetime.Vec3(0, 1.2, 0)
		v := spacetime.Vec3(0, 1, 0)
		ax, av, bx, bv := x, v, x.Neg(), v.Neg()
		if p == PresetDipole2 {
			ax, bx = spacetime.Vec3(1.2, 0, 0), spacetime.Vec3(-1.2, 0, 0)
			bv = v
		}
		a, err := worldline.NewLineOscillate(ax, av, f, c)
		if err != nil {
			return nil, err
		}
		b, err := worldline.NewLineOscillate(bx, bv, f, c)
		if err != nil {
			return nil, err
		}
		return NewStaticSet(opts.fixed(q, a), opts.fixed(-q, b)), nil

	case PresetRandom:
		return randomCharges(c, mass, opts), nil

	case PresetCircle:
		return circle(c, mass, opts), nil
	}
	return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, string(p))
}

func (o Options) fixed(q float64, wl worldline.WorldLine) Fixed {
	if o.AppearAt != nil {
		wl = worldline.NewCutOff(wl, *o.AppearAt)
	}
	return Fixed{Q: q, Line: wl}
}

func lineOscillator(c float64) (*worldline.LineOscillate, error) {
	return worldline.NewLineOscillate(
		spacetime.Vector3{},
		spacetime.Vec3(5/(2*math.Pi), 0, 0),
		math.Min(0.1*c, 0.4),
		c,
	)
}

func randomCharges(c, mass float64, opts Options) *EomSet {
	n := opts.Count
	if n <= 0 {
		n = 10
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	uniform := func(lo, hi float64) float64 { return lo + (hi-lo)*rng.Float64() }

	const l = 10.0
	const t = -30.0
	q := orDefault(opts.Charge, 1)
	maxU := orDefault(opts.Speed, 1) / c
	charges := make([]*EomCharge, 0, n)
	for i := 0; i < n; i++ {
		x := uniform(-l, l)
		y := uniform(-l, l)
		z := uniform(-l*1e-2, l*1e-2)
		u := uniform(0, maxU)
		theta := math.Atan2(x, y)
		sign := 1.0
		if i%2 == 1 {
			sign = -1
		}
		charges = append(charges, NewEomCharge(sign*q, mass,
			spacetime.Vec4(x, y, z, t),
			spacetime.Vec3(u*math.Cos(theta), u*math.Sin(theta), 0)))
	}
	return NewEomSet(charges...)
}

// circle puts negative charges on a ring around a fixed positive center,
// each moving tangentially.
func circle(c, mass float64, opts Options) *Composite {
	n := opts.Count
	if n <= 0 {
		n = 6
	}
	r := orDefault(opts.Radius, 5)
	q := orDefault(opts.Charge, 1)
	u := orDefault(opts.Speed, 0.5) / c
	const t = -30.0

	charges := make([]*EomCharge, 0, n)
	for i := 0; i < n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(phi)
		charges = append(charges, NewEomCharge(-q, mass,
			spacetime.Vec4(r*cos, r*sin, 0, t),
			spacetime.Vec3(-u*sin, u*cos, 0)))
	}
	center := opts.fixed(q*float64(n), worldline.NewStatic(spacetime.Vector3{}))
	return NewComposite(NewStaticSet(center), NewEomSet(charges...))
}
