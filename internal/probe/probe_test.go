package probe

import (
	"math"
	"testing"

	"github.com/san-kum/lienard/internal/chargeset"
	"github.com/san-kum/lienard/internal/integrators"
	"github.com/san-kum/lienard/internal/spacetime"
	"github.com/san-kum/lienard/internal/worldline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitCharge() chargeset.ChargeSet {
	return chargeset.NewStaticSet(chargeset.Fixed{Q: 1, Line: worldline.NewStatic(spacetime.Vector3{})})
}

func TestGridSizes(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want int
	}{
		{"surface", Surface(50), 101*56 + 101*50},
		{"bulk", Bulk(12), 25 * 25 * 25},
		{"small bulk", Bulk(1), 27},
		{"line", Line(spacetime.Vector3{}, spacetime.Vec3(10, 0, 0), 11), 11},
		{"degenerate line", Line(spacetime.Vec3(1, 1, 1), spacetime.Vector3{}, 1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.grid.Points, tt.want)
		})
	}

	l := Line(spacetime.Vector3{}, spacetime.Vec3(10, 0, 0), 11)
	assert.InDelta(t, 3, l.Points[3].X, 1e-12)
}

func TestSurfaceShape(t *testing.T) {
	for _, p := range Surface(10).Points {
		assert.GreaterOrEqual(t, p.Y, -5.0)
		if p.Z != 0 {
			assert.Equal(t, -5.0, p.Y)
		}
	}
}

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid("3d", 0)
	require.NoError(t, err)
	assert.Equal(t, "3d", g.Name)
	assert.Len(t, g.Points, 25*25*25)

	g, err = ParseGrid("surface", 3)
	require.NoError(t, err)
	assert.Equal(t, "2d", g.Name)

	_, err = ParseGrid("4d", 0)
	assert.Error(t, err)
}

func TestSamplerCoulomb(t *testing.T) {
	obs := integrators.NewPhaseSpace(spacetime.Vector3{}, spacetime.Vec4(0, 0, 20, 0))
	s := Sampler{}.At(1, unitCharge(), obs, spacetime.Vec3(3, 4, 0))

	require.True(t, s.Visible())
	assert.InDelta(t, 0.024, s.E.X, 1e-12)
	assert.InDelta(t, 0.032, s.E.Y, 1e-12)
	assert.InDelta(t, 0, s.E.Z, 1e-12)
	assert.Equal(t, spacetime.Vector3{}, s.B)
	assert.Equal(t, spacetime.Vector3{}, s.S)
	assert.InDelta(t, -math.Sqrt(425), s.Event.CT, 1e-12)
	assert.InDelta(t, 0, s.Relative.LorentzNorm2(), 1e-9)
}

func TestSamplerMovingObserver(t *testing.T) {
	p := spacetime.Vec3(3, 4, 0)
	rest := integrators.NewPhaseSpace(spacetime.Vector3{}, spacetime.Vec4(0, 0, 20, 0))
	moving := integrators.NewPhaseSpace(spacetime.Vec3(0.5, 0.2, 0), spacetime.Vec4(0, 0, 20, 0))

	a := Sampler{}.At(1, unitCharge(), rest, p)
	b := Sampler{}.At(1, unitCharge(), moving, p)

	assert.Equal(t, a.Event, b.Event)
	assert.Greater(t, b.B.Magnitude(), 0.0)
	inv := func(s Sample) float64 { return s.E.Magnitude2() - s.B.Magnitude2()/4 }
	assert.InDelta(t, inv(a), inv(b), 1e-12)
	assert.InDelta(t, a.E.Dot(a.B), b.E.Dot(b.B), 1e-12)
}

func TestSamplerInvisible(t *testing.T) {
	appear := 0.0
	set, err := chargeset.Build(chargeset.PresetStatic, 1, chargeset.Options{AppearAt: &appear})
	require.NoError(t, err)
	obs := integrators.NewPhaseSpace(spacetime.Vector3{}, spacetime.Vec4(0, 0, 20, 0))

	s := Sampler{}.At(1, set, obs, spacetime.Vec3(1, 0, 0))
	assert.False(t, s.Visible())
	assert.Equal(t, spacetime.Vector3{}, s.E)
}

func TestSamplerGridParallel(t *testing.T) {
	set, err := chargeset.Build(chargeset.PresetDipole, 1, chargeset.Options{})
	require.NoError(t, err)
	obs := integrators.NewPhaseSpace(spacetime.Vec3(0.1, 0, 0), spacetime.Vec4(0, 0, 20, 3))
	g := Bulk(3)

	seq := Sampler{Workers: 1}.Grid(1, set, obs, g)
	par := Sampler{Workers: 4, MinChunk: 8}.Grid(1, set, obs, g)
	require.Len(t, seq, len(g.Points))
	assert.Equal(t, seq, par)
}

func TestArrowLength(t *testing.T) {
	v := spacetime.Vec3(3, 4, 0)
	assert.InDelta(t, math.Log(6), DefaultArrow().Length(v), 1e-12)
	assert.InDelta(t, 10, Arrow{Factor: 2}.Length(v), 1e-12)
	assert.InDelta(t, math.Log1p(math.Log1p(5)), Arrow{Factor: 1, LogCount: 2}.Length(v), 1e-12)
}
