package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/lienard/internal/dynamo"
	"github.com/san-kum/lienard/internal/sim"
	"github.com/san-kum/lienard/internal/spacetime"
)

// SweepPoint holds the distinct field magnitudes seen for one value of c.
type SweepPoint struct {
	Param  float64
	Values []float64
}

// SweepC rebuilds scene for each of steps values of c between cMin and
// cMax, lets it settle for transient frames and then records the distinct
// |E| values at watch over record frames.
func SweepC(
	ctx context.Context,
	scene sim.Scene,
	cMin, cMax float64,
	steps int,
	watch spacetime.Vector3,
	dt float64,
	transient, record int,
	logger *slog.Logger,
) ([]SweepPoint, error) {
	if !(cMin > 0) || cMax < cMin {
		return nil, fmt.Errorf("%w: invalid c range [%g, %g]", dynamo.ErrParameterBounds, cMin, cMax)
	}
	if steps <= 1 {
		steps = 2
	}
	step := (cMax - cMin) / float64(steps-1)

	results := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		c := cMin + float64(i)*step
		s, err := sim.New(scene, c, logger)
		if err != nil {
			return nil, err
		}
		if transient > 0 {
			if _, err := s.Run(ctx, sim.Config{Dt: dt, Frames: transient}); err != nil {
				return nil, err
			}
		}
		res, err := s.Run(ctx, sim.Config{Dt: dt, Frames: record, Watch: &watch})
		if err != nil {
			return nil, err
		}

		values := make([]float64, 0, 16)
		seen := make(map[int]bool)
		for _, tp := range res.Trace {
			if tp.Field == nil {
				continue
			}
			val := tp.Field.E.Magnitude()
			// quantize to find distinct values
			key := int(val * 1000)
			if !seen[key] {
				seen[key] = true
				values = append(values, val)
			}
		}
		results = append(results, SweepPoint{Param: c, Values: values})
	}
	return results, nil
}

// SweepToASCII plots sweep results with c horizontal.
func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	portrait := &Portrait{}
	for i, p := range data {
		for _, v := range p.Values {
			portrait.Points = append(portrait.Points, Point{X: float64(i), Y: v})
		}
	}
	if len(portrait.Points) == 0 {
		return ""
	}
	return PortraitToASCII(portrait, width, height)
}
