package metrics

import (
	"github.com/san-kum/lienard/internal/sim"
)

// SubSteps is the mean number of integrator steps per frame.
type SubSteps struct {
	name    string
	sum     float64
	samples int
}

func NewSubSteps() *SubSteps {
	return &SubSteps{
		name: "substeps",
	}
}

func (c *SubSteps) Name() string {
	return c.name
}

func (c *SubSteps) Observe(f sim.Frame) {
	c.sum += float64(f.SubSteps)
	c.samples++
}

func (c *SubSteps) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *SubSteps) Reset() {
	c.sum = 0
	c.samples = 0
}
