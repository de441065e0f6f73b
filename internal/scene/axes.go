package scene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// AxesNode is an ambient decoration that pulses on its own sine wave. It
// never carries a label.
type AxesNode struct {
	Pos   mgl64.Vec3
	Freq  float64 // radians per second
	Phase float64
}

// NewAxesNodes scatters n decorations through vol with random frequency and phase.
func NewAxesNodes(n int, vol BoundingVolume, rng *rand.Rand) []AxesNode {
	axes := make([]AxesNode, n)
	for i := range axes {
		axes[i] = AxesNode{
			Pos:   vol.RandomPoint(rng),
			Freq:  0.5 + rng.Float64()*1.5,
			Phase: rng.Float64() * 2 * math.Pi,
		}
	}
	return axes
}

// Pulse is the sine term in [0, 1] at time t seconds.
func (a AxesNode) Pulse(t float64) float64 {
	return 0.5 + 0.5*math.Sin(a.Freq*t+a.Phase)
}

// Opacity multiplies the distance falloff to the nearest node by the pulse.
func (a AxesNode) Opacity(t, nearest, falloff float64) float64 {
	return LineOpacity(nearest, falloff) * a.Pulse(t)
}

// nearestDistance returns the distance from p to the closest node.
func nearestDistance(p mgl64.Vec3, nodes []*Node) float64 {
	best := math.Inf(1)
	for _, n := range nodes {
		if d := n.Pos.Sub(p).Len(); d < best {
			best = d
		}
	}
	return best
}
