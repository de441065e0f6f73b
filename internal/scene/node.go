package scene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Node is one floating point in the field. Nodes are created in a batch when
// the scene starts and live for the whole session.
type Node struct {
	ID    int
	Pos   mgl64.Vec3
	Vel   mgl64.Vec3
	Mass  float64
	Box   Rect  // screen-space box from the last draw
	Label Label // nil when the node carries no label

	nextKick int // tick of the next random nudge, 0 when unscheduled
}

// NewNodes creates n nodes at random positions inside vol with random
// velocities no faster than maxSpeed.
func NewNodes(n int, vol BoundingVolume, maxSpeed float64, rng *rand.Rand) []*Node {
	nodes := make([]*Node, n)
	for i := range nodes {
		nodes[i] = &Node{
			ID:   i,
			Pos:  vol.RandomPoint(rng),
			Vel:  randomVec(rng, maxSpeed),
			Mass: 1,
		}
	}
	return nodes
}

func (n *Node) invMass() float64 {
	if n.Mass <= 0 {
		return 1
	}
	return 1 / n.Mass
}

// randomVec returns a vector with uniformly random direction and a length in [0, maxLen].
func randomVec(rng *rand.Rand, maxLen float64) mgl64.Vec3 {
	if maxLen <= 0 {
		return mgl64.Vec3{}
	}
	v := mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(rng.Float64() * maxLen / l)
}
