package scene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// BoundingVolume is the axis-aligned box the nodes move in.
type BoundingVolume struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Centered returns a volume around the origin with the given half extents.
func Centered(half mgl64.Vec3) BoundingVolume {
	return BoundingVolume{Min: half.Mul(-1), Max: half}
}

// Contains reports whether p lies inside the volume, faces included.
func (v BoundingVolume) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < v.Min[i] || p[i] > v.Max[i] {
			return false
		}
	}
	return true
}

func (v BoundingVolume) Center() mgl64.Vec3 { return v.Min.Add(v.Max).Mul(0.5) }
func (v BoundingVolume) Size() mgl64.Vec3   { return v.Max.Sub(v.Min) }

// RandomPoint returns a uniformly distributed point inside the volume.
func (v BoundingVolume) RandomPoint(rng *rand.Rand) mgl64.Vec3 {
	var p mgl64.Vec3
	for i := 0; i < 3; i++ {
		p[i] = v.Min[i] + rng.Float64()*(v.Max[i]-v.Min[i])
	}
	return p
}

// ContainHard clamps n onto the volume and points the velocity component
// of every overshooting axis back inside.
func (v BoundingVolume) ContainHard(n *Node) {
	for i := 0; i < 3; i++ {
		switch {
		case n.Pos[i] < v.Min[i]:
			n.Pos[i] = v.Min[i]
			n.Vel[i] = math.Abs(n.Vel[i])
		case n.Pos[i] > v.Max[i]:
			n.Pos[i] = v.Max[i]
			n.Vel[i] = -math.Abs(n.Vel[i])
		}
	}
}

// ContainSoft nudges a node that left the volume back toward it with a
// velocity change proportional to the overshoot. Nodes inside are untouched.
func (v BoundingVolume) ContainSoft(n *Node, k float64) {
	for i := 0; i < 3; i++ {
		switch {
		case n.Pos[i] < v.Min[i]:
			n.Vel[i] += (v.Min[i] - n.Pos[i]) * k
		case n.Pos[i] > v.Max[i]:
			n.Vel[i] -= (n.Pos[i] - v.Max[i]) * k
		}
	}
}
