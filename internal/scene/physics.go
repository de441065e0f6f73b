package scene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Containment selects how nodes are kept inside the bounding volume.
type Containment string

const (
	// ContainmentHard clamps positions to the faces and reflects velocity.
	ContainmentHard Containment = "hard"
	// ContainmentSoft applies a restoring force outside the volume only.
	ContainmentSoft Containment = "soft"
)

// Physics advances node state once per frame.
type Physics struct {
	Volume          BoundingVolume
	MaxSpeed        float64
	PerturbStrength float64
	PerturbMin      int
	PerturbMax      int
	Restitution     float64
	Restoring       float64
	Mode            Containment

	rng *rand.Rand
}

// NewPhysics builds the physics step for cfg over vol.
func NewPhysics(cfg Config, vol BoundingVolume, rng *rand.Rand) *Physics {
	return &Physics{
		Volume:          vol,
		MaxSpeed:        cfg.MaxSpeed,
		PerturbStrength: cfg.PerturbStrength,
		PerturbMin:      cfg.PerturbMinFrames,
		PerturbMax:      cfg.PerturbMaxFrames,
		Restitution:     cfg.Restitution,
		Restoring:       cfg.Restoring,
		Mode:            cfg.Containment,
		rng:             rng,
	}
}

// Step applies random nudges, the speed cap, integration and containment,
// in that order, to every node.
func (p *Physics) Step(nodes []*Node, tick int) {
	for _, n := range nodes {
		p.perturb(n, tick)
		capSpeed(n, p.MaxSpeed)
		n.Pos = n.Pos.Add(n.Vel)
		switch p.Mode {
		case ContainmentSoft:
			p.Volume.ContainSoft(n, p.Restoring)
		default:
			p.Volume.ContainHard(n)
		}
	}
}

func (p *Physics) perturb(n *Node, tick int) {
	if p.PerturbStrength <= 0 {
		return
	}
	if n.nextKick == 0 {
		n.nextKick = tick + p.interval()
		return
	}
	if tick < n.nextKick {
		return
	}
	n.Vel = n.Vel.Add(randomVec(p.rng, p.PerturbStrength))
	n.nextKick = tick + p.interval()
}

func (p *Physics) interval() int {
	lo, hi := p.PerturbMin, p.PerturbMax
	if lo < 1 {
		lo = 1
	}
	if hi <= lo {
		return lo
	}
	return lo + p.rng.IntN(hi-lo+1)
}

// capSpeed rescales the velocity down to limit while keeping its direction.
func capSpeed(n *Node, limit float64) {
	if limit <= 0 {
		return
	}
	if speed := n.Vel.Len(); speed > limit {
		n.Vel = n.Vel.Mul(limit / speed)
	}
}

// Collide resolves contact between a and b: an impulse along the line of
// centres when they approach each other, then a positional split of
// separation world units weighted by inverse mass.
func (p *Physics) Collide(a, b *Node, separation float64) {
	normal := b.Pos.Sub(a.Pos)
	if normal.Len() < 1e-9 {
		normal = mgl64.Vec3{1, 0, 0}
	} else {
		normal = normal.Normalize()
	}

	ima, imb := a.invMass(), b.invMass()
	if vn := b.Vel.Sub(a.Vel).Dot(normal); vn < 0 {
		j := -(1 + p.Restitution) * vn / (ima + imb)
		a.Vel = a.Vel.Sub(normal.Mul(j * ima))
		b.Vel = b.Vel.Add(normal.Mul(j * imb))
	}

	if separation > 0 {
		total := ima + imb
		a.Pos = a.Pos.Sub(normal.Mul(separation * ima / total))
		b.Pos = b.Pos.Add(normal.Mul(separation * imb / total))
	}
}

// ResolveCollisions runs Collide for every pair of nodes whose screen boxes
// overlap. The smaller screen penetration is converted to world units with
// pixelsPerUnit before the pair is pushed apart.
func (p *Physics) ResolveCollisions(nodes []*Node, pixelsPerUnit func(*Node) float64) int {
	hits := 0
	for i := 0; i < len(nodes); i++ {
		a := nodes[i]
		if a.Box.Empty() {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			b := nodes[j]
			if b.Box.Empty() || !a.Box.Overlaps(b.Box) {
				continue
			}
			dx, dy := a.Box.Penetration(b.Box)
			var sep float64
			if scale := (pixelsPerUnit(a) + pixelsPerUnit(b)) / 2; scale > 0 {
				sep = min(dx, dy) / scale
			}
			p.Collide(a, b, sep)
			hits++
		}
	}
	return hits
}
