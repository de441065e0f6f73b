package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// VertexWeights binds a vertex to up to four bones.
type VertexWeights struct {
	Bones   [4]int
	Weights [4]float64
}

// Bone is one joint of the skeleton. Parents must come before children.
type Bone struct {
	Name        string
	Parent      int
	Rest        mgl64.Mat4 // local transform when no track drives the bone
	InverseBind mgl64.Mat4
}

// Keyframe is a bone pose at a point in a clip.
type Keyframe struct {
	Time        float64
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// Track animates a single bone.
type Track struct {
	Bone int
	Keys []Keyframe
}

// Clip is a looping skeletal animation.
type Clip struct {
	Name     string
	Duration float64
	Tracks   []Track
}

// Model is a skinned wireframe.
type Model struct {
	Vertices []mgl64.Vec3
	Edges    [][2]int
	Weights  []VertexWeights
	Bones    []Bone
	Clips    []Clip
}

// Skin writes the skinned position of every vertex into out. Each output is
// the weight-normalised sum of the bone matrices applied to the vertex.
// Vertices without weights are copied unchanged.
func Skin(vertices []mgl64.Vec3, weights []VertexWeights, bones []mgl64.Mat4, out []mgl64.Vec3) {
	for i, v := range vertices {
		if i >= len(out) {
			return
		}
		if i >= len(weights) {
			out[i] = v
			continue
		}
		w := weights[i]
		v4 := v.Vec4(1)
		var acc mgl64.Vec4
		total := 0.0
		for k := 0; k < 4; k++ {
			b := w.Bones[k]
			if w.Weights[k] == 0 || b < 0 || b >= len(bones) {
				continue
			}
			acc = acc.Add(bones[b].Mul4x1(v4).Mul(w.Weights[k]))
			total += w.Weights[k]
		}
		if total == 0 {
			out[i] = v
			continue
		}
		out[i] = acc.Vec3().Mul(1 / total)
	}
}

// Pose returns the skinning matrix of every bone at time t. The clip loops;
// a nil clip yields the rest pose.
func (c *Clip) Pose(t float64, bones []Bone) []mgl64.Mat4 {
	local := make([]mgl64.Mat4, len(bones))
	for i, b := range bones {
		local[i] = b.Rest
	}
	if c != nil {
		if c.Duration > 0 {
			t = math.Mod(t, c.Duration)
			if t < 0 {
				t += c.Duration
			}
		}
		for _, tr := range c.Tracks {
			if tr.Bone >= 0 && tr.Bone < len(bones) && len(tr.Keys) > 0 {
				local[tr.Bone] = tr.Sample(t)
			}
		}
	}

	out := make([]mgl64.Mat4, len(bones))
	for i, b := range bones {
		if b.Parent >= 0 && b.Parent < i {
			out[i] = out[b.Parent].Mul4(local[i])
		} else {
			out[i] = local[i]
		}
	}
	for i, b := range bones {
		out[i] = out[i].Mul4(b.InverseBind)
	}
	return out
}

// Sample interpolates the track at time t: translation linearly, rotation
// by slerp. Times outside the keys hold the nearest key.
func (tr Track) Sample(t float64) mgl64.Mat4 {
	keys := tr.Keys
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t })
	var k Keyframe
	switch {
	case i == 0:
		k = keys[0]
	case i == len(keys):
		k = keys[len(keys)-1]
	default:
		a, b := keys[i-1], keys[i]
		alpha := 0.0
		if span := b.Time - a.Time; span > 0 {
			alpha = (t - a.Time) / span
		}
		k = Keyframe{
			Time:        t,
			Translation: a.Translation.Add(b.Translation.Sub(a.Translation).Mul(alpha)),
			Rotation:    mgl64.QuatSlerp(a.Rotation, b.Rotation, alpha),
		}
	}
	tv := k.Translation
	return mgl64.Translate3D(tv[0], tv[1], tv[2]).Mul4(k.Rotation.Normalize().Mat4())
}
