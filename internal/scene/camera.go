package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// presetYaws are the four orientations the wheel gesture cycles through.
var presetYaws = [4]float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}

// Camera is a perspective camera orbiting a target point. Screen coordinates
// are device pixels with the origin at the top left.
type Camera struct {
	Target   mgl64.Vec3
	Distance float64
	FovY     float64
	Near     float64
	Far      float64

	width, height, dpr float64

	preset     int
	yaw        float64
	from, to   float64
	step, span int

	viewProj mgl64.Mat4
}

// NewCamera returns a camera looking at target from distance, sized to a
// CSS viewport of width x height at the given device pixel ratio.
func NewCamera(target mgl64.Vec3, distance, width, height, dpr float64, transitionFrames int) *Camera {
	c := &Camera{
		Target:   target,
		Distance: distance,
		FovY:     mgl64.DegToRad(50),
		Near:     1,
		Far:      distance * 10,
		span:     transitionFrames,
	}
	c.Resize(width, height, dpr)
	return c
}

// Resize sets the viewport. Width and height are CSS pixels; the canvas is
// scaled by dpr.
func (c *Camera) Resize(width, height, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	c.width, c.height, c.dpr = width, height, dpr
	c.update()
}

// Viewport returns the screen rectangle in device pixels.
func (c *Camera) Viewport() Rect {
	return Rect{Right: c.width * c.dpr, Bottom: c.height * c.dpr}
}

// Preset returns the index of the orientation the camera is at or moving to.
func (c *Camera) Preset() int { return c.preset }

// Yaw returns the current orbit angle in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// Transitioning reports whether an eased turn is in progress.
func (c *Camera) Transitioning() bool { return c.step < c.span }

// Wheel moves to the next preset for positive deltas and the previous one
// for negative deltas. The turn takes the shorter way round.
func (c *Camera) Wheel(delta float64) {
	if delta == 0 {
		return
	}
	dir := 1
	if delta < 0 {
		dir = -1
	}
	c.preset = (c.preset + dir + len(presetYaws)) % len(presetYaws)
	c.from = c.yaw
	c.to = c.yaw + math.Remainder(presetYaws[c.preset]-c.yaw, 2*math.Pi)
	c.step = 0
	if c.span <= 0 {
		c.yaw = c.to
		c.update()
	}
}

// Advance moves an in-progress turn forward by one frame.
func (c *Camera) Advance() {
	if c.step >= c.span {
		return
	}
	c.step++
	t := float64(c.step) / float64(c.span)
	c.yaw = c.from + (c.to-c.from)*easeInOutCubic(t)
	c.update()
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 {
	return c.Target.Add(mgl64.Vec3{math.Sin(c.yaw) * c.Distance, 0, math.Cos(c.yaw) * c.Distance})
}

func (c *Camera) update() {
	aspect := 1.0
	if c.height > 0 {
		aspect = c.width / c.height
	}
	proj := mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
	c.viewProj = proj.Mul4(view)
}

// Project maps a world point to screen space. depth is the distance along
// the view direction. Points off screen or behind the camera come back
// clamped to the viewport edge with ok set to false.
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	vp := c.Viewport()
	depth = clip[3]
	if depth <= 0 {
		return clampTo(vp.Right/2, vp.Right), clampTo(vp.Bottom/2, vp.Bottom), depth, false
	}
	nx, ny := clip[0]/depth, clip[1]/depth
	x = (nx*0.5 + 0.5) * vp.Right
	y = (1 - (ny*0.5 + 0.5)) * vp.Bottom
	ok = vp.Contains(x, y)
	return clampTo(x, vp.Right), clampTo(y, vp.Bottom), depth, ok
}

// PixelsPerUnit returns how many device pixels one world unit spans at the
// given depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return (c.height * c.dpr / 2) / (depth * math.Tan(c.FovY/2))
}

func clampTo(v, hi float64) float64 {
	return math.Max(0, math.Min(v, hi))
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}
