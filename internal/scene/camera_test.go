package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestCamera(frames int) *Camera {
	return NewCamera(mgl64.Vec3{}, 900, 1280, 720, 1, frames)
}

func TestProjectTargetToCentre(t *testing.T) {
	c := newTestCamera(0)
	x, y, depth, ok := c.Project(mgl64.Vec3{})
	if !ok {
		t.Fatal("target should be on screen")
	}
	if math.Abs(x-640) > 1e-6 || math.Abs(y-360) > 1e-6 {
		t.Errorf("expected centre (640, 360), got (%v, %v)", x, y)
	}
	if math.Abs(depth-900) > 1e-6 {
		t.Errorf("expected depth 900, got %v", depth)
	}
}

func TestProjectAxesDirections(t *testing.T) {
	c := newTestCamera(0)
	x, _, _, _ := c.Project(mgl64.Vec3{100, 0, 0})
	if x <= 640 {
		t.Errorf("+x should project right of centre, got %v", x)
	}
	_, y, _, _ := c.Project(mgl64.Vec3{0, 100, 0})
	if y >= 360 {
		t.Errorf("+y should project above centre, got %v", y)
	}
}

func TestProjectBehindCameraIsOffScreen(t *testing.T) {
	c := newTestCamera(0)
	x, y, _, ok := c.Project(mgl64.Vec3{0, 0, 2000})
	if ok {
		t.Error("point behind the camera should not be on screen")
	}
	if !c.Viewport().Contains(x, y) {
		t.Errorf("clamped point (%v, %v) should lie in the viewport", x, y)
	}
}

func TestPixelsPerUnit(t *testing.T) {
	c := newTestCamera(0)
	want := 360 / (900 * math.Tan(mgl64.DegToRad(25)))
	if got := c.PixelsPerUnit(900); math.Abs(got-want) > 1e-9 {
		t.Errorf("PixelsPerUnit(900) = %v, want %v", got, want)
	}
	if got := c.PixelsPerUnit(0); got != 0 {
		t.Errorf("PixelsPerUnit(0) = %v, want 0", got)
	}
}

func TestWheelCyclesPresetsWithEasing(t *testing.T) {
	c := newTestCamera(4)
	for i, want := range []int{1, 2, 3, 0} {
		c.Wheel(1)
		if c.Preset() != want {
			t.Fatalf("step %d: expected preset %d, got %d", i, want, c.Preset())
		}
		if !c.Transitioning() {
			t.Fatalf("step %d: expected a transition", i)
		}
		c.Advance()
		mid := c.Yaw()
		for j := 0; j < 3; j++ {
			c.Advance()
		}
		if c.Transitioning() {
			t.Fatalf("step %d: transition should be over", i)
		}
		got := math.Mod(c.Yaw()+4*math.Pi, 2*math.Pi)
		if math.Abs(got-presetYaws[want]) > 1e-9 && math.Abs(got-presetYaws[want]-2*math.Pi) > 1e-9 {
			t.Errorf("step %d: expected yaw %v, got %v", i, presetYaws[want], got)
		}
		if mid == c.Yaw() {
			t.Errorf("step %d: expected an intermediate yaw", i)
		}
	}
}

func TestWheelBackTakesShortWay(t *testing.T) {
	c := newTestCamera(2)
	c.Wheel(-1)
	c.Advance()
	c.Advance()
	if c.Preset() != 3 {
		t.Fatalf("expected preset 3, got %d", c.Preset())
	}
	if math.Abs(c.Yaw()+math.Pi/2) > 1e-9 {
		t.Errorf("expected yaw -pi/2, got %v", c.Yaw())
	}

	x, y, depth, ok := c.Project(mgl64.Vec3{-100, 0, 0})
	if !ok || math.Abs(x-640) > 1e-6 || math.Abs(y-360) > 1e-6 {
		t.Errorf("point toward the camera should project to centre, got (%v, %v, %v)", x, y, ok)
	}
	if math.Abs(depth-800) > 1e-6 {
		t.Errorf("expected depth 800, got %v", depth)
	}
}

func TestEaseInOutCubic(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{0, 0}, {0.5, 0.5}, {1, 1}} {
		if got := easeInOutCubic(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ease(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
