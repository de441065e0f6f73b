package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Extents are the half sizes of the bounding volume along each axis.
type Extents struct {
	X float64 `yaml:"x" koanf:"x"`
	Y float64 `yaml:"y" koanf:"y"`
	Z float64 `yaml:"z" koanf:"z"`
}

func (e Extents) Vec3() mgl64.Vec3 { return mgl64.Vec3{e.X, e.Y, e.Z} }

// Config tunes the node field. Distances are world units, speeds are world
// units per frame, fonts are CSS pixels.
type Config struct {
	NodeCount int     `yaml:"node_count" koanf:"node_count"`
	AxesCount int     `yaml:"axes_count" koanf:"axes_count"`
	FPS       int     `yaml:"fps" koanf:"fps"`
	Seed      int64   `yaml:"seed" koanf:"seed"` // 0 seeds from the clock
	Bounds    Extents `yaml:"bounds" koanf:"bounds"`

	MaxSpeed         float64     `yaml:"max_speed" koanf:"max_speed"`
	PerturbStrength  float64     `yaml:"perturb_strength" koanf:"perturb_strength"`
	PerturbMinFrames int         `yaml:"perturb_min_frames" koanf:"perturb_min_frames"`
	PerturbMaxFrames int         `yaml:"perturb_max_frames" koanf:"perturb_max_frames"`
	Restitution      float64     `yaml:"restitution" koanf:"restitution"`
	Restoring        float64     `yaml:"restoring" koanf:"restoring"`
	Containment      Containment `yaml:"containment" koanf:"containment"`

	LineFalloff      float64 `yaml:"line_falloff" koanf:"line_falloff"`
	CubeSize         float64 `yaml:"cube_size" koanf:"cube_size"`
	CameraDistance   float64 `yaml:"camera_distance" koanf:"camera_distance"`
	TransitionFrames int     `yaml:"transition_frames" koanf:"transition_frames"`

	AssignEvery    int     `yaml:"assign_every" koanf:"assign_every"`
	BaseFont       float64 `yaml:"base_font" koanf:"base_font"`
	MinFont        float64 `yaml:"min_font" koanf:"min_font"`
	MaxFont        float64 `yaml:"max_font" koanf:"max_font"`
	FontFalloff    float64 `yaml:"font_falloff" koanf:"font_falloff"`
	CharWidth      float64 `yaml:"char_width" koanf:"char_width"`
	LineHeight     float64 `yaml:"line_height" koanf:"line_height"`
	OverlayOffsetX float64 `yaml:"overlay_offset_x" koanf:"overlay_offset_x"`
	OverlayOffsetY float64 `yaml:"overlay_offset_y" koanf:"overlay_offset_y"`

	HitMode          HitMode `yaml:"hit_mode" koanf:"hit_mode"`
	GuideFrames      int     `yaml:"guide_frames" koanf:"guide_frames"`
	RevealIntervalMS int     `yaml:"reveal_interval_ms" koanf:"reveal_interval_ms"`

	Width  float64 `yaml:"width" koanf:"width"`
	Height float64 `yaml:"height" koanf:"height"`
	DPR    float64 `yaml:"dpr" koanf:"dpr"`

	ModelPath  string  `yaml:"model_path" koanf:"model_path"`
	ModelClip  int     `yaml:"model_clip" koanf:"model_clip"`
	ModelScale float64 `yaml:"model_scale" koanf:"model_scale"`
}

// DefaultConfig returns the settings used by the landing page.
func DefaultConfig() Config {
	return Config{
		NodeCount: 16,
		AxesCount: 8,
		FPS:       60,
		Bounds:    Extents{X: 400, Y: 220, Z: 200},

		MaxSpeed:         1.2,
		PerturbStrength:  0.4,
		PerturbMinFrames: 90,
		PerturbMaxFrames: 240,
		Restitution:      0.9,
		Restoring:        0.01,
		Containment:      ContainmentHard,

		LineFalloff:      260,
		CubeSize:         6,
		CameraDistance:   900,
		TransitionFrames: 45,

		AssignEvery:    2,
		BaseFont:       14,
		MinFont:        9,
		MaxFont:        22,
		FontFalloff:    900,
		CharWidth:      0.6,
		LineHeight:     1.4,
		OverlayOffsetX: 12,

		HitMode:          HitNodes,
		GuideFrames:      20,
		RevealIntervalMS: 30,

		Width:  1280,
		Height: 720,
		DPR:    1,

		ModelScale: 1,
	}
}

// RevealInterval is the delay between revealed characters.
func (c Config) RevealInterval() time.Duration {
	return time.Duration(c.RevealIntervalMS) * time.Millisecond
}

// Validate checks that the configuration can drive a scene.
func (c Config) Validate() error {
	switch {
	case c.NodeCount <= 0:
		return fmt.Errorf("node_count must be positive")
	case c.AxesCount < 0:
		return fmt.Errorf("axes_count must be non-negative")
	case c.FPS <= 0:
		return fmt.Errorf("fps must be positive")
	case c.Bounds.X <= 0 || c.Bounds.Y <= 0 || c.Bounds.Z <= 0:
		return fmt.Errorf("bounds must be positive on every axis")
	case c.MaxSpeed <= 0:
		return fmt.Errorf("max_speed must be positive")
	case c.PerturbStrength < 0:
		return fmt.Errorf("perturb_strength must be non-negative")
	case c.PerturbMaxFrames < c.PerturbMinFrames:
		return fmt.Errorf("perturb_max_frames must be at least perturb_min_frames")
	case c.Restitution < 0 || c.Restitution > 1:
		return fmt.Errorf("restitution must be within [0, 1]")
	case c.LineFalloff <= 0:
		return fmt.Errorf("line_falloff must be positive")
	case c.CameraDistance <= 0:
		return fmt.Errorf("camera_distance must be positive")
	case c.AssignEvery <= 0:
		return fmt.Errorf("assign_every must be positive")
	case c.MinFont <= 0 || c.MaxFont < c.MinFont:
		return fmt.Errorf("font bounds must satisfy 0 < min_font <= max_font")
	case c.CharWidth <= 0 || c.LineHeight <= 0:
		return fmt.Errorf("char_width and line_height must be positive")
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("viewport width and height must be positive")
	}
	switch c.Containment {
	case ContainmentHard, ContainmentSoft:
	default:
		return fmt.Errorf("invalid containment %q: must be hard or soft", c.Containment)
	}
	switch c.HitMode {
	case HitNodes, HitOverlays:
	default:
		return fmt.Errorf("invalid hit_mode %q: must be nodes or overlays", c.HitMode)
	}
	return nil
}
