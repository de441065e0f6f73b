// Package render rasterises scene frames.
package render

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nodescape/internal/scene"
)

// RGB is a colour with channels in [0, 1].
type RGB struct{ R, G, B float64 }

// Palette colours each layer of the frame.
type Palette struct {
	Background RGB
	Line       RGB
	Cube       RGB
	Axis       RGB
	Link       RGB
	Interface  RGB
	Hover      RGB
	Model      RGB
}

// DefaultPalette matches the landing page.
var DefaultPalette = Palette{
	Background: RGB{0.043, 0.051, 0.071},
	Line:       RGB{0.50, 0.71, 1.00},
	Cube:       RGB{0.84, 0.85, 0.88},
	Axis:       RGB{0.95, 0.75, 0.35},
	Link:       RGB{0.50, 0.71, 1.00},
	Interface:  RGB{0.60, 0.90, 0.65},
	Hover:      RGB{1.00, 1.00, 1.00},
	Model:      RGB{0.45, 0.48, 0.55},
}

// Renderer draws frames onto an RGBA canvas.
type Renderer struct {
	dc      *gg.Context
	palette Palette
}

// New creates a renderer of the given pixel size.
func New(width, height int) *Renderer {
	return &Renderer{dc: gg.NewContext(width, height), palette: DefaultPalette}
}

// SetPalette replaces the colours.
func (r *Renderer) SetPalette(p Palette) { r.palette = p }

// Render clears the canvas and draws f back to front: model, lines, cubes,
// axes marks, guide line, then label text.
func (r *Renderer) Render(f scene.Frame) {
	dc := r.dc
	bg := r.palette.Background
	dc.SetRGB(bg.R, bg.G, bg.B)
	dc.Clear()

	dc.SetLineWidth(1)
	r.segments(f.Model, r.palette.Model, 0.6)

	for _, l := range f.Lines {
		r.segment(l.Segment, r.palette.Line, l.Opacity*0.8)
	}

	dc.SetLineWidth(1.2)
	for _, c := range f.Cubes {
		col, alpha := r.palette.Cube, 0.7
		if c.Node == f.Hovered {
			col, alpha = r.palette.Hover, 1
		}
		r.segments(c.Edges, col, alpha)
	}

	for _, a := range f.Axes {
		ax := r.palette.Axis
		dc.SetRGBA(ax.R, ax.G, ax.B, a.Opacity)
		dc.DrawCircle(a.X, a.Y, 2)
		dc.Fill()
	}

	if g := f.Guide; g != nil && g.Progress > 0 {
		dc.SetLineWidth(1)
		r.segment(g.Segment, r.palette.Hover, 0.9)
	}

	for _, o := range f.Overlays {
		r.overlay(o)
	}
}

func (r *Renderer) segments(segs []scene.Segment, c RGB, alpha float64) {
	for _, s := range segs {
		r.segment(s, c, alpha)
	}
}

func (r *Renderer) segment(s scene.Segment, c RGB, alpha float64) {
	if alpha <= 0 {
		return
	}
	r.dc.SetRGBA(c.R, c.G, c.B, math.Min(alpha, 1))
	r.dc.DrawLine(s.X1, s.Y1, s.X2, s.Y2)
	r.dc.Stroke()
}

// overlay draws the label text inside its box. The built-in face has a
// fixed size, so the text is scaled to the box height.
func (r *Renderer) overlay(o scene.Overlay) {
	b := o.Box
	if b.Empty() {
		return
	}
	c := r.palette.Link
	if o.Role == scene.RoleInterface {
		c = r.palette.Interface
	}
	if o.Hovered {
		c = r.palette.Hover
	}

	dc := r.dc
	_, th := dc.MeasureString(o.Text)
	scale := 1.0
	if th > 0 {
		scale = b.Height() / (th * 1.4)
	}
	dc.Push()
	dc.Translate(b.Left, (b.Top+b.Bottom)/2)
	dc.Scale(scale, scale)
	dc.SetRGBA(c.R, c.G, c.B, 1)
	dc.DrawStringAnchored(o.Text, 0, 0, 0, 0.5)
	dc.Pop()
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// Snapshot builds a scene from cfg, advances it ticks frames and writes the
// last frame to w as PNG. If cfg names a model the snapshot waits for it to
// load or fail, or for ctx to end.
func Snapshot(ctx context.Context, cfg scene.Config, labels []scene.Label, ticks int, w io.Writer, logger *zap.Logger) error {
	s, err := scene.New(cfg, labels, logger)
	if err != nil {
		return fmt.Errorf("creating scene: %w", err)
	}
	defer s.Close()

	if m := s.Model(); m != nil {
		select {
		case <-m.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if ticks < 1 {
		ticks = 1
	}
	var f scene.Frame
	for i := 0; i < ticks; i++ {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		f = s.Tick()
	}

	vp := f.Viewport
	r := New(int(math.Ceil(vp.Width())), int(math.Ceil(vp.Height())))
	r.Render(f)
	if err := r.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}
