package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Segment is a 2D line in screen space.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Line joins two nodes. Lines whose opacity falls to zero are marked not
// visible and left out of the frame.
type Line struct {
	A       int     `json:"a"`
	B       int     `json:"b"`
	Segment Segment `json:"segment"`
	Opacity float64 `json:"opacity"`
	Visible bool    `json:"-"`
}

// Cube is the projected wireframe drawn around a node.
type Cube struct {
	Node  int       `json:"node"`
	Edges []Segment `json:"edges"`
}

// AxisMark is a decorative, non-interactive point.
type AxisMark struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Opacity float64 `json:"opacity"`
}

// Overlay is the text drawn for a labelled node.
type Overlay struct {
	Node     int     `json:"node"`
	Text     string  `json:"text"`
	Role     Role    `json:"role"`
	FontSize float64 `json:"font_size"`
	Box      Rect    `json:"box"`
	Hovered  bool    `json:"hovered,omitempty"`
}

// GuideLine links a hovered node to its overlay. Segment is already cut to
// Progress: its end moves from the node to the overlay over a fixed number
// of frames, and renderers draw it as given.
type GuideLine struct {
	Node     int     `json:"node"`
	Segment  Segment `json:"segment"`
	Progress float64 `json:"progress"`
}

// PanelState is the inline text panel being revealed.
type PanelState struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
}

// Frame is everything needed to draw one tick.
type Frame struct {
	Tick     int         `json:"tick"`
	Viewport Rect        `json:"viewport"`
	Lines    []Line      `json:"lines"`
	Cubes    []Cube      `json:"cubes"`
	Axes     []AxisMark  `json:"axes"`
	Overlays []Overlay   `json:"overlays"`
	Model    []Segment   `json:"model,omitempty"`
	Hovered  int         `json:"hovered"` // node id, -1 for none
	Guide    *GuideLine  `json:"guide,omitempty"`
	Panel    *PanelState `json:"panel,omitempty"`
}

// LineOpacity fades a line linearly from 1 at distance 0 to 0 at falloff.
func LineOpacity(d, falloff float64) float64 {
	if falloff <= 0 {
		return 0
	}
	if o := 1 - d/falloff; o > 0 {
		return o
	}
	return 0
}

// lineSet keeps one Line per node pair across frames and toggles visibility
// instead of drawing fully transparent segments.
type lineSet struct {
	lines []Line
}

func newLineSet(n int) *lineSet {
	ls := &lineSet{}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ls.lines = append(ls.lines, Line{A: i, B: j})
		}
	}
	return ls
}

// update recomputes opacity for every pair and returns the visible lines.
func (ls *lineSet) update(nodes []*Node, projs []Projection, falloff float64) []Line {
	visible := make([]Line, 0, len(ls.lines))
	for i := range ls.lines {
		l := &ls.lines[i]
		l.Opacity = LineOpacity(nodes[l.A].Pos.Sub(nodes[l.B].Pos).Len(), falloff)
		l.Visible = l.Opacity > 0
		if !l.Visible {
			continue
		}
		a, b := projs[l.A], projs[l.B]
		l.Segment = Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
		visible = append(visible, *l)
	}
	return visible
}

// cubeEdges lists corner index pairs that differ in exactly one axis.
var cubeEdges = func() [][2]int {
	var edges [][2]int
	for a := 0; a < 8; a++ {
		for bit := 1; bit < 8; bit <<= 1 {
			if b := a | bit; b != a {
				edges = append(edges, [2]int{a, b})
			}
		}
	}
	return edges
}()

// projectCube returns the 12 screen edges of a cube of half size h around centre.
func projectCube(cam *Camera, centre mgl64.Vec3, h float64) []Segment {
	var pts [8][2]float64
	for i := 0; i < 8; i++ {
		corner := centre
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corner[axis] += h
			} else {
				corner[axis] -= h
			}
		}
		x, y, _, _ := cam.Project(corner)
		pts[i] = [2]float64{x, y}
	}
	edges := make([]Segment, 0, len(cubeEdges))
	for _, e := range cubeEdges {
		a, b := pts[e[0]], pts[e[1]]
		edges = append(edges, Segment{X1: a[0], Y1: a[1], X2: b[0], Y2: b[1]})
	}
	return edges
}

// PlaceOverlay offsets box and then shifts it back inside the viewport. A
// box larger than the viewport is clipped to it.
func PlaceOverlay(box Rect, offsetX, offsetY float64, viewport Rect) Rect {
	box = box.Translate(offsetX, offsetY)
	if box.Right > viewport.Right {
		box = box.Translate(viewport.Right-box.Right, 0)
	}
	if box.Left < viewport.Left {
		box = box.Translate(viewport.Left-box.Left, 0)
	}
	if box.Bottom > viewport.Bottom {
		box = box.Translate(0, viewport.Bottom-box.Bottom)
	}
	if box.Top < viewport.Top {
		box = box.Translate(0, viewport.Top-box.Top)
	}
	return box.Intersect(viewport)
}
