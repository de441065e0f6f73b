package scene

import (
	"sort"
	"unicode/utf8"
)

// Projection is a node's position on screen for one frame.
type Projection struct {
	Node     *Node
	X, Y     float64
	Depth    float64
	OnScreen bool
}

// Placement binds a label to a node for one assignment pass.
type Placement struct {
	Node     *Node
	Label    Label
	Box      Rect
	FontSize float64
}

// Assignment is the result of one pass, in placement order.
type Assignment struct {
	Placements []Placement
	Released   int // sticky labels dropped this pass
}

// ForNode returns the placement held by the node with the given id.
func (a Assignment) ForNode(id int) (Placement, bool) {
	for _, p := range a.Placements {
		if p.Node.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// Assigner places labels on nodes greedily.
type Assigner struct {
	BaseFont    float64
	MinFont     float64
	MaxFont     float64
	FontFalloff float64 // depth at which the font renders at BaseFont
	CharWidth   float64 // glyph width as a fraction of the font size
	LineHeight  float64 // box height as a multiple of the font size
}

// NewAssigner builds an Assigner from cfg.
func NewAssigner(cfg Config) Assigner {
	return Assigner{
		BaseFont:    cfg.BaseFont,
		MinFont:     cfg.MinFont,
		MaxFont:     cfg.MaxFont,
		FontFalloff: cfg.FontFalloff,
		CharWidth:   cfg.CharWidth,
		LineHeight:  cfg.LineHeight,
	}
}

// FontSize scales the base font inversely with depth, clamped to the
// configured bounds.
func (a Assigner) FontSize(depth float64) float64 {
	if depth <= 0 {
		return a.MaxFont
	}
	return min(max(a.BaseFont*a.FontFalloff/depth, a.MinFont), a.MaxFont)
}

// LabelBox estimates the screen box of text anchored at (x, y): the left
// edge sits on x and the box is vertically centred on y.
func (a Assigner) LabelBox(text string, x, y, font float64) Rect {
	w := float64(utf8.RuneCountInString(text)) * a.CharWidth * font
	h := a.LineHeight * font
	return Rect{Left: x, Right: x + w, Top: y - h/2, Bottom: y + h/2}
}

// Assign rebuilds the label mapping from scratch. Nodes are visited nearest
// first. A node that already holds a label keeps it as long as its box is
// still inside the viewport and clear of boxes placed earlier in the pass;
// otherwise the label is released. Nodes behind the camera never hold a
// label. Every remaining node then takes the highest precedence free label
// whose box fits. Node.Label is updated to
// match the result.
func (a Assigner) Assign(projs []Projection, labels []Label, viewport Rect) Assignment {
	ordered := append([]Projection(nil), projs...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Depth < ordered[j].Depth })

	known := make(map[Label]bool, len(labels))
	for _, l := range labels {
		known[l] = true
	}

	var out Assignment
	taken := make(map[Label]bool, len(labels))
	fits := func(r Rect) bool {
		if !r.Inside(viewport) {
			return false
		}
		for _, p := range out.Placements {
			if r.Overlaps(p.Box) {
				return false
			}
		}
		return true
	}
	place := func(pr Projection, l Label, box Rect, font float64) {
		pr.Node.Label = l
		taken[l] = true
		out.Placements = append(out.Placements, Placement{Node: pr.Node, Label: l, Box: box, FontSize: font})
	}

	for _, pr := range ordered {
		l := pr.Node.Label
		if l == nil {
			continue
		}
		if pr.Depth <= 0 {
			pr.Node.Label = nil
			out.Released++
			continue
		}
		font := a.FontSize(pr.Depth)
		box := a.LabelBox(l.Text(), pr.X, pr.Y, font)
		if !known[l] || taken[l] || !fits(box) {
			pr.Node.Label = nil
			out.Released++
			continue
		}
		place(pr, l, box, font)
	}

	ranked := RankLabels(labels)
	for _, pr := range ordered {
		if pr.Node.Label != nil || pr.Depth <= 0 {
			continue
		}
		font := a.FontSize(pr.Depth)
		for _, l := range ranked {
			if taken[l] {
				continue
			}
			box := a.LabelBox(l.Text(), pr.X, pr.Y, font)
			if fits(box) {
				place(pr, l, box, font)
				break
			}
		}
	}
	return out
}
