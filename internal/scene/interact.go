package scene

import "time"

// Action is what a click asks the page to do.
type Action interface {
	isAction()
}

// NoAction is returned when the click hit nothing actionable.
type NoAction struct{}

// OpenURL opens a link, in a new browsing context when NewContext is set.
type OpenURL struct {
	URL        string
	NewContext bool
}

// ShowPanel displays Body inline under Title.
type ShowPanel struct {
	Title string
	Body  string
}

// Navigate moves to an internal route.
type Navigate struct {
	Path string
}

func (NoAction) isAction()  {}
func (OpenURL) isAction()   {}
func (ShowPanel) isAction() {}
func (Navigate) isAction()  {}

// Dispatch maps a label to the action its click triggers.
func Dispatch(l Label) Action {
	switch v := l.(type) {
	case *LinkLabel:
		return OpenURL{URL: v.URL, NewContext: true}
	case *PanelLabel:
		return ShowPanel{Title: v.Title, Body: v.Body}
	case *RouteLabel:
		return Navigate{Path: v.Path}
	default:
		return NoAction{}
	}
}

// HitMode selects what pointer coordinates are tested against.
type HitMode string

const (
	// HitNodes tests node boxes (canvas rendering).
	HitNodes HitMode = "nodes"
	// HitOverlays tests overlay boxes (HTML overlay rendering).
	HitOverlays HitMode = "overlays"
)

// Reveal shows text one rune per interval.
type Reveal struct {
	runes    []rune
	shown    int
	interval time.Duration
	elapsed  time.Duration
}

// NewReveal starts revealing text. A non-positive interval shows it all at once.
func NewReveal(text string, interval time.Duration) *Reveal {
	r := &Reveal{runes: []rune(text), interval: interval}
	if interval <= 0 {
		r.shown = len(r.runes)
	}
	return r
}

// Advance moves the reveal forward by dt.
func (r *Reveal) Advance(dt time.Duration) {
	if r.Done() {
		return
	}
	r.elapsed += dt
	for r.elapsed >= r.interval && r.shown < len(r.runes) {
		r.shown++
		r.elapsed -= r.interval
	}
}

func (r *Reveal) Text() string { return string(r.runes[:r.shown]) }
func (r *Reveal) Done() bool   { return r.shown >= len(r.runes) }

// Interaction tracks hover, the guide line and the inline panel.
type Interaction struct {
	Mode           HitMode
	GuideFrames    int
	RevealInterval time.Duration

	hovered    int
	guideFrame int
	guide      *GuideLine
	guideFrom  [2]float64
	guideTo    [2]float64

	panelTitle string
	reveal     *Reveal
}

// NewInteraction returns interaction state with nothing hovered.
func NewInteraction(mode HitMode, guideFrames int, revealInterval time.Duration) *Interaction {
	return &Interaction{Mode: mode, GuideFrames: guideFrames, RevealInterval: revealInterval, hovered: -1}
}

// Hovered returns the hovered node id or -1.
func (in *Interaction) Hovered() int { return in.hovered }

// HitTest returns the id of the first node whose box (or overlay box)
// contains (x, y), or -1.
func (in *Interaction) HitTest(x, y float64, nodes []*Node, overlays []Overlay) int {
	if in.Mode == HitOverlays {
		for _, o := range overlays {
			if o.Box.Contains(x, y) {
				return o.Node
			}
		}
		return -1
	}
	for _, n := range nodes {
		if !n.Box.Empty() && n.Box.Contains(x, y) {
			return n.ID
		}
	}
	return -1
}

// PointerMove updates the hovered node and reports whether it changed.
// Hovering a labelled node starts a guide line from the node to its overlay.
func (in *Interaction) PointerMove(x, y float64, nodes []*Node, projs []Projection, overlays []Overlay) bool {
	id := in.HitTest(x, y, nodes, overlays)
	if id == in.hovered {
		return false
	}
	in.hovered = id
	in.guide = nil
	if id < 0 {
		return true
	}
	for _, o := range overlays {
		if o.Node != id || id >= len(projs) {
			continue
		}
		in.guideFrom = [2]float64{projs[id].X, projs[id].Y}
		in.guideTo = [2]float64{o.Box.Left, (o.Box.Top + o.Box.Bottom) / 2}
		in.guideFrame = 0
		in.guide = &GuideLine{Node: id}
		in.stepGuide()
		break
	}
	return true
}

// Click resolves the action for a click at (x, y).
func (in *Interaction) Click(x, y float64, nodes []*Node, projs []Projection, overlays []Overlay) Action {
	in.PointerMove(x, y, nodes, projs, overlays)
	if in.hovered < 0 || in.hovered >= len(nodes) {
		return NoAction{}
	}
	act := Dispatch(nodes[in.hovered].Label)
	if p, ok := act.(ShowPanel); ok {
		in.panelTitle = p.Title
		in.reveal = NewReveal(p.Body, in.RevealInterval)
	}
	return act
}

// ClosePanel hides the inline panel.
func (in *Interaction) ClosePanel() {
	in.reveal = nil
	in.panelTitle = ""
}

// Advance steps the guide animation and the panel reveal by one frame of dt.
func (in *Interaction) Advance(dt time.Duration) {
	if in.guide != nil && in.guideFrame < in.GuideFrames {
		in.stepGuide()
	}
	if in.reveal != nil {
		in.reveal.Advance(dt)
	}
}

func (in *Interaction) stepGuide() {
	if in.GuideFrames > 0 {
		in.guideFrame++
	}
	t := 1.0
	if in.GuideFrames > 0 {
		t = min(float64(in.guideFrame)/float64(in.GuideFrames), 1)
	}
	in.guide.Progress = t
	in.guide.Segment = Segment{
		X1: in.guideFrom[0],
		Y1: in.guideFrom[1],
		X2: in.guideFrom[0] + (in.guideTo[0]-in.guideFrom[0])*t,
		Y2: in.guideFrom[1] + (in.guideTo[1]-in.guideFrom[1])*t,
	}
}

// Guide returns a copy of the current guide line, if any.
func (in *Interaction) Guide() *GuideLine {
	if in.guide == nil {
		return nil
	}
	g := *in.guide
	return &g
}

// Panel returns the inline panel state, if one is open.
func (in *Interaction) Panel() *PanelState {
	if in.reveal == nil {
		return nil
	}
	return &PanelState{Title: in.panelTitle, Text: in.reveal.Text(), Done: in.reveal.Done()}
}
