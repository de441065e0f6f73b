package scene

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nodescape/internal/logging"
)

// EventType names a client input event.
type EventType string

const (
	EventPointerMove EventType = "pointermove"
	EventClick       EventType = "click"
	EventWheel       EventType = "wheel"
	EventResize      EventType = "resize"
	EventClosePanel  EventType = "closepanel"
)

// Event is input from the page. Coordinates and sizes are CSS pixels.
type Event struct {
	Type   EventType `json:"type"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Delta  float64   `json:"delta,omitempty"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
	DPR    float64   `json:"dpr,omitempty"`
}

// Scene owns every piece of state for one animated node field. It is not
// safe for concurrent use; a Runner gives it a single mutator.
type Scene struct {
	cfg    Config
	log    *zap.Logger
	labels []Label

	nodes    []*Node
	axes     []AxesNode
	physics  *Physics
	camera   *Camera
	assigner Assigner
	lines    *lineSet
	interact *Interaction
	model    *AsyncModel
	skinned  []mgl64.Vec3

	dpr      float64
	projs    []Projection
	current  Assignment
	overlays []Overlay
	tick     int
	dt       time.Duration

	closeOnce sync.Once
}

// New builds a scene from cfg. If cfg names a model it starts loading in the
// background.
func New(cfg Config, labels []Label, logger *zap.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logging.OrNop(logger)
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	vol := Centered(cfg.Bounds.Vec3())
	dpr := cfg.DPR
	if dpr <= 0 {
		dpr = 1
	}

	s := &Scene{
		cfg:      cfg,
		log:      logger,
		labels:   labels,
		nodes:    NewNodes(cfg.NodeCount, vol, cfg.MaxSpeed, rng),
		axes:     NewAxesNodes(cfg.AxesCount, vol, rng),
		physics:  NewPhysics(cfg, vol, rng),
		camera:   NewCamera(vol.Center(), cfg.CameraDistance, cfg.Width, cfg.Height, dpr, cfg.TransitionFrames),
		assigner: scaledAssigner(cfg, dpr),
		lines:    newLineSet(cfg.NodeCount),
		interact: NewInteraction(cfg.HitMode, cfg.GuideFrames, cfg.RevealInterval()),
		dpr:      dpr,
		dt:       time.Second / time.Duration(cfg.FPS),
	}
	if cfg.ModelPath != "" {
		s.model = LoadModelAsync(context.Background(), cfg.ModelPath, logger)
	}
	s.project()

	logger.Debug("scene created",
		zap.Int("nodes", len(s.nodes)),
		zap.Int("labels", len(labels)),
		zap.Int64("seed", seed))
	return s, nil
}

func scaledAssigner(cfg Config, dpr float64) Assigner {
	a := NewAssigner(cfg)
	a.BaseFont *= dpr
	a.MinFont *= dpr
	a.MaxFont *= dpr
	return a
}

// Nodes returns the node pool.
func (s *Scene) Nodes() []*Node { return s.nodes }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Assignment returns the label placements of the latest frame.
func (s *Scene) Assignment() Assignment { return s.current }

// Model returns the background model loader, or nil when none is configured.
func (s *Scene) Model() *AsyncModel { return s.model }

// Interval is the time between frames.
func (s *Scene) Interval() time.Duration { return s.dt }

// Tick advances the scene by one frame: collisions and physics, projection,
// label assignment every AssignEvery ticks, then frame building.
func (s *Scene) Tick() Frame {
	s.tick++
	s.camera.Advance()
	s.physics.ResolveCollisions(s.nodes, s.pixelsPerUnit)
	s.physics.Step(s.nodes, s.tick)
	s.project()
	s.layoutLabels(s.tick == 1 || s.tick%s.cfg.AssignEvery == 0)
	s.interact.Advance(s.dt)
	return s.frame()
}

// Handle applies an input event and returns the resulting action.
func (s *Scene) Handle(ev Event) Action {
	switch ev.Type {
	case EventPointerMove:
		s.interact.PointerMove(ev.X*s.dpr, ev.Y*s.dpr, s.nodes, s.projs, s.overlays)
	case EventClick:
		return s.interact.Click(ev.X*s.dpr, ev.Y*s.dpr, s.nodes, s.projs, s.overlays)
	case EventWheel:
		s.camera.Wheel(ev.Delta)
	case EventResize:
		s.Resize(ev.Width, ev.Height, ev.DPR)
	case EventClosePanel:
		s.interact.ClosePanel()
	}
	return NoAction{}
}

// Resize recomputes the viewport, the spawn volume width and the font scale.
func (s *Scene) Resize(width, height, dpr float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if dpr <= 0 {
		dpr = 1
	}
	s.dpr = dpr
	s.camera.Resize(width, height, dpr)
	half := s.cfg.Bounds.Vec3()
	half[0] *= width / s.cfg.Width
	s.physics.Volume = Centered(half)
	s.assigner = scaledAssigner(s.cfg, dpr)
	s.project()
}

// Close releases everything the scene started. It is safe to call twice.
func (s *Scene) Close() {
	s.closeOnce.Do(func() {
		if s.model != nil {
			s.model.Close()
		}
		s.log.Debug("scene closed", zap.Int("ticks", s.tick))
	})
}

func (s *Scene) pixelsPerUnit(n *Node) float64 {
	return s.camera.PixelsPerUnit(s.projs[n.ID].Depth)
}

// project refreshes every node's screen position and its unlabelled box.
func (s *Scene) project() {
	if len(s.projs) != len(s.nodes) {
		s.projs = make([]Projection, len(s.nodes))
	}
	for i, n := range s.nodes {
		x, y, depth, ok := s.camera.Project(n.Pos)
		s.projs[i] = Projection{Node: n, X: x, Y: y, Depth: depth, OnScreen: ok}
		h := s.cfg.CubeSize * s.camera.PixelsPerUnit(depth)
		n.Box = RectAround(x, y, h, h)
	}
}

// layoutLabels either runs a fresh assignment pass or moves the current
// placements along with their nodes. Labelled nodes take their label box.
func (s *Scene) layoutLabels(reassign bool) {
	vp := s.camera.Viewport()
	if reassign {
		s.current = s.assigner.Assign(s.projs, s.labels, vp)
	} else {
		for i := range s.current.Placements {
			p := &s.current.Placements[i]
			pr := s.projs[p.Node.ID]
			p.Box = s.assigner.LabelBox(p.Label.Text(), pr.X, pr.Y, p.FontSize)
		}
	}

	s.overlays = s.overlays[:0]
	for _, p := range s.current.Placements {
		p.Node.Box = p.Box
		s.overlays = append(s.overlays, Overlay{
			Node:     p.Node.ID,
			Text:     p.Label.Text(),
			Role:     p.Label.Role(),
			FontSize: p.FontSize,
			Box:      PlaceOverlay(p.Box, s.cfg.OverlayOffsetX*s.dpr, s.cfg.OverlayOffsetY*s.dpr, vp),
		})
	}
}

func (s *Scene) seconds() float64 {
	return float64(s.tick) * s.dt.Seconds()
}

func (s *Scene) frame() Frame {
	f := Frame{
		Tick:     s.tick,
		Viewport: s.camera.Viewport(),
		Lines:    s.lines.update(s.nodes, s.projs, s.cfg.LineFalloff),
		Hovered:  s.interact.Hovered(),
		Guide:    s.interact.Guide(),
		Panel:    s.interact.Panel(),
	}

	f.Cubes = make([]Cube, 0, len(s.nodes))
	for _, n := range s.nodes {
		f.Cubes = append(f.Cubes, Cube{Node: n.ID, Edges: projectCube(s.camera, n.Pos, s.cfg.CubeSize)})
	}

	t := s.seconds()
	for _, a := range s.axes {
		x, y, _, ok := s.camera.Project(a.Pos)
		if !ok {
			continue
		}
		op := a.Opacity(t, nearestDistance(a.Pos, s.nodes), s.cfg.LineFalloff)
		if op <= 0 {
			continue
		}
		f.Axes = append(f.Axes, AxisMark{X: x, Y: y, Opacity: op})
	}

	f.Overlays = make([]Overlay, len(s.overlays))
	copy(f.Overlays, s.overlays)
	for i := range f.Overlays {
		f.Overlays[i].Hovered = f.Overlays[i].Node == f.Hovered
	}

	f.Model = s.modelSegments(t)
	return f
}

// modelSegments deforms the model for time t and projects its edges. It
// returns nil until the model has loaded.
func (s *Scene) modelSegments(t float64) []Segment {
	if s.model == nil {
		return nil
	}
	m := s.model.Ready()
	if m == nil {
		return nil
	}
	if len(s.skinned) != len(m.Vertices) {
		s.skinned = make([]mgl64.Vec3, len(m.Vertices))
	}
	Skin(m.Vertices, m.Weights, m.Clip(s.cfg.ModelClip).Pose(t, m.Bones), s.skinned)

	centre := s.physics.Volume.Center()
	segs := make([]Segment, 0, len(m.Edges))
	for _, e := range m.Edges {
		x1, y1, _, ok1 := s.camera.Project(centre.Add(s.skinned[e[0]].Mul(s.cfg.ModelScale)))
		x2, y2, _, ok2 := s.camera.Project(centre.Add(s.skinned[e[1]].Mul(s.cfg.ModelScale)))
		if !ok1 && !ok2 {
			continue
		}
		segs = append(segs, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2})
	}
	return segs
}
