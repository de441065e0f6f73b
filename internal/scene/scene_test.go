package scene

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.FPS = 200
	return cfg
}

func newTestScene(t *testing.T, cfg Config) *Scene {
	t.Helper()
	s, err := New(cfg, defaultTestLabels(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.NodeCount = 0
	if _, err := New(cfg, nil, nil); err == nil {
		t.Fatal("expected an error for zero nodes")
	}
}

func TestSceneTickInvariants(t *testing.T) {
	s := newTestScene(t, testConfig())
	vol := s.physics.Volume

	for i := 0; i < 300; i++ {
		f := s.Tick()
		for _, n := range s.Nodes() {
			if !vol.Contains(n.Pos) {
				t.Fatalf("tick %d: node %d escaped to %v", f.Tick, n.ID, n.Pos)
			}
		}
		if f.Tick%s.cfg.AssignEvery != 0 {
			continue
		}
		placements := s.Assignment().Placements
		for a := range placements {
			if !placements[a].Box.Inside(f.Viewport) {
				t.Fatalf("tick %d: label %q outside the viewport", f.Tick, placements[a].Label.Text())
			}
			for b := a + 1; b < len(placements); b++ {
				if placements[a].Box.Overlaps(placements[b].Box) {
					t.Fatalf("tick %d: labels %q and %q overlap", f.Tick,
						placements[a].Label.Text(), placements[b].Label.Text())
				}
			}
		}
	}
}

func TestSceneFrameContents(t *testing.T) {
	s := newTestScene(t, testConfig())
	f := s.Tick()

	if len(f.Cubes) != 16 {
		t.Errorf("expected a cube per node, got %d", len(f.Cubes))
	}
	for _, c := range f.Cubes {
		if len(c.Edges) != 12 {
			t.Errorf("cube %d: expected 12 edges, got %d", c.Node, len(c.Edges))
		}
	}
	for _, l := range f.Lines {
		if l.Opacity <= 0 || l.Opacity > 1 {
			t.Errorf("line opacity %v out of range", l.Opacity)
		}
	}
	if len(f.Overlays) == 0 {
		t.Error("expected at least one label overlay")
	}
	if f.Hovered != -1 || f.Guide != nil || f.Panel != nil {
		t.Error("fresh scene should have no hover, guide or panel")
	}
	if f.Model != nil {
		t.Error("no model configured, expected no model segments")
	}
}

func TestSceneClickOverlay(t *testing.T) {
	cfg := testConfig()
	cfg.HitMode = HitOverlays
	s := newTestScene(t, cfg)
	f := s.Tick()

	var target *Overlay
	for i := range f.Overlays {
		if !f.Overlays[i].Box.Empty() {
			target = &f.Overlays[i]
			break
		}
	}
	if target == nil {
		t.Fatal("no overlay to click")
	}
	x := (target.Box.Left + target.Box.Right) / 2
	y := (target.Box.Top + target.Box.Bottom) / 2

	hit := s.interact.HitTest(x, y, s.Nodes(), f.Overlays)
	if hit < 0 {
		t.Fatal("overlay centre should hit")
	}
	want := Dispatch(s.Nodes()[hit].Label)

	got := s.Handle(Event{Type: EventClick, X: x, Y: y})
	if got != want {
		t.Errorf("click: got %#v, want %#v", got, want)
	}
	if s.Tick().Hovered != hit {
		t.Errorf("expected node %d hovered after click", hit)
	}
}

func TestSceneResize(t *testing.T) {
	s := newTestScene(t, testConfig())
	s.Handle(Event{Type: EventResize, Width: 640, Height: 480, DPR: 2})

	f := s.Tick()
	if want := (Rect{Right: 1280, Bottom: 960}); f.Viewport != want {
		t.Errorf("viewport: got %+v, want %+v", f.Viewport, want)
	}
	if got := s.physics.Volume.Max[0]; got != 200 {
		t.Errorf("volume half width should scale with the viewport, got %v", got)
	}
	if s.assigner.BaseFont != 28 {
		t.Errorf("fonts should scale with dpr, got base %v", s.assigner.BaseFont)
	}

	// zero sizes are ignored
	s.Resize(0, 0, 1)
	if s.Tick().Viewport != (Rect{Right: 1280, Bottom: 960}) {
		t.Error("zero-size resize should be ignored")
	}
}

func TestSceneWheelRotatesCamera(t *testing.T) {
	s := newTestScene(t, testConfig())
	s.Handle(Event{Type: EventWheel, Delta: 1})
	if !s.Camera().Transitioning() {
		t.Fatal("wheel should start a camera transition")
	}
	for i := 0; i < s.cfg.TransitionFrames; i++ {
		s.Tick()
	}
	if s.Camera().Transitioning() || s.Camera().Preset() != 1 {
		t.Errorf("expected preset 1 after the transition, got %d", s.Camera().Preset())
	}
}

func TestSceneMissingModel(t *testing.T) {
	cfg := testConfig()
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.json")
	s := newTestScene(t, cfg)
	<-s.Model().Done()

	if f := s.Tick(); f.Model != nil {
		t.Error("failed model load should leave the wireframe out")
	}
}

func TestSceneWithModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(testModelJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.ModelPath = path
	s := newTestScene(t, cfg)
	<-s.Model().Done()
	if err := s.Model().Err(); err != nil {
		t.Fatalf("model load: %v", err)
	}

	if f := s.Tick(); len(f.Model) != 3 {
		t.Errorf("expected 3 model segments, got %d", len(f.Model))
	}
}

func TestRunnerDeliversFrames(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := New(testConfig(), defaultTestLabels(), nil)
	if err != nil {
		t.Fatal(err)
	}
	frames := make(chan Frame, 1)
	r := NewRunner(s, func(f Frame) error {
		select {
		case frames <- f:
		default:
		}
		return nil
	}, nil)
	r.Start()
	r.Start()

	select {
	case f := <-frames:
		if f.Tick < 1 {
			t.Errorf("unexpected tick %d", f.Tick)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame delivered")
	}
	if !r.Send(Event{Type: EventPointerMove, X: 1, Y: 1}) {
		t.Error("send to a running runner should succeed")
	}

	r.Close()
	r.Close()
	if r.Send(Event{Type: EventWheel, Delta: 1}) {
		t.Error("send after close should fail")
	}
	if r.Err() != nil {
		t.Errorf("unexpected error: %v", r.Err())
	}
}

func TestRunnerStopsOnSinkError(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := New(testConfig(), defaultTestLabels(), nil)
	if err != nil {
		t.Fatal(err)
	}
	errGone := errors.New("client gone")
	var calls atomic.Int32
	r := NewRunner(s, func(Frame) error {
		if calls.Add(1) == 3 {
			return errGone
		}
		return nil
	}, nil)
	r.Start()

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
	if !errors.Is(r.Err(), errGone) {
		t.Errorf("expected sink error, got %v", r.Err())
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 frames, got %d", calls.Load())
	}
	r.Close()
}

func TestRunnerCloseWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := New(testConfig(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(s, nil, nil)
	r.Close()
	r.Start()
	select {
	case <-r.Done():
	default:
		t.Fatal("Done should be closed")
	}
}
