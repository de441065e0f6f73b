package scene

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// modelFile is the on-disk model format.
type modelFile struct {
	Vertices [][3]float64 `json:"vertices"`
	Edges    [][2]int     `json:"edges"`
	Weights  []struct {
		Bones   [4]int     `json:"bones"`
		Weights [4]float64 `json:"weights"`
	} `json:"weights"`
	Bones []struct {
		Name        string       `json:"name"`
		Parent      int          `json:"parent"`
		Rest        *[16]float64 `json:"rest,omitempty"`
		InverseBind *[16]float64 `json:"inverse_bind,omitempty"`
	} `json:"bones"`
	Clips []struct {
		Name     string  `json:"name"`
		Duration float64 `json:"duration"`
		Tracks   []struct {
			Bone int `json:"bone"`
			Keys []struct {
				Time        float64    `json:"time"`
				Translation [3]float64 `json:"translation"`
				Rotation    [4]float64 `json:"rotation"` // x, y, z, w
			} `json:"keys"`
		} `json:"tracks"`
	} `json:"clips"`
}

// LoadModel reads a model from path. Files ending in .gz are gunzipped.
func LoadModel(ctx context.Context, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing model: %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return DecodeModel(ctx, r)
}

// DecodeModel parses a model and checks that edges and weights reference
// existing vertices and bones.
func DecodeModel(ctx context.Context, r io.Reader) (*Model, error) {
	var mf modelFile
	if err := json.NewDecoder(r).Decode(&mf); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := &Model{Edges: mf.Edges}
	for _, v := range mf.Vertices {
		m.Vertices = append(m.Vertices, mgl64.Vec3(v))
	}
	for i, e := range m.Edges {
		if e[0] < 0 || e[0] >= len(m.Vertices) || e[1] < 0 || e[1] >= len(m.Vertices) {
			return nil, fmt.Errorf("edge %d references missing vertex", i)
		}
	}
	for _, b := range mf.Bones {
		m.Bones = append(m.Bones, Bone{
			Name:        b.Name,
			Parent:      b.Parent,
			Rest:        matOrIdent(b.Rest),
			InverseBind: matOrIdent(b.InverseBind),
		})
	}
	for i, w := range mf.Weights {
		for k, b := range w.Bones {
			if w.Weights[k] != 0 && (b < 0 || b >= len(m.Bones)) {
				return nil, fmt.Errorf("weight %d references missing bone %d", i, b)
			}
		}
		m.Weights = append(m.Weights, VertexWeights{Bones: w.Bones, Weights: w.Weights})
	}
	for _, c := range mf.Clips {
		clip := Clip{Name: c.Name, Duration: c.Duration}
		for _, t := range c.Tracks {
			track := Track{Bone: t.Bone}
			for _, k := range t.Keys {
				track.Keys = append(track.Keys, Keyframe{
					Time:        k.Time,
					Translation: mgl64.Vec3(k.Translation),
					Rotation:    quatOrIdent(k.Rotation),
				})
			}
			clip.Tracks = append(clip.Tracks, track)
		}
		m.Clips = append(m.Clips, clip)
	}
	return m, nil
}

// Clip returns the clip at index i, or nil when it does not exist.
func (m *Model) Clip(i int) *Clip {
	if i < 0 || i >= len(m.Clips) {
		return nil
	}
	return &m.Clips[i]
}

func matOrIdent(m *[16]float64) mgl64.Mat4 {
	if m == nil {
		return mgl64.Ident4()
	}
	return mgl64.Mat4(*m)
}

func quatOrIdent(q [4]float64) mgl64.Quat {
	if q == [4]float64{} {
		return mgl64.QuatIdent()
	}
	return mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}.Normalize()
}

// AsyncModel loads a model in the background. Until the load finishes
// Ready returns nil and callers skip anything that needs the model.
type AsyncModel struct {
	model  atomic.Pointer[Model]
	err    error
	done   chan struct{}
	cancel context.CancelFunc
}

// LoadModelAsync starts loading path. Failures are logged and leave the
// model absent.
func LoadModelAsync(ctx context.Context, path string, logger *zap.Logger) *AsyncModel {
	ctx, cancel := context.WithCancel(ctx)
	a := &AsyncModel{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(a.done)
		m, err := LoadModel(ctx, path)
		if err != nil {
			a.err = err
			if ctx.Err() == nil {
				logger.Warn("model load failed, wireframe disabled", zap.String("path", path), zap.Error(err))
			}
			return
		}
		a.model.Store(m)
		logger.Debug("model loaded",
			zap.String("path", path),
			zap.Int("vertices", len(m.Vertices)),
			zap.Int("clips", len(m.Clips)))
	}()
	return a
}

// Ready returns the model once loaded, otherwise nil.
func (a *AsyncModel) Ready() *Model { return a.model.Load() }

// Done is closed when the load has finished, successfully or not.
func (a *AsyncModel) Done() <-chan struct{} { return a.done }

// Err returns the load error after Done is closed.
func (a *AsyncModel) Err() error {
	select {
	case <-a.done:
		return a.err
	default:
		return nil
	}
}

// Close cancels the load and waits for the loader goroutine to exit.
func (a *AsyncModel) Close() {
	a.cancel()
	<-a.done
}
