package scene

import (
	"compress/gzip"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestSkinIdentity(t *testing.T) {
	verts := []mgl64.Vec3{{1, 2, 3}, {-1, 0, 4}}
	weights := []VertexWeights{
		{Bones: [4]int{0}, Weights: [4]float64{1}},
		{Bones: [4]int{0}, Weights: [4]float64{1}},
	}
	out := make([]mgl64.Vec3, len(verts))
	Skin(verts, weights, []mgl64.Mat4{mgl64.Ident4()}, out)
	for i := range verts {
		if !out[i].ApproxEqual(verts[i]) {
			t.Errorf("vertex %d: got %v, want %v", i, out[i], verts[i])
		}
	}
}

func TestSkinBlendsBones(t *testing.T) {
	verts := []mgl64.Vec3{{0, 0, 0}, {1, 1, 1}, {5, 5, 5}}
	weights := []VertexWeights{
		{Bones: [4]int{1}, Weights: [4]float64{1}},
		{Bones: [4]int{0, 1}, Weights: [4]float64{0.5, 0.5}},
		// no weights: copied through
	}
	bones := []mgl64.Mat4{mgl64.Ident4(), mgl64.Translate3D(2, 0, 0)}
	out := make([]mgl64.Vec3, len(verts))
	Skin(verts, weights, bones, out)

	want := []mgl64.Vec3{{2, 0, 0}, {2, 1, 1}, {5, 5, 5}}
	for i := range want {
		if !out[i].ApproxEqual(want[i]) {
			t.Errorf("vertex %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestTrackSample(t *testing.T) {
	tr := Track{Keys: []Keyframe{
		{Time: 0, Translation: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()},
		{Time: 2, Translation: mgl64.Vec3{4, 0, 0}, Rotation: mgl64.QuatIdent()},
	}}
	tests := []struct {
		t    float64
		want mgl64.Vec3
	}{
		{t: -1, want: mgl64.Vec3{0, 0, 0}},
		{t: 1, want: mgl64.Vec3{2, 0, 0}},
		{t: 3, want: mgl64.Vec3{4, 0, 0}},
	}
	for _, tt := range tests {
		got := tr.Sample(tt.t).Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
		if !got.ApproxEqual(tt.want) {
			t.Errorf("Sample(%v) moved origin to %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestTrackSampleRotation(t *testing.T) {
	quarter := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	tr := Track{Keys: []Keyframe{
		{Time: 0, Rotation: mgl64.QuatIdent()},
		{Time: 1, Rotation: quarter},
	}}
	got := tr.Sample(1).Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3()
	if !got.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("expected +x rotated onto +y, got %v", got)
	}
}

func TestClipPoseLoopsAndChains(t *testing.T) {
	bones := []Bone{
		{Name: "root", Parent: -1, Rest: mgl64.Ident4(), InverseBind: mgl64.Ident4()},
		{Name: "child", Parent: 0, Rest: mgl64.Translate3D(1, 0, 0), InverseBind: mgl64.Ident4()},
	}
	clip := &Clip{Duration: 2, Tracks: []Track{{Bone: 0, Keys: []Keyframe{
		{Time: 0, Translation: mgl64.Vec3{0, 0, 0}, Rotation: mgl64.QuatIdent()},
		{Time: 2, Translation: mgl64.Vec3{0, 2, 0}, Rotation: mgl64.QuatIdent()},
	}}}}

	pose := clip.Pose(0.5, bones)
	looped := clip.Pose(2.5, bones)
	origin := mgl64.Vec4{0, 0, 0, 1}
	for i := range pose {
		if !pose[i].ApproxEqual(looped[i]) {
			t.Errorf("bone %d: pose at 2.5 should match 0.5", i)
		}
	}
	if got := pose[1].Mul4x1(origin).Vec3(); !got.ApproxEqual(mgl64.Vec3{1, 0.5, 0}) {
		t.Errorf("child should inherit the root translation, got %v", got)
	}

	var none *Clip
	rest := none.Pose(1, bones)
	if got := rest[1].Mul4x1(origin).Vec3(); !got.ApproxEqual(mgl64.Vec3{1, 0, 0}) {
		t.Errorf("nil clip should give the rest pose, got %v", got)
	}
}

const testModelJSON = `{
  "vertices": [[0,0,0],[10,0,0],[0,10,0]],
  "edges": [[0,1],[1,2],[2,0]],
  "weights": [
    {"bones":[0,0,0,0],"weights":[1,0,0,0]},
    {"bones":[0,0,0,0],"weights":[1,0,0,0]},
    {"bones":[0,0,0,0],"weights":[1,0,0,0]}
  ],
  "bones": [{"name":"root","parent":-1}],
  "clips": [{"name":"bob","duration":1,"tracks":[{"bone":0,"keys":[
    {"time":0,"translation":[0,0,0]},
    {"time":1,"translation":[0,5,0],"rotation":[0,0,0,1]}
  ]}]}]
}`

func TestDecodeModel(t *testing.T) {
	m, err := DecodeModel(context.Background(), strings.NewReader(testModelJSON))
	if err != nil {
		t.Fatalf("DecodeModel: %v", err)
	}
	if len(m.Vertices) != 3 || len(m.Edges) != 3 || len(m.Bones) != 1 || len(m.Clips) != 1 {
		t.Fatalf("unexpected model shape: %+v", m)
	}
	if m.Bones[0].InverseBind != mgl64.Ident4() {
		t.Error("missing inverse bind should default to identity")
	}
	if m.Clip(0) == nil || m.Clip(1) != nil || m.Clip(-1) != nil {
		t.Error("Clip should only return existing clips")
	}
	if m.Clips[0].Tracks[0].Keys[0].Rotation != mgl64.QuatIdent() {
		t.Error("missing rotation should default to identity")
	}
}

func TestDecodeModelRejectsBadReferences(t *testing.T) {
	for name, doc := range map[string]string{
		"edge":   `{"vertices":[[0,0,0]],"edges":[[0,3]]}`,
		"weight": `{"vertices":[[0,0,0]],"weights":[{"bones":[2,0,0,0],"weights":[1,0,0,0]}]}`,
		"syntax": `{"vertices":`,
	} {
		if _, err := DecodeModel(context.Background(), strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoadModelGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(testModelJSON)); err != nil {
		t.Fatal(err)
	}
	gz.Close()
	f.Close()

	m, err := LoadModel(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if len(m.Vertices) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(m.Vertices))
	}
}

func TestAsyncModelMissingFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := LoadModelAsync(context.Background(), filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	<-a.Done()
	if a.Err() == nil {
		t.Error("expected a load error")
	}
	if a.Ready() != nil {
		t.Error("model should stay absent after a failed load")
	}
	a.Close()
}
