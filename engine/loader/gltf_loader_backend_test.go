package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A two-node hierarchy with one clip whose input accessor declares max = 2.5.
const jellyfishGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "bell", "children": [1], "translation": [0, 1, 0]},
    {"mesh": 0}
  ],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 1}}]}],
  "accessors": [
    {"componentType": 5126, "count": 2, "type": "SCALAR", "min": [0], "max": [2.5]},
    {"componentType": 5126, "count": 2, "type": "VEC3"}
  ],
  "animations": [
    {
      "name": "swim",
      "channels": [{"sampler": 0, "target": {"node": 1, "path": "translation"}}],
      "samplers": [{"input": 0, "output": 1}]
    },
    {
      "channels": [{"sampler": 0, "target": {"node": 0, "path": "translation"}}],
      "samplers": [{"input": 0, "output": 1}]
    }
  ]
}`

func writeAsset(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestGLTFBackend_LoadFromDisk(t *testing.T) {
	p := writeAsset(t, "jellyfish.gltf", jellyfishGLTF)

	m, err := newGLTFLoaderBackend(nil).Load(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "jellyfish", m.Name())
	assert.Equal(t, 1, m.MeshCount())

	root := m.Root()
	bell := root.Find("bell")
	require.NotNil(t, bell)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, bell.Position())

	child := root.Find("node_1")
	require.NotNil(t, child)
	assert.Equal(t, bell, child.Parent())
	assert.Equal(t, 0, child.Mesh())

	require.Equal(t, 2, m.AnimationCount())
	assert.Equal(t, []string{"swim", "animation_1"}, m.AnimationNames())
	swim := m.Animations()[0]
	assert.InDelta(t, 2.5, swim.Duration, 1e-6)
	assert.Equal(t, []string{"node_1"}, swim.Targets)
}

func TestGLTFBackend_LoadOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/jellyfish.gltf" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(jellyfishGLTF))
	}))
	defer srv.Close()

	b := newGLTFLoaderBackend(srv.Client())

	m, err := b.Load(context.Background(), srv.URL+"/models/jellyfish.gltf?v=2")
	require.NoError(t, err)
	assert.Equal(t, "jellyfish", m.Name())
	assert.Equal(t, 2, m.AnimationCount())

	_, err = b.Load(context.Background(), srv.URL+"/models/missing.glb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGLTFBackend_Errors(t *testing.T) {
	b := newGLTFLoaderBackend(nil)

	_, err := b.Load(context.Background(), "scene.obj")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model format")

	_, err = b.Load(context.Background(), "")
	require.Error(t, err)

	_, err = b.Load(context.Background(), filepath.Join(t.TempDir(), "absent.glb"))
	require.Error(t, err)

	p := writeAsset(t, "broken.gltf", `{"asset": `)
	_, err = b.Load(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gltf")
}

func TestAssetName(t *testing.T) {
	assert.Equal(t, "jellyfish", assetName("/models/jellyfish.glb"))
	assert.Equal(t, "jellyfish", assetName("https://cdn.example.com/a/jellyfish.glb?x=1"))
	assert.Equal(t, "unnamed_model", assetName("/"))
}
