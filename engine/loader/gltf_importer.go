package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// importDocument converts a decoded glTF document into a Model.
// The default scene's node hierarchy is rebuilt under a root named after the asset and
// every animation becomes a clip descriptor. Unnamed nodes get a stable "node_<index>"
// name so clip targets always resolve against the tree.
//
// Parameters:
//   - doc: the decoded document
//   - name: the model name
//
// Returns:
//   - model.Model: the imported model
//   - error: error if the document references out-of-range nodes or accessors
func importDocument(doc *gltf.Document, name string) (model.Model, error) {
	nodes := make([]model.Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		opts := []model.NodeBuilderOption{
			model.WithNodeName(gltfNodeName(doc, i)),
			model.WithTransform(gltfNodeTransform(n)),
		}
		if n.Mesh != nil {
			opts = append(opts, model.WithMesh(*n.Mesh))
		}
		nodes[i] = model.NewNode(opts...)
	}

	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < 0 || c >= len(nodes) {
				return nil, fmt.Errorf("node %d: child index %d out of range", i, c)
			}
			nodes[i].AddChild(nodes[c])
		}
	}

	root := model.NewNode(model.WithNodeName(name))
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx >= 0 && sceneIdx < len(doc.Scenes) {
		for _, idx := range doc.Scenes[sceneIdx].Nodes {
			if idx < 0 || idx >= len(nodes) {
				return nil, fmt.Errorf("scene %d: node index %d out of range", sceneIdx, idx)
			}
			root.AddChild(nodes[idx])
		}
	} else {
		// No scene declared: every top-level node belongs to the model.
		for _, n := range nodes {
			if n.Parent() == nil {
				root.AddChild(n)
			}
		}
	}

	clips := make([]*model.AnimationClip, 0, len(doc.Animations))
	for i, anim := range doc.Animations {
		clip, err := gltfAnimationClip(doc, i, anim)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	return model.NewModel(
		model.WithName(name),
		model.WithRoot(root),
		model.WithAnimations(clips),
		model.WithMeshCount(len(doc.Meshes)),
	), nil
}

func gltfNodeName(doc *gltf.Document, index int) string {
	if n := doc.Nodes[index]; n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("node_%d", index)
}

// gltfNodeTransform reads a node's local transform, preferring an explicit matrix over TRS.
func gltfNodeTransform(n *gltf.Node) model.Transform {
	if m := n.MatrixOrDefault(); m != identityMatrix {
		var mat mgl32.Mat4
		for i, v := range m {
			mat[i] = float32(v)
		}
		return model.DecomposeMatrix(mat)
	}

	t := model.IdentityTransform()
	tr := n.TranslationOrDefault()
	t.Translation = mgl32.Vec3{float32(tr[0]), float32(tr[1]), float32(tr[2])}
	r := n.RotationOrDefault()
	t.Orientation = mgl32.Quat{
		W: float32(r[3]),
		V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
	}.Normalize()
	s := n.ScaleOrDefault()
	t.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	return t
}

// gltfAnimationClip builds a clip descriptor: its duration is the latest keyframe time
// across all samplers and its targets are the names of the animated nodes.
func gltfAnimationClip(doc *gltf.Document, index int, anim *gltf.Animation) (*model.AnimationClip, error) {
	clip := &model.AnimationClip{Name: anim.Name}
	if clip.Name == "" {
		clip.Name = fmt.Sprintf("animation_%d", index)
	}

	for _, s := range anim.Samplers {
		if s.Input < 0 || s.Input >= len(doc.Accessors) {
			return nil, fmt.Errorf("animation %q: input accessor %d out of range", clip.Name, s.Input)
		}
		end, err := gltfMaxInputTime(doc, doc.Accessors[s.Input])
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", clip.Name, err)
		}
		if end > clip.Duration {
			clip.Duration = end
		}
	}

	seen := make(map[string]bool)
	for _, ch := range anim.Channels {
		if ch.Target.Node == nil {
			continue
		}
		idx := *ch.Target.Node
		if idx < 0 || idx >= len(doc.Nodes) {
			return nil, fmt.Errorf("animation %q: target node %d out of range", clip.Name, idx)
		}
		target := gltfNodeName(doc, idx)
		if !seen[target] {
			seen[target] = true
			clip.Targets = append(clip.Targets, target)
		}
	}
	return clip, nil
}

// gltfMaxInputTime returns the last keyframe time of a sampler input accessor.
// The accessor's declared max is used when present; otherwise the data is read.
func gltfMaxInputTime(doc *gltf.Document, acc *gltf.Accessor) (float32, error) {
	if len(acc.Max) > 0 {
		return float32(acc.Max[0]), nil
	}

	data, err := modeler.ReadAccessor(doc, acc, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to read keyframe times: %w", err)
	}
	times, ok := data.([]float32)
	if !ok {
		return 0, fmt.Errorf("keyframe times have unexpected type %T", data)
	}
	var end float32
	for _, t := range times {
		if t > end {
			end = t
		}
	}
	return end, nil
}
