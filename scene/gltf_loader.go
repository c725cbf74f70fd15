package scene

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"deferred-engine/renderer"
)

// LoadGLTF opens a .glb or .gltf file and returns its meshes with node
// transforms baked into the vertices, one Mesh per primitive. Base colour
// factors and textures become the mesh material.
func LoadGLTF(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	l := gltfLoader{doc: doc, dir: filepath.Dir(path)}
	l.loadTextures()
	l.loadMaterials()

	for _, root := range l.roots() {
		l.walk(root, mgl32.Ident4())
	}
	if len(l.meshes) == 0 {
		return nil, fmt.Errorf("gltf %q: no geometry", path)
	}
	return l.meshes, nil
}

type gltfLoader struct {
	doc       *gltf.Document
	dir       string
	textures  []*Texture
	materials []*Material
	meshes    []*Mesh
}

func (l *gltfLoader) loadTextures() {
	log := renderer.Logger()
	l.textures = make([]*Texture, len(l.doc.Textures))
	for i, gt := range l.doc.Textures {
		if gt.Source == nil || *gt.Source >= len(l.doc.Images) {
			continue
		}
		img := l.doc.Images[*gt.Source]
		name := img.Name
		if name == "" {
			name = fmt.Sprintf("gltf_img_%d", *gt.Source)
		}

		var (
			tex *Texture
			err error
		)
		switch {
		case img.BufferView != nil:
			var raw []byte
			raw, err = modeler.ReadBufferView(l.doc, l.doc.BufferViews[*img.BufferView])
			if err == nil {
				tex, err = decodeImageBytes(name, raw)
			}
		case img.IsEmbeddedResource():
			var raw []byte
			raw, err = img.MarshalData()
			if err == nil {
				tex, err = decodeImageBytes(name, raw)
			}
		case img.URI != "":
			tex, err = LoadTexture(filepath.Join(l.dir, img.URI))
		}
		if err != nil {
			log.Warn("gltf: image skipped", "image", *gt.Source, "err", err)
			continue
		}
		l.textures[i] = tex
	}
}

func (l *gltfLoader) loadMaterials() {
	l.materials = make([]*Material, len(l.doc.Materials))
	for i, gm := range l.doc.Materials {
		mat := NewMaterial(gm.Name, mgl32.Vec3{1, 1, 1})
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Albedo = mgl32.Vec3{float32(cf[0]), float32(cf[1]), float32(cf[2])}
			if bt := pbr.BaseColorTexture; bt != nil && bt.Index < len(l.textures) {
				mat.AlbedoTexture = l.textures[bt.Index]
			}
		}
		l.materials[i] = mat
	}
}

// roots returns the nodes of the default scene, or every parentless node
// when the file names none.
func (l *gltfLoader) roots() []int {
	if l.doc.Scene != nil && *l.doc.Scene < len(l.doc.Scenes) {
		return l.doc.Scenes[*l.doc.Scene].Nodes
	}
	hasParent := make([]bool, len(l.doc.Nodes))
	for _, n := range l.doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *gltfLoader) walk(idx int, parent mgl32.Mat4) {
	if idx < 0 || idx >= len(l.doc.Nodes) {
		return
	}
	n := l.doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(n))

	if n.Mesh != nil && *n.Mesh < len(l.doc.Meshes) {
		gm := l.doc.Meshes[*n.Mesh]
		for pi, prim := range gm.Primitives {
			m, err := l.primitive(gm.Name, pi, prim, world)
			if err != nil {
				renderer.Logger().Warn("gltf: primitive skipped", "mesh", gm.Name, "primitive", pi, "err", err)
				continue
			}
			l.meshes = append(l.meshes, m)
		}
	}
	for _, c := range n.Children {
		l.walk(c, world)
	}
}

// nodeMatrix returns the node's local transform: its matrix when one is
// given, otherwise T·R·S.
func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range n.MatrixOrDefault() {
		m[i] = float32(v)
	}
	if m != mgl32.Ident4() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (l *gltfLoader) primitive(meshName string, idx int, prim *gltf.Primitive, world mgl32.Mat4) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, idx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", idx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(l.doc, l.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	var (
		normals [][3]float32
		uvs     [][2]float32
	)
	if i, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(l.doc, l.doc.Accessors[i], nil)
	}
	if i, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(l.doc, l.doc.Accessors[i], nil)
	}

	normalMat := world.Mat3().Inv().Transpose()
	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		v := Vertex{
			Position: mgl32.TransformCoordinate(mgl32.Vec3(p), world),
			Normal:   mgl32.Vec3{0, 1, 0},
			Color:    White,
		}
		if i < len(normals) {
			v.Normal = normalMat.Mul3x1(mgl32.Vec3(normals[i])).Normalize()
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2(uvs[i])
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(l.doc, l.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(normals) == 0 {
		generateNormals(verts, indices)
	}

	m := NewMesh(name, verts, indices)
	if prim.Material != nil && *prim.Material < len(l.materials) {
		m.Material = l.materials[*prim.Material]
	}
	return m, nil
}
