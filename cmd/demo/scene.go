package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/renderer"
	"deferred-engine/scene"
)

const (
	groundHalfSize = 3000
	groundHeight   = -2
)

// object is a mesh placed in the world.
type object struct {
	mesh  *scene.Mesh
	model mgl32.Mat4
}

// demoScene owns the meshes drawn by the demo and exposes them as the two
// drawables the renderer needs. drawMesh and textureOf are the GL hooks;
// tests replace them.
type demoScene struct {
	casters     []object
	ground      object
	discoSphere *scene.Mesh

	disco   bool
	seconds float64

	drawMesh  func(*scene.Mesh)
	textureOf func(*scene.Texture) renderer.Texture
}

// newDemoScene builds the fixed test objects. albedo textures the sphere
// and the disco sphere; extra meshes are placed at (6, 0, 4).
func newDemoScene(albedo *scene.Texture, extra []*scene.Mesh) *demoScene {
	withMaterial := func(m *scene.Mesh, name string, c mgl32.Vec3, tex *scene.Texture) *scene.Mesh {
		m.Material = scene.NewMaterial(name, c)
		m.Material.AlbedoTexture = tex
		return m
	}
	red := mgl32.Vec3{1, 0, 0}
	green := mgl32.Vec3{0, 1, 0}
	magenta := mgl32.Vec3{1, 0, 1}
	yellow := mgl32.Vec3{1, 1, 0}

	s := &demoScene{
		casters: []object{
			{withMaterial(scene.CreateSphere(1, 30, 15), "Sphere", red, albedo), mgl32.Translate3D(-1, 0, -1)},
			{withMaterial(scene.CreateBox(2, 2, 2), "Cube", green, nil), mgl32.Translate3D(1, 0, 1)},
			{withMaterial(scene.CreateBox(1, 2, 1), "Pillar", magenta, nil), mgl32.Translate3D(0, 0, 4.5)},
			{withMaterial(scene.CreateBox(1, 3, 1), "Tower", yellow, nil), mgl32.Translate3D(3, 0, -1.5)},
			{
				withMaterial(scene.CreateTorus(1, 0.3, 64, 32), "Torus", magenta, nil),
				mgl32.Translate3D(-2, -0.7, 2).Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(60), mgl32.Vec3{1, 1, 1}.Normalize())),
			},
		},
		ground: object{
			withMaterial(scene.CreatePlane(groundHalfSize*2, groundHalfSize*2, 64), "Ground", mgl32.Vec3{1, 1, 1}, nil),
			mgl32.Translate3D(0, groundHeight, 0),
		},
		discoSphere: withMaterial(scene.CreateSphere(discoRadius, 30, 15), "DiscoBall", mgl32.Vec3{1, 1, 1}, albedo),
	}
	for _, m := range extra {
		s.casters = append(s.casters, object{m, mgl32.Translate3D(6, 0, 4)})
	}
	return s
}

func (s *demoScene) drawObject(sh renderer.Shader, o object) {
	if sh != nil {
		sh.SetModel(o.model)
		mat := o.mesh.Material
		if mat == nil {
			mat = scene.DefaultMaterial()
		}
		sh.SetColor(mat.Albedo)
		sh.SetTexture(s.textureOf(mat.AlbedoTexture))
	}
	s.drawMesh(o.mesh)
}

// Casters draws every object that throws shadows.
func (s *demoScene) Casters() renderer.Drawable {
	return renderer.DrawFunc(func(sh renderer.Shader) {
		for _, o := range s.casters {
			s.drawObject(sh, o)
		}
	})
}

// NonCasters draws the ground and, in disco mode, the orbiting sphere.
func (s *demoScene) NonCasters() renderer.Drawable {
	return renderer.DrawFunc(func(sh renderer.Shader) {
		if s.disco {
			s.drawObject(sh, object{s.discoSphere, discoSphereModel(s.seconds)})
		}
		s.drawObject(sh, s.ground)
	})
}

func (s *demoScene) meshes() []*scene.Mesh {
	out := []*scene.Mesh{s.ground.mesh, s.discoSphere}
	for _, o := range s.casters {
		out = append(out, o.mesh)
	}
	return out
}

// loadModel reads an OBJ or glTF file by extension.
func loadModel(path string) ([]*scene.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return scene.LoadOBJ(path)
	case ".gltf", ".glb":
		return scene.LoadGLTF(path)
	}
	return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
}

// sphereTexture loads path, or generates a marble texture when path is empty.
func sphereTexture(path string) (*scene.Texture, error) {
	if path == "" {
		return scene.NewNoiseTexture("marble", 512, 7, mgl32.Vec3{0.15, 0.25, 0.55}, mgl32.Vec3{0.95, 0.92, 0.85}), nil
	}
	return scene.LoadTexture(path)
}
