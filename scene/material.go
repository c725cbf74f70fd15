package scene

import "github.com/go-gl/mathgl/mgl32"

// Material is the surface description the G-buffer pass consumes: a flat
// albedo, optionally modulated by a texture.
type Material struct {
	Name          string
	Albedo        mgl32.Vec3
	AlbedoTexture *Texture
}

// DefaultMaterial returns a plain white material.
func DefaultMaterial() *Material {
	return &Material{Name: "Default", Albedo: mgl32.Vec3{1, 1, 1}}
}

// NewMaterial returns a material with the given albedo.
func NewMaterial(name string, albedo mgl32.Vec3) *Material {
	return &Material{Name: name, Albedo: albedo}
}
