// Package io reads and writes the demo's light-rig files: camera placement,
// the fixed lights and the box random lights are scattered in.
package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/renderer"
)

// FileVersion is written by SaveScene and required by LoadScene.
const FileVersion = "1.0"

// SceneFile is the top-level structure of a light-rig JSON file.
type SceneFile struct {
	Version      string       `json:"version"`
	Name         string       `json:"name"`
	Camera       CameraData   `json:"camera"`
	Lights       []LightData  `json:"lights"`
	RandomLights RandomLights `json:"random_lights"`
}

// CameraData stores the initial orbit camera.
type CameraData struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	FOV      float32    `json:"fov"` // degrees
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
}

// LightData stores one point light.
type LightData struct {
	Position     [3]float32 `json:"position"`
	Color        [3]float32 `json:"color"`
	ShadowCaster bool       `json:"shadow_caster,omitempty"`
}

// RandomLights bounds where generated non-caster lights are placed.
type RandomLights struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

// SaveScene serializes scene to an indented JSON file.
func SaveScene(path string, scene *SceneFile) error {
	data, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScene reads and validates a light-rig file.
func LoadScene(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	scene := &SceneFile{}
	if err := json.Unmarshal(data, scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return scene, nil
}

// Validate reports the first problem that would make the scene unusable.
func (s *SceneFile) Validate() error {
	if s.Version != FileVersion {
		return fmt.Errorf("unsupported version %q", s.Version)
	}
	c := s.Camera
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("camera fov %v outside (0, 180)", c.FOV)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("camera clip planes %v..%v invalid", c.Near, c.Far)
	}
	if c.Position == c.Target {
		return errors.New("camera position equals its target")
	}
	for i := range 3 {
		if s.RandomLights.Min[i] > s.RandomLights.Max[i] {
			return fmt.Errorf("random light bounds inverted on axis %d", i)
		}
	}
	return nil
}

// NewDefaultSceneFile returns the demo's standard rig: three coloured
// shadow casters around the test objects and a wide field for random lights.
func NewDefaultSceneFile(name string) *SceneFile {
	return &SceneFile{
		Version: FileVersion,
		Name:    name,
		Camera: CameraData{
			Position: [3]float32{-21, 10.5, -21},
			Target:   [3]float32{0, 0, 0},
			FOV:      45,
			Near:     0.1,
			Far:      10000,
		},
		Lights: []LightData{
			{Position: [3]float32{-2, 4, 6}, Color: [3]float32{0.10, 0.69, 0.93}, ShadowCaster: true},
			{Position: [3]float32{4, 6, -4}, Color: [3]float32{0.94, 0.15, 0.23}, ShadowCaster: true},
			{Position: [3]float32{-6, 8, -4}, Color: [3]float32{0.14, 0.95, 0.23}, ShadowCaster: true},
		},
		RandomLights: RandomLights{
			Min: [3]float32{-1000, 0, -1000},
			Max: [3]float32{1000, 100, 1000},
		},
	}
}

// Bounds returns the random-light box in renderer form.
func (r RandomLights) Bounds() renderer.Bounds {
	return renderer.Bounds{Min: ArrayToVec3(r.Min), Max: ArrayToVec3(r.Max)}
}

// --- Helper conversions ---

// Vec3ToArray converts a Vec3 to a [3]float32
func Vec3ToArray(v mgl32.Vec3) [3]float32 {
	return [3]float32(v)
}

// ArrayToVec3 converts a [3]float32 to Vec3
func ArrayToVec3(a [3]float32) mgl32.Vec3 {
	return mgl32.Vec3(a)
}
