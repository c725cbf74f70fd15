package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"deferred-engine/renderer"
)

// demoConfig is everything the demo can be configured with. A JSON file
// given with -config is read first; flags set on the command line win.
type demoConfig struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	ShadowMapSize int     `json:"shadowMapSize"`
	SSAOKernel    int     `json:"ssaoKernel"`
	SSAORadius    float32 `json:"ssaoRadius"`
	SSAOScale     float32 `json:"ssaoScale"`
	Exposure      float32 `json:"exposure"`

	Lights  int    `json:"lights"`
	Seed    int64  `json:"seed"`
	Mode    string `json:"mode"`
	Shadows bool   `json:"shadows"`
	SSAO    bool   `json:"ssao"`
	Disco   bool   `json:"disco"`
	HUD     bool   `json:"hud"`
	Model   string `json:"model"`
	Texture string `json:"texture"`
	Scene   string `json:"scene"`

	Verbose bool `json:"-"`
}

func defaultDemoConfig() demoConfig {
	rc := renderer.DefaultConfig()
	return demoConfig{
		Width:         rc.Width,
		Height:        rc.Height,
		ShadowMapSize: rc.ShadowMapSize,
		SSAOKernel:    rc.SSAO.KernelSize,
		SSAORadius:    rc.SSAO.Radius,
		SSAOScale:     rc.SSAO.Scale,
		Exposure:      rc.Exposure,
		Lights:        500,
		Seed:          1,
		Mode:          renderer.ModeFinal.String(),
		Shadows:       true,
		SSAO:          true,
		HUD:           true,
	}
}

// parseConfig reads args (without the program name).
func parseConfig(args []string, stderr io.Writer) (demoConfig, error) {
	cfg := defaultDemoConfig()

	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "", "JSON configuration file")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "output width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "output height in pixels")
	fs.IntVar(&cfg.ShadowMapSize, "shadow-size", cfg.ShadowMapSize, "cube shadow map face size")
	fs.IntVar(&cfg.SSAOKernel, "ssao-kernel", cfg.SSAOKernel, "SSAO samples per pixel (1-64)")
	fs.IntVar(&cfg.Lights, "lights", cfg.Lights, "number of random non-shadow lights")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random light seed")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "initial render mode (name or 0-9)")
	fs.BoolVar(&cfg.Shadows, "shadows", cfg.Shadows, "start with shadows enabled")
	fs.BoolVar(&cfg.SSAO, "ssao", cfg.SSAO, "start with SSAO enabled")
	fs.BoolVar(&cfg.Disco, "disco", cfg.Disco, "start with the light animation running")
	fs.BoolVar(&cfg.HUD, "hud", cfg.HUD, "show the parameter panel")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "optional .obj, .gltf or .glb mesh to add as a shadow caster")
	fs.StringVar(&cfg.Texture, "texture", cfg.Texture, "optional albedo image for the textured sphere")
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "light rig JSON file (camera, fixed lights, random light bounds)")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return demoConfig{}, err
	}

	if *path != "" {
		fromFile, err := loadConfigFile(*path, cfg)
		if err != nil {
			return demoConfig{}, err
		}
		// Explicit flags override the file.
		explicit := cfg
		cfg = fromFile
		fs.Visit(func(f *flag.Flag) {
			applyFlag(&cfg, explicit, f.Name)
		})
		cfg.Verbose = explicit.Verbose
	}

	if cfg.Lights < 0 {
		return demoConfig{}, errors.New("lights must not be negative")
	}
	if _, err := renderer.ParseRenderMode(cfg.Mode); err != nil {
		return demoConfig{}, err
	}
	return cfg, nil
}

func loadConfigFile(path string, base demoConfig) (demoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return demoConfig{}, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return demoConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func applyFlag(dst *demoConfig, src demoConfig, name string) {
	switch name {
	case "width":
		dst.Width = src.Width
	case "height":
		dst.Height = src.Height
	case "shadow-size":
		dst.ShadowMapSize = src.ShadowMapSize
	case "ssao-kernel":
		dst.SSAOKernel = src.SSAOKernel
	case "lights":
		dst.Lights = src.Lights
	case "seed":
		dst.Seed = src.Seed
	case "mode":
		dst.Mode = src.Mode
	case "shadows":
		dst.Shadows = src.Shadows
	case "ssao":
		dst.SSAO = src.SSAO
	case "disco":
		dst.Disco = src.Disco
	case "hud":
		dst.HUD = src.HUD
	case "model":
		dst.Model = src.Model
	case "texture":
		dst.Texture = src.Texture
	case "scene":
		dst.Scene = src.Scene
	}
}

// rendererConfig maps the demo settings onto the renderer's.
func (c demoConfig) rendererConfig(fbWidth, fbHeight int) renderer.Config {
	rc := renderer.DefaultConfig()
	rc.Width = fbWidth
	rc.Height = fbHeight
	rc.ShadowMapSize = c.ShadowMapSize
	rc.SSAO.KernelSize = c.SSAOKernel
	if c.SSAORadius > 0 {
		rc.SSAO.Radius = c.SSAORadius
	}
	if c.SSAOScale > 0 {
		rc.SSAO.Scale = c.SSAOScale
	}
	if c.Exposure > 0 {
		rc.Exposure = c.Exposure
	}
	return rc
}

func (c demoConfig) initialMode() renderer.RenderMode {
	m, _ := renderer.ParseRenderMode(c.Mode)
	return m
}
