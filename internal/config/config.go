package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Window holds window and frame pacing settings
type Window struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Title    string `toml:"title"`
	VSync    bool   `toml:"vsync"`
	FPSLimit int    `toml:"fps_limit"` // 0 = unlimited
}

// Camera holds the settings shared by every orbital camera
type Camera struct {
	// Distances creates one camera per entry, in switch order
	Distances         []float32 `toml:"distances"`
	FOV               float32   `toml:"fov"`
	Near              float32   `toml:"near"`
	Far               float32   `toml:"far"`
	OrthoSize         float32   `toml:"ortho_size"`
	MinDistance       float32   `toml:"min_distance"`
	RotateSensitivity float32   `toml:"rotate_sensitivity"` // degrees per pixel
	ZoomStep          float32   `toml:"zoom_step"`          // distance per scroll notch
	// Projection is the mode cameras start in
	Projection string `toml:"projection"`
}

// Camera projection names
const (
	ProjectionPerspective  = "perspective"
	ProjectionOrthographic = "orthographic"
)

// Assets holds file locations, relative to Dir unless absolute
type Assets struct {
	Dir     string `toml:"dir"`
	Shaders string `toml:"shaders"`
	Sword   string `toml:"sword"`
	Stone   string `toml:"stone"`
	Ash     string `toml:"ash"`
	Terrain string `toml:"terrain"`
	Pieces  string `toml:"pieces"`
	Skybox  string `toml:"skybox"`
}

// Animation holds keyframe animation settings
type Animation struct {
	PieceSpeed float32 `toml:"piece_speed"` // progress per second
}

// Log holds logger settings
type Log struct {
	Level string `toml:"level"`
}

// Config is the full application configuration
type Config struct {
	Window    Window    `toml:"window"`
	Camera    Camera    `toml:"camera"`
	Assets    Assets    `toml:"assets"`
	Animation Animation `toml:"animation"`
	Log       Log       `toml:"log"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Window: Window{
			Width:    800,
			Height:   600,
			Title:    "forgelight",
			VSync:    false,
			FPSLimit: 120,
		},
		Camera: Camera{
			Distances:         []float32{10, 15},
			FOV:               30,
			Near:              1,
			Far:               100,
			OrthoSize:         2,
			MinDistance:       0.1,
			RotateSensitivity: 0.5,
			ZoomStep:          1,
			Projection:        ProjectionPerspective,
		},
		Assets: Assets{
			Dir:     "assets",
			Shaders: "shaders",
			Sword:   "models/coiledsword.glb",
			Stone:   "models/stone.glb",
			Ash:     "models/ash.glb",
			Terrain: "models/ground.glb",
			Pieces:  "models/pickagram.glb",
			Skybox:  "skybox/night_sky.png",
		},
		Animation: Animation{
			PieceSpeed: 0.5,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a TOML file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read config %q", path)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %q", path)
	}

	cfg.sanitize()
	return cfg, nil
}

// Path resolves an asset path against the asset directory
func (c *Config) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Assets.Dir, rel)
}

// ShaderPath resolves a shader file name against the shader directory
func (c *Config) ShaderPath(name string) string {
	return filepath.Join(c.Path(c.Assets.Shaders), name)
}

// AspectRatio returns the initial window aspect ratio
func (c *Config) AspectRatio() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}

// sanitize clamps values to workable ranges
func (c *Config) sanitize() {
	def := Default()

	if c.Window.Width < 64 {
		c.Window.Width = 64
	}
	if c.Window.Height < 64 {
		c.Window.Height = 64
	}
	if c.Window.FPSLimit < 0 {
		c.Window.FPSLimit = 0
	}
	if c.Window.FPSLimit > 1000 {
		c.Window.FPSLimit = 1000
	}

	if len(c.Camera.Distances) == 0 {
		c.Camera.Distances = def.Camera.Distances
	}
	if c.Camera.MinDistance <= 0 {
		c.Camera.MinDistance = def.Camera.MinDistance
	}
	for i, d := range c.Camera.Distances {
		if d < c.Camera.MinDistance {
			c.Camera.Distances[i] = c.Camera.MinDistance
		}
	}
	if c.Camera.FOV <= 1 || c.Camera.FOV >= 179 {
		c.Camera.FOV = def.Camera.FOV
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = def.Camera.Near
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = c.Camera.Near * 100
	}
	if c.Camera.OrthoSize <= 0 {
		c.Camera.OrthoSize = def.Camera.OrthoSize
	}
	if c.Camera.Projection != ProjectionOrthographic {
		c.Camera.Projection = ProjectionPerspective
	}

	if c.Animation.PieceSpeed <= 0 {
		c.Animation.PieceSpeed = def.Animation.PieceSpeed
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
