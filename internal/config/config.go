// Package config loads the envmapview settings from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"envmap"
)

// Config holds the envmapview settings
type Config struct {
	Camera   [3]float32 `yaml:"camera"`
	FaceSize int        `yaml:"face_size"`
	Title    string     `yaml:"title"`
	// Scene rotation speed in radians per second
	Spin float64 `yaml:"spin"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		FaceSize: envmap.FaceSize,
		Title:    "envmapview",
		Spin:     0.5,
	}
}

// CameraPos returns the camera position as a vector
func (c Config) CameraPos() mgl32.Vec3 {
	return mgl32.Vec3(c.Camera)
}

// Validate rejects unsupported face sizes
func (c Config) Validate() error {
	if !envmap.ValidFaceSize(c.FaceSize) {
		return fmt.Errorf("face_size must be 128 or 256, got %d", c.FaceSize)
	}
	return nil
}

// Parse decodes b over the defaults and validates the result
func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the config file at path. An empty path gives the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(b)
}
