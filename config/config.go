// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the noise tools.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/SoftbearStudios/fracplanet/noise"
	"github.com/SoftbearStudios/fracplanet/terrain"
	"github.com/SoftbearStudios/fracplanet/terrain/heightmap"
	"github.com/SoftbearStudios/fracplanet/world"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalid = errors.New("config: invalid value")

// Config holds all configuration parameters.
type Config struct {
	Noise     NoiseConfig     `yaml:"noise"`
	Heightmap HeightmapConfig `yaml:"heightmap"`
	Server    ServerConfig    `yaml:"server"`
	Cloud     CloudConfig     `yaml:"cloud"`
	Log       LogConfig       `yaml:"log"`
}

// NoiseConfig selects the noise field and its vertex perturbation controls.
type NoiseConfig struct {
	Kind           string `yaml:"kind"`
	terrain.Params `yaml:",inline"`
}

// HeightmapConfig maps heightmap cells to noise space.
type HeightmapConfig struct {
	Frequency float32 `yaml:"frequency"`
	Amplitude float32 `yaml:"amplitude"`
	Base      float32 `yaml:"base"`
	OffsetX   float32 `yaml:"offset_x"`
	OffsetY   float32 `yaml:"offset_y"`
}

// ServerConfig holds the HTTP service limits.
type ServerConfig struct {
	Port            int `yaml:"port"`
	MaxConnections  int `yaml:"max_connections"`
	MaxTileCells    int `yaml:"max_tile_cells"`
	MaxSocketPoints int `yaml:"max_socket_points"`
}

// CloudConfig holds AWS settings for presets and tile publishing.
type CloudConfig struct {
	Enabled bool   `yaml:"enabled"`
	Region  string `yaml:"region"`
	Stage   string `yaml:"stage"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the noise engine or server cannot use.
func (c *Config) Validate() error {
	switch c.Noise.Kind {
	case noise.KindFractal, noise.KindPerlin, noise.KindSimplex:
	default:
		return fmt.Errorf("%w: noise.kind %q", ErrInvalid, c.Noise.Kind)
	}
	if c.Noise.NoiseTerms < 1 {
		return fmt.Errorf("%w: noise.terms %d", ErrInvalid, c.Noise.NoiseTerms)
	}
	if d := c.Noise.NoiseAmplitudeDecay; !(d > 0 && d < 1) {
		return fmt.Errorf("%w: noise.decay %g", ErrInvalid, d)
	}
	if c.Heightmap.Frequency <= 0 {
		return fmt.Errorf("%w: heightmap.frequency %g", ErrInvalid, c.Heightmap.Frequency)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d", ErrInvalid, c.Server.Port)
	}
	// LimitListener with a limit of 0 never accepts.
	if c.Server.MaxConnections < 1 {
		return fmt.Errorf("%w: server.max_connections %d", ErrInvalid, c.Server.MaxConnections)
	}
	if c.Server.MaxTileCells < 1 || c.Server.MaxSocketPoints < 1 {
		return fmt.Errorf("%w: server limits must be positive", ErrInvalid)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Field builds the configured noise field.
func (c NoiseConfig) Field() (noise.Field, error) {
	return noise.NewField(c.Kind, c.Seed, c.NoiseTerms, c.NoiseAmplitudeDecay)
}

// Options converts to heightmap generator options.
func (c HeightmapConfig) Options() heightmap.Options {
	return heightmap.Options{
		Frequency: c.Frequency,
		Amplitude: c.Amplitude,
		Base:      c.Base,
		Offset:    world.Vec2f{X: c.OffsetX, Y: c.OffsetY},
	}
}

// SlogLevel returns the configured level. Load has already validated it.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Level))
	return level
}

// WriteYAML saves the configuration so a run can be reproduced.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
