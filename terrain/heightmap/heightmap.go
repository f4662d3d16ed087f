// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package heightmap

import (
	"github.com/SoftbearStudios/fracplanet/noise"
	"github.com/SoftbearStudios/fracplanet/terrain"
	"github.com/SoftbearStudios/fracplanet/world"
)

const (
	DefaultFrequency = 1.0 / 64
	DefaultAmplitude = 160
	DefaultBase      = terrain.OceanLevel + 8
)

// Options maps heightmap cells into noise space and noise values into bytes.
type Options struct {
	Frequency float32     // noise units per cell
	Amplitude float32     // byte units per unit of noise
	Base      float32     // byte height of zero noise
	Offset    world.Vec2f // cell offset of the origin
}

func DefaultOptions() Options {
	return Options{
		Frequency: DefaultFrequency,
		Amplitude: DefaultAmplitude,
		Base:      DefaultBase,
	}
}

// Generator generates a heightmap from a noise field.
type Generator struct {
	field  noise.Field
	opts   Options
	offset world.Vec3f
}

// New creates a Generator. Zero Frequency or Amplitude fall back to defaults.
func New(field noise.Field, opts Options) *Generator {
	if opts.Frequency == 0 {
		opts.Frequency = DefaultFrequency
	}
	if opts.Amplitude == 0 {
		opts.Amplitude = DefaultAmplitude
	}
	return &Generator{
		field:  field,
		opts:   opts,
		offset: opts.Offset.Vec3f(),
	}
}

// Generate implements terrain.Source.Generate.
func (g *Generator) Generate(px, py, width, height int) []byte {
	buf := make([]byte, width*height)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			p := world.Vec3f{X: float32(px + i), Y: float32(py + j)}.Add(g.offset).Mul(g.opts.Frequency)
			buf[i+j*width] = clampToByte(g.opts.Base + g.opts.Amplitude*g.field.Eval(p))
		}
	}

	return buf
}

func clampToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return byte(f)
}
