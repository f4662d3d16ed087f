// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"errors"
	"fmt"

	"github.com/SoftbearStudios/fracplanet/noise"
	"github.com/SoftbearStudios/fracplanet/world"
	"github.com/dgravesa/go-parallel/parallel"
)

// Defaults match the terrain controls of the planet generator.
const (
	DefaultNoiseFrequency = 1.0
	DefaultNoiseAmplitude = 0.12
	DefaultNoiseDecay     = 0.5

	cloudTerms     = 6
	cloudDecay     = 0.5
	cloudFrequency = 4
	cloudMin       = 0.5
	cloudMax       = 0.6
)

var ErrLengthMismatch = errors.New("terrain: positions and heights differ in length")

// Params controls how noise perturbs vertex heights.
type Params struct {
	Seed                int64   `json:"seed" yaml:"seed" dynamo:"seed"`
	NoiseTerms          int     `json:"noiseTerms" yaml:"terms" dynamo:"terms"`
	NoiseFrequency      float32 `json:"noiseFrequency" yaml:"frequency" dynamo:"frequency"`
	NoiseAmplitude      float32 `json:"noiseAmplitude" yaml:"amplitude" dynamo:"amplitude"`
	NoiseAmplitudeDecay float32 `json:"noiseAmplitudeDecay" yaml:"decay" dynamo:"decay"`
}

// DefaultParams has noise disabled, as a freshly reset terrain does.
func DefaultParams() Params {
	return Params{
		Seed:                Seed,
		NoiseFrequency:      DefaultNoiseFrequency,
		NoiseAmplitude:      DefaultNoiseAmplitude,
		NoiseAmplitudeDecay: DefaultNoiseDecay,
	}
}

// Enabled reports whether Perturb would change anything.
func (p Params) Enabled() bool {
	return p.NoiseTerms != 0 && p.NoiseAmplitude != 0
}

// Perturb adds amplitude * noise(frequency * position) to each height.
// Vertices are evaluated in parallel; the result does not depend on order.
func Perturb(positions []world.Vec3f, heights []float32, params Params) error {
	if len(positions) != len(heights) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(positions), len(heights))
	}
	if !params.Enabled() {
		return nil
	}

	field, err := noise.NewFractal(noise.NewRand(params.Seed), params.NoiseTerms, params.NoiseAmplitudeDecay)
	if err != nil {
		return fmt.Errorf("terrain noise: %w", err)
	}

	parallel.For(len(positions), func(i, _ int) {
		heights[i] += params.NoiseAmplitude * field.Eval(positions[i].Mul(params.NoiseFrequency))
	})

	return nil
}

// CloudAlpha computes a cloud layer opacity in [0, 1] for each position.
func CloudAlpha(positions []world.Vec3f, seed int64) ([]float32, error) {
	field, err := noise.NewFractal(noise.NewRand(seed), cloudTerms, cloudDecay)
	if err != nil {
		return nil, fmt.Errorf("cloud noise: %w", err)
	}

	alpha := make([]float32, len(positions))
	parallel.For(len(positions), func(i, _ int) {
		v := 0.5 + 0.5*field.Eval(positions[i].Mul(cloudFrequency))
		alpha[i] = clamp((v - cloudMin) / (cloudMax - cloudMin))
	})

	return alpha, nil
}
