// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"

	"github.com/SoftbearStudios/fracplanet/world"
)

// Fractal sums independent Gradient octaves. Octave i is sampled at 2^i times
// the input frequency and weighted by decay^i, with the weights normalized to
// sum to 1.
type Fractal struct {
	layers     []*Gradient
	amplitudes []float32
}

// NewFractal builds terms octaves from src, in order. terms must be at least 1
// and decay must lie in (0, 1); values outside are rejected, not clamped.
func NewFractal(src RandomSource, terms int, decay float32) (*Fractal, error) {
	if terms < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTerms, terms)
	}
	// Negated so NaN is rejected too.
	if !(decay > 0 && decay < 1) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidDecay, decay)
	}

	f := &Fractal{
		layers:     make([]*Gradient, terms),
		amplitudes: make([]float32, terms),
	}

	raw := make([]float64, terms)
	k, total := 1.0, 0.0
	for i := range f.layers {
		layer, err := NewGradient(src)
		if err != nil {
			return nil, fmt.Errorf("octave %d: %w", i, err)
		}
		f.layers[i] = layer
		raw[i] = k
		total += k
		k *= float64(decay)
	}

	for i, a := range raw {
		f.amplitudes[i] = float32(a / total)
	}

	return f, nil
}

// Terms returns the number of octaves.
func (f *Fractal) Terms() int {
	return len(f.layers)
}

// Amplitudes returns a copy of the normalized octave weights, coarsest first.
func (f *Fractal) Amplitudes() []float32 {
	a := make([]float32, len(f.amplitudes))
	copy(a, f.amplitudes)
	return a
}

// Eval implements Field.Eval.
func (f *Fractal) Eval(p world.Vec3f) float32 {
	var v float32
	scale := float32(1)
	for i, layer := range f.layers {
		// Deep octaves of large inputs overflow float32. Their weight is
		// negligible, so they are left out rather than poisoning the sum.
		if q := p.Mul(scale); q.IsFinite() {
			v += f.amplitudes[i] * layer.Eval(q)
		}
		scale *= 2
	}
	return v
}
