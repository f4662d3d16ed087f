// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"

	"github.com/SoftbearStudios/fracplanet/world"
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Field kinds accepted by NewField.
const (
	KindFractal = "fractal"
	KindPerlin  = "perlin"
	KindSimplex = "simplex"
)

// Perlin adapts github.com/aquilax/go-perlin to Field. It is useful as a
// reference when tuning terrain against a well known implementation.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin uses alpha as the per-octave weight divisor and beta as the
// frequency multiplier, as go-perlin does.
func NewPerlin(alpha, beta float64, octaves int32, seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

func (n *Perlin) Eval(p world.Vec3f) float32 {
	return float32(n.p.Noise3D(float64(p.X), float64(p.Y), float64(p.Z)))
}

// Simplex adapts github.com/ojrac/opensimplex-go to Field.
type Simplex struct {
	s opensimplex.Noise32
}

func NewSimplex(seed int64) *Simplex {
	return &Simplex{s: opensimplex.New32(seed)}
}

func (n *Simplex) Eval(p world.Vec3f) float32 {
	return n.s.Eval3(p.X, p.Y, p.Z)
}

// NewField builds a Field of the given kind. An empty kind means fractal.
// terms and decay follow NewFractal for fractal fields; for perlin, terms is
// the octave count and 1/decay the weight divisor.
func NewField(kind string, seed int64, terms int, decay float32) (Field, error) {
	switch kind {
	case "", KindFractal:
		f, err := NewFractal(NewRand(seed), terms, decay)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindPerlin:
		if terms < 1 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidTerms, terms)
		}
		if !(decay > 0 && decay < 1) {
			return nil, fmt.Errorf("%w: got %g", ErrInvalidDecay, decay)
		}
		return NewPerlin(1/float64(decay), 2, int32(terms), seed), nil
	case KindSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
