// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package noise implements deterministic gradient noise over 3D space and a
// multiscale composition of it.
//
// Construction draws from a RandomSource and must not overlap with other use
// of that source. Once built, every Field in this package is immutable and
// can be evaluated from any number of goroutines.
package noise

import (
	"errors"

	"github.com/SoftbearStudios/fracplanet/world"
)

// Field is a scalar noise field, roughly in [-1, 1].
type Field interface {
	Eval(p world.Vec3f) float32
}

var (
	ErrInvalidTerms   = errors.New("noise: term count must be at least 1")
	ErrInvalidDecay   = errors.New("noise: decay must be in (0, 1)")
	ErrUnknownKind    = errors.New("noise: unknown field kind")
	ErrDegenerateDraw = errors.New("noise: random source produced no usable gradient")
)
