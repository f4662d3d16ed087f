// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"
	"math"

	"github.com/SoftbearStudios/fracplanet/world"
)

const (
	// tableSize must be a power of 2, tableMask relies on it.
	tableSize = 256
	tableMask = tableSize - 1

	// Padded length. perm[perm[bx]+by]+bz reaches 2*tableSize-2.
	paddedSize = tableSize + tableSize + 2

	// Shifts inputs well away from the origin so lattice coordinates are
	// positive and the field has no symmetry around zero.
	latticeOffset = 10000
	// Output scale bringing the result to about [-1, 1].
	outputScale = 1.5
)

// Gradient is a single octave of Perlin style gradient noise.
type Gradient struct {
	perm [paddedSize]int
	grad [paddedSize]world.Vec3f
}

// NewGradient builds the permutation and gradient tables from src. The only
// failure is an error reported by src.
func NewGradient(src RandomSource) (*Gradient, error) {
	n := new(Gradient)

	sphere := NewUnitSphere(src)
	for i := 0; i < tableSize; i++ {
		n.grad[i] = sphere.Sample()
	}

	for i := 0; i < tableSize; i++ {
		n.perm[i] = i
	}
	for i := tableSize - 1; i > 0; i-- {
		j := int(src.Float32() * float32(i+1))
		// Float32()*(i+1) can round up to i+1.
		if j > i {
			j = i
		}
		n.perm[i], n.perm[j] = n.perm[j], n.perm[i]
	}

	if err := sourceErr(src); err != nil {
		return nil, fmt.Errorf("building gradient tables: %w", err)
	}
	for i := 0; i < tableSize; i++ {
		if n.grad[i] == (world.Vec3f{}) {
			return nil, ErrDegenerateDraw
		}
	}

	for i := 0; i < tableSize+2; i++ {
		n.perm[tableSize+i] = n.perm[i]
		n.grad[tableSize+i] = n.grad[i]
	}

	return n, nil
}

// Permutation returns a copy of the unpadded permutation table.
func (n *Gradient) Permutation() (perm [tableSize]int) {
	copy(perm[:], n.perm[:tableSize])
	return
}

// Gradients returns a copy of the unpadded gradient table.
func (n *Gradient) Gradients() (grad [tableSize]world.Vec3f) {
	copy(grad[:], n.grad[:tableSize])
	return
}

// Eval implements Field.Eval.
func (n *Gradient) Eval(p world.Vec3f) float32 {
	// Double the frequency, otherwise the base octave shows little variation.
	// Lattice coordinates are reduced in float64 so that any finite input,
	// even one beyond the range of int, picks a valid table index.
	bx0, rx0 := lattice(p.X)
	by0, ry0 := lattice(p.Y)
	bz0, rz0 := lattice(p.Z)

	bx1 := (bx0 + 1) & tableMask
	by1 := (by0 + 1) & tableMask
	bz1 := (bz0 + 1) & tableMask

	i := n.perm[bx0]
	b00 := n.perm[i+by0]
	b01 := n.perm[i+by1]

	j := n.perm[bx1]
	b10 := n.perm[j+by0]
	b11 := n.perm[j+by1]

	rx1 := rx0 - 1
	ry1 := ry0 - 1
	rz1 := rz0 - 1

	sx := surve(rx0)

	a0 := lerp(sx, dot(n.grad[b00+bz0], rx0, ry0, rz0), dot(n.grad[b10+bz0], rx1, ry0, rz0))
	b0 := lerp(sx, dot(n.grad[b01+bz0], rx0, ry1, rz0), dot(n.grad[b11+bz0], rx1, ry1, rz0))
	a1 := lerp(sx, dot(n.grad[b00+bz1], rx0, ry0, rz1), dot(n.grad[b10+bz1], rx1, ry0, rz1))
	b1 := lerp(sx, dot(n.grad[b01+bz1], rx0, ry1, rz1), dot(n.grad[b11+bz1], rx1, ry1, rz1))

	sy := surve(ry0)
	c := lerp(sy, a0, b0)
	d := lerp(sy, a1, b1)

	return outputScale * lerp(surve(rz0), c, d)
}

// lattice returns the table index of the cell containing 2x + latticeOffset
// and the offset within that cell, in [0, 1).
func lattice(x float32) (int, float32) {
	// math.Floor is much faster than math32.Floor.
	t := 2*float64(x) + latticeOffset
	cell := math.Floor(t)
	return int(math.Mod(cell, tableSize)) & tableMask, float32(t - cell)
}

func dot(g world.Vec3f, rx, ry, rz float32) float32 {
	return rx*g.X + ry*g.Y + rz*g.Z
}

// surve is the smoothstep ease curve t²(3-2t).
func surve(t float32) float32 {
	return t * t * (3 - 2*t)
}

func lerp(t, a, b float32) float32 {
	return a + t*(b-a)
}
