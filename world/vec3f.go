// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math"
)

// Vec3f is a point or direction in noise space.
type Vec3f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (vec Vec3f) Mul(factor float32) Vec3f {
	vec.X *= factor
	vec.Y *= factor
	vec.Z *= factor
	return vec
}

func (vec Vec3f) Div(divisor float32) Vec3f {
	return vec.Mul(1.0 / divisor)
}

func (vec Vec3f) Add(otherVec Vec3f) Vec3f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	vec.Z += otherVec.Z
	return vec
}

// AddScalar adds s to every component.
func (vec Vec3f) AddScalar(s float32) Vec3f {
	vec.X += s
	vec.Y += s
	vec.Z += s
	return vec
}

func (vec Vec3f) Sub(otherVec Vec3f) Vec3f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	vec.Z -= otherVec.Z
	return vec
}

func (vec Vec3f) Dot(otherVec Vec3f) float32 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y + vec.Z*otherVec.Z
}

func (vec Vec3f) Length() float32 {
	return math32.Sqrt(vec.LengthSquared())
}

func (vec Vec3f) LengthSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

func (vec Vec3f) Norm() Vec3f {
	return vec.Div(vec.Length())
}

func (vec Vec3f) Floor() Vec3f {
	// Use math.Floor instead because it uses assembly
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	vec.Z = float32(math.Floor(float64(vec.Z)))
	return vec
}

func (vec Vec3f) Lerp(otherVec Vec3f, factor float32) Vec3f {
	vec.X = Lerp(vec.X, otherVec.X, factor)
	vec.Y = Lerp(vec.Y, otherVec.Y, factor)
	vec.Z = Lerp(vec.Z, otherVec.Z, factor)
	return vec
}

// IsFinite reports whether no component is NaN or infinite.
func (vec Vec3f) IsFinite() bool {
	return !math32.IsNaN(vec.X) && !math32.IsNaN(vec.Y) && !math32.IsNaN(vec.Z) &&
		!math32.IsInf(vec.X, 0) && !math32.IsInf(vec.Y, 0) && !math32.IsInf(vec.Z, 0)
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}
