// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/fracplanet/world"
)

// SphereSampler produces unit vectors.
type SphereSampler interface {
	Sample() world.Vec3f
}

// UnitSphere samples directions uniformly on the unit sphere.
type UnitSphere struct {
	src RandomSource
}

func NewUnitSphere(src RandomSource) UnitSphere {
	return UnitSphere{src: src}
}

// maxSphereAttempts bounds rejection sampling so that a broken source
// (for example one stuck returning the origin) cannot spin forever.
const maxSphereAttempts = 64

// Sample picks a point inside the unit ball and projects it onto the surface.
// Returns the zero vector only if the source never yields a usable point.
func (s UnitSphere) Sample() world.Vec3f {
	for i := 0; i < maxSphereAttempts; i++ {
		v := world.Vec3f{
			X: float32(s.src.Float64Range(-1, 1)),
			Y: float32(s.src.Float64Range(-1, 1)),
			Z: float32(s.src.Float64Range(-1, 1)),
		}
		m2 := v.LengthSquared()
		if m2 > 1 || m2 == 0 {
			continue
		}
		return v.Norm()
	}
	return world.Vec3f{}
}
