// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"github.com/SoftbearStudios/fracplanet/world"
)

// quantize drops the bits a Buffer does not store.
func quantize(h byte) byte {
	return h & levelMask
}

// blerp interpolates the heights of a cell's four corners at offset (tx, ty).
func blerp(c00, c10, c01, c11 byte, tx, ty float32) byte {
	return byte(world.Lerp(
		world.Lerp(float32(c00), float32(c10), tx),
		world.Lerp(float32(c01), float32(c11), tx),
		ty,
	))
}
