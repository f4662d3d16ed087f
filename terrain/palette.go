// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"image/color"

	"github.com/SoftbearStudios/fracplanet/world"
)

type ColorVec [3]float32

var colors = [...]ColorVec{
	RGB(0, 50, 115),
	RGB(0, 75, 130),
	RGB(194, 178, 128),
	RGB(90, 180, 30),
	RGB(105, 110, 115),
	Gray(220),
}

// ColorAt returns the vertex colour for a heightmap byte.
func ColorAt(h byte) ColorVec {
	switch {
	case h <= OceanLevel:
		return colors[0].Lerp(colors[1], clamp(float32(h)/float32(OceanLevel)))
	case h <= SandLevel:
		return colors[2]
	case h <= GrassLevel:
		return colors[2].Lerp(colors[3], clamp(float32(h-SandLevel)*0.05))
	case h <= RockLevel:
		return colors[3].Lerp(colors[4], clamp(float32(h-GrassLevel)*0.1))
	default:
		return colors[4].Lerp(colors[5], clamp(float32(h-RockLevel)*0.07))
	}
}

// ElevationByte maps a vertex height onto the heightmap scale used by
// ColorAt. Sea vertices sit at OceanLevel and land heights in (0, maxHeight]
// spread over the levels above it.
func ElevationByte(h, maxHeight float32, sea bool) byte {
	if sea || maxHeight <= 0 {
		return OceanLevel
	}
	return OceanLevel + 1 + byte(clamp(h/maxHeight)*(SnowLevel-OceanLevel-1))
}

// Cloudy blends a surface colour toward cloud white by alpha.
func (vec ColorVec) Cloudy(alpha float32) ColorVec {
	return vec.Lerp(Gray(255), clamp(alpha))
}

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] = world.Lerp(vec[i], other[i], factor)
	}
	return vec
}

// RGBA converts to 8 bit channels with the given alpha.
func (vec ColorVec) RGBA(alpha float32) color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: floatToByte(alpha)}
}
