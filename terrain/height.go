// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import "github.com/chewxy/math32"

const (
	OceanLevel = 63
	SandLevel  = OceanLevel + 10
	GrassLevel = SandLevel + 50
	RockLevel  = GrassLevel + 40
	SnowLevel  = 255
)

// SeaLevel flattens every height at or below zero to zero and marks it as sea.
// It returns the marks and the highest land height.
func SeaLevel(heights []float32) (sea []bool, maxHeight float32) {
	sea = make([]bool, len(heights))
	for i, h := range heights {
		if h <= 0 {
			heights[i] = 0
			sea[i] = true
		} else if h > maxHeight {
			maxHeight = h
		}
	}
	return
}

// PowerLaw reshapes land heights as maxHeight * (h / maxHeight)^power, which
// flattens lowlands and sharpens peaks for power > 1.
func PowerLaw(heights []float32, maxHeight, power float32) {
	if maxHeight <= 0 {
		return
	}
	for i, h := range heights {
		if h > 0 {
			heights[i] = maxHeight * math32.Pow(h/maxHeight, power)
		}
	}
}
