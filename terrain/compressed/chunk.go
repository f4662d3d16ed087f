// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"github.com/SoftbearStudios/fracplanet/terrain"
)

// chunkSize is the width and height of a chunk.
// It must be a power of 2.
const chunkSize = 64

// chunk stores a region of heightmap data. It is immutable once published.
type chunk struct {
	data [chunkSize * chunkSize]byte
}

func generateChunk(generator terrain.Source, cx, cy int) *chunk {
	heightmap := generator.Generate(cx*chunkSize, cy*chunkSize, chunkSize, chunkSize)

	// Early bounds check
	_ = heightmap[chunkSize*chunkSize-1]

	c := new(chunk)
	copy(c.data[:], heightmap)
	return c
}

// at gets a relative position in the chunk.
func (c *chunk) at(x, y uint) byte {
	return c.data[y*chunkSize+x]
}
