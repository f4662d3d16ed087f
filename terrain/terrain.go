// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terrain applies noise fields to planet geometry and heightmaps.
package terrain

import (
	"github.com/SoftbearStudios/fracplanet/world"
	"sync"
)

/*
	List of curated seeds:
		1, 46, 48, 56
*/

// Seed default seed.
const Seed = int64(56)

// Source generates heightmap data.
type Source interface {
	Generate(x, y, width, height int) []byte
}

// Data describes part of a heightmap.
// It may be in a compressed format.
type Data struct {
	world.AABB
	Data   []byte `json:"data"`   // Data is a possibly compressed terrain heightmap.
	Stride int    `json:"stride"` // Stride is width of Data.
	Length int    `json:"length"` // Length is uncompressed length of Data for faster reading.
}

var dataPool = sync.Pool{
	New: func() interface{} {
		return &Data{
			Data: make([]byte, 0, 2048),
		}
	},
}

func NewData() *Data {
	return dataPool.Get().(*Data)
}

func (data *Data) Pool() {
	*data = Data{
		Data: data.Data[:0],
	}
	dataPool.Put(data)
}
