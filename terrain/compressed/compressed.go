// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import (
	"errors"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/SoftbearStudios/fracplanet/terrain"
	"github.com/SoftbearStudios/fracplanet/world"
)

// Size is the width and height of the cached area in cells, centered on the origin.
const Size = 2048

var ErrCorrupt = errors.New("compressed: data does not decode to its length")

// Terrain caches a Source in lazily generated chunks and serves regions of it
// as run length encoded Data. All methods can be called concurrently.
type Terrain struct {
	generator  terrain.Source
	chunks     [Size / chunkSize][Size / chunkSize]atomic.Pointer[chunk]
	chunkCount int32
	mutex      sync.Mutex
	logger     *slog.Logger
}

func New(generator terrain.Source, logger *slog.Logger) *Terrain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Terrain{
		generator: generator,
		logger:    logger,
	}
}

func (t *Terrain) clamp(aabb world.AABB) (aabb2 world.AABB, x, y, width, height int) {
	minX, minY := t.start()
	maxX, maxY := t.end()

	start, end := aabb.Cells()
	x = max(minX, int(start.X))
	y = max(minY, int(start.Y))

	if x >= maxX || y >= maxY {
		return
	}

	width = min(maxX, int(end.X)) - x
	height = min(maxY, int(end.Y)) - y
	if width <= 0 || height <= 0 {
		return aabb2, x, y, 0, 0
	}

	aabb2 = world.AABBFrom(float32(x), float32(y), float32(width), float32(height))
	return
}

// Clamp returns the cell aligned part of aabb inside the cached area.
func (t *Terrain) Clamp(aabb world.AABB) world.AABB {
	clamped, _, _, _, _ := t.clamp(aabb)
	return clamped
}

// At returns the compressed heightmap of the clamped aabb.
// Callers may return the Data with Data.Pool when done.
func (t *Terrain) At(aabb world.AABB) *terrain.Data {
	clamped, x, y, width, height := t.clamp(aabb)

	data := terrain.NewData()
	buffer := Buffer{
		buf: data.Data,
	}
	buffer.Grow(width * height)

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			buffer.writeLevel(t.at(x+i, y+j))
		}
	}

	data.AABB = clamped
	data.Data = buffer.Buffer()
	data.Stride = width
	data.Length = width * height

	return data
}

// Decode expands Data returned by At. Heights come back rounded to 4 bits.
func (t *Terrain) Decode(data *terrain.Data) ([]byte, error) {
	return Decode(data)
}

func Decode(data *terrain.Data) ([]byte, error) {
	encoded := make([]byte, len(data.Data))
	copy(encoded, data.Data)

	raw := make([]byte, data.Length)
	n, err := NewBuffer(encoded).Read(raw)
	if err != nil && data.Length > 0 {
		return nil, err
	}
	if n != data.Length {
		return nil, ErrCorrupt
	}
	return raw, nil
}

// AtPos samples the full precision height at a cell position, interpolating
// between cells. Positions outside the cached area are 0.
func (t *Terrain) AtPos(pos world.Vec2f) byte {
	// Floor and Ceiling pos
	cPos := pos.Ceil()
	fPos := pos.Floor()

	delta := pos.Sub(fPos)

	// Sample 4x4 grid
	// 00 10
	// 01 11
	c00 := t.at2(fPos)
	c10 := t.at2(world.Vec2f{X: cPos.X, Y: fPos.Y})
	c01 := t.at2(world.Vec2f{X: fPos.X, Y: cPos.Y})
	c11 := t.at2(cPos)

	return blerp(c00, c10, c01, c11, delta.X, delta.Y)
}

// LandAt reports whether the interpolated height at pos is above the ocean.
func (t *Terrain) LandAt(pos world.Vec2f) bool {
	return t.AtPos(pos) > terrain.OceanLevel
}

// Chunks returns how many chunks have been generated.
func (t *Terrain) Chunks() int {
	return int(atomic.LoadInt32(&t.chunkCount))
}

func (t *Terrain) Debug() {
	// Take lock so all generation is done
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.logger.Debug("compressed terrain", "chunks", t.Chunks())
}

func (t *Terrain) at2(terrainPos world.Vec2f) byte {
	minX, minY := t.start()
	maxX, maxY := t.end()

	if math.IsNaN(float64(terrainPos.X)) || math.IsNaN(float64(terrainPos.Y)) {
		return 0
	}

	x, y := int(terrainPos.X), int(terrainPos.Y)
	if x >= minX && x < maxX && y >= minY && y < maxY {
		return t.at(x, y)
	}
	return 0
}

func (t *Terrain) at(x, y int) byte {
	x += Size / 2
	y += Size / 2

	c := t.getChunk(x, y)
	return c.at(uint(x&(chunkSize-1)), uint(y&(chunkSize-1)))
}

// X and Y in 0 -> Size coordinates
func (t *Terrain) getChunk(x, y int) *chunk {
	ucx := x / chunkSize
	ucy := y / chunkSize

	// Basically sync.Once for each chunk but with shared mutex
	ptr := &t.chunks[ucx][ucy]
	c := ptr.Load()

	if c == nil {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		// Load again to make sure its still nil after acquiring the lock
		c = ptr.Load()
		if c == nil {
			c = generateChunk(t.generator, ucx-Size/chunkSize/2, ucy-Size/chunkSize/2)
			atomic.AddInt32(&t.chunkCount, 1)
			ptr.Store(c)

			t.logger.Debug("generated chunk", "cx", ucx-Size/chunkSize/2, "cy", ucy-Size/chunkSize/2)
		}
	}

	return c
}

// x and y must be >= start
func (t *Terrain) start() (x, y int) {
	x = -Size / 2
	y = -Size / 2
	return
}

// x and y must be < end
func (t *Terrain) end() (x, y int) {
	x = Size / 2
	y = Size / 2
	return
}
